package pipeline

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/token"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// PipelineContext is the shared state threaded through every stage.
type PipelineContext struct {
	FilePath    string
	SourceCode  string
	TokenStream *token.Stream
	AstRoot     *ast.Program

	// Types caches the checked type of every expression node.
	Types map[ast.Expression]typesystem.Type

	Errors []*diagnostics.DiagnosticError
}

// Processor is a single compilation stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		// Continue on errors to collect diagnostics from all stages.
	}
	return ctx
}
