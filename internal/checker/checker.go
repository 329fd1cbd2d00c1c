package checker

import (
	"path/filepath"

	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/modules"
	"github.com/henry232323/saffron-lang/internal/pipeline"
	"github.com/henry232323/saffron-lang/internal/token"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// Checker walks the AST in a single pre-order pass, assigning a type to
// every expression and validating subtyping at every assignment, call,
// return, element and field-access site.
type Checker struct {
	ctx      *pipeline.PipelineContext
	env      *Environment
	registry *modules.Registry

	currentClass          *typesystem.SimpleType
	currentFunc           *typesystem.FunctorType
	currentAssignmentType typesystem.Type

	// baseDir anchors relative import paths; searchPaths are extra
	// module roots from the project configuration.
	baseDir     string
	searchPaths []string

	hadError bool
}

func NewChecker(ctx *pipeline.PipelineContext, registry *modules.Registry) *Checker {
	if ctx.Types == nil {
		ctx.Types = make(map[ast.Expression]typesystem.Type)
	}
	return &Checker{
		ctx:      ctx,
		env:      NewGlobalEnvironment(),
		registry: registry,
		baseDir:  filepath.Dir(ctx.FilePath),
	}
}

// SetSearchPaths installs extra module roots consulted when a relative
// import does not resolve next to the importing file.
func (c *Checker) SetSearchPaths(paths []string) {
	c.searchPaths = paths
}

// Check type-checks the program. Diagnostics accumulate on the pipeline
// context; checking continues past errors.
func (c *Checker) Check(program *ast.Program) {
	for _, stmt := range program.Statements {
		c.checkStatement(stmt)
	}
}

// HadError reports whether any type error was seen.
func (c *Checker) HadError() bool {
	return c.hadError
}

// Env exposes the active environment; the subtype relation resolves
// generic parameters through it.
func (c *Checker) Env() *Environment {
	return c.env
}

func (c *Checker) pushEnv() {
	c.env = NewEnclosedEnvironment(c.env)
}

func (c *Checker) popEnv() {
	c.env = c.env.enclosing
}

func (c *Checker) error(tok token.Token, code diagnostics.ErrorCode, msg string) {
	c.hadError = true
	err := diagnostics.NewError(code, tok, msg)
	err.File = c.ctx.FilePath
	c.ctx.Errors = append(c.ctx.Errors, err)
}

// cache records and returns the checked type of an expression node.
func (c *Checker) cache(expr ast.Expression, t typesystem.Type) typesystem.Type {
	c.ctx.Types[expr] = t
	return t
}

func (c *Checker) subtype(a, b typesystem.Type) bool {
	return typesystem.Subtype(c.env, a, b)
}

// CheckerProcessor runs the type checker as a pipeline stage. Modules
// parsed through imports are cached on Registry across runs.
type CheckerProcessor struct {
	Registry    *modules.Registry
	SearchPaths []string
}

func (cp *CheckerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}

	registry := cp.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}

	c := NewChecker(ctx, registry)
	c.SetSearchPaths(cp.SearchPaths)
	c.Check(ctx.AstRoot)
	return ctx
}
