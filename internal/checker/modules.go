package checker

import (
	"os"
	"path/filepath"

	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/config"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/lexer"
	"github.com/henry232323/saffron-lang/internal/modules"
	"github.com/henry232323/saffron-lang/internal/parser"
	"github.com/henry232323/saffron-lang/internal/pipeline"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// checkerSnapshot captures the checker state mutated while a module is
// checked, so ParseFile can re-enter the checker and restore afterwards.
type checkerSnapshot struct {
	ctx                   *pipeline.PipelineContext
	env                   *Environment
	currentClass          *typesystem.SimpleType
	currentFunc           *typesystem.FunctorType
	currentAssignmentType typesystem.Type
	baseDir               string
}

func (c *Checker) snapshot() checkerSnapshot {
	return checkerSnapshot{
		ctx:                   c.ctx,
		env:                   c.env,
		currentClass:          c.currentClass,
		currentFunc:           c.currentFunc,
		currentAssignmentType: c.currentAssignmentType,
		baseDir:               c.baseDir,
	}
}

func (c *Checker) restore(s checkerSnapshot) {
	c.ctx = s.ctx
	c.env = s.env
	c.currentClass = s.currentClass
	c.currentFunc = s.currentFunc
	c.currentAssignmentType = s.currentAssignmentType
	c.baseDir = s.baseDir
}

func (c *Checker) checkImportStatement(s *ast.ImportStatement) {
	mod := c.ParseFile(s.Path.Value, s)
	if mod == nil {
		return
	}
	c.env.Define(s.Alias.Name, mod.Type)
}

// ParseFile resolves, parses and checks a module, returning the cached
// module on repeated calls. The module's type has one field per
// top-level binding of the file.
func (c *Checker) ParseFile(path string, at *ast.ImportStatement) *modules.Module {
	resolved := path
	if !config.HasSourceExt(resolved) {
		resolved += config.SourceFileExt
	}

	var candidates []string
	if filepath.IsAbs(resolved) {
		candidates = []string{resolved}
	} else {
		candidates = append(candidates, filepath.Join(c.baseDir, resolved))
		for _, root := range c.searchPaths {
			candidates = append(candidates, filepath.Join(root, resolved))
		}
	}

	var abs string
	var source []byte
	for _, candidate := range candidates {
		full, err := filepath.Abs(filepath.Clean(candidate))
		if err != nil {
			full = filepath.Clean(candidate)
		}
		if mod, ok := c.registry.LookupPath(full); ok {
			return mod
		}
		data, err := os.ReadFile(full)
		if err == nil {
			abs, source = full, data
			break
		}
	}
	if source == nil {
		c.error(at.Path.Token, diagnostics.ErrT003, "Cannot read module '"+path+"'.")
		return nil
	}

	// Register a placeholder before checking so a cyclic import resolves
	// to the module being built instead of recursing forever. The fields
	// are filled in below.
	name := config.TrimSourceExt(filepath.Base(abs))
	mod := &modules.Module{Path: abs, Name: name, Type: typesystem.NewSimpleType(name)}
	c.registry.Register(mod)

	subCtx := &pipeline.PipelineContext{
		FilePath:   abs,
		SourceCode: string(source),
		Types:      c.ctx.Types,
	}
	front := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{})
	subCtx = front.Run(subCtx)

	saved := c.snapshot()
	c.ctx.Errors = append(c.ctx.Errors, subCtx.Errors...)

	if subCtx.AstRoot == nil {
		c.hadError = true
		return nil
	}

	// Check the module with a fresh root environment. The file's own
	// bindings land in a child scope so the globals stay out of the
	// module's exported fields.
	c.ctx = subCtx
	c.ctx.Errors = nil
	c.env = NewEnclosedEnvironment(NewGlobalEnvironment())
	c.currentClass = nil
	c.currentFunc = nil
	c.currentAssignmentType = nil
	c.baseDir = filepath.Dir(abs)

	c.Check(subCtx.AstRoot)

	moduleEnv := c.env
	moduleErrors := c.ctx.Errors
	c.restore(saved)
	c.ctx.Errors = append(c.ctx.Errors, moduleErrors...)

	for bindingName, t := range moduleEnv.locals {
		mod.Type.Fields[bindingName] = t
	}
	return mod
}
