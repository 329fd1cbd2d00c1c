package checker

import (
	"fmt"

	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// evalTypeNode evaluates a type annotation into a semantic type. Errors
// yield Any so checking continues.
func (c *Checker) evalTypeNode(node ast.Type) typesystem.Type {
	switch t := node.(type) {
	case *ast.NamedType:
		return c.evalNamedType(t)

	case *ast.FunctorTypeNode:
		fn := &typesystem.FunctorType{}
		c.pushEnv()
		fn.Generics = c.declareGenericParameters(t.Generics)
		params := make([]typesystem.Type, 0, len(t.Params))
		for _, p := range t.Params {
			params = append(params, c.evalTypeNode(p))
		}
		fn.Params = params
		if t.Return != nil {
			fn.Return = c.evalTypeNode(t.Return)
		}
		c.popEnv()
		return fn

	case *ast.UnionTypeNode:
		return &typesystem.UnionType{
			Left:  c.evalTypeNode(t.Left),
			Right: c.evalTypeNode(t.Right),
		}
	}

	return typesystem.Any
}

func (c *Checker) evalNamedType(t *ast.NamedType) typesystem.Type {
	def, ok := c.env.GetTypeDef(t.Name.Name)
	if !ok {
		c.error(t.Name.Token, diagnostics.ErrT003, "Undefined type '"+t.Name.Name+"'.")
		return typesystem.Any
	}

	if len(t.Args) == 0 {
		return def
	}

	declared := typesystem.TargetGenerics(def)
	if declared == nil {
		c.error(t.Name.Token, diagnostics.ErrT005,
			"Type '"+t.Name.Name+"' does not take generic arguments.")
		return def
	}
	if len(t.Args) != len(declared) {
		c.error(t.Name.Token, diagnostics.ErrT005,
			fmt.Sprintf("Expected %d generic arguments for '%s' but got %d.",
				len(declared), t.Name.Name, len(t.Args)))
		return typesystem.Any
	}

	args := make([]typesystem.Type, 0, len(t.Args))
	for _, arg := range t.Args {
		args = append(args, c.evalTypeNode(arg))
	}
	return &typesystem.GenericType{Target: def, Args: args}
}
