package checker

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// Environment is a lexical scope: local bindings, type definitions and
// generic resolutions, linked to its enclosing scope. Lookups walk
// outward until found or exhausted.
type Environment struct {
	locals             map[string]typesystem.Type
	typeDefs           map[string]typesystem.Type
	genericResolutions map[*typesystem.GenericTypeDefinition]typesystem.Type
	depth              int
	funcKind           ast.FunctionKind
	enclosing          *Environment
}

func NewEnvironment() *Environment {
	return &Environment{
		locals:             make(map[string]typesystem.Type),
		typeDefs:           make(map[string]typesystem.Type),
		genericResolutions: make(map[*typesystem.GenericTypeDefinition]typesystem.Type),
	}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.enclosing = outer
	if outer != nil {
		env.depth = outer.depth + 1
		env.funcKind = outer.funcKind
	}
	return env
}

// NewGlobalEnvironment builds a root scope with the built-in primitives
// bound as type definitions, plus callable constructors for List and Map.
func NewGlobalEnvironment() *Environment {
	env := NewEnvironment()

	env.DefineTypeDef("Number", typesystem.Number)
	env.DefineTypeDef("Nil", typesystem.Nil)
	env.DefineTypeDef("Bool", typesystem.Bool)
	env.DefineTypeDef("Atom", typesystem.Atom)
	env.DefineTypeDef("String", typesystem.String)
	env.DefineTypeDef("Never", typesystem.Never)
	env.DefineTypeDef("Any", typesystem.Any)
	env.DefineTypeDef("Task", typesystem.TaskDef)

	env.DefineTypeDef("List", typesystem.ListDef)
	env.Define("List", &typesystem.FunctorType{
		Return:   typesystem.NewListType(typesystem.ListDef.Generics[0]),
		Generics: typesystem.ListDef.Generics,
	})

	env.DefineTypeDef("Map", typesystem.MapDef)
	env.Define("Map", &typesystem.FunctorType{
		Return: typesystem.NewMapType(
			typesystem.MapDef.Generics[0], typesystem.MapDef.Generics[1]),
		Generics: typesystem.MapDef.Generics,
	})

	return env
}

func (e *Environment) Get(name string) (typesystem.Type, bool) {
	for env := e; env != nil; env = env.enclosing {
		if t, ok := env.locals[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (e *Environment) Define(name string, t typesystem.Type) {
	e.locals[name] = t
}

func (e *Environment) GetTypeDef(name string) (typesystem.Type, bool) {
	for env := e; env != nil; env = env.enclosing {
		if t, ok := env.typeDefs[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (e *Environment) DefineTypeDef(name string, t typesystem.Type) {
	e.typeDefs[name] = t
}

// SeedResolution registers def as unresolved in this scope. A later
// BindResolution fills it in place.
func (e *Environment) SeedResolution(def *typesystem.GenericTypeDefinition) {
	e.genericResolutions[def] = nil
}

// LookupResolution implements typesystem.Resolver: the first concrete
// binding found walking outward wins.
func (e *Environment) LookupResolution(def *typesystem.GenericTypeDefinition) (typesystem.Type, bool) {
	for env := e; env != nil; env = env.enclosing {
		if t, ok := env.genericResolutions[def]; ok && t != nil {
			return t, true
		}
	}
	return nil, false
}

// BindResolution implements typesystem.Resolver. The binding lands in
// the nearest scope holding a seeded entry for def, falling back to the
// current scope.
func (e *Environment) BindResolution(def *typesystem.GenericTypeDefinition, t typesystem.Type) {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.genericResolutions[def]; ok {
			env.genericResolutions[def] = t
			return
		}
	}
	e.genericResolutions[def] = t
}
