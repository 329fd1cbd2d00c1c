package modules

import (
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// Module is a checked source file (or a builtin) exposed as a type whose
// fields are the module's top-level bindings.
type Module struct {
	// Path is the cleaned absolute path of the source file, or the
	// display name for builtins.
	Path string
	Name string
	Type *typesystem.SimpleType
}

// Registry caches modules by path. Builtin modules are additionally
// registered by display name so unqualified identifier lookups can fall
// back to them.
type Registry struct {
	byPath   map[string]*Module
	builtins map[string]*Module
}

func NewRegistry() *Registry {
	r := &Registry{
		byPath:   make(map[string]*Module),
		builtins: make(map[string]*Module),
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) LookupPath(path string) (*Module, bool) {
	m, ok := r.byPath[path]
	return m, ok
}

func (r *Registry) LookupBuiltin(name string) (*Module, bool) {
	m, ok := r.builtins[name]
	return m, ok
}

func (r *Registry) Register(m *Module) {
	r.byPath[m.Path] = m
}

func (r *Registry) registerBuiltin(m *Module) {
	r.byPath[m.Path] = m
	r.builtins[m.Name] = m
}
