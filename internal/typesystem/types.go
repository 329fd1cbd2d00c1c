package typesystem

import (
	"strings"
)

// Type is the interface for all semantic types. Type identity is pointer
// identity: the checker and the subtype relation compare types with ==,
// so every primitive is a process-wide singleton.
type Type interface {
	String() string
	typeObject()
}

// Primitive is a built-in singleton type.
type Primitive struct {
	Name string
}

func (p *Primitive) typeObject()    {}
func (p *Primitive) String() string { return p.Name }

// Built-in singleton types. Equal by identity.
var (
	Number = &Primitive{Name: "Number"}
	Nil    = &Primitive{Name: "Nil"}
	Bool   = &Primitive{Name: "Bool"}
	Atom   = &Primitive{Name: "Atom"}
	String = &Primitive{Name: "String"}
	Never  = &Primitive{Name: "Never"}
	Any    = &Primitive{Name: "Any"}
)

// SimpleType is a nominal type: methods, fields, declared generics and an
// optional supertype.
type SimpleType struct {
	Name      string
	Methods   map[string]Type
	Fields    map[string]Type
	Generics  []*GenericTypeDefinition
	SuperType Type
}

// NewSimpleType returns a fresh type with empty method and field tables
// and no supertype.
func NewSimpleType(name string) *SimpleType {
	return &SimpleType{
		Name:    name,
		Methods: make(map[string]Type),
		Fields:  make(map[string]Type),
	}
}

func (s *SimpleType) typeObject()    {}
func (s *SimpleType) String() string { return s.Name }

// FunctorType is the type of a function or lambda. A nil Params slice
// means the arguments are unconstrained; a nil Return reads as Nil.
type FunctorType struct {
	Params   []Type
	Return   Type
	Generics []*GenericTypeDefinition
}

func (f *FunctorType) typeObject() {}
func (f *FunctorType) String() string {
	var sb strings.Builder
	if len(f.Generics) > 0 {
		sb.WriteByte('<')
		for i, g := range f.Generics {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(g.Name)
		}
		sb.WriteByte('>')
	}
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") => ")
	if f.Return == nil {
		sb.WriteString(Nil.String())
	} else {
		sb.WriteString(f.Return.String())
	}
	return sb.String()
}

// UnionType is a sum of two types.
type UnionType struct {
	Left  Type
	Right Type
}

func (u *UnionType) typeObject() {}
func (u *UnionType) String() string {
	return u.Left.String() + " | " + u.Right.String()
}

// InterfaceType is a structural type defined by required methods and
// fields.
type InterfaceType struct {
	Name      string
	Methods   map[string]Type
	Fields    map[string]Type
	Generics  []*GenericTypeDefinition
	SuperType Type
}

// NewInterfaceType returns a fresh interface with empty tables.
func NewInterfaceType(name string) *InterfaceType {
	return &InterfaceType{
		Name:    name,
		Methods: make(map[string]Type),
		Fields:  make(map[string]Type),
	}
}

func (i *InterfaceType) typeObject()    {}
func (i *InterfaceType) String() string { return i.Name }

// GenericType is a generic target applied to concrete arguments,
// e.g. List<Number>.
type GenericType struct {
	Target Type // *SimpleType or *InterfaceType
	Args   []Type
}

func (g *GenericType) typeObject() {}
func (g *GenericType) String() string {
	var sb strings.Builder
	sb.WriteString(g.Target.String())
	sb.WriteByte('<')
	for i, a := range g.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if a == nil {
			sb.WriteString(Never.String())
		} else {
			sb.WriteString(a.String())
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

// GenericTypeDefinition is an as-yet-unresolved generic parameter with an
// optional upper bound. Each declaration site allocates a distinct
// definition; resolution is keyed by identity.
type GenericTypeDefinition struct {
	Name    string
	Extends Type // Optional
}

func (g *GenericTypeDefinition) typeObject()    {}
func (g *GenericTypeDefinition) String() string { return g.Name }

// TargetGenerics returns the declared generic parameters of a generic
// application target.
func TargetGenerics(target Type) []*GenericTypeDefinition {
	switch t := target.(type) {
	case *SimpleType:
		return t.Generics
	case *InterfaceType:
		return t.Generics
	default:
		return nil
	}
}
