package typesystem

// Resolver supplies generic-parameter resolutions during a subtype check.
// The checker's environment chain implements it; tests use MapResolver.
type Resolver interface {
	// LookupResolution returns the concrete binding for def, if one has
	// been established.
	LookupResolution(def *GenericTypeDefinition) (Type, bool)

	// BindResolution establishes def's binding.
	BindResolution(def *GenericTypeDefinition, t Type)
}

// MapResolver is a flat Resolver backed by a map.
type MapResolver map[*GenericTypeDefinition]Type

func (m MapResolver) LookupResolution(def *GenericTypeDefinition) (Type, bool) {
	t, ok := m[def]
	if !ok || t == nil {
		return nil, false
	}
	return t, true
}

func (m MapResolver) BindResolution(def *GenericTypeDefinition, t Type) {
	m[def] = t
}

// Subtype reports whether a <: b. Rules are applied in order; the first
// match wins. Unresolved generic parameters reached on the right-hand
// side are bound through r as a side effect; this is how call sites infer
// their generic arguments.
//
// Functor arguments are compared covariantly (a.Params[i] <: b.Params[i]),
// matching the direction used when call arguments are checked against
// declared parameters.
func Subtype(r Resolver, a, b Type) bool {
	if a == nil || b == nil {
		return false
	}

	// Identity.
	if a == b {
		return true
	}

	// Never is a strict bottom: it is a subtype of everything, and
	// nothing but itself is a subtype of it. Any is the top.
	if a == Never {
		return true
	}
	if b == Never {
		return false
	}
	if b == Any {
		return true
	}

	// An applied generic on the left first tries its target.
	if ag, ok := a.(*GenericType); ok {
		if Subtype(r, ag.Target, b) {
			return true
		}
	}

	// A generic parameter on the left stands for its resolution.
	if ad, ok := a.(*GenericTypeDefinition); ok {
		if bound, ok := r.LookupResolution(ad); ok {
			return Subtype(r, bound, b)
		}
	}

	switch bt := b.(type) {
	case *SimpleType:
		as, ok := a.(*SimpleType)
		if !ok {
			return false
		}
		for ancestor := as.SuperType; ancestor != nil; {
			if g, ok := ancestor.(*GenericType); ok {
				ancestor = g.Target
				continue
			}
			parent, ok := ancestor.(*SimpleType)
			if !ok {
				return false
			}
			if parent == bt {
				return true
			}
			ancestor = parent.SuperType
		}
		return false

	case *FunctorType:
		af, ok := a.(*FunctorType)
		if !ok {
			return false
		}
		if bt.Params != nil {
			if af.Params == nil || len(af.Params) != len(bt.Params) {
				return false
			}
			for i := range af.Params {
				if !Subtype(r, af.Params[i], bt.Params[i]) {
					return false
				}
			}
		}
		aRet, bRet := af.Return, bt.Return
		if aRet == nil {
			aRet = Nil
		}
		if bRet == nil {
			bRet = Nil
		}
		return Subtype(r, aRet, bRet)

	case *GenericType:
		if iface, ok := bt.Target.(*InterfaceType); ok {
			if len(bt.Args) != len(iface.Generics) {
				return false
			}
			for i, def := range iface.Generics {
				r.BindResolution(def, bt.Args[i])
			}
			return Subtype(r, a, bt.Target)
		}
		ag, ok := a.(*GenericType)
		if !ok {
			return false
		}
		if len(ag.Args) != len(bt.Args) {
			return false
		}
		for i := range ag.Args {
			if !Subtype(r, ag.Args[i], bt.Args[i]) {
				return false
			}
		}
		return Subtype(r, ag.Target, bt.Target)

	case *GenericTypeDefinition:
		if bt.Extends != nil && !Subtype(r, a, bt.Extends) {
			return false
		}
		if bound, ok := r.LookupResolution(bt); ok {
			return Subtype(r, a, bound)
		}
		r.BindResolution(bt, a)
		return true

	case *UnionType:
		return Subtype(r, a, bt.Left) || Subtype(r, a, bt.Right)

	case *InterfaceType:
		var fields, methods map[string]Type
		switch at := a.(type) {
		case *InterfaceType:
			fields, methods = at.Fields, at.Methods
		case *SimpleType:
			fields, methods = at.Fields, at.Methods
		default:
			return false
		}
		for name, want := range bt.Fields {
			have, ok := fields[name]
			if !ok || !Subtype(r, have, want) {
				return false
			}
		}
		for name, want := range bt.Methods {
			have, ok := methods[name]
			if !ok || !Subtype(r, have, want) {
				return false
			}
		}
		return true
	}

	return false
}
