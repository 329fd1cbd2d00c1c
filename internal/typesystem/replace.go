package typesystem

// Replace rewrites every generic parameter in t that has an entry in
// subst, recursing through functors, unions and applied generics.
// Parameters without an entry are left in place.
func Replace(t Type, subst map[*GenericTypeDefinition]Type) Type {
	if t == nil || len(subst) == 0 {
		return t
	}

	switch tt := t.(type) {
	case *GenericTypeDefinition:
		if concrete, ok := subst[tt]; ok && concrete != nil {
			return concrete
		}
		return tt

	case *GenericType:
		args := make([]Type, len(tt.Args))
		changed := false
		for i, a := range tt.Args {
			args[i] = Replace(a, subst)
			if args[i] != a {
				changed = true
			}
		}
		if !changed {
			return tt
		}
		return &GenericType{Target: tt.Target, Args: args}

	case *UnionType:
		left := Replace(tt.Left, subst)
		right := Replace(tt.Right, subst)
		if left == tt.Left && right == tt.Right {
			return tt
		}
		return &UnionType{Left: left, Right: right}

	case *FunctorType:
		var params []Type
		changed := false
		if tt.Params != nil {
			params = make([]Type, len(tt.Params))
			for i, p := range tt.Params {
				params[i] = Replace(p, subst)
				if params[i] != p {
					changed = true
				}
			}
		}
		ret := Replace(tt.Return, subst)
		if ret != tt.Return {
			changed = true
		}
		if !changed {
			return tt
		}
		return &FunctorType{Params: params, Return: ret, Generics: tt.Generics}

	default:
		return t
	}
}
