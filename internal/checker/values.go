package checker

import (
	"github.com/henry232323/saffron-lang/internal/runtime"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// TypeOfObject classifies a runtime constant into its primitive type.
func TypeOfObject(obj runtime.Object) typesystem.Type {
	switch o := obj.(type) {
	case *runtime.Number:
		return typesystem.Number
	case *runtime.Boolean:
		return typesystem.Bool
	case *runtime.String:
		return typesystem.String
	case *runtime.Atom:
		return typesystem.Atom
	case *runtime.Nil:
		return typesystem.Nil
	case *runtime.List:
		if len(o.Elements) > 0 {
			return typesystem.NewListType(TypeOfObject(o.Elements[0]))
		}
		return typesystem.NewListType(typesystem.Never)
	case *runtime.Map:
		if len(o.Pairs) > 0 {
			return typesystem.NewMapType(
				TypeOfObject(o.Pairs[0].Key), TypeOfObject(o.Pairs[0].Value))
		}
		return typesystem.NewMapType(typesystem.Never, typesystem.Never)
	case *runtime.TaskHandle:
		return typesystem.TaskDef
	}
	return typesystem.Any
}
