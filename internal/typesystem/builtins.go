package typesystem

// Process-global container and task type definitions. Like the primitive
// singletons these are equal by identity; applied uses wrap them in a
// GenericType.
var (
	ListDef *SimpleType
	MapDef  *SimpleType
	TaskDef *SimpleType
)

func init() {
	ListDef = NewSimpleType("List")
	ListDef.Generics = []*GenericTypeDefinition{{Name: "T"}}

	MapDef = NewSimpleType("Map")
	MapDef.Generics = []*GenericTypeDefinition{{Name: "K"}, {Name: "V"}}

	TaskDef = NewSimpleType("Task")
}

// NewListType applies the List definition to an element type.
func NewListType(elem Type) *GenericType {
	return &GenericType{Target: ListDef, Args: []Type{elem}}
}

// NewMapType applies the Map definition to key and value types.
func NewMapType(key, value Type) *GenericType {
	return &GenericType{Target: MapDef, Args: []Type{key, value}}
}
