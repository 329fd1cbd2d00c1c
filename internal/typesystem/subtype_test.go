package typesystem

import (
	"testing"
)

func TestSubtypeReflexivity(t *testing.T) {
	animal := NewSimpleType("Animal")
	dog := NewSimpleType("Dog")
	dog.SuperType = animal

	types := []Type{
		Number, Nil, Bool, Atom, String, Never, Any,
		animal, dog,
		NewListType(Number),
		NewMapType(String, Number),
		&FunctorType{Params: []Type{Number}, Return: Bool},
		&UnionType{Left: Number, Right: Nil},
	}

	for _, typ := range types {
		if !Subtype(MapResolver{}, typ, typ) {
			t.Errorf("%s should be a subtype of itself", typ)
		}
	}
}

func TestAnyTopNeverBottom(t *testing.T) {
	point := NewSimpleType("Point")
	types := []Type{Number, Bool, String, point, NewListType(Number)}

	for _, typ := range types {
		if !Subtype(MapResolver{}, typ, Any) {
			t.Errorf("%s <: Any should hold", typ)
		}
		if !Subtype(MapResolver{}, Never, typ) {
			t.Errorf("Never <: %s should hold", typ)
		}
		if Subtype(MapResolver{}, typ, Never) {
			t.Errorf("%s <: Never should not hold", typ)
		}
	}

	if !Subtype(MapResolver{}, Never, Never) {
		t.Errorf("Never <: Never should hold")
	}
}

func TestUnionAbsorption(t *testing.T) {
	union := &UnionType{Left: Number, Right: String}

	if !Subtype(MapResolver{}, Number, union) {
		t.Errorf("Number <: Number|String should hold")
	}
	if !Subtype(MapResolver{}, String, union) {
		t.Errorf("String <: Number|String should hold")
	}
	if Subtype(MapResolver{}, Bool, union) {
		t.Errorf("Bool <: Number|String should not hold")
	}
}

func TestSimpleTypeInheritance(t *testing.T) {
	animal := NewSimpleType("Animal")
	mammal := NewSimpleType("Mammal")
	mammal.SuperType = animal
	dog := NewSimpleType("Dog")
	dog.SuperType = mammal
	cat := NewSimpleType("Cat")
	cat.SuperType = mammal

	if !Subtype(MapResolver{}, dog, animal) {
		t.Errorf("Dog <: Animal should hold transitively")
	}
	if !Subtype(MapResolver{}, dog, mammal) {
		t.Errorf("Dog <: Mammal should hold")
	}
	if Subtype(MapResolver{}, animal, dog) {
		t.Errorf("Animal <: Dog should not hold")
	}
	if Subtype(MapResolver{}, dog, cat) {
		t.Errorf("Dog <: Cat should not hold")
	}
}

func TestFunctorSubtyping(t *testing.T) {
	animal := NewSimpleType("Animal")
	dog := NewSimpleType("Dog")
	dog.SuperType = animal

	f := &FunctorType{Params: []Type{dog}, Return: dog}
	g := &FunctorType{Params: []Type{animal}, Return: animal}

	// Arguments and return are compared covariantly.
	if !Subtype(MapResolver{}, f, g) {
		t.Errorf("(Dog)=>Dog <: (Animal)=>Animal should hold under covariant comparison")
	}
	if Subtype(MapResolver{}, g, f) {
		t.Errorf("(Animal)=>Animal <: (Dog)=>Dog should not hold")
	}

	arityMismatch := &FunctorType{Params: []Type{animal, animal}, Return: animal}
	if Subtype(MapResolver{}, f, arityMismatch) {
		t.Errorf("arity mismatch should fail")
	}

	// A nil parameter list on the supertype side accepts any arguments.
	unconstrained := &FunctorType{Return: Any}
	if !Subtype(MapResolver{}, f, unconstrained) {
		t.Errorf("any functor should match an unconstrained one")
	}
}

func TestGenericSubtyping(t *testing.T) {
	if !Subtype(MapResolver{}, NewListType(Number), NewListType(Number)) {
		t.Errorf("List<Number> <: List<Number> should hold")
	}
	if Subtype(MapResolver{}, NewListType(Number), NewListType(String)) {
		t.Errorf("List<Number> <: List<String> should not hold")
	}
	if Subtype(MapResolver{}, NewListType(Number), NewMapType(Number, Number)) {
		t.Errorf("List and Map applications should not be related")
	}
}

func TestGenericParameterResolution(t *testing.T) {
	def := &GenericTypeDefinition{Name: "T"}
	r := MapResolver{def: nil}

	// First use binds the parameter.
	if !Subtype(r, Number, def) {
		t.Fatalf("Number <: T should bind T")
	}
	bound, ok := r.LookupResolution(def)
	if !ok || bound != Number {
		t.Fatalf("T should be bound to Number, got %v", bound)
	}

	// Consistent reuse succeeds, conflicting reuse fails.
	if !Subtype(r, Number, def) {
		t.Errorf("Number <: T should hold once T = Number")
	}
	if Subtype(r, String, def) {
		t.Errorf("String <: T should fail once T = Number")
	}
}

func TestGenericParameterBound(t *testing.T) {
	animal := NewSimpleType("Animal")
	dog := NewSimpleType("Dog")
	dog.SuperType = animal

	def := &GenericTypeDefinition{Name: "T", Extends: animal}
	r := MapResolver{}

	if !Subtype(r, dog, def) {
		t.Errorf("Dog <: (T extends Animal) should bind")
	}

	r2 := MapResolver{}
	if Subtype(r2, Number, &GenericTypeDefinition{Name: "U", Extends: animal}) {
		t.Errorf("Number should not satisfy a bound of Animal")
	}
}

func TestStructuralInterface(t *testing.T) {
	hasName := NewInterfaceType("HasName")
	hasName.Fields["name"] = String

	person := NewSimpleType("Person")
	person.Fields["name"] = String
	person.Fields["age"] = Number

	nameless := NewSimpleType("Point")
	nameless.Fields["x"] = Number

	if !Subtype(MapResolver{}, person, hasName) {
		t.Errorf("Person should satisfy HasName structurally")
	}
	if Subtype(MapResolver{}, nameless, hasName) {
		t.Errorf("Point should not satisfy HasName")
	}

	// Methods are checked the same way.
	printable := NewInterfaceType("Printable")
	printable.Methods["print"] = &FunctorType{Params: []Type{}, Return: String}

	doc := NewSimpleType("Doc")
	doc.Methods["print"] = &FunctorType{Params: []Type{}, Return: String}

	if !Subtype(MapResolver{}, doc, printable) {
		t.Errorf("Doc should satisfy Printable")
	}
	if Subtype(MapResolver{}, person, printable) {
		t.Errorf("Person should not satisfy Printable")
	}
}

func TestGenericInterfaceBindsArguments(t *testing.T) {
	// interface Box<T> { var item: T }
	box := NewInterfaceType("Box")
	tDef := &GenericTypeDefinition{Name: "T"}
	box.Generics = []*GenericTypeDefinition{tDef}
	box.Fields["item"] = tDef

	holder := NewSimpleType("Holder")
	holder.Fields["item"] = Number

	r := MapResolver{}
	if !Subtype(r, holder, &GenericType{Target: box, Args: []Type{Number}}) {
		t.Errorf("Holder{item: Number} should satisfy Box<Number>")
	}

	r2 := MapResolver{}
	if Subtype(r2, holder, &GenericType{Target: box, Args: []Type{String}}) {
		t.Errorf("Holder{item: Number} should not satisfy Box<String>")
	}

	r3 := MapResolver{}
	if Subtype(r3, holder, &GenericType{Target: box, Args: []Type{Number, Number}}) {
		t.Errorf("arity mismatch against Box should fail")
	}
}

func TestReplace(t *testing.T) {
	def := &GenericTypeDefinition{Name: "T"}
	subst := map[*GenericTypeDefinition]Type{def: Number}

	if got := Replace(def, subst); got != Number {
		t.Errorf("Replace(T) = %v, want Number", got)
	}

	list := NewListType(def)
	replaced, ok := Replace(list, subst).(*GenericType)
	if !ok || replaced.Args[0] != Number {
		t.Errorf("Replace(List<T>) should yield List<Number>, got %v", replaced)
	}

	fn := &FunctorType{Params: []Type{def}, Return: def}
	replacedFn, ok := Replace(fn, subst).(*FunctorType)
	if !ok || replacedFn.Params[0] != Number || replacedFn.Return != Number {
		t.Errorf("Replace((T)=>T) should yield (Number)=>Number, got %v", replacedFn)
	}

	// Types without parameters come back unchanged, by identity.
	if got := Replace(String, subst); got != String {
		t.Errorf("Replace(String) should be identity")
	}
}
