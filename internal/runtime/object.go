package runtime

import (
	"strconv"
	"strings"
)

type ObjectType string

const (
	NUMBER_OBJ  ObjectType = "NUMBER"
	BOOLEAN_OBJ ObjectType = "BOOLEAN"
	STRING_OBJ  ObjectType = "STRING"
	ATOM_OBJ    ObjectType = "ATOM"
	NIL_OBJ     ObjectType = "NIL"
	LIST_OBJ    ObjectType = "LIST"
	MAP_OBJ     ObjectType = "MAP"
	CLOSURE_OBJ ObjectType = "CLOSURE"
	TASK_OBJ    ObjectType = "TASK"
)

// Object is the runtime value representation shared between the checker
// (constant classification) and the scheduler (yield values, task
// stacks). The VM owns richer object kinds; these are the ones the core
// observes.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return "\"" + s.Value + "\"" }

type Atom struct {
	Value string
}

func (a *Atom) Type() ObjectType { return ATOM_OBJ }
func (a *Atom) Inspect() string  { return ":" + a.Value }

type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapPair preserves insertion order for map values.
type MapPair struct {
	Key   Object
	Value Object
}

type Map struct {
	Pairs []MapPair
}

func (m *Map) Type() ObjectType { return MAP_OBJ }
func (m *Map) Inspect() string {
	parts := make([]string, len(m.Pairs))
	for i, p := range m.Pairs {
		parts[i] = p.Key.Inspect() + ": " + p.Value.Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Closure is an opaque callable handed to the scheduler by the VM.
type Closure struct {
	Name string
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string {
	if c.Name == "" {
		return "<fn>"
	}
	return "<fn " + c.Name + ">"
}

// TaskHandle is the user-visible handle returned by spawn.
type TaskHandle struct {
	ID    string
	Index int
}

func (t *TaskHandle) Type() ObjectType { return TASK_OBJ }
func (t *TaskHandle) Inspect() string  { return "<task " + t.ID + ">" }

// Singletons shared by the scheduler.
var (
	NilValue   = &Nil{}
	TrueValue  = &Boolean{Value: true}
	FalseValue = &Boolean{Value: false}
)
