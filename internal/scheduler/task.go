package scheduler

import (
	"github.com/henry232323/saffron-lang/internal/runtime"
)

type TaskState int

const (
	StateSpawned TaskState = iota
	StateRunning
	StateSuspended
	StateDone
)

func (s TaskState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateDone:
		return "done"
	default:
		return "spawned"
	}
}

// Task is the unit of cooperative scheduling: a call frame with its own
// instruction pointer, value stack, parent link, and a stored-value slot
// filled on wake-up. The VM advances IP and the stack; the scheduler
// only moves frames between queues.
type Task struct {
	ID      string
	Closure runtime.Object
	IP      int
	Stack   []runtime.Object
	Parent  *Task
	State   TaskState
	Stored  runtime.Object
	Index   int
}
