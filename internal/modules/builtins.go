package modules

import (
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// registerBuiltins installs the built-in modules. Task is the only one
// the core ships: its fields describe the scheduler surface the VM wires
// up at run time.
func (r *Registry) registerBuiltins() {
	task := typesystem.NewSimpleType("Task")

	task.Fields["spawn"] = &typesystem.FunctorType{
		Params: []typesystem.Type{&typesystem.FunctorType{Return: typesystem.Any}},
		Return: typesystem.TaskDef,
	}
	task.Fields["sleep"] = &typesystem.FunctorType{
		Params: []typesystem.Type{typesystem.Number},
		Return: typesystem.Bool,
	}
	task.Fields["waitRead"] = &typesystem.FunctorType{
		Params: []typesystem.Type{typesystem.Number},
		Return: typesystem.Bool,
	}
	task.Fields["waitWrite"] = &typesystem.FunctorType{
		Params: []typesystem.Type{typesystem.Number},
		Return: typesystem.Bool,
	}

	// Wire codes for hand-built yield values.
	task.Fields["SLEEP"] = typesystem.Number
	task.Fields["WAIT_IO_READ"] = typesystem.Number
	task.Fields["WAIT_IO_WRITE"] = typesystem.Number

	r.registerBuiltin(&Module{Path: "Task", Name: "Task", Type: task})
}
