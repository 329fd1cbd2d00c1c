package checker

import (
	"fmt"

	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

// checkExpression assigns and caches a type for every expression node.
// On an error the node is typed Any so checking continues without
// cascading diagnostics.
func (c *Checker) checkExpression(expr ast.Expression) typesystem.Type {
	if expr == nil {
		return typesystem.Any
	}

	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return c.cache(e, typesystem.Number)
	case *ast.StringLiteral:
		return c.cache(e, typesystem.String)
	case *ast.BooleanLiteral:
		return c.cache(e, typesystem.Bool)
	case *ast.NilLiteral:
		return c.cache(e, typesystem.Nil)
	case *ast.AtomLiteral:
		return c.cache(e, typesystem.Atom)

	case *ast.Identifier:
		return c.cache(e, c.checkIdentifier(e))
	case *ast.AssignExpression:
		return c.cache(e, c.checkAssign(e))
	case *ast.PrefixExpression:
		return c.cache(e, c.checkPrefix(e))
	case *ast.InfixExpression:
		return c.cache(e, c.checkInfix(e))
	case *ast.LogicalExpression:
		c.checkExpression(e.Left)
		c.checkExpression(e.Right)
		return c.cache(e, typesystem.Bool)
	case *ast.GroupingExpression:
		return c.cache(e, c.checkExpression(e.Inner))
	case *ast.CallExpression:
		return c.cache(e, c.checkCall(e))
	case *ast.IndexExpression:
		return c.cache(e, c.checkIndex(e))
	case *ast.GetExpression:
		return c.cache(e, c.checkGet(e))
	case *ast.SetExpression:
		return c.cache(e, c.checkSet(e))
	case *ast.SuperExpression:
		return c.cache(e, c.checkSuper(e))
	case *ast.ThisExpression:
		return c.cache(e, c.checkThis(e))
	case *ast.YieldExpression:
		if e.Value != nil {
			c.checkExpression(e.Value)
		}
		return c.cache(e, typesystem.Any)
	case *ast.LambdaExpression:
		fnType := &typesystem.FunctorType{}
		c.checkFunction(ast.FunctionKindLambda, e.Generics, e.Params, e.Return, e.Body, fnType)
		return c.cache(e, fnType)
	case *ast.ListLiteral:
		return c.cache(e, c.checkListLiteral(e))
	case *ast.MapLiteral:
		return c.cache(e, c.checkMapLiteral(e))
	}

	return typesystem.Any
}

func (c *Checker) checkIdentifier(e *ast.Identifier) typesystem.Type {
	if t, ok := c.env.Get(e.Name); ok {
		return t
	}
	if mod, ok := c.registry.LookupBuiltin(e.Name); ok {
		return mod.Type
	}
	c.error(e.Token, diagnostics.ErrT002, "Undefined variable '"+e.Name+"'.")
	return typesystem.Any
}

func (c *Checker) checkAssign(e *ast.AssignExpression) typesystem.Type {
	varType, defined := c.env.Get(e.Name.Name)
	if !defined {
		c.error(e.Name.Token, diagnostics.ErrT002, "Undefined variable '"+e.Name.Name+"'.")
	}

	saved := c.currentAssignmentType
	c.currentAssignmentType = varType
	valueType := c.checkExpression(e.Value)
	c.currentAssignmentType = saved

	if defined && valueType != nil && !c.subtype(valueType, varType) {
		c.error(e.Name.Token, diagnostics.ErrT001,
			"Type mismatch: cannot assign "+valueType.String()+
				" to '"+e.Name.Name+"' of type "+varType.String()+".")
	}

	if defined {
		return varType
	}
	return valueType
}

func (c *Checker) checkPrefix(e *ast.PrefixExpression) typesystem.Type {
	operandType := c.checkExpression(e.Right)

	switch e.Operator {
	case "-":
		if operandType != nil && !c.subtype(operandType, typesystem.Number) {
			c.error(e.Token, diagnostics.ErrT001, "Operand must be a number.")
		}
		return typesystem.Number
	case "!":
		return typesystem.Bool
	}
	return typesystem.Any
}

func (c *Checker) checkInfix(e *ast.InfixExpression) typesystem.Type {
	leftType := c.checkExpression(e.Left)
	rightType := c.checkExpression(e.Right)

	switch e.Operator {
	case "+":
		// '+' concatenates strings and adds numbers.
		if leftType == typesystem.String || rightType == typesystem.String {
			c.requireOperand(e, leftType, typesystem.String)
			c.requireOperand(e, rightType, typesystem.String)
			return typesystem.String
		}
		c.requireOperand(e, leftType, typesystem.Number)
		c.requireOperand(e, rightType, typesystem.Number)
		return typesystem.Number
	case "-", "*", "/":
		c.requireOperand(e, leftType, typesystem.Number)
		c.requireOperand(e, rightType, typesystem.Number)
		return typesystem.Number
	case "<", "<=", ">", ">=":
		c.requireOperand(e, leftType, typesystem.Number)
		c.requireOperand(e, rightType, typesystem.Number)
		return typesystem.Bool
	case "==", "!=":
		return typesystem.Bool
	}
	return typesystem.Any
}

func (c *Checker) requireOperand(e *ast.InfixExpression, got, want typesystem.Type) {
	if got != nil && !c.subtype(got, want) {
		c.error(e.Token, diagnostics.ErrT001,
			"Type mismatch: operand of '"+e.Operator+"' must be "+want.String()+
				", got "+got.String()+".")
	}
}

// checkCall validates the callee, seeds generic resolutions in a fresh
// scope, checks each argument against its declared parameter, and
// returns the callee's return type with any inferred generics
// substituted.
func (c *Checker) checkCall(e *ast.CallExpression) typesystem.Type {
	calleeType := c.checkExpression(e.Callee)

	fn, ok := calleeType.(*typesystem.FunctorType)
	if !ok {
		if calleeType != typesystem.Any {
			c.error(e.Token, diagnostics.ErrT006, "Can only call functions and classes.")
		}
		for _, arg := range e.Arguments {
			c.checkExpression(arg)
		}
		return typesystem.Any
	}

	c.pushEnv()
	for _, def := range fn.Generics {
		c.env.SeedResolution(def)
	}

	if fn.Params == nil {
		for _, arg := range e.Arguments {
			c.checkExpression(arg)
		}
	} else {
		if len(e.Arguments) != len(fn.Params) {
			c.error(e.Token, diagnostics.ErrT007,
				fmt.Sprintf("Expected %d arguments but got %d.", len(fn.Params), len(e.Arguments)))
		}
		for i, arg := range e.Arguments {
			if i >= len(fn.Params) {
				c.checkExpression(arg)
				continue
			}
			saved := c.currentAssignmentType
			c.currentAssignmentType = fn.Params[i]
			argType := c.checkExpression(arg)
			c.currentAssignmentType = saved

			if argType != nil && !c.subtype(argType, fn.Params[i]) {
				c.error(arg.GetToken(), diagnostics.ErrT001,
					fmt.Sprintf("Type mismatch in argument %d: expected %s, got %s.",
						i+1, fn.Params[i].String(), argType.String()))
			}
		}
	}

	returnType := fn.Return
	if returnType == nil {
		returnType = typesystem.Nil
	}
	if len(fn.Generics) > 0 {
		subst := make(map[*typesystem.GenericTypeDefinition]typesystem.Type, len(fn.Generics))
		for _, def := range fn.Generics {
			if bound, ok := c.env.LookupResolution(def); ok {
				subst[def] = bound
			}
		}
		returnType = typesystem.Replace(returnType, subst)
	}

	c.popEnv()
	return returnType
}

func (c *Checker) checkIndex(e *ast.IndexExpression) typesystem.Type {
	objectType := c.checkExpression(e.Object)
	indexType := c.checkExpression(e.Index)

	if g, ok := objectType.(*typesystem.GenericType); ok {
		switch g.Target {
		case typesystem.ListDef:
			if indexType != nil && !c.subtype(indexType, typesystem.Number) {
				c.error(e.Token, diagnostics.ErrT001, "List index must be a number.")
			}
			if len(g.Args) >= 1 && g.Args[0] != nil {
				return g.Args[0]
			}
			return typesystem.Never
		case typesystem.MapDef:
			if len(g.Args) == 2 {
				if indexType != nil && !c.subtype(indexType, g.Args[0]) {
					c.error(e.Token, diagnostics.ErrT001,
						"Map key must be "+g.Args[0].String()+".")
				}
				return g.Args[1]
			}
			return typesystem.Never
		}
	}
	if objectType == typesystem.ListDef || objectType == typesystem.MapDef {
		return typesystem.Never
	}

	if objectType != typesystem.Any {
		c.error(e.Token, diagnostics.ErrT001, "Only lists and maps can be indexed.")
	}
	return typesystem.Any
}

// memberType resolves a name against a type's method table, then its
// field table. Applied generics substitute their arguments into the
// member's type. A nil result means the member does not exist.
func (c *Checker) memberType(objectType typesystem.Type, name string) typesystem.Type {
	switch o := objectType.(type) {
	case *typesystem.SimpleType:
		if t, ok := o.Methods[name]; ok {
			return t
		}
		if t, ok := o.Fields[name]; ok {
			return t
		}
	case *typesystem.InterfaceType:
		if t, ok := o.Methods[name]; ok {
			return t
		}
		if t, ok := o.Fields[name]; ok {
			return t
		}
	case *typesystem.GenericType:
		base := c.memberType(o.Target, name)
		if base == nil {
			return nil
		}
		decl := typesystem.TargetGenerics(o.Target)
		if len(decl) != len(o.Args) {
			return base
		}
		subst := make(map[*typesystem.GenericTypeDefinition]typesystem.Type, len(decl))
		for i, def := range decl {
			subst[def] = o.Args[i]
		}
		return typesystem.Replace(base, subst)
	}
	return nil
}

func (c *Checker) checkGet(e *ast.GetExpression) typesystem.Type {
	objectType := c.checkExpression(e.Object)

	if t := c.memberType(objectType, e.Name.Name); t != nil {
		return t
	}
	if objectType != typesystem.Any {
		c.error(e.Name.Token, diagnostics.ErrT004, "Invalid field '"+e.Name.Name+"'.")
	}
	return typesystem.Any
}

func (c *Checker) checkSet(e *ast.SetExpression) typesystem.Type {
	objectType := c.checkExpression(e.Object)

	fieldType := c.memberType(objectType, e.Name.Name)
	if fieldType == nil {
		if objectType != typesystem.Any {
			c.error(e.Name.Token, diagnostics.ErrT004, "Invalid field '"+e.Name.Name+"'.")
		}
		fieldType = typesystem.Any
	}

	saved := c.currentAssignmentType
	c.currentAssignmentType = fieldType
	valueType := c.checkExpression(e.Value)
	c.currentAssignmentType = saved

	if valueType != nil && fieldType != typesystem.Any && !c.subtype(valueType, fieldType) {
		c.error(e.Name.Token, diagnostics.ErrT001,
			"Type mismatch: cannot assign "+valueType.String()+
				" to field '"+e.Name.Name+"' of type "+fieldType.String()+".")
	}
	return fieldType
}

func (c *Checker) checkSuper(e *ast.SuperExpression) typesystem.Type {
	if c.currentClass == nil {
		c.error(e.Token, diagnostics.ErrT008, "Can't use 'super' outside of a class.")
		return typesystem.Any
	}
	if c.currentClass.SuperType == nil {
		c.error(e.Token, diagnostics.ErrT008, "Can't use 'super' in a class with no superclass.")
		return typesystem.Any
	}
	if t := c.memberType(c.currentClass.SuperType, e.Method.Name); t != nil {
		return t
	}
	c.error(e.Method.Token, diagnostics.ErrT004, "Invalid field '"+e.Method.Name+"'.")
	return typesystem.Any
}

func (c *Checker) checkThis(e *ast.ThisExpression) typesystem.Type {
	if c.currentClass == nil {
		c.error(e.Token, diagnostics.ErrT008, "Can't use 'this' outside of a class.")
		return typesystem.Any
	}
	return c.currentClass
}

// checkListLiteral types a list. An expected container type set by the
// surrounding assignment drives element checking; otherwise the element
// type is inferred from the first element, defaulting to Never.
func (c *Checker) checkListLiteral(e *ast.ListLiteral) typesystem.Type {
	if expected, ok := c.currentAssignmentType.(*typesystem.GenericType); ok &&
		expected.Target == typesystem.ListDef && len(expected.Args) == 1 {
		elemExpected := expected.Args[0]
		for _, elem := range e.Elements {
			saved := c.currentAssignmentType
			c.currentAssignmentType = elemExpected
			elemType := c.checkExpression(elem)
			c.currentAssignmentType = saved

			if elemType != nil && !c.subtype(elemType, elemExpected) {
				c.error(elem.GetToken(), diagnostics.ErrT001,
					"Type mismatch: list element must be "+elemExpected.String()+
						", got "+elemType.String()+".")
			}
		}
		return expected
	}

	var elemType typesystem.Type = typesystem.Never
	saved := c.currentAssignmentType
	c.currentAssignmentType = nil
	for i, elem := range e.Elements {
		t := c.checkExpression(elem)
		if i == 0 && t != nil {
			elemType = t
		}
	}
	c.currentAssignmentType = saved
	return typesystem.NewListType(elemType)
}

func (c *Checker) checkMapLiteral(e *ast.MapLiteral) typesystem.Type {
	if expected, ok := c.currentAssignmentType.(*typesystem.GenericType); ok &&
		expected.Target == typesystem.MapDef && len(expected.Args) == 2 {
		keyExpected, valueExpected := expected.Args[0], expected.Args[1]
		for i := range e.Keys {
			saved := c.currentAssignmentType
			c.currentAssignmentType = keyExpected
			keyType := c.checkExpression(e.Keys[i])
			c.currentAssignmentType = valueExpected
			valueType := c.checkExpression(e.Values[i])
			c.currentAssignmentType = saved

			if keyType != nil && !c.subtype(keyType, keyExpected) {
				c.error(e.Keys[i].GetToken(), diagnostics.ErrT001,
					"Type mismatch: map key must be "+keyExpected.String()+
						", got "+keyType.String()+".")
			}
			if valueType != nil && !c.subtype(valueType, valueExpected) {
				c.error(e.Values[i].GetToken(), diagnostics.ErrT001,
					"Type mismatch: map value must be "+valueExpected.String()+
						", got "+valueType.String()+".")
			}
		}
		return expected
	}

	keyType := typesystem.Type(typesystem.Never)
	valueType := typesystem.Type(typesystem.Never)
	saved := c.currentAssignmentType
	c.currentAssignmentType = nil
	for i := range e.Keys {
		kt := c.checkExpression(e.Keys[i])
		vt := c.checkExpression(e.Values[i])
		if i == 0 {
			if kt != nil {
				keyType = kt
			}
			if vt != nil {
				valueType = vt
			}
		}
	}
	c.currentAssignmentType = saved
	return typesystem.NewMapType(keyType, valueType)
}
