package checker

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/typesystem"
)

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		c.checkExpression(s.Expression)

	case *ast.VarStatement:
		c.checkVarStatement(s, c.env)

	case *ast.BlockStatement:
		c.pushEnv()
		for _, inner := range s.Statements {
			c.checkStatement(inner)
		}
		c.popEnv()

	case *ast.FunctionStatement:
		// Installed before the body is checked so recursive calls
		// resolve.
		fnType := &typesystem.FunctorType{}
		c.env.Define(s.Name.Name, fnType)
		c.checkFunction(s.Kind, s.Generics, s.Params, s.Return, s.Body, fnType)

	case *ast.ClassStatement:
		c.checkClassStatement(s)

	case *ast.InterfaceStatement:
		c.checkInterfaceStatement(s)

	case *ast.IfStatement:
		c.checkExpression(s.Condition)
		c.checkStatement(s.Then)
		if s.Else != nil {
			c.checkStatement(s.Else)
		}

	case *ast.WhileStatement:
		c.checkExpression(s.Condition)
		c.checkStatement(s.Body)

	case *ast.ForStatement:
		c.pushEnv()
		if s.Init != nil {
			c.checkStatement(s.Init)
		}
		if s.Condition != nil {
			c.checkExpression(s.Condition)
		}
		if s.Increment != nil {
			c.checkExpression(s.Increment)
		}
		c.checkStatement(s.Body)
		c.popEnv()

	case *ast.ReturnStatement:
		c.checkReturnStatement(s)

	case *ast.BreakStatement:
		// Nothing to check.

	case *ast.ImportStatement:
		c.checkImportStatement(s)

	case *ast.TypeDeclarationStatement:
		c.checkTypeDeclaration(s)

	case *ast.EnumStatement:
		c.checkEnumStatement(s)

	case *ast.MethodSignature:
		// Signatures are handled by their enclosing interface.
	}
}

// checkVarStatement evaluates the declaration and defines the name in
// target. The annotated type feeds container literals in the initializer
// through currentAssignmentType.
func (c *Checker) checkVarStatement(s *ast.VarStatement, target *Environment) typesystem.Type {
	var declared typesystem.Type
	if s.TypeAnnotation != nil {
		declared = c.evalTypeNode(s.TypeAnnotation)
	}

	if s.Value != nil {
		saved := c.currentAssignmentType
		c.currentAssignmentType = declared
		valueType := c.checkExpression(s.Value)
		c.currentAssignmentType = saved

		if declared != nil && valueType != nil && !c.subtype(valueType, declared) {
			c.error(s.Name.Token, diagnostics.ErrT001,
				"Type mismatch: cannot initialize '"+s.Name.Name+"' of type "+
					declared.String()+" with "+valueType.String()+".")
		}
		if declared == nil {
			declared = valueType
		}
	}

	if declared == nil {
		declared = typesystem.Any
	}
	target.Define(s.Name.Name, declared)
	return declared
}

// checkFunction fills fnType in place and checks the body in a fresh
// scope. The return type defaults to Nil when neither annotated nor
// inferred from a return statement.
func (c *Checker) checkFunction(kind ast.FunctionKind, generics []*ast.GenericParameter,
	params []*ast.Parameter, returnAnn ast.Type, body *ast.BlockStatement,
	fnType *typesystem.FunctorType) {

	c.pushEnv()
	c.env.funcKind = kind

	fnType.Generics = c.declareGenericParameters(generics)

	paramTypes := make([]typesystem.Type, 0, len(params))
	for _, param := range params {
		var pt typesystem.Type = typesystem.Any
		if param.TypeAnnotation != nil {
			pt = c.evalTypeNode(param.TypeAnnotation)
		}
		paramTypes = append(paramTypes, pt)
		c.env.Define(param.Name.Name, pt)
	}
	fnType.Params = paramTypes

	if returnAnn != nil {
		fnType.Return = c.evalTypeNode(returnAnn)
	}
	if kind == ast.FunctionKindInitializer && c.currentClass != nil {
		fnType.Return = c.currentClass
	}

	savedFunc := c.currentFunc
	c.currentFunc = fnType
	if body != nil {
		for _, stmt := range body.Statements {
			c.checkStatement(stmt)
		}
	}
	c.currentFunc = savedFunc

	c.popEnv()

	if fnType.Return == nil {
		fnType.Return = typesystem.Nil
	}
}

// declareGenericParameters converts generic parameter nodes into
// definitions bound in the current scope.
func (c *Checker) declareGenericParameters(generics []*ast.GenericParameter) []*typesystem.GenericTypeDefinition {
	if len(generics) == 0 {
		return nil
	}
	defs := make([]*typesystem.GenericTypeDefinition, 0, len(generics))
	for _, gp := range generics {
		def := &typesystem.GenericTypeDefinition{Name: gp.Name.Name}
		// Bind the name before the bound is evaluated, so a bound may
		// reference its own parameter as well as earlier ones.
		c.env.DefineTypeDef(gp.Name.Name, def)
		if gp.Extends != nil {
			def.Extends = c.evalTypeNode(gp.Extends)
		}
		defs = append(defs, def)
	}
	return defs
}

func (c *Checker) checkReturnStatement(s *ast.ReturnStatement) {
	if c.currentFunc == nil {
		c.error(s.Token, diagnostics.ErrT008, "Can't return from top-level code.")
		if s.Value != nil {
			c.checkExpression(s.Value)
		}
		return
	}

	var valueType typesystem.Type = typesystem.Nil
	if s.Value != nil {
		saved := c.currentAssignmentType
		c.currentAssignmentType = c.currentFunc.Return
		valueType = c.checkExpression(s.Value)
		c.currentAssignmentType = saved
	}

	if c.currentFunc.Return == nil {
		c.currentFunc.Return = valueType
		return
	}
	if valueType != nil && !c.subtype(valueType, c.currentFunc.Return) {
		c.error(s.Token, diagnostics.ErrT001,
			"Type mismatch: cannot return "+valueType.String()+
				" from a function returning "+c.currentFunc.Return.String()+".")
	}
}

// checkClassStatement builds the class type. The placeholder is bound as
// a type definition before the body is checked so methods can reference
// their own class.
func (c *Checker) checkClassStatement(s *ast.ClassStatement) {
	classType := typesystem.NewSimpleType(s.Name.Name)
	c.env.DefineTypeDef(s.Name.Name, classType)

	c.pushEnv()
	classType.Generics = c.declareGenericParameters(s.Generics)

	if s.Superclass != nil {
		superDef, ok := c.env.GetTypeDef(s.Superclass.Name)
		if !ok {
			c.error(s.Superclass.Token, diagnostics.ErrT003,
				"Undefined type '"+s.Superclass.Name+"'.")
		} else if superType, isClass := superDef.(*typesystem.SimpleType); isClass {
			classType.SuperType = superType
			for name, t := range superType.Methods {
				classType.Methods[name] = t
			}
			for name, t := range superType.Fields {
				classType.Fields[name] = t
			}
		} else {
			c.error(s.Superclass.Token, diagnostics.ErrT001, "Superclass must be a class.")
		}
	}

	savedClass := c.currentClass
	c.currentClass = classType

	var initType *typesystem.FunctorType
	for _, member := range s.Body {
		switch m := member.(type) {
		case *ast.VarStatement:
			classType.Fields[m.Name.Name] = c.checkVarStatement(m, c.env)
		case *ast.FunctionStatement:
			methodType := &typesystem.FunctorType{}
			classType.Methods[m.Name.Name] = methodType
			c.checkFunction(m.Kind, m.Generics, m.Params, m.Return, m.Body, methodType)
			if m.Kind == ast.FunctionKindInitializer {
				initType = methodType
			}
		}
	}

	c.currentClass = savedClass
	c.popEnv()

	// The class's value binding is its constructor.
	ctor := &typesystem.FunctorType{
		Params:   []typesystem.Type{},
		Return:   classType,
		Generics: classType.Generics,
	}
	if initType != nil {
		ctor.Params = initType.Params
	}
	c.env.Define(s.Name.Name, ctor)
}

func (c *Checker) checkInterfaceStatement(s *ast.InterfaceStatement) {
	ifaceType := typesystem.NewInterfaceType(s.Name.Name)
	c.env.DefineTypeDef(s.Name.Name, ifaceType)

	c.pushEnv()
	ifaceType.Generics = c.declareGenericParameters(s.Generics)

	if s.Supertype != nil {
		superType := c.evalTypeNode(s.Supertype)
		base := superType
		if g, ok := base.(*typesystem.GenericType); ok {
			base = g.Target
		}
		if superIface, ok := base.(*typesystem.InterfaceType); ok {
			ifaceType.SuperType = superType
			for name, t := range superIface.Methods {
				ifaceType.Methods[name] = t
			}
			for name, t := range superIface.Fields {
				ifaceType.Fields[name] = t
			}
		} else if superType != nil {
			c.error(s.Name.Token, diagnostics.ErrT001,
				"An interface can only extend an interface.")
		}
	}

	for _, member := range s.Body {
		switch m := member.(type) {
		case *ast.VarStatement:
			var fieldType typesystem.Type = typesystem.Any
			if m.TypeAnnotation != nil {
				fieldType = c.evalTypeNode(m.TypeAnnotation)
			}
			ifaceType.Fields[m.Name.Name] = fieldType
		case *ast.MethodSignature:
			sigType := &typesystem.FunctorType{}
			c.checkFunction(m.Kind, m.Generics, m.Params, m.Return, nil, sigType)
			ifaceType.Methods[m.Name.Name] = sigType
		}
	}

	c.popEnv()
}

// checkTypeDeclaration evaluates the alias target in a scope holding its
// generic parameters, then binds the alias in the enclosing scope.
func (c *Checker) checkTypeDeclaration(s *ast.TypeDeclarationStatement) {
	c.pushEnv()
	c.declareGenericParameters(s.Generics)
	target := c.evalTypeNode(s.Target)
	c.popEnv()

	if target != nil {
		c.env.DefineTypeDef(s.Name.Name, target)
	}
}

// checkEnumStatement declares the enum as a nominal type whose items are
// fields typed as the enum itself, plus a value binding so items resolve
// through property access.
func (c *Checker) checkEnumStatement(s *ast.EnumStatement) {
	enumType := typesystem.NewSimpleType(s.Name.Name)
	for _, item := range s.Items {
		enumType.Fields[item.Name.Name] = enumType
	}
	c.env.DefineTypeDef(s.Name.Name, enumType)
	c.env.Define(s.Name.Name, enumType)
}
