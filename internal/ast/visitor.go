package ast

// Visitor dispatches over every concrete node kind. Statement visitors
// and expression visitors share one interface so tree walkers (printers,
// debug tooling) implement a single type.
type Visitor interface {
	VisitProgram(n *Program)

	// Statements
	VisitExpressionStatement(n *ExpressionStatement)
	VisitVarStatement(n *VarStatement)
	VisitBlockStatement(n *BlockStatement)
	VisitFunctionStatement(n *FunctionStatement)
	VisitClassStatement(n *ClassStatement)
	VisitInterfaceStatement(n *InterfaceStatement)
	VisitMethodSignature(n *MethodSignature)
	VisitIfStatement(n *IfStatement)
	VisitWhileStatement(n *WhileStatement)
	VisitForStatement(n *ForStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitBreakStatement(n *BreakStatement)
	VisitImportStatement(n *ImportStatement)
	VisitTypeDeclarationStatement(n *TypeDeclarationStatement)
	VisitEnumStatement(n *EnumStatement)

	// Expressions
	VisitIdentifier(n *Identifier)
	VisitNumberLiteral(n *NumberLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNilLiteral(n *NilLiteral)
	VisitAtomLiteral(n *AtomLiteral)
	VisitPrefixExpression(n *PrefixExpression)
	VisitInfixExpression(n *InfixExpression)
	VisitLogicalExpression(n *LogicalExpression)
	VisitGroupingExpression(n *GroupingExpression)
	VisitAssignExpression(n *AssignExpression)
	VisitCallExpression(n *CallExpression)
	VisitIndexExpression(n *IndexExpression)
	VisitGetExpression(n *GetExpression)
	VisitSetExpression(n *SetExpression)
	VisitSuperExpression(n *SuperExpression)
	VisitThisExpression(n *ThisExpression)
	VisitYieldExpression(n *YieldExpression)
	VisitLambdaExpression(n *LambdaExpression)
	VisitListLiteral(n *ListLiteral)
	VisitMapLiteral(n *MapLiteral)

	// Types
	VisitNamedType(n *NamedType)
	VisitFunctorTypeNode(n *FunctorTypeNode)
	VisitUnionTypeNode(n *UnionTypeNode)
}
