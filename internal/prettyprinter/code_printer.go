package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/henry232323/saffron-lang/internal/ast"
)

// CodePrinter renders an AST back to source text. The output is
// canonical (one statement per line, two-space indent) and reparses to
// an equivalent tree.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders node and returns the source text.
func (p *CodePrinter) Print(node ast.Node) string {
	p.buf.Reset()
	p.indent = 0
	node.Accept(p)
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	p.write(strings.Repeat("  ", p.indent))
}

func (p *CodePrinter) writeStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	p.writeStatements(n.Statements)
}

// --- Statements ---

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	n.Expression.Accept(p)
}

func (p *CodePrinter) VisitVarStatement(n *ast.VarStatement) {
	p.write("var ")
	p.write(n.Name.Name)
	if n.TypeAnnotation != nil {
		p.write(": ")
		n.TypeAnnotation.Accept(p)
	}
	if n.Value != nil {
		p.write(" = ")
		n.Value.Accept(p)
	}
}

func (p *CodePrinter) VisitBlockStatement(n *ast.BlockStatement) {
	p.write("{\n")
	p.indent++
	p.writeStatements(n.Statements)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) writeGenerics(generics []*ast.GenericParameter) {
	if len(generics) == 0 {
		return
	}
	p.write("<")
	for i, gp := range generics {
		if i > 0 {
			p.write(", ")
		}
		p.write(gp.Name.Name)
		if gp.Extends != nil {
			p.write(" extends ")
			gp.Extends.Accept(p)
		}
	}
	p.write(">")
}

func (p *CodePrinter) writeParameters(params []*ast.Parameter) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Name.Name)
		if param.TypeAnnotation != nil {
			p.write(": ")
			param.TypeAnnotation.Accept(p)
		}
	}
	p.write(")")
}

func (p *CodePrinter) VisitFunctionStatement(n *ast.FunctionStatement) {
	p.write("fun ")
	p.write(n.Name.Name)
	p.writeGenerics(n.Generics)
	p.writeParameters(n.Params)
	if n.Return != nil {
		p.write(": ")
		n.Return.Accept(p)
	}
	p.write(" ")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitClassStatement(n *ast.ClassStatement) {
	p.write("class ")
	p.write(n.Name.Name)
	p.writeGenerics(n.Generics)
	if n.Superclass != nil {
		p.write(" extends ")
		p.write(n.Superclass.Name)
	}
	p.write(" {\n")
	p.indent++
	p.writeStatements(n.Body)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitInterfaceStatement(n *ast.InterfaceStatement) {
	p.write("interface ")
	p.write(n.Name.Name)
	p.writeGenerics(n.Generics)
	if n.Supertype != nil {
		p.write(" extends ")
		n.Supertype.Accept(p)
	}
	p.write(" {\n")
	p.indent++
	p.writeStatements(n.Body)
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitMethodSignature(n *ast.MethodSignature) {
	p.write("fun ")
	p.write(n.Name.Name)
	p.writeGenerics(n.Generics)
	p.writeParameters(n.Params)
	if n.Return != nil {
		p.write(": ")
		n.Return.Accept(p)
	}
	p.write(";")
}

func (p *CodePrinter) VisitIfStatement(n *ast.IfStatement) {
	p.write("if (")
	n.Condition.Accept(p)
	p.write(") ")
	n.Then.Accept(p)
	if n.Else != nil {
		p.write(" else ")
		n.Else.Accept(p)
	}
}

func (p *CodePrinter) VisitWhileStatement(n *ast.WhileStatement) {
	p.write("while (")
	n.Condition.Accept(p)
	p.write(") ")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitForStatement(n *ast.ForStatement) {
	p.write("for (")
	if n.Init != nil {
		n.Init.Accept(p)
	}
	p.write("; ")
	if n.Condition != nil {
		n.Condition.Accept(p)
	}
	p.write("; ")
	if n.Increment != nil {
		n.Increment.Accept(p)
	}
	p.write(") ")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitReturnStatement(n *ast.ReturnStatement) {
	p.write("return")
	if n.Value != nil {
		p.write(" ")
		n.Value.Accept(p)
	}
}

func (p *CodePrinter) VisitBreakStatement(_ *ast.BreakStatement) {
	p.write("break")
}

func (p *CodePrinter) VisitImportStatement(n *ast.ImportStatement) {
	p.write("import ")
	p.write(strconv.Quote(n.Path.Value))
	p.write(" as ")
	p.write(n.Alias.Name)
}

func (p *CodePrinter) VisitTypeDeclarationStatement(n *ast.TypeDeclarationStatement) {
	p.write("type ")
	p.write(n.Name.Name)
	p.writeGenerics(n.Generics)
	p.write(" = ")
	n.Target.Accept(p)
}

func (p *CodePrinter) VisitEnumStatement(n *ast.EnumStatement) {
	p.write("enum ")
	p.write(n.Name.Name)
	p.write(" { ")
	for i, item := range n.Items {
		if i > 0 {
			p.write(", ")
		}
		p.write(item.Name.Name)
	}
	p.write(" }")
}

// --- Expressions ---

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Name)
}

func (p *CodePrinter) VisitNumberLiteral(n *ast.NumberLiteral) {
	p.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNilLiteral(_ *ast.NilLiteral) {
	p.write("nil")
}

func (p *CodePrinter) VisitAtomLiteral(n *ast.AtomLiteral) {
	p.write(":" + n.Value)
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.write(n.Operator)
	n.Right.Accept(p)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	n.Left.Accept(p)
	p.write(" " + n.Operator + " ")
	n.Right.Accept(p)
}

func (p *CodePrinter) VisitLogicalExpression(n *ast.LogicalExpression) {
	n.Left.Accept(p)
	p.write(" " + n.Operator + " ")
	n.Right.Accept(p)
}

func (p *CodePrinter) VisitGroupingExpression(n *ast.GroupingExpression) {
	p.write("(")
	n.Inner.Accept(p)
	p.write(")")
}

func (p *CodePrinter) VisitAssignExpression(n *ast.AssignExpression) {
	p.write(n.Name.Name)
	p.write(" = ")
	n.Value.Accept(p)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	n.Callee.Accept(p)
	p.write("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			p.write(", ")
		}
		arg.Accept(p)
	}
	p.write(")")
}

func (p *CodePrinter) VisitIndexExpression(n *ast.IndexExpression) {
	n.Object.Accept(p)
	p.write("[")
	n.Index.Accept(p)
	p.write("]")
}

func (p *CodePrinter) VisitGetExpression(n *ast.GetExpression) {
	n.Object.Accept(p)
	p.write("." + n.Name.Name)
}

func (p *CodePrinter) VisitSetExpression(n *ast.SetExpression) {
	n.Object.Accept(p)
	p.write("." + n.Name.Name + " = ")
	n.Value.Accept(p)
}

func (p *CodePrinter) VisitSuperExpression(n *ast.SuperExpression) {
	p.write("super." + n.Method.Name)
}

func (p *CodePrinter) VisitThisExpression(_ *ast.ThisExpression) {
	p.write("this")
}

func (p *CodePrinter) VisitYieldExpression(n *ast.YieldExpression) {
	p.write("yield")
	if n.Value != nil {
		p.write(" ")
		n.Value.Accept(p)
	}
}

func (p *CodePrinter) VisitLambdaExpression(n *ast.LambdaExpression) {
	p.write("fun")
	p.writeGenerics(n.Generics)
	p.writeParameters(n.Params)
	if n.Return != nil {
		p.write(": ")
		n.Return.Accept(p)
	}
	p.write(" => ")
	n.Body.Accept(p)
}

func (p *CodePrinter) VisitListLiteral(n *ast.ListLiteral) {
	p.write("[")
	for i, elem := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		elem.Accept(p)
	}
	p.write("]")
}

func (p *CodePrinter) VisitMapLiteral(n *ast.MapLiteral) {
	p.write("{")
	for i := range n.Keys {
		if i > 0 {
			p.write(", ")
		}
		n.Keys[i].Accept(p)
		p.write(": ")
		n.Values[i].Accept(p)
	}
	p.write("}")
}

// --- Types ---

func (p *CodePrinter) VisitNamedType(n *ast.NamedType) {
	p.write(n.Name.Name)
	if len(n.Args) > 0 {
		p.write("<")
		for i, arg := range n.Args {
			if i > 0 {
				p.write(", ")
			}
			arg.Accept(p)
		}
		p.write(">")
	}
}

func (p *CodePrinter) VisitFunctorTypeNode(n *ast.FunctorTypeNode) {
	p.writeGenerics(n.Generics)
	p.write("(")
	for i, param := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		param.Accept(p)
	}
	p.write(") => ")
	if n.Return != nil {
		n.Return.Accept(p)
	}
}

func (p *CodePrinter) VisitUnionTypeNode(n *ast.UnionTypeNode) {
	n.Left.Accept(p)
	p.write(" | ")
	n.Right.Accept(p)
}
