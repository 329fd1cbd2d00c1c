package ast

import (
	"github.com/henry232323/saffron-lang/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// FunctionKind distinguishes the contexts a function body can appear in.
type FunctionKind int

const (
	FunctionKindFunction FunctionKind = iota
	FunctionKindMethod
	FunctionKindInitializer
	FunctionKindLambda
)

func (k FunctionKind) String() string {
	switch k {
	case FunctionKindMethod:
		return "method"
	case FunctionKindInitializer:
		return "initializer"
	case FunctionKindLambda:
		return "lambda"
	default:
		return "function"
	}
}

// InitializerName is the method name that marks a class initializer.
const InitializerName = "init"

// Parameter is a single function parameter with an optional annotation.
type Parameter struct {
	Token          token.Token // The parameter name token
	Name           *Identifier
	TypeAnnotation Type // Optional
}

func (p *Parameter) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// VarStatement represents a variable declaration.
// var x: Number = 1
type VarStatement struct {
	Token          token.Token // The 'var' token
	Name           *Identifier
	TypeAnnotation Type       // Optional
	Value          Expression // Optional
}

func (vs *VarStatement) Accept(v Visitor)     { v.VisitVarStatement(vs) }
func (vs *VarStatement) statementNode()       {}
func (vs *VarStatement) TokenLiteral() string { return vs.Token.Lexeme }
func (vs *VarStatement) GetToken() token.Token {
	if vs == nil {
		return token.Token{}
	}
	return vs.Token
}

// BlockStatement is a braced statement sequence.
type BlockStatement struct {
	Token      token.Token // The '{' token
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor)     { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// FunctionStatement represents a named function or method declaration.
// fun add<T>(x: T, y: T): T { ... }
type FunctionStatement struct {
	Token    token.Token // The 'fun' token
	Name     *Identifier
	Kind     FunctionKind
	Generics []*GenericParameter
	Params   []*Parameter
	Return   Type // Optional
	Body     *BlockStatement
}

func (fs *FunctionStatement) Accept(v Visitor)     { v.VisitFunctionStatement(fs) }
func (fs *FunctionStatement) statementNode()       {}
func (fs *FunctionStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// ClassStatement represents a class declaration. The body holds
// VarStatement fields and FunctionStatement methods.
type ClassStatement struct {
	Token      token.Token // The 'class' token
	Name       *Identifier
	Generics   []*GenericParameter
	Superclass *Identifier // Optional
	Body       []Statement
}

func (cs *ClassStatement) Accept(v Visitor)     { v.VisitClassStatement(cs) }
func (cs *ClassStatement) statementNode()       {}
func (cs *ClassStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *ClassStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}

// InterfaceStatement represents an interface declaration. The body holds
// VarStatement fields and MethodSignature entries.
type InterfaceStatement struct {
	Token     token.Token // The 'interface' token
	Name      *Identifier
	Generics  []*GenericParameter
	Supertype Type // Optional
	Body      []Statement
}

func (is *InterfaceStatement) Accept(v Visitor)     { v.VisitInterfaceStatement(is) }
func (is *InterfaceStatement) statementNode()       {}
func (is *InterfaceStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *InterfaceStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// MethodSignature is a bodiless method declaration inside an interface.
type MethodSignature struct {
	Token    token.Token // The 'fun' token
	Name     *Identifier
	Kind     FunctionKind
	Generics []*GenericParameter
	Params   []*Parameter
	Return   Type // Optional
}

func (ms *MethodSignature) Accept(v Visitor)     { v.VisitMethodSignature(ms) }
func (ms *MethodSignature) statementNode()       {}
func (ms *MethodSignature) TokenLiteral() string { return ms.Token.Lexeme }
func (ms *MethodSignature) GetToken() token.Token {
	if ms == nil {
		return token.Token{}
	}
	return ms.Token
}

// IfStatement represents a conditional with an optional else branch.
type IfStatement struct {
	Token     token.Token // The 'if' token
	Condition Expression
	Then      Statement
	Else      Statement // Optional
}

func (is *IfStatement) Accept(v Visitor)     { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// WhileStatement represents a while loop.
type WhileStatement struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) Accept(v Visitor)     { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// ForStatement represents a C-style for loop. All three header slots are
// optional.
type ForStatement struct {
	Token     token.Token // The 'for' token
	Init      Statement
	Condition Expression
	Increment Expression
	Body      Statement
}

func (fs *ForStatement) Accept(v Visitor)     { v.VisitForStatement(fs) }
func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// ReturnStatement represents a return with an optional value.
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression  // Optional
}

func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// BreakStatement represents a loop break.
type BreakStatement struct {
	Token token.Token // The 'break' token
}

func (bs *BreakStatement) Accept(v Visitor)     { v.VisitBreakStatement(bs) }
func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// ImportStatement binds a module under an alias.
// import "collections/deque" as Deque
type ImportStatement struct {
	Token token.Token // The 'import' token
	Path  *StringLiteral
	Alias *Identifier
}

func (is *ImportStatement) Accept(v Visitor)     { v.VisitImportStatement(is) }
func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// TypeDeclarationStatement declares a type alias.
// type Predicate<T> = (T) => Bool
type TypeDeclarationStatement struct {
	Token    token.Token // The 'type' token
	Name     *Identifier
	Generics []*GenericParameter
	Target   Type
}

func (ts *TypeDeclarationStatement) Accept(v Visitor)     { v.VisitTypeDeclarationStatement(ts) }
func (ts *TypeDeclarationStatement) statementNode()       {}
func (ts *TypeDeclarationStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *TypeDeclarationStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// EnumStatement declares an enumeration of named items.
// enum Color { Red, Green, Blue }
type EnumStatement struct {
	Token token.Token // The 'enum' token
	Name  *Identifier
	Items []*EnumItem
}

func (es *EnumStatement) Accept(v Visitor)     { v.VisitEnumStatement(es) }
func (es *EnumStatement) statementNode()       {}
func (es *EnumStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *EnumStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// EnumItem is a single enumeration member.
type EnumItem struct {
	Token token.Token
	Name  *Identifier
}

func (ei *EnumItem) GetToken() token.Token {
	if ei == nil {
		return token.Token{}
	}
	return ei.Token
}
