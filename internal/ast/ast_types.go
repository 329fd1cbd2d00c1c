package ast

import (
	"github.com/henry232323/saffron-lang/internal/token"
)

// --- Type System Nodes ---

// Type represents a type annotation node in the AST.
// E.g., Number, List<Number>, (Number) => Bool, Number | Nil
type Type interface {
	Node
	typeNode()
	GetToken() token.Token
}

// NamedType represents a simple named type like 'Number' or 'List<T>'.
type NamedType struct {
	Token token.Token // The type name token
	Name  *Identifier
	Args  []Type
}

func (nt *NamedType) Accept(v Visitor)      { v.VisitNamedType(nt) }
func (nt *NamedType) typeNode()             {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }

// FunctorTypeNode represents a function type annotation.
// <T>(T, Number) => T
type FunctorTypeNode struct {
	Token    token.Token // The '<' or '(' token
	Generics []*GenericParameter
	Params   []Type
	Return   Type // Optional
}

func (ft *FunctorTypeNode) Accept(v Visitor)      { v.VisitFunctorTypeNode(ft) }
func (ft *FunctorTypeNode) typeNode()             {}
func (ft *FunctorTypeNode) TokenLiteral() string  { return ft.Token.Lexeme }
func (ft *FunctorTypeNode) GetToken() token.Token { return ft.Token }

// UnionTypeNode represents a union annotation, e.g. Number | Nil.
type UnionTypeNode struct {
	Token token.Token // The '|' token
	Left  Type
	Right Type
}

func (ut *UnionTypeNode) Accept(v Visitor)      { v.VisitUnionTypeNode(ut) }
func (ut *UnionTypeNode) typeNode()             {}
func (ut *UnionTypeNode) TokenLiteral() string  { return ut.Token.Lexeme }
func (ut *UnionTypeNode) GetToken() token.Token { return ut.Token }

// GenericParameter declares a generic parameter with an optional bound.
// <T extends Printable>
type GenericParameter struct {
	Token   token.Token // The parameter name token
	Name    *Identifier
	Extends Type // Optional
}

func (gp *GenericParameter) GetToken() token.Token {
	if gp == nil {
		return token.Token{}
	}
	return gp.Token
}
