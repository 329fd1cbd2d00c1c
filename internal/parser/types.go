package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/token"
)

// parseTypeAnnotation recognizes, in order: a generic functor
// <T>(args) => ret, a functor (args) => ret, and a named type with
// optional generic arguments. A trailing '|' builds a union.
func (p *Parser) parseTypeAnnotation() ast.Type {
	var left ast.Type

	switch p.curToken.Type {
	case token.LT:
		left = p.parseFunctorTypeNode()
	case token.LPAREN:
		left = p.parseFunctorTypeNode()
	case token.IDENT:
		left = p.parseNamedType()
	default:
		p.errorAtCurrent(diagnostics.ErrP001, "Expect type.")
		return nil
	}

	if left != nil && p.peekTokenIs(token.PIPE) {
		p.nextToken()
		pipeTok := p.curToken
		p.nextToken()
		right := p.parseTypeAnnotation()
		return &ast.UnionTypeNode{Token: pipeTok, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseNamedType() ast.Type {
	named := &ast.NamedType{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme},
	}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		for {
			p.nextToken()
			arg := p.parseTypeAnnotation()
			if arg == nil {
				return nil
			}
			named.Args = append(named.Args, arg)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.GT, "Expect '>' after generic arguments.") {
			return nil
		}
	}

	return named
}

// parseFunctorTypeNode parses <gs>(args) => ret with curToken on '<', or
// (args) => ret with curToken on '('.
func (p *Parser) parseFunctorTypeNode() ast.Type {
	fn := &ast.FunctorTypeNode{Token: p.curToken}

	if p.curTokenIs(token.LT) {
		fn.Generics = p.parseGenericParameters()
		if !p.expectPeek(token.LPAREN, "Expect '(' after generic parameters.") {
			return nil
		}
	}

	if !p.peekTokenIs(token.RPAREN) {
		for {
			p.nextToken()
			arg := p.parseTypeAnnotation()
			if arg == nil {
				return nil
			}
			fn.Params = append(fn.Params, arg)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RPAREN, "Expect ')' after argument types.") {
		return nil
	}

	if !p.expectPeek(token.FAT_ARROW, "Expect '=>' after argument types.") {
		return nil
	}
	p.nextToken()
	fn.Return = p.parseTypeAnnotation()

	return fn
}

// parseGenericParameters parses <name extends Bound, ...> with curToken
// on '<'; ends on '>'.
func (p *Parser) parseGenericParameters() []*ast.GenericParameter {
	params := []*ast.GenericParameter{}

	for {
		if !p.expectPeek(token.IDENT, "Expect generic parameter name.") {
			return params
		}
		gp := &ast.GenericParameter{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.EXTENDS) {
			p.nextToken()
			p.nextToken()
			gp.Extends = p.parseTypeAnnotation()
		}
		params = append(params, gp)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.GT, "Expect '>' after generic parameters.") {
		return params
	}
	return params
}
