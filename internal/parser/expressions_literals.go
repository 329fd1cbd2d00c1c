package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/token"
)

func (p *Parser) parseNumberLiteral(_ bool) ast.Expression {
	value, ok := p.curToken.Literal.(float64)
	if !ok {
		p.errorAtCurrent(diagnostics.ErrP001, "Invalid number literal.")
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral(_ bool) ast.Expression {
	value, ok := p.curToken.Literal.(string)
	if !ok {
		p.errorAtCurrent(diagnostics.ErrP001, "Invalid string literal.")
		return nil
	}
	return &ast.StringLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseAtomLiteral(_ bool) ast.Expression {
	value, ok := p.curToken.Literal.(string)
	if !ok {
		p.errorAtCurrent(diagnostics.ErrP001, "Invalid atom literal.")
		return nil
	}
	return &ast.AtomLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseBooleanLiteral(_ bool) ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNilLiteral(_ bool) ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseListLiteral(_ bool) ast.Expression {
	lit := &ast.ListLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return lit
	}

	p.nextToken()
	lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		lit.Elements = append(lit.Elements, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(token.RBRACKET, "Expect ']' after list elements.") {
		return nil
	}
	return lit
}

func (p *Parser) parseMapLiteral(_ bool) ast.Expression {
	lit := &ast.MapLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return lit
	}

	for {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.COLON, "Expect ':' after map key.") {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)

		lit.Keys = append(lit.Keys, key)
		lit.Values = append(lit.Values, value)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACE, "Expect '}' after map entries.") {
		return nil
	}
	return lit
}
