package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	canAssign := precedence <= ASSIGNMENT

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorAtCurrent(diagnostics.ErrP001, "Expect expression.")
		return nil
	}
	leftExp := prefix(canAssign)

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp, canAssign)
	}

	// An '=' still pending after the climb means the left side was not
	// a valid assignment target.
	if canAssign && p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.errorAtCurrent(diagnostics.ErrP002, "Invalid assignment target.")
	}

	return leftExp
}

func (p *Parser) parsePrefixExpression(_ bool) ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(UNARY)
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression, _ bool) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseLogicalExpression(left ast.Expression, _ bool) ast.Expression {
	expression := &ast.LogicalExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseGroupingExpression(_ bool) ast.Expression {
	expression := &ast.GroupingExpression{Token: p.curToken}
	p.nextToken()
	expression.Inner = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "Expect ')' after expression.") {
		return nil
	}
	return expression
}

func (p *Parser) parseIdentifier(canAssign bool) ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if canAssign && p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		assignTok := p.curToken
		p.nextToken()
		value := p.parseExpression(ASSIGNMENT)
		return &ast.AssignExpression{Token: assignTok, Name: ident, Value: value}
	}

	return ident
}

func (p *Parser) parseYieldExpression(_ bool) ast.Expression {
	expression := &ast.YieldExpression{Token: p.curToken}

	if p.yieldHasValue() {
		p.nextToken()
		expression.Value = p.parseExpression(YIELD)
	}

	return expression
}

// yieldHasValue decides whether the token after 'yield' starts an
// expression or terminates the yield.
func (p *Parser) yieldHasValue() bool {
	switch p.peekToken.Type {
	case token.SEMICOLON, token.RPAREN, token.RBRACE, token.RBRACKET,
		token.COMMA, token.EOF:
		return false
	}
	return true
}
