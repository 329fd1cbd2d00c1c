package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/token"
)

func (p *Parser) parseCallExpression(callee ast.Expression, _ bool) ast.Expression {
	exp := &ast.CallExpression{Token: p.curToken, Callee: callee}
	exp.Arguments = p.parseCallArguments()
	return exp
}

func (p *Parser) parseCallArguments() []ast.Expression {
	args := []ast.Expression{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(token.RPAREN, "Expect ')' after arguments.") {
		return nil
	}
	return args
}

func (p *Parser) parseIndexExpression(object ast.Expression, _ bool) ast.Expression {
	exp := &ast.IndexExpression{Token: p.curToken, Object: object}

	p.nextToken()
	exp.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(token.RBRACKET, "Expect ']' after index.") {
		return nil
	}
	return exp
}

// parseDotExpression handles property reads and, when assignment is
// permitted and '=' follows the name, property writes. The receiver may
// itself be a dot chain, so a.b.c = x assigns through the full chain.
func (p *Parser) parseDotExpression(object ast.Expression, canAssign bool) ast.Expression {
	if !p.expectPeek(token.IDENT, "Expect property name after '.'.") {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if canAssign && p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(ASSIGNMENT)
		return &ast.SetExpression{Token: name.Token, Object: object, Name: name, Value: value}
	}

	return &ast.GetExpression{Token: name.Token, Object: object, Name: name}
}

// parsePipeExpression rewrites left |> call(args) into call(left, args).
// The right side parses one level above the pipe itself, so chains
// associate left and the trailing call binds to its own callee.
func (p *Parser) parsePipeExpression(left ast.Expression, _ bool) ast.Expression {
	pipeTok := p.curToken
	p.nextToken()

	right := p.parseExpression(PIPE)
	call, ok := right.(*ast.CallExpression)
	if !ok {
		p.errorAt(pipeTok, diagnostics.ErrP005, "Pipe target must be a call.")
		return left
	}

	call.Arguments = append([]ast.Expression{left}, call.Arguments...)
	return call
}

func (p *Parser) parseSuperExpression(_ bool) ast.Expression {
	exp := &ast.SuperExpression{Token: p.curToken}

	if !p.expectPeek(token.DOT, "Expect '.' after 'super'.") {
		return nil
	}
	if !p.expectPeek(token.IDENT, "Expect superclass method name.") {
		return nil
	}
	exp.Method = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}
	return exp
}

func (p *Parser) parseThisExpression(_ bool) ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

// parseLambdaExpression parses fun<gs>(p: T): R => body. A single
// expression body is sugared into a return inside a block.
func (p *Parser) parseLambdaExpression(_ bool) ast.Expression {
	lambda := &ast.LambdaExpression{Token: p.curToken}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		lambda.Generics = p.parseGenericParameters()
	}

	if !p.expectPeek(token.LPAREN, "Expect '(' after 'fun'.") {
		return nil
	}
	lambda.Params = p.parseParameters()

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		lambda.Return = p.parseTypeAnnotation()
	}

	if !p.expectPeek(token.FAT_ARROW, "Expect '=>' before lambda body.") {
		return nil
	}

	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		lambda.Body = p.parseBlockStatement()
		return lambda
	}

	arrowTok := p.curToken
	p.nextToken()
	value := p.parseExpression(ASSIGNMENT)
	lambda.Body = &ast.BlockStatement{
		Token: arrowTok,
		Statements: []ast.Statement{
			&ast.ReturnStatement{Token: arrowTok, Value: value},
		},
	}
	return lambda
}
