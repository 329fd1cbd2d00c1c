package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/token"
)

// parseFunctionStatement parses fun name<gs>(params): R { body }.
// curToken must be on 'fun'.
func (p *Parser) parseFunctionStatement(kind ast.FunctionKind) ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken, Kind: kind}

	if !p.expectPeek(token.IDENT, "Expect function name.") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if kind == ast.FunctionKindMethod && stmt.Name.Name == ast.InitializerName {
		stmt.Kind = ast.FunctionKindInitializer
	}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.Generics = p.parseGenericParameters()
	}

	if !p.expectPeek(token.LPAREN, "Expect '(' after function name.") {
		return nil
	}
	stmt.Params = p.parseParameters()

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.Return = p.parseTypeAnnotation()
	}

	if !p.expectPeek(token.LBRACE, "Expect '{' before function body.") {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// parseParameters parses (name: Type, ...). curToken must be on '(' and
// ends on ')'.
func (p *Parser) parseParameters() []*ast.Parameter {
	params := []*ast.Parameter{}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		if !p.expectPeek(token.IDENT, "Expect parameter name.") {
			return params
		}
		param := &ast.Parameter{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.TypeAnnotation = p.parseTypeAnnotation()
		}
		params = append(params, param)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN, "Expect ')' after parameters.") {
		return params
	}
	return params
}

// parseMethodSignature parses a bodiless method declaration inside an
// interface. curToken must be on 'fun'.
func (p *Parser) parseMethodSignature() ast.Statement {
	sig := &ast.MethodSignature{Token: p.curToken, Kind: ast.FunctionKindMethod}

	if !p.expectPeek(token.IDENT, "Expect method name.") {
		return nil
	}
	sig.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if sig.Name.Name == ast.InitializerName {
		sig.Kind = ast.FunctionKindInitializer
	}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		sig.Generics = p.parseGenericParameters()
	}

	if !p.expectPeek(token.LPAREN, "Expect '(' after method name.") {
		return nil
	}
	sig.Params = p.parseParameters()

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		sig.Return = p.parseTypeAnnotation()
	}

	p.consumeOptionalSemicolon()
	return sig
}
