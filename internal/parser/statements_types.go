package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/token"
)

func (p *Parser) parseClassStatement() ast.Statement {
	stmt := &ast.ClassStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT, "Expect class name.") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.Generics = p.parseGenericParameters()
	}

	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT, "Expect superclass name.") {
			return nil
		}
		stmt.Superclass = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}
		if stmt.Superclass.Name == stmt.Name.Name {
			p.errorAtCurrent(diagnostics.ErrP003, "A class can't inherit from itself.")
		}
	}

	if !p.expectPeek(token.LBRACE, "Expect '{' before class body.") {
		return nil
	}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		var member ast.Statement
		switch p.curToken.Type {
		case token.VAR:
			member = p.parseVarStatement()
		case token.FUN:
			member = p.parseFunctionStatement(ast.FunctionKindMethod)
		default:
			p.errorAtCurrent(diagnostics.ErrP006, "Expect field or method declaration in class body.")
		}
		if member != nil {
			stmt.Body = append(stmt.Body, member)
		}
		if p.panicMode {
			p.synchronize()
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.errorAtCurrent(diagnostics.ErrP001, "Expect '}' after class body.")
	}
	return stmt
}

func (p *Parser) parseInterfaceStatement() ast.Statement {
	stmt := &ast.InterfaceStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT, "Expect interface name.") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.Generics = p.parseGenericParameters()
	}

	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken()
		p.nextToken()
		stmt.Supertype = p.parseTypeAnnotation()
		if named, ok := stmt.Supertype.(*ast.NamedType); ok && named.Name.Name == stmt.Name.Name {
			p.errorAtCurrent(diagnostics.ErrP004, "An interface can't extend itself.")
		}
	}

	if !p.expectPeek(token.LBRACE, "Expect '{' before interface body.") {
		return nil
	}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		var member ast.Statement
		switch p.curToken.Type {
		case token.VAR:
			member = p.parseVarStatement()
		case token.FUN:
			member = p.parseMethodSignature()
		default:
			p.errorAtCurrent(diagnostics.ErrP006, "Expect field or method signature in interface body.")
		}
		if member != nil {
			stmt.Body = append(stmt.Body, member)
		}
		if p.panicMode {
			p.synchronize()
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.errorAtCurrent(diagnostics.ErrP001, "Expect '}' after interface body.")
	}
	return stmt
}

func (p *Parser) parseTypeDeclarationStatement() ast.Statement {
	stmt := &ast.TypeDeclarationStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT, "Expect type name.") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.Generics = p.parseGenericParameters()
	}

	if !p.expectPeek(token.ASSIGN, "Expect '=' after type name.") {
		return nil
	}
	p.nextToken()
	stmt.Target = p.parseTypeAnnotation()

	p.consumeOptionalSemicolon()
	return stmt
}

func (p *Parser) parseEnumStatement() ast.Statement {
	stmt := &ast.EnumStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT, "Expect enum name.") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if !p.expectPeek(token.LBRACE, "Expect '{' before enum body.") {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT, "Expect enum item name.") {
			return nil
		}
		item := &ast.EnumItem{
			Token: p.curToken,
			Name:  &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme},
		}
		stmt.Items = append(stmt.Items, item)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	if !p.expectPeek(token.RBRACE, "Expect '}' after enum body.") {
		return nil
	}
	return stmt
}
