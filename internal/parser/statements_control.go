package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/diagnostics"
	"github.com/henry232323/saffron-lang/internal/token"
)

func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT, "Expect variable name.") {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.TypeAnnotation = p.parseTypeAnnotation()
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}

	p.consumeOptionalSemicolon()
	return stmt
}

// parseBlockStatement parses { ... }; curToken must be on '{' and ends on
// the closing '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		p.errorAtCurrent(diagnostics.ErrP001, "Expect '}' after block.")
	}
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN, "Expect '(' after 'if'.") {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "Expect ')' after condition.") {
		return nil
	}

	p.nextToken()
	stmt.Then = p.parseStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN, "Expect '(' after 'while'.") {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN, "Expect ')' after condition.") {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN, "Expect '(' after 'for'.") {
		return nil
	}

	// Initializer clause.
	p.nextToken()
	switch p.curToken.Type {
	case token.SEMICOLON:
		// No initializer.
	case token.VAR:
		stmt.Init = p.parseVarStatement()
		p.requireSemicolonConsumed("Expect ';' after loop initializer.")
	default:
		init := &ast.ExpressionStatement{Token: p.curToken}
		init.Expression = p.parseExpression(LOWEST)
		stmt.Init = init
		if !p.expectPeek(token.SEMICOLON, "Expect ';' after loop initializer.") {
			return nil
		}
	}

	// Condition clause.
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Condition = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON, "Expect ';' after loop condition.") {
		return nil
	}

	// Increment clause.
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		stmt.Increment = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.RPAREN, "Expect ')' after for clauses.") {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()
	return stmt
}

// requireSemicolonConsumed verifies the previous clause ended on ';'.
// parseVarStatement consumes an optional trailing semicolon, so inside a
// for header the semicolon has already been eaten when present.
func (p *Parser) requireSemicolonConsumed(msg string) {
	if !p.curTokenIs(token.SEMICOLON) {
		p.errorAt(p.peekToken, diagnostics.ErrP001, msg)
	}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if !p.peekTokenIs(token.SEMICOLON) && !p.peekTokenIs(token.RBRACE) &&
		!p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}

	p.consumeOptionalSemicolon()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	p.consumeOptionalSemicolon()
	return stmt
}

func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}

	if !p.expectPeek(token.STRING, "Expect module path string after 'import'.") {
		return nil
	}
	path, ok := p.curToken.Literal.(string)
	if !ok {
		p.errorAtCurrent(diagnostics.ErrP001, "Invalid module path.")
		return nil
	}
	stmt.Path = &ast.StringLiteral{Token: p.curToken, Value: path}

	if !p.expectPeek(token.AS, "Expect 'as' after module path.") {
		return nil
	}
	if !p.expectPeek(token.IDENT, "Expect module alias name.") {
		return nil
	}
	stmt.Alias = &ast.Identifier{Token: p.curToken, Name: p.curToken.Lexeme}

	p.consumeOptionalSemicolon()
	return stmt
}
