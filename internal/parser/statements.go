package parser

import (
	"github.com/henry232323/saffron-lang/internal/ast"
	"github.com/henry232323/saffron-lang/internal/token"
)

// parseDeclaration dispatches on a leading declaration keyword and falls
// through to plain statements. On a syntax error it resynchronizes at the
// next statement boundary.
func (p *Parser) parseDeclaration() ast.Statement {
	var stmt ast.Statement

	switch p.curToken.Type {
	case token.CLASS:
		stmt = p.parseClassStatement()
	case token.FUN:
		// A bare 'fun' without a name is a lambda in expression position.
		if p.peekTokenIs(token.IDENT) {
			stmt = p.parseFunctionStatement(ast.FunctionKindFunction)
		} else {
			stmt = p.parseExpressionStatement()
		}
	case token.VAR:
		stmt = p.parseVarStatement()
	case token.INTERFACE:
		stmt = p.parseInterfaceStatement()
	case token.TYPE:
		stmt = p.parseTypeDeclarationStatement()
	case token.ENUM:
		stmt = p.parseEnumStatement()
	case token.IMPORT:
		stmt = p.parseImportStatement()
	default:
		stmt = p.parseStatement()
	}

	if p.panicMode {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	p.consumeOptionalSemicolon()
	return stmt
}

// consumeOptionalSemicolon eats a trailing ';' if present.
func (p *Parser) consumeOptionalSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}
