package diagnostics

import (
	"fmt"

	"github.com/henry232323/saffron-lang/internal/token"
)

type ErrorCode string

// Parser error codes.
const (
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // invalid assignment target
	ErrP003 ErrorCode = "P003" // class inherits from itself
	ErrP004 ErrorCode = "P004" // interface extends itself
	ErrP005 ErrorCode = "P005" // pipe target is not a call
	ErrP006 ErrorCode = "P006" // malformed declaration
)

// Checker error codes.
const (
	ErrT001 ErrorCode = "T001" // type mismatch
	ErrT002 ErrorCode = "T002" // undefined variable
	ErrT003 ErrorCode = "T003" // undefined type
	ErrT004 ErrorCode = "T004" // invalid field
	ErrT005 ErrorCode = "T005" // generic arity mismatch
	ErrT006 ErrorCode = "T006" // call of a non-function
	ErrT007 ErrorCode = "T007" // wrong argument count
	ErrT008 ErrorCode = "T008" // invalid statement context
)

// Runtime error codes.
const (
	ErrR001 ErrorCode = "R001" // malformed yield value
)

// DiagnosticError is a positioned front-end error. It satisfies the error
// interface so pipeline stages can hand diagnostics around as plain errors.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Lexeme  string
	Line    int
	Column  int
	File    string
}

// NewError builds a diagnostic anchored at tok. An EOF token is reported
// as "end" since it has no lexeme of its own.
func NewError(code ErrorCode, tok token.Token, msg string) *DiagnosticError {
	lexeme := tok.Lexeme
	if tok.Type == token.EOF {
		lexeme = "end"
	}
	return &DiagnosticError{
		Code:    code,
		Message: msg,
		Lexeme:  lexeme,
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *DiagnosticError) Error() string {
	where := ""
	if e.Lexeme != "" {
		where = fmt.Sprintf(" at '%s'", e.Lexeme)
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d [%s] Error%s: %s", e.File, e.Line, e.Code, where, e.Message)
	}
	return fmt.Sprintf("[line %d] [%s] Error%s: %s", e.Line, e.Code, where, e.Message)
}
