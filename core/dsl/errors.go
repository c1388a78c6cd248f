package dsl

import (
	"errors"
	"fmt"
)

// Lexical errors.
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnexpectedEOF       = errors.New("unexpected EOF")
	ErrNumberRange         = errors.New("number out of range")
)

// Syntax errors.
var (
	ErrMismatchedParenthesis = errors.New("mismatched parenthesis")
	ErrMultipleRoots         = errors.New("parsing error: more than one node at root")
	ErrMissingOperand        = errors.New("missing operand")
	ErrEmptyExpression       = errors.New("empty expression")
)

// Evaluation errors.
var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrArithmeticDomain = errors.New("arithmetic domain error")
)

// LexError reports a failure to scan the input at Pos.
type LexError struct {
	Pos  int
	Char rune
	Err  error
}

func (e *LexError) Error() string {
	if errors.Is(e.Err, ErrUnexpectedCharacter) {
		return fmt.Sprintf("%v %q at position %d", e.Err, e.Char, e.Pos)
	}
	return fmt.Sprintf("%v at position %d", e.Err, e.Pos)
}

func (e *LexError) Unwrap() error { return e.Err }

// SyntaxError reports a token stream that does not form one expression.
type SyntaxError struct {
	Pos int
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v at position %d", e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// IsParseError reports whether err came from lexing or parsing.
func IsParseError(err error) bool {
	var lexErr *LexError
	var synErr *SyntaxError
	return errors.As(err, &lexErr) || errors.As(err, &synErr)
}

// IsEvalError reports whether err is an arithmetic failure raised while
// evaluating an expression.
func IsEvalError(err error) bool {
	return errors.Is(err, ErrDivisionByZero) || errors.Is(err, ErrArithmeticDomain)
}
