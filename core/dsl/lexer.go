package dsl

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/dryack/gDiceTable/core/dice"
)

// NextToken scans the token starting at or after pos. It returns the
// position just past the token. At end of input it returns a TokenEOF.
func NextToken(input string, pos int) (int, Token, error) {
	pos = skipSpace(input, pos)
	if pos >= len(input) {
		return pos, Token{Kind: TokenEOF, Pos: pos}, nil
	}

	c := input[pos]
	if isDigit(c) {
		return scanNumber(input, pos)
	}

	single := func(kind TokenKind) (int, Token, error) {
		return pos + 1, Token{Kind: kind, Pos: pos}, nil
	}
	double := func(kind TokenKind) (int, Token, error) {
		return pos + 2, Token{Kind: kind, Pos: pos}, nil
	}
	switch c {
	case '+':
		return single(TokenAdd)
	case '-':
		return single(TokenSubtract)
	case '*':
		if peek(input, pos+1) == '*' {
			return double(TokenPower)
		}
		return single(TokenMultiply)
	case '/':
		if peek(input, pos+1) == '/' {
			return double(TokenFloorDivide)
		}
		return single(TokenDivide)
	case '%':
		return single(TokenModulo)
	case '(':
		return single(TokenOpenParen)
	case ')':
		return single(TokenCloseParen)
	}
	return pos, Token{}, unexpected(input, pos)
}

// Tokenize scans the whole input. The trailing EOF token is not included.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for {
		next, tok, err := NextToken(input, pos)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
		pos = next
	}
}

func scanNumber(input string, start int) (int, Token, error) {
	pos, err := scanDigits(input, start)
	if err != nil {
		return pos, Token{}, err
	}

	switch peek(input, pos) {
	case '.':
		pos, err = scanDigits(input, pos+1)
		if err != nil {
			return pos, Token{}, err
		}
		if c := peek(input, pos); c == 'e' || c == 'E' {
			return scanExponent(input, start, pos+1)
		}
		return finishFloat(input, start, pos)
	case 'e', 'E':
		return scanExponent(input, start, pos+1)
	case 'd':
		return scanDice(input, start, pos)
	}

	n, err := strconv.ParseInt(input[start:pos], 10, 64)
	if err != nil {
		return pos, Token{}, &LexError{Pos: start, Err: ErrNumberRange}
	}
	return pos, Token{Kind: TokenInt, Pos: start, Int: n}, nil
}

func scanExponent(input string, start, pos int) (int, Token, error) {
	if c := peek(input, pos); c == '+' || c == '-' {
		pos++
	}
	pos, err := scanDigits(input, pos)
	if err != nil {
		return pos, Token{}, err
	}
	return finishFloat(input, start, pos)
}

func finishFloat(input string, start, pos int) (int, Token, error) {
	f, err := strconv.ParseFloat(input[start:pos], 64)
	if err != nil {
		return pos, Token{}, &LexError{Pos: start, Err: ErrNumberRange}
	}
	return pos, Token{Kind: TokenFloat, Pos: start, Float: f}, nil
}

// scanDice finishes a dice specifier; pos points at the 'd'.
func scanDice(input string, start, pos int) (int, Token, error) {
	count, err := strconv.Atoi(input[start:pos])
	if err != nil {
		return pos, Token{}, &LexError{Pos: start, Err: ErrNumberRange}
	}
	pos, sides, err := scanInt(input, pos+1)
	if err != nil {
		return pos, Token{}, err
	}

	var dropLow, dropHigh int
	switch peek(input, pos) {
	case 'H':
		if pos, dropHigh, err = scanInt(input, pos+1); err != nil {
			return pos, Token{}, err
		}
		if peek(input, pos) == 'L' {
			if pos, dropLow, err = scanInt(input, pos+1); err != nil {
				return pos, Token{}, err
			}
		}
	case 'L':
		if pos, dropLow, err = scanInt(input, pos+1); err != nil {
			return pos, Token{}, err
		}
		if peek(input, pos) == 'H' {
			if pos, dropHigh, err = scanInt(input, pos+1); err != nil {
				return pos, Token{}, err
			}
		}
	}

	d, err := dice.New(count, sides, dropLow, dropHigh)
	if err != nil {
		return pos, Token{}, &LexError{Pos: start, Err: err}
	}
	return pos, Token{Kind: TokenDice, Pos: start, Dice: d}, nil
}

func scanInt(input string, pos int) (int, int, error) {
	end, err := scanDigits(input, pos)
	if err != nil {
		return end, 0, err
	}
	n, err := strconv.Atoi(input[pos:end])
	if err != nil {
		return end, 0, &LexError{Pos: pos, Err: ErrNumberRange}
	}
	return end, n, nil
}

// scanDigits consumes a non-empty run of ASCII digits.
func scanDigits(input string, pos int) (int, error) {
	if pos >= len(input) {
		return pos, &LexError{Pos: pos, Err: ErrUnexpectedEOF}
	}
	start := pos
	for pos < len(input) && isDigit(input[pos]) {
		pos++
	}
	if pos == start {
		return pos, unexpected(input, pos)
	}
	return pos, nil
}

func unexpected(input string, pos int) error {
	r, _ := utf8.DecodeRuneInString(input[pos:])
	return &LexError{Pos: pos, Char: r, Err: ErrUnexpectedCharacter}
}

func skipSpace(input string, pos int) int {
	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

func peek(input string, pos int) byte {
	if pos < len(input) {
		return input[pos]
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

