// Package dsl lexes, parses and evaluates dice expressions such as "4d6L1+2".
package dsl

// Expression is a parsed dice expression. It is immutable and safe to
// evaluate from multiple goroutines.
type Expression struct {
	Source string
	Root   Node
}

// String renders the canonical form of the expression.
func (e *Expression) String() string {
	return e.Root.String()
}

type parser struct {
	output    []Node
	operators []Token
}

// Parse turns source into an expression tree using the shunting-yard
// algorithm. Lexical failures are returned as *LexError; malformed token
// streams as *SyntaxError.
func Parse(source string) (*Expression, error) {
	p := &parser{}
	last := TokenEOF
	pos := 0

	for {
		next, tok, err := NextToken(source, pos)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			break
		}
		pos = next
		operand := last.IsValue() || last == TokenCloseParen

		// Two operands with nothing joining them, e.g. "1 2" or "(1)(2)".
		if operand && (tok.Kind.IsValue() || tok.Kind == TokenOpenParen) {
			return nil, &SyntaxError{Pos: tok.Pos, Err: ErrMultipleRoots}
		}

		switch {
		case tok.Kind.IsValue():
			leaf, err := tok.leaf()
			if err != nil {
				return nil, err
			}
			p.output = append(p.output, leaf)

		case tok.Kind == TokenOpenParen:
			p.operators = append(p.operators, tok)

		case tok.Kind == TokenCloseParen:
			if err := p.closeParen(tok); err != nil {
				return nil, err
			}

		default:
			if tok.Kind == TokenSubtract && !operand {
				tok.Kind = TokenUnaryMinus
			}
			if tok.Kind != TokenUnaryMinus && !operand {
				return nil, &SyntaxError{Pos: tok.Pos, Err: ErrMissingOperand}
			}
			if err := p.pushOperator(tok); err != nil {
				return nil, err
			}
		}

		last = tok.Kind
	}

	for len(p.operators) > 0 {
		top := p.pop()
		if top.Kind == TokenOpenParen {
			return nil, &SyntaxError{Pos: top.Pos, Err: ErrMismatchedParenthesis}
		}
		if err := p.reduce(top); err != nil {
			return nil, err
		}
	}

	switch len(p.output) {
	case 0:
		return nil, &SyntaxError{Pos: -1, Err: ErrEmptyExpression}
	case 1:
		return &Expression{Source: source, Root: p.output[0]}, nil
	default:
		return nil, &SyntaxError{Pos: -1, Err: ErrMultipleRoots}
	}
}

// MustParse is like Parse but panics on error.
func MustParse(source string) *Expression {
	e, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return e
}

func (p *parser) closeParen(tok Token) error {
	for {
		if len(p.operators) == 0 {
			return &SyntaxError{Pos: tok.Pos, Err: ErrMismatchedParenthesis}
		}
		top := p.pop()
		if top.Kind == TokenOpenParen {
			return nil
		}
		if err := p.reduce(top); err != nil {
			return err
		}
	}
}

func (p *parser) pushOperator(tok Token) error {
	o1 := operators[tok.Kind]
	for len(p.operators) > 0 {
		top := p.operators[len(p.operators)-1]
		if top.Kind == TokenOpenParen {
			break
		}
		o2 := operators[top.Kind]
		if !(o2.Precedence > o1.Precedence || (o2.Precedence == o1.Precedence && o1.LeftAssoc)) {
			break
		}
		p.pop()
		if err := p.reduce(top); err != nil {
			return err
		}
	}
	p.operators = append(p.operators, tok)
	return nil
}

func (p *parser) pop() Token {
	top := p.operators[len(p.operators)-1]
	p.operators = p.operators[:len(p.operators)-1]
	return top
}

// reduce pops the operator's operands off the output stack and pushes the
// node it builds.
func (p *parser) reduce(tok Token) error {
	info := operators[tok.Kind]
	if len(p.output) < info.Arity {
		return &SyntaxError{Pos: tok.Pos, Err: ErrMissingOperand}
	}
	split := len(p.output) - info.Arity
	args := make([]Node, info.Arity)
	copy(args, p.output[split:])
	p.output = append(p.output[:split], info.Build(args))
	return nil
}
