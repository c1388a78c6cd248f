package dsl

import (
	"fmt"
	"strconv"

	"github.com/dryack/gDiceTable/core/dice"
)

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenInt
	TokenFloat
	TokenDice
	TokenAdd
	TokenSubtract
	TokenMultiply
	TokenDivide
	TokenFloorDivide
	TokenModulo
	TokenPower
	TokenOpenParen
	TokenCloseParen
	TokenUnaryMinus
)

var tokenNames = [...]string{
	TokenEOF:         "EOF",
	TokenInt:         "int",
	TokenFloat:       "float",
	TokenDice:        "dice",
	TokenAdd:         "+",
	TokenSubtract:    "-",
	TokenMultiply:    "*",
	TokenDivide:      "/",
	TokenFloorDivide: "//",
	TokenModulo:      "%",
	TokenPower:       "**",
	TokenOpenParen:   "(",
	TokenCloseParen:  ")",
	TokenUnaryMinus:  "unary -",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// IsValue reports whether tokens of this kind produce operands.
func (k TokenKind) IsValue() bool {
	return k == TokenInt || k == TokenFloat || k == TokenDice
}

// Token is a single lexeme. Only the payload matching Kind is set.
type Token struct {
	Kind  TokenKind
	Pos   int
	Int   int64
	Float float64
	Dice  dice.Dice
}

func (t Token) String() string {
	switch t.Kind {
	case TokenInt:
		return strconv.FormatInt(t.Int, 10)
	case TokenFloat:
		return formatFloat(t.Float)
	case TokenDice:
		return t.Dice.String()
	default:
		return t.Kind.String()
	}
}

// Precedence tiers, low to high.
const (
	PrecedenceAddSub = 10
	PrecedenceMulDiv = 20
	PrecedencePower  = 30
	PrecedenceValue  = 100
)

// OperatorInfo describes how the parser reduces an operator token.
type OperatorInfo struct {
	Precedence int
	LeftAssoc  bool
	Arity      int
	Build      func(operands []Node) Node
}

func binary(op Operator) func([]Node) Node {
	return func(args []Node) Node {
		return &BinaryOp{Op: op, Left: args[0], Right: args[1]}
	}
}

var operators = map[TokenKind]OperatorInfo{
	TokenAdd:         {Precedence: PrecedenceAddSub, LeftAssoc: true, Arity: 2, Build: binary(OpAdd)},
	TokenSubtract:    {Precedence: PrecedenceAddSub, LeftAssoc: true, Arity: 2, Build: binary(OpSubtract)},
	TokenMultiply:    {Precedence: PrecedenceMulDiv, LeftAssoc: true, Arity: 2, Build: binary(OpMultiply)},
	TokenDivide:      {Precedence: PrecedenceMulDiv, LeftAssoc: true, Arity: 2, Build: binary(OpDivide)},
	TokenFloorDivide: {Precedence: PrecedenceMulDiv, LeftAssoc: true, Arity: 2, Build: binary(OpFloorDivide)},
	TokenModulo:      {Precedence: PrecedenceMulDiv, LeftAssoc: true, Arity: 2, Build: binary(OpModulo)},
	TokenPower:       {Precedence: PrecedencePower, LeftAssoc: false, Arity: 2, Build: binary(OpPower)},
	TokenUnaryMinus: {Precedence: PrecedenceValue, LeftAssoc: false, Arity: 1, Build: func(args []Node) Node {
		return &Negate{Operand: args[0]}
	}},
}

// Operators returns the static operator table entry for kind.
func Operators(kind TokenKind) (OperatorInfo, bool) {
	info, ok := operators[kind]
	return info, ok
}

func (t Token) leaf() (Node, error) {
	switch t.Kind {
	case TokenInt:
		return &Literal{Value: IntNumber(t.Int)}, nil
	case TokenFloat:
		return &Literal{Value: FloatNumber(t.Float)}, nil
	case TokenDice:
		return &DiceRef{Dice: t.Dice}, nil
	}
	return nil, fmt.Errorf("token %s is not a value", t.Kind)
}
