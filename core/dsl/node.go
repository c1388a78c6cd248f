package dsl

import (
	"github.com/dryack/gDiceTable/core/dice"
)

// Operator is a binary arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpFloorDivide
	OpModulo
	OpPower
)

var operatorSymbols = [...]string{
	OpAdd:         "+",
	OpSubtract:    "-",
	OpMultiply:    "*",
	OpDivide:      "/",
	OpFloorDivide: "//",
	OpModulo:      "%",
	OpPower:       "**",
}

func (o Operator) String() string {
	return operatorSymbols[o]
}

// Precedence returns the binding strength of o.
func (o Operator) Precedence() int {
	switch o {
	case OpAdd, OpSubtract:
		return PrecedenceAddSub
	case OpMultiply, OpDivide, OpFloorDivide, OpModulo:
		return PrecedenceMulDiv
	case OpPower:
		return PrecedencePower
	}
	panic("unknown operator: " + o.String())
}

// A Node is a sub-expression in a parsed expression tree. The set of node
// types is closed: *Literal, *DiceRef, *Negate and *BinaryOp.
type Node interface {
	// Precedence describes how tightly the node's outermost operator binds.
	Precedence() int

	// String renders the node with minimal parentheses.
	String() string

	node()
}

// Literal is a numeric constant.
type Literal struct {
	Value Number
}

// DiceRef rolls Dice each time it is evaluated.
type DiceRef struct {
	Dice dice.Dice
}

// Negate is unary minus.
type Negate struct {
	Operand Node
}

// BinaryOp applies Op to Left and Right.
type BinaryOp struct {
	Op    Operator
	Left  Node
	Right Node
}

func (*Literal) node()  {}
func (*DiceRef) node()  {}
func (*Negate) node()   {}
func (*BinaryOp) node() {}

func (*Literal) Precedence() int    { return PrecedenceValue }
func (*DiceRef) Precedence() int    { return PrecedenceValue }
func (*Negate) Precedence() int     { return PrecedenceValue }
func (b *BinaryOp) Precedence() int { return b.Op.Precedence() }

func (l *Literal) String() string { return l.Value.String() }
func (d *DiceRef) String() string { return d.Dice.String() }

func (n *Negate) String() string {
	if n.Operand.Precedence() < PrecedenceValue {
		return "-(" + n.Operand.String() + ")"
	}
	return "-" + n.Operand.String()
}

func (b *BinaryOp) String() string {
	prec := b.Precedence()

	left := b.Left.String()
	if wrapLeft(b.Op, b.Left) {
		left = "(" + left + ")"
	}
	right := b.Right.String()
	if rp := b.Right.Precedence(); rp < prec || (rp == prec && b.Op != OpPower) {
		right = "(" + right + ")"
	}

	if b.Op == OpPower {
		return left + "**" + right
	}
	return left + " " + b.Op.String() + " " + right
}

func wrapLeft(op Operator, left Node) bool {
	lp := left.Precedence()
	if op != OpPower {
		return lp < op.Precedence()
	}
	// A negative base is always grouped so the sign reads unambiguously.
	switch l := left.(type) {
	case *Negate:
		return true
	case *Literal:
		if l.Value.Float() < 0 {
			return true
		}
	}
	return lp <= PrecedencePower
}
