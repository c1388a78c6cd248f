package dsl

import (
	"fmt"

	"github.com/dryack/gDiceTable/core/dice"
)

// DiceRoll records one roll made while evaluating an expression.
type DiceRoll struct {
	Dice dice.Dice
	Roll dice.Roll
}

// Result is the outcome of a single evaluation.
type Result struct {
	Value Number
	Rolls []DiceRoll
}

// Breakdown returns every die thrown, in evaluation order.
func (r *Result) Breakdown() []int {
	var out []int
	for _, dr := range r.Rolls {
		out = append(out, dr.Roll.Values()...)
	}
	return out
}

// Evaluate rolls the expression using dice.DefaultSource.
func (e *Expression) Evaluate() (Number, error) {
	return e.EvaluateWith(dice.DefaultSource)
}

// EvaluateWith rolls the expression using src. Every call rolls the dice
// again.
func (e *Expression) EvaluateWith(src dice.Source) (Number, error) {
	ev := evaluator{src: src}
	return ev.eval(e.Root)
}

// Roll is like EvaluateWith but also records every dice roll made.
func (e *Expression) Roll(src dice.Source) (*Result, error) {
	ev := evaluator{src: src, record: true}
	v, err := ev.eval(e.Root)
	if err != nil {
		return nil, err
	}
	return &Result{Value: v, Rolls: ev.rolls}, nil
}

// Bounds returns the smallest and largest values the expression can take
// when it is built only from addition, subtraction, negation, literals and
// dice. ok is false for any other operator.
func (e *Expression) Bounds() (lo, hi Number, ok bool) {
	return bounds(e.Root)
}

type evaluator struct {
	src    dice.Source
	record bool
	rolls  []DiceRoll
}

func (ev *evaluator) eval(n Node) (Number, error) {
	switch n := n.(type) {
	case *Literal:
		return n.Value, nil
	case *DiceRef:
		r := n.Dice.Roll(ev.src)
		if ev.record {
			ev.rolls = append(ev.rolls, DiceRoll{Dice: n.Dice, Roll: r})
		}
		return IntNumber(int64(r.Result())), nil
	case *Negate:
		v, err := ev.eval(n.Operand)
		if err != nil {
			return Number{}, err
		}
		return v.neg()
	case *BinaryOp:
		a, err := ev.eval(n.Left)
		if err != nil {
			return Number{}, err
		}
		b, err := ev.eval(n.Right)
		if err != nil {
			return Number{}, err
		}
		return arith(n.Op, a, b)
	}
	return Number{}, fmt.Errorf("unknown node %T", n)
}

func bounds(n Node) (Number, Number, bool) {
	switch n := n.(type) {
	case *Literal:
		return n.Value, n.Value, true
	case *DiceRef:
		return IntNumber(int64(n.Dice.Min())), IntNumber(int64(n.Dice.Max())), true
	case *Negate:
		lo, hi, ok := bounds(n.Operand)
		if !ok {
			return Number{}, Number{}, false
		}
		nlo, err := hi.neg()
		if err != nil {
			return Number{}, Number{}, false
		}
		nhi, err := lo.neg()
		if err != nil {
			return Number{}, Number{}, false
		}
		return nlo, nhi, true
	case *BinaryOp:
		alo, ahi, aok := bounds(n.Left)
		blo, bhi, bok := bounds(n.Right)
		if !aok || !bok {
			return Number{}, Number{}, false
		}
		switch n.Op {
		case OpAdd:
			lo, lerr := arith(OpAdd, alo, blo)
			hi, herr := arith(OpAdd, ahi, bhi)
			return lo, hi, lerr == nil && herr == nil
		case OpSubtract:
			lo, lerr := arith(OpSubtract, alo, bhi)
			hi, herr := arith(OpSubtract, ahi, blo)
			return lo, hi, lerr == nil && herr == nil
		}
	}
	return Number{}, Number{}, false
}
