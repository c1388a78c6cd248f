package dsl

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is the result of evaluating an expression: either an integer or a
// floating-point value.
type Number struct {
	isFloat bool
	i       int64
	f       float64
}

func IntNumber(i int64) Number     { return Number{i: i} }
func FloatNumber(f float64) Number { return Number{isFloat: true, f: f} }

// IsFloat reports whether n holds a floating-point value.
func (n Number) IsFloat() bool { return n.isFloat }

// Int returns n truncated to an integer.
func (n Number) Int() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// IsZero reports whether n equals zero.
func (n Number) IsZero() bool {
	if n.isFloat {
		return n.f == 0
	}
	return n.i == 0
}

func (n Number) String() string {
	if n.isFloat {
		return formatFloat(n.f)
	}
	return strconv.FormatInt(n.i, 10)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.isFloat {
		if math.IsInf(n.f, 0) || math.IsNaN(n.f) {
			return json.Marshal(n.String())
		}
		return json.Marshal(n.f)
	}
	return json.Marshal(n.i)
}

// formatFloat renders f so that it lexes back as a float literal.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

func (n Number) neg() (Number, error) {
	if n.isFloat {
		return FloatNumber(-n.f), nil
	}
	if n.i == math.MinInt64 {
		return Number{}, fmt.Errorf("%w: -(%d) overflows", ErrArithmeticDomain, n.i)
	}
	return IntNumber(-n.i), nil
}

func arith(op Operator, a, b Number) (Number, error) {
	switch op {
	case OpAdd:
		if a.isFloat || b.isFloat {
			return FloatNumber(a.Float() + b.Float()), nil
		}
		return checked(op, a.i, b.i, addChecked)
	case OpSubtract:
		if a.isFloat || b.isFloat {
			return FloatNumber(a.Float() - b.Float()), nil
		}
		return checked(op, a.i, b.i, subChecked)
	case OpMultiply:
		if a.isFloat || b.isFloat {
			return FloatNumber(a.Float() * b.Float()), nil
		}
		return checked(op, a.i, b.i, mulChecked)
	case OpDivide:
		if b.IsZero() {
			return Number{}, ErrDivisionByZero
		}
		return FloatNumber(a.Float() / b.Float()), nil
	case OpFloorDivide:
		if b.IsZero() {
			return Number{}, ErrDivisionByZero
		}
		if a.isFloat || b.isFloat {
			return FloatNumber(math.Floor(a.Float() / b.Float())), nil
		}
		if a.i == math.MinInt64 && b.i == -1 {
			return Number{}, fmt.Errorf("%w: %d %s %d overflows", ErrArithmeticDomain, a.i, op, b.i)
		}
		return IntNumber(floorDiv(a.i, b.i)), nil
	case OpModulo:
		if b.IsZero() {
			return Number{}, ErrDivisionByZero
		}
		if a.isFloat || b.isFloat {
			return FloatNumber(floorModFloat(a.Float(), b.Float())), nil
		}
		return IntNumber(floorMod(a.i, b.i)), nil
	case OpPower:
		return power(a, b)
	}
	return Number{}, fmt.Errorf("unknown operator %v", op)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}

func floorModFloat(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}

func power(a, b Number) (Number, error) {
	if !a.isFloat && !b.isFloat && b.i >= 0 {
		r, ok := ipow(a.i, b.i)
		if !ok {
			return Number{}, fmt.Errorf("%w: %d**%d overflows", ErrArithmeticDomain, a.i, b.i)
		}
		return IntNumber(r), nil
	}
	if a.IsZero() && b.Float() < 0 {
		return Number{}, fmt.Errorf("%w: zero raised to a negative power", ErrDivisionByZero)
	}
	r := math.Pow(a.Float(), b.Float())
	if math.IsNaN(r) {
		return Number{}, fmt.Errorf("%w: %v**%v is not a real number", ErrArithmeticDomain, a, b)
	}
	return FloatNumber(r), nil
}

// ipow computes base**exp by squaring, reporting int64 overflow.
func ipow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r, ok := mulChecked(result, base)
			if !ok {
				return 0, false
			}
			result = r
		}
		exp >>= 1
		if exp > 0 {
			b, ok := mulChecked(base, base)
			if !ok {
				return 0, false
			}
			base = b
		}
	}
	return result, true
}

func checked(op Operator, a, b int64, f func(a, b int64) (int64, bool)) (Number, error) {
	r, ok := f(a, b)
	if !ok {
		return Number{}, fmt.Errorf("%w: %d %s %d overflows", ErrArithmeticDomain, a, op, b)
	}
	return IntNumber(r), nil
}

func addChecked(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

func subChecked(a, b int64) (int64, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}
