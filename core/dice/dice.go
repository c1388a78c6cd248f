// Package dice models sets of polyhedral dice and the rolls they produce.
package dice

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidDiceSpec indicates a descriptor that cannot be rolled: drop
// counts exceeding the number of dice, or a count or side number above the
// limits below.
var ErrInvalidDiceSpec = errors.New("invalid dice")

// Limits on a single descriptor. They keep one roll's work and its result
// within int range.
const (
	MaxCount = 10000
	MaxSides = 100000
)

// Dice describes count dice of the given sides, dropping the lowest dropLow
// and highest dropHigh values before summing. Dice values are immutable and
// may be rolled any number of times.
type Dice struct {
	count    int
	sides    int
	dropLow  int
	dropHigh int
}

// New builds a Dice value. Negative counts are clamped to zero and sides to
// one. It returns ErrInvalidDiceSpec when count exceeds MaxCount, sides
// exceeds MaxSides or dropLow+dropHigh > count.
func New(count, sides, dropLow, dropHigh int) (Dice, error) {
	d := Dice{
		count:    max(count, 0),
		sides:    max(sides, 1),
		dropLow:  max(dropLow, 0),
		dropHigh: max(dropHigh, 0),
	}
	if d.count > MaxCount {
		return Dice{}, fmt.Errorf("%w: %d dice exceeds the limit of %d", ErrInvalidDiceSpec, d.count, MaxCount)
	}
	if d.sides > MaxSides {
		return Dice{}, fmt.Errorf("%w: %d sides exceeds the limit of %d", ErrInvalidDiceSpec, d.sides, MaxSides)
	}
	// Compared separately so huge drop counts cannot overflow the sum
	if d.dropLow > d.count || d.dropHigh > d.count || d.dropLow+d.dropHigh > d.count {
		return Dice{}, fmt.Errorf("%w: %s drops %d of %d", ErrInvalidDiceSpec, d.format(), d.dropLow+d.dropHigh, d.count)
	}
	return d, nil
}

// MustNew is like New but panics on error.
func MustNew(count, sides, dropLow, dropHigh int) Dice {
	d, err := New(count, sides, dropLow, dropHigh)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Dice) Count() int    { return d.count }
func (d Dice) Sides() int    { return d.sides }
func (d Dice) DropLow() int  { return d.dropLow }
func (d Dice) DropHigh() int { return d.dropHigh }

// Min returns the smallest possible result.
func (d Dice) Min() int {
	return d.count - d.dropLow - d.dropHigh
}

// Max returns the largest possible result.
func (d Dice) Max() int {
	return (d.count - d.dropLow - d.dropHigh) * d.sides
}

// Roll throws the dice using src.
func (d Dice) Roll(src Source) Roll {
	values := make([]int, d.count)
	for i := range values {
		values[i] = src.Intn(d.sides) + 1
	}
	sort.Ints(values)
	return newRoll(values, d.dropLow, d.dropHigh)
}

func (d Dice) String() string {
	return d.format()
}

func (d Dice) format() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.count))
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(d.sides))
	if d.dropLow > 0 {
		b.WriteByte('L')
		b.WriteString(strconv.Itoa(d.dropLow))
	}
	if d.dropHigh > 0 {
		b.WriteByte('H')
		b.WriteString(strconv.Itoa(d.dropHigh))
	}
	return b.String()
}

// Roll is the outcome of throwing a Dice once.
//
// Values holds every die in ascending order. DroppedLow, Kept and DroppedHigh
// are consecutive windows over Values; together they cover it exactly.
type Roll struct {
	values      []int
	droppedLow  []int
	kept        []int
	droppedHigh []int
	result      int
}

func newRoll(values []int, dropLow, dropHigh int) Roll {
	end := len(values) - dropHigh
	r := Roll{
		values:      values,
		droppedLow:  values[0:dropLow:dropLow],
		kept:        values[dropLow:end:end],
		droppedHigh: values[end:],
	}
	for _, v := range r.kept {
		r.result += v
	}
	return r
}

// Result is the sum of the kept dice.
func (r Roll) Result() int { return r.result }

// Values returns all dice sorted ascending. Callers must not modify it.
func (r Roll) Values() []int { return r.values }

func (r Roll) Kept() []int        { return r.kept }
func (r Roll) DroppedLow() []int  { return r.droppedLow }
func (r Roll) DroppedHigh() []int { return r.droppedHigh }

func (r Roll) String() string {
	return fmt.Sprintf("%d = [%v, %v, %v]", r.result, r.droppedLow, r.kept, r.droppedHigh)
}
