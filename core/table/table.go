// Package table implements weighted random tables whose rows may chain into
// other tables.
package table

import (
	"errors"
	"fmt"

	"github.com/dryack/gDiceTable/core/dice"
)

var (
	ErrTableNotFound  = errors.New("table not found")
	ErrEmptyTable     = errors.New("table has no weight")
	ErrNegativeWeight = errors.New("row weight must be non-negative")
	ErrSubtableDepth  = errors.New("subtable chain too deep")
)

// MaxDepth bounds how many subtable references a single pick may follow.
const MaxDepth = 32

// Row is one weighted entry. Description may contain template statements.
type Row struct {
	Description string `yaml:"description" json:"description"`
	Weight      int    `yaml:"weight" json:"weight"`
	Subtable    string `yaml:"subtable,omitempty" json:"subtable,omitempty"`
}

// Table is an ordered list of weighted rows.
type Table struct {
	ID   string `yaml:"id" json:"id"`
	Rows []Row  `yaml:"rows" json:"rows"`
}

// Validate checks that every weight is non-negative and that at least one
// row can be chosen.
func (t *Table) Validate() error {
	for i, row := range t.Rows {
		if row.Weight < 0 {
			return fmt.Errorf("%w: table %q row %d has weight %d", ErrNegativeWeight, t.ID, i, row.Weight)
		}
	}
	if t.TotalWeight() == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyTable, t.ID)
	}
	return nil
}

// TotalWeight sums the row weights.
func (t *Table) TotalWeight() int {
	total := 0
	for _, row := range t.Rows {
		total += row.Weight
	}
	return total
}

// Choose draws one row with probability proportional to its weight.
func (t *Table) Choose(src dice.Source) (Row, error) {
	total := t.TotalWeight()
	if total <= 0 {
		return Row{}, fmt.Errorf("%w: %q", ErrEmptyTable, t.ID)
	}
	draw := src.Intn(total)
	acc := 0
	for _, row := range t.Rows {
		acc += row.Weight
		if acc > draw {
			return row, nil
		}
	}
	// Unreachable while weights are non-negative.
	return t.Rows[len(t.Rows)-1], nil
}

// Registry maps table IDs to tables. It is read-only once built.
type Registry map[string]*Table

// NewRegistry indexes tables by ID. Later tables replace earlier ones with
// the same ID.
func NewRegistry(tables ...*Table) Registry {
	r := make(Registry, len(tables))
	for _, t := range tables {
		r[t.ID] = t
	}
	return r
}

// Get returns the named table or ErrTableNotFound.
func (r Registry) Get(name string) (*Table, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, name)
	}
	return t, nil
}

// Pick is the result of drawing from a table: the rows visited, in order,
// starting with the row drawn from the named table.
type Pick struct {
	Table string
	Rows  []Row
}

// Descriptions lists the visited rows' descriptions.
func (p *Pick) Descriptions() []string {
	out := make([]string, len(p.Rows))
	for i, row := range p.Rows {
		out[i] = row.Description
	}
	return out
}

// Pick draws from the named table, following subtable references until a
// row without one is reached.
func (r Registry) Pick(name string, src dice.Source) (*Pick, error) {
	pick := &Pick{Table: name}
	current := name
	for depth := 0; ; depth++ {
		if depth >= MaxDepth {
			return nil, fmt.Errorf("%w: starting at %q", ErrSubtableDepth, name)
		}
		t, err := r.Get(current)
		if err != nil {
			return nil, err
		}
		row, err := t.Choose(src)
		if err != nil {
			return nil, err
		}
		pick.Rows = append(pick.Rows, row)
		if row.Subtable == "" {
			return pick, nil
		}
		current = row.Subtable
	}
}
