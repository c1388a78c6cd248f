package table

import (
	"errors"
	"fmt"

	"github.com/dryack/gDiceTable/core/diag"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingID    = errors.New("missing required key 'id'")
	ErrDuplicateID  = errors.New("duplicate table id")
	ErrUnknownTable = errors.New("subtable refers to unknown table")
)

// Document is the serialized form of a set of tables. JSON documents are
// accepted too, since JSON is a subset of YAML.
type Document struct {
	Tables []*Table `yaml:"tables" json:"tables"`
}

// Decode parses a table document and validates it, reporting each problem
// through rep with its location (e.g. ".tables[1].rows[0].weight"). known
// lists table IDs that already exist outside the document, so subtable
// references to them are accepted. A nil rep aborts on the first problem;
// otherwise tables that failed validation are left out of the result.
func Decode(data []byte, rep diag.Reporter, known Registry) ([]*Table, error) {
	if rep == nil {
		rep = diag.Raiser{}
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}

	tr := &diag.Tracker{}
	seen := make(map[string]bool, len(doc.Tables))

	tr.Push("tables")
	for i, t := range doc.Tables {
		tr.Push(i)
		if err := validateTable(tr, rep, t, seen); err != nil {
			return nil, err
		}
		tr.Pop(1)
	}

	for i, t := range doc.Tables {
		if t == nil {
			continue
		}
		for j, row := range t.Rows {
			if row.Subtable == "" || seen[row.Subtable] || known[row.Subtable] != nil {
				continue
			}
			tr.Extend(i, "rows", j, "subtable")
			err := rep.Report(tr, fmt.Errorf("%w: %q", ErrUnknownTable, row.Subtable))
			tr.Pop(4)
			if err != nil {
				return nil, err
			}
		}
	}
	tr.Pop(1)

	// Later tables reusing an ID were reported above and are dropped
	tables := make([]*Table, 0, len(doc.Tables))
	taken := make(map[string]bool, len(doc.Tables))
	for _, t := range doc.Tables {
		if t == nil || t.ID == "" || taken[t.ID] {
			continue
		}
		taken[t.ID] = true
		if t.Validate() == nil {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

func validateTable(tr *diag.Tracker, rep diag.Reporter, t *Table, seen map[string]bool) error {
	if t == nil {
		return rep.Report(tr, errors.New("expected object, got null"))
	}
	switch {
	case t.ID == "":
		if err := rep.Report(tr, ErrMissingID); err != nil {
			return err
		}
	case seen[t.ID]:
		tr.Push("id")
		err := rep.Report(tr, fmt.Errorf("%w: %q", ErrDuplicateID, t.ID))
		tr.Pop(1)
		if err != nil {
			return err
		}
	default:
		seen[t.ID] = true
	}

	tr.Push("rows")
	defer tr.Pop(1)
	if len(t.Rows) == 0 {
		return rep.Report(tr, fmt.Errorf("%w: %q", ErrEmptyTable, t.ID))
	}
	negative := false
	for j, row := range t.Rows {
		if row.Weight >= 0 {
			continue
		}
		negative = true
		tr.Extend(j, "weight")
		err := rep.Report(tr, fmt.Errorf("%w: got %d", ErrNegativeWeight, row.Weight))
		tr.Pop(2)
		if err != nil {
			return err
		}
	}
	if !negative && t.TotalWeight() == 0 {
		return rep.Report(tr, fmt.Errorf("%w: every row of %q has weight 0", ErrEmptyTable, t.ID))
	}
	return nil
}
