package table

import (
	"errors"
	"testing"

	"github.com/dryack/gDiceTable/core/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treasureYAML = `
tables:
  - id: treasure
    rows:
      - description: "{{2d6}} copper"
        weight: 1
      - description: a gem
        weight: 3
        subtable: gems
  - id: gems
    rows:
      - description: ruby
        weight: 1
`

func TestDecodeYAML(t *testing.T) {
	tables, err := Decode([]byte(treasureYAML), nil, nil)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	reg := NewRegistry(tables...)
	tbl, err := reg.Get("treasure")
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.TotalWeight())
	assert.Equal(t, "gems", tbl.Rows[1].Subtable)
}

func TestDecodeJSON(t *testing.T) {
	doc := `{"tables": [{"id": "weather", "rows": [{"description": "rain", "weight": 2}]}]}`
	tables, err := Decode([]byte(doc), nil, nil)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "weather", tables[0].ID)
	assert.Equal(t, 2, tables[0].Rows[0].Weight)
}

func TestDecodeReportsLocation(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantErr  error
		wantPath string
	}{
		{
			name:     "Negative weight",
			doc:      "tables:\n  - id: a\n    rows:\n      - {description: x, weight: 1}\n      - {description: y, weight: -2}\n",
			wantErr:  ErrNegativeWeight,
			wantPath: ".tables[0].rows[1].weight",
		},
		{
			name:     "Missing id",
			doc:      "tables:\n  - id: a\n    rows: [{weight: 1}]\n  - rows: [{weight: 1}]\n",
			wantErr:  ErrMissingID,
			wantPath: ".tables[1]",
		},
		{
			name:     "Duplicate id",
			doc:      "tables:\n  - id: a\n    rows: [{weight: 1}]\n  - id: a\n    rows: [{weight: 1}]\n",
			wantErr:  ErrDuplicateID,
			wantPath: ".tables[1].id",
		},
		{
			name:     "No rows",
			doc:      "tables:\n  - id: a\n",
			wantErr:  ErrEmptyTable,
			wantPath: ".tables[0].rows",
		},
		{
			name:     "All weights zero",
			doc:      "tables:\n  - id: a\n    rows: [{description: x, weight: 0}, {description: y, weight: 0}]\n",
			wantErr:  ErrEmptyTable,
			wantPath: ".tables[0].rows",
		},
		{
			name:     "Unknown subtable",
			doc:      "tables:\n  - id: a\n    rows: [{weight: 1, subtable: b}]\n",
			wantErr:  ErrUnknownTable,
			wantPath: ".tables[0].rows[0].subtable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), nil, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var ctxErr *diag.ContextError
			require.True(t, errors.As(err, &ctxErr))
			assert.Equal(t, tt.wantPath, ctxErr.Path)
		})
	}
}

func TestDecodeKnownSubtable(t *testing.T) {
	known := NewRegistry(&Table{ID: "b", Rows: []Row{{Weight: 1}}})
	tables, err := Decode([]byte("tables:\n  - id: a\n    rows: [{weight: 1, subtable: b}]\n"), nil, known)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestDecodeCollectsAllProblems(t *testing.T) {
	doc := "tables:\n" +
		"  - id: good\n    rows: [{description: ok, weight: 1}]\n" +
		"  - id: bad\n    rows: [{weight: -1}, {weight: -3}]\n" +
		"  - id: dangling\n    rows: [{weight: 1, subtable: nope}]\n"

	c := &diag.Collector{}
	tables, err := Decode([]byte(doc), c, nil)
	require.NoError(t, err)
	assert.Len(t, c.Errors, 3)

	ids := []string{}
	for _, tbl := range tables {
		ids = append(ids, tbl.ID)
	}
	assert.Equal(t, []string{"good", "dangling"}, ids)
}

func TestDecodeDropsDuplicatesAndZeroWeight(t *testing.T) {
	doc := "tables:\n" +
		"  - id: a\n    rows: [{description: first, weight: 1}]\n" +
		"  - id: a\n    rows: [{description: second, weight: 1}]\n" +
		"  - id: idle\n    rows: [{description: never, weight: 0}]\n"

	c := &diag.Collector{}
	tables, err := Decode([]byte(doc), c, nil)
	require.NoError(t, err)
	require.Len(t, c.Errors, 2)
	assert.True(t, errors.Is(c.Errors[0], ErrDuplicateID))
	assert.True(t, errors.Is(c.Errors[1], ErrEmptyTable))

	require.Len(t, tables, 1)
	assert.Equal(t, "first", tables[0].Rows[0].Description)
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte("tables: [unterminated"), nil, nil)
	assert.Error(t, err)
}
