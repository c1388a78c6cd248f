package store

import (
	"encoding/json"
	"testing"

	"github.com/dryack/gDiceTable/core/statistics"
	"github.com/dryack/gDiceTable/core/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRows(t *testing.T) {
	reg := groupRows([]tableRow{
		{tableID: "empty"},
		{tableID: "gems", row: table.Row{Description: "ruby", Weight: 1}},
		{tableID: "gems", row: table.Row{Description: "opal", Weight: 2}},
		{tableID: "loot", row: table.Row{Description: "a gem", Weight: 0, Subtable: "gems"}},
	})

	require.Len(t, reg, 2)
	gems, err := reg.Get("gems")
	require.NoError(t, err)
	assert.Equal(t, []string{"ruby", "opal"}, []string{gems.Rows[0].Description, gems.Rows[1].Description})
	assert.Equal(t, 3, gems.TotalWeight())

	loot, err := reg.Get("loot")
	require.NoError(t, err)
	assert.Equal(t, "gems", loot.Rows[0].Subtable)

	_, err = reg.Get("empty")
	assert.ErrorIs(t, err, table.ErrTableNotFound)
}

func TestCachedResultJSON(t *testing.T) {
	in := &CachedResult{Expression: "3d6", Statistics: statistics.Calculate([]float64{3, 10, 18})}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out CachedResult
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, &out)
}
