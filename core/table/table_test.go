package table

import (
	"errors"
	"sync"
	"testing"

	"github.com/dryack/gDiceTable/core/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treasure() Registry {
	return NewRegistry(
		&Table{ID: "treasure", Rows: []Row{
			{Description: "{{2d6}} copper", Weight: 1},
			{Description: "a gem", Weight: 3, Subtable: "gems"},
		}},
		&Table{ID: "gems", Rows: []Row{
			{Description: "ruby", Weight: 1},
			{Description: "emerald", Weight: 1},
		}},
	)
}

func TestChooseDistribution(t *testing.T) {
	tbl := &Table{ID: "coin", Rows: []Row{
		{Description: "rare", Weight: 1},
		{Description: "common", Weight: 3},
	}}
	src := dice.NewSource(2024)

	const draws = 40000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		row, err := tbl.Choose(src)
		require.NoError(t, err)
		counts[row.Description]++
	}

	// Chi-square with one degree of freedom; 10.83 is the 0.001 critical value.
	expected := map[string]float64{"rare": draws * 0.25, "common": draws * 0.75}
	chi := 0.0
	for name, want := range expected {
		d := float64(counts[name]) - want
		chi += d * d / want
	}
	assert.Less(t, chi, 10.83)

	ratio := float64(counts["common"]) / float64(counts["rare"])
	assert.InDelta(t, 3.0, ratio, 0.2)
}

func TestChooseSkipsZeroWeight(t *testing.T) {
	tbl := &Table{ID: "t", Rows: []Row{
		{Description: "never", Weight: 0},
		{Description: "always", Weight: 5},
		{Description: "never again", Weight: 0},
	}}
	src := dice.NewSource(1)
	for i := 0; i < 500; i++ {
		row, err := tbl.Choose(src)
		require.NoError(t, err)
		assert.Equal(t, "always", row.Description)
	}
}

func TestChooseEmpty(t *testing.T) {
	_, err := (&Table{ID: "none"}).Choose(dice.NewSource(1))
	assert.True(t, errors.Is(err, ErrEmptyTable))

	_, err = (&Table{ID: "zero", Rows: []Row{{Weight: 0}}}).Choose(dice.NewSource(1))
	assert.True(t, errors.Is(err, ErrEmptyTable))
}

func TestPickFollowsSubtables(t *testing.T) {
	reg := treasure()
	src := dice.NewSource(7)

	sawChain := false
	for i := 0; i < 200; i++ {
		pick, err := reg.Pick("treasure", src)
		require.NoError(t, err)
		assert.Equal(t, "treasure", pick.Table)
		switch len(pick.Rows) {
		case 1:
			assert.Equal(t, []string{"{{2d6}} copper"}, pick.Descriptions())
		case 2:
			sawChain = true
			assert.Equal(t, "a gem", pick.Rows[0].Description)
			assert.Contains(t, []string{"ruby", "emerald"}, pick.Rows[1].Description)
		default:
			t.Fatalf("unexpected chain length %d", len(pick.Rows))
		}
	}
	assert.True(t, sawChain)
}

func TestPickErrors(t *testing.T) {
	reg := treasure()
	_, err := reg.Pick("missing", dice.NewSource(1))
	assert.True(t, errors.Is(err, ErrTableNotFound))

	reg["dangling"] = &Table{ID: "dangling", Rows: []Row{{Description: "x", Weight: 1, Subtable: "nowhere"}}}
	_, err = reg.Pick("dangling", dice.NewSource(1))
	assert.True(t, errors.Is(err, ErrTableNotFound))

	reg["loop"] = &Table{ID: "loop", Rows: []Row{{Description: "again", Weight: 1, Subtable: "loop"}}}
	_, err = reg.Pick("loop", dice.NewSource(1))
	assert.True(t, errors.Is(err, ErrSubtableDepth))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Table{ID: "ok", Rows: []Row{{Weight: 0}, {Weight: 2}}}).Validate())
	err := (&Table{ID: "bad", Rows: []Row{{Weight: -1}}}).Validate()
	assert.True(t, errors.Is(err, ErrNegativeWeight))
	err = (&Table{ID: "idle", Rows: []Row{{Weight: 0}, {Weight: 0}}}).Validate()
	assert.True(t, errors.Is(err, ErrEmptyTable))
	err = (&Table{ID: "none"}).Validate()
	assert.True(t, errors.Is(err, ErrEmptyTable))
}

func TestHolder(t *testing.T) {
	var empty Holder
	assert.NotNil(t, empty.Load())
	assert.Empty(t, empty.Load())

	h := NewHolder(treasure())
	before := h.Load()

	h.Upsert(&Table{ID: "weather", Rows: []Row{{Description: "rain", Weight: 1}}})
	_, err := h.Load().Get("weather")
	assert.NoError(t, err)
	_, err = before.Get("weather")
	assert.True(t, errors.Is(err, ErrTableNotFound), "published registries must not change")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Upsert(&Table{ID: string(rune('a' + i)), Rows: []Row{{Weight: 1}}})
			_, _ = h.Load().Pick("treasure", dice.NewSource(int64(i)))
		}(i)
	}
	wg.Wait()
	assert.Len(t, h.Load(), 3+8)
}
