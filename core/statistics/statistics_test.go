package statistics

import (
	"context"
	"errors"
	"testing"

	"github.com/dryack/gDiceTable/core/dice"
	"github.com/dryack/gDiceTable/core/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	r := Calculate([]float64{5, 1, 4, 2, 3})
	assert.Equal(t, 5, r.Samples)
	assert.Equal(t, 1.0, r.Min)
	assert.Equal(t, 5.0, r.Max)
	assert.Equal(t, 3.0, r.Mean)
	assert.Equal(t, 2.0, r.Variance)
	assert.Equal(t, 1.41, r.StandardDeviation)
	assert.Equal(t, 0.0, r.Skewness)
	assert.Equal(t, -1.3, r.Kurtosis)
	assert.Equal(t, 3.0, r.Percentiles[50])
	assert.Equal(t, 2.0, r.Percentiles[25])
	assert.Equal(t, 1.2, r.Percentiles[5])
	assert.Equal(t, 5.0, r.Percentiles[100])
}

func TestCalculateDegenerate(t *testing.T) {
	empty := Calculate(nil)
	assert.Equal(t, 0, empty.Samples)
	assert.NotNil(t, empty.Percentiles)

	flat := Calculate([]float64{4, 4, 4})
	assert.Equal(t, 4.0, flat.Mean)
	assert.Equal(t, 0.0, flat.Skewness)
	assert.Equal(t, 0.0, flat.Kurtosis)

	one := Calculate([]float64{7})
	assert.Equal(t, 7.0, one.Percentiles[95])
}

func TestMonteCarloSimulation(t *testing.T) {
	sim := ExpressionSimulation(dsl.MustParse("3d6"))
	r := MonteCarloSimulation(context.Background(), sim, 20000, 42)

	assert.Equal(t, 20000, r.Samples)
	assert.Zero(t, r.Failed)
	assert.GreaterOrEqual(t, r.Min, 3.0)
	assert.LessOrEqual(t, r.Max, 18.0)
	assert.InDelta(t, 10.5, r.Mean, 0.15)
	assert.InDelta(t, 8.75, r.Variance, 0.5)
}

func TestMonteCarloDeterministic(t *testing.T) {
	sim := DiceSimulation(dice.MustNew(2, 20, 1, 0))
	a := MonteCarloSimulation(context.Background(), sim, 5000, 9)
	b := MonteCarloSimulation(context.Background(), sim, 5000, 9)
	assert.Equal(t, a, b)
}

func TestMonteCarloCountsFailures(t *testing.T) {
	sim := func(src dice.Source) (float64, error) {
		if src.Intn(2) == 0 {
			return 0, errors.New("boom")
		}
		return 1, nil
	}
	r := MonteCarloSimulation(context.Background(), sim, 1000, 1)
	assert.Equal(t, 1000, r.Samples+r.Failed)
	assert.Positive(t, r.Failed)
	assert.Equal(t, 1.0, r.Mean)
}

func TestMonteCarloEvalErrorsAreFailures(t *testing.T) {
	sim := ExpressionSimulation(dsl.MustParse("1/(1d2-1)"))
	r := MonteCarloSimulation(context.Background(), sim, 2000, 3)
	require.Equal(t, 2000, r.Samples+r.Failed)
	assert.Positive(t, r.Failed)
	assert.Equal(t, 1.0, r.Min)
}

func TestMonteCarloCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := MonteCarloSimulation(ctx, DiceSimulation(dice.D6), 1000, 1)
	assert.Zero(t, r.Samples)
	assert.Zero(t, r.Failed)
}

func TestMonteCarloNoIterations(t *testing.T) {
	r := MonteCarloSimulation(context.Background(), DiceSimulation(dice.D6), 0, 1)
	assert.Zero(t, r.Samples)
}
