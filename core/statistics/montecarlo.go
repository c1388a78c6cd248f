package statistics

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dryack/gDiceTable/core/dice"
	"github.com/dryack/gDiceTable/core/dsl"
)

// SimulationFunc produces one sample using src.
type SimulationFunc func(src dice.Source) (float64, error)

// MonteCarloSimulation draws iterations samples from simFunc across a pool of
// workers. Worker i owns a source seeded with seed+i and a fixed slice of
// the iterations, so a given seed always yields the same samples. Samples
// that return an error are counted in Result.Failed and left out of the
// statistics. When ctx is cancelled the samples gathered so far are used.
func MonteCarloSimulation(ctx context.Context, simFunc SimulationFunc, iterations int, seed int64) *Result {
	if iterations <= 0 {
		return Calculate(nil)
	}

	numWorkers := runtime.NumCPU() - 4
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > iterations {
		numWorkers = iterations
	}

	samples := make([]float64, iterations)
	ok := make([]bool, iterations)
	var failed atomic.Int64

	var wg sync.WaitGroup
	share := (iterations + numWorkers - 1) / numWorkers
	for i := 0; i < numWorkers; i++ {
		lo := i * share
		hi := min(lo+share, iterations)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(src dice.Source, lo, hi int) {
			defer wg.Done()
			for j := lo; j < hi; j++ {
				if ctx.Err() != nil {
					return
				}
				v, err := simFunc(src)
				if err != nil {
					failed.Add(1)
					continue
				}
				samples[j], ok[j] = v, true
			}
		}(dice.NewSource(seed+int64(i)), lo, hi)
	}
	wg.Wait()

	data := samples[:0]
	for j, v := range samples {
		if ok[j] {
			data = append(data, v)
		}
	}
	result := Calculate(data)
	result.Failed = int(failed.Load())
	return result
}

// ExpressionSimulation rolls expr once per sample.
func ExpressionSimulation(expr *dsl.Expression) SimulationFunc {
	return func(src dice.Source) (float64, error) {
		v, err := expr.EvaluateWith(src)
		if err != nil {
			return 0, err
		}
		return v.Float(), nil
	}
}

// DiceSimulation rolls d once per sample.
func DiceSimulation(d dice.Dice) SimulationFunc {
	return func(src dice.Source) (float64, error) {
		return float64(d.Roll(src).Result()), nil
	}
}
