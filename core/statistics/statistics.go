package statistics

import (
	"math"
	"sort"

	"github.com/dryack/gDiceTable/core/utils"
)

// Result represents the outcome of a statistical calculation
type Result struct {
	Samples           int             `json:"samples"`
	Failed            int             `json:"failed"`
	Min               float64         `json:"min"`
	Max               float64         `json:"max"`
	Mean              float64         `json:"mean"`
	Variance          float64         `json:"variance"`
	StandardDeviation float64         `json:"standardDeviation"`
	Skewness          float64         `json:"skewness"`
	Kurtosis          float64         `json:"kurtosis"`
	Percentiles       map[int]float64 `json:"percentiles"`
}

var percentileRanks = []int{0, 5, 10, 25, 50, 75, 90, 95, 100}

// Calculate computes statistical measures for data, sorting it in place.
// Empty data yields a zero Result. Skewness and kurtosis are zero when all
// samples are equal.
func Calculate(data []float64) *Result {
	if len(data) == 0 {
		return &Result{Percentiles: map[int]float64{}}
	}

	sort.Float64s(data)
	n := float64(len(data))

	sum := 0.0
	for _, v := range data {
		sum += v
	}
	mean := sum / n

	// Central moments
	m2, m3, m4 := 0.0, 0.0, 0.0
	for _, v := range data {
		diff := v - mean
		m2 += diff * diff
		m3 += diff * diff * diff
		m4 += diff * diff * diff * diff
	}
	variance := m2 / n
	stdDev := math.Sqrt(variance)

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / n) / math.Pow(stdDev, 3)
		kurtosis = (m4/n)/math.Pow(variance, 2) - 3 // Excess kurtosis
	}

	percentiles := make(map[int]float64, len(percentileRanks))
	for _, p := range percentileRanks {
		percentiles[p] = percentile(data, p)
	}

	return &Result{
		Samples:           len(data),
		Min:               data[0],
		Max:               data[len(data)-1],
		Mean:              utils.Round(mean, 2),
		Variance:          utils.Round(variance, 2),
		StandardDeviation: utils.Round(stdDev, 2),
		Skewness:          utils.Round(skewness, 2),
		Kurtosis:          utils.Round(kurtosis, 2),
		Percentiles:       utils.RoundMap(percentiles, 2),
	}
}

// percentile interpolates linearly between the closest ranks of sorted data.
func percentile(data []float64, p int) float64 {
	index := float64(len(data)-1) * float64(p) / 100
	i := int(index)
	if i >= len(data)-1 {
		return data[len(data)-1]
	}
	return data[i] + (data[i+1]-data[i])*(index-float64(i))
}
