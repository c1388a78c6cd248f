package utils

import "math"

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}

// RoundMap returns a copy of m with every value rounded.
func RoundMap(m map[int]float64, places int) map[int]float64 {
	rounded := make(map[int]float64, len(m))
	for k, v := range m {
		rounded[k] = Round(v, places)
	}
	return rounded
}
