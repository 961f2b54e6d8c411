// sim/metrics_utils.go
package sim

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CalculatePercentile returns the p-th percentile (0 <= p <= 100) of data
// using linear interpolation between the closest order statistics
// (rank = p/100 * (n-1)). data need not be sorted and is not modified.
// Returns NaN for empty data.
func CalculatePercentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if upperIdx >= n {
		return sorted[n-1]
	}
	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	lowerVal := sorted[lowerIdx]
	upperVal := sorted[upperIdx]
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of numbers, or NaN when empty.
func CalculateMean(numbers []float64) float64 {
	if len(numbers) == 0 {
		return math.NaN()
	}
	return stat.Mean(numbers, nil)
}

// CalculateSum returns the sum of numbers (0 when empty).
func CalculateSum(numbers []float64) float64 {
	return floats.Sum(numbers)
}
