// pkg/stats/stats.go
package stats

import (
	"math"
	"sort"
)

// ValueCount pairs a categorical value with its occurrence count.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Quantile returns the q-th quantile (0 <= q <= 1) of values using linear
// interpolation between the two nearest order statistics. Returns 0 for
// an empty slice; statistics undefined on empty input are reported as 0.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return interpolate(sorted, q)
}

// Quartiles returns Q1 and Q3 with a single sort of the input.
func Quartiles(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return interpolate(sorted, 0.25), interpolate(sorted, 0.75)
}

func interpolate(sorted []float64, q float64) float64 {
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Median returns the middle value, interpolating for even counts.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStd returns the sample standard deviation (n-1 denominator).
// Returns 0 when fewer than two values make it undefined.
func SampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// Min returns the smallest value, 0 for an empty slice.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest value, 0 for an empty slice.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// UniqueFloats returns the number of distinct values.
func UniqueFloats(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// UniqueStrings returns the number of distinct values.
func UniqueStrings(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// TopValues returns the n most frequent values, most frequent first.
// Ties are broken by first-encountered order in the input.
func TopValues(values []string, n int) []ValueCount {
	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if n > len(order) {
		n = len(order)
	}
	out := make([]ValueCount, n)
	for i := 0; i < n; i++ {
		out[i] = ValueCount{Value: order[i], Count: counts[order[i]]}
	}
	return out
}

// Mode returns the most frequent value, ties broken by first-encountered
// order. The second return is false when the input is empty.
func Mode(values []string) (string, bool) {
	top := TopValues(values, 1)
	if len(top) == 0 {
		return "", false
	}
	return top[0].Value, true
}

// Round rounds to the given number of decimal places, normalizing
// negative zero.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	out := math.Round(x*p) / p
	if out == 0 {
		return 0
	}
	return out
}
