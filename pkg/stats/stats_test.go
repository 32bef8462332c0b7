// pkg/stats/stats_test.go
package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantileInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 1000}

	assert.Equal(t, 2.0, Quantile(values, 0.25))
	assert.Equal(t, 3.0, Quantile(values, 0.5))
	assert.Equal(t, 4.0, Quantile(values, 0.75))

	// Positions that fall between order statistics interpolate linearly.
	even := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.75, Quantile(even, 0.25))
	assert.Equal(t, 2.5, Quantile(even, 0.5))
	assert.Equal(t, 3.25, Quantile(even, 0.75))
}

func TestQuantileBounds(t *testing.T) {
	values := []float64{5, 1, 9}

	assert.Equal(t, 1.0, Quantile(values, 0))
	assert.Equal(t, 9.0, Quantile(values, 1))
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.5))
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Quantile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestQuartiles(t *testing.T) {
	q1, q3 := Quartiles([]float64{1, 2, 3, 4, 1000})
	assert.Equal(t, 2.0, q1)
	assert.Equal(t, 4.0, q3)

	q1, q3 = Quartiles(nil)
	assert.Equal(t, 0.0, q1)
	assert.Equal(t, 0.0, q3)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, Median([]float64{4, 1, 2, 3}))
	assert.Equal(t, 0.0, Median(nil))
}

func TestMeanAndStd(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.Equal(t, 2.5, Mean(values))
	assert.InDelta(t, 1.2909944, SampleStd(values), 1e-6)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, SampleStd([]float64{42}))
	assert.Equal(t, 0.0, SampleStd(nil))
}

func TestMinMax(t *testing.T) {
	values := []float64{4, -2, 9, 0}

	assert.Equal(t, -2.0, Min(values))
	assert.Equal(t, 9.0, Max(values))
	assert.Equal(t, 0.0, Min(nil))
	assert.Equal(t, 0.0, Max(nil))
}

func TestUniqueCounts(t *testing.T) {
	assert.Equal(t, 3, UniqueFloats([]float64{1, 1, 2, 3, 3}))
	assert.Equal(t, 2, UniqueStrings([]string{"a", "b", "a"}))
	assert.Equal(t, 0, UniqueFloats(nil))
}

func TestTopValuesTieBreak(t *testing.T) {
	values := []string{"b", "a", "a", "b", "c"}

	top := TopValues(values, 2)
	assert.Equal(t, []ValueCount{{Value: "b", Count: 2}, {Value: "a", Count: 2}}, top)

	// Asking for more than exist returns what there is.
	all := TopValues(values, 10)
	assert.Len(t, all, 3)
	assert.Equal(t, ValueCount{Value: "c", Count: 1}, all[2])
}

func TestMode(t *testing.T) {
	mode, ok := Mode([]string{"x", "y", "y", "x", "z"})
	assert.True(t, ok)
	assert.Equal(t, "x", mode)

	_, ok = Mode(nil)
	assert.False(t, ok)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.667, Round(2.0/3.0, 3))
	assert.Equal(t, 33.33, Round(100.0/3.0, 2))

	// Negative zero is normalized so JSON output never shows -0.
	out := Round(-0.0001, 3)
	assert.Equal(t, 0.0, out)
	assert.False(t, math.Signbit(out))
}
