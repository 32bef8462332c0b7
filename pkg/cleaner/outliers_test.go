// pkg/cleaner/outliers_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagroom/pkg/dataset"
)

func TestFences(t *testing.T) {
	lower, upper := Fences([]float64{1, 2, 3, 4, 1000})
	assert.Equal(t, -1.0, lower)
	assert.Equal(t, 7.0, upper)

	// Zero variance collapses both fences onto the single value.
	lower, upper = Fences([]float64{5, 5, 5, 5})
	assert.Equal(t, 5.0, lower)
	assert.Equal(t, 5.0, upper)
}

func TestCapOutliersClampsToUpperFence(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{
		{Name: "values", Kind: dataset.Numeric, Floats: []float64{1, 2, 3, 4, 1000}, Nulls: make([]bool, 5)},
	})
	require.NoError(t, err)

	out, actions := CapOutliers(ds)

	assert.Equal(t, []float64{1, 2, 3, 4, 7}, out.Columns[0].Floats)
	require.Len(t, actions, 1)
	assert.Equal(t, "Capped 1 outliers in 'values'", actions[0].Message)
	assert.Equal(t, 1, actions[0].Count)
	assert.True(t, actions[0].Mutating())

	// Row count is unchanged and the input dataset is untouched.
	assert.Equal(t, 5, out.Rows())
	assert.Equal(t, 1000.0, ds.Columns[0].Floats[4])
}

func TestCapOutliersZeroVariance(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{
		{Name: "flat", Kind: dataset.Numeric, Floats: []float64{5, 5, 5, 5, 9}, Nulls: make([]bool, 5)},
	})
	require.NoError(t, err)

	out, actions := CapOutliers(ds)

	// Q1 = Q3 = 5, so every value differing from 5 is capped onto it.
	assert.Equal(t, []float64{5, 5, 5, 5, 5}, out.Columns[0].Floats)
	assert.Equal(t, "Capped 1 outliers in 'flat'", actions[0].Message)
}

func TestCapOutliersNoneDetected(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{
		{Name: "v", Kind: dataset.Numeric, Floats: []float64{1, 2, 3}, Nulls: make([]bool, 3)},
		{Name: "s", Kind: dataset.Categorical, Strs: []string{"a", "b", "c"}, Nulls: make([]bool, 3)},
	})
	require.NoError(t, err)

	out, actions := CapOutliers(ds)

	assert.Equal(t, []float64{1, 2, 3}, out.Columns[0].Floats)
	require.Len(t, actions, 1)
	assert.Equal(t, "No outliers detected in numeric columns", actions[0].Message)
}

func TestCapOutliersIgnoresMissing(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{{
		Name:   "v",
		Kind:   dataset.Numeric,
		Floats: []float64{1, 2, 3, 4, 1000, 0},
		Nulls:  []bool{false, false, false, false, false, true},
	}})
	require.NoError(t, err)

	out, actions := CapOutliers(ds)

	// Fences derive from the five non-missing values only.
	assert.Equal(t, 7.0, out.Columns[0].Floats[4])
	assert.True(t, out.Columns[0].Nulls[5])
	assert.Equal(t, 1, actions[0].Count)
}

func TestCapOutliersIdempotent(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{
		{Name: "v", Kind: dataset.Numeric, Floats: []float64{1, 2, 3, 4, 1000}, Nulls: make([]bool, 5)},
		{Name: "w", Kind: dataset.Numeric, Floats: []float64{-500, 10, 11, 12, 13, 14}, Nulls: make([]bool, 6)},
	})
	require.NoError(t, err)

	once, _ := CapOutliers(ds)
	twice, actions := CapOutliers(once)

	assert.Equal(t, once.Columns[0].Floats, twice.Columns[0].Floats)
	assert.Equal(t, once.Columns[1].Floats, twice.Columns[1].Floats)
	require.Len(t, actions, 1)
	assert.Equal(t, "No outliers detected in numeric columns", actions[0].Message)
}

func TestCapOutliersSkipsAllMissingColumn(t *testing.T) {
	ds, err := dataset.New([]dataset.Column{{
		Name:   "void",
		Kind:   dataset.Numeric,
		Floats: []float64{0, 0},
		Nulls:  []bool{true, true},
	}})
	require.NoError(t, err)

	out, actions := CapOutliers(ds)

	assert.Equal(t, 2, out.Columns[0].Missing())
	assert.Equal(t, "No outliers detected in numeric columns", actions[0].Message)
}
