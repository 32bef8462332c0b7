// pkg/analyzer/analyzer_test.go
package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"datagroom/pkg/dataset"
	"datagroom/pkg/stats"
)

func sampleDataset(t *testing.T) dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([]dataset.Column{
		{
			Name:   "age",
			Kind:   dataset.Numeric,
			Floats: []float64{30, 25, 0, 35, 25},
			Nulls:  []bool{false, false, true, false, false},
		},
		{
			Name:  "city",
			Kind:  dataset.Categorical,
			Strs:  []string{"oslo", "lima", "oslo", "", "kyiv"},
			Nulls: []bool{false, false, false, true, false},
		},
		{
			Name:   "score",
			Kind:   dataset.Numeric,
			Floats: []float64{0, 0, 10, 1000, 5},
			Nulls:  make([]bool, 5),
		},
	})
	require.NoError(t, err)
	return ds
}

func TestNewAnalyzerRequiresLogger(t *testing.T) {
	_, err := NewAnalyzer(nil)
	assert.Error(t, err)
}

func TestAnalyzeBasicInfo(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	summary := a.Analyze(sampleDataset(t))

	assert.Equal(t, 5, summary.BasicInfo.Rows)
	assert.Equal(t, 3, summary.BasicInfo.Columns)
	assert.Equal(t, 2, summary.BasicInfo.NumericColumns)
	assert.Equal(t, 1, summary.BasicInfo.CategoricalColumns)
	assert.Equal(t, 2, summary.BasicInfo.TotalMissing)
	assert.Equal(t, "0.00 MB", summary.BasicInfo.MemoryUsage)
	assert.Equal(t, []string{"age", "city", "score"}, summary.Columns)
}

func TestAnalyzeMissingDataAndTypes(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	summary := a.Analyze(sampleDataset(t))

	assert.Equal(t, MissingInfo{Count: 1, Percentage: 20}, summary.MissingData["age"])
	assert.Equal(t, MissingInfo{Count: 0, Percentage: 0}, summary.MissingData["score"])
	assert.Equal(t, "numeric", summary.DataTypes["age"])
	assert.Equal(t, "categorical", summary.DataTypes["city"])
}

func TestAnalyzeNumericSummary(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	summary := a.Analyze(sampleDataset(t))

	age := summary.NumericSummary["age"]
	assert.Equal(t, 28.75, age.Mean)
	assert.Equal(t, 27.5, age.Median)
	assert.InDelta(t, 4.787, age.Std, 0.001)
	assert.Equal(t, 25.0, age.Min)
	assert.Equal(t, 35.0, age.Max)
	assert.Equal(t, 3, age.UniqueCount)
	assert.Equal(t, 0, age.Zeros)

	score := summary.NumericSummary["score"]
	assert.Equal(t, 5.0, score.Median)
	assert.Equal(t, 2, score.Zeros)
	assert.Equal(t, 4, score.UniqueCount)
	assert.Equal(t, 1000.0, score.Max)
}

func TestAnalyzeCategoricalSummary(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	summary := a.Analyze(sampleDataset(t))

	city := summary.CategoricalSummary["city"]
	assert.Equal(t, 3, city.UniqueCount)
	assert.Equal(t, "oslo", city.MostFrequent)
	require.Len(t, city.TopValues, 3)
	assert.Equal(t, stats.ValueCount{Value: "oslo", Count: 2}, city.TopValues[0])
	// Ties keep first-encountered order.
	assert.Equal(t, "lima", city.TopValues[1].Value)
	assert.Equal(t, "kyiv", city.TopValues[2].Value)
}

func TestAnalyzeOutlierAnalysis(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	summary := a.Analyze(sampleDataset(t))

	// score: Q1=0, Q3=10, fences [-15, 25]; only 1000 lies outside.
	score := summary.OutlierAnalysis["score"]
	assert.Equal(t, 1, score.Count)
	assert.Equal(t, 20.0, score.Percentage)

	age := summary.OutlierAnalysis["age"]
	assert.Equal(t, 0, age.Count)
}

func TestAnalyzeAllMissingNumericColumn(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	ds, err := dataset.New([]dataset.Column{{
		Name:   "void",
		Kind:   dataset.Numeric,
		Floats: []float64{0, 0, 0},
		Nulls:  []bool{true, true, true},
	}})
	require.NoError(t, err)

	summary := a.Analyze(ds)

	// Undefined statistics substitute 0 rather than erroring.
	assert.Equal(t, NumericFacts{}, summary.NumericSummary["void"])
	assert.Equal(t, OutlierInfo{}, summary.OutlierAnalysis["void"])
	assert.Equal(t, MissingInfo{Count: 3, Percentage: 100}, summary.MissingData["void"])
}

func TestAnalyzeAllMissingCategoricalColumn(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	ds, err := dataset.New([]dataset.Column{{
		Name:  "ghost",
		Kind:  dataset.Categorical,
		Strs:  []string{"", ""},
		Nulls: []bool{true, true},
	}})
	require.NoError(t, err)

	summary := a.Analyze(ds)

	ghost := summary.CategoricalSummary["ghost"]
	assert.Equal(t, 0, ghost.UniqueCount)
	assert.Empty(t, ghost.TopValues)
	assert.Equal(t, "N/A", ghost.MostFrequent)
}

func TestAnalyzeEmptyDataset(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	summary := a.Analyze(dataset.Dataset{})

	assert.Equal(t, 0, summary.BasicInfo.Rows)
	assert.Equal(t, 0, summary.BasicInfo.Columns)
	assert.Equal(t, 0, summary.BasicInfo.TotalMissing)
	assert.Equal(t, "0.00 MB", summary.BasicInfo.MemoryUsage)
	assert.Empty(t, summary.Columns)
	assert.Empty(t, summary.MissingData)
	assert.Empty(t, summary.NumericSummary)
	assert.Empty(t, summary.CategoricalSummary)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)

	ds := sampleDataset(t)
	_ = a.Analyze(ds)

	assert.Equal(t, sampleDataset(t), ds)
}
