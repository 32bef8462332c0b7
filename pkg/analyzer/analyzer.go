// pkg/analyzer/analyzer.go
package analyzer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"datagroom/pkg/cleaner"
	"datagroom/pkg/dataset"
	"datagroom/pkg/stats"
)

// Summary is the full statistical snapshot of one dataset state. All
// fields are plain serializable values so renderers and exporters can
// consume them without depending on dataset internals. Columns preserves
// dataset order; the facet maps are keyed by column name, so when two
// columns share a name after normalization the later one wins there.
type Summary struct {
	BasicInfo          BasicInfo                   `json:"basic_info"`
	Columns            []string                    `json:"columns"`
	MissingData        map[string]MissingInfo      `json:"missing_data"`
	DataTypes          map[string]string           `json:"data_types"`
	NumericSummary     map[string]NumericFacts     `json:"numeric_summary"`
	CategoricalSummary map[string]CategoricalFacts `json:"categorical_summary"`
	OutlierAnalysis    map[string]OutlierInfo      `json:"outlier_analysis"`
}

// BasicInfo holds dataset-wide counts.
type BasicInfo struct {
	Rows               int    `json:"rows"`
	Columns            int    `json:"columns"`
	MemoryUsage        string `json:"memory_usage"`
	NumericColumns     int    `json:"numeric_columns"`
	CategoricalColumns int    `json:"categorical_columns"`
	TotalMissing       int    `json:"total_missing"`
}

// MissingInfo describes missing cells in one column.
type MissingInfo struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// NumericFacts summarizes one numeric column over its non-missing values.
// Undefined statistics are reported as 0.
type NumericFacts struct {
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	Std         float64 `json:"std"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	UniqueCount int     `json:"unique_count"`
	Zeros       int     `json:"zeros"`
}

// CategoricalFacts summarizes one categorical column over its non-missing
// values. TopValues is ordered most frequent first, ties broken by
// first-encountered order.
type CategoricalFacts struct {
	UniqueCount  int                `json:"unique_count"`
	TopValues    []stats.ValueCount `json:"top_values"`
	MostFrequent string             `json:"most_frequent"`
}

// OutlierInfo counts values outside the IQR fences of one numeric column.
type OutlierInfo struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Analyzer produces Summary snapshots. It only reads its input and never
// mutates it, so a raw dataset stays valid for a before/after comparison
// regardless of what cleaning does later.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an Analyzer instance
func NewAnalyzer(logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Analyzer{logger: logger.Named("analyzer")}, nil
}

// Analyze computes the five summary facets for the dataset. It accepts
// any well-formed dataset, cleaned or not: missing cells, empty datasets,
// and degenerate statistics all produce zeros rather than errors.
func (a *Analyzer) Analyze(ds dataset.Dataset) Summary {
	rows, cols := ds.Shape()
	summary := Summary{
		BasicInfo: BasicInfo{
			Rows:               rows,
			Columns:            cols,
			MemoryUsage:        fmt.Sprintf("%.2f MB", ds.MemoryEstimateMB()),
			NumericColumns:     ds.CountKind(dataset.Numeric),
			CategoricalColumns: ds.CountKind(dataset.Categorical),
			TotalMissing:       ds.TotalMissing(),
		},
		Columns:            ds.ColumnNames(),
		MissingData:        make(map[string]MissingInfo, cols),
		DataTypes:          make(map[string]string, cols),
		NumericSummary:     make(map[string]NumericFacts),
		CategoricalSummary: make(map[string]CategoricalFacts),
		OutlierAnalysis:    make(map[string]OutlierInfo),
	}

	for _, col := range ds.Columns {
		missing := col.Missing()
		pct := 0.0
		if rows > 0 {
			pct = stats.Round(float64(missing)/float64(rows)*100, 1)
		}
		summary.MissingData[col.Name] = MissingInfo{Count: missing, Percentage: pct}
		summary.DataTypes[col.Name] = col.Kind.String()

		switch col.Kind {
		case dataset.Numeric:
			values, _ := col.NonMissingFloats()
			summary.NumericSummary[col.Name] = numericFacts(values)
			summary.OutlierAnalysis[col.Name] = outlierInfo(values, rows)
		case dataset.Categorical:
			values, _ := col.NonMissingStrs()
			summary.CategoricalSummary[col.Name] = categoricalFacts(values)
		}
	}

	a.logger.Debug("Analyzed dataset",
		zap.Int("rows", rows),
		zap.Int("columns", cols),
		zap.Int("missing", summary.BasicInfo.TotalMissing))
	return summary
}

func numericFacts(values []float64) NumericFacts {
	facts := NumericFacts{
		Mean:        stats.Round(stats.Mean(values), 3),
		Median:      stats.Round(stats.Median(values), 3),
		Std:         stats.Round(stats.SampleStd(values), 3),
		Min:         stats.Min(values),
		Max:         stats.Max(values),
		UniqueCount: stats.UniqueFloats(values),
	}
	for _, v := range values {
		if v == 0 {
			facts.Zeros++
		}
	}
	return facts
}

func outlierInfo(values []float64, rows int) OutlierInfo {
	if len(values) == 0 {
		return OutlierInfo{}
	}
	lower, upper := cleaner.Fences(values)
	count := 0
	for _, v := range values {
		if v < lower || v > upper {
			count++
		}
	}
	pct := 0.0
	if rows > 0 {
		pct = stats.Round(float64(count)/float64(rows)*100, 2)
	}
	return OutlierInfo{Count: count, Percentage: pct}
}

func categoricalFacts(values []string) CategoricalFacts {
	facts := CategoricalFacts{
		UniqueCount:  stats.UniqueStrings(values),
		TopValues:    stats.TopValues(values, 3),
		MostFrequent: "N/A",
	}
	if mode, ok := stats.Mode(values); ok {
		facts.MostFrequent = mode
	}
	return facts
}
