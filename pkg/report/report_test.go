// pkg/report/report_test.go
package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datagroom/pkg/analyzer"
	"datagroom/pkg/cleaner"
	"datagroom/pkg/stats"
)

func sampleData() Data {
	raw := analyzer.Summary{
		BasicInfo: analyzer.BasicInfo{Rows: 7, Columns: 3, TotalMissing: 4, MemoryUsage: "0.00 MB"},
		MissingData: map[string]analyzer.MissingInfo{
			"age": {Count: 2, Percentage: 28.6},
		},
	}
	cleaned := analyzer.Summary{
		BasicInfo: analyzer.BasicInfo{Rows: 6, Columns: 2, MemoryUsage: "0.00 MB"},
		NumericSummary: map[string]analyzer.NumericFacts{
			"age": {Mean: 31.5, Median: 30, Std: 4.123, Min: 25, Max: 38, UniqueCount: 5},
		},
		OutlierAnalysis: map[string]analyzer.OutlierInfo{
			"age": {Count: 1, Percentage: 16.67},
		},
		CategoricalSummary: map[string]analyzer.CategoricalFacts{
			"city": {
				UniqueCount:  2,
				MostFrequent: "oslo",
				TopValues:    []stats.ValueCount{{Value: "oslo", Count: 4}, {Value: "lima", Count: 2}},
			},
		},
	}

	return Data{
		Title:       "people.csv cleaning report",
		Source:      "people.csv",
		GeneratedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		Actions: []cleaner.Action{
			{Kind: cleaner.ActionDropDuplicates, Count: 1, Message: "Removed 1 duplicate rows"},
			{Kind: cleaner.ActionSummary, Message: "Cleaning complete: 7x3 -> 6x2"},
		},
		Raw:     raw,
		Cleaned: cleaned,
		Delta:   analyzer.Compare(raw, cleaned),
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleData()))
	html := buf.String()

	assert.Contains(t, html, "<h1>people.csv cleaning report</h1>")
	assert.Contains(t, html, "Generated 2025-03-14 09:30:00 UTC")
	assert.Contains(t, html, "Removed 1 duplicate rows")
	assert.Contains(t, html, "7 &rarr; 6")
	assert.Contains(t, html, "oslo (4), lima (2)")
	assert.Contains(t, html, "1 (16.7%)")
	assert.Contains(t, html, "28.6%")
}

func TestRenderEscapesContent(t *testing.T) {
	data := sampleData()
	data.Title = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data))

	assert.NotContains(t, buf.String(), "<script>alert")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderEmptySummaries(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Data{Title: "empty", GeneratedAt: time.Now()}))

	assert.Contains(t, buf.String(), "No numeric columns.")
	assert.Contains(t, buf.String(), "No categorical columns.")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, WriteFile(path, sampleData()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<!DOCTYPE html>")
}
