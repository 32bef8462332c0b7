// pkg/report/report.go
package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strconv"
	"time"

	"datagroom/pkg/analyzer"
	"datagroom/pkg/cleaner"
)

// Data is everything the HTML dashboard renders: the cleaning log and the
// before/after summaries of one job.
type Data struct {
	Title       string
	Source      string
	GeneratedAt time.Time
	Actions     []cleaner.Action
	Raw         analyzer.Summary
	Cleaned     analyzer.Summary
	Delta       analyzer.Delta
}

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"num": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	"signed": func(n int) string { return fmt.Sprintf("%+d", n) },
}).Parse(reportHTML))

// Render writes the dashboard to w
func Render(w io.Writer, data Data) error {
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders the dashboard to an HTML file
func WriteFile(path string, data Data) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := Render(f, data); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #1c2733; }
h1 { margin-bottom: 0.2rem; }
.meta { color: #5b6b7b; margin-bottom: 1.5rem; }
.cards { display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 2rem; }
.card { border: 1px solid #d6dee6; border-radius: 6px; padding: 0.8rem 1.2rem; min-width: 10rem; }
.card .label { color: #5b6b7b; font-size: 0.8rem; text-transform: uppercase; }
.card .value { font-size: 1.4rem; font-weight: 600; }
.card .delta { color: #5b6b7b; font-size: 0.9rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #d6dee6; padding: 0.35rem 0.7rem; text-align: left; }
th { background: #f2f5f8; }
ol.log li { margin-bottom: 0.25rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{if .Source}}Source: {{.Source}} &middot; {{end}}Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>

<div class="cards">
  <div class="card">
    <div class="label">Rows</div>
    <div class="value">{{.Raw.BasicInfo.Rows}} &rarr; {{.Cleaned.BasicInfo.Rows}}</div>
    <div class="delta">{{signed .Delta.RowsChange}}</div>
  </div>
  <div class="card">
    <div class="label">Columns</div>
    <div class="value">{{.Raw.BasicInfo.Columns}} &rarr; {{.Cleaned.BasicInfo.Columns}}</div>
    <div class="delta">{{signed .Delta.ColumnsChange}}</div>
  </div>
  <div class="card">
    <div class="label">Missing values</div>
    <div class="value">{{.Raw.BasicInfo.TotalMissing}} &rarr; {{.Cleaned.BasicInfo.TotalMissing}}</div>
    <div class="delta">{{.Delta.MissingValuesRemoved}} resolved</div>
  </div>
  <div class="card">
    <div class="label">Completeness</div>
    <div class="value">{{pct .Delta.RawCompleteness}} &rarr; {{pct .Delta.CleanedCompleteness}}</div>
  </div>
  <div class="card">
    <div class="label">Memory</div>
    <div class="value">{{.Cleaned.BasicInfo.MemoryUsage}}</div>
  </div>
</div>

<h2>Cleaning log</h2>
<ol class="log">
{{range .Actions}}  <li>{{.Message}}</li>
{{end}}</ol>

<h2>Numeric columns</h2>
{{if .Cleaned.NumericSummary}}
<table>
  <tr><th>Column</th><th>Mean</th><th>Median</th><th>Std</th><th>Min</th><th>Max</th><th>Unique</th><th>Zeros</th><th>Outliers</th></tr>
{{range $name, $facts := .Cleaned.NumericSummary}}  <tr>
    <td>{{$name}}</td>
    <td>{{num $facts.Mean}}</td>
    <td>{{num $facts.Median}}</td>
    <td>{{num $facts.Std}}</td>
    <td>{{num $facts.Min}}</td>
    <td>{{num $facts.Max}}</td>
    <td>{{$facts.UniqueCount}}</td>
    <td>{{$facts.Zeros}}</td>
    <td>{{with index $.Cleaned.OutlierAnalysis $name}}{{.Count}} ({{pct .Percentage}}){{end}}</td>
  </tr>
{{end}}</table>
{{else}}<p>No numeric columns.</p>
{{end}}

<h2>Categorical columns</h2>
{{if .Cleaned.CategoricalSummary}}
<table>
  <tr><th>Column</th><th>Unique</th><th>Most frequent</th><th>Top values</th></tr>
{{range $name, $facts := .Cleaned.CategoricalSummary}}  <tr>
    <td>{{$name}}</td>
    <td>{{$facts.UniqueCount}}</td>
    <td>{{$facts.MostFrequent}}</td>
    <td>{{range $i, $vc := $facts.TopValues}}{{if $i}}, {{end}}{{$vc.Value}} ({{$vc.Count}}){{end}}</td>
  </tr>
{{end}}</table>
{{else}}<p>No categorical columns.</p>
{{end}}

<h2>Missing data before cleaning</h2>
{{if .Raw.MissingData}}
<table>
  <tr><th>Column</th><th>Missing</th><th>Share</th></tr>
{{range $name, $info := .Raw.MissingData}}  <tr><td>{{$name}}</td><td>{{$info.Count}}</td><td>{{pct $info.Percentage}}</td></tr>
{{end}}</table>
{{else}}<p>No columns.</p>
{{end}}

</body>
</html>
`
