package output

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/ledgewood/inventory/pkg/application/dto"
)

// HTMLReport renders a standalone HTML impact report
type HTMLReport struct{}

// NewHTMLReport creates a new HTML report renderer
func NewHTMLReport() *HTMLReport {
	return &HTMLReport{}
}

type reportRow struct {
	SKU         string
	Description string
	Unit        string
	Current     string
	Change      string
	Projected   string
	Breakdown   string
	Oversold    bool
}

type reportData struct {
	GeneratedAt    string
	ProjectionTime string
	ProjectedCount int
	OversoldCount  int
	TransientCount int
	Rows           []reportRow
	Transient      []dto.TransientLine
	Warnings       []string
}

// Render produces the report HTML for an impact result
func (r *HTMLReport) Render(result *dto.ImpactResult, config Config) (string, error) {
	if config.Verbose {
		fmt.Printf("    📊 Rendering %d projections into HTML report...\n", len(result.Projections))
	}

	data := reportData{
		GeneratedAt:    result.GeneratedAt.Format(time.RFC1123),
		ProjectionTime: config.ProjectionTime.String(),
		ProjectedCount: len(result.Projections),
		OversoldCount:  len(result.OversoldSKUs()),
		TransientCount: len(result.Transient),
		Transient:      result.Transient,
		Warnings:       result.Warnings,
	}

	for _, p := range result.Projections {
		data.Rows = append(data.Rows, reportRow{
			SKU:         string(p.SKU),
			Description: p.Description,
			Unit:        string(p.Unit),
			Current:     p.Current.Quantity.String(),
			Change:      p.Change.Quantity.String(),
			Projected:   p.Projected.Quantity.String(),
			Breakdown:   fmt.Sprintf("%d pallets + %d layers", p.Projected.Pallets, p.Projected.Layers),
			Oversold:    p.Oversold,
		})
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}

	return buf.String(), nil
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Stock Impact Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; margin: 2rem; color: #1c2733; }
  h1 { margin-bottom: 0.25rem; }
  .meta { color: #66727f; margin-bottom: 1.5rem; }
  .cards { display: flex; gap: 1rem; margin-bottom: 2rem; }
  .card { border: 1px solid #d7dde3; border-radius: 8px; padding: 0.75rem 1.25rem; }
  .card .num { font-size: 1.6rem; font-weight: 600; }
  .card.warn .num { color: #b3261e; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
  th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #e4e8ec; }
  th { background: #f4f6f8; }
  td.num { text-align: right; font-variant-numeric: tabular-nums; }
  tr.oversold td { background: #fdeceb; }
  ul.warnings li { color: #8a5a00; }
</style>
</head>
<body>
<h1>Stock Impact Report</h1>
<div class="meta">Generated {{.GeneratedAt}} · projection took {{.ProjectionTime}}</div>

<div class="cards">
  <div class="card"><div class="num">{{.ProjectedCount}}</div>projected variants</div>
  <div class="card{{if .OversoldCount}} warn{{end}}"><div class="num">{{.OversoldCount}}</div>oversold</div>
  <div class="card"><div class="num">{{.TransientCount}}</div>transient lines</div>
</div>

{{if .Rows}}
<h2>Projected Stock Levels</h2>
<table>
  <tr><th>SKU</th><th>Description</th><th>Unit</th><th>Current</th><th>Change</th><th>Projected</th><th>Breakdown</th></tr>
  {{range .Rows}}
  <tr{{if .Oversold}} class="oversold"{{end}}>
    <td>{{.SKU}}</td>
    <td>{{.Description}}</td>
    <td>{{.Unit}}</td>
    <td class="num">{{.Current}}</td>
    <td class="num">{{.Change}}</td>
    <td class="num">{{.Projected}}</td>
    <td>{{.Breakdown}}</td>
  </tr>
  {{end}}
</table>
{{end}}

{{if .Transient}}
<h2>Transient Lines</h2>
<table>
  <tr><th>SKU</th><th>Unit</th><th>Quantity</th><th>Note</th></tr>
  {{range .Transient}}
  <tr><td>{{.SKU}}</td><td>{{.Unit}}</td><td class="num">{{.Quantity}}</td><td>{{.Note}}</td></tr>
  {{end}}
</table>
{{end}}

{{if .Warnings}}
<h2>Warnings</h2>
<ul class="warnings">
  {{range .Warnings}}<li>{{.}}</li>{{end}}
</ul>
{{end}}
</body>
</html>
`
