// Package rendering turns matching reports into shareable HTML and PDF
// documents.
package rendering

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jonathan/plumber-matcher/internal/matching"
)

// reportTemplate is the printable report layout. It is deliberately
// self-contained: inline styles only, no external assets, so the page
// renders identically in a headless browser.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Plumber Matching Report</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1c2833; margin: 2em 3em; }
  h1 { font-size: 1.6em; border-bottom: 2px solid #2471a3; padding-bottom: 0.3em; }
  h2 { font-size: 1.2em; color: #2471a3; margin-top: 1.5em; }
  table { border-collapse: collapse; width: 100%; margin-top: 0.5em; }
  th, td { border: 1px solid #d5d8dc; padding: 0.4em 0.7em; text-align: left; font-size: 0.9em; }
  th { background: #eaf2f8; }
  .meta { color: #707b7c; font-size: 0.85em; }
  .recommendation { background: #fef9e7; border-left: 4px solid #f4d03f; padding: 0.5em 0.8em; margin: 0.4em 0; }
  .score { font-weight: bold; color: #1e8449; }
</style>
</head>
<body>
<h1>Plumber Matching Report</h1>
<p class="meta">Generated {{.GeneratedAt}} &middot; {{.Report.TotalFound}} plumber(s) found</p>

<h2>Preferences Used</h2>
{{if .Report.PreferencesUsed}}<p>{{join .Report.PreferencesUsed ", "}}</p>{{else}}<p>None</p>{{end}}

<h2>Top Matches</h2>
{{if .Report.TopMatches}}
<table>
<tr><th>#</th><th>Name</th><th>Score</th><th>Specialization</th><th>Distance (km)</th><th>Rating</th></tr>
{{range $i, $m := .Report.TopMatches}}
<tr>
  <td>{{inc $i}}</td>
  <td>{{$m.Name}}</td>
  <td class="score">{{printf "%.2f" $m.Score}}</td>
  <td>{{$m.Specialization}}</td>
  <td>{{if $m.DistanceKm}}{{printf "%.2f" (deref $m.DistanceKm)}}{{else}}&ndash;{{end}}</td>
  <td>{{if $m.Rating}}{{printf "%.1f" (deref $m.Rating)}}{{else}}&ndash;{{end}}</td>
</tr>
{{end}}
</table>
{{else}}<p>No plumbers matched the given preferences.</p>{{end}}

<h2>Attribute Analysis</h2>
{{if .Report.AttributeAnalysis}}
<table>
<tr><th>Attribute</th><th>Average</th><th>Max</th><th>Min</th></tr>
{{range $name, $stats := .Report.AttributeAnalysis}}
<tr>
  <td>{{$name}}</td>
  <td>{{printf "%.2f" $stats.AverageScore}}</td>
  <td>{{printf "%.2f" $stats.MaxScore}}</td>
  <td>{{printf "%.2f" $stats.MinScore}}</td>
</tr>
{{end}}
</table>
{{else}}<p>No attribute contributions to analyze.</p>{{end}}

{{if .Report.Recommendations}}
<h2>Recommendations</h2>
{{range .Report.Recommendations}}<div class="recommendation">{{.}}</div>{{end}}
{{end}}
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"join":  strings.Join,
	"inc":   func(i int) int { return i + 1 },
	"deref": func(f *float64) float64 { return *f },
}).Parse(reportTemplate))

// RenderHTML renders a matching report as a standalone HTML document.
func RenderHTML(report *matching.Report) (string, error) {
	if report == nil {
		return "", fmt.Errorf("report is nil")
	}

	var sb strings.Builder
	data := struct {
		Report      *matching.Report
		GeneratedAt string
	}{
		Report:      report,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	}
	if err := reportTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return sb.String(), nil
}
