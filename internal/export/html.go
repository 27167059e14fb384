// ABOUTME: HTML exporter for session reports using Go html/template
// ABOUTME: Renders the ranking, matrix, and consistency check as a styled document

package export

import (
	"html/template"
	"io"

	"github.com/mauromedda/prefscale-go/internal/session"
)

// HTML renders the report as a standalone styled HTML document to w.
// The ranking table colors each row by its confidence band.
func HTML(r *session.Report, w io.Writer) error {
	return htmlTmpl.Execute(w, htmlData(r))
}

// htmlReport is the template's view of a report.
type htmlReport struct {
	Ranked      []session.AlternativeResult
	Names       []string
	Rows        [][]float64
	Consistency consistencyView
	Confidence  string
	Method      string
}

type consistencyView struct {
	LambdaMax       float64
	CI              float64
	CR              float64
	Threshold       float64
	Consistent      bool
	Recommendations []string
}

func htmlData(r *session.Report) htmlReport {
	names := make([]string, len(r.Alternatives))
	for i, a := range r.Alternatives {
		names[i] = a.Name
	}
	rows := make([][]float64, len(names))
	for i := range names {
		rows[i] = make([]float64, len(names))
		for j := range names {
			rows[i][j] = r.Matrix.At(i, j)
		}
	}
	return htmlReport{
		Ranked: byRank(r.Alternatives),
		Names:  names,
		Rows:   rows,
		Consistency: consistencyView{
			LambdaMax:       r.Consistency.LambdaMax,
			CI:              r.Consistency.CI,
			CR:              r.Consistency.CR,
			Threshold:       r.Consistency.Threshold,
			Consistent:      r.Consistency.Consistent,
			Recommendations: r.Consistency.Recommendations,
		},
		Confidence: r.Confidence.String(),
		Method:     r.Method.String(),
	}
}

// confidenceClass maps a confidence band to a CSS class name.
func confidenceClass(c session.Confidence) string {
	return "confidence-" + c.String()
}

var funcMap = template.FuncMap{
	"confidenceClass": confidenceClass,
}

var htmlTmpl = template.Must(template.New("report").Funcs(funcMap).Parse(htmlTemplate))

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Priority Report</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    background: #1e1e2e;
    color: #cdd6f4;
    font-family: 'SF Mono', 'Cascadia Code', 'Fira Code', monospace;
    font-size: 14px;
    line-height: 1.6;
    padding: 24px;
    max-width: 900px;
    margin: 0 auto;
  }
  h1 { font-size: 20px; margin-bottom: 8px; color: #89b4fa; }
  h2 { font-size: 16px; margin: 24px 0 8px; color: #89b4fa; }
  .meta { color: #7f849c; margin-bottom: 16px; }
  table {
    border-collapse: collapse;
    margin: 8px 0 16px;
    width: 100%;
  }
  th, td {
    border: 1px solid #313244;
    padding: 6px 12px;
    text-align: right;
  }
  th:first-child, td:first-child { text-align: left; }
  th { background: #313244; color: #cdd6f4; }
  tr.confidence-high td { border-left: 4px solid #a6e3a1; }
  tr.confidence-medium td { border-left: 4px solid #f9e2af; }
  tr.confidence-low td { border-left: 4px solid #fab387; }
  tr.confidence-none td { border-left: 4px solid #6c7086; }
  .consistent { color: #a6e3a1; }
  .inconsistent { color: #f38ba8; }
  ul { margin: 8px 0 0 24px; }
</style>
</head>
<body>
<h1>Priority Report</h1>
<p class="meta">Weight method: {{.Method}} &middot; overall confidence: {{.Confidence}}</p>

<h2>Ranking</h2>
<table>
<tr><th>Rank</th><th>Alternative</th><th>Weight</th><th>Reliability</th><th>Confidence</th></tr>
{{range .Ranked}}<tr class="{{confidenceClass .Confidence}}"><td>{{.Rank}}</td><td>{{.Name}}</td><td>{{printf "%.4f" .Weight}}</td><td>{{printf "%.1f" .AvgReliability}}</td><td>{{.Confidence}}</td></tr>
{{end}}</table>

<h2>Judgment matrix</h2>
<table>
<tr><th></th>{{range .Names}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $name := .Names}}<tr><td>{{$name}}</td>{{range index $.Rows $i}}<td>{{printf "%.3f" .}}</td>{{end}}</tr>
{{end}}</table>

<h2>Consistency</h2>
{{if .Consistency.Consistent}}<p class="consistent">CR {{printf "%.4f" .Consistency.CR}} &le; threshold {{printf "%.2f" .Consistency.Threshold}}</p>
{{else}}<p class="inconsistent">CR {{printf "%.4f" .Consistency.CR}} &gt; threshold {{printf "%.2f" .Consistency.Threshold}}</p>
{{end}}<ul>
{{range .Consistency.Recommendations}}<li>{{.}}</li>
{{end}}</ul>
</body>
</html>
`
