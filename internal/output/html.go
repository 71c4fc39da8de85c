package output

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/buemura/reconbox/pkg/types"
)

// HTMLFormatter renders invocations as a self-contained HTML report with
// status badges and collapsible captured output.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, invocations []types.Invocation) error {
	return htmlTpl.Execute(w, templateData{
		Invocations: invocations,
		Summary:     summarize(invocations),
		Generated:   time.Now().UTC().Format(time.RFC3339),
	})
}

type templateData struct {
	Invocations []types.Invocation
	Summary     summary
	Generated   string
}

func statusClass(inv types.Invocation) string {
	switch {
	case inv.Succeeded():
		return "ok"
	case !inv.Launched():
		return "failed"
	default:
		return "warn"
	}
}

var funcMap = template.FuncMap{
	"statusClass": statusClass,
	"duration":    formatDuration,
}

var htmlTpl = template.Must(template.New("report").Funcs(funcMap).Parse(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>reconbox report</title>
<style>%s</style>
</head>
<body>
<div class="container">
  <h1>reconbox report</h1>
  <p class="generated">Generated {{.Generated}}</p>

  <div class="summary-bar">
    <span class="badge ok">{{.Summary.OK}} ok</span>
    <span class="badge failed">{{.Summary.Failed}} failed</span>
    <span class="total">{{.Summary.Lines}} lines captured</span>
  </div>

  <table>
    <thead>
      <tr><th>Scanner</th><th>Command</th><th>Status</th><th>Duration</th><th>Lines</th></tr>
    </thead>
    <tbody>
      {{range .Invocations}}
      <tr>
        <td>{{.Scanner}}</td>
        <td><code>{{.CommandLine}}</code></td>
        <td><span class="badge {{statusClass .}}">{{.Status}}</span></td>
        <td>{{duration .Duration}}</td>
        <td>{{len .Output}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  {{range .Invocations}}
  <section class="scanner-section">
    <h2>{{.Scanner}} &mdash; {{.Target.URL}}</h2>
    {{if .Error}}
      <div class="error-box">{{.Error}}</div>
    {{else if not .Output}}
      <p class="no-output">No output captured.</p>
    {{else}}
      <details open>
        <summary>{{len .Output}} lines</summary>
        <pre>{{range .Output}}{{.}}
{{end}}</pre>
      </details>
    {{end}}
    {{if .Stderr}}<pre class="stderr">{{.Stderr}}</pre>{{end}}
  </section>
  {{end}}
</div>
</body>
</html>`, cssStyles)))

const cssStyles = `
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,Helvetica,Arial,sans-serif;
     line-height:1.6;color:#1a1a2e;background:#f5f5fa;padding:2rem}
.container{max-width:960px;margin:0 auto}
h1{margin-bottom:.25rem;font-size:1.8rem}
h2{margin:1.5rem 0 .75rem;font-size:1.3rem;border-bottom:2px solid #e0e0e0;padding-bottom:.3rem}
.generated{color:#666;font-size:.85rem;margin-bottom:1rem}
.summary-bar{display:flex;gap:.5rem;flex-wrap:wrap;align-items:center;margin-bottom:1.5rem}
.total{margin-left:.5rem;font-weight:600}
.badge{display:inline-block;padding:2px 10px;border-radius:12px;font-size:.8rem;font-weight:700;color:#fff;text-transform:uppercase}
.badge.ok{background:#2e7d32}
.badge.warn{background:#f9a825;color:#333}
.badge.failed{background:#d32f2f}
table{width:100%;border-collapse:collapse;margin-bottom:1rem}
th,td{text-align:left;padding:.5rem .75rem;border-bottom:1px solid #e0e0e0;vertical-align:top}
th{background:#eaeaea;font-weight:600}
tr:hover{background:#f0f0ff}
code,pre{font-family:SFMono-Regular,Consolas,"Liberation Mono",monospace;font-size:.85rem}
pre{background:#fff;border:1px solid #e0e0e0;border-radius:6px;padding:.75rem;overflow-x:auto}
pre.stderr{background:#fff8e1;margin-top:.5rem}
summary{cursor:pointer;color:#1565c0;font-size:.85rem}
.error-box{background:#ffebee;color:#c62828;padding:.75rem 1rem;border-radius:6px;margin-bottom:1rem}
.no-output{color:#666;font-style:italic}
.scanner-section{margin-bottom:2rem}
`
