package report

// ReportTemplate is the HTML page the Markdown body and chart are placed in.
// It is embedded as a Go constant — no external file dependencies.
const ReportTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --red: #dc2626;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.5rem; margin-bottom: 4px; color: var(--accent); }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  p { margin: 6px 0; }
  ul { margin: 8px 0 8px 20px; color: var(--muted); font-size: 0.9rem; }
  blockquote { border-left: 4px solid var(--red); background: var(--section-bg); padding: 8px 12px; }
  table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
  th, td { padding: 6px 8px; border-bottom: 1px solid var(--border); }
  th { background: var(--section-bg); font-weight: 600; }
  td { font-variant-numeric: tabular-nums; }
  .chart { margin: 16px 0; text-align: center; }
</style>
</head>
<body>
{{.Body}}
{{if .Chart}}<div class="chart">{{.Chart}}</div>{{end}}
</body>
</html>
`
