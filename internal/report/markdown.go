package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown renders the document as GitHub-flavoured Markdown.
func markdown(d *Document) string {
	var sb strings.Builder
	if d.Ticker != "" {
		sb.WriteString(fmt.Sprintf("# %s: %s\n\n", d.Title, mdEscape(d.Ticker)))
	} else {
		sb.WriteString(fmt.Sprintf("# %s\n\n", d.Title))
	}
	sb.WriteString(fmt.Sprintf("%s: %s  \n", d.generatedLabel, d.GeneratedAt))
	sb.WriteString(fmt.Sprintf("%s: %s\n", d.yearsLabel, strings.Join(d.Years, ", ")))

	for _, sec := range d.Sections {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", sec.Title))
		if sec.Err != "" {
			sb.WriteString(fmt.Sprintf("> **%s:** %s\n", d.errorLabel, mdEscape(sec.Err)))
		} else {
			writeMarkdownTable(&sb, sec.Header, sec.Rows)
		}
		if len(sec.Notes) > 0 {
			sb.WriteString(fmt.Sprintf("\n**%s:**\n\n", d.notesLabel))
			for _, n := range sec.Notes {
				sb.WriteString("- " + mdEscape(n) + "\n")
			}
		}
	}
	return sb.String()
}

func writeMarkdownTable(sb *strings.Builder, header []string, rows [][]string) {
	sb.WriteString("| " + strings.Join(escapeCells(header), " | ") + " |\n")
	align := make([]string, len(header))
	for i := range align {
		if i == 0 {
			align[i] = "---"
		} else {
			align[i] = "---:"
		}
	}
	sb.WriteString("| " + strings.Join(align, " | ") + " |\n")
	for _, r := range rows {
		sb.WriteString("| " + strings.Join(escapeCells(r), " | ") + " |\n")
	}
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = mdEscape(c)
	}
	return out
}

var mdReplacer = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "<", "&lt;", ">", "&gt;")

func mdEscape(s string) string { return mdReplacer.Replace(s) }

// ════════════════════════════════════════════════════════════════════
// HTML — Markdown body through goldmark, wrapped in a page template
// ════════════════════════════════════════════════════════════════════

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

type htmlPage struct {
	Lang  string
	Title string
	Chart template.HTML
	Body  template.HTML
}

var pageTemplate = template.Must(template.New("report").Parse(ReportTemplate))

// writeHTML converts the Markdown rendering to HTML and embeds the score chart.
func writeHTML(w io.Writer, d *Document) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown(d)), &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	page := htmlPage{
		Lang:  d.lang,
		Title: d.Title,
		Body:  template.HTML(body.String()),
	}
	if d.Ticker != "" {
		page.Title += ": " + d.Ticker
	}
	if chart := scoreChart(d); chart != "" {
		page.Chart = template.HTML(chart)
	}

	if err := pageTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}
