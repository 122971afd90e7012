// Package report renders fundamental analysis results as plain text,
// Markdown, HTML (with an SVG score chart), CSV or JSON, with labels and
// numbers localized for English or Brazilian Portuguese.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"golang.org/x/text/message"

	"github.com/seenimoa/analisefin/internal/analysis/fundamental"
	"github.com/seenimoa/analisefin/internal/statement"
	"github.com/seenimoa/analisefin/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Formats and options
// ════════════════════════════════════════════════════════════════════

// Format specifies the output format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatHTML, FormatCSV, FormatJSON:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Options controls report generation.
type Options struct {
	Format      Format
	Locale      string    // BCP 47 tag (default: pt-BR)
	Ticker      string    // shown in the title
	GeneratedAt time.Time // default: now

	// Missing lists, per model, the required rows absent from the table.
	Missing map[fundamental.Model][]statement.LineItem
}

// notAvailable marks a ratio whose denominator was zero.
const notAvailable = "—"

// ════════════════════════════════════════════════════════════════════
// Document — flattened, already localized
// ════════════════════════════════════════════════════════════════════

// Section is one analyzer's table.
type Section struct {
	Model  fundamental.Model
	Title  string
	Header []string
	Rows   [][]string
	Notes  []string
	Err    string
}

// Document is the localized model every text-like renderer draws from.
type Document struct {
	Title       string
	Ticker      string
	GeneratedAt string
	Years       []string
	Sections    []Section

	// set by Build for the renderers
	lang           string
	generatedLabel string
	yearsLabel     string
	errorLabel     string
	notesLabel     string
	chartTitle     string

	scores []scoreSeries
}

type scoreSeries struct {
	model  fundamental.Model
	name   string
	values []float64
}

// Render writes rep to w in the configured format.
func Render(w io.Writer, rep *fundamental.Report, opts Options) error {
	if rep == nil {
		return fmt.Errorf("report is nil")
	}
	switch opts.Format {
	case FormatText, "":
		return writeText(w, Build(rep, opts))
	case FormatMarkdown:
		_, err := io.WriteString(w, markdown(Build(rep, opts)))
		return err
	case FormatHTML:
		return writeHTML(w, Build(rep, opts))
	case FormatCSV:
		return writeCSV(w, rep, opts)
	case FormatJSON:
		return writeJSON(w, rep, opts)
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

// Build flattens rep into a localized document, one section per model in
// the order the models were requested.
func Build(rep *fundamental.Report, opts Options) *Document {
	p := newPrinter(opts.Locale)
	fm := numberFormat{p: p}

	doc := newDocument(p, p.Sprintf("Financial analysis"), rep.Years, opts)
	doc.chartTitle = p.Sprintf("Scores by year")

	seen := make(map[fundamental.Model]bool)
	for _, m := range rep.Models {
		if seen[m] {
			continue
		}
		seen[m] = true

		var sec Section
		switch m {
		case fundamental.ModelFleuriet:
			sec = fleurietSection(p, fm, rep.Fleuriet, rep.FleurietErr)
		case fundamental.ModelDuPont:
			sec = dupontSection(p, fm, rep.DuPont, rep.DuPontErr)
		case fundamental.ModelZScore:
			sec = zscoreSection(p, fm, rep.ZScore, rep.ZScoreErr)
			if rep.ZScore != nil {
				doc.scores = append(doc.scores, scoreSeries{
					model:  m,
					name:   sec.Title,
					values: zscoreSeries(rep.Years, rep.ZScore),
				})
			}
		case fundamental.ModelKanitz:
			sec = kanitzSection(p, fm, rep.Kanitz, rep.KanitzErr)
			if rep.Kanitz != nil {
				doc.scores = append(doc.scores, scoreSeries{
					model:  m,
					name:   sec.Title,
					values: kanitzSeries(rep.Years, rep.Kanitz),
				})
			}
		default:
			continue
		}
		sec.Model = m
		if missing := opts.Missing[m]; len(missing) > 0 {
			sec.Notes = append([]string{p.Sprintf("missing rows: %s", joinItems(missing))}, sec.Notes...)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc
}

func newDocument(p *message.Printer, title string, years []string, opts Options) *Document {
	at := opts.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}
	return &Document{
		Title:          title,
		Ticker:         opts.Ticker,
		GeneratedAt:    at.Format("2006-01-02 15:04"),
		Years:          years,
		lang:           parseLocale(opts.Locale).String(),
		generatedLabel: p.Sprintf("Generated at"),
		yearsLabel:     p.Sprintf("Fiscal years"),
		errorLabel:     p.Sprintf("Error"),
		notesLabel:     p.Sprintf("Notes"),
	}
}

func fleurietSection(p *message.Printer, fm numberFormat, res *fundamental.FleurietResult, err error) Section {
	sec := Section{
		Title:  p.Sprintf("Fleuriet model"),
		Header: []string{p.Sprintf("Year"), "CDG", "NCG", "T", p.Sprintf("Rule"), p.Sprintf("Classification")},
	}
	if err != nil {
		sec.Err = err.Error()
		return sec
	}
	for _, r := range res.Rows {
		sec.Rows = append(sec.Rows, []string{
			r.Year,
			fm.amount(r.CDG),
			fm.amount(r.NCG),
			fm.amount(r.T),
			fm.integer(r.Rule),
			label(p, r.Classification.String()),
		})
	}
	return sec
}

func dupontSection(p *message.Printer, fm numberFormat, res *fundamental.DuPontResult, err error) Section {
	sec := Section{
		Title: p.Sprintf("DuPont analysis"),
		Header: []string{p.Sprintf("Year"), "ROE", "ROA",
			p.Sprintf("Net margin"), p.Sprintf("Asset turnover"), p.Sprintf("Leverage")},
	}
	if err != nil {
		sec.Err = err.Error()
		return sec
	}
	for _, r := range res.Rows {
		sec.Rows = append(sec.Rows, []string{
			r.Year,
			fm.ratio(r.ROE),
			fm.ratio(r.ROA),
			fm.ratio(r.NetMargin),
			fm.ratio(r.AssetTurnover),
			fm.ratio(r.Leverage),
		})
	}
	return sec
}

func zscoreSection(p *message.Printer, fm numberFormat, res *fundamental.ZScoreResult, err error) Section {
	sec := Section{
		Title:  p.Sprintf("Altman Z-Score"),
		Header: []string{p.Sprintf("Year"), "Z-Score", "X1", "X2", "X3", "X4", "X5", p.Sprintf("Zone")},
	}
	if err != nil {
		sec.Err = err.Error()
		return sec
	}
	for _, r := range res.Rows {
		sec.Rows = append(sec.Rows, []string{
			r.Year,
			fm.score(r.Score),
			fm.decimal(r.X1),
			fm.decimal(r.X2),
			fm.decimal(r.X3),
			fm.decimal(r.X4),
			fm.decimal(r.X5),
			label(p, string(r.Zone)),
		})
	}
	return sec
}

func kanitzSection(p *message.Printer, fm numberFormat, res *fundamental.KanitzResult, err error) Section {
	sec := Section{
		Title: p.Sprintf("Kanitz insolvency thermometer"),
		Header: []string{p.Sprintf("Year"), p.Sprintf("Thermometer"), p.Sprintf("Liquidity"),
			p.Sprintf("Indebtedness"), "RSPL", p.Sprintf("Band")},
	}
	if err != nil {
		sec.Err = err.Error()
		return sec
	}
	for _, r := range res.Rows {
		sec.Rows = append(sec.Rows, []string{
			r.Year,
			fm.score(r.Thermometer),
			fm.decimal(r.Liquidity),
			fm.decimal(r.Indebtedness),
			fm.decimal(r.RSPL),
			label(p, string(r.Band)),
		})
	}
	for _, d := range res.Diagnostics {
		sec.Notes = append(sec.Notes, p.Sprintf("%s not found for year %s, year skipped", string(d.Item), d.Year))
	}
	return sec
}

// zscoreSeries aligns scores to years; years without a row are NaN.
func zscoreSeries(years []string, res *fundamental.ZScoreResult) []float64 {
	byYear := make(map[string]float64, len(res.Rows))
	for _, r := range res.Rows {
		byYear[r.Year] = r.Score
	}
	return alignToYears(years, byYear)
}

func kanitzSeries(years []string, res *fundamental.KanitzResult) []float64 {
	byYear := make(map[string]float64, len(res.Rows))
	for _, r := range res.Rows {
		byYear[r.Year] = r.Thermometer
	}
	return alignToYears(years, byYear)
}

func alignToYears(years []string, byYear map[string]float64) []float64 {
	out := make([]float64, len(years))
	for i, y := range years {
		v, ok := byYear[y]
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

func joinItems(items []statement.LineItem) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = string(it)
	}
	return strings.Join(names, ", ")
}

// ════════════════════════════════════════════════════════════════════
// Number formatting
// ════════════════════════════════════════════════════════════════════

type numberFormat struct {
	p *message.Printer
}

// amount prints a currency amount compacted to mil/mi/bi/tri.
func (f numberFormat) amount(v float64) string {
	scaled, unit := utils.Compact(v)
	if unit == utils.UnitNone {
		return f.p.Sprintf("%.2f", v)
	}
	return f.p.Sprintf("%.2f", scaled) + " " + unit
}

func (f numberFormat) ratio(r fundamental.Ratio) string {
	if !r.Valid {
		return notAvailable
	}
	return f.decimal(r.Value)
}

func (f numberFormat) decimal(v float64) string { return f.p.Sprintf("%.4f", v) }
func (f numberFormat) score(v float64) string   { return f.p.Sprintf("%.2f", v) }
func (f numberFormat) integer(v int) string     { return f.p.Sprintf("%d", v) }
