package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/seenimoa/analisefin/internal/statement"
)

type statementItem struct {
	Item   statement.LineItem        `json:"item"`
	Values map[string]statement.Cell `json:"values"`
}

// RenderStatement writes the unified statement table itself, one line item
// per row. Zero-filled cells show as "—" in the text formats; CSV uses the
// layout statement.ReadCSV loads back.
func RenderStatement(w io.Writer, tbl *statement.Table, opts Options) error {
	if tbl == nil {
		return fmt.Errorf("statement table is nil")
	}
	switch opts.Format {
	case FormatCSV:
		return statement.WriteCSV(w, tbl)
	case FormatJSON:
		return writeStatementJSON(w, tbl, opts)
	case FormatText, "":
		return writeText(w, buildStatement(tbl, opts))
	case FormatMarkdown:
		_, err := io.WriteString(w, markdown(buildStatement(tbl, opts)))
		return err
	case FormatHTML:
		return writeHTML(w, buildStatement(tbl, opts))
	default:
		return fmt.Errorf("unknown report format %q", opts.Format)
	}
}

func buildStatement(tbl *statement.Table, opts Options) *Document {
	p := newPrinter(opts.Locale)
	fm := numberFormat{p: p}

	years := tbl.Years()
	sec := Section{
		Title:  p.Sprintf("Financial statement"),
		Header: append([]string{p.Sprintf("Line item")}, years...),
	}
	for _, item := range tbl.Items() {
		row := []string{string(item)}
		for _, y := range years {
			c, err := tbl.Cell(item, y)
			switch {
			case err != nil:
				row = append(row, "")
			case !c.Reported:
				row = append(row, notAvailable)
			default:
				row = append(row, fm.amount(c.Amount))
			}
		}
		sec.Rows = append(sec.Rows, row)
	}

	doc := newDocument(p, sec.Title, years, opts)
	doc.Sections = []Section{sec}
	return doc
}

func writeStatementJSON(w io.Writer, tbl *statement.Table, opts Options) error {
	out := struct {
		Ticker string          `json:"ticker,omitempty"`
		Years  []string        `json:"years"`
		Items  []statementItem `json:"items"`
	}{Ticker: opts.Ticker, Years: tbl.Years()}

	for _, item := range tbl.Items() {
		si := statementItem{Item: item, Values: make(map[string]statement.Cell)}
		for _, y := range out.Years {
			if c, err := tbl.Cell(item, y); err == nil {
				si.Values[y] = c
			}
		}
		out.Items = append(out.Items, si)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding json statement: %w", err)
	}
	return nil
}
