package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// writeText renders the document as aligned plain-text tables for terminals.
func writeText(w io.Writer, d *Document) error {
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	var sb strings.Builder
	sb.WriteString(line + "\n")
	if d.Ticker != "" {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", d.Title, d.Ticker))
	} else {
		sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	}
	sb.WriteString(fmt.Sprintf("  %s: %s\n", d.generatedLabel, d.GeneratedAt))
	sb.WriteString(fmt.Sprintf("  %s: %s\n", d.yearsLabel, strings.Join(d.Years, ", ")))
	sb.WriteString(line + "\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	for _, sec := range d.Sections {
		if _, err := fmt.Fprintf(w, "\n  ■ %s\n", sec.Title); err != nil {
			return err
		}
		if sec.Err != "" {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", d.errorLabel, sec.Err); err != nil {
				return err
			}
		} else if err := writeTextTable(w, sec.Header, sec.Rows); err != nil {
			return err
		}
		if len(sec.Notes) > 0 {
			if _, err := fmt.Fprintf(w, "  %s:\n", d.notesLabel); err != nil {
				return err
			}
		}
		for _, n := range sec.Notes {
			if _, err := fmt.Fprintf(w, "  * %s\n", n); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, thinLine+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeTextTable prints a right-aligned table.
func writeTextTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	writeRow := func(cells []string) {
		// Trailing tab terminates the last cell so it is aligned too.
		fmt.Fprint(tw, "  "+strings.Join(cells, "\t")+"\t\n")
	}
	writeRow(header)
	for _, r := range rows {
		writeRow(r)
	}
	return tw.Flush()
}
