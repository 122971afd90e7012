package statement

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadCSV loads a statement table from CSV: the first column holds line-item
// labels (canonical or provider English), every other column is a fiscal year.
// Empty cells and "NaN" are zero-filled as not reported.
func ReadCSV(r io.Reader) (*Table, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read statement csv: %w", df.Err)
	}

	names := df.Names()
	if len(names) < 2 {
		return nil, errors.New("read statement csv: need a label column and at least one year column")
	}
	years := names[1:]
	labels := df.Col(names[0]).Records()

	b := NewBuilder(years...)
	for _, y := range years {
		col := df.Col(y).Records()
		for i, label := range labels {
			item := TranslateAny(label)
			b.AddRow(item)
			raw := strings.TrimSpace(col[i])
			if raw == "" || strings.EqualFold(raw, "nan") || b.reported(item, y) {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("read statement csv: %q, %s: %w", label, y, err)
			}
			b.Set(item, y, v)
		}
	}
	return b.Build()
}

// WriteCSV writes the table in the layout ReadCSV accepts. Cells that were
// not reported are written empty.
func WriteCSV(w io.Writer, t *Table) error {
	years := t.Years()
	header := append([]string{"Item"}, years...)
	records := [][]string{header}
	for _, item := range t.Items() {
		rec := make([]string, 0, len(header))
		rec = append(rec, string(item))
		for _, y := range years {
			c, err := t.Cell(item, y)
			if err != nil || !c.Reported {
				rec = append(rec, "")
				continue
			}
			rec = append(rec, strconv.FormatFloat(c.Amount, 'f', -1, 64))
		}
		records = append(records, rec)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return fmt.Errorf("write statement csv: %w", df.Err)
	}
	return df.WriteCSV(w)
}
