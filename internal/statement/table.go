// Package statement holds the unified financial statement table consumed by
// the analyzers, together with the assembler that builds it from the raw
// provider statements and the label translation tables.
package statement

import (
	"errors"
	"fmt"
)

// ErrMissingRow is wrapped by every MissingRowError.
var ErrMissingRow = errors.New("line item not found")

// ErrUnknownYear is returned when a lookup names a year the table does not hold.
var ErrUnknownYear = errors.New("fiscal year not in table")

// MissingRowError reports a line item absent from the table for a year.
type MissingRowError struct {
	Item LineItem
	Year string
}

func (e *MissingRowError) Error() string {
	return fmt.Sprintf("%q not found for year %s", string(e.Item), e.Year)
}

func (e *MissingRowError) Unwrap() error { return ErrMissingRow }

// Cell is a single amount. Reported is false when the provider had no value
// and the assembler zero-filled it.
type Cell struct {
	Amount   float64 `json:"amount"`
	Reported bool    `json:"reported"`
}

// slot distinguishes an absent cell from a zero-filled one.
type slot struct {
	cell    Cell
	present bool
}

// Table is an immutable year-by-line-item matrix. Build one with a Builder.
type Table struct {
	years   []string
	yearIdx map[string]int
	order   []LineItem
	rows    map[LineItem][]slot
}

// Years returns the fiscal years (columns) in table order.
func (t *Table) Years() []string {
	out := make([]string, len(t.years))
	copy(out, t.years)
	return out
}

// Items returns the line items (rows) in insertion order.
func (t *Table) Items() []LineItem {
	out := make([]LineItem, len(t.order))
	copy(out, t.order)
	return out
}

// Has reports whether the row exists for at least one year.
func (t *Table) Has(item LineItem) bool {
	_, ok := t.rows[item]
	return ok
}

// Present reports whether item has a cell, reported or zero-filled, for year.
func (t *Table) Present(item LineItem, year string) bool {
	i, ok := t.yearIdx[year]
	if !ok {
		return false
	}
	row, ok := t.rows[item]
	return ok && row[i].present
}

// Cell returns the cell for item in year.
func (t *Table) Cell(item LineItem, year string) (Cell, error) {
	i, ok := t.yearIdx[year]
	if !ok {
		return Cell{}, fmt.Errorf("%w: %s", ErrUnknownYear, year)
	}
	row, ok := t.rows[item]
	if !ok || !row[i].present {
		return Cell{}, &MissingRowError{Item: item, Year: year}
	}
	return row[i].cell, nil
}

// Value returns the amount for item in year. Zero-filled cells yield 0.
func (t *Table) Value(item LineItem, year string) (float64, error) {
	c, err := t.Cell(item, year)
	if err != nil {
		return 0, err
	}
	return c.Amount, nil
}

// Missing returns the subset of items with no row in the table.
func (t *Table) Missing(items ...LineItem) []LineItem {
	var missing []LineItem
	for _, item := range items {
		if !t.Has(item) {
			missing = append(missing, item)
		}
	}
	return missing
}

// Builder accumulates rows for a fixed set of years.
type Builder struct {
	years   []string
	yearIdx map[string]int
	order   []LineItem
	rows    map[LineItem][]slot
	err     error
}

// NewBuilder starts a table with the given year columns.
func NewBuilder(years ...string) *Builder {
	b := &Builder{
		yearIdx: make(map[string]int, len(years)),
		rows:    make(map[LineItem][]slot),
	}
	for _, y := range years {
		if _, dup := b.yearIdx[y]; dup {
			continue
		}
		b.yearIdx[y] = len(b.years)
		b.years = append(b.years, y)
	}
	return b
}

// AddRow creates a zero-filled row if it does not exist yet.
func (b *Builder) AddRow(item LineItem) *Builder {
	if _, ok := b.rows[item]; !ok {
		row := make([]slot, len(b.years))
		for i := range row {
			row[i].present = true
		}
		b.rows[item] = row
		b.order = append(b.order, item)
	}
	return b
}

// Drop removes the cell of item for year, so lookups for that year fail as
// a missing row while other years keep their values.
func (b *Builder) Drop(item LineItem, year string) *Builder {
	i, ok := b.yearIdx[year]
	if !ok {
		if b.err == nil {
			b.err = fmt.Errorf("drop %q: %w: %s", string(item), ErrUnknownYear, year)
		}
		return b
	}
	b.AddRow(item)
	b.rows[item][i] = slot{}
	return b
}

// Set records a reported amount, creating the row when needed.
func (b *Builder) Set(item LineItem, year string, amount float64) *Builder {
	i, ok := b.yearIdx[year]
	if !ok {
		if b.err == nil {
			b.err = fmt.Errorf("set %q: %w: %s", string(item), ErrUnknownYear, year)
		}
		return b
	}
	b.AddRow(item)
	b.rows[item][i] = slot{cell: Cell{Amount: amount, Reported: true}, present: true}
	return b
}

// SetRow records one amount per year, in column order.
func (b *Builder) SetRow(item LineItem, amounts ...float64) *Builder {
	if len(amounts) != len(b.years) {
		if b.err == nil {
			b.err = fmt.Errorf("set %q: got %d amounts for %d years", string(item), len(amounts), len(b.years))
		}
		return b
	}
	for i, a := range amounts {
		b.Set(item, b.years[i], a)
	}
	return b
}

// reported reports whether item already holds a reported value for year.
func (b *Builder) reported(item LineItem, year string) bool {
	row, ok := b.rows[item]
	if !ok {
		return false
	}
	return row[b.yearIdx[year]].cell.Reported
}

// Build returns the finished table. The builder may keep being used; the
// returned table does not share storage with it.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.years) == 0 {
		return nil, errors.New("statement table needs at least one year")
	}
	t := &Table{
		years:   make([]string, len(b.years)),
		yearIdx: make(map[string]int, len(b.yearIdx)),
		order:   make([]LineItem, len(b.order)),
		rows:    make(map[LineItem][]slot, len(b.rows)),
	}
	copy(t.years, b.years)
	copy(t.order, b.order)
	for y, i := range b.yearIdx {
		t.yearIdx[y] = i
	}
	for item, row := range b.rows {
		cp := make([]slot, len(row))
		copy(cp, row)
		t.rows[item] = cp
	}
	return t, nil
}
