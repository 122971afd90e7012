package statement

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// DefaultYears is the fiscal-year selection used when none is configured.
var DefaultYears = []string{"2021-12-31", "2022-12-31", "2023-12-31"}

// DefaultLatest is how many years are kept when the selection is "latest".
const DefaultLatest = 3

// ErrYearNotAvailable is returned when a selected year is absent from a statement.
var ErrYearNotAvailable = errors.New("fiscal year not available")

// RawRow is one provider line item. A nil value means not reported.
type RawRow struct {
	Label  string
	Values map[string]*float64
}

// Raw is a statement as returned by the provider, labels untranslated.
type Raw struct {
	Kind    Kind
	Periods []string
	Rows    []RawRow
}

// AssembleOptions selects the fiscal years of the resulting table. Years wins
// when set; otherwise the Latest most recent years common to every statement
// are kept.
type AssembleOptions struct {
	Years  []string
	Latest int
}

// Assemble translates each raw statement, restricts it to the selected years,
// concatenates them in the order given and zero-fills every gap. When a line
// item appears in more than one statement, the first reported value for a
// year wins.
func Assemble(opts AssembleOptions, raws ...Raw) (*Table, error) {
	if len(raws) == 0 {
		return nil, errors.New("assemble: no statements")
	}

	years := resolveYears(opts, raws)
	if len(years) == 0 {
		return nil, fmt.Errorf("assemble: %w: statements share no fiscal year", ErrYearNotAvailable)
	}

	for _, raw := range raws {
		have := make(map[string]bool, len(raw.Periods))
		for _, p := range raw.Periods {
			have[p] = true
		}
		for _, y := range years {
			if !have[y] {
				return nil, fmt.Errorf("assemble %s: %w: %s", raw.Kind, ErrYearNotAvailable, y)
			}
		}
	}

	b := NewBuilder(years...)
	for _, raw := range raws {
		for _, row := range raw.Rows {
			item := Translate(raw.Kind, row.Label)
			b.AddRow(item)
			for _, y := range years {
				v := row.Values[y]
				if v == nil || math.IsNaN(*v) || b.reported(item, y) {
					continue
				}
				b.Set(item, y, *v)
			}
		}
	}
	return b.Build()
}

// Select restricts an already built table, such as one read from CSV, to the
// fiscal years opts selects, in that order. Cells keep their reported and
// absent state. A selected year the table lacks is an ErrYearNotAvailable.
func Select(tbl *Table, opts AssembleOptions) (*Table, error) {
	years := resolveYears(opts, []Raw{{Periods: tbl.years}})
	if len(years) == 0 {
		return nil, fmt.Errorf("select: %w: table has no fiscal year", ErrYearNotAvailable)
	}
	for _, y := range years {
		if _, ok := tbl.yearIdx[y]; !ok {
			return nil, fmt.Errorf("select: %w: %s", ErrYearNotAvailable, y)
		}
	}

	b := NewBuilder(years...)
	for _, item := range tbl.order {
		b.AddRow(item)
		src, dst := tbl.rows[item], b.rows[item]
		for i, y := range b.years {
			dst[i] = src[tbl.yearIdx[y]]
		}
	}
	return b.Build()
}

// resolveYears returns opts.Years, or the Latest most recent years common to
// every statement when none are given.
func resolveYears(opts AssembleOptions, raws []Raw) []string {
	if len(opts.Years) > 0 {
		return opts.Years
	}
	n := opts.Latest
	if n <= 0 {
		n = DefaultLatest
	}
	return latestCommonYears(raws, n)
}

// latestCommonYears returns up to n of the most recent periods present in
// every statement, oldest first.
func latestCommonYears(raws []Raw, n int) []string {
	counts := make(map[string]int)
	for _, raw := range raws {
		seen := make(map[string]bool, len(raw.Periods))
		for _, p := range raw.Periods {
			if !seen[p] {
				seen[p] = true
				counts[p]++
			}
		}
	}
	var common []string
	for p, c := range counts {
		if c == len(raws) {
			common = append(common, p)
		}
	}
	// ISO dates sort lexically.
	sort.Strings(common)
	if len(common) > n {
		common = common[len(common)-n:]
	}
	return common
}
