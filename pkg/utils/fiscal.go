package utils

import (
	"fmt"
	"strings"
	"time"
)

const fiscalLayout = "2006-01-02"

// FiscalYearEnd normalizes a fiscal year given as "2023" or "2023-12-31" to
// the year-end date used as a statement column.
func FiscalYearEnd(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 {
		if _, err := time.Parse("2006", s); err != nil {
			return "", fmt.Errorf("invalid fiscal year %q", s)
		}
		return s + "-12-31", nil
	}
	t, err := time.Parse(fiscalLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid fiscal year %q: want YYYY or YYYY-MM-DD", s)
	}
	return t.Format(fiscalLayout), nil
}

// ParseFiscalYears normalizes every entry with FiscalYearEnd, splitting
// comma-separated values and dropping duplicates while keeping order.
func ParseFiscalYears(values []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			y, err := FiscalYearEnd(part)
			if err != nil {
				return nil, err
			}
			if !seen[y] {
				seen[y] = true
				out = append(out, y)
			}
		}
	}
	return out, nil
}

// YearOf returns the calendar year of a fiscal year-end date, or the input
// unchanged when it is not a date.
func YearOf(date string) string {
	t, err := time.Parse(fiscalLayout, date)
	if err != nil {
		return date
	}
	return t.Format("2006")
}
