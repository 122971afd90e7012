// Package fundamental computes per-year financial-health models (Fleuriet,
// DuPont, Altman Z-Score and the Kanitz thermometer) from a statement table.
//
// Each model keeps its own error policy:
//
//	model     missing row                 zero denominator
//	Fleuriet  propagate                   n/a
//	DuPont    propagate                   ratio invalid (null)
//	Z-Score   propagate; dividends named  component 0
//	Kanitz    skip year, log diagnostic   component 0
package fundamental

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seenimoa/analisefin/internal/statement"
)

// Model names one of the analyzers.
type Model string

const (
	ModelFleuriet Model = "fleuriet"
	ModelDuPont   Model = "dupont"
	ModelZScore   Model = "zscore"
	ModelKanitz   Model = "kanitz"
)

// AllModels lists every analyzer in report order.
var AllModels = []Model{ModelFleuriet, ModelDuPont, ModelZScore, ModelKanitz}

// ParseModels resolves a list of model names. An empty list selects all.
func ParseModels(names []string) ([]Model, error) {
	if len(names) == 0 {
		return AllModels, nil
	}
	seen := make(map[Model]bool)
	var out []Model
	for _, n := range names {
		m := Model(strings.ToLower(strings.TrimSpace(n)))
		switch m {
		case ModelFleuriet, ModelDuPont, ModelZScore, ModelKanitz:
		case "z-score", "altman":
			m = ModelZScore
		default:
			return nil, fmt.Errorf("unknown model %q (want fleuriet, dupont, zscore or kanitz)", n)
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}

// Rows each model reads. Z-Score additionally needs one of
// statement.DividendAliases.
var (
	FleurietFields = []statement.LineItem{
		statement.CurrentAssets,
		statement.NonCurrentAssets,
		statement.CurrentDebt,
		statement.NonCurrentLiabilities,
		statement.StockholdersEquity,
		statement.WorkingCapital,
	}
	DuPontFields = []statement.LineItem{
		statement.NetIncome,
		statement.StockholdersEquity,
		statement.TotalAssets,
		statement.TotalRevenue,
	}
	ZScoreFields = []statement.LineItem{
		statement.WorkingCapital,
		statement.NetIncome,
		statement.TotalAssets,
		statement.TotalLiabilities,
		statement.TotalRevenue,
		statement.EBIT,
		statement.StockholdersEquity,
	}
	KanitzFields = []statement.LineItem{
		statement.TotalAssets,
		statement.CurrentLiabilities,
		statement.NonCurrentLiabilities,
		statement.StockholdersEquity,
		statement.CurrentAssets,
		statement.LongTermEquityInvestment,
		statement.NetIncome,
		statement.TotalLiabilities,
	}
)

// Validate lists the rows model needs that tbl lacks. It is advisory: the
// analyzers apply their own policy regardless.
func Validate(tbl *statement.Table, model Model) []statement.LineItem {
	switch model {
	case ModelFleuriet:
		return tbl.Missing(FleurietFields...)
	case ModelDuPont:
		return tbl.Missing(DuPontFields...)
	case ModelZScore:
		missing := tbl.Missing(ZScoreFields...)
		if len(tbl.Missing(statement.DividendAliases...)) == len(statement.DividendAliases) {
			missing = append(missing, statement.DividendAliases...)
		}
		return missing
	case ModelKanitz:
		return tbl.Missing(KanitzFields...)
	}
	return nil
}

// Analyzer runs the models. It holds no state besides its logger and is safe
// for concurrent use.
type Analyzer struct {
	log zerolog.Logger
}

// New creates an Analyzer logging through log.
func New(log zerolog.Logger) *Analyzer {
	return &Analyzer{log: log.With().Str("component", "fundamental").Logger()}
}

// Ratio is a quotient that may be undefined because its denominator was zero.
type Ratio struct {
	Value float64
	Valid bool
}

func ratioOf(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Value: num / den, Valid: true}
}

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// divOrZero is the Z-Score and Kanitz policy for a zero denominator.
func divOrZero(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// yearReader reads rows for one year, keeping the first lookup error.
type yearReader struct {
	tbl  *statement.Table
	year string
	err  error
}

func (r *yearReader) get(item statement.LineItem) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.tbl.Value(item, r.year)
	if err != nil {
		r.err = err
		return 0
	}
	return v
}
