package fundamental

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/seenimoa/analisefin/internal/statement"
)

// Weights for indebtedness, liquidity and RSPL.
var kanitzWeights = []float64{0.01, 1.5, 0.08}

// Band is the Kanitz solvency band of a thermometer value.
type Band string

const (
	BandInsolvent Band = "insolvent"
	BandPenumbra  Band = "penumbra"
	BandSolvent   Band = "solvent"
)

// BandOf places a thermometer value in its band: below -3 insolvent, up to 0
// penumbra, above 0 solvent.
func BandOf(v float64) Band {
	switch {
	case v < -3:
		return BandInsolvent
	case v <= 0:
		return BandPenumbra
	default:
		return BandSolvent
	}
}

// KanitzRow is one year of the thermometer.
type KanitzRow struct {
	Year         string  `json:"year"`
	Thermometer  float64 `json:"thermometer"`
	Liquidity    float64 `json:"liquidity"`
	Indebtedness float64 `json:"indebtedness"`
	RSPL         float64 `json:"rspl"`
	Band         Band    `json:"band"`
}

// Diagnostic explains why a year was left out of a result.
type Diagnostic struct {
	Year string             `json:"year"`
	Item statement.LineItem `json:"item"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%q not found for year %s, year skipped", string(d.Item), d.Year)
}

// KanitzResult holds a row for every year that could be computed and a
// diagnostic for every year that was skipped.
type KanitzResult struct {
	Rows        []KanitzRow  `json:"rows"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Kanitz computes the insolvency thermometer. A year with a missing row is
// skipped with a logged diagnostic and the remaining years still run. Only
// missing-row failures are recovered; anything else is returned.
func (a *Analyzer) Kanitz(tbl *statement.Table) (*KanitzResult, error) {
	res := &KanitzResult{}
	for _, year := range tbl.Years() {
		row, err := kanitzYear(tbl, year)
		if err != nil {
			var mre *statement.MissingRowError
			if !errors.As(err, &mre) {
				return nil, fmt.Errorf("kanitz: %w", err)
			}
			d := Diagnostic{Year: year, Item: mre.Item}
			a.log.Warn().
				Str("year", year).
				Str("item", string(mre.Item)).
				Msg("kanitz: row not found, skipping year")
			res.Diagnostics = append(res.Diagnostics, d)
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	a.log.Debug().
		Int("years", len(res.Rows)).
		Int("skipped", len(res.Diagnostics)).
		Msg("kanitz computed")
	return res, nil
}

func kanitzYear(tbl *statement.Table, year string) (KanitzRow, error) {
	r := &yearReader{tbl: tbl, year: year}
	assets := r.get(statement.TotalAssets)
	r.get(statement.CurrentLiabilities)
	r.get(statement.NonCurrentLiabilities)
	equity := r.get(statement.StockholdersEquity)
	r.get(statement.CurrentAssets)
	r.get(statement.LongTermEquityInvestment)
	netIncome := r.get(statement.NetIncome)
	liabilities := r.get(statement.TotalLiabilities)
	if r.err != nil {
		return KanitzRow{}, r.err
	}

	indebtedness := divOrZero(liabilities, assets)
	liquidity := divOrZero(assets, liabilities)
	rspl := divOrZero(netIncome, equity)
	v := floats.Dot(kanitzWeights, []float64{indebtedness, liquidity, rspl})

	return KanitzRow{
		Year:         year,
		Thermometer:  v,
		Liquidity:    liquidity,
		Indebtedness: indebtedness,
		RSPL:         rspl,
		Band:         BandOf(v),
	}, nil
}
