package fundamental

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/seenimoa/analisefin/internal/statement"
)

// Altman weights for x1..x5.
var zWeights = []float64{1.2, 1.4, 3.3, 0.6, 1.0}

// Conventional Altman cut-offs: below ZDistressBelow is distress, from
// ZSafeFrom up is safe.
const (
	ZDistressBelow = 1.81
	ZSafeFrom      = 2.99
)

// ErrNoDividendRow is wrapped by DividendLookupError.
var ErrNoDividendRow = errors.New("no dividends row found")

// DividendLookupError reports that none of the dividend aliases exist.
type DividendLookupError struct {
	Year string
}

func (e *DividendLookupError) Error() string {
	names := make([]string, len(statement.DividendAliases))
	for i, a := range statement.DividendAliases {
		names[i] = fmt.Sprintf("%q", string(a))
	}
	return fmt.Sprintf("%s for year %s (tried %s)", ErrNoDividendRow, e.Year, strings.Join(names, ", "))
}

func (e *DividendLookupError) Unwrap() error { return ErrNoDividendRow }

// Zone is the Altman risk zone of a score.
type Zone string

const (
	ZoneDistress Zone = "distress"
	ZoneGrey     Zone = "grey"
	ZoneSafe     Zone = "safe"
)

// ZoneOf places score in its Altman zone.
func ZoneOf(score float64) Zone {
	switch {
	case score < ZDistressBelow:
		return ZoneDistress
	case score < ZSafeFrom:
		return ZoneGrey
	default:
		return ZoneSafe
	}
}

// ZScoreRow is one year of the Altman model.
type ZScoreRow struct {
	Year  string  `json:"year"`
	Score float64 `json:"z_score"`
	X1    float64 `json:"x1"`
	X2    float64 `json:"x2"`
	X3    float64 `json:"x3"`
	X4    float64 `json:"x4"`
	X5    float64 `json:"x5"`
	Zone  Zone    `json:"zone"`
}

// ZScoreResult holds one row per table year.
type ZScoreResult struct {
	Rows []ZScoreRow `json:"rows"`
}

// resolveDividends returns the amount of the first dividend alias present for year.
func resolveDividends(tbl *statement.Table, year string) (float64, error) {
	for _, alias := range statement.DividendAliases {
		if tbl.Present(alias, year) {
			return tbl.Value(alias, year)
		}
	}
	return 0, &DividendLookupError{Year: year}
}

// ZScore computes the Altman Z-Score for every year. Components with a zero
// denominator count as 0. A year without any dividends row fails the whole
// analysis with a DividendLookupError naming that year.
func (a *Analyzer) ZScore(tbl *statement.Table) (*ZScoreResult, error) {
	res := &ZScoreResult{}
	for _, year := range tbl.Years() {
		r := &yearReader{tbl: tbl, year: year}
		workingCapital := r.get(statement.WorkingCapital)
		netIncome := r.get(statement.NetIncome)
		if r.err != nil {
			return nil, fmt.Errorf("zscore: %w", r.err)
		}

		dividends, err := resolveDividends(tbl, year)
		if err != nil {
			return nil, fmt.Errorf("zscore: %w", err)
		}

		assets := r.get(statement.TotalAssets)
		liabilities := r.get(statement.TotalLiabilities)
		revenue := r.get(statement.TotalRevenue)
		ebit := r.get(statement.EBIT)
		equity := r.get(statement.StockholdersEquity)
		if r.err != nil {
			return nil, fmt.Errorf("zscore: %w", r.err)
		}

		retained := netIncome - dividends
		x := []float64{
			divOrZero(workingCapital, assets),
			divOrZero(retained, assets),
			divOrZero(ebit, assets),
			divOrZero(equity, liabilities),
			divOrZero(revenue, assets),
		}
		score := floats.Dot(zWeights, x)

		res.Rows = append(res.Rows, ZScoreRow{
			Year:  year,
			Score: score,
			X1:    x[0],
			X2:    x[1],
			X3:    x[2],
			X4:    x[3],
			X5:    x[4],
			Zone:  ZoneOf(score),
		})
	}
	a.log.Debug().Int("years", len(res.Rows)).Msg("zscore computed")
	return res, nil
}
