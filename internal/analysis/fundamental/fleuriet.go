package fundamental

import (
	"fmt"

	"github.com/seenimoa/analisefin/internal/statement"
)

// Classification is the Fleuriet balance-sheet type. Its numeric value is the
// rule number.
type Classification int

const (
	Excellent Classification = iota + 1
	Solid
	Unsatisfactory
	HighRisk
	VeryBad
	Poor
)

var classificationNames = map[Classification]string{
	Excellent:      "Excellent",
	Solid:          "Solid",
	Unsatisfactory: "Unsatisfactory",
	HighRisk:       "High risk",
	VeryBad:        "Very bad",
	Poor:           "Poor",
}

func (c Classification) String() string {
	if s, ok := classificationNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// Rule returns the 1-based rule number that produced c.
func (c Classification) Rule() int { return int(c) }

// MarshalText encodes the classification by name.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify applies the six Fleuriet rules in order; the first match wins.
func Classify(cdg, ncg, t float64) Classification {
	switch {
	case cdg > 0 && ncg < 0:
		return Excellent
	case cdg > 0 && ncg > 0 && t > 0:
		return Solid
	case cdg > 0 && ncg > 0 && t < 0:
		return Unsatisfactory
	case cdg < 0 && ncg < 0:
		return HighRisk
	case cdg < 0 && t < 0:
		return VeryBad
	default:
		return Poor
	}
}

// FleurietRow is one year of the working-capital model.
type FleurietRow struct {
	Year           string         `json:"year"`
	CDG            float64        `json:"cdg"`
	NCG            float64        `json:"ncg"`
	T              float64        `json:"t"`
	Rule           int            `json:"rule"`
	Classification Classification `json:"classification"`
}

// FleurietResult holds one row per table year.
type FleurietResult struct {
	Rows []FleurietRow `json:"rows"`
}

// Fleuriet classifies the working-capital structure of every year. CDG is
// read from the precomputed working capital row; current liabilities are
// taken from current debt. A missing row fails the whole analysis.
func (a *Analyzer) Fleuriet(tbl *statement.Table) (*FleurietResult, error) {
	res := &FleurietResult{}
	for _, year := range tbl.Years() {
		r := &yearReader{tbl: tbl, year: year}
		ca := r.get(statement.CurrentAssets)
		r.get(statement.NonCurrentAssets)
		cl := r.get(statement.CurrentDebt)
		r.get(statement.NonCurrentLiabilities)
		r.get(statement.StockholdersEquity)
		cdg := r.get(statement.WorkingCapital)
		if r.err != nil {
			return nil, fmt.Errorf("fleuriet: %w", r.err)
		}

		ncg := ca - cl
		t := cdg - ncg
		c := Classify(cdg, ncg, t)

		res.Rows = append(res.Rows, FleurietRow{
			Year:           year,
			CDG:            cdg,
			NCG:            ncg,
			T:              t,
			Rule:           c.Rule(),
			Classification: c,
		})
	}
	a.log.Debug().Int("years", len(res.Rows)).Msg("fleuriet computed")
	return res, nil
}
