package fundamental

import (
	"fmt"

	"github.com/seenimoa/analisefin/internal/statement"
)

// DuPontRow is one year of the return-on-equity decomposition. A ratio whose
// denominator was zero is left invalid.
type DuPontRow struct {
	Year          string `json:"year"`
	ROE           Ratio  `json:"roe"`
	ROA           Ratio  `json:"roa"`
	NetMargin     Ratio  `json:"net_margin"`
	AssetTurnover Ratio  `json:"asset_turnover"`
	Leverage      Ratio  `json:"leverage"`
}

// DuPontResult holds one row per table year.
type DuPontResult struct {
	Rows []DuPontRow `json:"rows"`
}

// DuPont decomposes ROE into margin, turnover and leverage for every year.
func (a *Analyzer) DuPont(tbl *statement.Table) (*DuPontResult, error) {
	res := &DuPontResult{}
	for _, year := range tbl.Years() {
		r := &yearReader{tbl: tbl, year: year}
		netIncome := r.get(statement.NetIncome)
		equity := r.get(statement.StockholdersEquity)
		assets := r.get(statement.TotalAssets)
		revenue := r.get(statement.TotalRevenue)
		if r.err != nil {
			return nil, fmt.Errorf("dupont: %w", r.err)
		}

		res.Rows = append(res.Rows, DuPontRow{
			Year:          year,
			ROE:           ratioOf(netIncome, equity),
			ROA:           ratioOf(netIncome, assets),
			NetMargin:     ratioOf(netIncome, revenue),
			AssetTurnover: ratioOf(revenue, assets),
			Leverage:      ratioOf(assets, equity),
		})
	}
	a.log.Debug().Int("years", len(res.Rows)).Msg("dupont computed")
	return res, nil
}
