package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/seenimoa/analisefin/internal/analysis/fundamental"
)

// ════════════════════════════════════════════════════════════════════
// Machine-readable exports — never localized
// ════════════════════════════════════════════════════════════════════

// jsonReport is the JSON envelope. Results of models that were not run are
// omitted; a failed model carries its error message instead of a result.
type jsonReport struct {
	Ticker      string                       `json:"ticker,omitempty"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Years       []string                     `json:"years"`
	Models      []fundamental.Model          `json:"models"`
	Fleuriet    *fundamental.FleurietResult  `json:"fleuriet,omitempty"`
	DuPont      *fundamental.DuPontResult    `json:"dupont,omitempty"`
	ZScore      *fundamental.ZScoreResult    `json:"zscore,omitempty"`
	Kanitz      *fundamental.KanitzResult    `json:"kanitz,omitempty"`
	Errors      map[fundamental.Model]string `json:"errors,omitempty"`
}

func writeJSON(w io.Writer, rep *fundamental.Report, opts Options) error {
	out := jsonReport{
		Ticker:      opts.Ticker,
		GeneratedAt: opts.GeneratedAt,
		Years:       rep.Years,
		Models:      rep.Models,
		Fleuriet:    rep.Fleuriet,
		DuPont:      rep.DuPont,
		ZScore:      rep.ZScore,
		Kanitz:      rep.Kanitz,
	}
	if out.GeneratedAt.IsZero() {
		out.GeneratedAt = time.Now()
	}
	for m, err := range modelErrors(rep) {
		if out.Errors == nil {
			out.Errors = make(map[fundamental.Model]string)
		}
		out.Errors[m] = err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

func modelErrors(rep *fundamental.Report) map[fundamental.Model]error {
	errs := make(map[fundamental.Model]error)
	for m, err := range map[fundamental.Model]error{
		fundamental.ModelFleuriet: rep.FleurietErr,
		fundamental.ModelDuPont:   rep.DuPontErr,
		fundamental.ModelZScore:   rep.ZScoreErr,
		fundamental.ModelKanitz:   rep.KanitzErr,
	} {
		if err != nil {
			errs[m] = err
		}
	}
	return errs
}

// csvHeader is the long layout: one metric of one model per line.
var csvHeader = []string{"model", "year", "metric", "value"}

// writeCSV writes every computed metric in long format. Classification-like
// metrics go in as text; a failed model contributes a single "error" line.
func writeCSV(w io.Writer, rep *fundamental.Report, _ Options) error {
	records := [][]string{csvHeader}
	add := func(m fundamental.Model, year, metric, value string) {
		records = append(records, []string{string(m), year, metric, value})
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	ratio := func(r fundamental.Ratio) string {
		if !r.Valid {
			return ""
		}
		return num(r.Value)
	}

	errs := modelErrors(rep)
	seen := make(map[fundamental.Model]bool)
	for _, m := range rep.Models {
		if seen[m] {
			continue
		}
		seen[m] = true
		if err, ok := errs[m]; ok {
			add(m, "", "error", err.Error())
			continue
		}
		switch m {
		case fundamental.ModelFleuriet:
			if rep.Fleuriet == nil {
				continue
			}
			for _, r := range rep.Fleuriet.Rows {
				add(m, r.Year, "cdg", num(r.CDG))
				add(m, r.Year, "ncg", num(r.NCG))
				add(m, r.Year, "t", num(r.T))
				add(m, r.Year, "rule", strconv.Itoa(r.Rule))
				add(m, r.Year, "classification", r.Classification.String())
			}
		case fundamental.ModelDuPont:
			if rep.DuPont == nil {
				continue
			}
			for _, r := range rep.DuPont.Rows {
				add(m, r.Year, "roe", ratio(r.ROE))
				add(m, r.Year, "roa", ratio(r.ROA))
				add(m, r.Year, "net_margin", ratio(r.NetMargin))
				add(m, r.Year, "asset_turnover", ratio(r.AssetTurnover))
				add(m, r.Year, "leverage", ratio(r.Leverage))
			}
		case fundamental.ModelZScore:
			if rep.ZScore == nil {
				continue
			}
			for _, r := range rep.ZScore.Rows {
				add(m, r.Year, "z_score", num(r.Score))
				add(m, r.Year, "x1", num(r.X1))
				add(m, r.Year, "x2", num(r.X2))
				add(m, r.Year, "x3", num(r.X3))
				add(m, r.Year, "x4", num(r.X4))
				add(m, r.Year, "x5", num(r.X5))
				add(m, r.Year, "zone", string(r.Zone))
			}
		case fundamental.ModelKanitz:
			if rep.Kanitz == nil {
				continue
			}
			for _, r := range rep.Kanitz.Rows {
				add(m, r.Year, "thermometer", num(r.Thermometer))
				add(m, r.Year, "liquidity", num(r.Liquidity))
				add(m, r.Year, "indebtedness", num(r.Indebtedness))
				add(m, r.Year, "rspl", num(r.RSPL))
				add(m, r.Year, "band", string(r.Band))
			}
			for _, d := range rep.Kanitz.Diagnostics {
				add(m, d.Year, "skipped", string(d.Item))
			}
		}
	}

	if len(records) == 1 {
		// gota refuses a frame with no rows.
		_, err := io.WriteString(w, strings.Join(csvHeader, ",")+"\n")
		return err
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return fmt.Errorf("building csv report: %w", df.Err)
	}
	return df.WriteCSV(w)
}
