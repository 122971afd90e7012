package fundamental

import (
	"errors"

	"github.com/sourcegraph/conc"

	"github.com/seenimoa/analisefin/internal/statement"
)

// Report collects the results of several models run on the same table. Each
// model's error is kept next to its result so one failure does not hide the
// others.
type Report struct {
	Years  []string
	Models []Model

	Fleuriet    *FleurietResult
	FleurietErr error
	DuPont      *DuPontResult
	DuPontErr   error
	ZScore      *ZScoreResult
	ZScoreErr   error
	Kanitz      *KanitzResult
	KanitzErr   error
}

// Err joins the errors of every model that failed.
func (r *Report) Err() error {
	return errors.Join(r.FleurietErr, r.DuPontErr, r.ZScoreErr, r.KanitzErr)
}

// RunAll runs the selected models (all when none given) concurrently against
// tbl. The table is never written, so the models need no coordination.
func (a *Analyzer) RunAll(tbl *statement.Table, models ...Model) *Report {
	if len(models) == 0 {
		models = AllModels
	}
	rep := &Report{Years: tbl.Years(), Models: models}

	seen := make(map[Model]bool, len(models))
	var wg conc.WaitGroup
	for _, m := range models {
		if seen[m] {
			continue
		}
		seen[m] = true
		switch m {
		case ModelFleuriet:
			wg.Go(func() { rep.Fleuriet, rep.FleurietErr = a.Fleuriet(tbl) })
		case ModelDuPont:
			wg.Go(func() { rep.DuPont, rep.DuPontErr = a.DuPont(tbl) })
		case ModelZScore:
			wg.Go(func() { rep.ZScore, rep.ZScoreErr = a.ZScore(tbl) })
		case ModelKanitz:
			wg.Go(func() { rep.Kanitz, rep.KanitzErr = a.Kanitz(tbl) })
		}
	}
	wg.Wait()
	return rep
}
