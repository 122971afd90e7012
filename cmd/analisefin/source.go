package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/analisefin/internal/datasource"
	"github.com/seenimoa/analisefin/internal/statement"
	"github.com/seenimoa/analisefin/pkg/utils"
)

var (
	errNoTicker    = errors.New("ticker is empty")
	errIndexTicker = errors.New("indices publish no financial statements")
)

// loadTable builds the statement table for ticker, from --file when given and
// from Yahoo Finance otherwise. It returns the symbol shown in reports.
func (a *app) loadTable(cmd *cobra.Command, ticker string) (*statement.Table, string, error) {
	if strings.TrimSpace(ticker) == "" {
		return nil, "", errNoTicker
	}
	if utils.IsIndex(ticker) {
		return nil, "", fmt.Errorf("%s: %w", utils.NormalizeTicker(ticker), errIndexTicker)
	}

	opts, err := a.assembleOptions(cmd)
	if err != nil {
		return nil, "", err
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		tbl, err := readTableFile(path)
		if err != nil {
			return nil, "", err
		}
		tbl, err = statement.Select(tbl, opts)
		if err != nil {
			return nil, "", fmt.Errorf("selecting years from %s: %w", path, err)
		}
		a.log.Info().Str("file", path).Strs("years", tbl.Years()).Msg("statement table loaded")
		return tbl, utils.FromYFinanceTicker(utils.NormalizeTicker(ticker)), nil
	}

	symbol := utils.ToYFinanceTicker(ticker, a.cfg.Analysis.TickerSuffix)
	src := datasource.NewYFinance(datasource.Options{
		BaseURL:    a.cfg.Provider.BaseURL,
		Timeout:    a.cfg.Provider.Timeout(),
		RatePerSec: a.cfg.Provider.RatePerSec,
		Burst:      a.cfg.Provider.Burst,
		CacheTTL:   a.cfg.Provider.CacheDuration(),
		UserAgent:  a.cfg.Provider.UserAgent,
	}, a.log)

	raws, err := src.FetchStatements(cmd.Context(), symbol)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s from %s: %w", symbol, src.Name(), err)
	}
	tbl, err := statement.Assemble(opts, raws...)
	if err != nil {
		return nil, "", fmt.Errorf("assembling %s: %w", symbol, err)
	}
	a.log.Info().
		Str("ticker", symbol).
		Strs("years", tbl.Years()).
		Int("items", len(tbl.Items())).
		Msg("statement table assembled")
	return tbl, symbol, nil
}

// assembleOptions resolves the fiscal year selection. --latest beats --years,
// which beats the configured years; with no years at all the most recent
// common years are used.
func (a *app) assembleOptions(cmd *cobra.Command) (statement.AssembleOptions, error) {
	if n, _ := cmd.Flags().GetInt("latest"); n > 0 {
		return statement.AssembleOptions{Latest: n}, nil
	}
	years, _ := cmd.Flags().GetStringSlice("years")
	if len(years) == 0 {
		years = a.cfg.Analysis.Years
	}
	parsed, err := utils.ParseFiscalYears(years)
	if err != nil {
		return statement.AssembleOptions{}, err
	}
	return statement.AssembleOptions{Years: parsed, Latest: a.cfg.Analysis.Latest}, nil
}

func readTableFile(path string) (*statement.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement file: %w", err)
	}
	defer f.Close()
	return statement.ReadCSV(f)
}
