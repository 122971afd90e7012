package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/seenimoa/analisefin/internal/analysis/fundamental"
	"github.com/seenimoa/analisefin/internal/config"
	"github.com/seenimoa/analisefin/internal/logger"
	"github.com/seenimoa/analisefin/internal/report"
	"github.com/seenimoa/analisefin/internal/statement"
)

// setup loads the configuration and builds the run logger.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.cfg, err = config.LoadFromFile(configFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := a.cfg.Logging.Level
	if override, _ := cmd.Flags().GetString("log-level"); override != "" {
		level = override
	}
	a.log = logger.New(logger.Config{
		Level:  level,
		Pretty: a.cfg.Logging.Format != "json",
		Out:    cmd.ErrOrStderr(),
	}).With().Str("run_id", uuid.NewString()).Logger()
	return nil
}

// --- Analyze Command ---

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [ticker]",
		Short: "Run the fundamental models on a company",
		Long: `Fetch the statements of a company and run the Fleuriet, DuPont, Z-Score and
Kanitz models for each selected fiscal year.

Examples:
  analisefin analyze PETR4
  analisefin analyze VALE3 --years 2022,2023 --only zscore,kanitz
  analisefin analyze ITUB4 --format html > itub4.html
  analisefin analyze PETR4 --file petr4.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.reportOptions(cmd)
			if err != nil {
				return err
			}
			only, _ := cmd.Flags().GetStringSlice("only")
			if len(only) == 0 {
				only = a.cfg.Analysis.Models
			}
			models, err := fundamental.ParseModels(only)
			if err != nil {
				return err
			}

			tbl, symbol, err := a.loadTable(cmd, args[0])
			if err != nil {
				return err
			}
			opts.Ticker = symbol

			opts.Missing = make(map[fundamental.Model][]statement.LineItem)
			for _, m := range models {
				if missing := fundamental.Validate(tbl, m); len(missing) > 0 {
					opts.Missing[m] = missing
					a.log.Warn().
						Str("model", string(m)).
						Int("missing", len(missing)).
						Msg("statement lacks rows the model reads")
				}
			}

			start := time.Now()
			rep := fundamental.New(a.log).RunAll(tbl, models...)
			a.log.Info().
				Str("ticker", symbol).
				Strs("years", rep.Years).
				Dur("elapsed", time.Since(start)).
				Msg("analysis finished")

			if err := report.Render(cmd.OutOrStdout(), rep, opts); err != nil {
				return fmt.Errorf("rendering report: %w", err)
			}
			return allFailed(rep)
		},
	}
	cmd.Flags().StringSlice("years", nil, "fiscal years, e.g. 2022,2023 or 2023-12-31 (default: from config)")
	cmd.Flags().Int("latest", 0, "use the N most recent fiscal years instead of --years")
	cmd.Flags().StringSlice("only", nil, "models to run: fleuriet, dupont, zscore, kanitz (default: all)")
	addOutputFlags(cmd)
	return cmd
}

// allFailed turns the per-model errors into a command error only when no
// model produced a result; partial failures are already in the report.
func allFailed(rep *fundamental.Report) error {
	failed := 0
	for _, err := range []error{rep.FleurietErr, rep.DuPontErr, rep.ZScoreErr, rep.KanitzErr} {
		if err != nil {
			failed++
		}
	}
	if failed > 0 && failed == len(uniqueModels(rep.Models)) {
		return fmt.Errorf("every model failed: %w", rep.Err())
	}
	return nil
}

func uniqueModels(models []fundamental.Model) []fundamental.Model {
	seen := make(map[fundamental.Model]bool, len(models))
	var out []fundamental.Model
	for _, m := range models {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// --- Statement Command ---

func newStatementCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement [ticker]",
		Short: "Print the translated statement table the models read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.reportOptions(cmd)
			if err != nil {
				return err
			}
			tbl, symbol, err := a.loadTable(cmd, args[0])
			if err != nil {
				return err
			}
			opts.Ticker = symbol
			return report.RenderStatement(cmd.OutOrStdout(), tbl, opts)
		},
	}
	cmd.Flags().StringSlice("years", nil, "fiscal years, e.g. 2022,2023 or 2023-12-31 (default: from config)")
	cmd.Flags().Int("latest", 0, "use the N most recent fiscal years instead of --years")
	addOutputFlags(cmd)
	return cmd
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "output format: text, markdown, html, csv, json (default: from config)")
	cmd.Flags().String("locale", "", "report language, e.g. pt-BR or en (default: from config)")
	cmd.Flags().String("file", "", "read the statement table from a CSV file instead of Yahoo Finance")
}

func (a *app) reportOptions(cmd *cobra.Command) (report.Options, error) {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = a.cfg.Report.Format
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return report.Options{}, err
	}
	locale, _ := cmd.Flags().GetString("locale")
	if locale == "" {
		locale = a.cfg.Report.Locale
	}
	return report.Options{Format: f, Locale: locale, GeneratedAt: time.Now()}, nil
}

// --- Status Command ---

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			line := strings.Repeat("═", 72)
			fmt.Fprintln(out, line)
			fmt.Fprintln(out, "  analisefin — Status")
			fmt.Fprintln(out, line)
			fmt.Fprintf(out, "  Version: %s (%s)\n\n", version, commit)

			fmt.Fprintln(out, "  Configuration:")
			for _, s := range config.CheckSettings(a.cfg) {
				fmt.Fprintf(out, "    %-24s %-36s %s\n", s.Key, s.Value, sourceLabel(s))
			}
			fmt.Fprintln(out, line)
			return nil
		},
	}
}

func sourceLabel(s config.SettingStatus) string {
	if s.Source == config.SourceEnv {
		return fmt.Sprintf("(%s: %s)", s.Source, s.EnvVar)
	}
	return fmt.Sprintf("(%s)", s.Source)
}
