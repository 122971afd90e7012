// analisefin fetches the annual statements of a listed company from Yahoo
// Finance and runs the Fleuriet, DuPont, Altman Z-Score and Kanitz models on
// them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seenimoa/analisefin/internal/config"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "analisefin",
		Short: "Fundamental analysis of B3 companies from Yahoo Finance statements",
		Long: `analisefin downloads the balance sheet, income statement and cash flow of
a company, translates the line items to Portuguese and reports, per fiscal
year, the Fleuriet working-capital model, the DuPont decomposition, the
Altman Z-Score and the Kanitz insolvency thermometer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newStatementCmd(a))
	root.AddCommand(newStatusCmd(a))
	return root
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "analisefin %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}
