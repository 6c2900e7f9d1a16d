package main

import (
	"os"

	"library-circulation/config"
	"library-circulation/library"
	"library-circulation/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs. It is filled in by the root
// command's PersistentPreRunE, after flags are parsed.
type app struct {
	cfg  config.Config
	log  *zap.Logger
	mgr  *library.LibraryManager
	opts []library.Option
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		logLevel string
		loanDays int
	)

	root := &cobra.Command{
		Use:   "library",
		Short: "Library circulation: catalog, lending, returns, fines and reports",
		Long: `Library circulation over an in-memory catalog seeded with 8 books and 3 users.
State lives for one invocation; use "library shell" to chain several operations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var ops []config.Option
			if cmd.Flags().Changed("log-level") {
				ops = append(ops, config.WithLogLevel(logLevel))
			}
			if cmd.Flags().Changed("loan-days") {
				ops = append(ops, config.WithLoanDays(loanDays))
			}
			cfg, err := config.Load(ops...)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.log = logger.NewLogger(cfg.Log.Level, cfg.Log.Format).
				With(zap.String("session", uuid.NewString()))
			mgr, err := library.NewLibraryManager(cfg.Name, cfg.LoanDays, a.log, a.opts...)
			if err != nil {
				return err
			}
			a.mgr = mgr
			a.log.Debug("library ready", zap.String("name", cfg.Name), zap.Int("loan_days", cfg.LoanDays))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if err := a.mgr.Close(); err != nil {
				a.log.Warn("close library", zap.Error(err))
			}
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().IntVar(&loanDays, "loan-days", library.DefaultLoanDays, "default loan period in days")

	root.AddCommand(
		newBooksCmd(a),
		newUsersCmd(a),
		newSearchCmd(a),
		newStatsCmd(a),
		newReportCmd(a),
		newTransactionsCmd(a),
		newBorrowCmd(a),
		newReturnCmd(a),
		newShellCmd(a),
	)
	return root
}
