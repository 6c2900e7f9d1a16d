package main

import (
	"fmt"
	"strconv"
	"strings"

	"library-circulation/library"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newBooksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			renderBooks(cmd.OutOrStdout(), a.mgr, a.mgr.GetAllBooks())
		},
	}
}

func newUsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			renderUsers(cmd.OutOrStdout(), a.mgr.GetAllMembers())
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search books by title, author or genre",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			renderSearch(cmd.OutOrStdout(), a.mgr, strings.Join(args, " "))
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show circulation statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			renderStats(cmd.OutOrStdout(), a.mgr.Statistics())
		},
	}
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "report [general|overdue|all]",
		Short:     "Print a plain-text library report",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"general", "overdue", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := library.ReportAll
			if len(args) == 1 {
				k, err := library.ParseReportKind(args[0])
				if err != nil {
					return err
				}
				kind = k
			}
			fmt.Fprint(cmd.OutOrStdout(), a.mgr.Report(kind))
			return nil
		},
	}
}

func newTransactionsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Show the most recent transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = a.cfg.RecentLimit
			}
			txs, err := a.mgr.RecentTransactions(limit)
			if err != nil {
				return err
			}
			renderTransactions(cmd.OutOrStdout(), txs)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "number of transactions to show")
	return cmd
}

func newBorrowCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "borrow <user-id> <book-id>",
		Short: "Lend a book to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, bookID, err := parseUserAndBook(args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = a.mgr.LoanDays()
			}
			res, err := a.mgr.CheckoutFor(userID, bookID, days)
			if err != nil {
				return err
			}
			return printBorrowResult(cmd.OutOrStdout(), a.mgr, userID, bookID, res)
		},
	}
	cmd.Flags().IntVar(&days, "days", library.DefaultLoanDays, "loan period in days")
	return cmd
}

func newReturnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "return <user-id> <book-id>",
		Short: "Take a book back from a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, bookID, err := parseUserAndBook(args)
			if err != nil {
				return err
			}
			res, err := a.mgr.Return(userID, bookID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func parseUserAndBook(args []string) (userID, bookID int64, err error) {
	if userID, err = parseID("user", args[0]); err != nil {
		return 0, 0, err
	}
	if bookID, err = parseID("book", args[1]); err != nil {
		return 0, 0, err
	}
	return userID, bookID, nil
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid %s ID: %s", kind, s)
	}
	return id, nil
}
