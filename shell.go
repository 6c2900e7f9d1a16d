package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-circulation/library"

	"github.com/spf13/cobra"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive circulation shell; changes last until exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			runShell(cmd.InOrStdin(), cmd.OutOrStdout(), a)
		},
	}
}

// shell keeps the scanner and output together so handlers stay short.
type shell struct {
	sc          *bufio.Scanner
	out         io.Writer
	mgr         *library.LibraryManager
	recentLimit int
}

func runShell(in io.Reader, out io.Writer, a *app) {
	s := &shell{sc: bufio.NewScanner(in), out: out, mgr: a.mgr, recentLimit: a.cfg.RecentLimit}

	fmt.Fprintf(out, "Welcome to %s!\n", a.mgr.Library().Name())
	fmt.Fprintln(out, "Available commands:")
	fmt.Fprintln(out, "  Catalog: add book, list books, search book")
	fmt.Fprintln(out, "  Users: add user, list users, user books")
	fmt.Fprintln(out, "  Circulation: borrow, return")
	fmt.Fprintln(out, "  Reports: stats, report, transactions")
	fmt.Fprintln(out, "  System: exit")

	for {
		fmt.Fprint(out, "\n> ")
		if !s.sc.Scan() {
			break
		}
		cmd := strings.TrimSpace(s.sc.Text())

		switch cmd {
		case "add book":
			s.handleAddBook()
		case "add user":
			s.handleAddUser()
		case "list books":
			renderBooks(out, s.mgr, s.mgr.GetAllBooks())
		case "list users":
			renderUsers(out, s.mgr.GetAllMembers())
		case "user books":
			s.handleUserBooks()
		case "search book":
			s.handleSearch()
		case "borrow":
			s.handleBorrow()
		case "return":
			s.handleReturn()
		case "stats":
			renderStats(out, s.mgr.Statistics())
		case "report":
			s.handleReport()
		case "transactions":
			s.handleTransactions()
		case "":
			continue
		case "exit":
			fmt.Fprintln(out, "Goodbye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command. Type one of the available commands listed above.")
		}
	}
}

// ask prints prompt and returns the trimmed answer; ok is false on EOF.
func (s *shell) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

func (s *shell) askID(kind string) (int64, bool) {
	raw, ok := s.ask(strings.ToUpper(kind[:1]) + kind[1:] + " ID: ")
	if !ok {
		return 0, false
	}
	id, err := parseID(kind, raw)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return 0, false
	}
	return id, true
}

func (s *shell) handleAddBook() {
	title, ok := s.ask("Title: ")
	if !ok {
		return
	}
	author, ok := s.ask("Author: ")
	if !ok {
		return
	}
	yearStr, ok := s.ask("Year: ")
	if !ok {
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid year: %s\n", yearStr)
		return
	}
	genre, ok := s.ask("Genre: ")
	if !ok {
		return
	}
	isbn, ok := s.ask("ISBN: ")
	if !ok {
		return
	}

	id := s.mgr.AddBook(title, author, year, genre, isbn)
	fmt.Fprintf(s.out, "Added book ID %d\n", id)
}

func (s *shell) handleAddUser() {
	name, ok := s.ask("Name: ")
	if !ok {
		return
	}
	email, ok := s.ask("Email: ")
	if !ok {
		return
	}
	phone, ok := s.ask("Phone: ")
	if !ok {
		return
	}

	id := s.mgr.AddMember(name, email, phone)
	fmt.Fprintf(s.out, "Added user '%s' with ID %d\n", name, id)
}

func (s *shell) handleUserBooks() {
	userID, ok := s.askID("user")
	if !ok {
		return
	}
	books, err := s.mgr.Library().BorrowedBooks(userID)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Fprintln(s.out, "This user has no books.")
		return
	}
	renderBooks(s.out, s.mgr, books)
}

func (s *shell) handleSearch() {
	query, ok := s.ask("Query: ")
	if !ok {
		return
	}
	renderSearch(s.out, s.mgr, query)
}

func (s *shell) handleBorrow() {
	userID, ok := s.askID("user")
	if !ok {
		return
	}
	bookID, ok := s.askID("book")
	if !ok {
		return
	}

	res, err := s.mgr.Checkout(userID, bookID)
	if err != nil {
		fmt.Fprintf(s.out, "Error borrowing book: %s\n", res.Message)
		return
	}
	if err := printBorrowResult(s.out, s.mgr, userID, bookID, res); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *shell) handleReturn() {
	userID, ok := s.askID("user")
	if !ok {
		return
	}
	bookID, ok := s.askID("book")
	if !ok {
		return
	}

	res, err := s.mgr.Return(userID, bookID)
	if err != nil {
		fmt.Fprintf(s.out, "Error returning book: %s\n", res.Message)
		return
	}
	fmt.Fprintln(s.out, res.Message)
}

func (s *shell) handleTransactions() {
	txs, err := s.mgr.RecentTransactions(s.recentLimit)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	renderTransactions(s.out, txs)
}

func (s *shell) handleReport() {
	raw, ok := s.ask("Report type (general, overdue, all): ")
	if !ok {
		return
	}
	if raw == "" {
		raw = string(library.ReportAll)
	}
	kind, err := library.ParseReportKind(raw)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, s.mgr.Report(kind))
}
