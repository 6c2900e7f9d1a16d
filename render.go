package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"library-circulation/library"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	defaultTableWidth = 120
	minTitleWidth     = 30
	maxTitleWidth     = 60
	dateLayout        = "2006-01-02"
	dateTimeLayout    = "2006-01-02 15:04:05"
)

// tableWidth is the terminal width when w is a terminal, otherwise a fixed default.
func tableWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTableWidth
}

// titleWidth gives the title column whatever room a wide terminal has spare.
func titleWidth(w io.Writer) int {
	width := minTitleWidth + (tableWidth(w)-defaultTableWidth)/2
	return max(minTitleWidth, min(width, maxTitleWidth))
}

func renderBooks(w io.Writer, mgr *library.LibraryManager, books []library.BookInfo) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books in library.")
		return
	}

	tw := titleWidth(w)
	fmt.Fprintf(w, "%-5s %-*s %-25s %-6s %-18s %-10s %-20s %s\n",
		"ID", tw, "Title", "Author", "Year", "Genre", "Available", "Borrower", "Due")
	fmt.Fprintln(w, strings.Repeat("-", tw+100))

	for _, b := range books {
		due := ""
		if !b.Available {
			due = b.DueDate.Format(dateLayout)
		}
		fmt.Fprintf(w, "%-5d %-*s %-25s %-6d %-18s %-10s %-20s %s\n",
			b.ID,
			tw, truncateString(b.Title, tw),
			truncateString(b.Author, 25),
			b.Year,
			truncateString(b.Genre, 18),
			library.AvailabilityLabel(b.Available),
			truncateString(mgr.BorrowerName(b), 20),
			due)
	}
}

func renderSearch(w io.Writer, mgr *library.LibraryManager, query string) {
	books := mgr.SearchBooks(query)
	if len(books) == 0 {
		fmt.Fprintf(w, "No books found matching '%s'.\n", query)
		return
	}
	fmt.Fprintf(w, "Found %d book(s) matching '%s':\n", len(books), query)
	renderBooks(w, mgr, books)
}

func renderUsers(w io.Writer, users []library.UserInfo) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users registered.")
		return
	}

	fmt.Fprintf(w, "%-5s %-25s %-25s %-18s %-12s %s\n", "ID", "Name", "Email", "Phone", "Registered", "Borrowed")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, u := range users {
		fmt.Fprintf(w, "%-5d %-25s %-25s %-18s %-12s %d\n",
			u.ID,
			truncateString(u.Name, 25),
			truncateString(u.Email, 25),
			u.Phone,
			u.RegistrationDate.Format(dateLayout),
			u.BorrowedCount())
	}
}

func renderStats(w io.Writer, s library.Statistics) {
	rows := []struct {
		label string
		value int
	}{
		{"Total books", s.TotalBooks},
		{"Available books", s.AvailableBooks},
		{"Borrowed books", s.BorrowedBooks},
		{"Total users", s.TotalUsers},
		{"Overdue books", s.OverdueBooks},
		{"Total fines", s.TotalFines},
	}
	fmt.Fprintf(w, "%-20s %s\n", "Metric", "Value")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s %d\n", r.label, r.value)
	}
}

func renderTransactions(w io.Writer, txs []library.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions yet.")
		return
	}

	fmt.Fprintf(w, "%-5s %-8s %-20s %-8s %-8s %s\n", "ID", "Action", "Date", "Book ID", "User ID", "Details")
	fmt.Fprintln(w, strings.Repeat("-", 75))
	for _, tx := range txs {
		details := ""
		switch tx.Action {
		case library.ActionBorrow:
			details = "due " + tx.DueDate.Format(dateLayout)
		case library.ActionReturn:
			details = fmt.Sprintf("fine %d", tx.Fine)
		}
		fmt.Fprintf(w, "%-5d %-8s %-20s %-8d %-8d %s\n",
			tx.ID, tx.Action, tx.Timestamp.Format(dateTimeLayout), tx.BookID, tx.UserID, details)
	}
}

func printBorrowResult(w io.Writer, mgr *library.LibraryManager, userID, bookID int64, res library.BorrowResult) error {
	book, err := mgr.GetBook(bookID)
	if err != nil {
		return errors.Wrap(err, "look up lent book")
	}
	user, err := mgr.GetMember(userID)
	if err != nil {
		return errors.Wrap(err, "look up borrower")
	}
	fmt.Fprintf(w, "Book '%s' lent to %s, due %s\n", book.Title, user.Name, res.DueDate.Format(dateLayout))
	return nil
}

// truncateString shortens s to maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
