package library

import (
	"fmt"
	"strings"
)

// ReportKind selects which sections GenerateReport emits.
type ReportKind string

const (
	ReportGeneral ReportKind = "general"
	ReportOverdue ReportKind = "overdue"
	ReportAll     ReportKind = "all"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ParseReportKind maps a user-supplied name onto a ReportKind.
func ParseReportKind(s string) (ReportKind, error) {
	switch k := ReportKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ReportGeneral, ReportOverdue, ReportAll:
		return k, nil
	default:
		return "", fmt.Errorf("unknown report type %q (want general, overdue or all)", s)
	}
}

// GenerateReport renders a plain-text report. Statistics and the overdue list
// are computed against the same instant.
func (l *Library) GenerateReport(kind ReportKind) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.now()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Library report: %s\n", l.name)
	fmt.Fprintf(&sb, "Generated: %s\n", now.Format(dateTimeLayout))
	sb.WriteString(strings.Repeat("=", 40) + "\n\n")

	if kind == ReportGeneral || kind == ReportAll {
		stats := l.statistics(now)
		sb.WriteString("GENERAL STATISTICS:\n")
		fmt.Fprintf(&sb, "Total books: %d\n", stats.TotalBooks)
		fmt.Fprintf(&sb, "Available books: %d\n", stats.AvailableBooks)
		fmt.Fprintf(&sb, "Borrowed books: %d\n", stats.BorrowedBooks)
		fmt.Fprintf(&sb, "Overdue books: %d\n", stats.OverdueBooks)
		fmt.Fprintf(&sb, "Total users: %d\n", stats.TotalUsers)
		fmt.Fprintf(&sb, "Total fines: %d\n\n", stats.TotalFines)
	}

	if kind == ReportOverdue || kind == ReportAll {
		sb.WriteString("OVERDUE BOOKS:\n")
		overdue := l.overdueBooks(now)
		if len(overdue) == 0 {
			sb.WriteString("No overdue books\n\n")
		}
		for _, b := range overdue {
			borrower := "unknown"
			if u, ok := l.users[b.BorrowerID]; ok {
				borrower = u.Name
			}
			fmt.Fprintf(&sb, "- %s (%s)\n", b.Title, b.Author)
			fmt.Fprintf(&sb, "  Borrower: %s\n", borrower)
			fmt.Fprintf(&sb, "  Due date: %s\n", b.DueDate.Format(dateLayout))
			fmt.Fprintf(&sb, "  Fine: %d\n\n", l.books[b.ID].calculateFine(now))
		}
	}

	return sb.String()
}
