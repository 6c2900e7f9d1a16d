package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReportKind(t *testing.T) {
	for _, in := range []string{"general", "Overdue", " all "} {
		_, err := ParseReportKind(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseReportKind("weekly")
	assert.Error(t, err)
}

func TestGenerateReportGeneral(t *testing.T) {
	l, _ := newTestLibrary(t)
	_, err := l.BorrowBook(1, 2, DefaultLoanDays)
	require.NoError(t, err)

	report := l.GenerateReport(ReportGeneral)

	assert.Contains(t, report, "Library report: Test Library")
	assert.Contains(t, report, "Generated: 2024-03-10 10:30:00")
	assert.Contains(t, report, "Total books: 8\n")
	assert.Contains(t, report, "Available books: 7\n")
	assert.Contains(t, report, "Borrowed books: 1\n")
	assert.NotContains(t, report, "OVERDUE BOOKS")
}

func TestGenerateReportOverdueNone(t *testing.T) {
	l, _ := newTestLibrary(t)

	report := l.GenerateReport(ReportOverdue)

	assert.Contains(t, report, "OVERDUE BOOKS:\nNo overdue books\n")
	assert.NotContains(t, report, "GENERAL STATISTICS")
}

func TestGenerateReportAllListsOverdueBooks(t *testing.T) {
	l, clock := newTestLibrary(t)
	_, err := l.BorrowBook(2, 5, DefaultLoanDays)
	require.NoError(t, err)
	clock.Advance(DefaultLoanDays*day + 5*day)

	report := l.GenerateReport(ReportAll)

	assert.Contains(t, report, "GENERAL STATISTICS:")
	assert.Contains(t, report, "Overdue books: 1\n")
	assert.Contains(t, report, "Total fines: 50\n")
	assert.Contains(t, report, "- Гарри Поттер и философский камень (Дж. К. Роулинг)\n")
	assert.Contains(t, report, "  Borrower: Мария Сидорова\n")
	assert.Contains(t, report, "  Due date: 2024-03-24\n")
	assert.Contains(t, report, "  Fine: 50\n")
	assert.NotContains(t, report, "No overdue books")
}
