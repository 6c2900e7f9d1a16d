package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"library-circulation/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cliNow = time.Date(2024, time.March, 10, 10, 30, 0, 0, time.UTC)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LIBRARY_LOG_LEVEL", "error")

	a := &app{opts: []library.Option{library.WithClock(func() time.Time { return cliNow })}}
	root := newRootCmd(a)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestBooksCommandListsSeedCatalog(t *testing.T) {
	out, err := runCLI(t, "", "books")
	require.NoError(t, err)

	assert.Contains(t, out, "Война и мир")
	assert.Contains(t, out, "Атлант расправил плечи")
	assert.Equal(t, 8+2, strings.Count(out, "\n"), "header, rule and 8 rows")
}

func TestUsersCommand(t *testing.T) {
	out, err := runCLI(t, "", "users")
	require.NoError(t, err)

	assert.Contains(t, out, "Иван Петров")
	assert.Contains(t, out, "maria@mail.ru")
	assert.Contains(t, out, "2024-03-10")
}

func TestSearchCommand(t *testing.T) {
	out, err := runCLI(t, "", "search", "роман")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 5 book(s) matching 'роман'")

	out, err = runCLI(t, "", "search", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No books found matching 'nothing'.")
}

func TestBorrowCommand(t *testing.T) {
	out, err := runCLI(t, "", "borrow", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Book 'Преступление и наказание' lent to Иван Петров, due 2024-03-24")

	out, err = runCLI(t, "", "borrow", "1", "2", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "due 2024-03-13")

	_, err = runCLI(t, "", "--loan-days", "7", "borrow", "1", "2")
	require.NoError(t, err)

	_, err = runCLI(t, "", "borrow", "9", "2")
	assert.ErrorIs(t, err, library.ErrNotFound)

	_, err = runCLI(t, "", "borrow", "one", "2")
	assert.ErrorContains(t, err, "invalid user ID: one")
}

func TestReturnCommandRefusesUnlentBook(t *testing.T) {
	_, err := runCLI(t, "", "return", "1", "2")
	assert.ErrorIs(t, err, library.ErrNotBorrowedByUser)
}

func TestReportCommand(t *testing.T) {
	out, err := runCLI(t, "", "report", "overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "No overdue books")
	assert.NotContains(t, out, "GENERAL STATISTICS")

	out, err = runCLI(t, "", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "GENERAL STATISTICS")
	assert.Contains(t, out, "OVERDUE BOOKS")

	_, err = runCLI(t, "", "report", "weekly")
	assert.Error(t, err)
}

func TestStatsCommand(t *testing.T) {
	out, err := runCLI(t, "", "stats")
	require.NoError(t, err)
	assert.Regexp(t, `Total books\s+8\n`, out)
	assert.Regexp(t, `Available books\s+8\n`, out)
	assert.Regexp(t, `Total users\s+3\n`, out)
}

func TestTransactionsCommandStartsEmpty(t *testing.T) {
	out, err := runCLI(t, "", "transactions")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions yet.")
}

func TestShellSession(t *testing.T) {
	input := strings.Join([]string{
		"borrow", "1", "2",
		"borrow", "2", "2",
		"return", "1", "2",
		"add user", "Сергей Смирнов", "sergey@mail.ru", "+7(999)888-77-66",
		"borrow", "4", "1",
		"stats",
		"transactions",
		"bogus",
		"exit",
	}, "\n") + "\n"

	out, err := runCLI(t, input, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Welcome to Central City Library!")
	assert.Contains(t, out, "lent to Иван Петров")
	assert.Contains(t, out, "Error borrowing book: book is already lent")
	assert.Contains(t, out, "book returned successfully")
	assert.Contains(t, out, "Added user 'Сергей Смирнов' with ID 4")
	assert.Contains(t, out, "Book 'Война и мир' lent to Сергей Смирнов")
	assert.Regexp(t, `Borrowed books\s+1\n`, out)
	assert.Regexp(t, `3\s+borrow\s+2024-03-10 10:30:00`, out)
	assert.Contains(t, out, "Unknown command.")
	assert.Contains(t, out, "Goodbye!")
}

func TestPrintBorrowResultReportsUnknownIDs(t *testing.T) {
	mgr, err := library.NewLibraryManager("Render Library", library.DefaultLoanDays, nil)
	require.NoError(t, err)
	defer mgr.Close()

	var out bytes.Buffer
	res := library.BorrowResult{Success: true, DueDate: cliNow}

	err = printBorrowResult(&out, mgr, 1, 99, res)
	assert.ErrorIs(t, err, library.ErrNotFound)
	err = printBorrowResult(&out, mgr, 99, 1, res)
	assert.ErrorIs(t, err, library.ErrNotFound)
	assert.Empty(t, out.String())

	require.NoError(t, printBorrowResult(&out, mgr, 1, 1, res))
	assert.Equal(t, "Book 'Война и мир' lent to Иван Петров, due 2024-03-10\n", out.String())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "Гарри П...", truncateString("Гарри Поттер", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
}

func TestTitleWidthDefaultsForNonTerminal(t *testing.T) {
	assert.Equal(t, minTitleWidth, titleWidth(&bytes.Buffer{}))
}
