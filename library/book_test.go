package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, time.March, 10, 10, 30, 0, 0, time.UTC)

func assertLoanStateConsistent(t *testing.T, b BookInfo) {
	t.Helper()
	if b.Available {
		assert.Zero(t, b.BorrowerID, "available book %d has a borrower", b.ID)
		assert.True(t, b.DueDate.IsZero(), "available book %d has a due date", b.ID)
		return
	}
	assert.NotZero(t, b.BorrowerID, "lent book %d has no borrower", b.ID)
	assert.False(t, b.DueDate.IsZero(), "lent book %d has no due date", b.ID)
}

func TestBookBorrowSetsDueDateToCalendarDay(t *testing.T) {
	b := newBook(1, "Title", "Author", 2000, "Genre", "isbn")

	require.True(t, b.borrow(7, 14, baseTime))

	assert.False(t, b.Available)
	assert.Equal(t, int64(7), b.BorrowerID)
	assert.Equal(t, time.Date(2024, time.March, 24, 0, 0, 0, 0, time.UTC), b.DueDate)
	assertLoanStateConsistent(t, b.info())
}

func TestBookBorrowTwiceLeavesStateUnchanged(t *testing.T) {
	b := newBook(1, "Title", "Author", 2000, "Genre", "isbn")
	require.True(t, b.borrow(7, 14, baseTime))
	before := b.info()

	assert.False(t, b.borrow(8, 3, baseTime.Add(time.Hour)))
	assert.Equal(t, before, b.info())
}

func TestBookReturnIsIdempotent(t *testing.T) {
	b := newBook(1, "Title", "Author", 2000, "Genre", "isbn")
	require.True(t, b.borrow(7, 14, baseTime))

	b.returnBook()
	first := b.info()
	b.returnBook()

	assert.Equal(t, first, b.info())
	assert.True(t, first.Available)
	assertLoanStateConsistent(t, first)
}

func TestBookIsOverdue(t *testing.T) {
	b := newBook(1, "Title", "Author", 2000, "Genre", "isbn")
	assert.False(t, b.isOverdue(baseTime.AddDate(1, 0, 0)), "available book is never overdue")

	require.True(t, b.borrow(7, 14, baseTime))

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before due date", b.DueDate.Add(-time.Hour), false},
		{"exactly at due date", b.DueDate, false},
		{"just past due date", b.DueDate.Add(time.Nanosecond), true},
		{"weeks later", b.DueDate.AddDate(0, 0, 21), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.isOverdue(tt.now))
		})
	}
}

func TestBookCalculateFine(t *testing.T) {
	b := newBook(1, "Title", "Author", 2000, "Genre", "isbn")
	require.True(t, b.borrow(7, 14, baseTime))

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"due in the future", baseTime, 0},
		{"due today", b.DueDate.Add(5 * time.Hour), 0},
		{"one full day", b.DueDate.Add(day), 10},
		{"three days and a bit", b.DueDate.Add(3*day + 2*time.Hour), 30},
		{"almost four days", b.DueDate.Add(4*day - time.Second), 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.calculateFine(tt.now))
		})
	}
}

func TestBookInfoIsDetached(t *testing.T) {
	b := newBook(1, "Title", "Author", 2000, "Genre", "isbn")
	info := b.info()
	info.Available = false
	info.Title = "changed"

	assert.True(t, b.Available)
	assert.Equal(t, "Title", b.Title)
}
