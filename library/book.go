package library

import "time"

const day = 24 * time.Hour

func newBook(id int64, title, author string, year int, genre, isbn string) *Book {
	return &Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Year:      year,
		Genre:     genre,
		ISBN:      isbn,
		Available: true,
	}
}

// startOfDay truncates t to midnight in t's own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// borrow lends the book to userID for the given number of calendar days.
// The due date is a calendar date: midnight of today + days.
func (b *Book) borrow(userID int64, days int, now time.Time) bool {
	if !b.Available {
		return false
	}
	b.Available = false
	b.BorrowerID = userID
	b.DueDate = startOfDay(now).AddDate(0, 0, days)
	return true
}

// returnBook puts the book back on the shelf. Safe to call on an available book.
func (b *Book) returnBook() {
	b.Available = true
	b.BorrowerID = 0
	b.DueDate = time.Time{}
}

func (b *Book) isOverdue(now time.Time) bool {
	if b.Available || b.DueDate.IsZero() {
		return false
	}
	return b.DueDate.Before(now)
}

// calculateFine charges FinePerDay for each full day past the due date.
// The first partial day is free.
func (b *Book) calculateFine(now time.Time) int {
	if !b.isOverdue(now) {
		return 0
	}
	daysOverdue := int(now.Sub(b.DueDate) / day)
	return daysOverdue * FinePerDay
}

func (b *Book) info() BookInfo {
	return BookInfo{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Year:       b.Year,
		Genre:      b.Genre,
		ISBN:       b.ISBN,
		Available:  b.Available,
		BorrowerID: b.BorrowerID,
		DueDate:    b.DueDate,
	}
}
