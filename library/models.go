package library

import "time"

const (
	// MaxBooksPerUser caps how many books one user may hold at a time.
	MaxBooksPerUser = 5
	// FinePerDay is charged for every full day a loan is overdue.
	FinePerDay = 10
	// DefaultLoanDays is the loan period used when the caller has no preference.
	DefaultLoanDays = 14
)

// Book is one catalog copy. It owns its loan state: a zero BorrowerID and a
// zero DueDate mean the book is on the shelf.
type Book struct {
	ID         int64
	Title      string
	Author     string
	Year       int
	Genre      string
	ISBN       string
	Available  bool
	BorrowerID int64
	DueDate    time.Time
}

// User represents a registered patron.
type User struct {
	ID               int64
	Name             string
	Email            string
	Phone            string
	RegistrationDate time.Time
	BorrowedBooks    []int64
}

// Action is the kind of event recorded in the transaction log.
type Action string

const (
	ActionBorrow Action = "borrow"
	ActionReturn Action = "return"
)

// Transaction is an immutable entry of the circulation log. DueDate is set
// for borrows only, Fine for returns only.
type Transaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookID    int64     `json:"book_id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"date"`
	DueDate   time.Time `json:"due_date"`
	Fine      int       `json:"fine"`
}

// BookInfo is a detached snapshot of a Book handed to callers.
type BookInfo struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Year       int       `json:"year"`
	Genre      string    `json:"genre"`
	ISBN       string    `json:"isbn"`
	Available  bool      `json:"available"`
	BorrowerID int64     `json:"borrower_id"`
	DueDate    time.Time `json:"due_date"`
}

// UserInfo is a detached snapshot of a User.
type UserInfo struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	RegistrationDate time.Time `json:"registration_date"`
	BorrowedBooks    []int64   `json:"borrowed_books"`
}

// BorrowedCount is the number of books the user holds at snapshot time.
func (u UserInfo) BorrowedCount() int { return len(u.BorrowedBooks) }

// Statistics is a point-in-time tally over the catalog.
type Statistics struct {
	TotalBooks     int `json:"total_books"`
	AvailableBooks int `json:"available_books"`
	BorrowedBooks  int `json:"borrowed_books"`
	OverdueBooks   int `json:"overdue_books"`
	TotalFines     int `json:"total_fines"`
	TotalUsers     int `json:"total_users"`
}

// BorrowResult is what BorrowBook reports back to the caller.
type BorrowResult struct {
	Success bool
	Message string
	DueDate time.Time
}

// ReturnResult is what ReturnBook reports back to the caller.
type ReturnResult struct {
	Success bool
	Message string
	Fine    int
}
