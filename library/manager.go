package library

import (
	"fmt"

	"go.uber.org/zap"
)

// LibraryManager is a thin façade over the Library, keeping CLI code simple.
// It applies the configured loan period and resolves names for listings.
type LibraryManager struct {
	lib      *Library
	loanDays int
	log      *zap.Logger
}

// NewLibraryManager builds a manager around a library seeded with DefaultSeed.
func NewLibraryManager(name string, loanDays int, log *zap.Logger, opts ...Option) (*LibraryManager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if loanDays <= 0 {
		loanDays = DefaultLoanDays
	}
	opts = append([]Option{WithLogger(log.Named("library"))}, opts...)
	lib, err := NewSeeded(name, DefaultSeed(), opts...)
	if err != nil {
		return nil, fmt.Errorf("seed library: %w", err)
	}
	return &LibraryManager{lib: lib, loanDays: loanDays, log: log}, nil
}

// Close releases the library's store.
func (lm *LibraryManager) Close() error { return lm.lib.Close() }

// Library exposes the underlying coordinator.
func (lm *LibraryManager) Library() *Library { return lm.lib }

// LoanDays is the loan period Checkout applies.
func (lm *LibraryManager) LoanDays() int { return lm.loanDays }

// ------------------ Book helpers ------------------

func (lm *LibraryManager) AddBook(title, author string, year int, genre, isbn string) int64 {
	return lm.lib.AddBook(title, author, year, genre, isbn)
}

func (lm *LibraryManager) GetBook(id int64) (BookInfo, error) { return lm.lib.GetBook(id) }
func (lm *LibraryManager) GetAllBooks() []BookInfo           { return lm.lib.GetAllBooks() }

// ------------------ Member helpers ------------------

func (lm *LibraryManager) AddMember(name, email, phone string) int64 {
	return lm.lib.RegisterUser(name, email, phone)
}

func (lm *LibraryManager) GetMember(id int64) (UserInfo, error) { return lm.lib.GetUser(id) }
func (lm *LibraryManager) GetAllMembers() []UserInfo           { return lm.lib.GetAllUsers() }

// BorrowerName resolves who holds b, or "" when it is on the shelf.
func (lm *LibraryManager) BorrowerName(b BookInfo) string {
	if b.Available {
		return ""
	}
	if u, err := lm.lib.GetUser(b.BorrowerID); err == nil {
		return u.Name
	}
	return fmt.Sprintf("ID: %d", b.BorrowerID)
}

// ------------------ Search ------------------

func (lm *LibraryManager) SearchBooks(q string) []BookInfo { return lm.lib.SearchBooks(q) }

// ------------------ Circulation ------------------

// Checkout lends a book for the configured loan period.
func (lm *LibraryManager) Checkout(userID, bookID int64) (BorrowResult, error) {
	return lm.CheckoutFor(userID, bookID, lm.loanDays)
}

// CheckoutFor lends a book for an explicit number of days.
func (lm *LibraryManager) CheckoutFor(userID, bookID int64, days int) (BorrowResult, error) {
	res, err := lm.lib.BorrowBook(userID, bookID, days)
	if err != nil {
		return res, err
	}
	lm.log.Info("checkout", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.Int("days", days))
	return res, nil
}

// Return takes a book back and reports the fine charged.
func (lm *LibraryManager) Return(userID, bookID int64) (ReturnResult, error) {
	res, err := lm.lib.ReturnBook(userID, bookID)
	if err != nil {
		return res, err
	}
	lm.log.Info("return", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.Int("fine", res.Fine))
	return res, nil
}

// ------------------ Reporting ------------------

func (lm *LibraryManager) Statistics() Statistics { return lm.lib.GetStatistics() }

func (lm *LibraryManager) Report(kind ReportKind) string { return lm.lib.GenerateReport(kind) }

func (lm *LibraryManager) RecentTransactions(limit int) ([]Transaction, error) {
	return lm.lib.GetRecentTransactions(limit)
}

// ------------------ Utilities ------------------

// AvailabilityLabel renders the loan flag the way listings show it.
func AvailabilityLabel(available bool) string {
	if available {
		return "Yes"
	}
	return "No"
}

// PrettyBook formats a book as one line of a compact listing.
func PrettyBook(b BookInfo, borrowerName string) string {
	return fmt.Sprintf("%-4d %-35s %-25s %-6d %-4s %s", b.ID, b.Title, b.Author, b.Year, AvailabilityLabel(b.Available), borrowerName)
}
