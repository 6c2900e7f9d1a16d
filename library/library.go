package library

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Library owns every Book and User, and the store holding loans and the
// transaction log. All mutations go through its methods; queries hand out
// detached snapshots.
type Library struct {
	mu sync.RWMutex

	name  string
	now   func() time.Time
	log   *zap.Logger
	books map[int64]*Book
	users map[int64]*User
	// catalog order
	bookOrder []int64
	userOrder []int64

	store *store

	nextBookID int64
	nextUserID int64
}

// Option configures a Library.
type Option func(*Library)

// WithClock replaces time.Now as the source of "now" for due dates and fines.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// WithLogger sets the logger used for circulation events.
func WithLogger(log *zap.Logger) Option {
	return func(l *Library) { l.log = log }
}

// New creates an empty library backed by a fresh in-memory store. Use
// NewSeeded for the demo catalog.
func New(name string, opts ...Option) (*Library, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	l := &Library{
		name:       name,
		now:        time.Now,
		log:        zap.NewNop(),
		books:      make(map[int64]*Book),
		users:      make(map[int64]*User),
		store:      s,
		nextBookID: 1,
		nextUserID: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *Library) Name() string { return l.name }

// Close releases the store. Everything recorded in it is gone afterwards.
func (l *Library) Close() error { return l.store.Close() }

// ------------------ Catalog ------------------

// AddBook catalogs a new book and returns its id.
func (l *Library) AddBook(title, author string, year int, genre, isbn string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextBookID
	l.nextBookID++
	l.books[id] = newBook(id, title, author, year, genre, isbn)
	l.bookOrder = append(l.bookOrder, id)

	l.log.Debug("book added", zap.Int64("book_id", id), zap.String("title", title))
	return id
}

// RegisterUser registers a new patron and returns its id.
func (l *Library) RegisterUser(name, email, phone string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextUserID
	l.nextUserID++
	l.users[id] = newUser(id, name, email, phone, l.now())
	l.userOrder = append(l.userOrder, id)

	l.log.Debug("user registered", zap.Int64("user_id", id), zap.String("name", name))
	return id
}

// ------------------ Circulation ------------------

// BorrowBook lends bookID to userID for the given number of days. Either the
// book, the user and the store are all updated, or none of them is.
func (l *Library) BorrowBook(userID, bookID int64, days int) (BorrowResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, okUser := l.users[userID]
	book, okBook := l.books[bookID]
	if !okUser || !okBook {
		return l.refuseBorrow(userID, bookID, notFound(userID, bookID))
	}
	if !user.canBorrowMore() {
		return l.refuseBorrow(userID, bookID, ErrLimitExceeded)
	}
	if !book.Available {
		return l.refuseBorrow(userID, bookID, ErrAlreadyLent)
	}

	dueDate, err := l.commitBorrow(user, book, days)
	if err != nil {
		l.log.Error("borrow rolled back", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.Error(err))
		return borrowFailure(err)
	}

	l.log.Debug("book borrowed",
		zap.Int64("user_id", userID),
		zap.Int64("book_id", bookID),
		zap.Time("due_date", dueDate))
	return BorrowResult{Success: true, Message: "book borrowed successfully", DueDate: dueDate}, nil
}

func (l *Library) refuseBorrow(userID, bookID int64, err error) (BorrowResult, error) {
	l.log.Info("borrow refused", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.String("reason", err.Error()))
	return borrowFailure(err)
}

// commitBorrow mutates the book, then the user, then records the loan. When a
// later step refuses, the earlier ones are undone so nothing diverges and no
// transaction is recorded.
func (l *Library) commitBorrow(user *User, book *Book, days int) (time.Time, error) {
	now := l.now()
	if !book.borrow(user.ID, days, now) {
		return time.Time{}, ErrAlreadyLent
	}
	if !user.borrowBook(book.ID) {
		book.returnBook()
		return time.Time{}, ErrInconsistentState
	}

	_, err := l.store.recordBorrow(Transaction{
		UserID:    user.ID,
		BookID:    book.ID,
		Action:    ActionBorrow,
		Timestamp: now,
		DueDate:   book.DueDate,
	})
	if err != nil {
		user.returnBook(book.ID)
		book.returnBook()
		return time.Time{}, fmt.Errorf("%w: %w", ErrInconsistentState, err)
	}
	return book.DueDate, nil
}

// ReturnBook takes bookID back from userID, charging any overdue fine.
func (l *Library) ReturnBook(userID, bookID int64) (ReturnResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	user, okUser := l.users[userID]
	book, okBook := l.books[bookID]
	if !okUser || !okBook {
		return l.refuseReturn(userID, bookID, notFound(userID, bookID))
	}
	if book.Available || book.BorrowerID != userID {
		return l.refuseReturn(userID, bookID, ErrNotBorrowedByUser)
	}

	if !user.hasBorrowed(bookID) {
		err := fmt.Errorf("%w: user %d does not list book %d", ErrInconsistentState, userID, bookID)
		l.log.Error("return refused", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.Error(err))
		return returnFailure(err)
	}

	now := l.now()
	fine := book.calculateFine(now)
	if _, err := l.store.recordReturn(Transaction{
		UserID:    userID,
		BookID:    bookID,
		Action:    ActionReturn,
		Timestamp: now,
		Fine:      fine,
	}); err != nil {
		err = fmt.Errorf("%w: %w", ErrInconsistentState, err)
		l.log.Error("return refused", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.Error(err))
		return returnFailure(err)
	}
	book.returnBook()
	user.returnBook(bookID)

	msg := "book returned successfully"
	if fine > 0 {
		msg += fmt.Sprintf(". Overdue fine: %d", fine)
	}

	l.log.Debug("book returned", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.Int("fine", fine))
	return ReturnResult{Success: true, Message: msg, Fine: fine}, nil
}

func (l *Library) refuseReturn(userID, bookID int64, err error) (ReturnResult, error) {
	l.log.Info("return refused", zap.Int64("user_id", userID), zap.Int64("book_id", bookID), zap.String("reason", err.Error()))
	return returnFailure(err)
}

// ------------------ Queries ------------------

// GetBook returns a snapshot of one book.
func (l *Library) GetBook(id int64) (BookInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.books[id]
	if !ok {
		return BookInfo{}, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	return b.info(), nil
}

// GetUser returns a snapshot of one user.
func (l *Library) GetUser(id int64) (UserInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	u, ok := l.users[id]
	if !ok {
		return UserInfo{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u.info(), nil
}

// GetAllBooks lists every book in catalog order.
func (l *Library) GetAllBooks() []BookInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	books := make([]BookInfo, 0, len(l.bookOrder))
	for _, id := range l.bookOrder {
		books = append(books, l.books[id].info())
	}
	return books
}

// GetAllUsers lists every user in registration order.
func (l *Library) GetAllUsers() []UserInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	users := make([]UserInfo, 0, len(l.userOrder))
	for _, id := range l.userOrder {
		users = append(users, l.users[id].info())
	}
	return users
}

// BorrowedBooks returns the books a user currently holds, in borrow order.
func (l *Library) BorrowedBooks(userID int64) ([]BookInfo, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	u, ok := l.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	books := make([]BookInfo, 0, len(u.BorrowedBooks))
	for _, id := range u.BorrowedBooks {
		if b, ok := l.books[id]; ok {
			books = append(books, b.info())
		}
	}
	return books, nil
}

// SearchBooks matches keyword case-insensitively against title, author and genre.
func (l *Library) SearchBooks(keyword string) []BookInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	kw := strings.ToLower(keyword)
	results := make([]BookInfo, 0)
	for _, id := range l.bookOrder {
		b := l.books[id]
		if strings.Contains(strings.ToLower(b.Title), kw) ||
			strings.Contains(strings.ToLower(b.Author), kw) ||
			strings.Contains(strings.ToLower(b.Genre), kw) {
			results = append(results, b.info())
		}
	}
	return results
}

// OverdueBooks lists the books currently overdue, in catalog order.
func (l *Library) OverdueBooks() []BookInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.overdueBooks(l.now())
}

func (l *Library) overdueBooks(now time.Time) []BookInfo {
	var overdue []BookInfo
	for _, id := range l.bookOrder {
		if b := l.books[id]; b.isOverdue(now) {
			overdue = append(overdue, b.info())
		}
	}
	return overdue
}

// GetStatistics tallies the catalog in a single pass. Nothing is cached.
func (l *Library) GetStatistics() Statistics {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.statistics(l.now())
}

func (l *Library) statistics(now time.Time) Statistics {
	stats := Statistics{
		TotalBooks: len(l.books),
		TotalUsers: len(l.users),
	}
	for _, b := range l.books {
		if b.Available {
			stats.AvailableBooks++
			continue
		}
		stats.BorrowedBooks++
		if b.isOverdue(now) {
			stats.OverdueBooks++
			stats.TotalFines += b.calculateFine(now)
		}
	}
	return stats
}

// GetRecentTransactions returns up to limit transactions, newest first.
func (l *Library) GetRecentTransactions(limit int) ([]Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 {
		return []Transaction{}, nil
	}
	txs, err := l.store.recent(limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return txs, nil
}
