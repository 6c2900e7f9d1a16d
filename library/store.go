package library

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// memoryDSN is a private in-memory database; it lives as long as its single
// connection does.
const memoryDSN = "file::memory:?_busy_timeout=5000"

// store keeps the loan records and the transaction log in SQLite. The Library
// keeps books and users in memory and calls the store from inside its lock.
type store struct {
	db *sql.DB
}

func openStore() (*store, error) {
	db, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return &store{db: db}, nil
}

func (s *store) Close() error { return s.db.Close() }

// ---------------------------------------------------------------------------
// Schema
// ---------------------------------------------------------------------------

func applyMigrations(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loans (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            book_id INTEGER NOT NULL,
            user_id INTEGER NOT NULL,
            borrowed_at DATETIME NOT NULL,
            due_date DATETIME NOT NULL,
            returned_at DATETIME
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_loans_open ON loans(book_id) WHERE returned_at IS NULL;`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL,
            book_id INTEGER NOT NULL,
            action TEXT NOT NULL,
            created_at DATETIME NOT NULL,
            due_date DATETIME,
            fine INTEGER NOT NULL DEFAULT 0
        );`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Circulation
// ---------------------------------------------------------------------------

// recordBorrow opens a loan and logs the borrow in one transaction, returning
// the transaction id.
func (s *store) recordBorrow(t Transaction) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var open bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM loans WHERE book_id=? AND returned_at IS NULL)`, t.BookID).Scan(&open); err != nil {
		return 0, err
	}
	if open {
		return 0, fmt.Errorf("book %d: %w", t.BookID, ErrAlreadyLent)
	}

	if _, err := tx.Exec(`INSERT INTO loans(book_id,user_id,borrowed_at,due_date) VALUES(?,?,?,?)`,
		t.BookID, t.UserID, t.Timestamp, t.DueDate); err != nil {
		return 0, err
	}
	id, err := insertTransaction(tx, t)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// recordReturn closes the user's open loan on the book and logs the return in
// one transaction.
func (s *store) recordReturn(t Transaction) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE loans SET returned_at=? WHERE book_id=? AND user_id=? AND returned_at IS NULL`,
		t.Timestamp, t.BookID, t.UserID)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, err
	} else if n != 1 {
		return 0, fmt.Errorf("book %d, user %d: %w", t.BookID, t.UserID, ErrNotBorrowedByUser)
	}

	id, err := insertTransaction(tx, t)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func insertTransaction(tx *sql.Tx, t Transaction) (int64, error) {
	var due sql.NullTime
	if !t.DueDate.IsZero() {
		due = sql.NullTime{Time: t.DueDate, Valid: true}
	}
	res, err := tx.Exec(`INSERT INTO transactions(user_id,book_id,action,created_at,due_date,fine) VALUES(?,?,?,?,?,?)`,
		t.UserID, t.BookID, string(t.Action), t.Timestamp, due, t.Fine)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// recent returns up to limit transactions, newest first.
func (s *store) recent(limit int) ([]Transaction, error) {
	rows, err := s.db.Query(`
        SELECT id, user_id, book_id, action, created_at, due_date, fine
        FROM transactions
        ORDER BY id DESC
        LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []Transaction{}
	for rows.Next() {
		var (
			t      Transaction
			action string
			due    sql.NullTime
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.BookID, &action, &t.Timestamp, &due, &t.Fine); err != nil {
			return nil, err
		}
		t.Action = Action(action)
		if due.Valid {
			t.DueDate = due.Time
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
