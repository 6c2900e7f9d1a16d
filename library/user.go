package library

import (
	"slices"
	"time"
)

func newUser(id int64, name, email, phone string, registered time.Time) *User {
	return &User{
		ID:               id,
		Name:             name,
		Email:            email,
		Phone:            phone,
		RegistrationDate: startOfDay(registered),
	}
}

func (u *User) canBorrowMore() bool {
	return len(u.BorrowedBooks) < MaxBooksPerUser
}

// borrowBook records bookID against the user. Duplicates are not checked:
// the Library never lends one book to two users.
func (u *User) borrowBook(bookID int64) bool {
	if !u.canBorrowMore() {
		return false
	}
	u.BorrowedBooks = append(u.BorrowedBooks, bookID)
	return true
}

func (u *User) hasBorrowed(bookID int64) bool {
	return slices.Contains(u.BorrowedBooks, bookID)
}

// returnBook removes the first occurrence of bookID, keeping the order of the rest.
func (u *User) returnBook(bookID int64) bool {
	i := slices.Index(u.BorrowedBooks, bookID)
	if i < 0 {
		return false
	}
	u.BorrowedBooks = slices.Delete(u.BorrowedBooks, i, i+1)
	return true
}

func (u *User) info() UserInfo {
	return UserInfo{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		RegistrationDate: u.RegistrationDate,
		BorrowedBooks:    slices.Clone(u.BorrowedBooks),
	}
}
