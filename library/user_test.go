package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBorrowLimit(t *testing.T) {
	u := newUser(1, "Alice", "alice@example.com", "555", baseTime)

	for i := int64(1); i <= MaxBooksPerUser; i++ {
		require.True(t, u.canBorrowMore())
		require.True(t, u.borrowBook(i))
	}

	assert.False(t, u.canBorrowMore())
	assert.False(t, u.borrowBook(99))
	assert.Len(t, u.BorrowedBooks, MaxBooksPerUser)
}

func TestUserReturnPreservesOrder(t *testing.T) {
	u := newUser(1, "Alice", "alice@example.com", "555", baseTime)
	for _, id := range []int64{4, 2, 7} {
		require.True(t, u.borrowBook(id))
	}

	assert.True(t, u.hasBorrowed(2))
	assert.True(t, u.returnBook(2))
	assert.False(t, u.hasBorrowed(2))
	assert.Equal(t, []int64{4, 7}, u.BorrowedBooks)

	assert.False(t, u.returnBook(2), "second return of the same id")
	assert.Equal(t, []int64{4, 7}, u.BorrowedBooks)
}

func TestUserInfoCopiesBorrowedBooks(t *testing.T) {
	u := newUser(1, "Alice", "alice@example.com", "555", baseTime)
	require.True(t, u.borrowBook(3))

	info := u.info()
	info.BorrowedBooks[0] = 42

	assert.Equal(t, []int64{3}, u.BorrowedBooks)
	assert.Equal(t, 1, info.BorrowedCount())
	assert.Equal(t, startOfDay(baseTime), info.RegistrationDate)
}
