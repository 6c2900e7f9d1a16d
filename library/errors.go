package library

import (
	"errors"
	"fmt"
)

const (
	failureReasonNotFound          = "user or book not found"
	failureReasonLimitExceeded     = "user has reached the borrowing limit"
	failureReasonAlreadyLent       = "book is already lent"
	failureReasonNotBorrowedByUser = "book is not lent to this user"
	failureReasonInconsistentState = "loan could not be recorded consistently"
)

var (
	ErrNotFound          = errors.New(failureReasonNotFound)
	ErrLimitExceeded     = errors.New(failureReasonLimitExceeded)
	ErrAlreadyLent       = errors.New(failureReasonAlreadyLent)
	ErrNotBorrowedByUser = errors.New(failureReasonNotBorrowedByUser)
	ErrInconsistentState = errors.New(failureReasonInconsistentState)
)

func notFound(userID, bookID int64) error {
	return fmt.Errorf("%w (user %d, book %d)", ErrNotFound, userID, bookID)
}

func borrowFailure(err error) (BorrowResult, error) {
	return BorrowResult{Success: false, Message: err.Error()}, err
}

func returnFailure(err error) (ReturnResult, error) {
	return ReturnResult{Success: false, Message: err.Error()}, err
}
