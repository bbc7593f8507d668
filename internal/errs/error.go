package errs

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrRecordNotFound  = errors.New("burrowing record not found")
	ErrBookUnavailable = errors.New("book is not available for borrowing")
	ErrAlreadyBorrowed = errors.New("you have already borrowed this book")
	ErrAlreadyReturned = errors.New("book already returned")
	ErrDuplicateEmail  = errors.New("user with the provided email address already exists")
	ErrDuplicateISBN   = errors.New("book with the provided isbn already exists")
	ErrBadCredentials  = errors.New("invalid credentials")
	ErrPasswordCheck   = errors.New("current password is incorrect")
)
