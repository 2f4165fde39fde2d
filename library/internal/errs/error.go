package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrValidation       = errors.New("validation error")
)

// Error carries a caller-facing message and unwraps to one of the kinds above.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

var (
	ErrNoCopies          = New(ErrInvalidOperation, "No available copies for this book")
	ErrAlreadyReturned   = New(ErrInvalidOperation, "Book already returned")
	ErrBookIsBorrowed    = New(ErrConflict, "Book has open borrowings")
	ErrISBNExists        = New(ErrConflict, "Book with this ISBN already exists")
	ErrUsernameExists    = New(ErrConflict, "Username already exists")
	ErrInvalidCredential = New(ErrUnauthenticated, "Invalid credentials")
	ErrPasswordTooLong   = New(ErrValidation, "password must be at most 72 bytes long")
)

func BookNotFound(id int64) error {
	return Newf(ErrNotFound, "Book with ID %d not found", id)
}

func BorrowingNotFound(id int64) error {
	return Newf(ErrNotFound, "Borrowing with ID %d not found", id)
}
