package model

import "time"

type Book struct {
	ID              int64     `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Author          string    `json:"author" db:"author"`
	ISBN            string    `json:"isbn" db:"isbn"`
	PublishedYear   int       `json:"published_year" db:"published_year"`
	AvailableCopies int       `json:"available_copies" db:"available_copies"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type Borrowing struct {
	ID           int64     `json:"id" db:"id"`
	BookID       int64     `json:"book_id" db:"book_id"`
	BorrowerName string    `json:"borrower_name" db:"borrower_name"`
	BorrowDate   Date      `json:"borrow_date" db:"borrow_date"`
	ReturnDate   *Date     `json:"return_date" db:"return_date"`
	Returned     bool      `json:"returned" db:"returned"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Open reports whether the borrowing still holds a copy of its book.
func (b Borrowing) Open() bool { return !b.Returned }

type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Message struct {
	Message string `json:"message"`
}
