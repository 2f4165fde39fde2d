package model

type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,notblank"`
	Author          string `json:"author" validate:"required,notblank"`
	ISBN            string `json:"isbn" validate:"required,notblank"`
	PublishedYear   int    `json:"published_year" validate:"required,min=1000"`
	AvailableCopies *int   `json:"available_copies" validate:"required,min=0"`
}

func (r CreateBookRequest) Book() Book {
	return Book{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		PublishedYear:   r.PublishedYear,
		AvailableCopies: *r.AvailableCopies,
	}
}

// UpdateBookRequest holds only the fields the caller sent.
type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,notblank"`
	Author          *string `json:"author,omitempty" validate:"omitempty,notblank"`
	ISBN            *string `json:"isbn,omitempty" validate:"omitempty,notblank"`
	PublishedYear   *int    `json:"published_year,omitempty" validate:"omitempty,min=1000"`
	AvailableCopies *int    `json:"available_copies,omitempty" validate:"omitempty,min=0"`
}

func (r UpdateBookRequest) Empty() bool {
	return r.Title == nil && r.Author == nil && r.ISBN == nil &&
		r.PublishedYear == nil && r.AvailableCopies == nil
}

// Apply copies the provided fields onto b.
func (r UpdateBookRequest) Apply(b *Book) {
	if r.Title != nil {
		b.Title = *r.Title
	}
	if r.Author != nil {
		b.Author = *r.Author
	}
	if r.ISBN != nil {
		b.ISBN = *r.ISBN
	}
	if r.PublishedYear != nil {
		b.PublishedYear = *r.PublishedYear
	}
	if r.AvailableCopies != nil {
		b.AvailableCopies = *r.AvailableCopies
	}
}

type CreateBorrowingRequest struct {
	BookID       int64  `json:"book_id" validate:"required,min=1"`
	BorrowerName string `json:"borrower_name" validate:"required,notblank"`
	BorrowDate   *Date  `json:"borrow_date" validate:"required"`
	ReturnDate   *Date  `json:"return_date" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

type Token struct {
	AccessToken string `json:"access_token"`
}
