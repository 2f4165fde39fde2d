package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/model"
	"github.com/Astemirdum/library-ledger/library/internal/repository"
)

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	if err := s.checkISBN(ctx, req.ISBN, 0); err != nil {
		return model.Book{}, err
	}
	return s.repo.CreateBook(ctx, req.Book())
}

func (s *Service) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}

// UpdateBook writes only the fields present in req. An empty request
// returns the stored book untouched.
func (s *Service) UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error) {
	var book model.Book
	err := s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		current, err := tx.LockBook(ctx, id)
		if err != nil {
			return err
		}
		if req.Empty() {
			book = current
			return nil
		}
		if req.ISBN != nil && *req.ISBN != current.ISBN {
			if err := s.checkISBN(ctx, *req.ISBN, id); err != nil {
				return err
			}
		}
		req.Apply(&current)
		book, err = tx.UpdateBook(ctx, current)
		return err
	})
	if err != nil {
		return model.Book{}, err
	}
	return book, nil
}

// RemoveBook deletes the book together with its returned borrowings.
// Books that still have copies out on loan cannot be removed.
func (s *Service) RemoveBook(ctx context.Context, id int64) error {
	return s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		if _, err := tx.LockBook(ctx, id); err != nil {
			return err
		}
		open, err := tx.CountOpenBorrowings(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return errs.ErrBookIsBorrowed
		}
		return tx.DeleteBook(ctx, id)
	})
}

func (s *Service) checkISBN(ctx context.Context, isbn string, selfID int64) error {
	existing, err := s.repo.GetBookByISBN(ctx, isbn)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return errs.ErrISBNExists
	}
	return nil
}
