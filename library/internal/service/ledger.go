package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/model"
	"github.com/Astemirdum/library-ledger/library/internal/repository"
	"github.com/Astemirdum/library-ledger/pkg/kafka"
)

// CreateBorrowing takes one copy of the book out on loan.
func (s *Service) CreateBorrowing(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error) {
	var (
		borrowing model.Borrowing
		copies    int
	)
	err := s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		book, err := tx.LockBook(ctx, req.BookID)
		if err != nil {
			return err
		}
		if book.AvailableCopies <= 0 {
			return errs.ErrNoCopies
		}
		b := model.Borrowing{
			BookID:       book.ID,
			BorrowerName: req.BorrowerName,
			ReturnDate:   req.ReturnDate,
		}
		if req.BorrowDate != nil {
			b.BorrowDate = *req.BorrowDate
		}
		if borrowing, err = tx.InsertBorrowing(ctx, b); err != nil {
			return err
		}
		copies, err = tx.AdjustAvailableCopies(ctx, book.ID, -1)
		return err
	})
	if err != nil {
		return model.Borrowing{}, err
	}

	s.publish(ctx, kafka.EventBorrowingCreated, borrowing, copies)
	return borrowing, nil
}

func (s *Service) GetBorrowing(ctx context.Context, id int64) (model.Borrowing, error) {
	return s.repo.GetBorrowing(ctx, id)
}

// ListBorrowings returns every borrowing, newest first.
func (s *Service) ListBorrowings(ctx context.Context) ([]model.Borrowing, error) {
	return s.repo.ListBorrowings(ctx)
}

// ReturnBook closes an open borrowing and puts its copy back.
func (s *Service) ReturnBook(ctx context.Context, id int64) (model.Borrowing, error) {
	var (
		borrowing model.Borrowing
		copies    int
	)
	err := s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		current, err := tx.LockBorrowing(ctx, id)
		if err != nil {
			return err
		}
		if current.Returned {
			return errs.ErrAlreadyReturned
		}
		if borrowing, err = tx.MarkReturned(ctx, id); err != nil {
			return err
		}
		copies, err = tx.AdjustAvailableCopies(ctx, current.BookID, 1)
		return err
	})
	if err != nil {
		return model.Borrowing{}, err
	}

	s.publish(ctx, kafka.EventBorrowingReturned, borrowing, copies)
	return borrowing, nil
}

// RemoveBorrowing deletes the record. An open borrowing releases its copy first.
func (s *Service) RemoveBorrowing(ctx context.Context, id int64) error {
	var (
		borrowing model.Borrowing
		copies    int
	)
	err := s.repo.InTx(ctx, func(tx repository.TxRepository) error {
		var err error
		if borrowing, err = tx.LockBorrowing(ctx, id); err != nil {
			return err
		}
		if borrowing.Open() {
			if copies, err = tx.AdjustAvailableCopies(ctx, borrowing.BookID, 1); err != nil {
				return err
			}
		} else {
			book, err := tx.GetBook(ctx, borrowing.BookID)
			if err != nil {
				return err
			}
			copies = book.AvailableCopies
		}
		return tx.DeleteBorrowing(ctx, id)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, kafka.EventBorrowingDeleted, borrowing, copies)
	return nil
}

// publish never fails the caller: the transition is already committed.
func (s *Service) publish(ctx context.Context, typ kafka.EventType, b model.Borrowing, copies int) {
	event := kafka.BorrowingEvent{
		ID:              uuid.New(),
		Type:            typ,
		BorrowingID:     b.ID,
		BookID:          b.BookID,
		BorrowerName:    b.BorrowerName,
		AvailableCopies: copies,
		Timestamp:       s.now().UTC(),
	}
	if err := s.enqueuer.Enqueue(ctx, event); err != nil {
		s.log.Warn("enqueue borrowing event",
			zap.String("type", string(typ)),
			zap.Int64("borrowingID", b.ID),
			zap.Error(err))
	}
}
