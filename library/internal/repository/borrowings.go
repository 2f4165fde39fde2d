package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/model"
)

func (r *repository) GetBorrowing(ctx context.Context, id int64) (model.Borrowing, error) {
	return getBorrowing(ctx, r.log, r.db, qb.Select(borrowingColumns...).
		From(borrowingsTableName).
		Where(sq.Eq{"id": id}), id)
}

func (r *repository) ListBorrowings(ctx context.Context) ([]model.Borrowing, error) {
	query, args, err := qb.Select(borrowingColumns...).
		From(borrowingsTableName).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	borrowings := make([]model.Borrowing, 0)
	if err := r.db.SelectContext(ctx, &borrowings, query, args...); err != nil {
		r.log.Error("ListBorrowings", zap.String("q", query), zap.Error(err))
		return nil, errors.Wrap(err, "ListBorrowings")
	}
	return borrowings, nil
}

func (r *txRepository) LockBorrowing(ctx context.Context, id int64) (model.Borrowing, error) {
	return getBorrowing(ctx, r.log, r.tx, qb.Select(borrowingColumns...).
		From(borrowingsTableName).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE"), id)
}

func (r *txRepository) InsertBorrowing(ctx context.Context, b model.Borrowing) (model.Borrowing, error) {
	ins := qb.Insert(borrowingsTableName).
		Columns("book_id", "borrower_name", "borrow_date", "return_date", "returned").
		Values(b.BookID, b.BorrowerName, b.BorrowDate, b.ReturnDate, false).
		Suffix("RETURNING " + strings.Join(borrowingColumns, ", "))

	var created model.Borrowing
	if err := get(ctx, r.log, r.tx, &created, ins, "InsertBorrowing"); err != nil {
		return model.Borrowing{}, errors.Wrap(err, "InsertBorrowing")
	}
	return created, nil
}

func (r *txRepository) MarkReturned(ctx context.Context, id int64) (model.Borrowing, error) {
	upd := qb.Update(borrowingsTableName).
		Set("returned", true).
		Where(sq.Eq{"id": id, "returned": false}).
		Suffix("RETURNING " + strings.Join(borrowingColumns, ", "))

	var updated model.Borrowing
	if err := get(ctx, r.log, r.tx, &updated, upd, "MarkReturned"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Borrowing{}, errs.ErrAlreadyReturned
		}
		return model.Borrowing{}, errors.Wrap(err, "MarkReturned")
	}
	return updated, nil
}

func (r *txRepository) DeleteBorrowing(ctx context.Context, id int64) error {
	n, err := exec(ctx, r.log, r.tx, qb.Delete(borrowingsTableName).Where(sq.Eq{"id": id}), "DeleteBorrowing")
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.BorrowingNotFound(id)
	}
	return nil
}

func getBorrowing(ctx context.Context, log *zap.Logger, q sqlx.QueryerContext, b sq.SelectBuilder, id int64) (model.Borrowing, error) {
	var borrowing model.Borrowing
	if err := get(ctx, log, q, &borrowing, b, "GetBorrowing"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Borrowing{}, errs.BorrowingNotFound(id)
		}
		return model.Borrowing{}, errors.Wrap(err, "GetBorrowing")
	}
	return borrowing, nil
}
