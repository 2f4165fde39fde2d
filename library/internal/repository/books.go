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

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	b := qb.Insert(booksTableName).
		Columns("title", "author", "isbn", "published_year", "available_copies").
		Values(book.Title, book.Author, book.ISBN, book.PublishedYear, book.AvailableCopies).
		Suffix("RETURNING " + strings.Join(bookColumns, ", "))

	var created model.Book
	if err := get(ctx, r.log, r.db, &created, b, "CreateBook"); err != nil {
		if isUniqueViolation(err) {
			return model.Book{}, errs.ErrISBNExists
		}
		return model.Book{}, errors.Wrap(err, "CreateBook")
	}
	return created, nil
}

func (r *repository) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return getBook(ctx, r.log, r.db, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}), id)
}

func (r *repository) GetBookByISBN(ctx context.Context, isbn string) (model.Book, error) {
	b := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"isbn": isbn}).
		Limit(1)

	var book model.Book
	if err := get(ctx, r.log, r.db, &book, b, "GetBookByISBN"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, errors.Wrap(err, "GetBookByISBN")
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		r.log.Error("ListBooks", zap.String("q", query), zap.Error(err))
		return nil, errors.Wrap(err, "ListBooks")
	}
	return books, nil
}

// GetBook reads the book without taking its row lock.
func (r *txRepository) GetBook(ctx context.Context, id int64) (model.Book, error) {
	return getBook(ctx, r.log, r.tx, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}), id)
}

func (r *txRepository) LockBook(ctx context.Context, id int64) (model.Book, error) {
	return getBook(ctx, r.log, r.tx, qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE"), id)
}

func (r *txRepository) UpdateBook(ctx context.Context, book model.Book) (model.Book, error) {
	b := qb.Update(booksTableName).
		SetMap(map[string]any{
			"title":            book.Title,
			"author":           book.Author,
			"isbn":             book.ISBN,
			"published_year":   book.PublishedYear,
			"available_copies": book.AvailableCopies,
			"updated_at":       sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": book.ID}).
		Suffix("RETURNING " + strings.Join(bookColumns, ", "))

	var updated model.Book
	if err := get(ctx, r.log, r.tx, &updated, b, "UpdateBook"); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return model.Book{}, errs.BookNotFound(book.ID)
		case isUniqueViolation(err):
			return model.Book{}, errs.ErrISBNExists
		}
		return model.Book{}, errors.Wrap(err, "UpdateBook")
	}
	return updated, nil
}

func (r *txRepository) DeleteBook(ctx context.Context, id int64) error {
	n, err := exec(ctx, r.log, r.tx, qb.Delete(booksTableName).Where(sq.Eq{"id": id}), "DeleteBook")
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.BookNotFound(id)
	}
	return nil
}

func (r *txRepository) CountOpenBorrowings(ctx context.Context, bookID int64) (int, error) {
	b := qb.Select("count(*)").
		From(borrowingsTableName).
		Where(sq.Eq{"book_id": bookID, "returned": false})

	var n int
	if err := get(ctx, r.log, r.tx, &n, b, "CountOpenBorrowings"); err != nil {
		return 0, errors.Wrap(err, "CountOpenBorrowings")
	}
	return n, nil
}

func (r *txRepository) AdjustAvailableCopies(ctx context.Context, bookID int64, delta int) (int, error) {
	b := qb.Update(booksTableName).
		Set("available_copies", sq.Expr("available_copies + ?", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": bookID}).
		Where(sq.Expr("available_copies + ? >= 0", delta)).
		Suffix("RETURNING available_copies")

	var copies int
	if err := get(ctx, r.log, r.tx, &copies, b, "AdjustAvailableCopies"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if delta < 0 {
				return 0, errs.ErrNoCopies
			}
			return 0, errs.BookNotFound(bookID)
		}
		return 0, errors.Wrap(err, "AdjustAvailableCopies")
	}
	return copies, nil
}

func getBook(ctx context.Context, log *zap.Logger, q sqlx.QueryerContext, b sq.SelectBuilder, id int64) (model.Book, error) {
	var book model.Book
	if err := get(ctx, log, q, &book, b, "GetBook"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.BookNotFound(id)
		}
		return model.Book{}, errors.Wrap(err, "GetBook")
	}
	return book, nil
}
