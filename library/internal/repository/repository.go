package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-ledger/library/internal/model"
)

type Repository interface {
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)

	GetBorrowing(ctx context.Context, id int64) (model.Borrowing, error)
	ListBorrowings(ctx context.Context) ([]model.Borrowing, error)

	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	// InTx runs fn inside one transaction. The transaction is rolled back
	// when fn returns an error and committed otherwise.
	InTx(ctx context.Context, fn func(tx TxRepository) error) error
}

// TxRepository holds the statements that must share a transaction with
// the book row update they are paired with.
//
// A transaction that holds a borrowing lock must not lock its book row:
// deleting a book cascades into its borrowings while holding the book lock.
type TxRepository interface {
	GetBook(ctx context.Context, id int64) (model.Book, error)
	LockBook(ctx context.Context, id int64) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) (model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	CountOpenBorrowings(ctx context.Context, bookID int64) (int, error)

	LockBorrowing(ctx context.Context, id int64) (model.Borrowing, error)
	InsertBorrowing(ctx context.Context, b model.Borrowing) (model.Borrowing, error)
	MarkReturned(ctx context.Context, id int64) (model.Borrowing, error)
	DeleteBorrowing(ctx context.Context, id int64) error

	// AdjustAvailableCopies adds delta to the book's copy count and returns
	// the new value. The update is refused when the result would go below zero.
	AdjustAvailableCopies(ctx context.Context, bookID int64, delta int) (int, error)
}

var (
	_ Repository   = (*repository)(nil)
	_ TxRepository = (*txRepository)(nil)
)

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	booksTableName      = `books`
	borrowingsTableName = `borrowings`
	usersTableName      = `users`
)

var (
	qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	bookColumns      = []string{"id", "title", "author", "isbn", "published_year", "available_copies", "created_at", "updated_at"}
	borrowingColumns = []string{"id", "book_id", "borrower_name", "borrow_date", "return_date", "returned", "created_at"}
	userColumns      = []string{"id", "username", "password", "created_at"}
)

func (r *repository) InTx(ctx context.Context, fn func(tx TxRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txRepository{tx: tx, log: r.log}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.log.Error("rollback", zap.Error(rbErr))
		}
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

type txRepository struct {
	tx  *sqlx.Tx
	log *zap.Logger
}

func get(ctx context.Context, log *zap.Logger, q sqlx.QueryerContext, dest any, b sq.Sqlizer, op string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if err := sqlx.GetContext(ctx, q, dest, query, args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error(op, zap.String("q", query), zap.Any("args", args), zap.Error(err))
		}
		return err
	}
	return nil
}

func exec(ctx context.Context, log *zap.Logger, e sqlx.ExecerContext, b sq.Sqlizer, op string) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, op)
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error(op, zap.String("q", query), zap.Any("args", args), zap.Error(err))
		return 0, errors.Wrap(err, op)
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, op)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
