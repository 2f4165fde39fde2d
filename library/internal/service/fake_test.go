package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/model"
	"github.com/Astemirdum/library-ledger/library/internal/repository"
	"github.com/Astemirdum/library-ledger/pkg/kafka"
)

var errInjected = errors.New("injected failure")

// memRepo is an in-memory Repository. Transactions are serialized and
// restore a snapshot of the tables when fn fails.
type memRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	books      map[int64]model.Book
	borrowings map[int64]model.Borrowing
	users      map[string]model.User

	seq   int64
	clock time.Time

	// failOn names a TxRepository method that returns errInjected.
	failOn string
}

var _ repository.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		books:      make(map[int64]model.Book),
		borrowings: make(map[int64]model.Borrowing),
		users:      make(map[string]model.User),
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memRepo) next() (int64, time.Time) {
	r.seq++
	r.clock = r.clock.Add(time.Second)
	return r.seq, r.clock
}

func (r *memRepo) copies(id int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books[id].AvailableCopies
}

func (r *memRepo) CreateBook(_ context.Context, book model.Book) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.ISBN == book.ISBN {
			return model.Book{}, errs.ErrISBNExists
		}
	}
	book.ID, book.CreatedAt = r.next()
	book.UpdatedAt = book.CreatedAt
	r.books[book.ID] = book
	return book, nil
}

func (r *memRepo) GetBook(_ context.Context, id int64) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return model.Book{}, errs.BookNotFound(id)
	}
	return b, nil
}

func (r *memRepo) GetBookByISBN(_ context.Context, isbn string) (model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return model.Book{}, errs.ErrNotFound
}

func (r *memRepo) ListBooks(context.Context) ([]model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *memRepo) GetBorrowing(_ context.Context, id int64) (model.Borrowing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.borrowings[id]
	if !ok {
		return model.Borrowing{}, errs.BorrowingNotFound(id)
	}
	return b, nil
}

func (r *memRepo) ListBorrowings(context.Context) ([]model.Borrowing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]model.Borrowing, 0, len(r.borrowings))
	for _, b := range r.borrowings {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *memRepo) CreateUser(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return model.User{}, errs.ErrUsernameExists
	}
	user.ID, user.CreatedAt = r.next()
	r.users[user.Username] = user
	return user, nil
}

func (r *memRepo) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return model.User{}, errs.ErrNotFound
	}
	return u, nil
}

func (r *memRepo) InTx(_ context.Context, fn func(tx repository.TxRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	books, borrowings := cloneMap(r.books), cloneMap(r.borrowings)
	r.mu.Unlock()

	if err := fn(&memTx{r: r}); err != nil {
		r.mu.Lock()
		r.books, r.borrowings = books, borrowings
		r.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type memTx struct {
	r *memRepo
}

func (t *memTx) fail(op string) error {
	if t.r.failOn != "" && strings.EqualFold(t.r.failOn, op) {
		return errInjected
	}
	return nil
}

func (t *memTx) GetBook(ctx context.Context, id int64) (model.Book, error) {
	if err := t.fail("GetBook"); err != nil {
		return model.Book{}, err
	}
	return t.r.GetBook(ctx, id)
}

func (t *memTx) LockBook(ctx context.Context, id int64) (model.Book, error) {
	if err := t.fail("LockBook"); err != nil {
		return model.Book{}, err
	}
	return t.r.GetBook(ctx, id)
}

func (t *memTx) UpdateBook(_ context.Context, book model.Book) (model.Book, error) {
	if err := t.fail("UpdateBook"); err != nil {
		return model.Book{}, err
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if _, ok := t.r.books[book.ID]; !ok {
		return model.Book{}, errs.BookNotFound(book.ID)
	}
	for _, b := range t.r.books {
		if b.ISBN == book.ISBN && b.ID != book.ID {
			return model.Book{}, errs.ErrISBNExists
		}
	}
	_, book.UpdatedAt = t.r.next()
	t.r.books[book.ID] = book
	return book, nil
}

func (t *memTx) DeleteBook(_ context.Context, id int64) error {
	if err := t.fail("DeleteBook"); err != nil {
		return err
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if _, ok := t.r.books[id]; !ok {
		return errs.BookNotFound(id)
	}
	delete(t.r.books, id)
	for bid, b := range t.r.borrowings {
		if b.BookID == id {
			delete(t.r.borrowings, bid)
		}
	}
	return nil
}

func (t *memTx) CountOpenBorrowings(_ context.Context, bookID int64) (int, error) {
	if err := t.fail("CountOpenBorrowings"); err != nil {
		return 0, err
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	n := 0
	for _, b := range t.r.borrowings {
		if b.BookID == bookID && !b.Returned {
			n++
		}
	}
	return n, nil
}

func (t *memTx) LockBorrowing(ctx context.Context, id int64) (model.Borrowing, error) {
	if err := t.fail("LockBorrowing"); err != nil {
		return model.Borrowing{}, err
	}
	return t.r.GetBorrowing(ctx, id)
}

func (t *memTx) InsertBorrowing(_ context.Context, b model.Borrowing) (model.Borrowing, error) {
	if err := t.fail("InsertBorrowing"); err != nil {
		return model.Borrowing{}, err
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	b.ID, b.CreatedAt = t.r.next()
	b.Returned = false
	t.r.borrowings[b.ID] = b
	return b, nil
}

func (t *memTx) MarkReturned(_ context.Context, id int64) (model.Borrowing, error) {
	if err := t.fail("MarkReturned"); err != nil {
		return model.Borrowing{}, err
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	b, ok := t.r.borrowings[id]
	if !ok || b.Returned {
		return model.Borrowing{}, errs.ErrAlreadyReturned
	}
	b.Returned = true
	t.r.borrowings[id] = b
	return b, nil
}

func (t *memTx) DeleteBorrowing(_ context.Context, id int64) error {
	if err := t.fail("DeleteBorrowing"); err != nil {
		return err
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if _, ok := t.r.borrowings[id]; !ok {
		return errs.BorrowingNotFound(id)
	}
	delete(t.r.borrowings, id)
	return nil
}

func (t *memTx) AdjustAvailableCopies(_ context.Context, bookID int64, delta int) (int, error) {
	if err := t.fail("AdjustAvailableCopies"); err != nil {
		return 0, err
	}
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	b, ok := t.r.books[bookID]
	if !ok {
		return 0, errs.BookNotFound(bookID)
	}
	if b.AvailableCopies+delta < 0 {
		return 0, errs.ErrNoCopies
	}
	b.AvailableCopies += delta
	t.r.books[bookID] = b
	return b.AvailableCopies, nil
}

type recordingEnqueuer struct {
	mu     sync.Mutex
	events []kafka.BorrowingEvent
	err    error
}

func (q *recordingEnqueuer) Enqueue(_ context.Context, event kafka.BorrowingEvent) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.events = append(q.events, event)
	return nil
}

func (q *recordingEnqueuer) types() []kafka.EventType {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]kafka.EventType, 0, len(q.events))
	for _, e := range q.events {
		out = append(out, e.Type)
	}
	return out
}

type stubIssuer struct{}

func (stubIssuer) Issue(userID int64, username string) (string, error) {
	return username + "-token", nil
}
