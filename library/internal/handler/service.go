package handler

import (
	"context"

	"github.com/Astemirdum/library-ledger/library/internal/model"
	"github.com/Astemirdum/library-ledger/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CatalogService = (*service.Service)(nil)
	_ LedgerService  = (*service.Service)(nil)
	_ AuthService    = (*service.Service)(nil)
)

type CatalogService interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id int64) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpdateBook(ctx context.Context, id int64, req model.UpdateBookRequest) (model.Book, error)
	RemoveBook(ctx context.Context, id int64) error
}

type LedgerService interface {
	CreateBorrowing(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error)
	GetBorrowing(ctx context.Context, id int64) (model.Borrowing, error)
	ListBorrowings(ctx context.Context) ([]model.Borrowing, error)
	ReturnBook(ctx context.Context, id int64) (model.Borrowing, error)
	RemoveBorrowing(ctx context.Context, id int64) error
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (model.Token, error)
}
