package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/library-ledger/library/internal/repository"
	"github.com/Astemirdum/library-ledger/pkg/kafka"
)

// Enqueuer delivers ledger events once the transition has committed.
type Enqueuer interface {
	Enqueue(ctx context.Context, event kafka.BorrowingEvent) error
}

type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	tokens   TokenIssuer
	enqueuer Enqueuer
	now      func() time.Time
}

func NewService(repo repository.Repository, tokens TokenIssuer, enqueuer Enqueuer, log *zap.Logger) *Service {
	return &Service{
		log:      log.Named("service"),
		repo:     repo,
		tokens:   tokens,
		enqueuer: enqueuer,
		now:      time.Now,
	}
}
