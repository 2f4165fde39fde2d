package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-ledger/library/config"
	"github.com/Astemirdum/library-ledger/library/internal/handler"
	"github.com/Astemirdum/library-ledger/library/internal/queue"
	"github.com/Astemirdum/library-ledger/library/internal/repository"
	"github.com/Astemirdum/library-ledger/library/internal/server"
	"github.com/Astemirdum/library-ledger/library/internal/service"
	"github.com/Astemirdum/library-ledger/library/migrations"
	"github.com/Astemirdum/library-ledger/pkg/auth"
	"github.com/Astemirdum/library-ledger/pkg/circuit_breaker"
	"github.com/Astemirdum/library-ledger/pkg/kafka"
	"github.com/Astemirdum/library-ledger/pkg/logger"
	"github.com/Astemirdum/library-ledger/pkg/postgres"
)

const shutdownTimeout = 5 * time.Second

// Run serves the API until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	defer log.Sync() //nolint:errcheck

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}
	tokens := auth.NewTokenManager([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)

	events, err := newEventQueue(cfg, log)
	if err != nil {
		return err
	}
	defer events.Close()

	svc := service.NewService(repo, tokens, events, log)
	h := handler.New(svc, svc, svc, tokens, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	gg, ctx := errgroup.WithContext(ctx)

	gg.Go(func() error {
		log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
		return srv.Run()
	})

	if cfg.Kafka.Enabled() {
		group, err := kafka.NewConsumer(cfg.Kafka, kafka.LedgerConsumerGroup)
		if err != nil {
			return errors.Wrap(err, "kafka.NewConsumer")
		}
		defer group.Close()
		gg.Go(func() error {
			return kafka.Consume(ctx, group, handler.NewConsumer(svc.ReturnBook, log), kafka.ReturnsTopic)
		})
	}

	gg.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := gg.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}

type eventQueue interface {
	service.Enqueuer
	Close() error
}

func newEventQueue(cfg *config.Config, log *zap.Logger) (eventQueue, error) {
	if !cfg.Kafka.Enabled() {
		log.Warn("kafka brokers are not configured, ledger events are dropped")
		return queue.Noop{}, nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, errors.Wrap(err, "kafka.NewProducer")
	}
	return queue.NewEnqueuer(producer, circuit_breaker.NewCircuitBreaker(cfg.Breaker), kafka.BorrowingTopic), nil
}
