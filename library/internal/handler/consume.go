package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/model"
	"github.com/Astemirdum/library-ledger/pkg/kafka"
)

type returnBook func(ctx context.Context, id int64) (model.Borrowing, error)

// Consumer applies return requests coming from self-service terminals.
type Consumer struct {
	returnBookHandler returnBook
	log               *zap.Logger
}

func NewConsumer(returnBook returnBook, log *zap.Logger) *Consumer {
	return &Consumer{
		returnBookHandler: returnBook,
		log:               log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(session sarama.ConsumerGroupSession) error {
	consumer.log.Info("consumer session started", zap.String("member", session.MemberID()))
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var req kafka.ReturnRequest
			if err := json.Unmarshal(message.Value, &req); err != nil || req.BorrowingID <= 0 {
				consumer.log.Error("bad return request", zap.ByteString("value", message.Value), zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			if _, err := consumer.returnBookHandler(session.Context(), req.BorrowingID); err != nil {
				// retrying cannot fix these
				if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrInvalidOperation) {
					consumer.log.Warn("return request rejected", zap.Int64("borrowingID", req.BorrowingID), zap.Error(err))
					session.MarkMessage(message, "")
					continue
				}
				consumer.log.Error("consumer.returnBookHandler", zap.Int64("borrowingID", req.BorrowingID), zap.Error(err))
				continue
			}

			consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
