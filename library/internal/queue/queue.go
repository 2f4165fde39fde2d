package queue

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-ledger/pkg/circuit_breaker"
	"github.com/Astemirdum/library-ledger/pkg/kafka"
)

// Enqueuer publishes ledger events to Kafka. Sends go through a circuit
// breaker so an unavailable broker fails fast.
type Enqueuer struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	topic    string
}

func NewEnqueuer(producer sarama.SyncProducer, cb circuit_breaker.CircuitBreaker, topic string) *Enqueuer {
	return &Enqueuer{
		producer: producer,
		cb:       cb,
		topic:    topic,
	}
}

func (q *Enqueuer) Enqueue(_ context.Context, event kafka.BorrowingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.BookID, 10)),
		Value: sarama.ByteEncoder(data),
	}
	return q.cb.Call(func() error {
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
}

func (q *Enqueuer) Close() error {
	return q.producer.Close()
}

// Noop drops events. Used when no brokers are configured.
type Noop struct{}

func (Noop) Enqueue(context.Context, kafka.BorrowingEvent) error { return nil }

func (Noop) Close() error { return nil }
