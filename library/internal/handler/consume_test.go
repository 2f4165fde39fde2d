package handler_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/handler"
	"github.com/Astemirdum/library-ledger/library/internal/model"
)

type fakeSession struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string { return "test" }
func (s *fakeSession) GenerationID() int32 { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string) {}
func (s *fakeSession) Commit() {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string { return "library.returns" }
func (c *fakeClaim) Partition() int32 { return 0 }
func (c *fakeClaim) InitialOffset() int64 { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64 { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestConsumer_ConsumeClaim(t *testing.T) {
	var (
		mu     sync.Mutex
		called []int64
	)
	returnBook := func(_ context.Context, id int64) (model.Borrowing, error) {
		mu.Lock()
		called = append(called, id)
		mu.Unlock()
		switch id {
		case 2:
			return model.Borrowing{}, errs.ErrAlreadyReturned
		case 3:
			return model.Borrowing{}, errors.New("db down")
		}
		return model.Borrowing{ID: id, Returned: true}, nil
	}

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 4)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 0, Value: []byte(`{"borrowingID":1}`)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 1, Value: []byte(`not json`)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 2, Value: []byte(`{"borrowingID":2}`)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 3, Value: []byte(`{"borrowingID":3}`)}
	close(claim.messages)

	session := &fakeSession{ctx: context.Background()}
	c := handler.NewConsumer(returnBook, zap.NewNop())

	require.NoError(t, c.Setup(session))
	require.NoError(t, c.ConsumeClaim(session, claim))
	require.NoError(t, c.Cleanup(session))

	require.Equal(t, []int64{1, 2, 3}, called)
	// offset 3 failed with an infrastructure error and stays unmarked
	require.Equal(t, []int64{0, 1, 2}, session.marked)
}
