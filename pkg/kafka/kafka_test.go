package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConfig_Enabled(t *testing.T) {
	require.False(t, Config{}.Enabled())
	require.True(t, Config{Addrs: []string{"kafka:9092"}}.Enabled())
}

func TestBorrowingEvent_JSON(t *testing.T) {
	id := uuid.MustParse("9b2f5a3c-1d2e-4f60-8a7b-0c1d2e3f4a5b")
	data, err := json.Marshal(BorrowingEvent{
		ID:              id,
		Type:            EventBorrowingReturned,
		BorrowingID:     4,
		BookID:          2,
		BorrowerName:    "alice",
		AvailableCopies: 3,
		Timestamp:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id":"9b2f5a3c-1d2e-4f60-8a7b-0c1d2e3f4a5b",
		"type":"borrowing.returned",
		"borrowingID":4,
		"bookID":2,
		"borrowerName":"alice",
		"availableCopies":3,
		"timestamp":"2024-03-01T10:00:00Z"
	}`, string(data))
}
