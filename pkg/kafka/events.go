package kafka

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBorrowingCreated  EventType = "borrowing.created"
	EventBorrowingReturned EventType = "borrowing.returned"
	EventBorrowingDeleted  EventType = "borrowing.deleted"
)

// BorrowingEvent is published after a ledger transition commits.
// AvailableCopies is the book's copy count right after the transition.
type BorrowingEvent struct {
	ID              uuid.UUID `json:"id"`
	Type            EventType `json:"type"`
	BorrowingID     int64     `json:"borrowingID"`
	BookID          int64     `json:"bookID"`
	BorrowerName    string    `json:"borrowerName"`
	AvailableCopies int       `json:"availableCopies"`
	Timestamp       time.Time `json:"timestamp"`
}

// ReturnRequest arrives on ReturnsTopic from self-service return terminals.
type ReturnRequest struct {
	BorrowingID int64 `json:"borrowingID"`
}
