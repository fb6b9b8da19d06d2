package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Message belongs to exactly one conversation. The sender must be one of
// the conversation's participants; the log is append-only, so messages are
// immutable once created.
type Message struct {
	ID           *surrealmodels.RecordID       `json:"id,omitempty"`
	Conversation *surrealmodels.RecordID       `json:"conversation"`
	Sender       *surrealmodels.RecordID       `json:"sender"`
	Text         string                        `json:"text"`
	CreatedAt    *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
}

// MessageRepository defines the contract for the append-only message log.
type MessageRepository interface {
	// Create appends a message. The creation timestamp is assigned by the
	// store so that ordering reflects insertion order.
	Create(ctx context.Context, msg *Message) (*Message, error)
	// ListByConversation returns all messages of a conversation ordered
	// ascending by creation time, ties broken by insertion order.
	ListByConversation(ctx context.Context, conversation *surrealmodels.RecordID) ([]*Message, error)
}
