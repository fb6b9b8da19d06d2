package database

import (
	"context"
	"fmt"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

var _ domain.MessageRepository = (*MessageStore)(nil)

// MessageStore encapsulates database operations for the append-only
// message log.
type MessageStore struct {
	db *surrealdb.DB
}

// NewMessageStore creates a new MessageStore.
func NewMessageStore(db *surrealdb.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Create appends a message to its conversation's log. The record ID is a
// ULID so that IDs sort in insertion order; combined with the created_at
// timestamp this gives a total order even when two messages land in the
// same millisecond.
func (s *MessageStore) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if msg == nil || msg.Conversation == nil || msg.Sender == nil {
		return nil, NewDBError(ErrInvalidInput, "message conversation and sender are required")
	}

	query := `
		CREATE message:ulid() CONTENT {
			conversation: $conversation,
			sender: $sender,
			text: $text,
			created_at: time::now()
		} RETURN AFTER
	`
	params := map[string]any{
		"conversation": msg.Conversation,
		"sender":       msg.Sender,
		"text":         msg.Text,
	}

	created, err := QueryOne[domain.Message](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "message was not created")
	}

	return created, nil
}

// ListByConversation returns all messages of a conversation ascending by
// creation time, ties broken by the ULID record ID (insertion order).
func (s *MessageStore) ListByConversation(ctx context.Context, conversation *surrealmodels.RecordID) ([]*domain.Message, error) {
	if conversation == nil {
		return nil, NewDBError(ErrInvalidInput, "conversation id is required")
	}

	query := "SELECT * FROM message WHERE conversation = $conversation ORDER BY created_at ASC, id ASC"
	params := map[string]any{"conversation": conversation}

	messages, err := Query[domain.Message](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	result := make([]*domain.Message, len(messages))
	for i := range messages {
		result[i] = &messages[i]
	}
	return result, nil
}
