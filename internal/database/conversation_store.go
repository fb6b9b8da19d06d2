package database

import (
	"context"
	"fmt"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

var _ domain.ConversationRepository = (*ConversationStore)(nil)

// ConversationStore encapsulates database operations for conversations.
type ConversationStore struct {
	db *surrealdb.DB
}

// NewConversationStore creates a new ConversationStore.
func NewConversationStore(db *surrealdb.DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// FindOrCreate returns the conversation for (listing, participant pair),
// creating it if absent. Participants are normalized to canonical order
// before both the lookup and the insert, so {A,B} and {B,A} hit the same
// row and the same unique index key.
//
// Under a race two callers can both see "no conversation" and both try to
// create; the unique index on (listing, participants) lets only one insert
// through. The loser's constraint violation is converted into a re-read of
// the winner's row rather than surfaced as an error.
func (s *ConversationStore) FindOrCreate(ctx context.Context, listing *surrealmodels.RecordID, a, b surrealmodels.RecordID) (*domain.Conversation, error) {
	if listing == nil {
		return nil, NewDBError(ErrInvalidInput, "listing id is required")
	}

	first, second := domain.OrderParticipants(a, b)
	params := map[string]any{
		"listing":      listing,
		"participants": []surrealmodels.RecordID{first, second},
	}

	existing, err := s.lookup(ctx, params)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	query := `
		CREATE conversation CONTENT {
			listing: $listing,
			participants: $participants,
			created_at: time::now()
		} RETURN AFTER
	`
	created, err := QueryOne[domain.Conversation](ctx, s.db, query, params)
	if err != nil {
		if isUniqueIndexViolation(err) {
			// Lost the race; the winner's row exists now.
			return s.lookup(ctx, params)
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "conversation was not created")
	}

	return created, nil
}

func (s *ConversationStore) lookup(ctx context.Context, params map[string]any) (*domain.Conversation, error) {
	query := "SELECT * FROM conversation WHERE listing = $listing AND participants = $participants"
	conv, err := QueryOne[domain.Conversation](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return conv, nil
}

// FindByID retrieves a conversation by its record ID. Returns nil, nil
// when no conversation exists.
func (s *ConversationStore) FindByID(ctx context.Context, id *surrealmodels.RecordID) (*domain.Conversation, error) {
	if id == nil {
		return nil, NewDBError(ErrInvalidInput, "conversation id is required")
	}

	query := "SELECT * FROM conversation WHERE id = $id"
	params := map[string]any{"id": id}

	conv, err := QueryOne[domain.Conversation](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return conv, nil
}
