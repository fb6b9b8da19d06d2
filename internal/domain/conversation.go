package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Conversation is a chat thread scoped to exactly one listing and exactly
// two participants (buyer and seller). The participant set is fixed at
// creation and never mutated. For a given listing and unordered pair of
// participants at most one conversation exists; the repository's
// FindOrCreate enforces this.
type Conversation struct {
	ID           *surrealmodels.RecordID       `json:"id,omitempty"`
	Listing      *surrealmodels.RecordID       `json:"listing"`
	Participants []surrealmodels.RecordID      `json:"participants"`
	CreatedAt    *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
}

// HasParticipant reports whether the given user is one of the two
// conversation participants.
func (c *Conversation) HasParticipant(id *surrealmodels.RecordID) bool {
	if id == nil {
		return false
	}
	for _, p := range c.Participants {
		if p.String() == id.String() {
			return true
		}
	}
	return false
}

// OrderParticipants returns the pair in canonical order, sorted by record
// ID. {A,B} and {B,A} always normalize to the same pair, so the stored
// participants array doubles as half of the conversation's uniqueness key.
func OrderParticipants(a, b surrealmodels.RecordID) (surrealmodels.RecordID, surrealmodels.RecordID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// ConversationRepository defines the contract for conversation storage.
type ConversationRepository interface {
	// FindOrCreate returns the conversation for the given listing and
	// participant pair, creating it if absent. It is atomic with respect
	// to concurrent callers: two racing starts for the same key yield the
	// same single conversation record.
	FindOrCreate(ctx context.Context, listing *surrealmodels.RecordID, a, b surrealmodels.RecordID) (*Conversation, error)
	FindByID(ctx context.Context, id *surrealmodels.RecordID) (*Conversation, error)
}
