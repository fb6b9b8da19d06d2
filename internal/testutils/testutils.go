// Package testutils provides in-memory repository implementations for
// handler tests. They honor the same contracts as the SurrealDB stores,
// including atomic find-or-create and insertion-ordered message logs, so
// handlers can be exercised without a database.
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/google/uuid"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// NewTestRecordID creates a new RecordID for testing purposes.
func NewTestRecordID(table string) *surrealmodels.RecordID {
	id := surrealmodels.NewRecordID(table, uuid.NewString())
	return &id
}

func now() *surrealmodels.CustomDateTime {
	return &surrealmodels.CustomDateTime{Time: time.Now().UTC()}
}

// UserStore is an in-memory domain.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users []*domain.User
}

var _ domain.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{}
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UID == user.UID {
			return nil, domain.ErrUserAlreadyExists
		}
	}
	stored := *user
	stored.ID = NewTestRecordID("user")
	stored.CreatedAt = now()
	s.users = append(s.users, &stored)
	return &stored, nil
}

func (s *UserStore) FindByUID(ctx context.Context, uid string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.UID == uid {
			return u, nil
		}
	}
	return nil, nil
}

func (s *UserStore) FindByIDs(ctx context.Context, ids []surrealmodels.RecordID) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []*domain.User
	for _, id := range ids {
		for _, u := range s.users {
			if u.ID != nil && u.ID.String() == id.String() {
				found = append(found, u)
				break
			}
		}
	}
	return found, nil
}

// ListingStore is an in-memory domain.ListingRepository.
type ListingStore struct {
	mu       sync.Mutex
	listings []*domain.Listing
}

var _ domain.ListingRepository = (*ListingStore)(nil)

func NewListingStore() *ListingStore {
	return &ListingStore{}
}

func (s *ListingStore) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *listing
	stored.ID = NewTestRecordID("listing")
	stored.CreatedAt = now()
	s.listings = append(s.listings, &stored)
	return &stored, nil
}

func (s *ListingStore) FindByID(ctx context.Context, id *surrealmodels.RecordID) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.ID.String() == id.String() {
			return l, nil
		}
	}
	return nil, nil
}

func (s *ListingStore) List(ctx context.Context, limit int) ([]*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the database store's ORDER BY created_at DESC.
	var out []*domain.Listing
	for i := len(s.listings) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.listings[i])
	}
	return out, nil
}

// ConversationStore is an in-memory domain.ConversationRepository. Its
// FindOrCreate holds the store lock for the whole lookup-or-insert, so
// concurrent starts for the same listing and pair converge on one record
// just like the unique index does in SurrealDB.
type ConversationStore struct {
	mu            sync.Mutex
	conversations []*domain.Conversation
}

var _ domain.ConversationRepository = (*ConversationStore)(nil)

func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

func (s *ConversationStore) FindOrCreate(ctx context.Context, listing *surrealmodels.RecordID, a, b surrealmodels.RecordID) (*domain.Conversation, error) {
	first, second := domain.OrderParticipants(a, b)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.Listing.String() == listing.String() &&
			c.Participants[0].String() == first.String() &&
			c.Participants[1].String() == second.String() {
			return c, nil
		}
	}
	conv := &domain.Conversation{
		ID:           NewTestRecordID("conversation"),
		Listing:      listing,
		Participants: []surrealmodels.RecordID{first, second},
		CreatedAt:    now(),
	}
	s.conversations = append(s.conversations, conv)
	return conv, nil
}

func (s *ConversationStore) FindByID(ctx context.Context, id *surrealmodels.RecordID) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID.String() == id.String() {
			return c, nil
		}
	}
	return nil, nil
}

// MessageStore is an in-memory domain.MessageRepository. The slice
// preserves insertion order, which is the tie-break the database store
// gets from ULID record IDs.
type MessageStore struct {
	mu       sync.Mutex
	messages []*domain.Message
}

var _ domain.MessageRepository = (*MessageStore)(nil)

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func (s *MessageStore) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *msg
	stored.ID = NewTestRecordID("message")
	stored.CreatedAt = now()
	s.messages = append(s.messages, &stored)
	return &stored, nil
}

func (s *MessageStore) ListByConversation(ctx context.Context, conversation *surrealmodels.RecordID) ([]*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Message
	for _, m := range s.messages {
		if m.Conversation.String() == conversation.String() {
			out = append(out, m)
		}
	}
	return out, nil
}
