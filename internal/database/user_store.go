package database

import (
	"context"
	"fmt"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

var _ domain.UserRepository = (*UserStore)(nil)

// UserStore encapsulates database operations for users.
type UserStore struct {
	db *surrealdb.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *surrealdb.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user record. The unique index on uid makes a
// duplicate uid a constraint violation, which is surfaced as
// domain.ErrUserAlreadyExists.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		CREATE user CONTENT {
			uid: $uid,
			name: $name,
			password_hash: $password_hash,
			created_at: time::now()
		} RETURN AFTER
	`
	params := map[string]any{
		"uid":           user.UID,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
	}

	created, err := QueryOne[domain.User](ctx, s.db, query, params)
	if err != nil {
		if isUniqueIndexViolation(err) {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "user was not created")
	}

	return created, nil
}

// FindByUID queries for a single user by their campus uid.
// Returns nil, nil when no user exists.
func (s *UserStore) FindByUID(ctx context.Context, uid string) (*domain.User, error) {
	query := "SELECT * FROM user WHERE uid = $uid"
	params := map[string]any{"uid": uid}

	user, err := QueryOne[domain.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return user, nil
}

// FindByIDs retrieves the users for a set of record IDs in one query,
// used to populate sender and seller display info on responses.
func (s *UserStore) FindByIDs(ctx context.Context, ids []surrealmodels.RecordID) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := "SELECT * FROM user WHERE id IN $ids"
	params := map[string]any{"ids": ids}

	users, err := Query[domain.User](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	result := make([]*domain.User, len(users))
	for i := range users {
		result[i] = &users[i]
	}
	return result, nil
}
