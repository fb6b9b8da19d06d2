package domain

import (
	"context"
	"fmt"
	"strings"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// User represents the core user model in the application domain.
// The password hash is never serialized into API responses; handlers map
// users onto response DTOs that omit it.
type User struct {
	ID           *surrealmodels.RecordID       `json:"id,omitempty"`
	UID          string                        `json:"uid" validate:"required,min=1,max=64"`
	Name         string                        `json:"name" validate:"required,min=1,max=128"`
	PasswordHash string                        `json:"password_hash,omitempty"`
	CreatedAt    *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
}

// UserRepository defines the contract for user data storage operations.
// It lives in the domain because it's a requirement OF the domain, not
// of the database implementation.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByUID(ctx context.Context, uid string) (*User, error)
	FindByIDs(ctx context.Context, ids []surrealmodels.RecordID) ([]*User, error)
}

// ParseRecordID parses a "table:id" string into a RecordID. Identifiers
// arriving over the wire (JWT claims, URL params) are strings; storage
// works with record IDs.
//
// RecordID.String() wraps any ID containing non-alphanumerics in angle
// brackets, with backslash escapes inside ("conversation:⟨abc-123⟩"), so
// IDs the API itself handed out come back in that form. The inverse of
// that escaping is applied here; otherwise the bracketed string would be
// taken as the literal identifier and never match the stored record.
func ParseRecordID(s string) (*surrealmodels.RecordID, error) {
	table, id, ok := strings.Cut(s, ":")
	if !ok || table == "" || id == "" {
		return nil, fmt.Errorf("invalid record id %q", s)
	}
	rid := surrealmodels.NewRecordID(table, unescapeRecordID(id))
	return &rid, nil
}

func unescapeRecordID(id string) string {
	if !strings.HasPrefix(id, "⟨") || !strings.HasSuffix(id, "⟩") {
		return id
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(id, "⟨"), "⟩")

	var b strings.Builder
	escaped := false
	for _, ch := range inner {
		if !escaped && ch == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(ch)
	}
	return b.String()
}
