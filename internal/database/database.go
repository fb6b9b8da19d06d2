package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Manav-Nocode/campus-app/internal/config"
	"github.com/surrealdb/surrealdb.go"
)

// NewDB creates and configures a new SurrealDB connection.
func NewDB(ctx context.Context, cfg *config.Config) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: cfg.DBUser,
		Password: cfg.DBPass,
	}

	if _, err = db.SignIn(ctx, authData); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if err = db.Use(ctx, cfg.DBNs, cfg.DBDb); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	slog.Info("Successfully signed in to SurrealDB")
	return db, nil
}

// DefineSchema applies the index definitions the stores rely on. It is
// idempotent and runs at every startup.
//
// The unique index on (listing, participants) is what makes conversation
// find-or-create safe under concurrency: participants are always stored in
// canonical sorted order, so the index key is the same no matter which
// participant initiated the conversation, and the storage engine guarantees
// at most one winner per key.
func DefineSchema(ctx context.Context, db *surrealdb.DB) error {
	statements := []string{
		"DEFINE INDEX IF NOT EXISTS user_uid ON TABLE user COLUMNS uid UNIQUE",
		"DEFINE INDEX IF NOT EXISTS conversation_key ON TABLE conversation COLUMNS listing, participants UNIQUE",
	}

	for _, stmt := range statements {
		if err := Execute(ctx, db, stmt, nil); err != nil {
			return fmt.Errorf("failed to define schema: %w", err)
		}
	}
	return nil
}
