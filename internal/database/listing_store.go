package database

import (
	"context"
	"fmt"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

var _ domain.ListingRepository = (*ListingStore)(nil)

// ListingStore encapsulates database operations for marketplace listings.
type ListingStore struct {
	db *surrealdb.DB
}

// NewListingStore creates a new ListingStore.
func NewListingStore(db *surrealdb.DB) *ListingStore {
	return &ListingStore{db: db}
}

// Create inserts a new listing record.
func (s *ListingStore) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	query := `
		CREATE listing CONTENT {
			title: $title,
			description: $description,
			price: $price,
			category: $category,
			images: $images,
			condition: $condition,
			location: $location,
			seller: $seller,
			is_available: $is_available,
			created_at: time::now()
		} RETURN AFTER
	`
	params := map[string]any{
		"title":        listing.Title,
		"description":  listing.Description,
		"price":        listing.Price,
		"category":     listing.Category,
		"images":       listing.Images,
		"condition":    listing.Condition,
		"location":     listing.Location,
		"seller":       listing.Seller,
		"is_available": listing.IsAvailable,
	}

	created, err := QueryOne[domain.Listing](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "listing was not created")
	}

	return created, nil
}

// FindByID retrieves a listing by its record ID. Returns nil, nil when no
// listing exists; the conversation directory turns that into NotFound.
func (s *ListingStore) FindByID(ctx context.Context, id *surrealmodels.RecordID) (*domain.Listing, error) {
	if id == nil {
		return nil, NewDBError(ErrInvalidInput, "listing id is required")
	}

	query := "SELECT * FROM listing WHERE id = $id"
	params := map[string]any{"id": id}

	listing, err := QueryOne[domain.Listing](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}

	return listing, nil
}

// List returns the newest listings first, capped at limit.
func (s *ListingStore) List(ctx context.Context, limit int) ([]*domain.Listing, error) {
	query := "SELECT * FROM listing ORDER BY created_at DESC LIMIT $limit"
	params := map[string]any{"limit": limit}

	listings, err := Query[domain.Listing](ctx, s.db, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	result := make([]*domain.Listing, len(listings))
	for i := range listings {
		result[i] = &listings[i]
	}
	return result, nil
}
