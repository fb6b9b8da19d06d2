package domain

import (
	"context"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// Valid values for a listing's condition field.
const (
	ConditionNew  = "new"
	ConditionGood = "good"
	ConditionUsed = "used"
)

// Listing represents a marketplace listing. The seller field references a
// user record; the listing never owns the user.
type Listing struct {
	ID          *surrealmodels.RecordID       `json:"id,omitempty"`
	Title       string                        `json:"title" validate:"required,min=1,max=200"`
	Description string                        `json:"description,omitempty"`
	Price       float64                       `json:"price" validate:"gte=0"`
	Category    string                        `json:"category,omitempty"`
	Images      []string                      `json:"images,omitempty"`
	Condition   string                        `json:"condition,omitempty" validate:"omitempty,oneof=new good used"`
	Location    string                        `json:"location,omitempty"`
	Seller      *surrealmodels.RecordID       `json:"seller" validate:"required"`
	IsAvailable bool                          `json:"is_available"`
	CreatedAt   *surrealmodels.CustomDateTime `json:"created_at,omitempty"`
}

// ListingRepository defines the contract for listing storage operations.
// The conversation directory consumes only FindByID to resolve a listing
// to its seller.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) (*Listing, error)
	FindByID(ctx context.Context, id *surrealmodels.RecordID) (*Listing, error)
	List(ctx context.Context, limit int) ([]*Listing, error)
}
