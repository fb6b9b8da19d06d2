package handlers

import (
	"net/http"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/Manav-Nocode/campus-app/internal/middleware"
	"github.com/labstack/echo/v4"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// listingFeedLimit caps the public listing feed.
const listingFeedLimit = 50

// ListingHandler handles creating and browsing marketplace listings.
type ListingHandler struct {
	listings domain.ListingRepository
	users    domain.UserRepository
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings domain.ListingRepository, users domain.UserRepository) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		users:    users,
	}
}

// CreatePost creates a listing owned by the authenticated caller.
func (h *ListingHandler) CreatePost(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Title and price are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Title and price are required"})
	}

	condition := req.Condition
	if condition == "" {
		condition = domain.ConditionUsed
	}
	var images []string
	if req.ImageURL != "" {
		images = []string{req.ImageURL}
	}

	listing, err := h.listings.Create(ctx, &domain.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      images,
		Condition:   condition,
		Location:    req.Location,
		Seller:      identity.UserID,
		IsAvailable: true,
	})
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to create listing", "error", err, "seller", identity.UID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	users, err := h.sellerDirectory(c, []*domain.Listing{listing})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
	return c.JSON(http.StatusCreated, NewListingResponse(listing, users))
}

// ListGet returns the newest listings, newest first. No auth required.
func (h *ListingHandler) ListGet(c echo.Context) error {
	ctx := c.Request().Context()

	listings, err := h.listings.List(ctx, listingFeedLimit)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to list listings", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	users, err := h.sellerDirectory(c, listings)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	resp := make([]*ListingResponse, 0, len(listings))
	for _, listing := range listings {
		resp = append(resp, NewListingResponse(listing, users))
	}
	return c.JSON(http.StatusOK, resp)
}

// sellerDirectory batch-resolves the distinct sellers of the given listings
// into a display-info map keyed by record ID.
func (h *ListingHandler) sellerDirectory(c echo.Context, listings []*domain.Listing) (map[string]*domain.User, error) {
	seen := make(map[string]struct{})
	var ids []surrealmodels.RecordID
	for _, listing := range listings {
		if listing.Seller == nil {
			continue
		}
		key := listing.Seller.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ids = append(ids, *listing.Seller)
	}
	if len(ids) == 0 {
		return map[string]*domain.User{}, nil
	}

	ctx := c.Request().Context()
	sellers, err := h.users.FindByIDs(ctx, ids)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to resolve sellers", "error", err)
		return nil, err
	}

	users := make(map[string]*domain.User, len(sellers))
	for _, u := range sellers {
		if u.ID != nil {
			users[u.ID.String()] = u
		}
	}
	return users, nil
}
