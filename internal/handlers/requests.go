package handlers

import "github.com/go-playground/validator/v10"

// CustomValidator wraps the go-playground/validator library to implement
// Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// SignupRequest is the DTO for creating a new account.
type SignupRequest struct {
	UID      string `json:"uid" validate:"required,min=1,max=64"`
	Name     string `json:"name" validate:"required,min=1,max=128"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the DTO for signing in.
type LoginRequest struct {
	UID      string `json:"uid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateListingRequest is the DTO for posting a new listing.
type CreateListingRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=64"`
	Condition   string  `json:"condition" validate:"omitempty,oneof=new good used"`
	Location    string  `json:"location" validate:"max=128"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
}

// StartConversationRequest is the DTO for starting (or resuming) a chat
// about a listing.
type StartConversationRequest struct {
	ListingID string `json:"listingId" validate:"required"`
}

// PostMessageRequest is the DTO for appending a message to a conversation.
// Whitespace-only text is rejected by the handler after trimming, which the
// validator alone cannot express.
type PostMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}
