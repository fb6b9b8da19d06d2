package handlers

import (
	"time"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse is the DTO for user display info. It never carries the
// password hash.
type UserResponse struct {
	ID   string `json:"id"`
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
}

// ListingResponse is the DTO for a single listing with seller display info
// populated.
type ListingResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Category    string        `json:"category,omitempty"`
	Images      []string      `json:"images,omitempty"`
	Condition   string        `json:"condition,omitempty"`
	Location    string        `json:"location,omitempty"`
	Seller      *UserResponse `json:"seller"`
	IsAvailable bool          `json:"isAvailable"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// ListingSummary is the abbreviated listing shape embedded in the
// start-conversation response.
type ListingSummary struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Seller *UserResponse `json:"seller"`
}

// MessageResponse is the DTO for a single chat message with sender display
// info populated.
type MessageResponse struct {
	ID             string        `json:"id"`
	ConversationID string        `json:"conversationId"`
	Sender         *UserResponse `json:"sender"`
	Text           string        `json:"text"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// StartConversationResponse is returned by the chat start endpoint.
type StartConversationResponse struct {
	ConversationID string            `json:"conversationId"`
	Listing        ListingSummary    `json:"listing"`
	Messages       []MessageResponse `json:"messages"`
}

// NewUserResponse maps a domain user onto its display DTO.
func NewUserResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	resp := &UserResponse{UID: user.UID, Name: user.Name}
	if user.ID != nil {
		resp.ID = user.ID.String()
	}
	return resp
}

// NewListingResponse maps a domain listing onto its DTO. The seller display
// info comes from the users map; a missing entry leaves a bare seller ID.
func NewListingResponse(listing *domain.Listing, users map[string]*domain.User) *ListingResponse {
	resp := &ListingResponse{
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Category:    listing.Category,
		Images:      listing.Images,
		Condition:   listing.Condition,
		Location:    listing.Location,
		Seller:      lookupUser(users, listing.Seller),
		IsAvailable: listing.IsAvailable,
	}
	if listing.ID != nil {
		resp.ID = listing.ID.String()
	}
	if listing.CreatedAt != nil {
		resp.CreatedAt = listing.CreatedAt.Time
	}
	return resp
}

// NewMessageResponse maps a domain message onto its DTO.
func NewMessageResponse(msg *domain.Message, users map[string]*domain.User) MessageResponse {
	resp := MessageResponse{
		Text:   msg.Text,
		Sender: lookupUser(users, msg.Sender),
	}
	if msg.ID != nil {
		resp.ID = msg.ID.String()
	}
	if msg.Conversation != nil {
		resp.ConversationID = msg.Conversation.String()
	}
	if msg.CreatedAt != nil {
		resp.CreatedAt = msg.CreatedAt.Time
	}
	return resp
}

// lookupUser resolves a user reference against the display-info map. When
// the user record is gone the DTO still carries the stable ID.
func lookupUser(users map[string]*domain.User, id *surrealmodels.RecordID) *UserResponse {
	if id == nil {
		return nil
	}
	if user, ok := users[id.String()]; ok {
		return NewUserResponse(user)
	}
	return &UserResponse{ID: id.String()}
}
