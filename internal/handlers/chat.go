package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/Manav-Nocode/campus-app/internal/middleware"
	"github.com/Manav-Nocode/campus-app/internal/pubsub"
	"github.com/labstack/echo/v4"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// maxMessageRunes caps message text length after trimming, counted in
// characters rather than bytes so multibyte text is not penalized.
const maxMessageRunes = 4000

// ChatHandler handles the conversation and message endpoints. All routes
// require authentication; message routes additionally require the caller
// to be a conversation participant.
type ChatHandler struct {
	conversations domain.ConversationRepository
	messages      domain.MessageRepository
	listings      domain.ListingRepository
	users         domain.UserRepository
	publisher     pubsub.Publisher
}

// NewChatHandler creates a new ChatHandler. The publisher may be nil, in
// which case posted messages simply emit no events.
func NewChatHandler(
	conversations domain.ConversationRepository,
	messages domain.MessageRepository,
	listings domain.ListingRepository,
	users domain.UserRepository,
	publisher pubsub.Publisher,
) *ChatHandler {
	return &ChatHandler{
		conversations: conversations,
		messages:      messages,
		listings:      listings,
		users:         users,
		publisher:     publisher,
	}
}

// StartPost finds or creates the conversation between the caller and the
// seller of a listing. Calling it again for the same listing returns the
// same conversation with its message history, so the client needs no
// separate "does a conversation exist" endpoint.
func (h *ChatHandler) StartPost(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req StartConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "listingId is required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "listingId is required"})
	}

	listingID, err := domain.ParseRecordID(req.ListingID)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Listing not found"})
	}
	listing, err := h.listings.FindByID(ctx, listingID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to look up listing", "error", err, "listing", req.ListingID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
	if listing == nil || listing.Seller == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Listing not found"})
	}

	if listing.Seller.String() == identity.UserID.String() {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "You cannot start a conversation about your own listing"})
	}

	conv, err := h.conversations.FindOrCreate(ctx, listing.ID, *identity.UserID, *listing.Seller)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to find or create conversation", "error", err, "listing", req.ListingID, "caller", identity.UID)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	history, err := h.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load message history", "error", err, "conversation", conv.ID.String())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	users, err := h.participantDirectory(c, conv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	messages := make([]MessageResponse, 0, len(history))
	for _, msg := range history {
		messages = append(messages, NewMessageResponse(msg, users))
	}

	return c.JSON(http.StatusOK, StartConversationResponse{
		ConversationID: conv.ID.String(),
		Listing: ListingSummary{
			ID:     listing.ID.String(),
			Title:  listing.Title,
			Seller: lookupUser(users, listing.Seller),
		},
		Messages: messages,
	})
}

// MessagePost appends a message to a conversation the caller participates in.
func (h *ChatHandler) MessagePost(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	var req PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message text is required"})
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message text is required"})
	}
	if utf8.RuneCountInString(text) > maxMessageRunes {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message text is too long"})
	}

	conv, err := h.authorizeParticipant(c, identity)
	if conv == nil {
		return err
	}

	msg, err := h.messages.Create(ctx, &domain.Message{
		Conversation: conv.ID,
		Sender:       identity.UserID,
		Text:         text,
	})
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to store message", "error", err, "conversation", conv.ID.String())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	users, err := h.participantDirectory(c, conv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
	resp := NewMessageResponse(msg, users)

	h.publishPosted(c, identity, resp)

	return c.JSON(http.StatusCreated, resp)
}

// MessagesGet returns the full message log of a conversation the caller
// participates in, oldest first.
func (h *ChatHandler) MessagesGet(c echo.Context) error {
	ctx := c.Request().Context()

	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return err
	}

	conv, err := h.authorizeParticipant(c, identity)
	if conv == nil {
		return err
	}

	history, err := h.messages.ListByConversation(ctx, conv.ID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load message history", "error", err, "conversation", conv.ID.String())
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	users, err := h.participantDirectory(c, conv)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	resp := make([]MessageResponse, 0, len(history))
	for _, msg := range history {
		resp = append(resp, NewMessageResponse(msg, users))
	}
	return c.JSON(http.StatusOK, resp)
}

// authorizeParticipant resolves the :conversationId path param and checks
// the caller is one of the two participants. Existence is checked before
// membership, so outsiders probing a real conversation ID get 403, not 404.
// A nil conversation means the response was already written; the returned
// error is what the caller should propagate.
func (h *ChatHandler) authorizeParticipant(c echo.Context, identity *middleware.Identity) (*domain.Conversation, error) {
	ctx := c.Request().Context()

	id, err := domain.ParseRecordID(c.Param("conversationId"))
	if err != nil {
		return nil, c.JSON(http.StatusNotFound, ErrorResponse{Error: "Conversation not found"})
	}
	conv, err := h.conversations.FindByID(ctx, id)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to look up conversation", "error", err, "conversation", id.String())
		return nil, c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
	if conv == nil {
		return nil, c.JSON(http.StatusNotFound, ErrorResponse{Error: "Conversation not found"})
	}
	if !conv.HasParticipant(identity.UserID) {
		return nil, c.JSON(http.StatusForbidden, ErrorResponse{Error: "Not part of this conversation"})
	}
	return conv, nil
}

// participantDirectory batch-resolves a conversation's participants into a
// display-info map keyed by record ID.
func (h *ChatHandler) participantDirectory(c echo.Context, conv *domain.Conversation) (map[string]*domain.User, error) {
	ctx := c.Request().Context()

	ids := make([]surrealmodels.RecordID, len(conv.Participants))
	copy(ids, conv.Participants)

	participants, err := h.users.FindByIDs(ctx, ids)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to resolve participants", "error", err)
		return nil, err
	}

	users := make(map[string]*domain.User, len(participants))
	for _, u := range participants {
		if u.ID != nil {
			users[u.ID.String()] = u
		}
	}
	return users, nil
}

// publishPosted emits a message-posted event on the bus. Delivery is
// best-effort: a publish failure is logged and never fails the request.
func (h *ChatHandler) publishPosted(c echo.Context, identity *middleware.Identity, msg MessageResponse) {
	if h.publisher == nil {
		return
	}
	ctx := c.Request().Context()

	payload, err := json.Marshal(msg)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to encode message event", "error", err)
		return
	}
	err = h.publisher.Publish(ctx, pubsub.Message{
		Topic:   pubsub.TopicMessagePosted,
		UserID:  identity.UserID.String(),
		Payload: payload,
		Metadata: map[string]string{
			"conversation_id": msg.ConversationID,
		},
	})
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to publish message event", "error", err)
	}
}
