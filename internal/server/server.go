package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/Manav-Nocode/campus-app/internal/auth"
	"github.com/Manav-Nocode/campus-app/internal/config"
	"github.com/Manav-Nocode/campus-app/internal/database"
	"github.com/Manav-Nocode/campus-app/internal/handlers"
	"github.com/Manav-Nocode/campus-app/internal/logging"
	appmiddleware "github.com/Manav-Nocode/campus-app/internal/middleware"
	"github.com/Manav-Nocode/campus-app/internal/pubsub"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/surrealdb/surrealdb.go"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E      *echo.Echo
	DB     *surrealdb.DB
	Cfg    *config.Config
	Bridge *pubsub.WatermillBridge

	tokens         *auth.TokenManager
	authHandler    *handlers.AuthHandler
	listingHandler *handlers.ListingHandler
	chatHandler    *handlers.ChatHandler
}

// New creates a new Server instance with all dependencies wired up.
func New() *Server {
	logging.New()

	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.DefineSchema(ctx, db); err != nil {
		slog.Error("Failed to apply database schema", "error", err)
		os.Exit(1)
	}

	userStore := database.NewUserStore(db)
	listingStore := database.NewListingStore(db)
	conversationStore := database.NewConversationStore(db)
	messageStore := database.NewMessageStore(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	bridge := pubsub.NewWatermillBridge()
	subscribeActivityLog(ctx, bridge)

	e := newEcho()

	return &Server{
		E:              e,
		DB:             db,
		Cfg:            cfg,
		Bridge:         bridge,
		tokens:         tokens,
		authHandler:    handlers.NewAuthHandler(userStore, tokens, hasher),
		listingHandler: handlers.NewListingHandler(listingStore, userStore),
		chatHandler:    handlers.NewChatHandler(conversationStore, messageStore, listingStore, userStore, bridge),
	}
}

// newEcho builds the echo instance with the shared middleware chain. The
// browser client is served from another origin, so CORS headers are part
// of the baseline chain.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(appmiddleware.Logger)
	return e
}

// subscribeActivityLog attaches the built-in consumer for message-posted
// events. It only logs today; notifiers and unread counters would hang off
// the same topic.
func subscribeActivityLog(ctx context.Context, bridge *pubsub.WatermillBridge) {
	err := bridge.Subscribe(ctx, pubsub.TopicMessagePosted, func(ctx context.Context, msg pubsub.Message) error {
		slog.Info("Message posted",
			"user_id", msg.UserID,
			"conversation_id", msg.Metadata["conversation_id"],
		)
		return nil
	})
	if err != nil {
		slog.Error("Failed to subscribe to message events", "error", err)
	}
}
