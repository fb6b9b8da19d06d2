package server

import (
	"net/http"
	"time"

	"github.com/Manav-Nocode/campus-app/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()
	requireAuth := middleware.Auth(s.tokens)

	// Public routes. Signup and login are rate limited to slow down
	// credential stuffing.
	s.E.POST("/auth/signup", s.authHandler.SignupPost, rateLimiter)
	s.E.POST("/auth/login", s.authHandler.LoginPost, rateLimiter)
	s.E.GET("/listings", s.listingHandler.ListGet)

	// Authenticated routes.
	s.E.POST("/listings", s.listingHandler.CreatePost, requireAuth)
	s.E.POST("/chat/start", s.chatHandler.StartPost, requireAuth)
	s.E.POST("/chat/:conversationId/messages", s.chatHandler.MessagePost, requireAuth)
	s.E.GET("/chat/:conversationId/messages", s.chatHandler.MessagesGet, requireAuth)

	s.E.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
