package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Manav-Nocode/campus-app/internal/auth"
	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/labstack/echo/v4"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// IdentityContextKey is the echo context key under which the resolved
// caller identity is stored.
const IdentityContextKey = "identity"

// Identity is the caller identity resolved from a validated bearer token.
type Identity struct {
	UserID *surrealmodels.RecordID
	UID    string
}

// Auth creates a middleware that protects routes requiring authentication.
// It extracts the bearer token from the Authorization header, validates it,
// and stores the resolved identity on the context for downstream handlers.
// Validation is pure: no session storage, renewal, or revocation.
func Auth(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing auth token")
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					msg = "Token has expired"
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msg)
			}

			userID, err := domain.ParseRecordID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(IdentityContextKey, &Identity{UserID: userID, UID: claims.UID})
			return next(c)
		}
	}
}

// CurrentIdentity retrieves the authenticated caller from the context.
// It returns an error when the route was not protected by Auth.
func CurrentIdentity(c echo.Context) (*Identity, error) {
	identity, ok := c.Get(IdentityContextKey).(*Identity)
	if !ok || identity == nil || identity.UserID == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return identity, nil
}
