package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHealthRoute(t *testing.T) {
	s := &Server{E: newEcho()}
	s.RegisterRoutes()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"timestamp"`)
}

func TestNewEchoCORS(t *testing.T) {
	e := newEcho()
	e.POST("/chat/start", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("answers preflight requests", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/chat/start", nil)
		req.Header.Set(echo.HeaderOrigin, "https://campus-app-five.vercel.app")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("sets the allow-origin header on responses", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/chat/start", nil)
		req.Header.Set(echo.HeaderOrigin, "https://campus-app-five.vercel.app")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})
}
