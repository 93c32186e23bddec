package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// identityKey is where the gate stashes the verified token subject.
const identityKey = "admin_username"

// tokenAuth is the authorization gate for mutating endpoints. It runs
// strictly before any repository call: a missing, malformed, invalid or
// expired bearer token stops the request at 401.
func (h *Handler) tokenAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", nil)
		}
		subject, err := h.tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			zap.L().Info("adminapi: rejected token", zap.Error(err))
			return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated", nil)
		}
		c.Set(identityKey, subject)
		return next(c)
	}
}

// Identity returns the authenticated admin username set by the gate.
func Identity(c echo.Context) string {
	if v, ok := c.Get(identityKey).(string); ok {
		return v
	}
	return ""
}
