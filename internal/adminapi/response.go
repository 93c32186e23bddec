package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/internal/catalog"
)

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := map[string]interface{}{"code": code, "message": message}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

// failFromErr maps repository errors onto the HTTP taxonomy: not-found
// and validation are reported precisely, anything else is a store
// failure logged server-side and surfaced without internal detail.
func failFromErr(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
	case catalog.IsValidation(err):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	default:
		zap.L().Error("adminapi: store operation failed", zap.String("resource", resource), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to process "+resource, nil)
	}
}
