package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/internal/catalog"
	"github.com/kalai-medical/kalaiapi/internal/domain"
)

type treatmentPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

// treatmentUpdatePayload carries no stock field: treatments keep the
// sentinel availability value assigned on create.
type treatmentUpdatePayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *string  `json:"duration"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"is_active"`
}

func (h *Handler) listTreatments(c echo.Context) error {
	rows, err := h.treatments.List(c.Request().Context(), catalog.Filter{})
	if err != nil {
		return failFromErr(c, err, "treatments")
	}
	return ok(c, rows)
}

func (h *Handler) createTreatment(c echo.Context) error {
	var payload treatmentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse treatment", nil)
	}
	t := domain.Treatment{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Duration:    payload.Duration,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		IsActive:    payload.IsActive == nil || *payload.IsActive,
	}
	if err := h.treatments.Create(c.Request().Context(), &t); err != nil {
		return failFromErr(c, err, "treatment")
	}
	zap.L().Info("treatment created", zap.String("id", t.ID), zap.String("admin", Identity(c)))
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) updateTreatment(c echo.Context) error {
	id := c.Param("id")
	var payload treatmentUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse treatment", nil)
	}
	t, err := h.treatments.Update(c.Request().Context(), id, catalog.Changes{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Duration:    payload.Duration,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		return failFromErr(c, err, "treatment")
	}
	return ok(c, t)
}

func (h *Handler) deleteTreatment(c echo.Context) error {
	id := c.Param("id")
	if err := h.treatments.Delete(c.Request().Context(), id); err != nil {
		return failFromErr(c, err, "treatment")
	}
	zap.L().Info("treatment deleted", zap.String("id", id), zap.String("admin", Identity(c)))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) toggleTreatment(c echo.Context) error {
	id := c.Param("id")
	t, err := h.treatments.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return failFromErr(c, err, "treatment")
	}
	return ok(c, t)
}
