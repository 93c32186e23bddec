package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/internal/catalog"
	"github.com/kalai-medical/kalaiapi/internal/domain"
)

type productPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

type productUpdatePayload struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"is_active"`
}

// listProducts returns every product, inactive ones included; admin
// callers see the whole collection.
func (h *Handler) listProducts(c echo.Context) error {
	rows, err := h.products.List(c.Request().Context(), catalog.Filter{})
	if err != nil {
		return failFromErr(c, err, "products")
	}
	return ok(c, rows)
}

func (h *Handler) createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	p := domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		IsActive:    payload.IsActive == nil || *payload.IsActive,
	}
	if err := h.products.Create(c.Request().Context(), &p); err != nil {
		return failFromErr(c, err, "product")
	}
	zap.L().Info("product created", zap.Int64("id", p.ID), zap.String("admin", Identity(c)))
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) updateProduct(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	p, err := h.products.Update(c.Request().Context(), id, catalog.Changes{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		IsActive:    payload.IsActive,
	})
	if err != nil {
		return failFromErr(c, err, "product")
	}
	return ok(c, p)
}

func (h *Handler) deleteProduct(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return failFromErr(c, err, "product")
	}
	zap.L().Info("product deleted", zap.Int64("id", id), zap.String("admin", Identity(c)))
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) toggleProduct(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := h.products.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return failFromErr(c, err, "product")
	}
	return ok(c, p)
}

// setProductStock writes an absolute stock value taken from the
// new_stock query parameter (newStock accepted as an alias).
func (h *Handler) setProductStock(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	raw := c.QueryParam("new_stock")
	if raw == "" {
		raw = c.QueryParam("newStock")
	}
	stock, err := strconv.Atoi(raw)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "new_stock must be an integer", nil)
	}
	p, err := h.products.SetStock(c.Request().Context(), id, stock)
	if err != nil {
		return failFromErr(c, err, "product")
	}
	return ok(c, p)
}

func parseProductID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
