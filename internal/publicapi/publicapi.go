// Package publicapi serves the unauthenticated storefront endpoints:
// active-only catalog reads, category lists and WhatsApp deep links.
package publicapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/internal/catalog"
	"github.com/kalai-medical/kalaiapi/internal/whatsapp"
)

type Handler struct {
	products   *catalog.Products
	treatments *catalog.Treatments
	links      *whatsapp.LinkBuilder
}

func New(products *catalog.Products, treatments *catalog.Treatments, links *whatsapp.LinkBuilder) *Handler {
	return &Handler{products: products, treatments: treatments, links: links}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/products", h.listProducts)
	g.GET("/products/categories", h.productCategories)
	g.GET("/products/:id", h.getProduct)
	// legacy path kept for the storefront
	g.GET("/categories", h.productCategories)

	g.GET("/treatments", h.listTreatments)
	g.GET("/treatments/categories", h.treatmentCategories)
	g.GET("/treatments/:id", h.getTreatment)

	g.GET("/whatsapp-link/:id", h.productWhatsappLink)
	g.GET("/whatsapp-treatment/:id", h.treatmentWhatsappLink)
}

// publicFilter reads the shared query parameters. Listings are
// active-only unless active_only=false is passed explicitly.
func publicFilter(c echo.Context) catalog.Filter {
	filter := catalog.Filter{ActiveOnly: true, Category: c.QueryParam("category")}
	if raw := c.QueryParam("active_only"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.ActiveOnly = v
		}
	}
	return filter
}

func (h *Handler) listProducts(c echo.Context) error {
	rows, err := h.products.List(c.Request().Context(), publicFilter(c))
	if err != nil {
		return failFromErr(c, err, "products")
	}
	return ok(c, rows)
}

func (h *Handler) getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return failFromErr(c, err, "product")
	}
	return ok(c, p)
}

func (h *Handler) productCategories(c echo.Context) error {
	cats, err := h.products.Categories(c.Request().Context())
	if err != nil {
		return failFromErr(c, err, "categories")
	}
	return ok(c, map[string]interface{}{"categories": cats})
}

func (h *Handler) listTreatments(c echo.Context) error {
	rows, err := h.treatments.List(c.Request().Context(), publicFilter(c))
	if err != nil {
		return failFromErr(c, err, "treatments")
	}
	return ok(c, rows)
}

func (h *Handler) getTreatment(c echo.Context) error {
	t, err := h.treatments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFromErr(c, err, "treatment")
	}
	return ok(c, t)
}

func (h *Handler) treatmentCategories(c echo.Context) error {
	cats, err := h.treatments.Categories(c.Request().Context())
	if err != nil {
		return failFromErr(c, err, "categories")
	}
	return ok(c, map[string]interface{}{"categories": cats})
}

func (h *Handler) productWhatsappLink(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return failFromErr(c, err, "product")
	}
	return ok(c, map[string]interface{}{
		"whatsapp_link": h.links.ProductLink(p.Name, p.Price),
		"product_name":  p.Name,
		"phone_number":  h.links.Phone(),
	})
}

func (h *Handler) treatmentWhatsappLink(c echo.Context) error {
	t, err := h.treatments.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failFromErr(c, err, "treatment")
	}
	return ok(c, map[string]interface{}{
		"whatsapp_link":  h.links.TreatmentLink(t.Name, t.Price),
		"treatment_name": t.Name,
		"phone_number":   h.links.Phone(),
	})
}

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

func failFromErr(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
	default:
		zap.L().Error("publicapi: store operation failed", zap.String("resource", resource), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to fetch "+resource, nil)
	}
}
