// Package adminapi serves the bearer-token-protected management
// endpoints: login, catalog CRUD, visibility toggles and stock edits.
package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/internal/auth"
	"github.com/kalai-medical/kalaiapi/internal/catalog"
)

type Handler struct {
	verifier   *auth.Verifier
	tokens     *auth.TokenService
	products   *catalog.Products
	treatments *catalog.Treatments
}

func New(verifier *auth.Verifier, tokens *auth.TokenService, products *catalog.Products, treatments *catalog.Treatments) *Handler {
	return &Handler{
		verifier:   verifier,
		tokens:     tokens,
		products:   products,
		treatments: treatments,
	}
}

// Register wires the admin routes. Everything except login sits behind
// the bearer-token gate; no handler runs before the gate has accepted
// the request.
func (h *Handler) Register(g *echo.Group) {
	g.POST("/login", h.login)

	sec := g.Group("", h.tokenAuth)
	sec.GET("/products", h.listProducts)
	sec.POST("/products", h.createProduct)
	sec.PUT("/products/:id", h.updateProduct)
	sec.DELETE("/products/:id", h.deleteProduct)
	sec.PATCH("/products/:id/toggle-active", h.toggleProduct)
	sec.PATCH("/products/:id/stock", h.setProductStock)

	sec.GET("/treatments", h.listTreatments)
	sec.POST("/treatments", h.createTreatment)
	sec.PUT("/treatments/:id", h.updateTreatment)
	sec.DELETE("/treatments/:id", h.deleteTreatment)
	sec.PATCH("/treatments/:id/toggle-active", h.toggleTreatment)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// login issues a bearer token for the configured admin identity. The
// response never says whether the username or the password was wrong.
func (h *Handler) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if !h.verifier.Verify(payload.Username, payload.Password) {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Incorrect username or password", nil)
	}
	token, err := h.tokens.Issue(payload.Username)
	if err != nil {
		zap.L().Error("adminapi: token issue failed", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
