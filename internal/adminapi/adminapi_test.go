package adminapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kalai-medical/kalaiapi/internal/auth"
	"github.com/kalai-medical/kalaiapi/internal/catalog"
	"github.com/kalai-medical/kalaiapi/internal/domain"
)

type testEnv struct {
	echo   *echo.Echo
	db     *gorm.DB
	tokens *auth.TokenService
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	tokens := auth.NewTokenService("test-secret")
	h := New(auth.NewVerifier("admin", "kalai2026"), tokens, catalog.NewProducts(db), catalog.NewTreatments(db))

	e := echo.New()
	h.Register(e.Group("/api/admin"))
	return &testEnv{echo: e, db: db, tokens: tokens}
}

func (env *testEnv) request(t *testing.T, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) token(t *testing.T) string {
	t.Helper()
	tok, err := env.tokens.Issue("admin")
	require.NoError(t, err)
	return tok
}

func TestLogin(t *testing.T) {
	env := setup(t)

	rec := env.request(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"kalai2026"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	subject, err := env.tokens.Verify(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestLoginWrongCredentials(t *testing.T) {
	env := setup(t)

	for _, body := range []string{
		`{"username":"admin","password":"wrong"}`,
		`{"username":"intruder","password":"kalai2026"}`,
	} {
		rec := env.request(t, http.MethodPost, "/api/admin/login", body, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Incorrect username or password")
	}
}

func TestGateRejectsWithoutToken(t *testing.T) {
	env := setup(t)

	rec := env.request(t, http.MethodPost, "/api/admin/products", `{"name":"Crema","price":1000,"stock":5}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/admin/products", "", "garbage-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var count int64
	require.NoError(t, env.db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count, "rejected request must not mutate the catalog")
}

func TestCreateProduct(t *testing.T) {
	env := setup(t)
	tok := env.token(t)

	rec := env.request(t, http.MethodPost, "/api/admin/products",
		`{"name":"Crema Solar SPF 50+","description":"Protección solar","price":15000,"stock":25,"category":"proteccion-solar"}`, tok)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.NotZero(t, p.ID)
	assert.True(t, p.IsActive)
}

func TestCreateInactiveProduct(t *testing.T) {
	env := setup(t)
	tok := env.token(t)

	rec := env.request(t, http.MethodPost, "/api/admin/products",
		`{"name":"Producto Oculto","price":1000,"stock":5,"is_active":false}`, tok)
	require.Equal(t, http.StatusCreated, rec.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.False(t, p.IsActive)

	var stored domain.Product
	require.NoError(t, env.db.First(&stored, "id = ?", p.ID).Error)
	assert.False(t, stored.IsActive, "record created inactive must be stored inactive")
}

func TestCreateProductInvalid(t *testing.T) {
	env := setup(t)
	tok := env.token(t)

	rec := env.request(t, http.MethodPost, "/api/admin/products", `{"name":"Crema","price":0,"stock":5}`, tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "price")
}

func TestUpdateProduct(t *testing.T) {
	env := setup(t)
	tok := env.token(t)
	id := env.createProduct(t, tok)

	rec := env.request(t, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", id), `{"price":18000}`, tok)
	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 18000.0, p.Price)
	assert.Equal(t, "Crema Solar SPF 50+", p.Name)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := setup(t)
	tok := env.token(t)

	rec := env.request(t, http.MethodPut, "/api/admin/products/99", `{"price":1000}`, tok)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductTwice(t *testing.T) {
	env := setup(t)
	tok := env.token(t)
	id := env.createProduct(t, tok)

	rec := env.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), "", tok)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", id), "", tok)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleProduct(t *testing.T) {
	env := setup(t)
	tok := env.token(t)
	id := env.createProduct(t, tok)

	rec := env.request(t, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d/toggle-active", id), "", tok)
	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.False(t, p.IsActive)
}

func TestSetProductStock(t *testing.T) {
	env := setup(t)
	tok := env.token(t)
	id := env.createProduct(t, tok)

	rec := env.request(t, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d/stock?new_stock=7", id), "", tok)
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 7, p.Stock)

	// camelCase alias
	rec = env.request(t, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d/stock?newStock=3", id), "", tok)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d/stock?new_stock=-1", id), "", tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.request(t, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d/stock?new_stock=abc", id), "", tok)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTreatment(t *testing.T) {
	env := setup(t)
	tok := env.token(t)

	rec := env.request(t, http.MethodPost, "/api/admin/treatments",
		`{"name":"Hydrafacial","price":35000,"duration":"60 minutos","category":"faciales"}`, tok)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tr domain.Treatment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tr))
	assert.Len(t, tr.ID, 36)
	assert.Equal(t, domain.TreatmentStock, tr.Stock)
	assert.Equal(t, "60 minutos", tr.Duration)
}

func TestListProductsIncludesInactive(t *testing.T) {
	env := setup(t)
	tok := env.token(t)
	id := env.createProduct(t, tok)

	rec := env.request(t, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d/toggle-active", id), "", tok)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/admin/products", "", tok)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 1, "admin listing keeps inactive records visible")
}

func (env *testEnv) createProduct(t *testing.T, token string) int64 {
	t.Helper()
	rec := env.request(t, http.MethodPost, "/api/admin/products",
		`{"name":"Crema Solar SPF 50+","price":15000,"stock":25,"category":"proteccion-solar"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p.ID
}
