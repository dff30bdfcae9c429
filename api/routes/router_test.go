package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/lavka-market/lavka-backend/pkg/auth"
	"github.com/lavka-market/lavka-backend/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "lavka-test",
			ExpirationMinutes: 15,
		},
		Admin: config.AdminConfig{APIKey: "test-admin-key"},
	}
}

func get(handler http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPublicRouter_HealthOpen(t *testing.T) {
	router := NewPublicRouter(PublicDeps{Config: testConfig()})
	rec := get(router, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicRouter_CatalogOpen(t *testing.T) {
	router := NewPublicRouter(PublicDeps{Config: testConfig()})
	rec := get(router, "/api/v1/catalog/categories", nil)
	// nil service means 500, but the route must not demand auth
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
	assert.NotEqual(t, http.StatusNotFound, rec.Code)
}

func TestPublicRouter_CartRequiresAuth(t *testing.T) {
	router := NewPublicRouter(PublicDeps{Config: testConfig()})
	rec := get(router, "/api/v1/cart/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPublicRouter_AcceptsMintedToken(t *testing.T) {
	cfg := testConfig()
	router := NewPublicRouter(PublicDeps{Config: cfg})

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "alice@example.com",
		JTI:    uuid.NewString(),
	})
	require.NoError(t, err)

	rec := get(router, "/api/v1/me/", map[string]string{"Authorization": "Bearer " + token})
	// nil users service answers 500; auth must already have passed
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestPublicRouter_SimulatePaymentGated(t *testing.T) {
	target := "/api/v1/orders/" + uuid.NewString() + "/simulate-payment"

	cfg := testConfig()
	router := NewPublicRouter(PublicDeps{Config: cfg})
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code, "dev endpoint hidden by default")

	cfg = testConfig()
	cfg.FeatureFlags.EnableDevEndpoints = true
	router = NewPublicRouter(PublicDeps{Config: cfg})
	req = httptest.NewRequest(http.MethodPost, target, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "registered but still behind auth")
}

func TestAdminRouter_RequiresKey(t *testing.T) {
	router := NewAdminRouter(AdminDeps{Config: testConfig()})

	rec := get(router, "/api/admin/v1/orders/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(router, "/api/admin/v1/orders/", map[string]string{"X-Admin-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(router, "/api/admin/v1/orders/", map[string]string{"X-Admin-Key": "test-admin-key"})
	assert.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRouter_HealthOpen(t *testing.T) {
	router := NewAdminRouter(AdminDeps{Config: testConfig()})
	rec := get(router, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
