package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halotrubus/internal/catalog"
	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := viper.New()
	config.SetDefaults(v)
	cfg, err := config.Decode(v)
	if err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	cfg.Catalog.CacheTTLSeconds = 0

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	ds, err := catalog.Default()
	if err != nil {
		t.Fatalf("load dataset failed: %v", err)
	}
	if err := catalog.Seed(db, ds); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	c, err := provider.NewContainerWithDB(cfg, db)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}
	return SetupRouter(cfg, c)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) map[string]interface{} {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: http status %d", method, path, w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode %s %s failed: %v", method, path, err)
	}
	return resp
}

func statusCode(resp map[string]interface{}) int {
	code, _ := resp["status_code"].(float64)
	return int(code)
}

func TestSessionLifecycleThroughRouter(t *testing.T) {
	r := setupRouterTest(t)

	resp := doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", "")
	if statusCode(resp) != 0 {
		t.Fatalf("create session failed: %v", resp)
	}
	data := resp["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("token should be issued: %v", data)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/v1/session", "", "")
	if statusCode(resp) != 401 {
		t.Fatalf("missing token want 401 got %d", statusCode(resp))
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/session/cart/items", token, `{"product_id":"p-001","quantity":2}`)
	if statusCode(resp) != 0 {
		t.Fatalf("add to cart failed: %v", resp)
	}
	resp = doJSON(t, r, http.MethodPost, "/api/v1/session/cart/checkout", token, "")
	outcome := resp["data"].(map[string]interface{})["outcome"]
	if outcome != "auth_required" {
		t.Fatalf("checkout outcome want auth_required got %v", outcome)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/v1/session/auth/login", token, `{"email":"budi@example.com","password":"x"}`)
	if statusCode(resp) != 0 {
		t.Fatalf("login failed: %v", resp)
	}
	resp = doJSON(t, r, http.MethodPost, "/api/v1/session/cart/checkout", token, "")
	outcome = resp["data"].(map[string]interface{})["outcome"]
	if outcome != "completed" {
		t.Fatalf("checkout outcome want completed got %v", outcome)
	}

	resp = doJSON(t, r, http.MethodDelete, "/api/v1/session", token, "")
	if statusCode(resp) != 0 {
		t.Fatalf("close session failed: %v", resp)
	}
	resp = doJSON(t, r, http.MethodGet, "/api/v1/session", token, "")
	if statusCode(resp) != 401 {
		t.Fatalf("closed session want 401 got %d", statusCode(resp))
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	r := setupRouterTest(t)
	for _, path := range []string{
		"/api/v1/public/home",
		"/api/v1/public/products?category=Pupuk",
		"/api/v1/public/experts?online=true",
		"/api/v1/public/articles/overview",
		"/api/v1/public/booking/options",
		"/api/v1/public/gate-policies",
	} {
		resp := doJSON(t, r, http.MethodGet, path, "", "")
		if statusCode(resp) != 0 {
			t.Fatalf("%s failed: %v", path, resp)
		}
	}
}

func TestSessionRouteCatalog(t *testing.T) {
	r := setupRouterTest(t)
	items := buildSessionRouteCatalog(r)
	if len(items) == 0 {
		t.Fatalf("route catalog should not be empty")
	}
	modules := map[string]bool{}
	for _, item := range items {
		if !strings.HasPrefix(item.Object, sessionRoutePrefix) {
			t.Fatalf("unexpected route in catalog: %+v", item)
		}
		modules[item.Module] = true
	}
	for _, want := range []string{"session", "cart", "booking", "auth", "navigation", "overlay", "profile", "history", "gate-audit"} {
		if !modules[want] {
			t.Fatalf("module %s missing from catalog", want)
		}
	}
}

func TestDeriveSessionRouteModule(t *testing.T) {
	cases := map[string]string{
		"/api/v1/session":                        "session",
		"/api/v1/session/cart/items/:product_id": "cart",
		"/api/v1/session/auth/login":             "auth",
	}
	for object, want := range cases {
		if got := deriveSessionRouteModule(object); got != want {
			t.Fatalf("module of %s want %s got %s", object, want, got)
		}
	}
}
