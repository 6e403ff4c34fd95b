package public

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halotrubus/internal/authz"
	"github.com/halotrubus/internal/catalog"
	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/models"
	"github.com/halotrubus/internal/provider"
	"github.com/halotrubus/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

type sessionPayload struct {
	Outcome  session.Outcome         `json:"outcome"`
	Booking  *session.BookingRequest `json:"booking"`
	Snapshot sessionSnapshot         `json:"snapshot"`
}

// 快照中测试关心的字段
type sessionSnapshot struct {
	Tab         string `json:"tab"`
	Category    string `json:"category"`
	SearchQuery string `json:"search_query"`
	Overlay     struct {
		Kind     string `json:"kind"`
		Restores string `json:"restores"`
		Booking  *struct {
			State string `json:"state"`
		} `json:"booking"`
	} `json:"overlay"`
	Cart struct {
		ItemCount      int    `json:"item_count"`
		TotalFormatted string `json:"total_formatted"`
	} `json:"cart"`
	Auth struct {
		Authenticated bool   `json:"authenticated"`
		Role          string `json:"role"`
	} `json:"auth"`
}

func setupPublicHandlerTest(t *testing.T) *Handler {
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
	container, err := provider.NewContainerWithDB(cfg, db)
	if err != nil {
		t.Fatalf("build container failed: %v", err)
	}
	return New(container)
}

func newSessionID(t *testing.T, h *Handler) string {
	t.Helper()
	ticket, err := h.SessionService.Create(context.Background())
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	return ticket.SessionID
}

// serve 调用处理器；sessionID 为空表示未携带会话
func serve(t *testing.T, handler gin.HandlerFunc, method, target, sessionID string, body interface{}, params ...gin.Param) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if sessionID != "" {
		c.Set(constants.ContextKeySessionID, sessionID)
	}
	handler(c)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected http status: %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func decodeSession(t *testing.T, resp envelope) sessionPayload {
	t.Helper()
	if resp.StatusCode != 0 {
		t.Fatalf("unexpected status code: %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var payload sessionPayload
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("decode session payload failed: %v", err)
	}
	return payload
}

func TestGetHomeFeed(t *testing.T) {
	h := setupPublicHandlerTest(t)
	resp := serve(t, h.GetHomeFeed, http.MethodGet, "/api/v1/public/home", "", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
	var feed struct {
		FeaturedProducts []models.Product `json:"featured_products"`
		LatestArticles   []models.Article `json:"latest_articles"`
	}
	if err := json.Unmarshal(resp.Data, &feed); err != nil {
		t.Fatalf("decode feed failed: %v", err)
	}
	if len(feed.FeaturedProducts) == 0 || len(feed.LatestArticles) != 4 {
		t.Fatalf("unexpected feed: products=%d articles=%d", len(feed.FeaturedProducts), len(feed.LatestArticles))
	}
}

func TestGetProductNotFound(t *testing.T) {
	h := setupPublicHandlerTest(t)
	resp := serve(t, h.GetProduct, http.MethodGet, "/api/v1/public/products/p-999", "", nil, gin.Param{Key: "id", Value: "p-999"})
	if resp.StatusCode != 404 {
		t.Fatalf("want 404 got %d", resp.StatusCode)
	}
}

func TestGetExpertIncludesQuotes(t *testing.T) {
	h := setupPublicHandlerTest(t)
	resp := serve(t, h.GetExpert, http.MethodGet, "/api/v1/public/experts/e-001", "", nil, gin.Param{Key: "id", Value: "e-001"})
	if resp.StatusCode != 0 {
		t.Fatalf("unexpected status code: %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var detail ExpertDetailResponse
	if err := json.Unmarshal(resp.Data, &detail); err != nil {
		t.Fatalf("decode detail failed: %v", err)
	}
	if len(detail.Quotes) != 2 || detail.Quotes[0].Kind != constants.ConsultationKindChat {
		t.Fatalf("unexpected quotes: %+v", detail.Quotes)
	}
}

func TestListCategoriesRejectsUnknownScope(t *testing.T) {
	h := setupPublicHandlerTest(t)
	resp := serve(t, h.ListCategories, http.MethodGet, "/api/v1/public/categories?scope=nope", "", nil)
	if resp.StatusCode != 400 {
		t.Fatalf("want 400 got %d", resp.StatusCode)
	}
	resp = serve(t, h.ListCategories, http.MethodGet, "/api/v1/public/categories?scope=article", "", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("article scope should succeed, got %d", resp.StatusCode)
	}
}

func TestListProductsPagination(t *testing.T) {
	h := setupPublicHandlerTest(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/public/products?page=1&page_size=2", nil)
	h.ListProducts(c)

	var resp struct {
		StatusCode int              `json:"status_code"`
		Data       []models.Product `json:"data"`
		Pagination struct {
			PageSize int   `json:"page_size"`
			Total    int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.StatusCode != 0 || len(resp.Data) != 2 || resp.Pagination.PageSize != 2 {
		t.Fatalf("unexpected page: %+v", resp)
	}
	if resp.Pagination.Total <= 2 {
		t.Fatalf("total should count all products, got %d", resp.Pagination.Total)
	}
}

func TestSessionRequiresSessionID(t *testing.T) {
	h := setupPublicHandlerTest(t)
	resp := serve(t, h.GetSession, http.MethodGet, "/api/v1/session", "", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("want 401 got %d", resp.StatusCode)
	}
	resp = serve(t, h.GetSession, http.MethodGet, "/api/v1/session", "missing", nil)
	if resp.StatusCode != 401 {
		t.Fatalf("unknown session want 401 got %d", resp.StatusCode)
	}
}

func TestNavigationHandlers(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)

	resp := serve(t, h.SwitchTab, http.MethodPost, "/api/v1/session/navigation/tab", id, TabRequest{Tab: "galaxy"})
	if resp.StatusCode != 400 {
		t.Fatalf("invalid tab want 400 got %d", resp.StatusCode)
	}

	payload := decodeSession(t, serve(t, h.ClickCategory, http.MethodPost, "/api/v1/session/navigation/category", id, CategoryRequest{Category: "Pupuk"}))
	if payload.Snapshot.Tab != constants.TabShop || payload.Snapshot.Category != "Pupuk" {
		t.Fatalf("category click should open shop: %+v", payload.Snapshot)
	}

	payload = decodeSession(t, serve(t, h.SetSearchQuery, http.MethodPost, "/api/v1/session/navigation/search", id, SearchRequest{Query: "benih"}))
	if payload.Snapshot.SearchQuery != "benih" {
		t.Fatalf("search query not stored: %+v", payload.Snapshot)
	}

	payload = decodeSession(t, serve(t, h.SwitchTab, http.MethodPost, "/api/v1/session/navigation/tab", id, TabRequest{Tab: constants.TabArticles}))
	if payload.Snapshot.Category != "" || payload.Snapshot.SearchQuery != "benih" {
		t.Fatalf("leaving shop should clear category only: %+v", payload.Snapshot)
	}
}

func TestCartCheckoutGate(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)

	payload := decodeSession(t, serve(t, h.AddCartItem, http.MethodPost, "/api/v1/session/cart/items", id, AddCartItemRequest{ProductID: "p-001", Quantity: 2}))
	if payload.Snapshot.Cart.ItemCount != 2 || payload.Snapshot.Overlay.Kind != constants.OverlaySuccess {
		t.Fatalf("unexpected cart: %+v", payload.Snapshot)
	}

	payload = decodeSession(t, serve(t, h.Checkout, http.MethodPost, "/api/v1/session/cart/checkout", id, nil))
	if payload.Outcome != session.OutcomeAuthRequired || payload.Snapshot.Overlay.Kind != constants.OverlayAuth {
		t.Fatalf("unauthenticated checkout should redirect to auth: %+v", payload)
	}
	if payload.Snapshot.Cart.ItemCount != 2 {
		t.Fatalf("cart should be kept, got %d", payload.Snapshot.Cart.ItemCount)
	}

	payload = decodeSession(t, serve(t, h.Login, http.MethodPost, "/api/v1/session/auth/login", id, LoginRequest{Email: "budi@example.com", Password: "x"}))
	if !payload.Snapshot.Auth.Authenticated || payload.Snapshot.Overlay.Kind != constants.OverlayNone {
		t.Fatalf("login should authenticate and close auth overlay: %+v", payload.Snapshot)
	}

	payload = decodeSession(t, serve(t, h.Checkout, http.MethodPost, "/api/v1/session/cart/checkout", id, nil))
	if payload.Outcome != session.OutcomeCompleted || payload.Snapshot.Cart.ItemCount != 0 {
		t.Fatalf("checkout should clear cart: %+v", payload)
	}

	resp := serve(t, h.AddCartItem, http.MethodPost, "/api/v1/session/cart/items", id, AddCartItemRequest{ProductID: "p-999"})
	if resp.StatusCode != 404 {
		t.Fatalf("unknown product want 404 got %d", resp.StatusCode)
	}

	resp = serve(t, h.ListGateAudit, http.MethodGet, "/api/v1/session/gate-audit", id, nil)
	var logs []models.GateAuditLog
	if err := json.Unmarshal(resp.Data, &logs); err != nil {
		t.Fatalf("decode gate audit failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Intent != constants.IntentCheckout || !logs[0].Allowed {
		t.Fatalf("authenticated checkout should be audited once: %+v", logs)
	}
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)
	decodeSession(t, serve(t, h.AddCartItem, http.MethodPost, "/api/v1/session/cart/items", id, AddCartItemRequest{ProductID: "p-001"}))

	param := gin.Param{Key: "product_id", Value: "p-001"}
	payload := decodeSession(t, serve(t, h.UpdateCartItem, http.MethodPut, "/api/v1/session/cart/items/p-001", id, UpdateCartItemRequest{Quantity: 5}, param))
	if payload.Snapshot.Cart.ItemCount != 5 {
		t.Fatalf("quantity want 5 got %d", payload.Snapshot.Cart.ItemCount)
	}
	payload = decodeSession(t, serve(t, h.RemoveCartItem, http.MethodDelete, "/api/v1/session/cart/items/p-001", id, nil, param))
	if payload.Snapshot.Cart.ItemCount != 0 {
		t.Fatalf("item should be removed, got %d", payload.Snapshot.Cart.ItemCount)
	}
}

func TestBookingWizardHandlers(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)

	resp := serve(t, h.AdvanceBooking, http.MethodPost, "/api/v1/session/booking/advance", id, nil)
	if resp.StatusCode != 400 {
		t.Fatalf("advance without wizard want 400 got %d", resp.StatusCode)
	}

	decodeSession(t, serve(t, h.Login, http.MethodPost, "/api/v1/session/auth/login", id, LoginRequest{Email: "sari@example.com"}))
	payload := decodeSession(t, serve(t, h.OpenOverlay, http.MethodPost, "/api/v1/session/overlay", id, gin.H{"kind": constants.OverlayBooking, "target_id": "e-001"}))
	if payload.Snapshot.Overlay.Kind != constants.OverlayBooking || payload.Snapshot.Overlay.Booking == nil {
		t.Fatalf("booking overlay should open: %+v", payload.Snapshot.Overlay)
	}

	decodeSession(t, serve(t, h.SelectBookingKind, http.MethodPost, "/api/v1/session/booking/kind", id, BookingKindRequest{Kind: constants.ConsultationKindChat}))
	decodeSession(t, serve(t, h.AdvanceBooking, http.MethodPost, "/api/v1/session/booking/advance", id, nil))
	payload = decodeSession(t, serve(t, h.SubmitBooking, http.MethodPost, "/api/v1/session/booking/submit", id, nil))
	if payload.Outcome != session.OutcomeCompleted || payload.Booking == nil {
		t.Fatalf("chat booking should complete: %+v", payload)
	}
	if payload.Booking.Date != constants.InstantDateLabel || payload.Booking.Status != constants.ConsultationStatusActive {
		t.Fatalf("unexpected chat booking: %+v", payload.Booking)
	}

	resp = serve(t, h.GetHistory, http.MethodGet, "/api/v1/session/history", id, nil)
	var history []session.BookingRequest
	if err := json.Unmarshal(resp.Data, &history); err != nil {
		t.Fatalf("decode history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history want 1 got %d", len(history))
	}
}

func TestDirectBookingRequiresAuth(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)

	req := DirectBookingRequest{ExpertID: "e-001", Kind: constants.ConsultationKindCall, Date: "17 Oktober 2026", Time: "10:00"}
	payload := decodeSession(t, serve(t, h.DirectBooking, http.MethodPost, "/api/v1/session/booking/direct", id, req))
	if payload.Outcome != session.OutcomeAuthRequired || payload.Snapshot.Overlay.Kind != constants.OverlayAuth {
		t.Fatalf("direct booking should redirect to auth: %+v", payload)
	}

	resp := serve(t, h.DirectBooking, http.MethodPost, "/api/v1/session/booking/direct", id, DirectBookingRequest{ExpertID: "e-001", Kind: "hologram"})
	if resp.StatusCode != 400 {
		t.Fatalf("unsupported kind want 400 got %d", resp.StatusCode)
	}

	decodeSession(t, serve(t, h.Login, http.MethodPost, "/api/v1/session/auth/login", id, LoginRequest{Email: "sari@example.com"}))
	payload = decodeSession(t, serve(t, h.DirectBooking, http.MethodPost, "/api/v1/session/booking/direct", id, req))
	if payload.Outcome != session.OutcomeCompleted || payload.Booking == nil || payload.Booking.Status != constants.ConsultationStatusPaid {
		t.Fatalf("direct booking should complete: %+v", payload)
	}
}

func TestDirectBookingScheduleRules(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)
	decodeSession(t, serve(t, h.Login, http.MethodPost, "/api/v1/session/auth/login", id, LoginRequest{Email: "sari@example.com"}))

	rejected := []struct {
		name string
		req  DirectBookingRequest
		msg  string
	}{
		{name: "call without schedule", req: DirectBookingRequest{ExpertID: "e-001", Kind: constants.ConsultationKindCall}, msg: "error.schedule_incomplete"},
		{name: "call without time", req: DirectBookingRequest{ExpertID: "e-001", Kind: constants.ConsultationKindCall, Date: "17 Oktober 2026"}, msg: "error.schedule_incomplete"},
		{name: "chat with offline expert", req: DirectBookingRequest{ExpertID: "e-002", Kind: constants.ConsultationKindChat}, msg: "error.expert_offline"},
	}
	for _, tc := range rejected {
		resp := serve(t, h.DirectBooking, http.MethodPost, "/api/v1/session/booking/direct?lang=en", id, tc.req)
		if resp.StatusCode != 400 {
			t.Fatalf("%s: want 400 got %d (%s)", tc.name, resp.StatusCode, resp.Msg)
		}
		if resp.Msg == "" || resp.Msg == tc.msg {
			t.Fatalf("%s: message should be translated, got %q", tc.name, resp.Msg)
		}
	}

	req := DirectBookingRequest{ExpertID: "e-001", Kind: constants.ConsultationKindChat, Date: "20 Oktober 2026", Time: "19:00"}
	payload := decodeSession(t, serve(t, h.DirectBooking, http.MethodPost, "/api/v1/session/booking/direct", id, req))
	if payload.Outcome != session.OutcomeCompleted || payload.Booking == nil {
		t.Fatalf("chat booking should complete: %+v", payload)
	}
	b := payload.Booking
	if b.Date != constants.InstantDateLabel || b.Time != constants.InstantTimeLabel || b.Status != constants.ConsultationStatusActive {
		t.Fatalf("chat booking should use instant labels: %+v", b)
	}
}

func TestRegisterAndRole(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)

	payload := decodeSession(t, serve(t, h.Register, http.MethodPost, "/api/v1/session/auth/register", id, RegisterRequest{
		Name:     "Sari Dewi",
		Email:    "sari@example.com",
		Password: "rahasia123",
		Role:     constants.RoleExpert,
	}))
	if payload.Snapshot.Auth.Authenticated || payload.Snapshot.Auth.Role != constants.RoleExpert {
		t.Fatalf("register should not authenticate: %+v", payload.Snapshot.Auth)
	}

	resp := serve(t, h.SetRole, http.MethodPut, "/api/v1/session/profile/role", id, RoleRequest{Role: "admin"})
	if resp.StatusCode != 400 {
		t.Fatalf("invalid role want 400 got %d", resp.StatusCode)
	}
	payload = decodeSession(t, serve(t, h.SetRole, http.MethodPut, "/api/v1/session/profile/role", id, RoleRequest{Role: constants.RoleConsumer}))
	if payload.Snapshot.Auth.Role != constants.RoleConsumer {
		t.Fatalf("role want consumer got %s", payload.Snapshot.Auth.Role)
	}
}

func TestOpenOverlayRejectsUnknownKind(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)
	resp := serve(t, h.OpenOverlay, http.MethodPost, "/api/v1/session/overlay", id, OverlayRequest{Kind: "modal"})
	if resp.StatusCode != 400 {
		t.Fatalf("want 400 got %d", resp.StatusCode)
	}
	payload := decodeSession(t, serve(t, h.OpenOverlay, http.MethodPost, "/api/v1/session/overlay", id, OverlayRequest{Kind: constants.OverlayCart}))
	if payload.Snapshot.Overlay.Kind != constants.OverlayCart {
		t.Fatalf("cart overlay should open: %+v", payload.Snapshot.Overlay)
	}
	payload = decodeSession(t, serve(t, h.OpenOverlay, http.MethodPost, "/api/v1/session/overlay", id, gin.H{"kind": constants.OverlayProductDetail, "target_id": "p-001"}))
	if payload.Snapshot.Overlay.Kind != constants.OverlayProductDetail {
		t.Fatalf("product detail should open from target_id: %+v", payload.Snapshot.Overlay)
	}
	payload = decodeSession(t, serve(t, h.CloseOverlay, http.MethodPost, "/api/v1/session/overlay/close", id, nil))
	if payload.Snapshot.Overlay.Kind != constants.OverlayNone {
		t.Fatalf("overlay should close: %+v", payload.Snapshot.Overlay)
	}
}

func TestListGatePolicies(t *testing.T) {
	h := setupPublicHandlerTest(t)
	resp := serve(t, h.ListGatePolicies, http.MethodGet, "/api/v1/public/gate-policies", "", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("want 0 got %d", resp.StatusCode)
	}
	var roles []authz.RolePolicies
	if err := json.Unmarshal(resp.Data, &roles); err != nil {
		t.Fatalf("decode policies failed: %v", err)
	}
	byRole := make(map[string]authz.RolePolicies, len(roles))
	for _, role := range roles {
		byRole[role.Role] = role
	}
	consumer, ok := byRole["role:consumer"]
	if !ok || len(consumer.Policies) != 2 {
		t.Fatalf("consumer should be allowed checkout and booking: %+v", roles)
	}
	if expert := byRole["role:expert"]; len(expert.Inherits) != 1 || expert.Inherits[0] != "role:consumer" {
		t.Fatalf("expert should inherit consumer: %+v", expert)
	}
}

func TestCloseSession(t *testing.T) {
	h := setupPublicHandlerTest(t)
	id := newSessionID(t, h)
	resp := serve(t, h.CloseSession, http.MethodDelete, "/api/v1/session", id, nil)
	if resp.StatusCode != 0 {
		t.Fatalf("close want 0 got %d", resp.StatusCode)
	}
	resp = serve(t, h.GetSession, http.MethodGet, "/api/v1/session", id, nil)
	if resp.StatusCode != 401 {
		t.Fatalf("closed session want 401 got %d", resp.StatusCode)
	}
}
