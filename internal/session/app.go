package session

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/i18n"
	"github.com/halotrubus/internal/models"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Outcome 受保护操作的结果
type Outcome string

const (
	OutcomeCompleted    Outcome = "completed"
	OutcomeAuthRequired Outcome = "auth_required"
)

// Options App 构造参数，零值字段使用默认值
type Options struct {
	ID           string
	Logger       *zap.SugaredLogger
	Clock        func() time.Time
	Location     *time.Location
	Pricing      PricingPolicy
	ScheduleDays int
	TimeSlots    []string
	Gate         Gate
	Events       EventSink
	Hasher       PasswordHasher
	Locale       string
}

// App 一个应用会话：导航、浮层、购物车、认证与预约向导。
// App 不做并发控制，调用方需保证同一时刻只有一个调用者。
type App struct {
	id           string
	log          *zap.SugaredLogger
	clock        func() time.Time
	location     *time.Location
	pricing      PricingPolicy
	scheduleDays int
	timeSlots    []string
	gate         Gate
	events       EventSink
	hasher       PasswordHasher
	locale       string

	tab      string
	category string
	search   string
	overlay  Overlay
	cart     Cart
	auth     authState
	history  []BookingRequest
}

// New 创建应用会话
func New(opts Options) *App {
	a := &App{
		id:           strings.TrimSpace(opts.ID),
		log:          opts.Logger,
		clock:        opts.Clock,
		location:     opts.Location,
		pricing:      opts.Pricing,
		scheduleDays: opts.ScheduleDays,
		timeSlots:    opts.TimeSlots,
		gate:         opts.Gate,
		events:       opts.Events,
		hasher:       opts.Hasher,
		locale:       opts.Locale,
		tab:          constants.TabHome,
		overlay:      noOverlay(),
	}
	if a.id == "" {
		a.id = uuid.NewString()
	}
	if a.log == nil {
		a.log = zap.NewNop().Sugar()
	}
	if a.clock == nil {
		a.clock = time.Now
	}
	if a.location == nil {
		a.location = time.FixedZone("WIB", 7*60*60)
	}
	if a.hasher == nil {
		a.hasher = BcryptHasher{}
	}
	if a.locale == "" {
		a.locale = i18n.DefaultLocale
	}
	a.auth.reset()
	return a
}

// ID 会话 ID
func (a *App) ID() string {
	return a.id
}

func (a *App) now() time.Time {
	return a.clock().In(a.location)
}

// ---- 导航 ----

// SwitchTab 切换主标签，离开商城时清除分类筛选
func (a *App) SwitchTab(tab string) error {
	switch tab {
	case constants.TabHome, constants.TabShop, constants.TabConsult, constants.TabArticles, constants.TabProfile:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidTab, tab)
	}
	a.tab = tab
	if tab != constants.TabShop {
		a.category = ""
	}
	a.log.Debugw("tab_switched", "tab", tab)
	return nil
}

// ViewAll "查看全部"入口
func (a *App) ViewAll(tab string) error {
	return a.SwitchTab(tab)
}

// ClickCategory 从首页点击分类，跳转商城并带上分类
func (a *App) ClickCategory(category string) {
	a.category = strings.TrimSpace(category)
	a.tab = constants.TabShop
	a.log.Debugw("category_clicked", "category", a.category)
}

// SetCategory 商城内切换分类
func (a *App) SetCategory(category string) {
	if a.tab != constants.TabShop {
		return
	}
	a.category = strings.TrimSpace(category)
}

// SetSearchQuery 更新首页与商城共享的搜索词
func (a *App) SetSearchQuery(query string) {
	a.search = query
}

// SearchClick 点击首页搜索栏进入商城
func (a *App) SearchClick() {
	_ = a.SwitchTab(constants.TabShop)
}

// Tab 当前标签
func (a *App) Tab() string {
	return a.tab
}

// Category 当前分类筛选
func (a *App) Category() string {
	return a.category
}

// SearchQuery 当前搜索词
func (a *App) SearchQuery() string {
	return a.search
}

// ---- 浮层 ----

// Overlay 当前浮层
func (a *App) Overlay() Overlay {
	return a.overlay
}

func (a *App) setOverlay(next Overlay) {
	prev := a.overlay.Kind
	a.overlay = next
	if prev != next.Kind {
		a.log.Debugw("overlay_changed", "from", prev, "to", next.Kind)
	}
}

// OpenCart 打开购物车
func (a *App) OpenCart() {
	a.setOverlay(Overlay{Kind: constants.OverlayCart})
}

// OpenProduct 打开商品详情
func (a *App) OpenProduct(product models.Product) {
	a.setOverlay(Overlay{Kind: constants.OverlayProductDetail, Product: &product})
}

// OpenExpert 打开专家详情并开始新的预约向导
func (a *App) OpenExpert(expert models.Expert) {
	schedule := BuildSchedule(a.now(), a.scheduleDays, a.timeSlots)
	a.setOverlay(Overlay{
		Kind:   constants.OverlayBooking,
		Expert: &expert,
		Wizard: NewWizard(expert, a.pricing, schedule),
	})
}

// OpenArticle 打开文章详情
func (a *App) OpenArticle(article models.Article) {
	a.setOverlay(Overlay{Kind: constants.OverlayArticleDetail, Article: &article})
}

// OpenAuth 打开登录/注册
func (a *App) OpenAuth() {
	a.setOverlay(Overlay{Kind: constants.OverlayAuth})
}

// CloseOverlay 关闭当前浮层；成功提示关闭后恢复被覆盖的浮层，预约草稿随浮层丢弃
func (a *App) CloseOverlay() {
	current := a.overlay
	if current.Kind == constants.OverlaySuccess && current.restore != nil {
		a.setOverlay(*current.restore)
		return
	}
	if current.Wizard != nil {
		current.Wizard.Reset()
	}
	a.setOverlay(noOverlay())
}

// Notify 通知出口：以成功提示覆盖当前浮层
func (a *App) Notify(kind, message string) {
	a.notify(SuccessNotice{Kind: kind, Message: message})
}

func (a *App) notify(notice SuccessNotice) {
	next := Overlay{Kind: constants.OverlaySuccess, Success: &notice}
	switch a.overlay.Kind {
	case constants.OverlayNone:
	case constants.OverlaySuccess:
		next.restore = a.overlay.restore
	default:
		prev := a.overlay
		next.restore = &prev
	}
	a.setOverlay(next)
	a.publish(Event{Type: EventNotification, Kind: notice.Kind, Message: notice.Message, Booking: notice.Booking})
}

// redirectToAuth 关闭触发门禁的浮层并打开登录，不记录恢复点
func (a *App) redirectToAuth(intent string) Outcome {
	a.log.Infow("gate_redirect_auth", "intent", intent, "from_overlay", a.overlay.Kind)
	if a.overlay.Wizard != nil {
		a.overlay.Wizard.Reset()
	}
	a.OpenAuth()
	return OutcomeAuthRequired
}

func (a *App) gateAllows(intent string) bool {
	if !a.auth.authenticated || a.auth.identity == nil {
		return false
	}
	if a.gate == nil {
		return true
	}
	return a.gate.Allow(a.auth.identity.Role, intent)
}

// ---- 购物车 ----

// CheckoutReceipt 结算回执
type CheckoutReceipt struct {
	Reference      string         `json:"reference"`
	Items          []CartLineItem `json:"items"`
	ItemCount      int            `json:"item_count"`
	Total          models.Money   `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
	CreatedAt      time.Time      `json:"created_at"`
}

// AddToCart 加入购物车并发出成功提示
func (a *App) AddToCart(product models.Product, quantity int) {
	a.cart.Add(product, quantity)
	a.log.Debugw("cart_item_added", "product_id", product.ID, "quantity", quantity, "item_count", a.cart.ItemCount())
	a.Notify(constants.SuccessKindCart, i18n.Sprintf(a.locale, "notify.cart_added", product.Name))
}

// UpdateCartQuantity 设置商品数量，小于等于 0 时移除
func (a *App) UpdateCartQuantity(productID string, quantity int) {
	if a.cart.UpdateQuantity(productID, quantity) {
		a.log.Debugw("cart_quantity_updated", "product_id", productID, "quantity", quantity)
	}
}

// RemoveFromCart 移除商品
func (a *App) RemoveFromCart(productID string) {
	if a.cart.Remove(productID) {
		a.log.Debugw("cart_item_removed", "product_id", productID)
	}
}

// Checkout 结算：未登录时关闭购物车并打开登录，购物车保持不变
func (a *App) Checkout() Outcome {
	if !a.gateAllows(constants.IntentCheckout) {
		return a.redirectToAuth(constants.IntentCheckout)
	}
	now := a.now()
	receipt := CheckoutReceipt{
		Reference: "ORD-" + a.newReference(now),
		Items:     a.cart.Items(),
		ItemCount: a.cart.ItemCount(),
		Total:     a.cart.Total(),
		CreatedAt: now,
	}
	receipt.TotalFormatted = models.FormatPrice(receipt.Total)
	a.cart.Clear()
	a.setOverlay(noOverlay())
	a.log.Infow("checkout_completed", "reference", receipt.Reference, "item_count", receipt.ItemCount, "total", receipt.Total.String())
	a.notify(SuccessNotice{
		Kind:    constants.SuccessKindCheckout,
		Message: i18n.T(a.locale, "notify.checkout_success"),
		Receipt: &receipt,
	})
	return OutcomeCompleted
}

// CartItems 购物车行项目
func (a *App) CartItems() []CartLineItem {
	return a.cart.Items()
}

// CartCount 商品总件数
func (a *App) CartCount() int {
	return a.cart.ItemCount()
}

// CartTotal 购物车总价
func (a *App) CartTotal() models.Money {
	return a.cart.Total()
}

// ---- 预约 ----

// Wizard 当前打开的预约向导
func (a *App) Wizard() (*Wizard, error) {
	if a.overlay.Kind != constants.OverlayBooking || a.overlay.Wizard == nil {
		return nil, ErrBookingNotOpen
	}
	return a.overlay.Wizard, nil
}

// SelectConsultationKind 选择咨询方式
func (a *App) SelectConsultationKind(kind string) error {
	w, err := a.Wizard()
	if err != nil {
		return err
	}
	return w.SelectKind(kind)
}

// AdvanceBooking 向导前进
func (a *App) AdvanceBooking() error {
	w, err := a.Wizard()
	if err != nil {
		return err
	}
	if err := w.Advance(); err != nil {
		return err
	}
	a.log.Debugw("booking_advanced", "expert_id", w.Expert().ID, "state", w.State().String())
	return nil
}

// BackBooking 向导后退
func (a *App) BackBooking() error {
	w, err := a.Wizard()
	if err != nil {
		return err
	}
	if err := w.Back(); err != nil {
		return err
	}
	a.log.Debugw("booking_back", "expert_id", w.Expert().ID, "state", w.State().String())
	return nil
}

// SelectBookingDate 选择日期
func (a *App) SelectBookingDate(date string) error {
	w, err := a.Wizard()
	if err != nil {
		return err
	}
	return w.SelectDate(date)
}

// SelectBookingTime 选择时段
func (a *App) SelectBookingTime(tm string) error {
	w, err := a.Wizard()
	if err != nil {
		return err
	}
	return w.SelectTime(tm)
}

// SubmitBooking 在确认页提交，成功后向导回到第一步
func (a *App) SubmitBooking() (Outcome, *BookingRequest, error) {
	w, err := a.Wizard()
	if err != nil {
		return "", nil, err
	}
	kind, date, tm, err := w.Resolve()
	if err != nil {
		return "", nil, err
	}
	outcome, booking, err := a.BookConsultation(w.Expert(), date, tm, kind)
	if err != nil {
		return "", nil, err
	}
	w.Reset()
	return outcome, booking, nil
}

// BookConsultation 预约咨询：排期规则与向导一致，未登录时关闭预约浮层并打开登录
func (a *App) BookConsultation(expert models.Expert, date, tm, kind string) (Outcome, *BookingRequest, error) {
	price, err := a.pricing.Price(expert.Price, kind)
	if err != nil {
		return "", nil, err
	}
	date, tm, err = resolveSchedule(expert, kind, date, tm)
	if err != nil {
		return "", nil, err
	}
	if !a.gateAllows(constants.IntentBooking) {
		return a.redirectToAuth(constants.IntentBooking), nil, nil
	}
	now := a.now()
	status := constants.ConsultationStatusPaid
	if isInstantKind(kind) {
		status = constants.ConsultationStatusActive
	}
	booking := BookingRequest{
		Reference:      "BK-" + a.newReference(now),
		ExpertID:       expert.ID,
		ExpertName:     expert.Name,
		ExpertImage:    expert.Image,
		Kind:           kind,
		Date:           date,
		Time:           tm,
		Price:          price,
		PriceFormatted: models.FormatPrice(price),
		Status:         status,
		CreatedAt:      now,
	}
	a.history = append(a.history, booking)
	if a.overlay.Kind == constants.OverlayBooking {
		a.setOverlay(noOverlay())
	}
	a.log.Infow("consultation_booked",
		"reference", booking.Reference,
		"expert_id", expert.ID,
		"kind", kind,
		"price", price.String(),
	)
	a.notify(SuccessNotice{
		Kind:    constants.SuccessKindConsultation,
		Message: i18n.Sprintf(a.locale, "notify.consultation_booked", expert.Name, date, tm),
		Booking: &booking,
	})
	a.publish(Event{Type: EventBookingConfirmed, Booking: &booking})
	return OutcomeCompleted, &booking, nil
}

// History 咨询记录，最新的在后
func (a *App) History() []BookingRequest {
	out := make([]BookingRequest, len(a.history))
	copy(out, a.history)
	return out
}

// Pricing 当前定价策略
func (a *App) Pricing() PricingPolicy {
	return a.pricing
}

// ---- 认证 ----

// Login 模拟登录：总是成功，角色为 consumer，并关闭登录浮层
func (a *App) Login(email, password string) Identity {
	email = strings.TrimSpace(email)
	identity := Identity{
		ID:       uuid.NewString(),
		Name:     nameFromEmail(email),
		Email:    email,
		Phone:    defaultPhone,
		Role:     constants.RoleConsumer,
		Avatar:   avatarForRole(constants.RoleConsumer),
		Verified: true,
	}
	if reg := a.auth.registration; reg != nil && strings.EqualFold(reg.Identity.Email, email) {
		identity.ID = reg.Identity.ID
		identity.Name = reg.Identity.Name
		identity.Phone = reg.Identity.Phone
	}
	a.auth.authenticated = true
	a.auth.identity = &identity
	a.auth.role = identity.Role
	a.auth.registration = nil
	if a.overlay.Kind == constants.OverlayAuth {
		a.setOverlay(noOverlay())
	}
	a.log.Infow("auth_login", "identity_id", identity.ID)
	return identity
}

// Register 模拟注册：生成待验证身份，但不登录，也不关闭浮层
func (a *App) Register(in RegisterInput) (Registration, error) {
	role := strings.TrimSpace(in.Role)
	if !IsValidRole(role) {
		role = constants.RoleConsumer
	}
	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return Registration{}, fmt.Errorf("hash password: %w", err)
	}
	reg := Registration{
		Identity: Identity{
			ID:       uuid.NewString(),
			Name:     strings.TrimSpace(in.Name),
			Email:    strings.TrimSpace(in.Email),
			Phone:    strings.TrimSpace(in.Phone),
			Role:     role,
			Avatar:   avatarForRole(role),
			Verified: false,
		},
		PasswordHash: hash,
		CreatedAt:    a.now(),
	}
	a.auth.registration = &reg
	a.auth.role = role
	a.log.Infow("auth_registered", "identity_id", reg.Identity.ID, "role", role)
	return reg, nil
}

// ForgotPassword 只记录请求，不改变会话状态
func (a *App) ForgotPassword(email string) {
	email = strings.TrimSpace(email)
	a.log.Infow("auth_password_reset_requested", "email", email)
	a.publish(Event{Type: EventPasswordResetRequested, Email: email})
}

// Logout 退出登录：清除身份、恢复默认角色并清空购物车
func (a *App) Logout() {
	a.auth.reset()
	a.auth.registration = nil
	a.cart.Clear()
	a.log.Infow("auth_logout")
}

// SetRole 切换个人页显示角色
func (a *App) SetRole(role string) error {
	if !IsValidRole(role) {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	a.auth.role = role
	return nil
}

// Authenticated 是否已登录
func (a *App) Authenticated() bool {
	return a.auth.authenticated
}

// Identity 当前身份，未登录为 nil
func (a *App) Identity() *Identity {
	if a.auth.identity == nil {
		return nil
	}
	identity := *a.auth.identity
	return &identity
}

// Role 当前显示角色
func (a *App) Role() string {
	return a.auth.role
}

// ---- 快照 ----

// CartView 购物车只读视图
type CartView struct {
	Items          []CartLineItem `json:"items"`
	ItemCount      int            `json:"item_count"`
	Total          models.Money   `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
}

// Snapshot 会话只读快照
type Snapshot struct {
	SessionID   string           `json:"session_id"`
	Tab         string           `json:"tab"`
	Category    string           `json:"category,omitempty"`
	SearchQuery string           `json:"search_query"`
	Overlay     OverlayView      `json:"overlay"`
	Cart        CartView         `json:"cart"`
	Auth        AuthView         `json:"auth"`
	History     []BookingRequest `json:"history"`
	PricingTier string           `json:"pricing_tier"`
}

// Snapshot 生成只读快照
func (a *App) Snapshot() Snapshot {
	total := a.cart.Total()
	return Snapshot{
		SessionID:   a.id,
		Tab:         a.tab,
		Category:    a.category,
		SearchQuery: a.search,
		Overlay:     a.overlay.view(),
		Cart: CartView{
			Items:          a.cart.Items(),
			ItemCount:      a.cart.ItemCount(),
			Total:          total,
			TotalFormatted: models.FormatPrice(total),
		},
		Auth:        a.auth.view(),
		History:     a.History(),
		PricingTier: a.pricing.Tier(),
	}
}

func (a *App) publish(event Event) {
	if a.events == nil {
		return
	}
	event.SessionID = a.id
	event.At = a.now()
	if err := a.events.Publish(event); err != nil {
		a.log.Warnw("session_event_publish_failed", "type", event.Type, "error", err)
	}
}

func (a *App) newReference(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}
