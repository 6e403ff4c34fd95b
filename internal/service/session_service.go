package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/halotrubus/internal/config"
	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/logger"
	"github.com/halotrubus/internal/session"

	"github.com/google/uuid"
)

const defaultSessionIdleTTL = 2 * time.Hour

// SessionService 应用会话注册表：每个会话串行执行，空闲超时后回收
type SessionService struct {
	catalog  *CatalogService
	tokens   *SessionTokenService
	gate     session.Gate
	audit    *GateAuditService
	events   session.EventSink
	pricing  session.PricingPolicy
	location *time.Location
	days     int
	slots    []string
	idleTTL  time.Duration
	clock    func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu       sync.Mutex
	app      *session.App
	lastSeen time.Time
	closed   bool
}

// SessionTicket 新建会话的返回
type SessionTicket struct {
	SessionID string           `json:"session_id"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Snapshot  session.Snapshot `json:"snapshot"`
}

// NewSessionService 创建会话服务
func NewSessionService(
	cfg *config.Config,
	catalog *CatalogService,
	tokens *SessionTokenService,
	gate session.Gate,
	events session.EventSink,
) (*SessionService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session config is nil")
	}
	pricing, err := session.PricingForTier(cfg.Booking.PricingTier)
	if err != nil {
		return nil, err
	}
	idleTTL := time.Duration(cfg.Session.IdleTTLMinutes) * time.Minute
	if idleTTL <= 0 {
		idleTTL = defaultSessionIdleTTL
	}
	offset := cfg.Booking.UTCOffsetHours
	return &SessionService{
		catalog:  catalog,
		tokens:   tokens,
		gate:     gate,
		events:   events,
		pricing:  pricing,
		location: time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*60*60),
		days:     cfg.Booking.ScheduleDays,
		slots:    cfg.Booking.TimeSlots,
		idleTTL:  idleTTL,
		clock:    time.Now,
		sessions: make(map[string]*sessionEntry),
	}, nil
}

// UseGateAudit 为之后创建的会话启用门禁审计
func (s *SessionService) UseGateAudit(audit *GateAuditService) {
	s.audit = audit
}

// Create 新建会话并签发 token
func (s *SessionService) Create(ctx context.Context) (*SessionTicket, error) {
	id := uuid.NewString()
	gate := s.gate
	if s.audit != nil {
		gate = s.audit.Wrap(id, gate)
	}
	app := session.New(session.Options{
		ID:           id,
		Logger:       logger.ForSession(id),
		Clock:        s.clock,
		Location:     s.location,
		Pricing:      s.pricing,
		ScheduleDays: s.days,
		TimeSlots:    s.slots,
		Gate:         gate,
		Events:       s.events,
	})
	token, expiresAt, err := s.tokens.Generate(id)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{app: app, lastSeen: s.clock()}
	total := len(s.sessions)
	s.mu.Unlock()

	logger.Infow("session_created", "session_id", id, "active_sessions", total)
	return &SessionTicket{
		SessionID: id,
		Token:     token,
		ExpiresAt: expiresAt,
		Snapshot:  app.Snapshot(),
	}, nil
}

// Authenticate 校验 token 并确认会话仍然存在
func (s *SessionService) Authenticate(token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	_, ok := s.sessions[claims.SessionID]
	s.mu.Unlock()
	if !ok {
		return "", ErrSessionNotFound
	}
	return claims.SessionID, nil
}

// Do 在会话锁内执行操作，返回操作后的快照
func (s *SessionService) Do(id string, fn func(app *session.App) error) (*session.Snapshot, error) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.closed {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = s.clock()
	if fn != nil {
		if err := fn(entry.app); err != nil {
			return nil, err
		}
	}
	snap := entry.app.Snapshot()
	return &snap, nil
}

// Snapshot 读取会话快照
func (s *SessionService) Snapshot(id string) (*session.Snapshot, error) {
	return s.Do(id, nil)
}

// Close 结束会话
func (s *SessionService) Close(id string) error {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	entry.mu.Lock()
	entry.closed = true
	entry.mu.Unlock()
	logger.Infow("session_closed", "session_id", id)
	return nil
}

// Sweep 回收空闲超时的会话，正在执行操作的会话跳过
func (s *SessionService) Sweep() int {
	cutoff := s.clock().Add(-s.idleTTL)
	removed := 0

	s.mu.Lock()
	for id, entry := range s.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.lastSeen.Before(cutoff) {
			entry.closed = true
			delete(s.sessions, id)
			removed++
		}
		entry.mu.Unlock()
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		logger.Infow("session_swept", "removed", removed, "active_sessions", remaining)
	}
	return removed
}

// Len 活跃会话数
func (s *SessionService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// AddToCart 按商品 ID 加入购物车
func (s *SessionService) AddToCart(ctx context.Context, id, productID string, quantity int) (*session.Snapshot, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.Do(id, func(app *session.App) error {
		app.AddToCart(*product, quantity)
		return nil
	})
}

// OpenProduct 打开商品详情
func (s *SessionService) OpenProduct(ctx context.Context, id, productID string) (*session.Snapshot, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.Do(id, func(app *session.App) error {
		app.OpenProduct(*product)
		return nil
	})
}

// OpenExpert 打开专家详情并开始预约
func (s *SessionService) OpenExpert(ctx context.Context, id, expertID string) (*session.Snapshot, error) {
	expert, err := s.catalog.GetExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}
	return s.Do(id, func(app *session.App) error {
		app.OpenExpert(*expert)
		return nil
	})
}

// OpenArticle 打开文章详情
func (s *SessionService) OpenArticle(ctx context.Context, id, articleID string) (*session.Snapshot, error) {
	article, err := s.catalog.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return s.Do(id, func(app *session.App) error {
		app.OpenArticle(*article)
		return nil
	})
}

// BookConsultation 直接预约（不经过向导）
func (s *SessionService) BookConsultation(ctx context.Context, id, expertID, date, tm, kind string) (session.Outcome, *session.Snapshot, error) {
	expert, err := s.catalog.GetExpert(ctx, expertID)
	if err != nil {
		return "", nil, err
	}
	var outcome session.Outcome
	snap, err := s.Do(id, func(app *session.App) error {
		var bookErr error
		outcome, _, bookErr = app.BookConsultation(*expert, date, tm, kind)
		return bookErr
	})
	if err != nil {
		return "", nil, err
	}
	return outcome, snap, nil
}

// OpenOverlay 按浮层类型打开浮层，需要目录数据的类型携带目标 ID
func (s *SessionService) OpenOverlay(ctx context.Context, id, kind, targetID string) (*session.Snapshot, error) {
	switch kind {
	case constants.OverlayCart:
		return s.Do(id, func(app *session.App) error {
			app.OpenCart()
			return nil
		})
	case constants.OverlayAuth:
		return s.Do(id, func(app *session.App) error {
			app.OpenAuth()
			return nil
		})
	case constants.OverlayProductDetail:
		return s.OpenProduct(ctx, id, targetID)
	case constants.OverlayBooking:
		return s.OpenExpert(ctx, id, targetID)
	case constants.OverlayArticleDetail:
		return s.OpenArticle(ctx, id, targetID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidOverlay, kind)
	}
}
