package public

import (
	"strings"

	"github.com/halotrubus/internal/http/handlers/shared"
	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/repository"
	"github.com/halotrubus/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionResponse 会话操作的统一返回
type SessionResponse struct {
	Outcome  session.Outcome         `json:"outcome,omitempty"`
	Booking  *session.BookingRequest `json:"booking,omitempty"`
	Snapshot *session.Snapshot       `json:"snapshot"`
}

// TabRequest 切换标签请求
type TabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// CategoryRequest 分类点击请求
type CategoryRequest struct {
	Category string `json:"category"`
}

// SearchRequest 搜索关键字请求
type SearchRequest struct {
	Query string `json:"query"`
}

// OverlayRequest 打开浮层请求
type OverlayRequest struct {
	Kind     string `json:"kind" binding:"required"`
	TargetID string `json:"target_id"`
}

// respondSession 返回会话快照
func respondSession(c *gin.Context, snap *session.Snapshot, err error) {
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, SessionResponse{Snapshot: snap})
}

// CreateSession 创建应用会话并签发令牌
func (h *Handler) CreateSession(c *gin.Context) {
	ticket, err := h.SessionService.Create(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, ticket)
}

// GetSession 获取会话快照
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	snap, err := h.SessionService.Snapshot(id)
	respondSession(c, snap, err)
}

// CloseSession 结束会话
func (h *Handler) CloseSession(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	if err := h.SessionService.Close(id); err != nil {
		respondWithMappedError(c, err, sessionCommonErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	requestLog(c).Infow("session_closed_by_client", "session_id", id)
	response.Success(c, nil)
}

// GetHistory 咨询记录
func (h *Handler) GetHistory(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var history []session.BookingRequest
	_, err := h.SessionService.Do(id, func(app *session.App) error {
		history = app.History()
		return nil
	})
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, history)
}

// SwitchTab 切换主导航标签
func (h *Handler) SwitchTab(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req TabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.SwitchTab(strings.TrimSpace(req.Tab))
	})
	respondSession(c, snap, err)
}

// ViewAll 首页“查看全部”入口
func (h *Handler) ViewAll(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req TabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.ViewAll(strings.TrimSpace(req.Tab))
	})
	respondSession(c, snap, err)
}

// ClickCategory 点击首页分类，跳转到商城并筛选
func (h *Handler) ClickCategory(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.ClickCategory(strings.TrimSpace(req.Category))
		return nil
	})
	respondSession(c, snap, err)
}

// SetShopCategory 商城内切换分类
func (h *Handler) SetShopCategory(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.SetCategory(req.Category)
		return nil
	})
	respondSession(c, snap, err)
}

// SetSearchQuery 更新共享搜索关键字
func (h *Handler) SetSearchQuery(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.SetSearchQuery(req.Query)
		return nil
	})
	respondSession(c, snap, err)
}

// SearchClick 点击搜索框，跳转到商城
func (h *Handler) SearchClick(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.SearchClick()
		return nil
	})
	respondSession(c, snap, err)
}

// OpenOverlay 打开浮层
func (h *Handler) OpenOverlay(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req OverlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.OpenOverlay(c.Request.Context(), id, strings.TrimSpace(req.Kind), strings.TrimSpace(req.TargetID))
	respondSession(c, snap, err)
}

// CloseOverlay 关闭当前浮层
func (h *Handler) CloseOverlay(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.CloseOverlay()
		return nil
	})
	respondSession(c, snap, err)
}

// GateAuditQuery 门禁审计查询参数
type GateAuditQuery struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Intent     string `form:"intent"`
	OnlyDenied bool   `form:"denied"`
}

// ListGateAudit 当前会话的门禁决策记录
func (h *Handler) ListGateAudit(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var query GateAuditQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	logs, total, err := h.GateAuditService.List(repository.GateAuditLogListFilter{
		Page:       page,
		PageSize:   pageSize,
		SessionID:  id,
		Intent:     strings.TrimSpace(query.Intent),
		OnlyDenied: query.OnlyDenied,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, logs, buildPagination(page, pageSize, total))
}
