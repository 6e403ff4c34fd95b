package public

import (
	"strings"

	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/session"

	"github.com/gin-gonic/gin"
)

// BookingKindRequest 选择咨询方式
type BookingKindRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// BookingDateRequest 选择日期
type BookingDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// BookingTimeRequest 选择时段
type BookingTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// DirectBookingRequest 不经过向导直接预约
type DirectBookingRequest struct {
	ExpertID string `json:"expert_id" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// SelectBookingKind 向导第一步：选择咨询方式
func (h *Handler) SelectBookingKind(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req BookingKindRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.SelectConsultationKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	})
	respondSession(c, snap, err)
}

// AdvanceBooking 向导下一步
func (h *Handler) AdvanceBooking(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.AdvanceBooking()
	})
	respondSession(c, snap, err)
}

// BackBooking 向导上一步
func (h *Handler) BackBooking(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.BackBooking()
	})
	respondSession(c, snap, err)
}

// SelectBookingDate 选择日期
func (h *Handler) SelectBookingDate(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req BookingDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.SelectBookingDate(strings.TrimSpace(req.Date))
	})
	respondSession(c, snap, err)
}

// SelectBookingTime 选择时段
func (h *Handler) SelectBookingTime(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req BookingTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.SelectBookingTime(strings.TrimSpace(req.Time))
	})
	respondSession(c, snap, err)
}

// SubmitBooking 提交预约，未登录时跳转登录
func (h *Handler) SubmitBooking(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var (
		outcome session.Outcome
		booking *session.BookingRequest
	)
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		var submitErr error
		outcome, booking, submitErr = app.SubmitBooking()
		return submitErr
	})
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, SessionResponse{Outcome: outcome, Booking: booking, Snapshot: snap})
}

// DirectBooking 直接预约
func (h *Handler) DirectBooking(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req DirectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	outcome, snap, err := h.SessionService.BookConsultation(
		c.Request.Context(),
		id,
		strings.TrimSpace(req.ExpertID),
		strings.TrimSpace(req.Date),
		strings.TrimSpace(req.Time),
		strings.ToLower(strings.TrimSpace(req.Kind)),
	)
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	resp := SessionResponse{Outcome: outcome, Snapshot: snap}
	if outcome == session.OutcomeCompleted && snap != nil && len(snap.History) > 0 {
		latest := snap.History[len(snap.History)-1]
		resp.Booking = &latest
	}
	response.Success(c, resp)
}
