package public

import (
	"strings"

	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/session"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// RoleRequest 切换显示角色请求
type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Login 登录当前会话
func (h *Handler) Login(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.Login(req.Email, req.Password)
		return nil
	})
	respondSession(c, snap, err)
}

// Register 注册，生成待验证账号，不会登录
func (h *Handler) Register(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		_, regErr := app.Register(session.RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
			Role:     strings.ToLower(strings.TrimSpace(req.Role)),
		})
		return regErr
	})
	respondSession(c, snap, err)
}

// ForgotPassword 找回密码，仅记录请求
func (h *Handler) ForgotPassword(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.ForgotPassword(req.Email)
		return nil
	})
	respondSession(c, snap, err)
}

// Logout 退出登录
func (h *Handler) Logout(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.Logout()
		return nil
	})
	respondSession(c, snap, err)
}

// SetRole 切换个人页显示角色
func (h *Handler) SetRole(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		return app.SetRole(strings.ToLower(strings.TrimSpace(req.Role)))
	})
	respondSession(c, snap, err)
}
