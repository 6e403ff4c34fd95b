package public

import (
	"strings"

	"github.com/halotrubus/internal/http/response"
	"github.com/halotrubus/internal/session"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	snap, err := h.SessionService.AddToCart(c.Request.Context(), id, strings.TrimSpace(req.ProductID), req.Quantity)
	respondSession(c, snap, err)
}

// UpdateCartItem 修改数量，数量小于等于 0 时移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.UpdateCartQuantity(productID, req.Quantity)
		return nil
	})
	respondSession(c, snap, err)
}

// RemoveCartItem 移除商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		app.RemoveFromCart(productID)
		return nil
	})
	respondSession(c, snap, err)
}

// Checkout 结算，未登录时跳转登录
func (h *Handler) Checkout(c *gin.Context) {
	id, ok := getSessionID(c)
	if !ok {
		return
	}
	var outcome session.Outcome
	snap, err := h.SessionService.Do(id, func(app *session.App) error {
		outcome = app.Checkout()
		return nil
	})
	if err != nil {
		respondWithMappedError(c, err, sessionErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, SessionResponse{Outcome: outcome, Snapshot: snap})
}
