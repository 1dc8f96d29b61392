package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/http/handlers/shared"
	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/service"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 更新购物车行请求
type UpdateCartItemRequest struct {
	MenuItemID *uint `json:"menuitem_id"`
	Quantity   *int  `json:"quantity"`
}

// GetCart 获取当前用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	rows, err := h.CartService.ListByUser(uid)
	if err != nil {
		shared.RespondInternalError(c, "cart_list_failed", err)
		return
	}
	response.Success(c, rows)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	row, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:     uid,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidQuantity):
			response.BadRequest(c, err.Error())
		default:
			shared.RespondInternalError(c, "cart_add_failed", err)
		}
		return
	}
	response.Created(c, row)
}

// UpdateCartItem 更新购物车行
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	row, err := h.CartService.UpdateItem(service.UpdateCartItemInput{
		UserID:     uid,
		CartID:     id,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartItemNotFound), errors.Is(err, service.ErrMenuItemNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidQuantity):
			response.BadRequest(c, err.Error())
		default:
			shared.RespondInternalError(c, "cart_update_failed", err)
		}
		return
	}
	response.Success(c, row)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		if errors.Is(err, service.ErrNoCartsForUser) {
			response.NotFound(c, err.Error())
			return
		}
		shared.RespondInternalError(c, "cart_clear_failed", err)
		return
	}
	response.NoContent(c)
}
