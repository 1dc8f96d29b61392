package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/http/handlers/shared"
	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/service"
)

// UpdateOrderRequest 订单更新请求
type UpdateOrderRequest struct {
	Status         *bool `json:"status"`
	DeliveryCrewID *uint `json:"delivery_crew_id"`
}

// PlaceOrder 下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.PlaceOrder(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty), errors.Is(err, service.ErrNoDeliveryCrew):
			response.BadRequest(c, err.Error())
		default:
			shared.RespondInternalError(c, "order_place_failed", err)
		}
		return
	}

	shared.RequestLog(c).Infow("order_placed",
		"order_id", order.ID,
		"user_id", uid,
		"total", order.Total.String(),
	)
	response.Created(c, order)
}

// ListOrders 订单列表。订单与可见订单的订单项使用同一组分页参数各自分页。
func (h *Handler) ListOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.NormalizePagination(c)

	result, err := h.OrderService.ListOrders(actor, service.OrderListInput{
		Ordering: c.Query("ordering"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		shared.RespondInternalError(c, "order_list_failed", err)
		return
	}

	response.Success(c, gin.H{
		"orders":                 result.Orders,
		"orders_pagination":      response.BuildPagination(page, pageSize, result.OrdersTotal),
		"order_items":            result.Items,
		"order_items_pagination": response.BuildPagination(page, pageSize, result.ItemsTotal),
	})
}

// GetOrderItems 获取订单的订单项，仅限订单归属用户
func (h *Handler) GetOrderItems(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.OrderService.GetOrderItems(actor, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotOrderOwner):
			response.Forbidden(c, err.Error())
		default:
			shared.RespondInternalError(c, "order_get_failed", err)
		}
		return
	}
	response.Success(c, items)
}

func respondOrderUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrDeliveryCrewReadOnly), errors.Is(err, service.ErrOrderUpdateForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotDeliveryCrewMember):
		response.BadRequest(c, err.Error())
	default:
		shared.RespondInternalError(c, "order_update_failed", err)
	}
}

// ReplaceOrder 整体更新订单
func (h *Handler) ReplaceOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	order, err := h.OrderService.ReplaceOrder(actor, id, service.UpdateOrderInput{
		Status:         req.Status,
		DeliveryCrewID: req.DeliveryCrewID,
	})
	if err != nil {
		respondOrderUpdateError(c, err)
		return
	}
	response.Success(c, order)
}

// PatchOrder 部分更新订单
func (h *Handler) PatchOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	order, err := h.OrderService.PatchOrder(actor, id, service.UpdateOrderInput{
		Status:         req.Status,
		DeliveryCrewID: req.DeliveryCrewID,
	})
	if err != nil {
		respondOrderUpdateError(c, err)
		return
	}
	response.Success(c, order)
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.OrderService.DeleteOrder(actor, id); err != nil {
		respondOrderUpdateError(c, err)
		return
	}
	response.NoContent(c)
}
