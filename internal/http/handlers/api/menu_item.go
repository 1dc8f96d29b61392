package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/http/handlers/shared"
	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/repository"
	"github.com/littlelemon-api/internal/service"
)

// MenuItemRequest 创建/整体更新菜品请求
type MenuItemRequest struct {
	Title      string       `json:"title" binding:"required"`
	Price      models.Money `json:"price" binding:"required"`
	Featured   bool         `json:"featured"`
	CategoryID uint         `json:"category_id" binding:"required"`
}

// MenuItemPatchRequest 部分更新菜品请求
type MenuItemPatchRequest struct {
	Title      *string       `json:"title"`
	Price      *models.Money `json:"price"`
	Featured   *bool         `json:"featured"`
	CategoryID *uint         `json:"category_id"`
}

func buildMenuItemFilter(c *gin.Context) repository.MenuItemListFilter {
	filter := repository.MenuItemListFilter{
		Title:    c.Query("title"),
		Ordering: c.Query("ordering"),
	}
	if raw := c.Query("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.Query("featured"); raw != "" {
		if featured, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &featured
		}
	}
	return filter
}

// ListMenuItems 菜品列表
func (h *Handler) ListMenuItems(c *gin.Context) {
	items, err := h.MenuItemService.List(buildMenuItemFilter(c))
	if err != nil {
		shared.RespondInternalError(c, "menu_item_list_failed", err)
		return
	}
	response.Success(c, items)
}

// GetMenuItem 菜品详情
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.MenuItemService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		shared.RespondInternalError(c, "menu_item_get_failed", err)
		return
	}
	response.Success(c, item)
}

func respondMenuItemWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrCategoryNotFound):
		response.BadRequest(c, err.Error())
	default:
		shared.RespondInternalError(c, "menu_item_write_failed", err)
	}
}

// CreateMenuItem 创建菜品
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	item, err := h.MenuItemService.Create(service.MenuItemInput{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondMenuItemWriteError(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateMenuItem 整体更新菜品
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	item, err := h.MenuItemService.Update(id, service.MenuItemInput{
		Title:      req.Title,
		Price:      req.Price,
		Featured:   req.Featured,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		respondMenuItemWriteError(c, err)
		return
	}
	response.Success(c, item)
}

// PatchMenuItem 部分更新菜品
func (h *Handler) PatchMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req MenuItemPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	item, err := h.MenuItemService.Patch(id, req.Title, req.Price, req.Featured, req.CategoryID)
	if err != nil {
		respondMenuItemWriteError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteMenuItem 删除菜品
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.MenuItemService.Delete(id); err != nil {
		respondMenuItemWriteError(c, err)
		return
	}
	response.NoContent(c)
}
