package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/http/handlers/shared"
	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/service"
)

// CategoryRequest 创建分类请求
type CategoryRequest struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		shared.RespondInternalError(c, "category_list_failed", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	category, err := h.CategoryService.Create(service.CreateCategoryInput{
		Slug:  req.Slug,
		Title: req.Title,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrSlugExists):
			response.BadRequest(c, err.Error())
		default:
			shared.RespondInternalError(c, "category_create_failed", err)
		}
		return
	}
	response.Created(c, category)
}
