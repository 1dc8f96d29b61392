package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/http/handlers/shared"
	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/provider"
	"github.com/littlelemon-api/internal/service"
)

// Handler 餐厅 API 处理器入口
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getUserID(c *gin.Context) (uint, bool) {
	uid, ok := shared.GetContextUintWithKeys(c, "user_id")
	if !ok || uid == 0 {
		response.Unauthorized(c, "authentication required")
		return 0, false
	}
	return uid, true
}

func getActor(c *gin.Context) (service.Actor, bool) {
	uid, ok := getUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID: uid,
		Roles:  shared.GetContextStrings(c, "user_roles"),
	}, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		response.NotFound(c, "not found")
		return 0, false
	}
	return uint(value), true
}
