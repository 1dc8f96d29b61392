package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/http/handlers/shared"
	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/service"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse 用户响应
type UserResponse struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Groups   []string `json:"groups"`
}

func buildUserResponse(user *models.User) UserResponse {
	groups := make([]string, 0, len(user.Groups))
	for _, group := range user.Groups {
		groups = append(groups, group.Name)
	}
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Groups:   groups,
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	user, err := h.AuthService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrUsernameExists),
			errors.Is(err, service.ErrWeakPassword):
			response.BadRequest(c, err.Error())
		default:
			shared.RespondInternalError(c, "user_register_failed", err)
		}
		return
	}

	shared.RequestLog(c).Infow("user_registered", "user_id", user.ID, "username", user.Username)
	response.Created(c, buildUserResponse(user))
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		shared.RespondInternalError(c, "user_login_failed", err)
		return
	}

	shared.RequestLog(c).Infow("user_login", "user_id", user.ID, "username", user.Username)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user":       buildUserResponse(user),
	})
}

// Me 当前用户资料
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.AuthService.Profile(uid)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Unauthorized(c, "authentication required")
			return
		}
		shared.RespondInternalError(c, "user_profile_failed", err)
		return
	}
	response.Success(c, buildUserResponse(user))
}
