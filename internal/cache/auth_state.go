package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState 用户鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
// roles 为分组解析出的授权角色，避免每次请求查分组表
type UserAuthState struct {
	UserID             uint     `json:"user_id"`
	Username           string   `json:"username"`
	TokenVersion       uint64   `json:"token_version"`
	TokenInvalidBefore int64    `json:"token_invalid_before"`
	Roles              []string `json:"roles"`
	UpdatedAt          int64    `json:"updated_at"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// ResolveRoles 从用户分组解析授权角色
func ResolveRoles(user *models.User) []string {
	roles := []string{constants.RoleAuthenticated}
	if user == nil {
		return roles
	}
	for _, group := range user.Groups {
		switch group.Name {
		case constants.GroupManager:
			roles = append(roles, constants.RoleManager)
		case constants.GroupDeliveryCrew:
			roles = append(roles, constants.RoleDeliveryCrew)
		}
	}
	return roles
}

// BuildUserAuthState 从用户模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		Roles:        ResolveRoles(user),
		UpdatedAt:    time.Now().Unix(),
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetUserAuthState 获取用户鉴权快照
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入用户鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState 删除用户鉴权快照
// 分组成员变更后调用，使角色在下一次请求时重新解析
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
