package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/http/handlers/shared"
	"github.com/littlelemon-api/internal/http/response"
	"github.com/littlelemon-api/internal/service"
)

// AddGroupMemberRequest 添加分组成员请求
type AddGroupMemberRequest struct {
	Username string `json:"username"`
}

func groupNameFromParam(c *gin.Context) (string, bool) {
	switch c.Param("group") {
	case "manager":
		return constants.GroupManager, true
	case "delivery-crew":
		return constants.GroupDeliveryCrew, true
	default:
		response.NotFound(c, "group not found")
		return "", false
	}
}

// ListGroupMembers 分组成员列表
func (h *Handler) ListGroupMembers(c *gin.Context) {
	groupName, ok := groupNameFromParam(c)
	if !ok {
		return
	}

	members, err := h.StaffService.ListMembers(groupName)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		shared.RespondInternalError(c, "group_members_list_failed", err)
		return
	}

	resp := make([]UserResponse, 0, len(members))
	for i := range members {
		resp = append(resp, buildUserResponse(&members[i]))
	}
	response.Success(c, resp)
}

// AddGroupMember 按用户名添加分组成员
func (h *Handler) AddGroupMember(c *gin.Context) {
	groupName, ok := groupNameFromParam(c)
	if !ok {
		return
	}
	var req AddGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondBindingError(c, err)
		return
	}

	user, err := h.StaffService.AddMember(groupName, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameRequired),
			errors.Is(err, service.ErrAlreadyManager),
			errors.Is(err, service.ErrAlreadyDelivery):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, err.Error())
		default:
			shared.RespondInternalError(c, "group_member_add_failed", err)
		}
		return
	}
	response.Created(c, buildUserResponse(user))
}

// RemoveGroupMember 移除分组成员（幂等）
func (h *Handler) RemoveGroupMember(c *gin.Context) {
	groupName, ok := groupNameFromParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.StaffService.RemoveMember(groupName, id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrGroupNotFound):
			response.NotFound(c, err.Error())
		default:
			shared.RespondInternalError(c, "group_member_remove_failed", err)
		}
		return
	}
	response.NoContent(c)
}
