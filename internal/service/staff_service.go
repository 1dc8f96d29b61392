package service

import (
	"context"
	"strings"

	"github.com/littlelemon-api/internal/cache"
	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/logger"
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/repository"
)

// StaffService 员工分组服务（Manager / Delivery crew 成员管理）
type StaffService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewStaffService 创建员工分组服务
func NewStaffService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *StaffService {
	return &StaffService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

func alreadyMemberError(groupName string) error {
	if groupName == constants.GroupManager {
		return ErrAlreadyManager
	}
	return ErrAlreadyDelivery
}

// ListMembers 获取分组成员
func (s *StaffService) ListMembers(groupName string) ([]models.User, error) {
	group, err := s.groupRepo.GetByName(groupName)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return s.groupRepo.ListMembers(groupName)
}

// AddMember 按用户名将用户加入分组
func (s *StaffService) AddMember(groupName, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	group, err := s.groupRepo.GetByName(groupName)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	isMember, err := s.groupRepo.HasMember(groupName, user.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, alreadyMemberError(groupName)
	}

	if err := s.groupRepo.AddMember(group, user); err != nil {
		return nil, err
	}

	// 角色来源变更，失效鉴权快照
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	logger.Infow("group_member_added", "group", groupName, "user_id", user.ID)
	return user, nil
}

// RemoveMember 将用户移出分组。用户不在分组中也视为成功（幂等）。
func (s *StaffService) RemoveMember(groupName string, userID uint) error {
	group, err := s.groupRepo.GetByName(groupName)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.groupRepo.RemoveMember(group, user); err != nil {
		return err
	}

	_ = cache.DelUserAuthState(context.Background(), user.ID)
	logger.Infow("group_member_removed", "group", groupName, "user_id", user.ID)
	return nil
}
