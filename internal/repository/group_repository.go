package repository

import (
	"errors"

	"github.com/littlelemon-api/internal/models"

	"gorm.io/gorm"
)

// GroupRepository 员工分组数据访问接口
type GroupRepository interface {
	GetByName(name string) (*models.Group, error)
	ListMembers(groupName string) ([]models.User, error)
	HasMember(groupName string, userID uint) (bool, error)
	AddMember(group *models.Group, user *models.User) error
	RemoveMember(group *models.Group, user *models.User) error
}

// GormGroupRepository GORM 实现
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建分组仓库
func NewGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// GetByName 根据名称获取分组
func (r *GormGroupRepository) GetByName(name string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("name = ?", name).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// ListMembers 获取分组成员
func (r *GormGroupRepository) ListMembers(groupName string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("groups.name = ?", groupName).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// HasMember 判断用户是否属于分组
func (r *GormGroupRepository) HasMember(groupName string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("groups.name = ? AND users.id = ?", groupName, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddMember 添加分组成员
func (r *GormGroupRepository) AddMember(group *models.Group, user *models.User) error {
	return r.db.Model(user).Association("Groups").Append(group)
}

// RemoveMember 移除分组成员
func (r *GormGroupRepository) RemoveMember(group *models.Group, user *models.User) error {
	return r.db.Model(user).Association("Groups").Delete(group)
}
