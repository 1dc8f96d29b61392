package models

import (
	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitGroups 初始化内置员工分组
func InitGroups() error {
	for _, name := range []string{constants.GroupManager, constants.GroupDeliveryCrew} {
		var group Group
		err := DB.Where("name = ?", name).First(&group).Error
		if err == nil {
			continue
		}
		group = Group{Name: name}
		if err := DB.Create(&group).Error; err != nil {
			return err
		}
		logger.Infow("builtin_group_created", "name", name)
	}
	return nil
}

// InitDefaultManager 初始化默认经理账号
func InitDefaultManager(username, password string) error {
	var count int64
	DB.Model(&User{}).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("groups.name = ?", constants.GroupManager).
		Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "manager"
	}
	if password == "" {
		password = "manager123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var user User
	if err := DB.Where("username = ?", username).First(&user).Error; err != nil {
		user = User{
			Username:     username,
			PasswordHash: string(hash),
		}
		if err := DB.Create(&user).Error; err != nil {
			return err
		}
	}

	var managerGroup Group
	if err := DB.Where("name = ?", constants.GroupManager).First(&managerGroup).Error; err != nil {
		return err
	}
	if err := DB.Model(&user).Association("Groups").Append(&managerGroup); err != nil {
		return err
	}

	if password == "manager123" {
		logger.Warnw("default_manager_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_manager_password_change_required", "username", username)
	} else {
		logger.Warnw("default_manager_created", "username", username, "password_hidden", true)
	}
	return nil
}
