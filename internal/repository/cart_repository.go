package repository

import (
	"errors"

	"github.com/littlelemon-api/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.Cart, error)
	GetByIDAndUser(id, userID uint) (*models.Cart, error)
	Create(row *models.Cart) error
	Update(row *models.Cart) error
	CountByUser(userID uint) (int64, error)
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车行
func (r *GormCartRepository) ListByUser(userID uint) ([]models.Cart, error) {
	var rows []models.Cart
	if err := r.db.Preload("MenuItem").Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByIDAndUser 获取属于指定用户的购物车行
func (r *GormCartRepository) GetByIDAndUser(id, userID uint) (*models.Cart, error) {
	var row models.Cart
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create 新增购物车行（同一菜品允许多行，不做合并）
func (r *GormCartRepository) Create(row *models.Cart) error {
	return r.db.Create(row).Error
}

// Update 更新购物车行
func (r *GormCartRepository) Update(row *models.Cart) error {
	return r.db.Save(row).Error
}

// CountByUser 统计用户购物车行数
func (r *GormCartRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearByUser 清空用户购物车
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}
