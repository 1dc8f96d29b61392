package models

import "time"

// MenuItem 菜品表
type MenuItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                            // 主键
	Title      string    `gorm:"index;not null" json:"title"`                     // 菜品名称
	Price      Money     `gorm:"type:decimal(20,2);not null" json:"price"`        // 单价
	Featured   bool      `gorm:"index;not null;default:false" json:"featured"`    // 是否推荐
	CategoryID uint      `gorm:"index;not null" json:"category_id"`               // 分类ID
	CreatedAt  time.Time `json:"created_at"`                                      // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                      // 更新时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联分类
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}
