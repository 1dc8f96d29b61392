package models

import "time"

// Category 菜单分类表
type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"` // 分类标识
	Title     string    `gorm:"not null" json:"title"`            // 分类标题
	CreatedAt time.Time `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
