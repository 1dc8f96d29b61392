package models

import "time"

// Cart 购物车行（同一用户可存在同一菜品的多行）
type Cart struct {
	ID         uint      `gorm:"primarykey" json:"id"`                          // 主键
	UserID     uint      `gorm:"index;not null" json:"user_id"`                 // 用户ID
	MenuItemID uint      `gorm:"index;not null" json:"menuitem_id"`             // 菜品ID
	Quantity   int       `gorm:"not null" json:"quantity"`                      // 数量
	UnitPrice  Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"` // 加入时的单价快照
	Price      Money     `gorm:"type:decimal(20,2);not null" json:"price"`      // 行金额 = 数量 × 单价
	CreatedAt  time.Time `json:"created_at"`                                    // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                    // 更新时间

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menuitem,omitempty"` // 关联菜品
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
