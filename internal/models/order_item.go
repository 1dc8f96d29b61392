package models

import "time"

// OrderItem 订单项（下单时从购物车行快照而来）
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`                          // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`                // 订单ID
	MenuItemID uint      `gorm:"index;not null" json:"menuitem_id"`             // 菜品ID
	Quantity   int       `gorm:"not null" json:"quantity"`                      // 数量
	UnitPrice  Money     `gorm:"type:decimal(20,2);not null" json:"unit_price"` // 单价快照
	Price      Money     `gorm:"type:decimal(20,2);not null" json:"price"`      // 行金额快照
	CreatedAt  time.Time `json:"created_at"`                                    // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                    // 更新时间

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menuitem,omitempty"` // 关联菜品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
