package models

import "time"

// Order 订单表
type Order struct {
	ID             uint      `gorm:"primarykey" json:"id"`                              // 主键
	UserID         uint      `gorm:"index;not null" json:"user_id"`                     // 下单用户ID
	DeliveryCrewID *uint     `gorm:"index" json:"delivery_crew_id"`                     // 配送员ID
	Status         bool      `gorm:"index;not null;default:false" json:"status"`        // 配送状态（false=未送达）
	Total          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"` // 订单总额
	Date           time.Time `gorm:"type:date;index;not null" json:"date"`              // 下单日期
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt      time.Time `gorm:"index" json:"updated_at"`                           // 更新时间

	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`             // 订单项
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`               // 下单用户
	DeliveryCrew *User       `gorm:"foreignKey:DeliveryCrewID" json:"delivery_crew,omitempty"` // 配送员
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
