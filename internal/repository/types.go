package repository

// MenuItemListFilter 查询菜品列表的过滤条件
type MenuItemListFilter struct {
	Title      string // 标题模糊匹配（不区分大小写）
	CategoryID uint
	Featured   *bool
	Ordering   string // 逗号分隔的排序键，- 前缀表示降序
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page           int
	PageSize       int
	UserID         uint  // 仅查询该用户的订单
	DeliveryCrewID uint  // 仅查询分配给该配送员的订单
	Status         *bool // 按配送状态过滤
	Ordering       string
}
