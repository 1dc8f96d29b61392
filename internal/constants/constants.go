package constants

// 员工分组常量
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery crew"
)

// 授权角色常量（由分组解析而来）
const (
	RoleAuthenticated = "authenticated"
	RoleManager       = "manager"
	RoleDeliveryCrew  = "delivery_crew"
)

// 异步任务类型常量
const (
	TaskOrderPlaced        = "order:placed"
	TaskOrderStatusChanged = "order:status_changed"
)

// 队列名称常量
const (
	QueueDefault = "default"
)
