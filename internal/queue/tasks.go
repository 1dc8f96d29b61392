package queue

import (
	"encoding/json"

	"github.com/littlelemon-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 下单通知任务
	TaskOrderPlaced = constants.TaskOrderPlaced
	// TaskOrderStatusChanged 配送状态变更通知任务
	TaskOrderStatusChanged = constants.TaskOrderStatusChanged
)

// OrderPlacedPayload 下单通知任务载荷
type OrderPlacedPayload struct {
	OrderID        uint `json:"order_id"`
	UserID         uint `json:"user_id"`
	DeliveryCrewID uint `json:"delivery_crew_id"`
}

// OrderStatusChangedPayload 配送状态变更任务载荷
type OrderStatusChangedPayload struct {
	OrderID uint `json:"order_id"`
	Status  bool `json:"status"`
}

// NewOrderPlacedTask 创建下单通知任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}

// NewOrderStatusChangedTask 创建配送状态变更任务
func NewOrderStatusChangedTask(payload OrderStatusChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusChanged, body), nil
}
