package service

import (
	"math/rand/v2"
	"time"

	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/logger"
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/queue"
	"github.com/littlelemon-api/internal/repository"

	"gorm.io/gorm"
)

// Actor 发起操作的用户及其授权角色
type Actor struct {
	UserID uint
	Roles  []string
}

func (a Actor) hasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsManager 是否为经理
func (a Actor) IsManager() bool {
	return a.hasRole(constants.RoleManager)
}

// IsDeliveryCrew 是否为配送员
func (a Actor) IsDeliveryCrew() bool {
	return a.hasRole(constants.RoleDeliveryCrew)
}

// OrderListInput 订单列表查询输入
type OrderListInput struct {
	Ordering string
	Page     int
	PageSize int
}

// OrderListResult 订单列表结果：订单与订单项各自独立分页
type OrderListResult struct {
	Orders      []models.Order
	OrdersTotal int64
	Items       []models.OrderItem
	ItemsTotal  int64
}

// UpdateOrderInput 订单更新输入
type UpdateOrderInput struct {
	Status         *bool
	DeliveryCrewID *uint
}

// OrderService 订单服务
type OrderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	groupRepo   repository.GroupRepository
	queueClient *queue.Client

	// pickCrew 从 n 个配送员中选择一个下标，可注入以便测试
	pickCrew func(n int) int
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, cartRepo repository.CartRepository, groupRepo repository.GroupRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		groupRepo:   groupRepo,
		queueClient: queueClient,
		pickCrew:    rand.IntN,
	}
}

// PlaceOrder 下单：购物车快照转订单项、随机分配配送员、清空购物车，
// 全部写操作在一个事务内完成。
func (s *OrderService) PlaceOrder(userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	cartRows, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartRows) == 0 {
		return nil, ErrCartEmpty
	}

	crew, err := s.groupRepo.ListMembers(constants.GroupDeliveryCrew)
	if err != nil {
		return nil, err
	}
	if len(crew) == 0 {
		return nil, ErrNoDeliveryCrew
	}
	assigned := crew[s.pickCrew(len(crew))]

	total := models.Money{}
	items := make([]models.OrderItem, 0, len(cartRows))
	for _, row := range cartRows {
		total = total.Add(row.Price)
		items = append(items, models.OrderItem{
			MenuItemID: row.MenuItemID,
			Quantity:   row.Quantity,
			UnitPrice:  row.UnitPrice,
			Price:      row.Price,
		})
	}

	order := &models.Order{
		UserID:         userID,
		DeliveryCrewID: &assigned.ID,
		Status:         false,
		Total:          total,
		Date:           time.Now().Truncate(24 * time.Hour),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, items); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(userID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderPlaced(queue.OrderPlacedPayload{
		OrderID:        order.ID,
		UserID:         userID,
		DeliveryCrewID: assigned.ID,
	}); err != nil {
		logger.Warnw("order_placed_enqueue_failed", "order_id", order.ID, "error", err)
	}
	return order, nil
}

func (s *OrderService) scopeFilter(actor Actor, input OrderListInput) repository.OrderListFilter {
	filter := repository.OrderListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Ordering: input.Ordering,
	}
	switch {
	case actor.IsManager():
		// 经理可见全部订单
	case actor.IsDeliveryCrew():
		filter.DeliveryCrewID = actor.UserID
	default:
		filter.UserID = actor.UserID
	}
	return filter
}

// ListOrders 按角色范围查询订单。订单集合与可见订单的全部订单项
// 使用同一组分页参数各自独立分页。
func (s *OrderService) ListOrders(actor Actor, input OrderListInput) (*OrderListResult, error) {
	filter := s.scopeFilter(actor, input)

	orders, ordersTotal, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}

	idFilter := filter
	idFilter.Page = 0
	idFilter.PageSize = 0
	visibleIDs, err := s.orderRepo.ListIDs(idFilter)
	if err != nil {
		return nil, err
	}
	items, itemsTotal, err := s.orderRepo.ListItemsByOrderIDs(visibleIDs, input.Page, input.PageSize)
	if err != nil {
		return nil, err
	}

	return &OrderListResult{
		Orders:      orders,
		OrdersTotal: ordersTotal,
		Items:       items,
		ItemsTotal:  itemsTotal,
	}, nil
}

// GetOrderItems 获取订单的订单项，仅限订单归属用户本人访问
func (s *OrderService) GetOrderItems(actor Actor, orderID uint) ([]models.OrderItem, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != actor.UserID {
		return nil, ErrNotOrderOwner
	}
	return order.Items, nil
}

// ReplaceOrder 整体更新订单。配送员不允许使用该操作；经理可更新任意订单；
// 其他用户只能更新自己的订单。
func (s *OrderService) ReplaceOrder(actor Actor, orderID uint, input UpdateOrderInput) (*models.Order, error) {
	if actor.IsDeliveryCrew() && !actor.IsManager() {
		return nil, ErrDeliveryCrewReadOnly
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !actor.IsManager() && order.UserID != actor.UserID {
		return nil, ErrOrderNotFound
	}

	return s.applyUpdate(order, input)
}

// PatchOrder 部分更新订单。配送员只能更新分配给自己的订单且仅限配送状态；
// 经理可更新任意订单的状态与配送员；其他用户不允许。
func (s *OrderService) PatchOrder(actor Actor, orderID uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	switch {
	case actor.IsManager():
	case actor.IsDeliveryCrew():
		if order.DeliveryCrewID == nil || *order.DeliveryCrewID != actor.UserID {
			return nil, ErrOrderNotFound
		}
		// 配送员只允许改配送状态
		input.DeliveryCrewID = nil
	default:
		return nil, ErrOrderUpdateForbidden
	}

	return s.applyUpdate(order, input)
}

func (s *OrderService) applyUpdate(order *models.Order, input UpdateOrderInput) (*models.Order, error) {
	statusChanged := false
	if input.Status != nil && *input.Status != order.Status {
		order.Status = *input.Status
		statusChanged = true
	}
	if input.DeliveryCrewID != nil {
		isCrew, err := s.groupRepo.HasMember(constants.GroupDeliveryCrew, *input.DeliveryCrewID)
		if err != nil {
			return nil, err
		}
		if !isCrew {
			return nil, ErrNotDeliveryCrewMember
		}
		order.DeliveryCrewID = input.DeliveryCrewID
		order.DeliveryCrew = nil
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	if statusChanged {
		if err := s.queueClient.EnqueueOrderStatusChanged(queue.OrderStatusChangedPayload{
			OrderID: order.ID,
			Status:  order.Status,
		}); err != nil {
			logger.Warnw("order_status_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}
	return order, nil
}

// DeleteOrder 删除订单，仅限经理
func (s *OrderService) DeleteOrder(actor Actor, orderID uint) error {
	if !actor.IsManager() {
		return ErrOrderUpdateForbidden
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.Delete(orderID)
}
