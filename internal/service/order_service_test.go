package service

import (
	"errors"
	"testing"

	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/models"
)

func newOrderService(t *testing.T) (*OrderService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewOrderService(env.db, env.orderRepo, env.cartRepo, env.groupRepo, disabledQueueClient(t))
	svc.pickCrew = func(n int) int { return 0 }
	return svc, env
}

func addCartRow(t *testing.T, env *testEnv, userID uint, item models.MenuItem, quantity int) {
	t.Helper()
	row := models.Cart{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.MulQuantity(quantity),
	}
	if err := env.db.Create(&row).Error; err != nil {
		t.Fatalf("seed cart row failed: %v", err)
	}
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	svc, env := newOrderService(t)
	_, deliveryGroup := seedGroups(t, env.db)
	customer := seedUser(t, env.db, "customer")
	crew := seedUser(t, env.db, "crew", deliveryGroup)

	salad := seedMenuItem(t, env.db, "Greek Salad", "12.50")
	dessert := seedMenuItem(t, env.db, "Lemon Dessert", "4.25")
	addCartRow(t, env, customer.ID, salad, 2)
	addCartRow(t, env, customer.ID, dessert, 1)

	order, err := svc.PlaceOrder(customer.ID)
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if order.Total.String() != "29.25" {
		t.Fatalf("expected total 29.25, got %s", order.Total.String())
	}
	if order.Status {
		t.Fatalf("expected new order to be undelivered")
	}
	if order.DeliveryCrewID == nil || *order.DeliveryCrewID != crew.ID {
		t.Fatalf("expected delivery crew %d assigned, got %+v", crew.ID, order.DeliveryCrewID)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}

	var cartCount int64
	if err := env.db.Model(&models.Cart{}).Where("user_id = ?", customer.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart rows failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d rows", cartCount)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc, env := newOrderService(t)
	seedGroups(t, env.db)
	customer := seedUser(t, env.db, "customer")

	_, err := svc.PlaceOrder(customer.ID)
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got: %v", err)
	}
}

func TestPlaceOrderNoDeliveryCrew(t *testing.T) {
	svc, env := newOrderService(t)
	seedGroups(t, env.db)
	customer := seedUser(t, env.db, "customer")
	item := seedMenuItem(t, env.db, "Pasta", "9.00")
	addCartRow(t, env, customer.ID, item, 1)

	_, err := svc.PlaceOrder(customer.ID)
	if !errors.Is(err, ErrNoDeliveryCrew) {
		t.Fatalf("expected ErrNoDeliveryCrew, got: %v", err)
	}

	// 失败时不留下部分订单
	var orderCount int64
	if err := env.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}
}

func placeOrderFor(t *testing.T, svc *OrderService, env *testEnv, user models.User) *models.Order {
	t.Helper()
	item := seedMenuItem(t, env.db, "Grilled Fish", "15.00")
	addCartRow(t, env, user.ID, item, 1)
	order, err := svc.PlaceOrder(user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder for %s error: %v", user.Username, err)
	}
	return order
}

func TestListOrdersScopes(t *testing.T) {
	svc, env := newOrderService(t)
	managerGroup, deliveryGroup := seedGroups(t, env.db)
	manager := seedUser(t, env.db, "manager", managerGroup)
	crew := seedUser(t, env.db, "crew", deliveryGroup)
	alice := seedUser(t, env.db, "alice")
	bob := seedUser(t, env.db, "bob")

	placeOrderFor(t, svc, env, alice)
	placeOrderFor(t, svc, env, bob)

	managerActor := Actor{UserID: manager.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleManager}}
	crewActor := Actor{UserID: crew.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleDeliveryCrew}}
	aliceActor := Actor{UserID: alice.ID, Roles: []string{constants.RoleAuthenticated}}

	managerResult, err := svc.ListOrders(managerActor, OrderListInput{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListOrders manager error: %v", err)
	}
	if managerResult.OrdersTotal != 2 {
		t.Fatalf("expected manager to see 2 orders, got %d", managerResult.OrdersTotal)
	}

	crewResult, err := svc.ListOrders(crewActor, OrderListInput{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListOrders crew error: %v", err)
	}
	if crewResult.OrdersTotal != 2 {
		t.Fatalf("expected crew to see 2 assigned orders, got %d", crewResult.OrdersTotal)
	}

	aliceResult, err := svc.ListOrders(aliceActor, OrderListInput{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListOrders customer error: %v", err)
	}
	if aliceResult.OrdersTotal != 1 {
		t.Fatalf("expected customer to see 1 order, got %d", aliceResult.OrdersTotal)
	}
	if aliceResult.ItemsTotal != 1 {
		t.Fatalf("expected 1 visible order item, got %d", aliceResult.ItemsTotal)
	}
}

func TestListOrdersDualPagination(t *testing.T) {
	svc, env := newOrderService(t)
	managerGroup, deliveryGroup := seedGroups(t, env.db)
	manager := seedUser(t, env.db, "manager", managerGroup)
	seedUser(t, env.db, "crew", deliveryGroup)
	customer := seedUser(t, env.db, "customer")

	salad := seedMenuItem(t, env.db, "Greek Salad", "12.50")
	dessert := seedMenuItem(t, env.db, "Lemon Dessert", "4.25")
	addCartRow(t, env, customer.ID, salad, 1)
	addCartRow(t, env, customer.ID, dessert, 1)
	if _, err := svc.PlaceOrder(customer.ID); err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	managerActor := Actor{UserID: manager.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleManager}}
	result, err := svc.ListOrders(managerActor, OrderListInput{Page: 2, PageSize: 1})
	if err != nil {
		t.Fatalf("ListOrders error: %v", err)
	}
	// 第二页：订单集合已空，订单项仍有第二条
	if len(result.Orders) != 0 {
		t.Fatalf("expected no orders on page 2, got %d", len(result.Orders))
	}
	if result.OrdersTotal != 1 {
		t.Fatalf("expected orders total 1, got %d", result.OrdersTotal)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 order item on page 2, got %d", len(result.Items))
	}
	if result.ItemsTotal != 2 {
		t.Fatalf("expected items total 2, got %d", result.ItemsTotal)
	}
}

func TestGetOrderItemsOwnerOnly(t *testing.T) {
	svc, env := newOrderService(t)
	managerGroup, deliveryGroup := seedGroups(t, env.db)
	manager := seedUser(t, env.db, "manager", managerGroup)
	seedUser(t, env.db, "crew", deliveryGroup)
	customer := seedUser(t, env.db, "customer")

	order := placeOrderFor(t, svc, env, customer)

	ownerActor := Actor{UserID: customer.ID, Roles: []string{constants.RoleAuthenticated}}
	items, err := svc.GetOrderItems(ownerActor, order.ID)
	if err != nil {
		t.Fatalf("GetOrderItems owner error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	// 即使是经理，非本人订单也拒绝
	managerActor := Actor{UserID: manager.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleManager}}
	if _, err := svc.GetOrderItems(managerActor, order.ID); !errors.Is(err, ErrNotOrderOwner) {
		t.Fatalf("expected ErrNotOrderOwner, got: %v", err)
	}

	if _, err := svc.GetOrderItems(ownerActor, 9999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got: %v", err)
	}
}

func TestReplaceOrderDeliveryCrewForbidden(t *testing.T) {
	svc, env := newOrderService(t)
	_, deliveryGroup := seedGroups(t, env.db)
	crew := seedUser(t, env.db, "crew", deliveryGroup)
	customer := seedUser(t, env.db, "customer")
	order := placeOrderFor(t, svc, env, customer)

	crewActor := Actor{UserID: crew.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleDeliveryCrew}}
	status := true
	_, err := svc.ReplaceOrder(crewActor, order.ID, UpdateOrderInput{Status: &status})
	if !errors.Is(err, ErrDeliveryCrewReadOnly) {
		t.Fatalf("expected ErrDeliveryCrewReadOnly, got: %v", err)
	}
}

func TestReplaceOrderCustomerScope(t *testing.T) {
	svc, env := newOrderService(t)
	_, deliveryGroup := seedGroups(t, env.db)
	alice := seedUser(t, env.db, "alice")
	bob := seedUser(t, env.db, "bob")
	seedUser(t, env.db, "crew", deliveryGroup)

	aliceOrder := placeOrderFor(t, svc, env, alice)

	bobActor := Actor{UserID: bob.ID, Roles: []string{constants.RoleAuthenticated}}
	status := true
	_, err := svc.ReplaceOrder(bobActor, aliceOrder.ID, UpdateOrderInput{Status: &status})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound outside own scope, got: %v", err)
	}
}

func TestReplaceOrderValidatesCrewMembership(t *testing.T) {
	svc, env := newOrderService(t)
	managerGroup, deliveryGroup := seedGroups(t, env.db)
	manager := seedUser(t, env.db, "manager", managerGroup)
	seedUser(t, env.db, "crew", deliveryGroup)
	customer := seedUser(t, env.db, "customer")
	order := placeOrderFor(t, svc, env, customer)

	managerActor := Actor{UserID: manager.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleManager}}
	_, err := svc.ReplaceOrder(managerActor, order.ID, UpdateOrderInput{DeliveryCrewID: &customer.ID})
	if !errors.Is(err, ErrNotDeliveryCrewMember) {
		t.Fatalf("expected ErrNotDeliveryCrewMember, got: %v", err)
	}
}

func TestPatchOrderDeliveryCrewScope(t *testing.T) {
	svc, env := newOrderService(t)
	_, deliveryGroup := seedGroups(t, env.db)
	crewA := seedUser(t, env.db, "crew-a", deliveryGroup)
	crewB := seedUser(t, env.db, "crew-b", deliveryGroup)
	customer := seedUser(t, env.db, "customer")

	// pickCrew 固定取第一个，订单分配给 crew-a
	order := placeOrderFor(t, svc, env, customer)

	crewBActor := Actor{UserID: crewB.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleDeliveryCrew}}
	status := true
	if _, err := svc.PatchOrder(crewBActor, order.ID, UpdateOrderInput{Status: &status}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for unassigned crew, got: %v", err)
	}

	crewAActor := Actor{UserID: crewA.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleDeliveryCrew}}
	updated, err := svc.PatchOrder(crewAActor, order.ID, UpdateOrderInput{Status: &status, DeliveryCrewID: &crewB.ID})
	if err != nil {
		t.Fatalf("PatchOrder assigned crew error: %v", err)
	}
	if !updated.Status {
		t.Fatalf("expected status updated to delivered")
	}
	// 配送员提交的 delivery_crew 字段被忽略
	if updated.DeliveryCrewID == nil || *updated.DeliveryCrewID != crewA.ID {
		t.Fatalf("expected delivery crew unchanged, got %+v", updated.DeliveryCrewID)
	}
}

func TestPatchOrderCustomerForbidden(t *testing.T) {
	svc, env := newOrderService(t)
	_, deliveryGroup := seedGroups(t, env.db)
	seedUser(t, env.db, "crew", deliveryGroup)
	customer := seedUser(t, env.db, "customer")
	order := placeOrderFor(t, svc, env, customer)

	actor := Actor{UserID: customer.ID, Roles: []string{constants.RoleAuthenticated}}
	status := true
	if _, err := svc.PatchOrder(actor, order.ID, UpdateOrderInput{Status: &status}); !errors.Is(err, ErrOrderUpdateForbidden) {
		t.Fatalf("expected ErrOrderUpdateForbidden, got: %v", err)
	}
}

func TestDeleteOrderManagerOnly(t *testing.T) {
	svc, env := newOrderService(t)
	managerGroup, deliveryGroup := seedGroups(t, env.db)
	manager := seedUser(t, env.db, "manager", managerGroup)
	seedUser(t, env.db, "crew", deliveryGroup)
	customer := seedUser(t, env.db, "customer")
	order := placeOrderFor(t, svc, env, customer)

	customerActor := Actor{UserID: customer.ID, Roles: []string{constants.RoleAuthenticated}}
	if err := svc.DeleteOrder(customerActor, order.ID); !errors.Is(err, ErrOrderUpdateForbidden) {
		t.Fatalf("expected ErrOrderUpdateForbidden, got: %v", err)
	}

	managerActor := Actor{UserID: manager.ID, Roles: []string{constants.RoleAuthenticated, constants.RoleManager}}
	if err := svc.DeleteOrder(managerActor, order.ID); err != nil {
		t.Fatalf("DeleteOrder error: %v", err)
	}
	if err := svc.DeleteOrder(managerActor, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound after delete, got: %v", err)
	}

	var itemCount int64
	if err := env.db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count order items failed: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected order items removed, got %d", itemCount)
	}
}
