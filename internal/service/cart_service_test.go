package service

import (
	"errors"
	"testing"
)

func newCartService(t *testing.T) (*CartService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewCartService(env.cartRepo, env.menuItemRepo)
	return svc, env
}

func TestAddItemSnapshotsUnitPrice(t *testing.T) {
	svc, env := newCartService(t)
	user := seedUser(t, env.db, "customer")
	item := seedMenuItem(t, env.db, "Greek Salad", "12.50")

	row, err := svc.AddItem(AddCartItemInput{UserID: user.ID, MenuItemID: item.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if row.UnitPrice.String() != "12.50" {
		t.Fatalf("expected unit price 12.50, got %s", row.UnitPrice.String())
	}
	if row.Price.String() != "37.50" {
		t.Fatalf("expected price 37.50, got %s", row.Price.String())
	}
}

func TestAddItemDuplicatesCreateSeparateRows(t *testing.T) {
	svc, env := newCartService(t)
	user := seedUser(t, env.db, "customer")
	item := seedMenuItem(t, env.db, "Bruschetta", "6.00")

	for i := 0; i < 2; i++ {
		if _, err := svc.AddItem(AddCartItemInput{UserID: user.ID, MenuItemID: item.ID, Quantity: 1}); err != nil {
			t.Fatalf("AddItem error: %v", err)
		}
	}
	rows, err := svc.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 separate cart rows, got %d", len(rows))
	}
}

func TestAddItemMissingMenuItem(t *testing.T) {
	svc, env := newCartService(t)
	user := seedUser(t, env.db, "customer")

	_, err := svc.AddItem(AddCartItemInput{UserID: user.ID, MenuItemID: 999, Quantity: 1})
	if !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got: %v", err)
	}
}

func TestAddItemInvalidQuantity(t *testing.T) {
	svc, env := newCartService(t)
	user := seedUser(t, env.db, "customer")
	item := seedMenuItem(t, env.db, "Hummus", "5.00")

	_, err := svc.AddItem(AddCartItemInput{UserID: user.ID, MenuItemID: item.ID, Quantity: 0})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got: %v", err)
	}
}

func TestUpdateItemRecomputesFromCurrentPrice(t *testing.T) {
	svc, env := newCartService(t)
	user := seedUser(t, env.db, "customer")
	item := seedMenuItem(t, env.db, "Lemon Dessert", "4.00")

	row, err := svc.AddItem(AddCartItemInput{UserID: user.ID, MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	// 菜品涨价后更新数量，单价应取当前价格
	if err := env.db.Model(&item).Update("price", moneyFromString(t, "5.50")).Error; err != nil {
		t.Fatalf("update menu price failed: %v", err)
	}

	quantity := 2
	updated, err := svc.UpdateItem(UpdateCartItemInput{UserID: user.ID, CartID: row.ID, Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if updated.UnitPrice.String() != "5.50" {
		t.Fatalf("expected unit price 5.50, got %s", updated.UnitPrice.String())
	}
	if updated.Price.String() != "11.00" {
		t.Fatalf("expected price 11.00, got %s", updated.Price.String())
	}
}

func TestUpdateItemNotOwnRow(t *testing.T) {
	svc, env := newCartService(t)
	owner := seedUser(t, env.db, "owner")
	other := seedUser(t, env.db, "other")
	item := seedMenuItem(t, env.db, "Falafel", "7.00")

	row, err := svc.AddItem(AddCartItemInput{UserID: owner.ID, MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	quantity := 2
	_, err = svc.UpdateItem(UpdateCartItemInput{UserID: other.ID, CartID: row.ID, Quantity: &quantity})
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got: %v", err)
	}
}

func TestClearEmptyCart(t *testing.T) {
	svc, env := newCartService(t)
	user := seedUser(t, env.db, "customer")

	if err := svc.Clear(user.ID); !errors.Is(err, ErrNoCartsForUser) {
		t.Fatalf("expected ErrNoCartsForUser, got: %v", err)
	}
}

func TestClearCart(t *testing.T) {
	svc, env := newCartService(t)
	user := seedUser(t, env.db, "customer")
	item := seedMenuItem(t, env.db, "Pasta", "9.00")

	if _, err := svc.AddItem(AddCartItemInput{UserID: user.ID, MenuItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := svc.Clear(user.ID); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	rows, err := svc.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty cart, got %d rows", len(rows))
	}
}
