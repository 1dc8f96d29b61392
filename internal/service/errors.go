package service

import "errors"

// 业务哨兵错误，由 handler 层通过 errors.Is 映射为响应状态
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("A user with that username already exists.")
	ErrUsernameRequired   = errors.New("Username is required")
	ErrWeakPassword       = errors.New("password does not meet the policy")

	ErrSlugExists       = errors.New("category with this slug already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has menu items")
	ErrInvalidPrice     = errors.New("price must be greater than zero")

	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrCartEmpty        = errors.New("No items in cart")
	ErrNoCartsForUser   = errors.New("No carts found for this user")

	ErrNoDeliveryCrew        = errors.New("No delivery crew available")
	ErrOrderNotFound         = errors.New("order not found")
	ErrNotOrderOwner         = errors.New("the order does not belong to authenticated user")
	ErrDeliveryCrewReadOnly  = errors.New("Delivery crew members are not allowed to update orders.")
	ErrOrderUpdateForbidden  = errors.New("not allowed to update this order")
	ErrNotDeliveryCrewMember = errors.New("assigned user is not a delivery crew member")

	ErrUserNotFound    = errors.New("There is no user with the given username")
	ErrGroupNotFound   = errors.New("group not found")
	ErrAlreadyManager  = errors.New("The user is already a manager")
	ErrAlreadyDelivery = errors.New("The user is already a Delivery crew")
)
