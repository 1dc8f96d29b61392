package service

import (
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/repository"
)

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID     uint
	MenuItemID uint
	Quantity   int
}

// UpdateCartItemInput 更新购物车行输入
type UpdateCartItemInput struct {
	UserID     uint
	CartID     uint
	MenuItemID *uint
	Quantity   *int
}

// CartService 购物车服务
type CartService struct {
	cartRepo     repository.CartRepository
	menuItemRepo repository.MenuItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuItemRepo repository.MenuItemRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		menuItemRepo: menuItemRepo,
	}
}

// ListByUser 获取用户购物车
func (s *CartService) ListByUser(userID uint) ([]models.Cart, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.cartRepo.ListByUser(userID)
}

// AddItem 新增购物车行。同一菜品重复添加会产生新行，不做合并。
func (s *CartService) AddItem(input AddCartItemInput) (*models.Cart, error) {
	if input.UserID == 0 || input.MenuItemID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.menuItemRepo.GetByID(input.MenuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	row := &models.Cart{
		UserID:     input.UserID,
		MenuItemID: input.MenuItemID,
		Quantity:   input.Quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.MulQuantity(input.Quantity),
	}
	if err := s.cartRepo.Create(row); err != nil {
		return nil, err
	}
	row.MenuItem = item
	return row, nil
}

// UpdateItem 更新购物车行。单价从菜品当前价格重新读取，行金额重算。
func (s *CartService) UpdateItem(input UpdateCartItemInput) (*models.Cart, error) {
	if input.UserID == 0 || input.CartID == 0 {
		return nil, ErrInvalidInput
	}

	row, err := s.cartRepo.GetByIDAndUser(input.CartID, input.UserID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrCartItemNotFound
	}

	if input.MenuItemID != nil {
		row.MenuItemID = *input.MenuItemID
	}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		row.Quantity = *input.Quantity
	}

	item, err := s.menuItemRepo.GetByID(row.MenuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	row.UnitPrice = item.Price
	row.Price = item.Price.MulQuantity(row.Quantity)
	if err := s.cartRepo.Update(row); err != nil {
		return nil, err
	}
	row.MenuItem = item
	return row, nil
}

// Clear 清空用户购物车。购物车已空时返回 ErrNoCartsForUser。
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	count, err := s.cartRepo.CountByUser(userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoCartsForUser
	}
	return s.cartRepo.ClearByUser(userID)
}
