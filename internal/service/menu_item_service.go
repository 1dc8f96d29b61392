package service

import (
	"strings"

	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/repository"
)

// MenuItemInput 创建/更新菜品输入
type MenuItemInput struct {
	Title      string
	Price      models.Money
	Featured   bool
	CategoryID uint
}

// MenuItemService 菜品服务
type MenuItemService struct {
	menuItemRepo repository.MenuItemRepository
	categoryRepo repository.CategoryRepository
}

// NewMenuItemService 创建菜品服务
func NewMenuItemService(menuItemRepo repository.MenuItemRepository, categoryRepo repository.CategoryRepository) *MenuItemService {
	return &MenuItemService{
		menuItemRepo: menuItemRepo,
		categoryRepo: categoryRepo,
	}
}

// List 菜品列表
func (s *MenuItemService) List(filter repository.MenuItemListFilter) ([]models.MenuItem, error) {
	return s.menuItemRepo.List(filter)
}

// Get 获取菜品详情
func (s *MenuItemService) Get(id uint) (*models.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}

func (s *MenuItemService) validateInput(input MenuItemInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrInvalidInput
	}
	if !input.Price.GreaterThan(models.Money{}.Decimal) {
		return ErrInvalidPrice
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

// Create 创建菜品
func (s *MenuItemService) Create(input MenuItemInput) (*models.MenuItem, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		Title:      strings.TrimSpace(input.Title),
		Price:      input.Price,
		Featured:   input.Featured,
		CategoryID: input.CategoryID,
	}
	if err := s.menuItemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update 整体更新菜品
func (s *MenuItemService) Update(id uint, input MenuItemInput) (*models.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	item.Title = strings.TrimSpace(input.Title)
	item.Price = input.Price
	item.Featured = input.Featured
	item.CategoryID = input.CategoryID
	item.Category = nil
	if err := s.menuItemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Patch 部分更新菜品
func (s *MenuItemService) Patch(id uint, title *string, price *models.Money, featured *bool, categoryID *uint) (*models.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	if title != nil && strings.TrimSpace(*title) != "" {
		item.Title = strings.TrimSpace(*title)
	}
	if price != nil {
		if !price.GreaterThan(models.Money{}.Decimal) {
			return nil, ErrInvalidPrice
		}
		item.Price = *price
	}
	if featured != nil {
		item.Featured = *featured
	}
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(*categoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		item.CategoryID = *categoryID
		item.Category = nil
	}
	if err := s.menuItemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除菜品
func (s *MenuItemService) Delete(id uint) error {
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}
	return s.menuItemRepo.Delete(id)
}
