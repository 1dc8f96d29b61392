package service

import (
	"fmt"
	"testing"

	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/queue"
	"github.com/littlelemon-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv 测试环境：内存数据库与各仓库
type testEnv struct {
	db           *gorm.DB
	userRepo     *repository.GormUserRepository
	groupRepo    *repository.GormGroupRepository
	categoryRepo *repository.GormCategoryRepository
	menuItemRepo *repository.GormMenuItemRepository
	cartRepo     *repository.GormCartRepository
	orderRepo    *repository.GormOrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Category{},
		&models.MenuItem{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return &testEnv{
		db:           db,
		userRepo:     repository.NewUserRepository(db),
		groupRepo:    repository.NewGroupRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		menuItemRepo: repository.NewMenuItemRepository(db),
		cartRepo:     repository.NewCartRepository(db),
		orderRepo:    repository.NewOrderRepository(db),
	}
}

func disabledQueueClient(t *testing.T) *queue.Client {
	t.Helper()
	client, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("create queue client failed: %v", err)
	}
	return client
}

func seedGroups(t *testing.T, db *gorm.DB) (manager, delivery models.Group) {
	t.Helper()
	manager = models.Group{Name: constants.GroupManager}
	delivery = models.Group{Name: constants.GroupDeliveryCrew}
	if err := db.Create(&manager).Error; err != nil {
		t.Fatalf("seed manager group failed: %v", err)
	}
	if err := db.Create(&delivery).Error; err != nil {
		t.Fatalf("seed delivery group failed: %v", err)
	}
	return manager, delivery
}

func seedUser(t *testing.T, db *gorm.DB, username string, groups ...models.Group) models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s failed: %v", username, err)
	}
	if len(groups) > 0 {
		if err := db.Model(&user).Association("Groups").Append(&groups); err != nil {
			t.Fatalf("assign groups to %s failed: %v", username, err)
		}
	}
	return user
}

func seedMenuItem(t *testing.T, db *gorm.DB, title string, price string) models.MenuItem {
	t.Helper()
	var category models.Category
	if err := db.Where("slug = ?", "mains").First(&category).Error; err != nil {
		category = models.Category{Slug: "mains", Title: "Mains"}
		if err := db.Create(&category).Error; err != nil {
			t.Fatalf("seed category failed: %v", err)
		}
	}
	item := models.MenuItem{
		Title:      title,
		Price:      moneyFromString(t, price),
		CategoryID: category.ID,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item %s failed: %v", title, err)
	}
	return item
}

func moneyFromString(t *testing.T, value string) models.Money {
	t.Helper()
	amount, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse money %s failed: %v", value, err)
	}
	return models.NewMoneyFromDecimal(amount)
}
