package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/littlelemon-api/internal/config"
	"github.com/littlelemon-api/internal/logger"
	"github.com/littlelemon-api/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 内置分组
	if err := models.InitGroups(); err != nil {
		stdLog.Fatalf("Failed to init groups: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "appetizers", Title: "Appetizers"},
		{Slug: "mains", Title: "Main Courses"},
		{Slug: "desserts", Title: "Desserts"},
		{Slug: "drinks", Title: "Drinks"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"appetizers", "mains", "desserts", "drinks"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加菜品
	type menuItemSeed struct {
		Title        string
		Price        float64
		Featured     bool
		CategorySlug string
	}
	menuItems := []menuItemSeed{
		{Title: "Bruschetta", Price: 6.50, Featured: false, CategorySlug: "appetizers"},
		{Title: "Greek Salad", Price: 8.00, Featured: true, CategorySlug: "appetizers"},
		{Title: "Lemon Herb Chicken", Price: 15.50, Featured: true, CategorySlug: "mains"},
		{Title: "Grilled Fish", Price: 17.00, Featured: false, CategorySlug: "mains"},
		{Title: "Pasta Primavera", Price: 12.50, Featured: false, CategorySlug: "mains"},
		{Title: "Lemon Dessert", Price: 5.00, Featured: true, CategorySlug: "desserts"},
		{Title: "Baklava", Price: 6.00, Featured: false, CategorySlug: "desserts"},
		{Title: "Fresh Lemonade", Price: 3.50, Featured: false, CategorySlug: "drinks"},
	}

	for _, seed := range menuItems {
		categoryID := categoryIDs[seed.CategorySlug]
		if categoryID == 0 {
			stdLog.Printf("Skip menu item %s: category %s missing", seed.Title, seed.CategorySlug)
			continue
		}
		item := models.MenuItem{
			Title:      seed.Title,
			Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(seed.Price)),
			Featured:   seed.Featured,
			CategoryID: categoryID,
		}
		var existing models.MenuItem
		if err := models.DB.Where("title = ?", item.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create menu item %s: %v", item.Title, err)
			} else {
				stdLog.Printf("Created menu item: %s", item.Title)
			}
		} else {
			existing.Price = item.Price
			existing.Featured = item.Featured
			existing.CategoryID = item.CategoryID
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update menu item %s: %v", item.Title, err)
			} else {
				stdLog.Printf("Updated menu item: %s", item.Title)
			}
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Categories")
	fmt.Println("- 8 Menu items")
	fmt.Println("- Builtin groups (Manager / Delivery crew)")
}
