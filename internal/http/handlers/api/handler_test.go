package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/littlelemon-api/internal/config"
	"github.com/littlelemon-api/internal/constants"
	"github.com/littlelemon-api/internal/models"
	"github.com/littlelemon-api/internal/provider"
	"github.com/littlelemon-api/internal/queue"
	"github.com/littlelemon-api/internal/repository"
	"github.com/littlelemon-api/internal/service"
)

type handlerTestEnv struct {
	db      *gorm.DB
	handler *Handler
}

func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Group{}, &models.Category{}, &models.MenuItem{},
		&models.Cart{}, &models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "handler-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireLower:  true,
		RequireNumber: true,
	}

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	menuItemRepo := repository.NewMenuItemRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("build queue client failed: %v", err)
	}

	container := &provider.Container{
		Config:          cfg,
		QueueClient:     queueClient,
		UserRepo:        userRepo,
		GroupRepo:       groupRepo,
		CategoryRepo:    categoryRepo,
		MenuItemRepo:    menuItemRepo,
		CartRepo:        cartRepo,
		OrderRepo:       orderRepo,
		AuthService:     service.NewAuthService(cfg, userRepo),
		CategoryService: service.NewCategoryService(categoryRepo),
		MenuItemService: service.NewMenuItemService(menuItemRepo, categoryRepo),
		CartService:     service.NewCartService(cartRepo, menuItemRepo),
		OrderService:    service.NewOrderService(db, orderRepo, cartRepo, groupRepo, queueClient),
		StaffService:    service.NewStaffService(groupRepo, userRepo),
	}
	return &handlerTestEnv{db: db, handler: New(container)}
}

// fakeAuth 直接注入用户身份，跳过 JWT 与路由鉴权
func fakeAuth(userID uint, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_roles", append([]string{constants.RoleAuthenticated}, roles...))
		c.Next()
	}
}

func (env *handlerTestEnv) seedUser(t *testing.T, username string, groupNames ...string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x"}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	for _, name := range groupNames {
		var group models.Group
		if err := env.db.Where("name = ?", name).FirstOrCreate(&group, models.Group{Name: name}).Error; err != nil {
			t.Fatalf("ensure group failed: %v", err)
		}
		if err := env.db.Model(user).Association("Groups").Append(&group); err != nil {
			t.Fatalf("append group failed: %v", err)
		}
	}
	return user
}

func (env *handlerTestEnv) seedMenuItem(t *testing.T, title, price string) *models.MenuItem {
	t.Helper()
	var category models.Category
	if err := env.db.Where("slug = ?", "mains").FirstOrCreate(&category, models.Category{Slug: "mains", Title: "Mains"}).Error; err != nil {
		t.Fatalf("ensure category failed: %v", err)
	}
	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	item := &models.MenuItem{Title: title, Price: models.NewMoneyFromDecimal(amount), CategoryID: category.ID}
	if err := env.db.Create(item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	return item
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, string) {
	t.Helper()
	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope failed: %v (body %s)", err, w.Body.String())
	}
	return resp.StatusCode, resp.Msg
}

func TestAddCartItemMissingMenuItem(t *testing.T) {
	env := newHandlerTestEnv(t)
	user := env.seedUser(t, "diner")

	r := gin.New()
	r.POST("/cart/menu-items", fakeAuth(user.ID), env.handler.AddCartItem)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/menu-items", strings.NewReader(`{"menuitem_id":99,"quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
}

func TestClearCartAlreadyEmpty(t *testing.T) {
	env := newHandlerTestEnv(t)
	user := env.seedUser(t, "diner")

	r := gin.New()
	r.DELETE("/cart/menu-items", fakeAuth(user.ID), env.handler.ClearCart)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart/menu-items", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	_, msg := decodeEnvelope(t, w)
	if msg != "No carts found for this user" {
		t.Fatalf("msg want exact detail, got %q", msg)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newHandlerTestEnv(t)
	user := env.seedUser(t, "diner")

	r := gin.New()
	r.POST("/orders", fakeAuth(user.ID), env.handler.PlaceOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	_, msg := decodeEnvelope(t, w)
	if msg != "No items in cart" {
		t.Fatalf("msg want 'No items in cart' got %q", msg)
	}
}

func TestPlaceOrderCreatesOrder(t *testing.T) {
	env := newHandlerTestEnv(t)
	user := env.seedUser(t, "diner")
	env.seedUser(t, "rider", constants.GroupDeliveryCrew)
	item := env.seedMenuItem(t, "Greek Salad", "8.00")
	row := models.Cart{
		UserID:     user.ID,
		MenuItemID: item.ID,
		Quantity:   2,
		UnitPrice:  item.Price,
		Price:      item.Price.MulQuantity(2),
	}
	if err := env.db.Create(&row).Error; err != nil {
		t.Fatalf("create cart row failed: %v", err)
	}

	r := gin.New()
	r.POST("/orders", fakeAuth(user.ID), env.handler.PlaceOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d (body %s)", w.Code, w.Body.String())
	}
	var remaining int64
	env.db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&remaining)
	if remaining != 0 {
		t.Fatalf("cart should be cleared, %d rows left", remaining)
	}
}

func TestGetOrderItemsForeignOrderForbidden(t *testing.T) {
	env := newHandlerTestEnv(t)
	owner := env.seedUser(t, "owner")
	other := env.seedUser(t, "other")
	order := models.Order{UserID: owner.ID}
	if err := env.db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	r := gin.New()
	r.GET("/orders/:id", fakeAuth(other.ID), env.handler.GetOrderItems)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
	_, msg := decodeEnvelope(t, w)
	if msg != "the order does not belong to authenticated user" {
		t.Fatalf("msg mismatch, got %q", msg)
	}
}

func TestPatchOrderCustomerForbidden(t *testing.T) {
	env := newHandlerTestEnv(t)
	user := env.seedUser(t, "diner")
	order := models.Order{UserID: user.ID}
	if err := env.db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	r := gin.New()
	r.PATCH("/orders/:id", fakeAuth(user.ID), env.handler.PatchOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/orders/1", strings.NewReader(`{"status":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status want 403 got %d", w.Code)
	}
}

func TestDeleteOrderManagerOnly(t *testing.T) {
	env := newHandlerTestEnv(t)
	manager := env.seedUser(t, "boss", constants.GroupManager)
	customer := env.seedUser(t, "diner")
	order := models.Order{UserID: customer.ID}
	if err := env.db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	r := gin.New()
	r.DELETE("/orders/:id", fakeAuth(manager.ID, constants.RoleManager), env.handler.DeleteOrder)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/orders/1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status want 204 got %d (body %s)", w.Code, w.Body.String())
	}
}

func TestAddGroupMemberUnknownUser(t *testing.T) {
	env := newHandlerTestEnv(t)
	var group models.Group
	if err := env.db.FirstOrCreate(&group, models.Group{Name: constants.GroupManager}).Error; err != nil {
		t.Fatalf("ensure group failed: %v", err)
	}
	manager := env.seedUser(t, "boss", constants.GroupManager)

	r := gin.New()
	r.POST("/groups/:group/users", fakeAuth(manager.ID, constants.RoleManager), env.handler.AddGroupMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/groups/manager/users", strings.NewReader(`{"username":"ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status want 404 got %d", w.Code)
	}
	_, msg := decodeEnvelope(t, w)
	if msg != "There is no user with the given username" {
		t.Fatalf("msg mismatch, got %q", msg)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newHandlerTestEnv(t)
	env.seedUser(t, "diner")

	r := gin.New()
	r.POST("/users", env.handler.Register)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"username":"diner","password":"sup3rsecret"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	_, msg := decodeEnvelope(t, w)
	if msg != "A user with that username already exists." {
		t.Fatalf("msg mismatch, got %q", msg)
	}
}

func TestRegisterBindingErrorsReturnFieldMap(t *testing.T) {
	env := newHandlerTestEnv(t)

	r := gin.New()
	r.POST("/users", env.handler.Register)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	var resp struct {
		Data struct {
			Errors map[string]string `json:"errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if len(resp.Data.Errors) == 0 {
		t.Fatalf("expected field errors map, body %s", w.Body.String())
	}
}
