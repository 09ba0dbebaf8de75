package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/stylemart/internal/catalog"
	"github.com/example/stylemart/internal/models"
	"github.com/example/stylemart/internal/response"
	"github.com/example/stylemart/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, resolver *catalog.Resolver) *AdminHandler {
	return &AdminHandler{db: db, resolver: resolver}
}

// Summary returns aggregate statistics for the admin dashboard, including
// a per-category inventory count across every product table.
func (h *AdminHandler) Summary(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	var pendingOrders int64
	if err := h.db.Model(&models.Order{}).
		Where("status = ?", models.OrderPending).
		Count(&pendingOrders).Error; err != nil {
		return err
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.OrderCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	inventory := make(map[string]int64)
	var totalProducts int64
	for _, table := range h.resolver.Tables() {
		var count int64
		if err := h.db.Table(table.Name).Count(&count).Error; err != nil {
			return err
		}
		inventory[table.Category] = count
		totalProducts += count
	}

	return response.OK(c, fiber.Map{
		"total_users":    totalUsers,
		"total_orders":   totalOrders,
		"pending_orders": pendingOrders,
		"total_revenue":  totalRevenue,
		"total_products": totalProducts,
		"inventory":      inventory,
	})
}

// ListOrders returns all orders with their users, newest first.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"orders": orders},
		"pagination": fiber.Map{
			"page":  pg.Page,
			"limit": pg.Limit,
			"total": total,
		},
	})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus advances an order through the status machine.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !models.ValidOrderStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status value")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if !models.CanTransitionOrder(order.Status, req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "cannot move order from "+order.Status+" to "+req.Status)
	}

	order.Status = req.Status
	if req.Status == models.OrderDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := h.db.Save(&order).Error; err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"order": order})
}

// DeleteOrder removes an order and its items.
func (h *AdminHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return response.Message(c, "order deleted successfully")
}

// ListProducts returns products for one category, or a capped sample from
// every table annotated with its category.
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		table, err := h.resolver.Resolve(category)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var products []models.Product
		if err := h.db.Table(table.Name).
			Order("updated_at desc").
			Limit(200).
			Find(&products).Error; err != nil {
			return err
		}
		for i := range products {
			products[i].Category = table.Category
		}

		return response.OK(c, fiber.Map{"products": products})
	}

	var all []models.Product
	for _, table := range h.resolver.Tables() {
		var products []models.Product
		if err := h.db.Table(table.Name).
			Order("updated_at desc").
			Limit(50).
			Find(&products).Error; err != nil {
			return err
		}
		for i := range products {
			products[i].Category = table.Category
		}
		all = append(all, products...)
	}

	return response.OK(c, fiber.Map{"products": all})
}

type productRequest struct {
	Category        string   `json:"category"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	SubCategory     string   `json:"sub_category"`
	Description     string   `json:"description"`
	Images          []string `json:"images"`
	Price           float64  `json:"price"`
	MRP             float64  `json:"mrp"`
	DiscountPercent float64  `json:"discount_percent"`
	Stock           int      `json:"stock"`
	IsNewArrival    bool     `json:"is_new_arrival"`
	OnSale          bool     `json:"on_sale"`
	IsFeatured      bool     `json:"is_featured"`
}

func productFromRequest(req productRequest, table catalog.Table) models.Product {
	return models.Product{
		Name:            req.Name,
		Brand:           req.Brand,
		Category:        table.Category,
		SubCategory:     req.SubCategory,
		Description:     req.Description,
		Images:          req.Images,
		Price:           req.Price,
		MRP:             req.MRP,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		IsNewArrival:    req.IsNewArrival,
		OnSale:          req.OnSale,
		IsFeatured:      req.IsFeatured,
	}
}

// CreateProduct inserts a product into the table its category resolves to.
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	table, err := h.resolver.Resolve(req.Category)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	product := productFromRequest(req, table)
	if err := h.db.Table(table.Name).Create(&product).Error; err != nil {
		return err
	}

	return response.Created(c, fiber.Map{"product": product})
}

// UpdateProduct replaces a product's fields in its category table.
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	table, err := h.resolver.Resolve(req.Category)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var existing models.Product
	if err := h.db.Table(table.Name).First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	product := productFromRequest(req, table)
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	product.RatingAverage = existing.RatingAverage
	product.RatingCount = existing.RatingCount

	if err := h.db.Table(table.Name).Save(&product).Error; err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"product": product})
}

// DeleteProduct removes a product from the table its category resolves to.
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	table, err := h.resolver.Resolve(c.Query("category"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result := h.db.Table(table.Name).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return response.Message(c, "product deleted successfully")
}

// ListUsers returns every account, newest first.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.db.Order("created_at desc").Find(&users).Error; err != nil {
		return err
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	return response.OK(c, fiber.Map{"users": public})
}

// DeleteUser removes an account.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return response.Message(c, "user deleted successfully")
}

type updateRoleRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// UpdateUserRole grants or revokes the admin flag.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	user.IsAdmin = req.IsAdmin
	if req.IsAdmin {
		user.Role = "admin"
	} else {
		user.Role = "customer"
	}

	if err := h.db.Save(&user).Error; err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"user": user.Public()})
}
