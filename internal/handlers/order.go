package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/stylemart/internal/middleware"
	"github.com/example/stylemart/internal/models"
	"github.com/example/stylemart/internal/response"
	"github.com/example/stylemart/internal/utils"
)

// OrderHandler manages order endpoints for authenticated customers.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type orderItemRequest struct {
	ProductID   string  `json:"product_id"`
	Category    string  `json:"category"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type createOrderRequest struct {
	Items         []orderItemRequest `json:"items"`
	ShippingFee   float64            `json:"shipping_fee"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
}

// Create places an order for the authenticated user. Line totals and the
// order total are computed server-side.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "order must contain at least one item")
	}

	now := time.Now()
	order := models.Order{
		UserID:        userID,
		OrderNumber:   models.NewOrderNumber(now),
		Status:        models.OrderPending,
		PlacedAt:      now,
		ShippingFee:   req.ShippingFee,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}

	var subtotal float64
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "item quantity must be positive")
		}

		line := models.OrderItem{
			Category:    item.Category,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.UnitPrice * float64(item.Quantity),
		}
		if item.ProductID != "" {
			if id, err := uuid.Parse(item.ProductID); err == nil {
				line.ProductID = &id
			}
		}

		subtotal += line.LineTotal
		order.Items = append(order.Items, line)
	}

	order.Subtotal = subtotal
	order.TotalAmount = subtotal + order.ShippingFee

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return response.Created(c, fiber.Map{
		"id":           order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
		"placed_at":    order.PlacedAt,
		"total_amount": order.TotalAmount,
	})
}

// List returns the caller's orders, newest first.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("user_id = ?", userID).
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

// Get returns one of the caller's orders.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return response.OK(c, fiber.Map{"order": order})
}
