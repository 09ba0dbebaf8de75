package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/stylemart/internal/catalog"
	"github.com/example/stylemart/internal/middleware"
	"github.com/example/stylemart/internal/models"
	"github.com/example/stylemart/internal/response"
)

// CartHandler persists the cart and wishlist the frontend previously kept
// in local storage.
type CartHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB, resolver *catalog.Resolver) *CartHandler {
	return &CartHandler{db: db, resolver: resolver}
}

// GetCart returns the caller's cart items with a running total.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.CartItem
	if err := h.db.Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return err
	}

	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}

	return response.OK(c, fiber.Map{
		"items": items,
		"total": total,
	})
}

type cartItemRequest struct {
	ProductID   string  `json:"product_id"`
	Category    string  `json:"category"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}

// AddItem puts a product in the cart, bumping quantity when it is already
// there.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	table, err := h.resolver.Resolve(req.Category)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var item models.CartItem
	err = h.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := h.db.Save(&item).Error; err != nil {
			return err
		}
		return response.OK(c, fiber.Map{"item": item})
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:      userID,
			ProductID:   productID,
			Category:    table.Category,
			ProductName: req.ProductName,
			UnitPrice:   req.UnitPrice,
			Image:       req.Image,
			Quantity:    quantity,
		}
		if err := h.db.Create(&item).Error; err != nil {
			return err
		}
		return response.Created(c, fiber.Map{"item": item})
	default:
		return err
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets a cart line's quantity; zero removes the line.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity cannot be negative")
	}

	var item models.CartItem
	if err := h.db.First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	if req.Quantity == 0 {
		if err := h.db.Delete(&item).Error; err != nil {
			return err
		}
		return response.Message(c, "item removed from cart")
	}

	item.Quantity = req.Quantity
	if err := h.db.Save(&item).Error; err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"item": item})
}

// RemoveItem deletes one cart line.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "cart item not found")
	}

	return response.Message(c, "item removed from cart")
}

// ClearCart removes every line from the caller's cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	return response.Message(c, "cart cleared")
}

// GetWishlist returns the caller's wishlist.
func (h *CartHandler) GetWishlist(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.WishlistItem
	if err := h.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return err
	}

	return response.OK(c, fiber.Map{"items": items})
}

// AddWishlistItem saves a product to the wishlist; duplicates conflict.
func (h *CartHandler) AddWishlistItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req cartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	table, err := h.resolver.Resolve(req.Category)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	item := models.WishlistItem{
		UserID:      userID,
		ProductID:   productID,
		Category:    table.Category,
		ProductName: req.ProductName,
		UnitPrice:   req.UnitPrice,
		Image:       req.Image,
	}
	if err := h.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "product is already in the wishlist")
		}
		return err
	}

	return response.Created(c, fiber.Map{"item": item})
}

// RemoveWishlistItem deletes one wishlist entry.
func (h *CartHandler) RemoveWishlistItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "wishlist item not found")
	}

	return response.Message(c, "item removed from wishlist")
}
