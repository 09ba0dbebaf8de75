package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/stylemart/internal/catalog"
	"github.com/example/stylemart/internal/models"
	"github.com/example/stylemart/internal/response"
	"github.com/example/stylemart/internal/utils"
)

// ProductHandler serves the public per-category catalog.
type ProductHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB, resolver *catalog.Resolver) *ProductHandler {
	return &ProductHandler{db: db, resolver: resolver}
}

var productSortFields = map[string]string{
	"created_at":  "created_at",
	"name":        "name",
	"price":       "final_price",
	"final_price": "final_price",
	"rating":      "rating_average",
}

// ListByCategory returns paginated products from one category table with
// optional filters.
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	table, err := h.resolver.Resolve(c.Params("category"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	pg := utils.ParsePagination(c)
	query := h.db.Table(table.Name)

	if sub := c.Query("sub_category"); sub != "" {
		query = query.Where("lower(replace(replace(sub_category, '-', ''), ' ', '')) = ?", catalog.Normalize(sub))
	}

	if c.Query("is_new_arrival") == "true" {
		query = query.Where("is_new_arrival = true")
	}
	if c.Query("on_sale") == "true" {
		query = query.Where("on_sale = true")
	}
	if c.Query("is_featured") == "true" {
		query = query.Where("is_featured = true")
	}

	if search := c.Query("search"); search != "" {
		q := "%" + search + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ?", q, q)
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("final_price >= ?", val)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("final_price <= ?", val)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	sortField := productSortFields[c.Query("sort", "created_at")]
	if sortField == "" {
		sortField = "created_at"
	}
	direction := "desc"
	if c.Query("order") == "asc" {
		direction = "asc"
	}

	var products []models.Product
	if err := query.
		Order(sortField + " " + direction).
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	for i := range products {
		products[i].Category = table.Category
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"products": products},
		"pagination": fiber.Map{
			"page":  pg.Page,
			"limit": pg.Limit,
			"total": total,
		},
	})
}

// GetByCategory loads one product from its category table.
func (h *ProductHandler) GetByCategory(c *fiber.Ctx) error {
	table, err := h.resolver.Resolve(c.Params("category"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Table(table.Name).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}
	product.Category = table.Category

	return response.OK(c, fiber.Map{"product": product})
}
