package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/stylemart/internal/catalog"
	"github.com/example/stylemart/internal/logger"
	"github.com/example/stylemart/internal/middleware"
	"github.com/example/stylemart/internal/models"
	"github.com/example/stylemart/internal/response"
	"github.com/example/stylemart/internal/utils"
)

// ReviewHandler manages product reviews.
type ReviewHandler struct {
	db       *gorm.DB
	resolver *catalog.Resolver
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(db *gorm.DB, resolver *catalog.Resolver) *ReviewHandler {
	return &ReviewHandler{db: db, resolver: resolver}
}

type createReviewRequest struct {
	ProductID       string   `json:"product_id"`
	ProductCategory string   `json:"product_category"`
	Rating          int      `json:"rating"`
	Title           string   `json:"title"`
	Comment         string   `json:"comment"`
	Images          []string `json:"images"`
}

// Create submits a review. Each user may review a product once; the
// application check is backed by a unique index for concurrent submits.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.ProductID == "" || req.ProductCategory == "" || req.Title == "" || req.Comment == "" {
		return fiber.NewError(fiber.StatusBadRequest, "product_id, product_category, rating, title and comment are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fiber.NewError(fiber.StatusBadRequest, "rating must be between 1 and 5")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	table, err := h.resolver.Resolve(req.ProductCategory)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	var existing models.Review
	err = h.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "you have already reviewed this product")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	review := models.Review{
		ProductID:       productID,
		ProductCategory: table.Category,
		UserID:          userID,
		UserName:        user.Name,
		UserEmail:       user.Email,
		Rating:          req.Rating,
		Title:           strings.TrimSpace(req.Title),
		Comment:         strings.TrimSpace(req.Comment),
		Images:          req.Images,
		Status:          models.ReviewApproved,
	}

	if err := h.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, "you have already reviewed this product")
		}
		return err
	}

	h.refreshRatingAggregates(table, productID)

	return response.Created(c, fiber.Map{"review": review})
}

// refreshRatingAggregates recomputes the product row's rating columns from
// approved reviews. Best effort: a failure leaves stale aggregates, not a
// failed review.
func (h *ReviewHandler) refreshRatingAggregates(table catalog.Table, productID uuid.UUID) {
	var stats struct {
		Count   int64
		Average float64
	}
	err := h.db.Model(&models.Review{}).
		Where("product_id = ? AND status = ?", productID, models.ReviewApproved).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as average").
		Scan(&stats).Error
	if err == nil {
		err = h.db.Table(table.Name).
			Where("id = ?", productID).
			Updates(map[string]interface{}{
				"rating_average": stats.Average,
				"rating_count":   stats.Count,
			}).Error
	}
	if err != nil {
		logger.Warn("rating aggregate refresh failed",
			zap.String("product_id", productID.String()),
			zap.String("table", table.Name),
			zap.Error(err),
		)
	}
}

var reviewSortOrders = map[string]string{
	"newest":  "created_at desc",
	"oldest":  "created_at asc",
	"highest": "rating desc, created_at desc",
	"lowest":  "rating asc, created_at desc",
	"helpful": "helpful desc, created_at desc",
}

// ListForProduct returns approved reviews plus summary statistics.
func (h *ReviewHandler) ListForProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	order := reviewSortOrders[c.Query("sort", "newest")]
	if order == "" {
		order = reviewSortOrders["newest"]
	}

	limit := utils.ParsePagination(c).Limit

	var reviews []models.Review
	if err := h.db.
		Where("product_id = ? AND status = ?", productID, models.ReviewApproved).
		Order(order).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return err
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var sum int
	for _, r := range reviews {
		distribution[r.Rating]++
		sum += r.Rating
	}

	var average float64
	if len(reviews) > 0 {
		average = float64(sum) / float64(len(reviews))
		average = float64(int(average*10+0.5)) / 10
	}

	return response.OK(c, fiber.Map{
		"reviews": reviews,
		"statistics": fiber.Map{
			"total_reviews":       len(reviews),
			"average_rating":      average,
			"rating_distribution": distribution,
		},
	})
}

// ToggleHelpful flips the caller's helpful vote on a review.
func (h *ReviewHandler) ToggleHelpful(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid review id")
	}

	var review models.Review
	if err := h.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "review not found")
		}
		return err
	}

	isHelpful := review.ToggleHelpful(userID)

	if err := h.db.Model(&review).
		Updates(map[string]interface{}{
			"helpful":       review.Helpful,
			"helpful_users": review.HelpfulUsers,
		}).Error; err != nil {
		return err
	}

	return response.OK(c, fiber.Map{
		"helpful":    review.Helpful,
		"is_helpful": isHelpful,
	})
}
