package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/stylemart/internal/catalog"
	"github.com/example/stylemart/internal/config"
	"github.com/example/stylemart/internal/handlers"
	"github.com/example/stylemart/internal/middleware"
	"github.com/example/stylemart/internal/otp"
	"github.com/example/stylemart/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, resolver *catalog.Resolver, codes otp.Store, sms services.SMSSender) {
	authHandler := handlers.NewAuthHandler(db, cfg, codes, sms)
	productHandler := handlers.NewProductHandler(db, resolver)
	reviewHandler := handlers.NewReviewHandler(db, resolver)
	orderHandler := handlers.NewOrderHandler(db)
	cartHandler := handlers.NewCartHandler(db, resolver)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(db, resolver)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Public catalog
	products := api.Group("/products")
	products.Get("/:category", productHandler.ListByCategory)
	products.Get("/:category/:id", productHandler.GetByCategory)

	// Reviews
	reviews := api.Group("/reviews")
	reviews.Get("/:productId", reviewHandler.ListForProduct)
	reviews.Post("/", middleware.AuthMiddleware(cfg), reviewHandler.Create)
	reviews.Put("/:id/helpful", middleware.AuthMiddleware(cfg), reviewHandler.ToggleHelpful)

	// Authenticated customer routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.Get)

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:id", cartHandler.UpdateItem)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.ClearCart)

	protected.Get("/wishlist", cartHandler.GetWishlist)
	protected.Post("/wishlist/items", cartHandler.AddWishlistItem)
	protected.Delete("/wishlist/items/:id", cartHandler.RemoveWishlistItem)

	protected.Get("/profile", profileHandler.Get)
	protected.Put("/profile", profileHandler.Update)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly(db))
	admin.Get("/summary", adminHandler.Summary)
	admin.Get("/orders", adminHandler.ListOrders)
	admin.Patch("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Delete("/orders/:id", adminHandler.DeleteOrder)
	admin.Get("/products", adminHandler.ListProducts)
	admin.Post("/products", adminHandler.CreateProduct)
	admin.Put("/products/:id", adminHandler.UpdateProduct)
	admin.Delete("/products/:id", adminHandler.DeleteProduct)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Patch("/users/:id/role", adminHandler.UpdateUserRole)
}
