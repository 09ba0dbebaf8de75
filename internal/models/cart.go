package models

import "github.com/google/uuid"

// CartItem is one product in a user's server-side cart. A product appears
// at most once per cart; adding it again bumps the quantity.
type CartItem struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Category    string    `json:"category"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Image       string    `json:"image"`
	Quantity    int       `json:"quantity"`
}

// WishlistItem is one product saved to a user's wishlist.
type WishlistItem struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	Category    string    `json:"category"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Image       string    `json:"image"`
}
