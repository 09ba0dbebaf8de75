package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product is the row shape shared by every per-category table. The tables
// are independent; handlers pick one through the catalog resolver and scope
// queries with Table(). Category mirrors the owning table's canonical slug
// so rows from different tables can be mixed in one response.
type Product struct {
	BaseModel
	Name            string         `json:"name"`
	Brand           string         `json:"brand"`
	Category        string         `json:"category"`
	SubCategory     string         `json:"sub_category"`
	Description     string         `json:"description"`
	Images          pq.StringArray `gorm:"type:text[]" json:"images"`
	Price           float64        `json:"price"`
	MRP             float64        `json:"mrp"`
	DiscountPercent float64        `json:"discount_percent"`
	FinalPrice      float64        `json:"final_price"`
	Stock           int            `json:"stock"`
	InStock         bool           `json:"in_stock"`
	IsNewArrival    bool           `json:"is_new_arrival"`
	OnSale          bool           `json:"on_sale"`
	IsFeatured      bool           `json:"is_featured"`
	RatingAverage   float64        `json:"rating_average"`
	RatingCount     int            `json:"rating_count"`
}

// BeforeSave derives FinalPrice and InStock. Listings priced with
// mrp+discount get the discounted price; plain listings keep Price.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.MRP > 0 && p.DiscountPercent > 0 {
		p.FinalPrice = p.MRP * (1 - p.DiscountPercent/100)
	} else if p.Price > 0 {
		p.FinalPrice = p.Price
	} else {
		p.FinalPrice = p.MRP
	}
	p.InStock = p.Stock > 0
	return nil
}
