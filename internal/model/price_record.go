package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is one observed price for a product. Records are append-only;
// the latest price per product is the record with the greatest ScrapedAt.
type PriceRecord struct {
	// ID is the unique record identifier assigned by the store.
	ID uint `gorm:"column:id;primaryKey" json:"id"`

	// ProductID references the product the price belongs to.
	ProductID uint `gorm:"column:product_id;index:idx_price_history_product_time" json:"product_id"`

	// Price is the scraped price in store currency. Never negative.
	Price decimal.Decimal `gorm:"column:price;type:numeric(12,2)" json:"price"`

	// ScrapedAt is the capture instant, assigned by the store on insert.
	ScrapedAt time.Time `gorm:"column:scraped_at;default:now();index:idx_price_history_product_time" json:"scraped_at"`
}

// TableName overrides the table name used by PriceRecord to `price_history`.
func (PriceRecord) TableName() string {
	return "price_history"
}
