// Package model defines the domain records persisted in the price store.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single catalog item tracked by the sentinel.
// Rows are created by catalog sync on first sight of a URL and are
// never deleted; only the name and cached price change afterwards.
type Product struct {
	// ID is the unique product identifier assigned by the store.
	ID uint `gorm:"column:id;primaryKey" json:"id"`

	// Name is the display name, kept in sync with the catalog spreadsheet.
	Name string `gorm:"column:name" json:"name"`

	// URL is the product page the price is scraped from. Unique per product.
	URL string `gorm:"column:url;uniqueIndex" json:"url"`

	// Price is the cached last-known price. Invalid until the first
	// successful scrape.
	Price decimal.NullDecimal `gorm:"column:price;type:numeric(12,2)" json:"price"`

	// CreatedAt is when the product was first synced into the store.
	CreatedAt time.Time `gorm:"column:created_at;default:now()" json:"created_at"`
}

// TableName overrides the table name used by Product to `products`.
func (Product) TableName() string {
	return "products"
}
