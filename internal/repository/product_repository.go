// Package repository provides access to the product and price-history tables.
package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// ProductRepository is the store interface the monitoring cycle and the read
// API are written against.
type ProductRepository interface {
	// ListProducts returns every product ordered by name ascending.
	ListProducts(ctx context.Context) ([]model.Product, error)

	// GetProductByID returns one product or ErrNotFound.
	GetProductByID(ctx context.Context, id uint) (model.Product, error)

	// GetProductByURL returns the product scraped from url, or ErrNotFound.
	GetProductByURL(ctx context.Context, url string) (model.Product, error)

	// CreateProduct inserts a new product and fills in its ID.
	CreateProduct(ctx context.Context, product *model.Product) error

	// UpdateProductName renames an existing product.
	UpdateProductName(ctx context.Context, id uint, name string) error

	// SavePrice appends a price-history row and refreshes the product's
	// cached price in one transaction.
	SavePrice(ctx context.Context, productID uint, price decimal.Decimal) error

	// LatestPrice returns the most recent recorded price for a product.
	// Valid is false when the product has no history yet.
	LatestPrice(ctx context.Context, productID uint) (decimal.NullDecimal, error)

	// HistoryAsc returns a product's full price history, oldest first.
	HistoryAsc(ctx context.Context, productID uint) ([]model.PriceRecord, error)

	// LatestTwoPerProduct returns up to the two most recent records for
	// every product, newest first, keyed by product id.
	LatestTwoPerProduct(ctx context.Context) (map[uint][]model.PriceRecord, error)
}

type gormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository returns a ProductRepository backed by gorm.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name asc").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *gormProductRepository) GetProductByID(ctx context.Context, id uint) (model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, ErrNotFound
	}
	return product, err
}

func (r *gormProductRepository) GetProductByURL(ctx context.Context, url string) (model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "url = ?", url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, ErrNotFound
	}
	return product, err
}

func (r *gormProductRepository) CreateProduct(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormProductRepository) UpdateProductName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *gormProductRepository) SavePrice(ctx context.Context, productID uint, price decimal.Decimal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := model.PriceRecord{ProductID: productID, Price: price}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Model(&model.Product{}).
			Where("id = ?", productID).
			Update("price", decimal.NullDecimal{Decimal: price, Valid: true}).Error
	})
}

func (r *gormProductRepository) LatestPrice(ctx context.Context, productID uint) (decimal.NullDecimal, error) {
	var record model.PriceRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("scraped_at desc").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.NullDecimal{}, nil
	}
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: record.Price, Valid: true}, nil
}

func (r *gormProductRepository) HistoryAsc(ctx context.Context, productID uint) ([]model.PriceRecord, error) {
	var records []model.PriceRecord
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("scraped_at asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gormProductRepository) LatestTwoPerProduct(ctx context.Context) (map[uint][]model.PriceRecord, error) {
	subQuery := r.db.Model(&model.PriceRecord{}).
		Select("*, ROW_NUMBER() OVER (PARTITION BY product_id ORDER BY scraped_at DESC) as rn")

	var flat []model.PriceRecord
	err := r.db.WithContext(ctx).
		Table("(?) as ranked_history", subQuery).
		Where("rn <= ?", 2).
		Order("product_id, scraped_at DESC").
		Find(&flat).Error
	if err != nil {
		return nil, err
	}

	results := make(map[uint][]model.PriceRecord)
	for _, record := range flat {
		results[record.ProductID] = append(results[record.ProductID], record)
	}
	return results, nil
}
