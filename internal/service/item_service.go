// Package service assembles the read API's responses from the price store.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/pricing"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/repository"
)

// ErrItemNotFound is returned when a request names an unknown product.
var ErrItemNotFound = errors.New("item not found")

// ItemsService answers the read API's queries.
type ItemsService struct {
	repo      repository.ProductRepository
	storeName string
}

// NewItemsService returns a service labelling responses with storeName.
func NewItemsService(repo repository.ProductRepository, storeName string) *ItemsService {
	return &ItemsService{
		repo:      repo,
		storeName: storeName,
	}
}

// ListItems returns a summary for every product with at least one price
// record, ordered by name. Products that were never scraped are omitted.
func (s *ItemsService) ListItems(ctx context.Context) ([]pricing.Summary, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	latest, err := s.repo.LatestTwoPerProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest prices: %w", err)
	}

	items := make([]pricing.Summary, 0, len(products))
	for _, product := range products {
		summary, err := pricing.BuildSummary(product, latest[product.ID], s.storeName)
		if errors.Is(err, pricing.ErrNoRecords) {
			continue
		}
		if err != nil {
			return nil, err
		}
		items = append(items, summary)
	}
	return items, nil
}

// ItemHistory returns the full chronological price series for one product.
// An unknown id is ErrItemNotFound; an empty history is not an error.
func (s *ItemsService) ItemHistory(ctx context.Context, id uint) (pricing.History, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return pricing.History{}, ErrItemNotFound
	}
	if err != nil {
		return pricing.History{}, fmt.Errorf("load product %d: %w", id, err)
	}

	records, err := s.repo.HistoryAsc(ctx, id)
	if err != nil {
		return pricing.History{}, fmt.Errorf("load history for product %d: %w", id, err)
	}

	return pricing.AssembleHistory(product, records, s.storeName), nil
}
