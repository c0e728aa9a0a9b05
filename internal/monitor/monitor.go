// Package monitor runs the price monitoring cycle: sync the catalog, scrape
// every product once, persist the price and alert on significant moves.
// Collaborators are injected behind narrow interfaces so the cycle itself
// stays free of HTTP, HTML and SQL detail.
package monitor

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/catalog"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/model"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/notifier"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/pricing"
)

// Store is the slice of the price store the cycle needs.
type Store interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProductByURL(ctx context.Context, url string) (model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProductName(ctx context.Context, id uint, name string) error
	SavePrice(ctx context.Context, productID uint, price decimal.Decimal) error
	LatestPrice(ctx context.Context, productID uint) (decimal.NullDecimal, error)
}

// Fetcher downloads one product page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor pulls the price out of a fetched page.
type Extractor interface {
	Price(page string, url string) (decimal.Decimal, error)
}

// Notifier delivers one price alert.
type Notifier interface {
	Send(ctx context.Context, alert notifier.Alert) error
}

// CycleStats counts the outcome of one price check pass.
type CycleStats struct {
	// Checked is the number of products whose price was scraped and saved.
	Checked int

	// Changed is the number of significant price moves detected.
	Changed int

	// Errors is the number of products skipped on fetch, extraction or
	// store-write failure.
	Errors int
}

// Config wires the cycle's collaborators.
type Config struct {
	Store     Store
	Source    catalog.Source
	Fetcher   Fetcher
	Extractor Extractor
	Notifier  Notifier

	// MinPctChange is the minimum percentage move that triggers an alert.
	MinPctChange decimal.Decimal

	Log *logrus.Entry
}

// Monitor is the sequential monitoring cycle. No state is carried between
// products; every iteration reads and writes the store independently.
type Monitor struct {
	store     Store
	source    catalog.Source
	fetcher   Fetcher
	extractor Extractor
	notifier  Notifier
	minPct    decimal.Decimal
	log       *logrus.Entry
}

// New returns a Monitor from its wired collaborators.
func New(cfg *Config) *Monitor {
	return &Monitor{
		store:     cfg.Store,
		source:    cfg.Source,
		fetcher:   cfg.Fetcher,
		extractor: cfg.Extractor,
		notifier:  cfg.Notifier,
		minPct:    cfg.MinPctChange,
		log:       cfg.Log,
	}
}

// Run executes one full monitoring cycle: catalog sync, then the price
// check. A sync source failure aborts the cycle before any scraping.
func (m *Monitor) Run(ctx context.Context) (SyncStats, CycleStats, error) {
	syncStats, err := m.SyncCatalog(ctx)
	if err != nil {
		return syncStats, CycleStats{}, err
	}

	cycleStats, err := m.CheckPrices(ctx)
	if err != nil {
		return syncStats, cycleStats, err
	}

	m.log.Info("monitoring cycle completed successfully")
	return syncStats, cycleStats, nil
}

// CheckPrices scrapes every known product once, sequentially. Per-product
// failures are logged and counted; only a failed product listing or a
// canceled context stops the pass.
func (m *Monitor) CheckPrices(ctx context.Context) (CycleStats, error) {
	products, err := m.store.ListProducts(ctx)
	if err != nil {
		return CycleStats{}, fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		m.log.Warn("no products found in store")
		return CycleStats{}, nil
	}

	m.log.Infof("checking prices for %d products", len(products))

	var stats CycleStats
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		m.checkProduct(ctx, product, &stats)
	}

	m.log.Infof("price check complete: %d checked, %d changed, %d errors",
		stats.Checked, stats.Changed, stats.Errors)
	return stats, nil
}

// checkProduct runs the scrape-save-compare path for one product.
func (m *Monitor) checkProduct(ctx context.Context, product model.Product, stats *CycleStats) {
	m.log.Infof("checking %s...", product.Name)

	page, err := m.fetcher.Fetch(ctx, product.URL)
	if err != nil {
		m.log.Warnf("could not fetch page for %s: %v", product.Name, err)
		stats.Errors++
		return
	}

	newPrice, err := m.extractor.Price(page, product.URL)
	if err != nil {
		m.log.Warnf("could not extract price for %s: %v", product.Name, err)
		stats.Errors++
		return
	}

	// A failed read means no baseline, not a lost product.
	oldPrice, err := m.store.LatestPrice(ctx, product.ID)
	if err != nil {
		m.log.Errorf("error reading latest price for %s: %v", product.Name, err)
		oldPrice = decimal.NullDecimal{}
	}

	if err := m.store.SavePrice(ctx, product.ID, newPrice); err != nil {
		m.log.Errorf("error saving price for %s: %v", product.Name, err)
		stats.Errors++
		return
	}
	stats.Checked++

	change := pricing.Classify(newPrice, oldPrice)
	switch {
	case change.Significant(m.minPct):
		stats.Changed++
		m.log.Infof("price changed for %s: RM %s -> RM %s (%s%%)",
			product.Name, oldPrice.Decimal.StringFixed(2), newPrice.StringFixed(2),
			change.Percent.Decimal.StringFixed(2))

		alert := notifier.Alert{
			ProductName: product.Name,
			OldPrice:    oldPrice.Decimal,
			NewPrice:    newPrice,
			PctChange:   change.Percent.Decimal,
			URL:         product.URL,
		}
		if err := m.notifier.Send(ctx, alert); err != nil {
			m.log.Errorf("error sending alert for %s: %v", product.Name, err)
		}

	case change.Direction == pricing.DirectionNew:
		m.log.Infof("initial price recorded for %s: RM %s", product.Name, newPrice.StringFixed(2))

	default:
		m.log.Debugf("no significant price change for %s", product.Name)
	}
}
