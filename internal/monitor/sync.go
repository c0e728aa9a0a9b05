package monitor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/model"
	"github.com/jaydenyeong/Grocery-Sentinel/internal/repository"
)

// SyncStats counts the outcome of one catalog reconciliation.
type SyncStats struct {
	// Synced is the number of rows matched to a product, whether created,
	// renamed or already up to date.
	Synced int

	// Created is the number of products inserted on first sight of a URL.
	Created int

	// Renamed is the number of products whose name was updated in place.
	Renamed int

	// Skipped is the number of rows dropped: blank fields or store errors.
	Skipped int
}

// SyncCatalog reconciles the catalog source into the product store. Rows
// with a blank name or url are skipped and counted; a store failure on one
// row never aborts the remaining rows. A source failure aborts the cycle.
func (m *Monitor) SyncCatalog(ctx context.Context) (SyncStats, error) {
	m.log.Info("syncing products from catalog")

	rows, err := m.source.Rows(ctx)
	if err != nil {
		return SyncStats{}, fmt.Errorf("sync catalog: %w", err)
	}

	var stats SyncStats
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		url := strings.TrimSpace(row.URL)

		if url == "" {
			m.log.Warnf("skipping catalog row with missing url (item %q)", name)
			stats.Skipped++
			continue
		}
		if name == "" {
			m.log.Warnf("skipping catalog row with missing item name for url: %s", url)
			stats.Skipped++
			continue
		}

		existing, err := m.store.GetProductByURL(ctx, url)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			product := model.Product{Name: name, URL: url}
			if err := m.store.CreateProduct(ctx, &product); err != nil {
				m.log.Errorf("error creating product %s (%s): %v", name, url, err)
				stats.Skipped++
				continue
			}
			m.log.Infof("added new product: %s (%s)", name, url)
			stats.Created++

		case err != nil:
			m.log.Errorf("error looking up product %s (%s): %v", name, url, err)
			stats.Skipped++
			continue

		case existing.Name != name:
			if err := m.store.UpdateProductName(ctx, existing.ID, name); err != nil {
				m.log.Errorf("error renaming product %s (%s): %v", name, url, err)
				stats.Skipped++
				continue
			}
			m.log.Infof("updated product: %s (%s)", name, url)
			stats.Renamed++

		default:
			m.log.Debugf("product already exists: %s", name)
		}
		stats.Synced++
	}

	m.log.Infof("sync complete: %d products synced, %d skipped", stats.Synced, stats.Skipped)
	return stats, nil
}
