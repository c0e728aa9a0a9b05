package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jaydenyeong/Grocery-Sentinel/internal/model"
)

// ErrNoRecords is returned when a summary is requested for a product that
// has never been scraped. Callers skip such products instead of emitting a
// partial summary.
var ErrNoRecords = errors.New("product has no price records")

// Summary is the display-ready state of one tracked item, derived from its
// two most recent price records.
type Summary struct {
	ID            uint      `json:"id"`
	ProductName   string    `json:"product_name"`
	Store         string    `json:"store"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousPrice *float64  `json:"previous_price"`
	PriceChange   float64   `json:"price_change"`
	PercentChange *float64  `json:"percent_change"`
	Direction     Direction `json:"direction"`
	LastUpdated   time.Time `json:"last_updated"`
}

// PricePoint is one entry of an item's price history.
type PricePoint struct {
	Price     float64   `json:"price"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// History is the full chronological price series for one item, oldest first.
type History struct {
	ID          uint         `json:"id"`
	ProductName string       `json:"product_name"`
	Store       string       `json:"store"`
	History     []PricePoint `json:"history"`
}

// BuildSummary derives a Summary from a product and its price records,
// ordered newest first. Only the two most recent records are read.
func BuildSummary(p model.Product, records []model.PriceRecord, store string) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrNoRecords
	}

	latest := records[0]
	var previous decimal.NullDecimal
	if len(records) > 1 {
		previous = decimal.NullDecimal{Decimal: records[1].Price, Valid: true}
	}

	change := Classify(latest.Price, previous)

	s := Summary{
		ID:           p.ID,
		ProductName:  p.Name,
		Store:        store,
		CurrentPrice: money(latest.Price),
		PriceChange:  money(change.Absolute),
		Direction:    change.Direction,
		LastUpdated:  latest.ScrapedAt,
	}
	if previous.Valid {
		v := money(previous.Decimal)
		s.PreviousPrice = &v
	}
	if change.Percent.Valid {
		v := money(change.Percent.Decimal)
		s.PercentChange = &v
	}
	return s, nil
}

// AssembleHistory maps a product's records, ordered oldest first, to the
// response series one to one. An empty series is valid.
func AssembleHistory(p model.Product, records []model.PriceRecord, store string) History {
	points := make([]PricePoint, 0, len(records))
	for _, r := range records {
		points = append(points, PricePoint{Price: money(r.Price), ScrapedAt: r.ScrapedAt})
	}
	return History{
		ID:          p.ID,
		ProductName: p.Name,
		Store:       store,
		History:     points,
	}
}

// money converts a decimal to the currency-rounded float used in responses.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
