// Package pricing turns raw price records into classified changes, item
// summaries and history series. It is pure data transformation: no I/O,
// no stored state.
package pricing

import "github.com/shopspring/decimal"

// Direction labels how a price moved relative to its previous observation.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionSame Direction = "same"
	DirectionNew  Direction = "new"
)

// epsilon is the minimum absolute move, in currency units, below which a
// change is treated as noise no matter what the percentage threshold says.
var epsilon = decimal.NewFromFloat(0.01)

var oneHundred = decimal.NewFromInt(100)

// Change is the classified movement between a product's current price and
// its previous one.
type Change struct {
	Current  decimal.Decimal
	Previous decimal.NullDecimal

	// Absolute is current minus previous, zero when there is no previous.
	Absolute decimal.Decimal

	// Percent is the relative change. Invalid when there is no previous
	// price or the previous price is zero: "no prior data" must not be
	// read as "no change".
	Percent decimal.NullDecimal

	Direction Direction
}

// Classify computes delta, percentage and direction for a current price and
// an optional previous price.
func Classify(current decimal.Decimal, previous decimal.NullDecimal) Change {
	c := Change{Current: current, Previous: previous, Direction: DirectionNew}
	if !previous.Valid {
		return c
	}

	c.Absolute = current.Sub(previous.Decimal)
	switch current.Cmp(previous.Decimal) {
	case 1:
		c.Direction = DirectionUp
	case -1:
		c.Direction = DirectionDown
	default:
		c.Direction = DirectionSame
	}

	if !previous.Decimal.IsZero() {
		c.Percent = decimal.NullDecimal{
			Decimal: c.Absolute.Div(previous.Decimal).Mul(oneHundred),
			Valid:   true,
		}
	}
	return c
}

// Significant reports whether the change clears the alert threshold minPct
// (a percentage). A product's first recorded price is never significant, and
// moves of at most one cent are ignored outright.
func (c Change) Significant(minPct decimal.Decimal) bool {
	if !c.Previous.Valid || !c.Previous.Decimal.IsPositive() {
		return false
	}
	if !c.Absolute.Abs().GreaterThan(epsilon) {
		return false
	}
	return c.Percent.Valid && c.Percent.Decimal.Abs().GreaterThanOrEqual(minPct)
}
