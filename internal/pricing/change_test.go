package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func nd(t *testing.T, s string) decimal.NullDecimal {
	t.Helper()
	return decimal.NullDecimal{Decimal: d(t, s), Valid: true}
}

func TestClassifyDirection(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string // empty means no previous price
		want     Direction
	}{
		{"no previous is new", "10.00", "", DirectionNew},
		{"higher is up", "12.00", "10.00", DirectionUp},
		{"lower is down", "9.50", "10.00", DirectionDown},
		{"equal is same", "10.00", "10.00", DirectionSame},
		{"equal after rescale is same", "10.0", "10.00", DirectionSame},
		{"up from zero", "3.00", "0", DirectionUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prev decimal.NullDecimal
			if tt.previous != "" {
				prev = nd(t, tt.previous)
			}
			got := Classify(d(t, tt.current), prev)
			if got.Direction != tt.want {
				t.Errorf("Classify(%s, %s) direction = %q, want %q", tt.current, tt.previous, got.Direction, tt.want)
			}
		})
	}
}

func TestClassifyDeltas(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		previous  string
		wantAbs   string
		wantPct   string // empty means percent must be undefined
	}{
		{"increase", "12.00", "10.00", "2.00", "20"},
		{"decrease", "7.50", "10.00", "-2.50", "-25"},
		{"unchanged", "10.00", "10.00", "0.00", "0"},
		{"zero previous leaves percent undefined", "5.00", "0", "5.00", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(d(t, tt.current), nd(t, tt.previous))

			if !got.Absolute.Equal(d(t, tt.wantAbs)) {
				t.Errorf("absolute = %s, want %s", got.Absolute, tt.wantAbs)
			}
			if tt.wantPct == "" {
				if got.Percent.Valid {
					t.Errorf("percent = %s, want undefined", got.Percent.Decimal)
				}
				return
			}
			if !got.Percent.Valid {
				t.Fatalf("percent undefined, want %s", tt.wantPct)
			}
			if !got.Percent.Decimal.Equal(d(t, tt.wantPct)) {
				t.Errorf("percent = %s, want %s", got.Percent.Decimal, tt.wantPct)
			}
		})
	}
}

func TestClassifyNoPrevious(t *testing.T) {
	got := Classify(d(t, "10.00"), decimal.NullDecimal{})

	if got.Direction != DirectionNew {
		t.Errorf("direction = %q, want %q", got.Direction, DirectionNew)
	}
	if !got.Absolute.IsZero() {
		t.Errorf("absolute = %s, want 0", got.Absolute)
	}
	if got.Percent.Valid {
		t.Errorf("percent = %s, want undefined", got.Percent.Decimal)
	}
}

func TestSignificant(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		previous string // empty means no previous price
		minPct   string
		want     bool
	}{
		{"no previous never significant", "100.00", "", "0.01", false},
		{"zero previous never significant", "100.00", "0", "0.01", false},
		{"same price not significant", "10.00", "10.00", "0.01", false},
		{"one cent move is noise", "10.01", "10.00", "0.01", false},
		{"two cents clears epsilon", "10.02", "10.00", "0.01", true},
		{"percent below threshold", "100.50", "100.00", "1.0", false},
		{"percent at threshold", "101.00", "100.00", "1.0", true},
		{"percent above threshold", "102.00", "100.00", "1.0", true},
		{"drop counts by magnitude", "98.00", "100.00", "1.0", true},
		{"large move tiny base", "0.02", "0.01", "1.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prev decimal.NullDecimal
			if tt.previous != "" {
				prev = nd(t, tt.previous)
			}
			change := Classify(d(t, tt.current), prev)
			if got := change.Significant(d(t, tt.minPct)); got != tt.want {
				t.Errorf("Significant(%s -> %s, min %s%%) = %v, want %v",
					tt.previous, tt.current, tt.minPct, got, tt.want)
			}
		})
	}
}
