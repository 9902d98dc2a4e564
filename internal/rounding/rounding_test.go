package rounding

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  float64
		places int32
		want   float64
	}{
		{"two places", 59.8802, 2, 59.88},
		{"half rounds up", 1.005, 2, 1.01},
		{"negative half away from zero", -2.345, 2, -2.35},
		{"one place", 598.8023952, 1, 598.8},
		{"one place carry", 11.976, 1, 12},
		{"zero", 0, 2, 0},
		{"nan", math.NaN(), 2, 0},
		{"positive infinity", math.Inf(1), 2, 0},
		{"negative infinity", math.Inf(-1), 1, 0},
		{"max float", math.MaxFloat64, 1, math.MaxFloat64},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Round(tt.value, tt.places); got != tt.want {
				t.Fatalf("Round(%v, %d) = %v, want %v", tt.value, tt.places, got, tt.want)
			}
		})
	}
}

func TestCeilCommercial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"small value", "13", "100"},
		{"exact multiple", "200", "200"},
		{"just above multiple", "200.01", "300"},
		{"zero", "0", "0"},
		{"large", "4321.5", "4400"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CeilCommercial(decimal.RequireFromString(tt.value))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("CeilCommercial(%s) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestDecimalDropsNonFinite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"finite", 12.5, "12.5"},
		{"nan", math.NaN(), "0"},
		{"positive infinity", math.Inf(1), "0"},
		{"negative infinity", math.Inf(-1), "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Decimal(tt.value); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("Decimal(%v) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestFloatClampsOutOfRange(t *testing.T) {
	t.Parallel()

	huge := decimal.NewFromFloat(math.MaxFloat64).Mul(decimal.NewFromInt(10))
	if got := Float(huge); got != 0 {
		t.Fatalf("Float(%s) = %v, want 0", huge, got)
	}
	if got := Float(huge.Neg()); got != 0 {
		t.Fatalf("Float(-%s) = %v, want 0", huge, got)
	}
	if got := Float(decimal.RequireFromString("250.5")); got != 250.5 {
		t.Fatalf("Float(250.5) = %v, want 250.5", got)
	}
}
