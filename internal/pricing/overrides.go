package pricing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Overrides holds margin percentages set by hand for individual costs. They take
// precedence over persisted margins until reset.
type Overrides map[string]float64

// Set records an override for costID.
func (o Overrides) Set(costID string, margin float64) {
	o[costID] = margin
}

// Reset removes every override.
func (o Overrides) Reset() {
	clear(o)
}

// Get returns the override for costID, if any.
func (o Overrides) Get(costID string) (float64, bool) {
	margin, ok := o[costID]
	return margin, ok
}

// Clone returns an independent copy.
func (o Overrides) Clone() Overrides {
	cp := make(Overrides, len(o))
	for k, v := range o {
		cp[k] = v
	}
	return cp
}

// Encode serialises the overrides for session storage.
func (o Overrides) Encode() (string, error) {
	if len(o) == 0 {
		return "", nil
	}
	data, err := json.Marshal(map[string]float64(o))
	if err != nil {
		return "", fmt.Errorf("encode margin overrides: %w", err)
	}
	return string(data), nil
}

// DecodeOverrides parses overrides produced by Encode. An empty string yields an empty set.
func DecodeOverrides(raw string) (Overrides, error) {
	overrides := Overrides{}
	if strings.TrimSpace(raw) == "" {
		return overrides, nil
	}
	if err := json.Unmarshal([]byte(raw), (*map[string]float64)(&overrides)); err != nil {
		return Overrides{}, fmt.Errorf("decode margin overrides: %w", err)
	}
	return overrides, nil
}

// ParseMargin parses a margin percentage typed by a user. Non-numeric and non-finite
// values are rejected.
func ParseMargin(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid margin %q: %w", raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid margin %q", raw)
	}
	return value, nil
}
