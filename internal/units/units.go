// Package units maps unit abbreviations to the factor that converts a quantity in that
// unit into the base unit used for cost arithmetic (grams, millilitres or pieces).
package units

import (
	"strings"

	"pizzacost/models"
)

// FallbackFactor applies to unknown abbreviations and unresolved units; they are treated
// as kilograms.
const FallbackFactor = 1000.0

var factors = map[string]float64{
	// mass, base = g
	"kg": 1000,
	"g":  1,
	"mg": 0.001,

	// volume, base = ml
	"l":  1000,
	"ml": 1,

	// pieces
	"unidad": 1,
	"ud":     1,
	"pz":     1,
}

// Factor returns the conversion factor for an abbreviation, case-insensitive.
func Factor(abbreviation string) float64 {
	if factor, ok := factors[strings.ToLower(strings.TrimSpace(abbreviation))]; ok {
		return factor
	}
	return FallbackFactor
}

// Known reports whether the abbreviation has an explicit entry in the table.
func Known(abbreviation string) bool {
	_, ok := factors[strings.ToLower(strings.TrimSpace(abbreviation))]
	return ok
}

// Lookup resolves unit ids to units.
type Lookup interface {
	Unit(id string) (models.Unit, bool)
}

// ConversionFactor resolves unitID through lookup and returns its factor. A nil lookup or
// an unknown id yields FallbackFactor.
func ConversionFactor(unitID string, lookup Lookup) float64 {
	if lookup == nil {
		return FallbackFactor
	}
	unit, ok := lookup.Unit(unitID)
	if !ok {
		return FallbackFactor
	}
	return Factor(unit.Abbreviation)
}

// Slice adapts a plain slice of units to Lookup.
type Slice []models.Unit

// Unit implements Lookup with a linear scan.
func (s Slice) Unit(id string) (models.Unit, bool) {
	for _, unit := range s {
		if unit.ID == id {
			return unit, true
		}
	}
	return models.Unit{}, false
}
