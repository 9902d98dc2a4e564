// Package dough converts dough recipes into baker's percentages and scales them to
// arbitrary batch sizes.
//
// A dough stores absolute ingredient quantities for a working reference batch. The
// ingredient whose cost product names flour ("harina") is the base: every other
// ingredient is expressed relative to it, and the relative formula is then scaled to the
// requested number of balls of a given weight.
package dough

import (
	"errors"

	"pizzacost/internal/rounding"
	"pizzacost/models"
)

// UnknownName labels ingredients whose cost cannot be resolved.
const UnknownName = "Unknown"

// ErrZeroBaseQuantity reports a dough whose flour ingredient has no positive quantity, so
// no percentage can be derived from it.
var ErrZeroBaseQuantity = errors.New("dough: flour quantity must be greater than zero")

// ErrBatchOutOfRange reports a batch whose total weight is not a finite number.
var ErrBatchOutOfRange = errors.New("dough: batch weight is out of range")

// Costs resolves cost ids to cost records.
type Costs interface {
	Cost(id string) (models.Cost, bool)
}

// CostMap adapts a map keyed by cost id to Costs.
type CostMap map[string]models.Cost

// Cost implements Costs.
func (m CostMap) Cost(id string) (models.Cost, bool) {
	cost, ok := m[id]
	return cost, ok
}

// Percentage is the baker's percentage of one dough ingredient.
type Percentage struct {
	CostID     string  `json:"costId"`
	Percentage float64 `json:"bakerPercentage"`
}

// CalculatedIngredient is a dough ingredient scaled to a target batch.
type CalculatedIngredient struct {
	CostID          string  `json:"costId"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	BakerPercentage float64 `json:"bakerPercentage"`
}

// FindBase returns the first ingredient, in dough order, whose cost is flour.
func FindBase(d models.Dough, costs Costs) (models.DoughIngredient, bool) {
	if costs == nil {
		return models.DoughIngredient{}, false
	}
	for _, ingredient := range d.Ingredients {
		cost, ok := costs.Cost(ingredient.CostID)
		if ok && cost.IsFlour() {
			return ingredient, true
		}
	}
	return models.DoughIngredient{}, false
}

// rawPercentages returns the unrounded percentage of every ingredient, in order. The
// boolean is false when the dough has no flour ingredient.
func rawPercentages(d models.Dough, costs Costs) ([]float64, bool, error) {
	base, ok := FindBase(d, costs)
	if !ok {
		return nil, false, nil
	}
	if base.Quantity <= 0 {
		return nil, true, ErrZeroBaseQuantity
	}

	values := make([]float64, len(d.Ingredients))
	for i, ingredient := range d.Ingredients {
		values[i] = ingredient.Quantity / base.Quantity * 100
	}
	return values, true, nil
}

// BakerPercentages returns each ingredient's quantity relative to the flour quantity,
// rounded to two decimals. A dough without flour yields an empty result and no error.
func BakerPercentages(d models.Dough, costs Costs) ([]Percentage, error) {
	values, _, err := rawPercentages(d, costs)
	if err != nil || len(values) == 0 {
		return []Percentage{}, err
	}

	result := make([]Percentage, len(values))
	for i, ingredient := range d.Ingredients {
		result[i] = Percentage{
			CostID:     ingredient.CostID,
			Percentage: rounding.Round(values[i], 2),
		}
	}
	return result, nil
}

// PercentageMap collapses percentages into a map keyed by cost id. When a cost id repeats,
// the last entry wins.
func PercentageMap(percentages []Percentage) map[string]float64 {
	result := make(map[string]float64, len(percentages))
	for _, p := range percentages {
		result[p.CostID] = p.Percentage
	}
	return result
}

// Scale back-calculates ingredient quantities for unitCount balls of unitWeight grams.
//
// The multiplier is (unitCount * unitWeight) / Σ percentages; each quantity is the
// multiplier times the ingredient's percentage, rounded to one decimal. A zero percentage
// sum scales everything to zero. A batch weight that is NaN or overflows reports
// ErrBatchOutOfRange with no ingredients.
func Scale(d models.Dough, unitWeight, unitCount float64, costs Costs) ([]CalculatedIngredient, error) {
	values, _, err := rawPercentages(d, costs)
	if err != nil || len(values) == 0 {
		return []CalculatedIngredient{}, err
	}

	total := 0.0
	for _, value := range values {
		total += value
	}

	batch := unitCount * unitWeight
	if !rounding.IsFinite(batch) {
		return []CalculatedIngredient{}, ErrBatchOutOfRange
	}
	multiplier := 0.0
	if total != 0 {
		multiplier = batch / total
	}
	if !rounding.IsFinite(multiplier) {
		return []CalculatedIngredient{}, ErrBatchOutOfRange
	}

	result := make([]CalculatedIngredient, len(values))
	for i, ingredient := range d.Ingredients {
		result[i] = CalculatedIngredient{
			CostID:          ingredient.CostID,
			Name:            costName(costs, ingredient.CostID),
			Quantity:        rounding.Round(multiplier*values[i], 1),
			BakerPercentage: rounding.Round(values[i], 2),
		}
	}
	return result, nil
}

// TotalQuantity sums the absolute quantities of a dough's reference batch.
func TotalQuantity(d models.Dough) float64 {
	total := 0.0
	for _, ingredient := range d.Ingredients {
		total += ingredient.Quantity
	}
	return total
}

func costName(costs Costs, id string) string {
	if costs != nil {
		if cost, ok := costs.Cost(id); ok {
			return cost.Product
		}
	}
	return UnknownName
}
