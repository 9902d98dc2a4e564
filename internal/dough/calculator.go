package dough

import (
	"pizzacost/internal/rounding"
	"pizzacost/models"
)

// FormulaLine is one ingredient of a percentage-authored formula.
type FormulaLine struct {
	CostID          string  `json:"costId"`
	BakerPercentage float64 `json:"bakerPercentage"`
}

// FormulaRow is a formula line with its weight for the requested batch.
type FormulaRow struct {
	CostID           string  `json:"costId"`
	Name             string  `json:"name"`
	BakerPercentage  float64 `json:"bakerPercentage"`
	CalculatedWeight float64 `json:"calculatedWeight"`
	Flour            bool    `json:"flour"`
}

// Formula is the outcome of a percentage-driven batch calculation.
type Formula struct {
	WeightPerUnit   float64      `json:"weightPerUnit"`
	Quantity        float64      `json:"quantity"`
	FlourWeight     float64      `json:"flourWeight"`
	TotalWeight     float64      `json:"totalWeight"`
	TotalPercentage float64      `json:"totalPercentage"`
	Ingredients     []FormulaRow `json:"ingredients"`
}

// FromPercentages weighs a formula authored directly in baker's percentages. The flour
// weight is weightPerUnit * quantity and each line weighs flour * percentage / 100,
// rounded to one decimal. A flour weight that is NaN or overflows yields an empty formula.
func FromPercentages(weightPerUnit, quantity float64, lines []FormulaLine, costs Costs) Formula {
	flour := weightPerUnit * quantity
	if !rounding.IsFinite(flour) {
		return Formula{Ingredients: []FormulaRow{}}
	}
	formula := Formula{
		WeightPerUnit: weightPerUnit,
		Quantity:      quantity,
		FlourWeight:   flour,
		Ingredients:   make([]FormulaRow, 0, len(lines)),
	}

	for _, line := range lines {
		weight := rounding.Round(flour*line.BakerPercentage/100, 1)
		row := FormulaRow{
			CostID:           line.CostID,
			Name:             costName(costs, line.CostID),
			BakerPercentage:  line.BakerPercentage,
			CalculatedWeight: weight,
		}
		if costs != nil {
			if cost, ok := costs.Cost(line.CostID); ok {
				row.Flour = cost.IsFlour()
			}
		}
		formula.Ingredients = append(formula.Ingredients, row)
		formula.TotalWeight += weight
		formula.TotalPercentage += line.BakerPercentage
	}
	formula.TotalWeight = rounding.Round(formula.TotalWeight, 1)
	formula.TotalPercentage = rounding.Round(formula.TotalPercentage, 2)
	return formula
}

// DefaultFormula starts a new formula with the first flour cost at 100 %.
func DefaultFormula(costs []models.Cost) []FormulaLine {
	for _, cost := range costs {
		if cost.IsFlour() {
			return []FormulaLine{{CostID: cost.ID, BakerPercentage: 100}}
		}
	}
	return []FormulaLine{}
}
