// Package pricing composes ingredient costs and margins into a commercial sale price.
//
// Margins are multipliers on cost: an ingredient with a 130 % margin is charged at 1.3
// times its raw cost. The per-unit price is that charged total rounded up to the next
// multiple of 100.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"pizzacost/internal/catalog"
	"pizzacost/internal/dough"
	"pizzacost/internal/rounding"
	"pizzacost/internal/units"
	"pizzacost/models"
)

// DefaultMargin is the margin percentage applied to costs with no override and no
// persisted margin.
const DefaultMargin = 30.0

var hundred = decimal.NewFromInt(100)

// Settings tunes the composer. Zero values select the package defaults.
type Settings struct {
	DefaultMargin     float64
	DefaultBallWeight float64
}

// Request selects what to price.
type Request struct {
	DoughID    string
	RecipeID   string
	Quantity   float64
	BallWeight float64
	Overrides  Overrides
}

// IngredientCost is the priced contribution of one ingredient.
type IngredientCost struct {
	CostID    string  `json:"costId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unitCost"`
	TotalCost float64 `json:"totalCost"`
	Margin    float64 `json:"margin"`
}

// Breakdown splits the charged amount across the three margin components.
type Breakdown struct {
	Recovery     float64 `json:"recovery"`
	Reinvestment float64 `json:"reinvestment"`
	Profit       float64 `json:"profit"`
}

// DeliveryLine is one priced delivery supply.
type DeliveryLine struct {
	CostID    string  `json:"costId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitCost  float64 `json:"unitCost"`
	TotalCost float64 `json:"totalCost"`
}

// DeliveryCost is the packaging cost of delivering the selected recipe.
type DeliveryCost struct {
	RecipeTypeID string         `json:"recipeTypeId"`
	Items        []DeliveryLine `json:"items"`
	PerUnit      float64        `json:"perUnit"`
	Total        float64        `json:"total"`
}

// Quote is the full pricing result.
type Quote struct {
	DoughID    string  `json:"doughId,omitempty"`
	RecipeID   string  `json:"recipeId,omitempty"`
	Quantity   float64 `json:"quantity"`
	BallWeight float64 `json:"ballWeight"`

	DoughIngredients  []IngredientCost `json:"doughIngredients"`
	RecipeIngredients []IngredientCost `json:"recipeIngredients"`

	DoughCost  float64 `json:"doughCost"`
	RecipeCost float64 `json:"recipeCost"`
	BaseCost   float64 `json:"baseCost"`

	DoughCostWithMargin   float64   `json:"doughCostWithMargin"`
	RecipeCostWithMargin  float64   `json:"recipeCostWithMargin"`
	TotalCostPerUnit      float64   `json:"totalCostPerUnit"`
	MarginAmount          float64   `json:"marginAmount"`
	TotalMarginPercentage float64   `json:"totalMarginPercentage"`
	Breakdown             Breakdown `json:"breakdown"`

	PricePerUnit       float64 `json:"pricePerUnit"`
	CommercialRounding float64 `json:"commercialRounding"`
	TotalCost          float64 `json:"totalCost"`
	TotalMargin        float64 `json:"totalMargin"`
	TotalPrice         float64 `json:"totalPrice"`

	Delivery *DeliveryCost `json:"delivery,omitempty"`
	Warnings []string      `json:"warnings,omitempty"`

	// DoughIncomputable is set when the selected dough has no usable flour line.
	DoughIncomputable bool `json:"doughIncomputable,omitempty"`
}

// HasSelection reports whether both a dough and a recipe were priced.
func (q Quote) HasSelection() bool {
	return q.DoughID != "" && q.RecipeID != ""
}

// Composer prices requests against a catalog snapshot.
type Composer struct {
	catalog  *catalog.Catalog
	settings Settings
}

// NewComposer returns a Composer reading from c.
func NewComposer(c *catalog.Catalog, settings Settings) *Composer {
	if settings.DefaultMargin <= 0 {
		settings.DefaultMargin = DefaultMargin
	}
	if settings.DefaultBallWeight <= 0 {
		settings.DefaultBallWeight = models.DefaultBallWeight
	}
	return &Composer{catalog: c, settings: settings}
}

// ResolveMargin returns the margin percentage for costID: an override wins over the
// persisted margin, which wins over the default.
func (c *Composer) ResolveMargin(costID string, overrides Overrides) float64 {
	if margin, ok := overrides.Get(costID); ok {
		return margin
	}
	if margin, ok := c.catalog.Margin(costID); ok {
		return margin.Total()
	}
	return c.settings.DefaultMargin
}

// IngredientCost prices quantity (in base units) of costID: (quantity / factor) * value,
// rounded to two decimals. Unresolved costs cost nothing.
func (c *Composer) IngredientCost(costID string, quantity float64) (unitCost, totalCost float64) {
	cost, ok := c.catalog.Cost(costID)
	if !ok {
		return 0, 0
	}
	return cost.Value, rounding.Round(CostOf(quantity, cost, c.catalog), 2)
}

// CostOf returns the unrounded cost of quantity base units of cost.
func CostOf(quantity float64, cost models.Cost, lookup units.Lookup) float64 {
	factor := units.ConversionFactor(cost.UnitID, lookup)
	if factor <= 0 {
		return 0
	}
	return quantity / factor * cost.Value
}

func (c *Composer) price(costID, name string, quantity float64, overrides Overrides) IngredientCost {
	unitCost, totalCost := c.IngredientCost(costID, quantity)
	return IngredientCost{
		CostID:    costID,
		Name:      name,
		Quantity:  rounding.Finite(quantity),
		UnitCost:  unitCost,
		TotalCost: totalCost,
		Margin:    rounding.Finite(c.ResolveMargin(costID, overrides)),
	}
}

// DoughIngredients prices the selected dough scaled to quantity balls of ballWeight.
func (c *Composer) DoughIngredients(d models.Dough, ballWeight, quantity float64, overrides Overrides) ([]IngredientCost, error) {
	scaled, err := dough.Scale(d, ballWeight, quantity, c.catalog)
	if err != nil {
		return []IngredientCost{}, err
	}
	result := make([]IngredientCost, 0, len(scaled))
	for _, ingredient := range scaled {
		result = append(result, c.price(ingredient.CostID, ingredient.Name, ingredient.Quantity, overrides))
	}
	return result, nil
}

// RecipeIngredients prices the recipe's per-unit quantities multiplied by quantity.
func (c *Composer) RecipeIngredients(recipe models.Recipe, quantity float64, overrides Overrides) []IngredientCost {
	result := make([]IngredientCost, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		name := c.catalog.CostName(ingredient.CostID, dough.UnknownName)
		result = append(result, c.price(ingredient.CostID, name, ingredient.Quantity*quantity, overrides))
	}
	return result
}

// Quote prices a request. Missing selections price as empty; nothing here fails.
func (c *Composer) Quote(req Request) Quote {
	req.Quantity = rounding.Finite(req.Quantity)
	req.BallWeight = rounding.Finite(req.BallWeight)
	quote := Quote{
		Quantity:          req.Quantity,
		DoughIngredients:  []IngredientCost{},
		RecipeIngredients: []IngredientCost{},
	}

	if req.DoughID != "" {
		if d, ok := c.catalog.Dough(req.DoughID); ok {
			quote.DoughID = d.ID
			quote.BallWeight = req.BallWeight
			if quote.BallWeight <= 0 {
				quote.BallWeight = d.EffectiveBallWeight(c.settings.DefaultBallWeight)
			}
			ingredients, err := c.DoughIngredients(d, quote.BallWeight, req.Quantity, req.Overrides)
			switch {
			case errors.Is(err, dough.ErrZeroBaseQuantity):
				quote.DoughIncomputable = true
				quote.Warnings = append(quote.Warnings, fmt.Sprintf("dough %q has a zero flour quantity", d.Name))
			case errors.Is(err, dough.ErrBatchOutOfRange):
				quote.DoughIncomputable = true
				quote.Warnings = append(quote.Warnings, fmt.Sprintf("dough %q batch weight is out of range", d.Name))
			case len(d.Ingredients) > 0 && len(ingredients) == 0:
				quote.DoughIncomputable = true
				quote.Warnings = append(quote.Warnings, fmt.Sprintf("dough %q has no flour ingredient", d.Name))
			}
			quote.DoughIngredients = ingredients
		} else {
			quote.Warnings = append(quote.Warnings, fmt.Sprintf("dough %q not found", req.DoughID))
		}
	}

	if req.RecipeID != "" {
		if recipe, ok := c.catalog.Recipe(req.RecipeID); ok {
			quote.RecipeID = recipe.ID
			quote.RecipeIngredients = c.RecipeIngredients(recipe, req.Quantity, req.Overrides)
			quote.Delivery = c.delivery(recipe, req.Quantity)
		} else {
			quote.Warnings = append(quote.Warnings, fmt.Sprintf("recipe %q not found", req.RecipeID))
		}
	}

	c.aggregate(&quote)
	return quote
}

type totals struct {
	cost       decimal.Decimal
	withMargin decimal.Decimal
	breakdown  [3]decimal.Decimal
}

func (c *Composer) sum(ingredients []IngredientCost) totals {
	var t totals
	for _, ing := range ingredients {
		cost := rounding.Decimal(ing.TotalCost)
		charged := cost.Mul(rounding.Decimal(ing.Margin)).Div(hundred)
		t.cost = t.cost.Add(cost)
		t.withMargin = t.withMargin.Add(charged)

		margin, ok := c.catalog.Margin(ing.CostID)
		if !ok || margin.Total() == 0 {
			continue
		}
		share := rounding.Decimal(margin.Total())
		parts := [3]float64{margin.RecoveryPercentage, margin.ReinvestmentPercentage, margin.ProfitPercentage}
		for i, part := range parts {
			t.breakdown[i] = t.breakdown[i].Add(charged.Mul(rounding.Decimal(part)).Div(share))
		}
	}
	return t
}

func (c *Composer) aggregate(q *Quote) {
	doughTotals := c.sum(q.DoughIngredients)
	recipeTotals := c.sum(q.RecipeIngredients)

	base := doughTotals.cost.Add(recipeTotals.cost)
	perUnit := doughTotals.withMargin.Add(recipeTotals.withMargin)
	marginAmount := perUnit.Sub(base)
	price := rounding.CeilCommercial(perUnit)
	quantity := rounding.Decimal(q.Quantity)

	q.DoughCost = rounding.Float(doughTotals.cost)
	q.RecipeCost = rounding.Float(recipeTotals.cost)
	q.BaseCost = rounding.Float(base)
	q.DoughCostWithMargin = rounding.Float(doughTotals.withMargin)
	q.RecipeCostWithMargin = rounding.Float(recipeTotals.withMargin)
	q.TotalCostPerUnit = rounding.Float(perUnit)
	q.MarginAmount = rounding.Float(marginAmount)
	if !base.IsZero() {
		q.TotalMarginPercentage = rounding.Float(marginAmount.Div(base).Mul(hundred))
	}
	q.Breakdown = Breakdown{
		Recovery:     rounding.Float(doughTotals.breakdown[0].Add(recipeTotals.breakdown[0])),
		Reinvestment: rounding.Float(doughTotals.breakdown[1].Add(recipeTotals.breakdown[1])),
		Profit:       rounding.Float(doughTotals.breakdown[2].Add(recipeTotals.breakdown[2])),
	}
	q.PricePerUnit = rounding.Float(price)
	q.CommercialRounding = rounding.Float(price.Sub(perUnit))
	q.TotalCost = rounding.Float(perUnit.Mul(quantity))
	q.TotalMargin = rounding.Float(marginAmount.Mul(quantity))
	q.TotalPrice = rounding.Float(price.Mul(quantity))
}

func (c *Composer) delivery(recipe models.Recipe, quantity float64) *DeliveryCost {
	if recipe.RecipeTypeID == nil || *recipe.RecipeTypeID == "" {
		return nil
	}
	config, ok := c.catalog.Delivery(*recipe.RecipeTypeID)
	if !ok {
		return nil
	}

	result := &DeliveryCost{RecipeTypeID: config.RecipeTypeID, Items: make([]DeliveryLine, 0, len(config.Items))}
	perUnit := decimal.Zero
	for _, item := range config.Items {
		unitCost, totalCost := c.IngredientCost(item.CostID, item.Quantity)
		result.Items = append(result.Items, DeliveryLine{
			CostID:    item.CostID,
			Name:      c.catalog.CostName(item.CostID, dough.UnknownName),
			Quantity:  item.Quantity,
			UnitCost:  unitCost,
			TotalCost: totalCost,
		})
		perUnit = perUnit.Add(rounding.Decimal(totalCost))
	}
	result.PerUnit = rounding.Float(perUnit)
	result.Total = rounding.Float(perUnit.Mul(rounding.Decimal(quantity)))
	return result
}
