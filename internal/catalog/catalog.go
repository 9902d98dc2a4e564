// Package catalog holds the in-memory snapshot of every collection the costing engine
// reads. It is loaded wholesale from the database and then consulted without further I/O.
package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pizzacost/models"
)

// Catalog indexes loaded collections by id. A nil *Catalog behaves as an empty one.
type Catalog struct {
	Costs       []models.Cost
	CostTypes   []models.CostType
	Units       []models.Unit
	Doughs      []models.Dough
	Recipes     []models.Recipe
	RecipeTypes []models.RecipeType
	Margins     []models.Margin
	Deliveries  []models.Delivery

	costs      map[string]models.Cost
	units      map[string]models.Unit
	doughs     map[string]models.Dough
	recipes    map[string]models.Recipe
	margins    map[string]models.Margin
	deliveries map[string]models.Delivery
}

// New indexes the supplied collections. Later duplicates of an id replace earlier ones;
// margins are indexed by cost id and deliveries by recipe type id.
func New(costs []models.Cost, units []models.Unit, doughs []models.Dough, recipes []models.Recipe, margins []models.Margin) *Catalog {
	c := &Catalog{
		Costs:   costs,
		Units:   units,
		Doughs:  doughs,
		Recipes: recipes,
		Margins: margins,
	}
	c.index()
	return c
}

// WithDeliveries attaches delivery configurations and recipe types to the catalog.
func (c *Catalog) WithDeliveries(recipeTypes []models.RecipeType, deliveries []models.Delivery) *Catalog {
	c.RecipeTypes = recipeTypes
	c.Deliveries = deliveries
	c.index()
	return c
}

func (c *Catalog) index() {
	c.costs = make(map[string]models.Cost, len(c.Costs))
	for _, cost := range c.Costs {
		c.costs[cost.ID] = cost
	}
	c.units = make(map[string]models.Unit, len(c.Units))
	for _, unit := range c.Units {
		c.units[unit.ID] = unit
	}
	c.doughs = make(map[string]models.Dough, len(c.Doughs))
	for _, d := range c.Doughs {
		c.doughs[d.ID] = d
	}
	c.recipes = make(map[string]models.Recipe, len(c.Recipes))
	for _, recipe := range c.Recipes {
		c.recipes[recipe.ID] = recipe
	}
	c.margins = make(map[string]models.Margin, len(c.Margins))
	for _, margin := range c.Margins {
		c.margins[margin.CostID] = margin
	}
	c.deliveries = make(map[string]models.Delivery, len(c.Deliveries))
	for _, delivery := range c.Deliveries {
		c.deliveries[delivery.RecipeTypeID] = delivery
	}
}

// Cost resolves a cost by id.
func (c *Catalog) Cost(id string) (models.Cost, bool) {
	if c == nil {
		return models.Cost{}, false
	}
	cost, ok := c.costs[id]
	return cost, ok
}

// Unit resolves a unit by id.
func (c *Catalog) Unit(id string) (models.Unit, bool) {
	if c == nil {
		return models.Unit{}, false
	}
	unit, ok := c.units[id]
	return unit, ok
}

// Dough resolves a dough by id.
func (c *Catalog) Dough(id string) (models.Dough, bool) {
	if c == nil {
		return models.Dough{}, false
	}
	d, ok := c.doughs[id]
	return d, ok
}

// Recipe resolves a recipe by id.
func (c *Catalog) Recipe(id string) (models.Recipe, bool) {
	if c == nil {
		return models.Recipe{}, false
	}
	recipe, ok := c.recipes[id]
	return recipe, ok
}

// Margin returns the persisted margin for a cost.
func (c *Catalog) Margin(costID string) (models.Margin, bool) {
	if c == nil {
		return models.Margin{}, false
	}
	margin, ok := c.margins[costID]
	return margin, ok
}

// Delivery returns the delivery configuration of a recipe type.
func (c *Catalog) Delivery(recipeTypeID string) (models.Delivery, bool) {
	if c == nil {
		return models.Delivery{}, false
	}
	delivery, ok := c.deliveries[recipeTypeID]
	return delivery, ok
}

// CostName returns the product name of a cost or fallback when it does not resolve.
func (c *Catalog) CostName(id, fallback string) string {
	if cost, ok := c.Cost(id); ok {
		return cost.Product
	}
	return fallback
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// Load fetches every collection from db and indexes it.
func Load(ctx context.Context, db *gorm.DB) (*Catalog, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	tx := db.WithContext(ctx)

	c := &Catalog{}
	if err := tx.Order("product asc").Find(&c.Costs).Error; err != nil {
		return nil, fmt.Errorf("load costs: %w", err)
	}
	if err := tx.Order("name asc").Find(&c.CostTypes).Error; err != nil {
		return nil, fmt.Errorf("load cost types: %w", err)
	}
	if err := tx.Order("name asc").Find(&c.Units).Error; err != nil {
		return nil, fmt.Errorf("load units: %w", err)
	}
	if err := tx.Preload("Ingredients", orderByPosition).Order("name asc").Find(&c.Doughs).Error; err != nil {
		return nil, fmt.Errorf("load doughs: %w", err)
	}
	if err := tx.Preload("Ingredients", orderByPosition).Order("name asc").Find(&c.Recipes).Error; err != nil {
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	if err := tx.Order("name asc").Find(&c.RecipeTypes).Error; err != nil {
		return nil, fmt.Errorf("load recipe types: %w", err)
	}
	if err := tx.Find(&c.Margins).Error; err != nil {
		return nil, fmt.Errorf("load margins: %w", err)
	}
	if err := tx.Preload("Items", orderByPosition).Find(&c.Deliveries).Error; err != nil {
		return nil, fmt.Errorf("load deliveries: %w", err)
	}

	c.index()
	return c, nil
}
