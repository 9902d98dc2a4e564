package handlers

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"pizzacost/models"
)

const (
	minCostValue           = 0.01
	minIngredientQuantity  = 0.01
	minBallWeight          = 1.0
	minDeliveryQuantity    = 1.0
	minConsumptionQuantity = 0.1
)

var errMissingReference = errors.New("referenced record does not exist")

func exists(tx *gorm.DB, model any, id string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errMissingReference
	}
	return nil
}

func requireReference(tx *gorm.DB, field string, model any, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", field)
	}
	if err := exists(tx, model, id); err != nil {
		if errors.Is(err, errMissingReference) {
			return fmt.Errorf("%s %q does not exist", field, id)
		}
		return fmt.Errorf("check %s: %w", field, err)
	}
	return nil
}

func requireName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func validateCost(tx *gorm.DB, cost *models.Cost) error {
	cost.Product = strings.TrimSpace(cost.Product)
	if err := requireName("product", cost.Product); err != nil {
		return err
	}
	if cost.Value < minCostValue {
		return fmt.Errorf("value must be at least %.2f", minCostValue)
	}
	if err := requireReference(tx, "unitId", &models.Unit{}, cost.UnitID); err != nil {
		return err
	}
	if cost.TypeID != nil && strings.TrimSpace(*cost.TypeID) != "" {
		return requireReference(tx, "typeId", &models.CostType{}, *cost.TypeID)
	}
	cost.TypeID = nil
	return nil
}

func validateCostType(_ *gorm.DB, costType *models.CostType) error {
	costType.Name = strings.TrimSpace(costType.Name)
	return requireName("name", costType.Name)
}

func validateUnit(_ *gorm.DB, unit *models.Unit) error {
	unit.Name = strings.TrimSpace(unit.Name)
	unit.Abbreviation = strings.TrimSpace(unit.Abbreviation)
	if err := requireName("name", unit.Name); err != nil {
		return err
	}
	return requireName("abbreviation", unit.Abbreviation)
}

func validateRecipeType(_ *gorm.DB, recipeType *models.RecipeType) error {
	recipeType.Name = strings.TrimSpace(recipeType.Name)
	return requireName("name", recipeType.Name)
}

func validateIngredientLines(tx *gorm.DB, costIDs []string, quantities []float64, minimum float64) error {
	if len(costIDs) == 0 {
		return errors.New("at least one ingredient is required")
	}
	for i, costID := range costIDs {
		if err := requireReference(tx, fmt.Sprintf("ingredients[%d].costId", i), &models.Cost{}, costID); err != nil {
			return err
		}
		if quantities[i] < minimum {
			return fmt.Errorf("ingredients[%d].quantity must be at least %g", i, minimum)
		}
	}
	return nil
}

func prepareDough(d *models.Dough) {
	for i := range d.Ingredients {
		d.Ingredients[i].Record = models.Record{}
		d.Ingredients[i].DoughID = ""
		d.Ingredients[i].Position = i
	}
}

func validateDough(tx *gorm.DB, d *models.Dough) error {
	d.Name = strings.TrimSpace(d.Name)
	if err := requireName("name", d.Name); err != nil {
		return err
	}
	if d.BallWeight != nil && *d.BallWeight < minBallWeight {
		return fmt.Errorf("ballWeight must be at least %g", minBallWeight)
	}
	costIDs := make([]string, len(d.Ingredients))
	quantities := make([]float64, len(d.Ingredients))
	for i, ingredient := range d.Ingredients {
		costIDs[i], quantities[i] = ingredient.CostID, ingredient.Quantity
	}
	return validateIngredientLines(tx, costIDs, quantities, minIngredientQuantity)
}

func prepareRecipe(recipe *models.Recipe) {
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Record = models.Record{}
		recipe.Ingredients[i].RecipeID = ""
		recipe.Ingredients[i].Position = i
	}
}

func validateRecipe(tx *gorm.DB, recipe *models.Recipe) error {
	recipe.Name = strings.TrimSpace(recipe.Name)
	if err := requireName("name", recipe.Name); err != nil {
		return err
	}
	if recipe.RecipeTypeID != nil && strings.TrimSpace(*recipe.RecipeTypeID) != "" {
		if err := requireReference(tx, "recipeTypeId", &models.RecipeType{}, *recipe.RecipeTypeID); err != nil {
			return err
		}
	} else {
		recipe.RecipeTypeID = nil
	}
	costIDs := make([]string, len(recipe.Ingredients))
	quantities := make([]float64, len(recipe.Ingredients))
	for i, ingredient := range recipe.Ingredients {
		costIDs[i], quantities[i] = ingredient.CostID, ingredient.Quantity
	}
	return validateIngredientLines(tx, costIDs, quantities, minIngredientQuantity)
}

func validateMargin(tx *gorm.DB, margin *models.Margin) error {
	if err := requireReference(tx, "costId", &models.Cost{}, margin.CostID); err != nil {
		return err
	}
	if margin.RecoveryPercentage < 0 || margin.ReinvestmentPercentage < 0 || margin.ProfitPercentage < 0 {
		return errors.New("margin percentages must not be negative")
	}
	return nil
}

func prepareDelivery(delivery *models.Delivery) {
	for i := range delivery.Items {
		delivery.Items[i].Record = models.Record{}
		delivery.Items[i].DeliveryID = ""
		delivery.Items[i].Position = i
	}
}

func validateDelivery(tx *gorm.DB, delivery *models.Delivery) error {
	if err := requireReference(tx, "recipeTypeId", &models.RecipeType{}, delivery.RecipeTypeID); err != nil {
		return err
	}
	if len(delivery.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for i, item := range delivery.Items {
		if err := requireReference(tx, fmt.Sprintf("items[%d].costId", i), &models.Cost{}, item.CostID); err != nil {
			return err
		}
		if item.Quantity < minDeliveryQuantity {
			return fmt.Errorf("items[%d].quantity must be at least %g", i, minDeliveryQuantity)
		}
	}
	return nil
}

func validateConsumption(tx *gorm.DB, consumption *models.Consumption) error {
	consumption.Name = strings.TrimSpace(consumption.Name)
	if err := requireName("name", consumption.Name); err != nil {
		return err
	}
	if err := requireReference(tx, "costId", &models.Cost{}, consumption.CostID); err != nil {
		return err
	}
	if consumption.Quantity < minConsumptionQuantity {
		return fmt.Errorf("quantity must be at least %g", minConsumptionQuantity)
	}
	return nil
}
