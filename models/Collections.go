package models

// All returns one zero value of every persisted model, in migration order.
func All() []any {
	return []any{
		&Unit{},
		&CostType{},
		&Cost{},
		&Margin{},
		&Dough{},
		&DoughIngredient{},
		&RecipeType{},
		&Recipe{},
		&RecipeIngredient{},
		&Delivery{},
		&DeliveryItem{},
		&Consumption{},
	}
}
