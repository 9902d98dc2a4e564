package models

type Recipe struct {
	Record
	Name         string             `gorm:"not null" json:"name"`
	RecipeTypeID *string            `gorm:"type:varchar(64)" json:"recipeTypeId,omitempty"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// RecipeIngredient is the quantity (grams) of a cost used to produce one unit.
type RecipeIngredient struct {
	Record
	RecipeID string  `gorm:"not null;index;type:varchar(64)" json:"-"`
	Position int     `gorm:"not null;default:0" json:"-"`
	CostID   string  `gorm:"not null;type:varchar(64)" json:"costId"`
	Quantity float64 `gorm:"not null" json:"quantity"`
}

// RecipeType classifies recipes (pizza, empanada) and keys delivery configuration.
type RecipeType struct {
	Record
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}
