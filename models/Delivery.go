package models

// Delivery lists the supplies consumed when delivering one unit of a recipe type.
type Delivery struct {
	Record
	RecipeTypeID string         `gorm:"not null;uniqueIndex;type:varchar(64)" json:"recipeTypeId"`
	Items        []DeliveryItem `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE" json:"items"`
}

type DeliveryItem struct {
	Record
	DeliveryID string  `gorm:"not null;index;type:varchar(64)" json:"-"`
	Position   int     `gorm:"not null;default:0" json:"-"`
	CostID     string  `gorm:"not null;type:varchar(64)" json:"costId"`
	Quantity   float64 `gorm:"not null" json:"quantity"`
}

// Consumption records a service (gas, electricity) consumed against a cost.
type Consumption struct {
	Record
	Name     string  `gorm:"not null" json:"name"`
	CostID   string  `gorm:"not null;type:varchar(64)" json:"costId"`
	Quantity float64 `gorm:"not null" json:"quantity"`
}
