package models

import "strings"

// flourMarker identifies the base ingredient of a dough by product name.
const flourMarker = "harina"

// Cost is the price of one unit (per UnitID) of a product. Supplies and ingredients are
// both stored as costs.
type Cost struct {
	Record
	Product string  `gorm:"not null;index" json:"product"`
	Value   float64 `gorm:"not null" json:"value"`
	UnitID  string  `gorm:"not null;type:varchar(64)" json:"unitId"`
	TypeID  *string `gorm:"type:varchar(64)" json:"typeId,omitempty"`
}

// IsFlour reports whether the cost plays the flour role in a dough.
func (c Cost) IsFlour() bool {
	return strings.Contains(strings.ToLower(c.Product), flourMarker)
}

// CostType groups costs (ingredients, packaging, services).
type CostType struct {
	Record
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}
