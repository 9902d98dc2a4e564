package models

// DefaultBallWeight is the dough ball weight in grams assumed for records without one.
const DefaultBallWeight = 250.0

type Dough struct {
	Record
	Name        string            `gorm:"not null" json:"name"`
	BallWeight  *float64          `json:"ballWeight,omitempty"`
	Ingredients []DoughIngredient `gorm:"foreignKey:DoughID;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// DoughIngredient is one line of a dough's working reference batch. Quantity is in grams.
type DoughIngredient struct {
	Record
	DoughID  string  `gorm:"not null;index;type:varchar(64)" json:"-"`
	Position int     `gorm:"not null;default:0" json:"-"`
	CostID   string  `gorm:"not null;type:varchar(64)" json:"costId"`
	Quantity float64 `gorm:"not null" json:"quantity"`
}

// EffectiveBallWeight returns the stored ball weight or fallback when the record has none.
func (d Dough) EffectiveBallWeight(fallback float64) float64 {
	if d.BallWeight != nil && *d.BallWeight > 0 {
		return *d.BallWeight
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultBallWeight
}
