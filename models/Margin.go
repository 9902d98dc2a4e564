package models

// Margin splits the markup applied to a cost into recovery, reinvestment and profit.
type Margin struct {
	Record
	CostID                 string  `gorm:"not null;uniqueIndex;type:varchar(64)" json:"costId"`
	RecoveryPercentage     float64 `gorm:"not null" json:"recoveryPercentage"`
	ReinvestmentPercentage float64 `gorm:"not null" json:"reinvestmentPercentage"`
	ProfitPercentage       float64 `gorm:"not null" json:"profitPercentage"`
}

// Total returns the sum of the three margin components.
func (m Margin) Total() float64 {
	return m.RecoveryPercentage + m.ReinvestmentPercentage + m.ProfitPercentage
}
