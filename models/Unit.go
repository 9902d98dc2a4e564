package models

// Unit is a measurement unit referenced by costs.
type Unit struct {
	Record
	Name         string `gorm:"not null" json:"name"`
	Abbreviation string `gorm:"not null" json:"abbreviation"`
}
