package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record carries the identity and timestamps shared by every persisted collection.
// Identifiers are opaque strings; a UUID is assigned on create when none is supplied.
type Record struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns an identifier to records created without one.
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Base exposes the embedded record of any model.
func (r *Record) Base() *Record {
	return r
}
