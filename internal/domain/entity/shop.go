package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shop is the single shop profile printed on every invoice. One row per
// install; PUT /shop replaces it wholesale.
type Shop struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Address         *string        `gorm:"type:text" json:"address,omitempty"`
	GSTIN           *string        `gorm:"size:50;column:gstin" json:"gstin,omitempty"`
	ProprietaryName *string        `gorm:"size:255" json:"proprietary_name,omitempty"`
	MobileNo        *string        `gorm:"size:50" json:"mobile_no,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating the shop row
func (s *Shop) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}
