package model

import (
	"time"

	"github.com/google/uuid"
)

// Perfil holds the business profile of an owner. NombreNegocio is printed on
// every receipt.
type Perfil struct {
	// ID equals the owner's identity from the external auth provider.
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	NombreNegocio string    `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides GORM's default pluralization (perfils → perfiles).
func (Perfil) TableName() string { return "perfiles" }
