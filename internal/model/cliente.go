package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer record. Plain CRUD lifecycle, independent of the
// sale workflow.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre    string    `gorm:"not null"`
	Correo    *string
	Telefono  *string
	Direccion *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
