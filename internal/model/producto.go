package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item. Products are never hard-deleted: Activo=false
// replaces deletion so historical ventas and movimientos keep a valid reference.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre      string    `gorm:"index;not null"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	StockMinimo int             `gorm:"not null;default:5"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BajoStock reports whether the product is at or below its minimum threshold.
func (p *Producto) BajoStock() bool { return p.Stock <= p.StockMinimo }
