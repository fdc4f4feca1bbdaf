package model

import (
	"time"

	"github.com/google/uuid"
)

// Movement kinds. "ajuste" covers manual corrections in both directions;
// the direction lives in the signed Cantidad, never in the Tipo alone.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoAjuste  = "ajuste"
)

// MovimientoStock is one immutable entry in the per-product stock ledger.
// Rows are append-only: they are never updated or deleted, and for every
// product the signed sum of Cantidad from an empty ledger must equal the
// product's current Stock.
type MovimientoStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo       string    `gorm:"type:varchar(20);not null"`
	// Cantidad is the signed delta applied to stock: positive for entradas and
	// upward ajustes, negative for salidas and downward ajustes.
	Cantidad      int `gorm:"not null"`
	StockAnterior int `gorm:"not null"`
	StockNuevo    int `gorm:"not null"`
	Motivo        *string
	// ReferenciaID links salidas to the originating Venta.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization (movimiento_stocks → movimientos_stock).
func (MovimientoStock) TableName() string { return "movimientos_stock" }
