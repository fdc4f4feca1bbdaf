package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a finalized checkout. Estado is always "completada" — there is no
// cancellation or refund flow, so ventas are never mutated after creation.
type Venta struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClienteID  *uuid.UUID `gorm:"type:uuid;index"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado     string          `gorm:"type:varchar(20);not null;default:'completada'"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time

	Items   []VentaItem `gorm:"foreignKey:VentaID"`
	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
}

// NumeroVenta is the short human-readable sale number printed on receipts.
func (v *Venta) NumeroVenta() string {
	return strings.ToUpper(v.ID.String()[:8])
}

// VentaItem captures one cart line. PrecioUnitario is the price at the moment
// the line was added, never re-derived from the current Producto price.
type VentaItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization (venta_items → detalle_ventas).
func (VentaItem) TableName() string { return "detalle_ventas" }
