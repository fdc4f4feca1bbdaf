package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemVentaRequest is one cart line. PrecioUnitario is the price captured when
// the line was added to the cart; the server validates it but does not replace
// it with the current catalog price.
type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	Descuento  decimal.Decimal    `json:"descuento"   validate:"min=0"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	ClienteID  *string            `json:"cliente_id"    validate:"omitempty,uuid"`
	// ClienteEmail: optional — when present, the recibo worker mails the PDF.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Desde string `form:"desde"` // YYYY-MM-DD inclusive
	Hasta string `form:"hasta"` // YYYY-MM-DD inclusive
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ItemVentaResponse struct {
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaListItem struct {
	ID          string              `json:"id"`
	NumeroVenta string              `json:"numero_venta"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	Descuento   decimal.Decimal     `json:"descuento"`
	Total       decimal.Decimal     `json:"total"`
	Estado      string              `json:"estado"`
	MetodoPago  string              `json:"metodo_pago"`
	Items       []ItemVentaResponse `json:"items"`
	CreatedAt   string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaListItem `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
