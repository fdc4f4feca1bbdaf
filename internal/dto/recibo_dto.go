package dto

import "github.com/shopspring/decimal"

// Recibo is the immutable snapshot of a finalized sale handed to the receipt
// renderer. The renderer trusts its arithmetic and performs no validation, so
// the snapshot is built exactly once from committed data and never mutated.
// RegistrarVenta and the reprint path produce the identical shape.

type ReciboItem struct {
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type Recibo struct {
	VentaID       string          `json:"venta_id"`
	NumeroVenta   string          `json:"numero_venta"`
	Fecha         string          `json:"fecha"`
	NombreNegocio string          `json:"nombre_negocio"`
	Items         []ReciboItem    `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Descuento     decimal.Decimal `json:"descuento"`
	Total         decimal.Decimal `json:"total"`
}
