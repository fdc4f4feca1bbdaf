package dto

// ─── Filter ──────────────────────────────────────────────────────────────────

// MovimientoFilter is bound from the query string of GET /v1/inventario/movimientos.
type MovimientoFilter struct {
	Tipo string `form:"tipo" validate:"omitempty,oneof=entrada salida ajuste"`
	// Busqueda matches product name or motivo, case-insensitively, as substring.
	Busqueda   string `form:"busqueda"`
	ProductoID string `form:"producto_id" validate:"omitempty,uuid"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type MovimientoResponse struct {
	ID         string `json:"id"`
	ProductoID string `json:"producto_id"`
	Producto   string `json:"producto"`
	Tipo       string `json:"tipo"`
	// Cantidad is the signed delta applied to stock.
	Cantidad      int     `json:"cantidad"`
	StockAnterior int     `json:"stock_anterior"`
	StockNuevo    int     `json:"stock_nuevo"`
	Motivo        *string `json:"motivo"`
	CreatedAt     string  `json:"created_at"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// ReconciliacionResponse compares a product's stored stock against the signed
// sum of its movement ledger.
type ReconciliacionResponse struct {
	ProductoID      string `json:"producto_id"`
	Producto        string `json:"producto"`
	Stock           int    `json:"stock"`
	SumaMovimientos int    `json:"suma_movimientos"`
	Consistente     bool   `json:"consistente"`
}
