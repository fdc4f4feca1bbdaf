package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	Stock       int             `json:"stock"        validate:"min=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
}

// ActualizarProductoRequest carries the full edit form. A Stock different
// from the stored value produces an ajuste movement.
type ActualizarProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	Stock       int             `json:"stock"        validate:"min=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre string `form:"nombre"`
	// Activo: "false" = inactivos, "all" = todos, anything else = activos
	Activo    string `form:"activo"`
	BajoStock bool   `form:"bajo_stock"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	BajoStock   bool            `json:"bajo_stock"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"created_at"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
