package repository

import (
	"context"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovimientoStockRepository interface {
	Create(ctx context.Context, m *model.MovimientoStock) error
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, usuarioID uuid.UUID, filter dto.MovimientoFilter) ([]model.MovimientoStock, int64, error)
	// SumCantidad returns the signed sum of all movement deltas for a product,
	// starting from an implicit zero baseline.
	SumCantidad(ctx context.Context, usuarioID, productoID uuid.UUID) (int, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) Create(ctx context.Context, m *model.MovimientoStock) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, usuarioID uuid.UUID, filter dto.MovimientoFilter) ([]model.MovimientoStock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoStock{}).
		Where("movimientos_stock.usuario_id = ?", usuarioID).
		Preload("Producto")

	if filter.Tipo != "" {
		q = q.Where("movimientos_stock.tipo = ?", filter.Tipo)
	}
	if filter.ProductoID != "" {
		q = q.Where("movimientos_stock.producto_id = ?", filter.ProductoID)
	}
	if filter.Busqueda != "" {
		pattern := "%" + filter.Busqueda + "%"
		q = q.Joins("JOIN productos ON productos.id = movimientos_stock.producto_id").
			Where("productos.nombre ILIKE ? OR movimientos_stock.motivo ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movimientos []model.MovimientoStock
	err := q.Order("movimientos_stock.created_at DESC").Offset(offset).Limit(limit).Find(&movimientos).Error
	return movimientos, total, err
}

func (r *movimientoStockRepo) SumCantidad(ctx context.Context, usuarioID, productoID uuid.UUID) (int, error) {
	var suma int
	err := r.db.WithContext(ctx).Model(&model.MovimientoStock{}).
		Where("usuario_id = ? AND producto_id = ?", usuarioID, productoID).
		Select("COALESCE(SUM(cantidad), 0)").
		Scan(&suma).Error
	return suma, err
}
