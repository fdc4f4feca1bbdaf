package service

import (
	"context"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"
	"github.com/JhoonerO/TuckFlow/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// InventarioService is the only component that records stock movements. Every
// code path that changes a product's stock must append a matching movement in
// the same logical operation, keeping the ledger sum equal to the stock field.
type InventarioService interface {
	// RegistrarMovimiento appends a movement outside any transaction.
	// Movement logging on these paths is best-effort auditing: a persistence
	// failure is logged and swallowed, and must not roll back the stock change
	// that prompted it.
	RegistrarMovimiento(ctx context.Context, m *model.MovimientoStock)

	// RegistrarMovimientoTx appends a movement inside a sale transaction.
	// Here the failure propagates: a sale whose audit trail cannot be written
	// is rolled back entirely.
	RegistrarMovimientoTx(tx *gorm.DB, m *model.MovimientoStock) error

	ListarMovimientos(ctx context.Context, usuarioID uuid.UUID, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)

	// ReconciliarProducto verifies the ledger invariant for one product:
	// stored stock == signed sum of its movements.
	ReconciliarProducto(ctx context.Context, usuarioID, productoID uuid.UUID) (*dto.ReconciliacionResponse, error)
}

type inventarioService struct {
	productoRepo   repository.ProductoRepository
	movimientoRepo repository.MovimientoStockRepository
}

func NewInventarioService(productoRepo repository.ProductoRepository, movimientoRepo repository.MovimientoStockRepository) InventarioService {
	return &inventarioService{productoRepo: productoRepo, movimientoRepo: movimientoRepo}
}

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, m *model.MovimientoStock) {
	if err := s.movimientoRepo.Create(ctx, m); err != nil {
		log.Error().
			Str("producto_id", m.ProductoID.String()).
			Str("tipo", m.Tipo).
			Int("cantidad", m.Cantidad).
			Err(err).
			Msg("no se pudo registrar el movimiento de stock")
	}
}

func (s *inventarioService) RegistrarMovimientoTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return s.movimientoRepo.CreateTx(tx, m)
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, usuarioID uuid.UUID, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimientos, total, err := s.movimientoRepo.List(ctx, usuarioID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		items = append(items, dto.MovimientoResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Producto:      nombre,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.MovimientoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *inventarioService) ReconciliarProducto(ctx context.Context, usuarioID, productoID uuid.UUID) (*dto.ReconciliacionResponse, error) {
	p, err := s.productoRepo.FindByID(ctx, usuarioID, productoID)
	if err != nil {
		return nil, err
	}
	suma, err := s.movimientoRepo.SumCantidad(ctx, usuarioID, productoID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliacionResponse{
		ProductoID:      p.ID.String(),
		Producto:        p.Nombre,
		Stock:           p.Stock,
		SumaMovimientos: suma,
		Consistente:     p.Stock == suma,
	}, nil
}
