package service

import (
	"context"
	"strings"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"
	"github.com/JhoonerO/TuckFlow/internal/repository"

	"github.com/google/uuid"
)

const (
	motivoStockInicial = "Stock inicial"
	motivoAjusteManual = "Ajuste manual"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, usuarioID, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, usuarioID, id uuid.UUID) error
	Reactivar(ctx context.Context, usuarioID, id uuid.UUID) error
}

type productoService struct {
	repo       repository.ProductoRepository
	inventario InventarioService
}

func NewProductoService(repo repository.ProductoRepository, inventario InventarioService) ProductoService {
	return &productoService{repo: repo, inventario: inventario}
}

func (s *productoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if err := validarProducto(req.Nombre, req.Stock, req.StockMinimo); err != nil {
		return nil, err
	}
	if req.Precio.IsNegative() {
		return nil, errValidation("el precio no puede ser negativo")
	}

	p := &model.Producto{
		UsuarioID:   usuarioID,
		Nombre:      strings.TrimSpace(req.Nombre),
		Precio:      req.Precio,
		Stock:       req.Stock,
		StockMinimo: req.StockMinimo,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// The opening entrada keeps the ledger sum equal to the initial stock.
	// Best-effort: a logging failure never undoes the product row.
	if req.Stock > 0 {
		motivo := motivoStockInicial
		s.inventario.RegistrarMovimiento(ctx, &model.MovimientoStock{
			UsuarioID:     usuarioID,
			ProductoID:    p.ID,
			Tipo:          model.MovimientoEntrada,
			Cantidad:      req.Stock,
			StockAnterior: 0,
			StockNuevo:    req.Stock,
			Motivo:        &motivo,
		})
	}

	return productoToResponse(p), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.List(ctx, usuarioID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		items = append(items, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, usuarioID, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	if err := validarProducto(req.Nombre, req.Stock, req.StockMinimo); err != nil {
		return nil, err
	}
	if req.Precio.IsNegative() {
		return nil, errValidation("el precio no puede ser negativo")
	}

	p, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	stockAnterior := p.Stock

	p.Nombre = strings.TrimSpace(req.Nombre)
	p.Precio = req.Precio
	p.Stock = req.Stock
	p.StockMinimo = req.StockMinimo
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Manual stock edits produce an ajuste whose signed Cantidad carries the
	// direction; StockAnterior/StockNuevo make it reconstructible either way.
	if req.Stock != stockAnterior {
		motivo := motivoAjusteManual
		s.inventario.RegistrarMovimiento(ctx, &model.MovimientoStock{
			UsuarioID:     usuarioID,
			ProductoID:    p.ID,
			Tipo:          model.MovimientoAjuste,
			Cantidad:      req.Stock - stockAnterior,
			StockAnterior: stockAnterior,
			StockNuevo:    req.Stock,
			Motivo:        &motivo,
		})
	}

	return productoToResponse(p), nil
}

// Desactivar flips activo to false. Stock, movimientos, and historical ventas
// keep referencing the product untouched.
func (s *productoService) Desactivar(ctx context.Context, usuarioID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, usuarioID, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, usuarioID, id)
}

func (s *productoService) Reactivar(ctx context.Context, usuarioID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, usuarioID, id); err != nil {
		return err
	}
	return s.repo.Reactivar(ctx, usuarioID, id)
}

func validarProducto(nombre string, stock, stockMinimo int) error {
	if strings.TrimSpace(nombre) == "" {
		return errValidation("el nombre es obligatorio")
	}
	if stock < 0 {
		return errValidation("el stock no puede ser negativo")
	}
	if stockMinimo < 0 {
		return errValidation("el stock minimo no puede ser negativo")
	}
	return nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Precio:      p.Precio,
		Stock:       p.Stock,
		StockMinimo: p.StockMinimo,
		BajoStock:   p.BajoStock(),
		Activo:      p.Activo,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
