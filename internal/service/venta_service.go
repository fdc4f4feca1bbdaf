package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"
	"github.com/JhoonerO/TuckFlow/internal/repository"
	"github.com/JhoonerO/TuckFlow/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	reciboCachePrefix = "recibo:"
	reciboCacheTTL    = 24 * time.Hour
	fechaReciboFormat = "02/01/2006 15:04"
)

type VentaService interface {
	// RegistrarVenta finalizes a cart: one venta row, one item row per cart
	// line, a conditional stock decrement and a salida movement per product —
	// all inside a single transaction. Returns the receipt snapshot.
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.Recibo, error)
	// ObtenerRecibo rebuilds the receipt snapshot of a committed sale for
	// reprinting. Read-only: it never mutates venta, items, or stock.
	ObtenerRecibo(ctx context.Context, usuarioID, ventaID uuid.UUID) (*dto.Recibo, error)
	ListVentas(ctx context.Context, usuarioID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	perfilRepo   repository.PerfilRepository
	inventario   InventarioService
	dispatcher   *worker.Dispatcher
	rdb          *redis.Client
	negocioDefault string
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	perfilRepo repository.PerfilRepository,
	inventario InventarioService,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
	negocioDefault string,
) VentaService {
	return &ventaService{
		repo:           repo,
		productoRepo:   productoRepo,
		perfilRepo:     perfilRepo,
		inventario:     inventario,
		dispatcher:     dispatcher,
		rdb:            rdb,
		negocioDefault: negocioDefault,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.Recibo, error) {
	// 1. Pre-flight: resolve products and re-validate stock server-side.
	// Nothing is written until every line passes.
	type lineaResuelta struct {
		productoID uuid.UUID
		nombre     string
		precio     decimal.Decimal
		cantidad   int
		subtotal   decimal.Decimal
	}

	var resueltas []lineaResuelta
	subtotal := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, errValidation("producto_id invalido: %s", item.ProductoID)
		}
		if item.Cantidad <= 0 {
			return nil, errValidation("la cantidad debe ser mayor a cero")
		}
		if item.PrecioUnitario.IsNegative() {
			return nil, errValidation("el precio unitario no puede ser negativo")
		}
		p, err := s.productoRepo.FindByID(ctx, usuarioID, pid)
		if err != nil {
			return nil, errValidation("producto %s no encontrado", item.ProductoID)
		}
		if !p.Activo {
			return nil, errValidation("el producto %q esta inactivo y no puede venderse", p.Nombre)
		}
		if p.Stock < item.Cantidad {
			return nil, &InsufficientStockError{
				Producto:   p.Nombre,
				Solicitado: item.Cantidad,
				Disponible: p.Stock,
			}
		}
		lineSubtotal := item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		subtotal = subtotal.Add(lineSubtotal)
		resueltas = append(resueltas, lineaResuelta{
			productoID: pid,
			nombre:     p.Nombre,
			precio:     item.PrecioUnitario,
			cantidad:   item.Cantidad,
			subtotal:   lineSubtotal,
		})
	}

	// 2. Discount validation — before any write.
	if req.Descuento.IsNegative() {
		return nil, errValidation("el descuento no puede ser negativo")
	}
	if req.Descuento.GreaterThan(subtotal) {
		return nil, errValidation("el descuento no puede superar el subtotal")
	}
	total := subtotal.Sub(req.Descuento)

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, errValidation("cliente_id invalido")
		}
		clienteID = &cid
	}

	// 3. Transaction: venta + items + stock decrements + movimientos commit or
	// roll back as a unit. The decrement re-checks availability in the same
	// statement, so a concurrent sale that spent the stock first makes this
	// one fail cleanly instead of going negative.
	venta := model.Venta{
		UsuarioID:  usuarioID,
		ClienteID:  clienteID,
		Subtotal:   subtotal,
		Descuento:  req.Descuento,
		Total:      total,
		Estado:     "completada",
		MetodoPago: req.MetodoPago,
	}
	for _, r := range resueltas {
		venta.Items = append(venta.Items, model.VentaItem{
			ProductoID:     r.productoID,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return fmt.Errorf("crear venta: %w", err)
		}

		for _, r := range resueltas {
			// Stock inside the tx, for the movement's before/after values.
			stockAntes := 0
			if prod, err := s.productoRepo.FindByIDTx(tx, usuarioID, r.productoID); err == nil {
				stockAntes = prod.Stock
			}

			ok, err := s.productoRepo.DescontarStockTx(tx, usuarioID, r.productoID, r.cantidad)
			if err != nil {
				return fmt.Errorf("descontar stock de %s: %w", r.nombre, err)
			}
			if !ok {
				return &InsufficientStockError{
					Producto:   r.nombre,
					Solicitado: r.cantidad,
					Disponible: stockAntes,
				}
			}

			ventaRef := venta.ID
			motivo := fmt.Sprintf("Venta #%s", venta.NumeroVenta())
			mov := &model.MovimientoStock{
				UsuarioID:     usuarioID,
				ProductoID:    r.productoID,
				Tipo:          model.MovimientoSalida,
				Cantidad:      -r.cantidad,
				StockAnterior: stockAntes,
				StockNuevo:    stockAntes - r.cantidad,
				Motivo:        &motivo,
				ReferenciaID:  &ventaRef,
			}
			if err := s.inventario.RegistrarMovimientoTx(tx, mov); err != nil {
				return fmt.Errorf("registrar movimiento de %s: %w", r.nombre, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Receipt snapshot — built once from committed data, then immutable.
	fecha := venta.CreatedAt
	if fecha.IsZero() {
		fecha = time.Now()
	}
	recibo := &dto.Recibo{
		VentaID:       venta.ID.String(),
		NumeroVenta:   venta.NumeroVenta(),
		Fecha:         fecha.Format(fechaReciboFormat),
		NombreNegocio: s.nombreNegocio(ctx, usuarioID),
		Subtotal:      subtotal,
		Descuento:     req.Descuento,
		Total:         total,
	}
	for _, r := range resueltas {
		recibo.Items = append(recibo.Items, dto.ReciboItem{
			Nombre:         r.nombre,
			Cantidad:       r.cantidad,
			PrecioUnitario: r.precio,
			Subtotal:       r.subtotal,
		})
	}

	s.cacheRecibo(ctx, venta.ID, recibo)

	// 5. Async PDF generation / e-mail delivery — best-effort, never blocks
	// nor fails the committed sale.
	if s.dispatcher != nil {
		payload := worker.ReciboPayload{
			VentaID:   venta.ID.String(),
			UsuarioID: usuarioID.String(),
		}
		if req.ClienteEmail != nil && *req.ClienteEmail != "" {
			payload.ClienteEmail = *req.ClienteEmail
		}
		if err := s.dispatcher.EnqueueRecibo(ctx, payload); err != nil {
			log.Warn().Str("venta_id", venta.ID.String()).Err(err).Msg("no se pudo encolar el recibo")
		}
	}

	return recibo, nil
}

func (s *ventaService) ObtenerRecibo(ctx context.Context, usuarioID, ventaID uuid.UUID) (*dto.Recibo, error) {
	if cached := s.cachedRecibo(ctx, ventaID); cached != nil {
		return cached, nil
	}

	v, err := s.repo.FindByID(ctx, usuarioID, ventaID)
	if err != nil {
		return nil, err
	}

	recibo := &dto.Recibo{
		VentaID:       v.ID.String(),
		NumeroVenta:   v.NumeroVenta(),
		Fecha:         v.CreatedAt.Format(fechaReciboFormat),
		NombreNegocio: s.nombreNegocio(ctx, usuarioID),
		Subtotal:      v.Subtotal,
		Descuento:     v.Descuento,
		Total:         v.Total,
	}
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		recibo.Items = append(recibo.Items, dto.ReciboItem{
			Nombre:         nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}

	s.cacheRecibo(ctx, ventaID, recibo)
	return recibo, nil
}

func (s *ventaService) ListVentas(ctx context.Context, usuarioID uuid.UUID, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, usuarioID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaListItem, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToListItem(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// nombreNegocio resolves the business name for receipts, falling back to the
// configured default when the owner has no profile yet.
func (s *ventaService) nombreNegocio(ctx context.Context, usuarioID uuid.UUID) string {
	if s.perfilRepo != nil {
		if perfil, err := s.perfilRepo.FindByUsuarioID(ctx, usuarioID); err == nil && perfil.NombreNegocio != "" {
			return perfil.NombreNegocio
		}
	}
	return s.negocioDefault
}

func (s *ventaService) cacheRecibo(ctx context.Context, ventaID uuid.UUID, recibo *dto.Recibo) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(recibo)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, reciboCachePrefix+ventaID.String(), data, reciboCacheTTL).Err(); err != nil {
		log.Debug().Str("venta_id", ventaID.String()).Err(err).Msg("cache de recibo no disponible")
	}
}

func (s *ventaService) cachedRecibo(ctx context.Context, ventaID uuid.UUID) *dto.Recibo {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, reciboCachePrefix+ventaID.String()).Bytes()
	if err != nil {
		return nil
	}
	var recibo dto.Recibo
	if err := json.Unmarshal(data, &recibo); err != nil {
		return nil
	}
	return &recibo
}

func ventaToListItem(v *model.Venta) *dto.VentaListItem {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return &dto.VentaListItem{
		ID:          v.ID.String(),
		NumeroVenta: v.NumeroVenta(),
		Subtotal:    v.Subtotal,
		Descuento:   v.Descuento,
		Total:       v.Total,
		Estado:      v.Estado,
		MetodoPago:  v.MetodoPago,
		Items:       items,
		CreatedAt:   v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
