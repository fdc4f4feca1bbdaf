package service

import (
	"context"
	"testing"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	productoRepo   *stubProductoRepo
	movimientoRepo *stubMovimientoRepo
	ventaRepo      *stubVentaRepo
	perfilRepo     *stubPerfilRepo
	svc            VentaService
}

func newVentaFixture() *ventaFixture {
	productoRepo := newStubProductoRepo()
	movimientoRepo := &stubMovimientoRepo{productos: productoRepo}
	ventaRepo := newStubVentaRepo()
	perfilRepo := &stubPerfilRepo{}
	inventario := NewInventarioService(productoRepo, movimientoRepo)
	svc := NewVentaService(ventaRepo, productoRepo, perfilRepo, inventario, nil, nil, "Mi Tienda")
	return &ventaFixture{
		productoRepo:   productoRepo,
		movimientoRepo: movimientoRepo,
		ventaRepo:      ventaRepo,
		perfilRepo:     perfilRepo,
		svc:            svc,
	}
}

func (f *ventaFixture) seedProducto(usuarioID uuid.UUID, nombre string, precio float64, stock int) uuid.UUID {
	return f.productoRepo.seed(model.Producto{
		UsuarioID: usuarioID,
		Nombre:    nombre,
		Precio:    decimal.NewFromFloat(precio),
		Stock:     stock,
		Activo:    true,
	})
}

func TestRegistrarVentaCalculaTotalesYDescuentaStock(t *testing.T) {
	f := newVentaFixture()
	usuarioID := uuid.New()
	gaseosaID := f.seedProducto(usuarioID, "Gaseosa", 2.50, 20)
	panID := f.seedProducto(usuarioID, "Pan", 1.00, 15)

	recibo, err := f.svc.RegistrarVenta(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: gaseosaID.String(), Cantidad: 3, PrecioUnitario: decimal.NewFromFloat(2.50)},
			{ProductoID: panID.String(), Cantidad: 5, PrecioUnitario: decimal.NewFromFloat(1.00)},
		},
		Descuento:  decimal.NewFromFloat(1.50),
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	// 3×2.50 + 5×1.00 = 12.50, menos 1.50 de descuento
	assert.True(t, recibo.Subtotal.Equal(decimal.NewFromFloat(12.50)), "subtotal = %s", recibo.Subtotal)
	assert.True(t, recibo.Total.Equal(decimal.NewFromFloat(11.00)), "total = %s", recibo.Total)
	assert.Len(t, recibo.Items, 2)
	assert.Len(t, recibo.NumeroVenta, 8)
	assert.Equal(t, "Mi Tienda", recibo.NombreNegocio)

	gaseosa, _ := f.productoRepo.FindByID(context.Background(), usuarioID, gaseosaID)
	pan, _ := f.productoRepo.FindByID(context.Background(), usuarioID, panID)
	assert.Equal(t, 17, gaseosa.Stock)
	assert.Equal(t, 10, pan.Stock)

	require.Len(t, f.movimientoRepo.movimientos, 2)
	for _, mov := range f.movimientoRepo.movimientos {
		assert.Equal(t, model.MovimientoSalida, mov.Tipo)
		assert.Negative(t, mov.Cantidad, "las salidas llevan delta negativo")
		assert.Equal(t, mov.StockAnterior+mov.Cantidad, mov.StockNuevo)
		require.NotNil(t, mov.ReferenciaID, "la salida referencia la venta")
		require.NotNil(t, mov.Motivo)
		assert.Contains(t, *mov.Motivo, recibo.NumeroVenta)
	}
}

func TestRegistrarVentaStockInsuficienteNoEscribeNada(t *testing.T) {
	f := newVentaFixture()
	usuarioID := uuid.New()
	id := f.seedProducto(usuarioID, "Yerba", 6.00, 2)

	_, err := f.svc.RegistrarVenta(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: id.String(), Cantidad: 5, PrecioUnitario: decimal.NewFromFloat(6.00)},
		},
		MetodoPago: "efectivo",
	})
	require.Error(t, err)
	assert.True(t, IsInsufficientStock(err))

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Yerba", stockErr.Producto)
	assert.Equal(t, 5, stockErr.Solicitado)
	assert.Equal(t, 2, stockErr.Disponible)

	p, _ := f.productoRepo.FindByID(context.Background(), usuarioID, id)
	assert.Equal(t, 2, p.Stock, "el stock queda intacto")
	assert.Empty(t, f.ventaRepo.ventas)
	assert.Empty(t, f.movimientoRepo.movimientos)
}

func TestRegistrarVentaCarreraDeStockFallaLimpia(t *testing.T) {
	// El chequeo previo pasa, pero el descuento condicional no encuentra stock:
	// es el caso de dos cajas vendiendo las mismas unidades a la vez.
	f := newVentaFixture()
	usuarioID := uuid.New()
	id := f.seedProducto(usuarioID, "Azucar", 3.00, 10)
	f.productoRepo.forzarStockInsuficiente = true

	_, err := f.svc.RegistrarVenta(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: id.String(), Cantidad: 4, PrecioUnitario: decimal.NewFromFloat(3.00)},
		},
		MetodoPago: "tarjeta",
	})
	require.Error(t, err)
	assert.True(t, IsInsufficientStock(err))
}

func TestRegistrarVentaValidaciones(t *testing.T) {
	f := newVentaFixture()
	usuarioID := uuid.New()
	activoID := f.seedProducto(usuarioID, "Fideos", 2.00, 10)
	inactivoID := f.productoRepo.seed(model.Producto{
		UsuarioID: usuarioID,
		Nombre:    "Descontinuado",
		Precio:    decimal.NewFromInt(1),
		Stock:     10,
		Activo:    false,
	})

	casos := []struct {
		nombre string
		req    dto.RegistrarVentaRequest
	}{
		{
			"cantidad cero",
			dto.RegistrarVentaRequest{
				Items:      []dto.ItemVentaRequest{{ProductoID: activoID.String(), Cantidad: 0, PrecioUnitario: decimal.NewFromInt(2)}},
				MetodoPago: "efectivo",
			},
		},
		{
			"precio negativo",
			dto.RegistrarVentaRequest{
				Items:      []dto.ItemVentaRequest{{ProductoID: activoID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(-2)}},
				MetodoPago: "efectivo",
			},
		},
		{
			"producto inactivo",
			dto.RegistrarVentaRequest{
				Items:      []dto.ItemVentaRequest{{ProductoID: inactivoID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(1)}},
				MetodoPago: "efectivo",
			},
		},
		{
			"producto inexistente",
			dto.RegistrarVentaRequest{
				Items:      []dto.ItemVentaRequest{{ProductoID: uuid.New().String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(1)}},
				MetodoPago: "efectivo",
			},
		},
		{
			"descuento negativo",
			dto.RegistrarVentaRequest{
				Items:      []dto.ItemVentaRequest{{ProductoID: activoID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(2)}},
				Descuento:  decimal.NewFromInt(-1),
				MetodoPago: "efectivo",
			},
		},
		{
			"descuento mayor al subtotal",
			dto.RegistrarVentaRequest{
				Items:      []dto.ItemVentaRequest{{ProductoID: activoID.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromInt(2)}},
				Descuento:  decimal.NewFromInt(50),
				MetodoPago: "efectivo",
			},
		},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.svc.RegistrarVenta(context.Background(), usuarioID, tc.req)
			assert.True(t, IsValidation(err), "esperaba error de validacion, obtuve %v", err)
			assert.Empty(t, f.ventaRepo.ventas, "ninguna validacion fallida escribe una venta")
			assert.Empty(t, f.movimientoRepo.movimientos)
		})
	}
}

func TestDescuentoIgualAlSubtotalEsValido(t *testing.T) {
	f := newVentaFixture()
	usuarioID := uuid.New()
	id := f.seedProducto(usuarioID, "Promo", 5.00, 10)

	recibo, err := f.svc.RegistrarVenta(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: id.String(), Cantidad: 2, PrecioUnitario: decimal.NewFromFloat(5.00)},
		},
		Descuento:  decimal.NewFromFloat(10.00),
		MetodoPago: "transferencia",
	})
	require.NoError(t, err)
	assert.True(t, recibo.Total.IsZero(), "total = %s", recibo.Total)
}

func TestObtenerReciboReimprimeSinMutar(t *testing.T) {
	f := newVentaFixture()
	usuarioID := uuid.New()
	f.perfilRepo.perfil = &model.Perfil{ID: usuarioID, NombreNegocio: "Tienda Rosa"}
	id := f.seedProducto(usuarioID, "Galletas", 1.50, 30)

	original, err := f.svc.RegistrarVenta(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: id.String(), Cantidad: 4, PrecioUnitario: decimal.NewFromFloat(1.50)},
		},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Rosa", original.NombreNegocio)

	ventaID, perr := uuid.Parse(original.VentaID)
	require.NoError(t, perr)
	stockTrasVenta, _ := f.productoRepo.FindByID(context.Background(), usuarioID, id)
	movimientosTrasVenta := len(f.movimientoRepo.movimientos)

	// Reimpresión de un día después: mismo snapshot, cero efectos.
	for i := 0; i < 2; i++ {
		recibo, rerr := f.svc.ObtenerRecibo(context.Background(), usuarioID, ventaID)
		require.NoError(t, rerr)
		assert.Equal(t, original.NumeroVenta, recibo.NumeroVenta)
		assert.True(t, recibo.Subtotal.Equal(original.Subtotal))
		assert.True(t, recibo.Total.Equal(original.Total))
	}

	p, _ := f.productoRepo.FindByID(context.Background(), usuarioID, id)
	assert.Equal(t, stockTrasVenta.Stock, p.Stock, "reimprimir no descuenta stock")
	assert.Len(t, f.movimientoRepo.movimientos, movimientosTrasVenta, "reimprimir no agrega movimientos")
}

func TestObtenerReciboDeOtroUsuarioFalla(t *testing.T) {
	f := newVentaFixture()
	usuarioID := uuid.New()
	id := f.seedProducto(usuarioID, "Jugo", 2.00, 10)

	recibo, err := f.svc.RegistrarVenta(context.Background(), usuarioID, dto.RegistrarVentaRequest{
		Items: []dto.ItemVentaRequest{
			{ProductoID: id.String(), Cantidad: 1, PrecioUnitario: decimal.NewFromFloat(2.00)},
		},
		MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	ventaID, _ := uuid.Parse(recibo.VentaID)
	_, err = f.svc.ObtenerRecibo(context.Background(), uuid.New(), ventaID)
	assert.Error(t, err)
}

func TestListVentasDefaultsDePaginacion(t *testing.T) {
	f := newVentaFixture()
	usuarioID := uuid.New()

	resp, err := f.svc.ListVentas(context.Background(), usuarioID, dto.VentaFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 50, resp.Limit)
	assert.Empty(t, resp.Data)
}
