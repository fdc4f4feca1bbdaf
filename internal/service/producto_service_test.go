package service

import (
	"context"
	"errors"
	"testing"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductoFixture() (*stubProductoRepo, *stubMovimientoRepo, ProductoService) {
	productoRepo := newStubProductoRepo()
	movimientoRepo := &stubMovimientoRepo{productos: productoRepo}
	inventario := NewInventarioService(productoRepo, movimientoRepo)
	return productoRepo, movimientoRepo, NewProductoService(productoRepo, inventario)
}

func TestCrearProductoRegistraEntradaInicial(t *testing.T) {
	_, movimientoRepo, svc := newProductoFixture()
	usuarioID := uuid.New()

	resp, err := svc.Crear(context.Background(), usuarioID, dto.CrearProductoRequest{
		Nombre:      "Gaseosa 500ml",
		Precio:      decimal.NewFromFloat(2.50),
		Stock:       10,
		StockMinimo: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Stock)
	assert.True(t, resp.Activo)

	require.Len(t, movimientoRepo.movimientos, 1)
	mov := movimientoRepo.movimientos[0]
	assert.Equal(t, model.MovimientoEntrada, mov.Tipo)
	assert.Equal(t, 10, mov.Cantidad)
	assert.Equal(t, 0, mov.StockAnterior)
	assert.Equal(t, 10, mov.StockNuevo)
	require.NotNil(t, mov.Motivo)
	assert.Equal(t, "Stock inicial", *mov.Motivo)
}

func TestCrearProductoSinStockNoRegistraMovimiento(t *testing.T) {
	_, movimientoRepo, svc := newProductoFixture()

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearProductoRequest{
		Nombre: "Caramelos",
		Precio: decimal.NewFromFloat(0.10),
		Stock:  0,
	})
	require.NoError(t, err)
	assert.Empty(t, movimientoRepo.movimientos)
}

func TestCrearProductoValidaciones(t *testing.T) {
	_, _, svc := newProductoFixture()
	usuarioID := uuid.New()

	casos := []struct {
		nombre string
		req    dto.CrearProductoRequest
	}{
		{"nombre vacio", dto.CrearProductoRequest{Nombre: "   ", Precio: decimal.NewFromInt(1)}},
		{"precio negativo", dto.CrearProductoRequest{Nombre: "Pan", Precio: decimal.NewFromInt(-1)}},
		{"stock negativo", dto.CrearProductoRequest{Nombre: "Pan", Precio: decimal.NewFromInt(1), Stock: -5}},
		{"stock minimo negativo", dto.CrearProductoRequest{Nombre: "Pan", Precio: decimal.NewFromInt(1), StockMinimo: -1}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := svc.Crear(context.Background(), usuarioID, tc.req)
			assert.True(t, IsValidation(err), "esperaba error de validacion, obtuve %v", err)
		})
	}
}

func TestCrearProductoMovimientoFallaNoDeshaceProducto(t *testing.T) {
	productoRepo, movimientoRepo, svc := newProductoFixture()
	movimientoRepo.failCreate = errors.New("ledger caido")
	usuarioID := uuid.New()

	resp, err := svc.Crear(context.Background(), usuarioID, dto.CrearProductoRequest{
		Nombre: "Harina",
		Precio: decimal.NewFromInt(3),
		Stock:  7,
	})
	require.NoError(t, err, "el alta del producto no depende del registro del movimiento")

	id, perr := uuid.Parse(resp.ID)
	require.NoError(t, perr)
	p, ferr := productoRepo.FindByID(context.Background(), usuarioID, id)
	require.NoError(t, ferr)
	assert.Equal(t, 7, p.Stock)
	assert.Empty(t, movimientoRepo.movimientos)
}

func TestActualizarStockGeneraAjuste(t *testing.T) {
	casos := []struct {
		nombre        string
		inicial       int
		nuevo         int
		deltaEsperado int
	}{
		{"incremento", 5, 8, 3},
		{"reduccion", 8, 3, -5},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			productoRepo, movimientoRepo, svc := newProductoFixture()
			usuarioID := uuid.New()
			id := productoRepo.seed(model.Producto{
				UsuarioID: usuarioID,
				Nombre:    "Aceite",
				Precio:    decimal.NewFromInt(9),
				Stock:     tc.inicial,
				Activo:    true,
			})

			resp, err := svc.Actualizar(context.Background(), usuarioID, id, dto.ActualizarProductoRequest{
				Nombre: "Aceite",
				Precio: decimal.NewFromInt(9),
				Stock:  tc.nuevo,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.nuevo, resp.Stock)

			require.Len(t, movimientoRepo.movimientos, 1)
			mov := movimientoRepo.movimientos[0]
			assert.Equal(t, model.MovimientoAjuste, mov.Tipo)
			assert.Equal(t, tc.deltaEsperado, mov.Cantidad)
			assert.Equal(t, tc.inicial, mov.StockAnterior)
			assert.Equal(t, tc.nuevo, mov.StockNuevo)
		})
	}
}

func TestActualizarSinCambioDeStockNoGeneraMovimiento(t *testing.T) {
	productoRepo, movimientoRepo, svc := newProductoFixture()
	usuarioID := uuid.New()
	id := productoRepo.seed(model.Producto{
		UsuarioID: usuarioID,
		Nombre:    "Arroz",
		Precio:    decimal.NewFromInt(4),
		Stock:     12,
		Activo:    true,
	})

	_, err := svc.Actualizar(context.Background(), usuarioID, id, dto.ActualizarProductoRequest{
		Nombre: "Arroz premium",
		Precio: decimal.NewFromInt(5),
		Stock:  12,
	})
	require.NoError(t, err)
	assert.Empty(t, movimientoRepo.movimientos, "editar nombre o precio no toca el ledger")
}

func TestDesactivarConservaHistorial(t *testing.T) {
	productoRepo, movimientoRepo, svc := newProductoFixture()
	usuarioID := uuid.New()
	id := productoRepo.seed(model.Producto{
		UsuarioID: usuarioID,
		Nombre:    "Leche",
		Precio:    decimal.NewFromInt(2),
		Stock:     6,
		Activo:    true,
	})
	movimientoRepo.append(&model.MovimientoStock{
		UsuarioID:  usuarioID,
		ProductoID: id,
		Tipo:       model.MovimientoEntrada,
		Cantidad:   6,
		StockNuevo: 6,
	})

	require.NoError(t, svc.Desactivar(context.Background(), usuarioID, id))

	p, err := productoRepo.FindByID(context.Background(), usuarioID, id)
	require.NoError(t, err)
	assert.False(t, p.Activo)
	assert.Equal(t, 6, p.Stock, "desactivar no altera el stock")
	assert.Len(t, movimientoRepo.movimientos, 1, "el historial queda intacto")

	require.NoError(t, svc.Reactivar(context.Background(), usuarioID, id))
	p, err = productoRepo.FindByID(context.Background(), usuarioID, id)
	require.NoError(t, err)
	assert.True(t, p.Activo)
}

func TestProductoAisladoPorUsuario(t *testing.T) {
	productoRepo, _, svc := newProductoFixture()
	duenio := uuid.New()
	otro := uuid.New()
	id := productoRepo.seed(model.Producto{
		UsuarioID: duenio,
		Nombre:    "Cafe",
		Precio:    decimal.NewFromInt(8),
		Stock:     4,
		Activo:    true,
	})

	_, err := svc.ObtenerPorID(context.Background(), otro, id)
	assert.Error(t, err, "otro usuario no puede ver el producto")

	err = svc.Desactivar(context.Background(), otro, id)
	assert.Error(t, err)
	p, ferr := productoRepo.FindByID(context.Background(), duenio, id)
	require.NoError(t, ferr)
	assert.True(t, p.Activo)
}
