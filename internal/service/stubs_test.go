package service

import (
	"context"
	"strings"
	"time"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so services run their
// transactional closures directly, without a database.

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	// forzarStockInsuficiente makes every conditional decrement report a miss,
	// simulating a concurrent sale spending the stock first.
	forzarStockInsuficiente bool
	failCreate              error
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) seed(p model.Producto) uuid.UUID {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := p
	r.productos[p.ID] = &cp
	return p.ID
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, usuarioID, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok || p.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) List(_ context.Context, usuarioID uuid.UUID, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.UsuarioID == usuarioID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, usuarioID, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok && p.UsuarioID == usuarioID {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, usuarioID, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok && p.UsuarioID == usuarioID {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, usuarioID, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), usuarioID, id)
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, usuarioID, id uuid.UUID, cantidad int) (bool, error) {
	if r.forzarStockInsuficiente {
		return false, nil
	}
	p, ok := r.productos[id]
	if !ok || p.UsuarioID != usuarioID || p.Stock < cantidad {
		return false, nil
	}
	p.Stock -= cantidad
	return true, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
	failCreate  error
	productos   *stubProductoRepo // optional, resolves Producto for busqueda
}

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.append(m)
	return nil
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.append(m)
	return nil
}

func (r *stubMovimientoRepo) append(m *model.MovimientoStock) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	cp := *m
	if cp.Producto == nil && r.productos != nil {
		if p, ok := r.productos.productos[cp.ProductoID]; ok {
			pc := *p
			cp.Producto = &pc
		}
	}
	r.movimientos = append(r.movimientos, cp)
}

// List returns newest first, mirroring the created_at DESC ordering of the
// real repository.
func (r *stubMovimientoRepo) List(_ context.Context, usuarioID uuid.UUID, filter dto.MovimientoFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		m := r.movimientos[i]
		if m.UsuarioID != usuarioID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		if filter.ProductoID != "" && m.ProductoID.String() != filter.ProductoID {
			continue
		}
		if filter.Busqueda != "" && !movimientoMatches(&m, filter.Busqueda) {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func movimientoMatches(m *model.MovimientoStock, busqueda string) bool {
	needle := strings.ToLower(busqueda)
	if m.Producto != nil && strings.Contains(strings.ToLower(m.Producto.Nombre), needle) {
		return true
	}
	if m.Motivo != nil && strings.Contains(strings.ToLower(*m.Motivo), needle) {
		return true
	}
	return false
}

func (r *stubMovimientoRepo) SumCantidad(_ context.Context, usuarioID, productoID uuid.UUID) (int, error) {
	suma := 0
	for _, m := range r.movimientos {
		if m.UsuarioID == usuarioID && m.ProductoID == productoID {
			suma += m.Cantidad
		}
	}
	return suma, nil
}

type stubVentaRepo struct {
	ventas     map[uuid.UUID]*model.Venta
	failCreate error
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	cp := *v
	r.ventas[v.ID] = &cp
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, usuarioID, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok || v.UsuarioID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVentaRepo) List(_ context.Context, usuarioID uuid.UUID, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.UsuarioID == usuarioID {
			out = append(out, *v)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

type stubPerfilRepo struct {
	perfil *model.Perfil
}

func (r *stubPerfilRepo) FindByUsuarioID(_ context.Context, usuarioID uuid.UUID) (*model.Perfil, error) {
	if r.perfil == nil || r.perfil.ID != usuarioID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.perfil
	return &cp, nil
}

func (r *stubPerfilRepo) Upsert(_ context.Context, p *model.Perfil) error {
	cp := *p
	r.perfil = &cp
	return nil
}
