package repository

import (
	"context"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs. Every method is scoped to the owner:
// a query can never see or touch another owner's rows.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, usuarioID, id uuid.UUID) error
	Reactivar(ctx context.Context, usuarioID, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, usuarioID, id uuid.UUID) (*model.Producto, error)

	// DescontarStockTx decrements stock with a conditional update
	// ("stock = stock - ? WHERE stock >= ?"). Returns false when the guard did
	// not match, i.e. available stock was insufficient. The check and the write
	// are a single statement, so two concurrent sales cannot both spend the
	// same units.
	DescontarStockTx(tx *gorm.DB, usuarioID, id uuid.UUID, cantidad int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, usuarioID, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, usuarioID uuid.UUID, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var productos []model.Producto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Producto{}).Where("usuario_id = ?", usuarioID)

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}

	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}
	if filter.BajoStock {
		q = q.Where("stock <= stock_minimo")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, usuarioID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, usuarioID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND usuario_id = ?", id, usuarioID).
		Update("activo", true).Error
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, usuarioID, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := tx.Where("id = ? AND usuario_id = ?", id, usuarioID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) DescontarStockTx(tx *gorm.DB, usuarioID, id uuid.UUID, cantidad int) (bool, error) {
	res := tx.Model(&model.Producto{}).
		Where("id = ? AND usuario_id = ? AND stock >= ?", id, usuarioID, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
