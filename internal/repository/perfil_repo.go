package repository

import (
	"context"

	"github.com/JhoonerO/TuckFlow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PerfilRepository interface {
	FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Perfil, error)
	Upsert(ctx context.Context, p *model.Perfil) error
}

type perfilRepo struct{ db *gorm.DB }

func NewPerfilRepository(db *gorm.DB) PerfilRepository { return &perfilRepo{db: db} }

func (r *perfilRepo) FindByUsuarioID(ctx context.Context, usuarioID uuid.UUID) (*model.Perfil, error) {
	var p model.Perfil
	err := r.db.WithContext(ctx).Where("id = ?", usuarioID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *perfilRepo) Upsert(ctx context.Context, p *model.Perfil) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nombre_negocio", "updated_at"}),
	}).Create(p).Error
}
