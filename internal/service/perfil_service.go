package service

import (
	"context"
	"strings"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"
	"github.com/JhoonerO/TuckFlow/internal/repository"

	"github.com/google/uuid"
)

type PerfilService interface {
	Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.PerfilResponse, error)
	Actualizar(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.PerfilResponse, error)
}

type perfilService struct {
	repo repository.PerfilRepository
}

func NewPerfilService(repo repository.PerfilRepository) PerfilService {
	return &perfilService{repo: repo}
}

func (s *perfilService) Obtener(ctx context.Context, usuarioID uuid.UUID) (*dto.PerfilResponse, error) {
	p, err := s.repo.FindByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return &dto.PerfilResponse{ID: p.ID.String(), NombreNegocio: p.NombreNegocio}, nil
}

func (s *perfilService) Actualizar(ctx context.Context, usuarioID uuid.UUID, req dto.ActualizarPerfilRequest) (*dto.PerfilResponse, error) {
	nombre := strings.TrimSpace(req.NombreNegocio)
	if nombre == "" {
		return nil, errValidation("el nombre del negocio es obligatorio")
	}
	p := &model.Perfil{ID: usuarioID, NombreNegocio: nombre}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return &dto.PerfilResponse{ID: p.ID.String(), NombreNegocio: p.NombreNegocio}, nil
}
