package service

import (
	"context"
	"strings"

	"github.com/JhoonerO/TuckFlow/internal/dto"
	"github.com/JhoonerO/TuckFlow/internal/model"
	"github.com/JhoonerO/TuckFlow/internal/repository"

	"github.com/google/uuid"
)

// ClienteService is plain CRUD over customer records. Customers are never
// touched by the sale workflow.
type ClienteService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.ClienteFilter) (*dto.ClienteListResponse, error)
	Actualizar(ctx context.Context, usuarioID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, usuarioID, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, errValidation("el nombre es obligatorio")
	}
	c := &model.Cliente{
		UsuarioID: usuarioID,
		Nombre:    strings.TrimSpace(req.Nombre),
		Correo:    trimOpt(req.Correo),
		Telefono:  trimOpt(req.Telefono),
		Direccion: trimOpt(req.Direccion),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, usuarioID, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Listar(ctx context.Context, usuarioID uuid.UUID, filter dto.ClienteFilter) (*dto.ClienteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	clientes, total, err := s.repo.List(ctx, usuarioID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		items = append(items, *clienteToResponse(&clientes[i]))
	}
	return &dto.ClienteListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *clienteService) Actualizar(ctx context.Context, usuarioID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, errValidation("el nombre es obligatorio")
	}
	c, err := s.repo.FindByID(ctx, usuarioID, id)
	if err != nil {
		return nil, err
	}
	c.Nombre = strings.TrimSpace(req.Nombre)
	c.Correo = trimOpt(req.Correo)
	c.Telefono = trimOpt(req.Telefono)
	c.Direccion = trimOpt(req.Direccion)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Eliminar(ctx context.Context, usuarioID, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, usuarioID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, usuarioID, id)
}

func trimOpt(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Correo:    c.Correo,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
