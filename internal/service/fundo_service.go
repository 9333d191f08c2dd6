package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

type FundoService interface {
	Crear(ctx context.Context, req dto.CrearFundoRequest) (*dto.FundoResponse, error)
	ObtenerPorID(ctx context.Context, userID, id uuid.UUID) (*dto.FundoResponse, error)
	Listar(ctx context.Context, userID uuid.UUID, incluirInactivos bool) ([]dto.FundoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFundoRequest) (*dto.FundoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type fundoService struct {
	repo     repository.FundoRepository
	resolver *authz.Resolver
}

func NewFundoService(repo repository.FundoRepository, resolver *authz.Resolver) FundoService {
	return &fundoService{repo: repo, resolver: resolver}
}

func (s *fundoService) Crear(ctx context.Context, req dto.CrearFundoRequest) (*dto.FundoResponse, error) {
	if req.AreaHectareas.IsNegative() || req.AreaHectareas.IsZero() {
		return nil, errors.New("area_hectareas debe ser mayor a cero")
	}
	fundo := &model.Fundo{
		Nombre:        req.Nombre,
		Ubicacion:     req.Ubicacion,
		AreaHectareas: req.AreaHectareas,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, fundo); err != nil {
		return nil, err
	}
	resp := fundoResponse(fundo)
	return &resp, nil
}

func (s *fundoService) ObtenerPorID(ctx context.Context, userID, id uuid.UUID) (*dto.FundoResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Permite(id) {
		return nil, errors.New("fundo no encontrado")
	}
	fundo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fundo no encontrado")
	}
	resp := fundoResponse(fundo)
	return &resp, nil
}

func (s *fundoService) Listar(ctx context.Context, userID uuid.UUID, incluirInactivos bool) ([]dto.FundoResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	fundos, err := s.repo.List(ctx, alcance, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.FundoResponse, len(fundos))
	for i := range fundos {
		resp[i] = fundoResponse(&fundos[i])
	}
	return resp, nil
}

func (s *fundoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarFundoRequest) (*dto.FundoResponse, error) {
	fundo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("fundo no encontrado")
	}
	if req.Nombre != nil {
		fundo.Nombre = *req.Nombre
	}
	if req.Ubicacion != nil {
		fundo.Ubicacion = *req.Ubicacion
	}
	if req.AreaHectareas != nil {
		if req.AreaHectareas.IsNegative() || req.AreaHectareas.IsZero() {
			return nil, errors.New("area_hectareas debe ser mayor a cero")
		}
		fundo.AreaHectareas = *req.AreaHectareas
	}
	if req.Activo != nil {
		fundo.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, fundo); err != nil {
		return nil, err
	}
	resp := fundoResponse(fundo)
	return &resp, nil
}

func (s *fundoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func fundoResponse(f *model.Fundo) dto.FundoResponse {
	return dto.FundoResponse{
		ID:            f.ID.String(),
		Nombre:        f.Nombre,
		Ubicacion:     f.Ubicacion,
		AreaHectareas: f.AreaHectareas,
		Activo:        f.Activo,
	}
}
