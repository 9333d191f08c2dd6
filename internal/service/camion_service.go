package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

type CamionService interface {
	Crear(ctx context.Context, req dto.CrearCamionRequest) (*dto.CamionResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CamionResponse, error)
	Listar(ctx context.Context, userID uuid.UUID, incluirInactivos bool) ([]dto.CamionResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCamionRequest) (*dto.CamionResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type camionService struct {
	repo     repository.CamionRepository
	lotes    repository.LoteRepository
	resolver *authz.Resolver
}

func NewCamionService(repo repository.CamionRepository, lotes repository.LoteRepository, resolver *authz.Resolver) CamionService {
	return &camionService{repo: repo, lotes: lotes, resolver: resolver}
}

func (s *camionService) Crear(ctx context.Context, req dto.CrearCamionRequest) (*dto.CamionResponse, error) {
	camion := &model.Camion{
		Chofer:    req.Chofer,
		Placa:     strings.ToUpper(strings.TrimSpace(req.Placa)),
		Capacidad: req.Capacidad,
		Activo:    true,
	}
	if err := s.applyAsignacion(ctx, camion, req.IDFundo, req.IDLote); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, camion); err != nil {
		return nil, errors.New("la placa ya esta registrada")
	}
	resp := camionResponse(camion)
	return &resp, nil
}

func (s *camionService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CamionResponse, error) {
	camion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("camion no encontrado")
	}
	resp := camionResponse(camion)
	return &resp, nil
}

func (s *camionService) Listar(ctx context.Context, userID uuid.UUID, incluirInactivos bool) ([]dto.CamionResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	camiones, err := s.repo.List(ctx, alcance, repository.CamionFilter{IncluirInactivos: incluirInactivos})
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CamionResponse, len(camiones))
	for i := range camiones {
		resp[i] = camionResponse(&camiones[i])
	}
	return resp, nil
}

func (s *camionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCamionRequest) (*dto.CamionResponse, error) {
	camion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("camion no encontrado")
	}
	if req.Chofer != nil {
		camion.Chofer = *req.Chofer
	}
	if req.Placa != nil {
		camion.Placa = strings.ToUpper(strings.TrimSpace(*req.Placa))
	}
	if req.Capacidad != nil {
		camion.Capacidad = *req.Capacidad
	}
	if req.IDFundo != nil || req.IDLote != nil {
		if err := s.applyAsignacion(ctx, camion, req.IDFundo, req.IDLote); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, camion); err != nil {
		return nil, err
	}
	resp := camionResponse(camion)
	return &resp, nil
}

func (s *camionService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *camionService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

// applyAsignacion resolves the optional fundo/lote assignment. A lote implies
// its fundo; an explicit fundo must agree with the lote's fundo.
func (s *camionService) applyAsignacion(ctx context.Context, camion *model.Camion, rawFundo, rawLote *string) error {
	var fundoID, loteID *uuid.UUID

	if rawLote != nil && *rawLote != "" {
		id, err := uuid.Parse(*rawLote)
		if err != nil {
			return errors.New("id_lote invalido")
		}
		lote, err := s.lotes.FindByID(ctx, id)
		if err != nil {
			return errors.New("lote no encontrado")
		}
		loteID = &id
		fundoID = &lote.IDFundo
	}
	if rawFundo != nil && *rawFundo != "" {
		id, err := uuid.Parse(*rawFundo)
		if err != nil {
			return errors.New("id_fundo invalido")
		}
		if fundoID != nil && *fundoID != id {
			return errors.New("el lote no pertenece al fundo indicado")
		}
		fundoID = &id
	}

	camion.IDFundo = fundoID
	camion.IDLote = loteID
	return nil
}

func camionResponse(c *model.Camion) dto.CamionResponse {
	resp := dto.CamionResponse{
		ID:        c.ID.String(),
		Chofer:    c.Chofer,
		Placa:     c.Placa,
		Capacidad: c.Capacidad,
		Activo:    c.Activo,
	}
	if c.IDFundo != nil {
		id := c.IDFundo.String()
		resp.IDFundo = &id
	}
	if c.IDLote != nil {
		id := c.IDLote.String()
		resp.IDLote = &id
	}
	if c.Fundo != nil {
		resp.FundoNombre = &c.Fundo.Nombre
	}
	if c.Lote != nil {
		resp.LoteNombre = &c.Lote.Nombre
	}
	return resp
}
