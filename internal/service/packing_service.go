package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

type PackingService interface {
	Crear(ctx context.Context, userID uuid.UUID, req dto.CrearPackingRequest) (*dto.PackingResponse, error)
	Listar(ctx context.Context, userID uuid.UUID, query dto.GuiaFilterQuery) ([]dto.PackingResponse, error)
	ObtenerPorID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.PackingResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPackingRequest) (*dto.PackingResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type packingService struct {
	repo     repository.PackingRepository
	lotes    repository.LoteRepository
	resolver *authz.Resolver
}

func NewPackingService(repo repository.PackingRepository, lotes repository.LoteRepository, resolver *authz.Resolver) PackingService {
	return &packingService{repo: repo, lotes: lotes, resolver: resolver}
}

func (s *packingService) Crear(ctx context.Context, userID uuid.UUID, req dto.CrearPackingRequest) (*dto.PackingResponse, error) {
	fundoID, err := uuid.Parse(req.IDFundo)
	if err != nil {
		return nil, errors.New("id_fundo invalido")
	}
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Permite(fundoID) {
		return nil, errors.New("fundo fuera de su alcance")
	}

	var loteID *uuid.UUID
	if req.IDLote != nil {
		parsed, err := uuid.Parse(*req.IDLote)
		if err != nil {
			return nil, errors.New("id_lote invalido")
		}
		lote, err := s.lotes.FindByID(ctx, parsed)
		if err != nil {
			return nil, errors.New("lote no encontrado")
		}
		if lote.IDFundo != fundoID {
			return nil, errors.New("el lote no pertenece al fundo indicado")
		}
		loteID = &parsed
	}

	fecha := time.Now().UTC()
	if req.Fecha != nil {
		fecha = req.Fecha.UTC()
	}
	packing := &model.Packing{
		IDFundo:         fundoID,
		IDLote:          loteID,
		Fecha:           fecha,
		JabasProcesadas: req.JabasProcesadas,
		CajasProducidas: req.CajasProducidas,
		Destino:         req.Destino,
		ResponsableID:   userID,
	}
	if err := s.repo.Create(ctx, packing); err != nil {
		return nil, err
	}
	created, err := s.repo.FindByID(ctx, packing.ID)
	if err != nil {
		return nil, err
	}
	resp := packingResponse(created)
	return &resp, nil
}

func (s *packingService) Listar(ctx context.Context, userID uuid.UUID, query dto.GuiaFilterQuery) ([]dto.PackingResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter := repository.PackingFilter{}
	filter.Desde, filter.Hasta, err = ParseRangoFechas(query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}
	if query.FundoID != "" {
		fundoID, err := uuid.Parse(query.FundoID)
		if err != nil {
			return nil, errors.New("fundo_id invalido")
		}
		filter.FundoID = &fundoID
	}
	packings, err := s.repo.List(ctx, alcance, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PackingResponse, len(packings))
	for i := range packings {
		resp[i] = packingResponse(&packings[i])
	}
	return resp, nil
}

func (s *packingService) ObtenerPorID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.PackingResponse, error) {
	packing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("registro de packing no encontrado")
	}
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Permite(packing.IDFundo) {
		return nil, errors.New("registro de packing no encontrado")
	}
	resp := packingResponse(packing)
	return &resp, nil
}

func (s *packingService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPackingRequest) (*dto.PackingResponse, error) {
	packing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("registro de packing no encontrado")
	}
	if req.JabasProcesadas != nil {
		packing.JabasProcesadas = *req.JabasProcesadas
	}
	if req.CajasProducidas != nil {
		packing.CajasProducidas = *req.CajasProducidas
	}
	if req.Destino != nil {
		packing.Destino = *req.Destino
	}
	if err := s.repo.Update(ctx, packing); err != nil {
		return nil, err
	}
	resp := packingResponse(packing)
	return &resp, nil
}

func (s *packingService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func packingResponse(p *model.Packing) dto.PackingResponse {
	resp := dto.PackingResponse{
		ID:              p.ID.String(),
		IDFundo:         p.IDFundo.String(),
		Fecha:           p.Fecha,
		JabasProcesadas: p.JabasProcesadas,
		CajasProducidas: p.CajasProducidas,
		Destino:         p.Destino,
		ResponsableID:   p.ResponsableID.String(),
	}
	if p.IDLote != nil {
		id := p.IDLote.String()
		resp.IDLote = &id
	}
	if p.Fundo != nil {
		resp.FundoNombre = p.Fundo.Nombre
	}
	if p.Lote != nil {
		resp.LoteNombre = &p.Lote.Nombre
	}
	if p.Responsable != nil {
		resp.Responsable = p.Responsable.Nombre + " " + p.Responsable.Apellido
	}
	return resp
}
