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

type LoteService interface {
	Crear(ctx context.Context, userID uuid.UUID, req dto.CrearLoteRequest) (*dto.LoteResponse, error)
	ObtenerPorID(ctx context.Context, userID, id uuid.UUID) (*dto.LoteResponse, error)
	Listar(ctx context.Context, userID uuid.UUID, query dto.LoteFilterQuery) ([]dto.LoteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLoteRequest) (*dto.LoteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type loteService struct {
	repo     repository.LoteRepository
	fundos   repository.FundoRepository
	resolver *authz.Resolver
}

func NewLoteService(repo repository.LoteRepository, fundos repository.FundoRepository, resolver *authz.Resolver) LoteService {
	return &loteService{repo: repo, fundos: fundos, resolver: resolver}
}

func (s *loteService) Crear(ctx context.Context, userID uuid.UUID, req dto.CrearLoteRequest) (*dto.LoteResponse, error) {
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
	if _, err := s.fundos.FindByID(ctx, fundoID); err != nil {
		return nil, errors.New("fundo no encontrado")
	}

	lote := &model.Lote{
		IDFundo:       fundoID,
		Nombre:        req.Nombre,
		AreaHectareas: req.AreaHectareas,
		TipoCultivo:   req.TipoCultivo,
		Variedad:      req.Variedad,
		FechaSiembra:  req.FechaSiembra,
		Estado:        "activo",
	}
	if err := s.repo.Create(ctx, lote); err != nil {
		return nil, err
	}
	resp := loteResponse(lote)
	return &resp, nil
}

func (s *loteService) ObtenerPorID(ctx context.Context, userID, id uuid.UUID) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("lote no encontrado")
	}
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Permite(lote.IDFundo) {
		return nil, errors.New("lote no encontrado")
	}
	resp := loteResponse(lote)
	return &resp, nil
}

func (s *loteService) Listar(ctx context.Context, userID uuid.UUID, query dto.LoteFilterQuery) ([]dto.LoteResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter := repository.LoteFilter{Estado: query.Estado}
	if query.FundoID != "" {
		fundoID, err := uuid.Parse(query.FundoID)
		if err != nil {
			return nil, errors.New("fundo_id invalido")
		}
		filter.FundoID = &fundoID
	}
	lotes, err := s.repo.List(ctx, alcance, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LoteResponse, len(lotes))
	for i := range lotes {
		resp[i] = loteResponse(&lotes[i])
	}
	return resp, nil
}

func (s *loteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLoteRequest) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("lote no encontrado")
	}
	if req.Nombre != nil {
		lote.Nombre = *req.Nombre
	}
	if req.AreaHectareas != nil {
		lote.AreaHectareas = *req.AreaHectareas
	}
	if req.TipoCultivo != nil {
		lote.TipoCultivo = *req.TipoCultivo
	}
	if req.Variedad != nil {
		lote.Variedad = *req.Variedad
	}
	if req.FechaSiembra != nil {
		lote.FechaSiembra = req.FechaSiembra
	}
	if req.Estado != nil {
		lote.Estado = *req.Estado
	}
	if err := s.repo.Update(ctx, lote); err != nil {
		return nil, err
	}
	resp := loteResponse(lote)
	return &resp, nil
}

func (s *loteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func loteResponse(l *model.Lote) dto.LoteResponse {
	resp := dto.LoteResponse{
		ID:            l.ID.String(),
		IDFundo:       l.IDFundo.String(),
		Nombre:        l.Nombre,
		AreaHectareas: l.AreaHectareas,
		TipoCultivo:   l.TipoCultivo,
		Variedad:      l.Variedad,
		FechaSiembra:  l.FechaSiembra,
		Estado:        l.Estado,
	}
	if l.Fundo != nil {
		resp.FundoNombre = l.Fundo.Nombre
	}
	return resp
}
