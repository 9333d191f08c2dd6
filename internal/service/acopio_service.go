package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

type AcopioService interface {
	CrearRecepcion(ctx context.Context, userID uuid.UUID, req dto.CrearRecepcionRequest) (*dto.RecepcionResponse, error)
	ListarRecepciones(ctx context.Context, userID uuid.UUID, query dto.GuiaFilterQuery) ([]dto.RecepcionResponse, error)
	ActualizarRecepcion(ctx context.Context, id uuid.UUID, req dto.ActualizarRecepcionRequest) (*dto.RecepcionResponse, error)
	EliminarRecepcion(ctx context.Context, id uuid.UUID) error

	CrearPallet(ctx context.Context, req dto.CrearPalletRequest) (*dto.PalletResponse, error)
	ListarPallets(ctx context.Context, userID uuid.UUID, estado string) ([]dto.PalletResponse, error)
	DespacharPallet(ctx context.Context, id uuid.UUID) (*dto.PalletResponse, error)

	CrearCarga(ctx context.Context, userID uuid.UUID, req dto.CrearCargaRequest) (*dto.CargaResponse, error)
	ListarCargas(ctx context.Context, palletID uuid.UUID) ([]dto.CargaResponse, error)
}

type acopioService struct {
	repo     repository.AcopioRepository
	lotes    repository.LoteRepository
	resolver *authz.Resolver
}

func NewAcopioService(repo repository.AcopioRepository, lotes repository.LoteRepository, resolver *authz.Resolver) AcopioService {
	return &acopioService{repo: repo, lotes: lotes, resolver: resolver}
}

// ── Recepciones ──────────────────────────────────────────────────────────────

func (s *acopioService) CrearRecepcion(ctx context.Context, userID uuid.UUID, req dto.CrearRecepcionRequest) (*dto.RecepcionResponse, error) {
	loteID, err := uuid.Parse(req.IDLote)
	if err != nil {
		return nil, errors.New("id_lote invalido")
	}
	lote, err := s.lotes.FindByID(ctx, loteID)
	if err != nil {
		return nil, errors.New("lote no encontrado")
	}
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Permite(lote.IDFundo) {
		return nil, errors.New("lote fuera de su alcance")
	}

	fecha := time.Now().UTC()
	if req.Fecha != nil {
		fecha = req.Fecha.UTC()
	}
	rec := &model.AcopioRecepcion{
		IDLote:         loteID,
		Fecha:          fecha,
		JabasRecibidas: req.JabasRecibidas,
		ResponsableID:  userID,
		Observacion:    req.Observacion,
	}
	if err := s.repo.CreateRecepcion(ctx, rec); err != nil {
		return nil, err
	}
	created, err := s.repo.FindRecepcion(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	resp := recepcionResponse(created)
	return &resp, nil
}

func (s *acopioService) ListarRecepciones(ctx context.Context, userID uuid.UUID, query dto.GuiaFilterQuery) ([]dto.RecepcionResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter := repository.RecepcionFilter{}
	filter.Desde, filter.Hasta, err = ParseRangoFechas(query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}
	recs, err := s.repo.ListRecepciones(ctx, alcance, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecepcionResponse, len(recs))
	for i := range recs {
		resp[i] = recepcionResponse(&recs[i])
	}
	return resp, nil
}

func (s *acopioService) ActualizarRecepcion(ctx context.Context, id uuid.UUID, req dto.ActualizarRecepcionRequest) (*dto.RecepcionResponse, error) {
	rec, err := s.repo.FindRecepcion(ctx, id)
	if err != nil {
		return nil, errors.New("recepcion no encontrada")
	}
	if req.JabasRecibidas != nil {
		rec.JabasRecibidas = *req.JabasRecibidas
	}
	if req.Observacion != nil {
		rec.Observacion = req.Observacion
	}
	if err := s.repo.UpdateRecepcion(ctx, rec); err != nil {
		return nil, err
	}
	resp := recepcionResponse(rec)
	return &resp, nil
}

func (s *acopioService) EliminarRecepcion(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRecepcion(ctx, id)
}

// ── Pallets ──────────────────────────────────────────────────────────────────

func (s *acopioService) CrearPallet(ctx context.Context, req dto.CrearPalletRequest) (*dto.PalletResponse, error) {
	fundoID, err := uuid.Parse(req.IDFundo)
	if err != nil {
		return nil, errors.New("id_fundo invalido")
	}
	pallet := &model.AcopioPallet{
		Codigo:         strings.ToUpper(strings.TrimSpace(req.Codigo)),
		IDFundo:        fundoID,
		CapacidadJabas: req.CapacidadJabas,
		Estado:         model.PalletVacio,
	}
	if err := s.repo.CreatePallet(ctx, pallet); err != nil {
		return nil, errors.New("el codigo de pallet ya existe")
	}
	resp := palletResponse(pallet)
	return &resp, nil
}

func (s *acopioService) ListarPallets(ctx context.Context, userID uuid.UUID, estado string) ([]dto.PalletResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	pallets, err := s.repo.ListPallets(ctx, alcance, estado)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PalletResponse, len(pallets))
	for i := range pallets {
		resp[i] = palletResponse(&pallets[i])
	}
	return resp, nil
}

// DespacharPallet moves a pallet to its terminal state. Only a full pallet
// may leave the warehouse.
func (s *acopioService) DespacharPallet(ctx context.Context, id uuid.UUID) (*dto.PalletResponse, error) {
	pallet, err := s.repo.FindPallet(ctx, id)
	if err != nil {
		return nil, errors.New("pallet no encontrado")
	}
	if pallet.Estado != model.PalletLleno {
		return nil, fmt.Errorf("solo un pallet lleno puede despacharse (estado actual: %s)", pallet.Estado)
	}
	pallet.Estado = model.PalletDespachado
	if err := s.repo.UpdatePallet(ctx, pallet); err != nil {
		return nil, err
	}
	resp := palletResponse(pallet)
	return &resp, nil
}

// ── Cargas ───────────────────────────────────────────────────────────────────

// CrearCarga moves jabas from a reception batch onto a pallet and advances the
// pallet lifecycle: vacio → parcial while filling, parcial → lleno when the
// capacity is reached exactly. Overfilling and loading a despachado pallet
// are rejected.
func (s *acopioService) CrearCarga(ctx context.Context, userID uuid.UUID, req dto.CrearCargaRequest) (*dto.CargaResponse, error) {
	palletID, err := uuid.Parse(req.IDPallet)
	if err != nil {
		return nil, errors.New("id_pallet invalido")
	}
	recepcionID, err := uuid.Parse(req.IDRecepcion)
	if err != nil {
		return nil, errors.New("id_recepcion invalido")
	}

	pallet, err := s.repo.FindPallet(ctx, palletID)
	if err != nil {
		return nil, errors.New("pallet no encontrado")
	}
	if pallet.Estado == model.PalletDespachado {
		return nil, errors.New("el pallet ya fue despachado")
	}
	if _, err := s.repo.FindRecepcion(ctx, recepcionID); err != nil {
		return nil, errors.New("recepcion no encontrada")
	}

	if pallet.JabasActuales+req.Jabas > pallet.CapacidadJabas {
		return nil, fmt.Errorf("la carga excede la capacidad del pallet (%d + %d > %d jabas)",
			pallet.JabasActuales, req.Jabas, pallet.CapacidadJabas)
	}

	fecha := time.Now().UTC()
	if req.Fecha != nil {
		fecha = req.Fecha.UTC()
	}
	carga := &model.AcopioCarga{
		IDPallet:      palletID,
		IDRecepcion:   recepcionID,
		Jabas:         req.Jabas,
		Fecha:         fecha,
		ResponsableID: userID,
	}
	// The precheck above gives the friendly message; the repo re-checks the
	// increment against the stored row, so a carga racing this one cannot
	// slip past capacity between the read and the write.
	if err := s.repo.CreateCarga(ctx, carga, req.Jabas); err != nil {
		if errors.Is(err, repository.ErrPalletSinCapacidad) {
			return nil, errors.New("la carga excede la capacidad del pallet")
		}
		return nil, err
	}
	resp := cargaResponse(carga)
	return &resp, nil
}

func (s *acopioService) ListarCargas(ctx context.Context, palletID uuid.UUID) ([]dto.CargaResponse, error) {
	cargas, err := s.repo.ListCargas(ctx, palletID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CargaResponse, len(cargas))
	for i := range cargas {
		resp[i] = cargaResponse(&cargas[i])
	}
	return resp, nil
}

func recepcionResponse(r *model.AcopioRecepcion) dto.RecepcionResponse {
	resp := dto.RecepcionResponse{
		ID:             r.ID.String(),
		IDLote:         r.IDLote.String(),
		Fecha:          r.Fecha,
		JabasRecibidas: r.JabasRecibidas,
		ResponsableID:  r.ResponsableID.String(),
		Observacion:    r.Observacion,
	}
	if r.Lote != nil {
		resp.LoteNombre = r.Lote.Nombre
	}
	if r.Responsable != nil {
		resp.Responsable = r.Responsable.Nombre + " " + r.Responsable.Apellido
	}
	return resp
}

func palletResponse(p *model.AcopioPallet) dto.PalletResponse {
	resp := dto.PalletResponse{
		ID:             p.ID.String(),
		Codigo:         p.Codigo,
		IDFundo:        p.IDFundo.String(),
		CapacidadJabas: p.CapacidadJabas,
		JabasActuales:  p.JabasActuales,
		Estado:         p.Estado,
	}
	if p.Fundo != nil {
		resp.FundoNombre = p.Fundo.Nombre
	}
	return resp
}

func cargaResponse(c *model.AcopioCarga) dto.CargaResponse {
	return dto.CargaResponse{
		ID:            c.ID.String(),
		IDPallet:      c.IDPallet.String(),
		IDRecepcion:   c.IDRecepcion.String(),
		Jabas:         c.Jabas,
		Fecha:         c.Fecha,
		ResponsableID: c.ResponsableID.String(),
	}
}
