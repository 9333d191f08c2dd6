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
	"github.com/LilDeus06/trazabilidad-sub000/internal/infra"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

type GuiaService interface {
	Crear(ctx context.Context, userID uuid.UUID, req dto.CrearGuiaRequest) (*dto.GuiaResponse, error)
	ObtenerPorID(ctx context.Context, userID, id uuid.UUID) (*dto.GuiaResponse, error)
	Listar(ctx context.Context, userID uuid.UUID, query dto.GuiaFilterQuery) ([]dto.GuiaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	GenerarPDF(ctx context.Context, userID, id uuid.UUID) ([]byte, string, error)
}

type guiaService struct {
	repo     repository.GuiaRepository
	camiones repository.CamionRepository
	lotes    repository.LoteRepository
	resolver *authz.Resolver
}

func NewGuiaService(repo repository.GuiaRepository, camiones repository.CamionRepository, lotes repository.LoteRepository, resolver *authz.Resolver) GuiaService {
	return &guiaService{repo: repo, camiones: camiones, lotes: lotes, resolver: resolver}
}

// Crear validates the dispatch invariants server-side, regardless of which
// client submitted the data:
//   - the camión exists, is active, and enviadas ≤ its capacidad;
//   - the fundo comes from the camión's assignment, never from the request;
//   - every lote belongs to that fundo;
//   - with more than one lote, the per-lote cantidades sum exactly to enviadas.
func (s *guiaService) Crear(ctx context.Context, userID uuid.UUID, req dto.CrearGuiaRequest) (*dto.GuiaResponse, error) {
	camionID, err := uuid.Parse(req.IDCamion)
	if err != nil {
		return nil, errors.New("id_camion invalido")
	}
	camion, err := s.camiones.FindByID(ctx, camionID)
	if err != nil {
		return nil, errors.New("camion no encontrado")
	}
	if !camion.Activo {
		return nil, errors.New("el camion esta inactivo")
	}
	if camion.IDFundo == nil {
		return nil, errors.New("el camion no tiene fundo asignado")
	}
	if req.Enviadas > camion.Capacidad {
		return nil, fmt.Errorf("enviadas (%d) excede la capacidad del camion (%d jabas)", req.Enviadas, camion.Capacidad)
	}

	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Permite(*camion.IDFundo) {
		return nil, errors.New("camion fuera de su alcance")
	}

	guiaLotes, err := s.buildLotes(ctx, req, *camion.IDFundo)
	if err != nil {
		return nil, err
	}

	fechaHora := time.Now().UTC()
	if req.FechaHora != nil {
		fechaHora = req.FechaHora.UTC()
	}
	guia := &model.Guia{
		Codigo:    strings.ToUpper(strings.TrimSpace(req.Codigo)),
		FechaHora: fechaHora,
		IDCamion:  camionID,
		IDFundo:   *camion.IDFundo,
		Enviadas:  req.Enviadas,
		UsuarioID: userID,
	}
	if err := s.repo.CreateConLotes(ctx, guia, guiaLotes); err != nil {
		return nil, errors.New("el codigo de guia ya existe")
	}

	created, err := s.repo.FindByID(ctx, guia.ID)
	if err != nil {
		return nil, err
	}
	resp := guiaResponse(created)
	return &resp, nil
}

func (s *guiaService) buildLotes(ctx context.Context, req dto.CrearGuiaRequest, fundoID uuid.UUID) ([]model.GuiaLote, error) {
	guiaLotes := make([]model.GuiaLote, 0, len(req.Lotes))
	suma := 0
	seen := make(map[uuid.UUID]bool, len(req.Lotes))

	for _, entry := range req.Lotes {
		loteID, err := uuid.Parse(entry.LoteID)
		if err != nil {
			return nil, errors.New("lote_id invalido")
		}
		if seen[loteID] {
			return nil, errors.New("lote repetido en la guia")
		}
		seen[loteID] = true

		lote, err := s.lotes.FindByID(ctx, loteID)
		if err != nil {
			return nil, errors.New("lote no encontrado")
		}
		if lote.IDFundo != fundoID {
			return nil, errors.New("el lote no pertenece al fundo del camion")
		}

		cantidad := entry.Cantidad
		if len(req.Lotes) == 1 {
			// Single-lote guía: the whole shipment comes from that lote.
			cantidad = req.Enviadas
		}
		suma += cantidad
		guiaLotes = append(guiaLotes, model.GuiaLote{LoteID: loteID, Cantidad: cantidad})
	}

	if len(req.Lotes) > 1 && suma != req.Enviadas {
		return nil, fmt.Errorf("las cantidades por lote suman %d pero enviadas es %d", suma, req.Enviadas)
	}
	return guiaLotes, nil
}

func (s *guiaService) ObtenerPorID(ctx context.Context, userID, id uuid.UUID) (*dto.GuiaResponse, error) {
	guia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("guia no encontrada")
	}
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !alcance.Permite(guia.IDFundo) {
		return nil, errors.New("guia no encontrada")
	}
	resp := guiaResponse(guia)
	return &resp, nil
}

func (s *guiaService) Listar(ctx context.Context, userID uuid.UUID, query dto.GuiaFilterQuery) ([]dto.GuiaResponse, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := repository.GuiaFilter{}
	filter.Desde, filter.Hasta, err = ParseRangoFechas(query.StartDate, query.EndDate)
	if err != nil {
		return nil, err
	}
	if query.CamionID != "" {
		id, err := uuid.Parse(query.CamionID)
		if err != nil {
			return nil, errors.New("camion_id invalido")
		}
		filter.CamionID = &id
	}
	if query.FundoID != "" {
		id, err := uuid.Parse(query.FundoID)
		if err != nil {
			return nil, errors.New("fundo_id invalido")
		}
		filter.FundoID = &id
	}

	guias, err := s.repo.List(ctx, alcance, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GuiaResponse, len(guias))
	for i := range guias {
		resp[i] = guiaResponse(&guias[i])
	}
	return resp, nil
}

func (s *guiaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("guia no encontrada")
	}
	return s.repo.Delete(ctx, id)
}

// GenerarPDF renders the printable dispatch note. Returns the bytes and the
// suggested filename.
func (s *guiaService) GenerarPDF(ctx context.Context, userID, id uuid.UUID) ([]byte, string, error) {
	guia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", errors.New("guia no encontrada")
	}
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if !alcance.Permite(guia.IDFundo) {
		return nil, "", errors.New("guia no encontrada")
	}
	data, err := infra.GenerateGuiaPDF(guia)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("guia_%s.pdf", guia.Codigo), nil
}

// ErrFechaInvalida marks a malformed date bound in a query; handlers map it
// to a 400 instead of the generic 500.
var ErrFechaInvalida = errors.New("fecha invalida (se espera YYYY-MM-DD)")

// ParseRangoFechas expands YYYY-MM-DD query bounds to the UTC half-open
// window [start 00:00, end+1d 00:00). Either bound may be empty.
func ParseRangoFechas(startDate, endDate string) (*time.Time, *time.Time, error) {
	var desde, hasta *time.Time
	if startDate != "" {
		t, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("start_date: %w", ErrFechaInvalida)
		}
		desde = &t
	}
	if endDate != "" {
		t, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("end_date: %w", ErrFechaInvalida)
		}
		next := t.AddDate(0, 0, 1)
		hasta = &next
	}
	return desde, hasta, nil
}

func guiaResponse(g *model.Guia) dto.GuiaResponse {
	resp := dto.GuiaResponse{
		ID:        g.ID.String(),
		Codigo:    g.Codigo,
		FechaHora: g.FechaHora,
		IDCamion:  g.IDCamion.String(),
		IDFundo:   g.IDFundo.String(),
		Enviadas:  g.Enviadas,
		UsuarioID: g.UsuarioID.String(),
		Lotes:     make([]dto.GuiaLoteResponse, len(g.Lotes)),
	}
	if g.Camion != nil {
		resp.CamionPlaca = g.Camion.Placa
	}
	if g.Fundo != nil {
		resp.FundoNombre = g.Fundo.Nombre
	}
	for i, gl := range g.Lotes {
		entry := dto.GuiaLoteResponse{LoteID: gl.LoteID.String(), Cantidad: gl.Cantidad}
		if gl.Lote != nil {
			entry.LoteNombre = gl.Lote.Nombre
		}
		resp.Lotes[i] = entry
	}
	return resp
}
