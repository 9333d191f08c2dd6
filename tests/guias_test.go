package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubCamionRepo struct {
	camiones map[uuid.UUID]*model.Camion
}

func newStubCamionRepo() *stubCamionRepo {
	return &stubCamionRepo{camiones: make(map[uuid.UUID]*model.Camion)}
}

func (r *stubCamionRepo) Create(_ context.Context, c *model.Camion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.camiones[c.ID] = c
	return nil
}

func (r *stubCamionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Camion, error) {
	c, ok := r.camiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCamionRepo) List(_ context.Context, alcance authz.Alcance, filter repository.CamionFilter) ([]model.Camion, error) {
	var out []model.Camion
	for _, c := range r.camiones {
		if !filter.IncluirInactivos && !c.Activo {
			continue
		}
		if !alcance.Todos && c.IDFundo != nil && !alcance.Permite(*c.IDFundo) {
			continue
		}
		if filter.Desde != nil && c.CreatedAt.Before(*filter.Desde) {
			continue
		}
		if filter.Hasta != nil && !c.CreatedAt.Before(*filter.Hasta) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCamionRepo) Update(_ context.Context, c *model.Camion) error {
	r.camiones[c.ID] = c
	return nil
}

func (r *stubCamionRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.camiones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Activo = false
	return nil
}

func (r *stubCamionRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	c, ok := r.camiones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Activo = true
	return nil
}

var _ repository.CamionRepository = (*stubCamionRepo)(nil)

type stubLoteRepo struct {
	lotes map[uuid.UUID]*model.Lote
}

func newStubLoteRepo() *stubLoteRepo {
	return &stubLoteRepo{lotes: make(map[uuid.UUID]*model.Lote)}
}

func (r *stubLoteRepo) Create(_ context.Context, l *model.Lote) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.lotes[l.ID] = l
	return nil
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lote, error) {
	l, ok := r.lotes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLoteRepo) List(_ context.Context, alcance authz.Alcance, filter repository.LoteFilter) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.lotes {
		if !alcance.Permite(l.IDFundo) {
			continue
		}
		if filter.FundoID != nil && l.IDFundo != *filter.FundoID {
			continue
		}
		if filter.Estado != "" && l.Estado != filter.Estado {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubLoteRepo) Update(_ context.Context, l *model.Lote) error {
	r.lotes[l.ID] = l
	return nil
}

func (r *stubLoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.lotes, id)
	return nil
}

var _ repository.LoteRepository = (*stubLoteRepo)(nil)

type stubGuiaRepo struct {
	guias map[uuid.UUID]*model.Guia
}

func newStubGuiaRepo() *stubGuiaRepo {
	return &stubGuiaRepo{guias: make(map[uuid.UUID]*model.Guia)}
}

func (r *stubGuiaRepo) CreateConLotes(_ context.Context, g *model.Guia, lotes []model.GuiaLote) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	for _, existing := range r.guias {
		if existing.Codigo == g.Codigo {
			return gorm.ErrDuplicatedKey
		}
	}
	for i := range lotes {
		lotes[i].GuiaID = g.ID
		if lotes[i].ID == uuid.Nil {
			lotes[i].ID = uuid.New()
		}
	}
	g.Lotes = lotes
	r.guias[g.ID] = g
	return nil
}

func (r *stubGuiaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Guia, error) {
	g, ok := r.guias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return g, nil
}

func (r *stubGuiaRepo) List(_ context.Context, alcance authz.Alcance, filter repository.GuiaFilter) ([]model.Guia, error) {
	var out []model.Guia
	for _, g := range r.guias {
		if !alcance.Permite(g.IDFundo) {
			continue
		}
		if filter.Desde != nil && g.FechaHora.Before(*filter.Desde) {
			continue
		}
		if filter.Hasta != nil && !g.FechaHora.Before(*filter.Hasta) {
			continue
		}
		if filter.CamionID != nil && g.IDCamion != *filter.CamionID {
			continue
		}
		if filter.FundoID != nil && g.IDFundo != *filter.FundoID {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r *stubGuiaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.guias, id)
	return nil
}

var _ repository.GuiaRepository = (*stubGuiaRepo)(nil)

// ── Fixtures ──────────────────────────────────────────────────────────────────

type guiaFixture struct {
	svc      service.GuiaService
	guias    *stubGuiaRepo
	camiones *stubCamionRepo
	lotes    *stubLoteRepo
	store    *stubPermisoStore
	fundoID  uuid.UUID
	camionID uuid.UUID
	loteID   uuid.UUID
	userID   uuid.UUID
}

func newGuiaFixture(capacidad int) *guiaFixture {
	f := &guiaFixture{
		guias:    newStubGuiaRepo(),
		camiones: newStubCamionRepo(),
		lotes:    newStubLoteRepo(),
		store:    newStubPermisoStore(),
		fundoID:  uuid.New(),
		camionID: uuid.New(),
		loteID:   uuid.New(),
		userID:   uuid.New(),
	}
	f.camiones.camiones[f.camionID] = &model.Camion{
		ID: f.camionID, Chofer: "Juan Perez", Placa: "ABC-123",
		Capacidad: capacidad, Activo: true, IDFundo: &f.fundoID,
	}
	f.lotes.lotes[f.loteID] = &model.Lote{
		ID: f.loteID, IDFundo: f.fundoID, Nombre: "Lote Norte", Estado: "activo",
	}
	resolver := authz.NewResolver(f.store)
	f.svc = service.NewGuiaService(f.guias, f.camiones, f.lotes, resolver)
	return f
}

// ── Creation invariants ───────────────────────────────────────────────────────

func TestCrearGuiaDentroDeCapacidad(t *testing.T) {
	f := newGuiaFixture(500)
	ctx := context.Background()

	resp, err := f.svc.Crear(ctx, f.userID, dto.CrearGuiaRequest{
		Codigo:   "g-001",
		IDCamion: f.camionID.String(),
		Enviadas: 500, // exactly at capacity is allowed
		Lotes:    []dto.GuiaLoteEntry{{LoteID: f.loteID.String()}},
	})
	require.NoError(t, err)
	assert.Equal(t, "G-001", resp.Codigo, "codigo is upper-cased")
	assert.Equal(t, f.fundoID.String(), resp.IDFundo, "fundo derived from the camion")
	require.Len(t, resp.Lotes, 1)
	assert.Equal(t, 500, resp.Lotes[0].Cantidad, "single lote takes the full shipment")
}

func TestCrearGuiaExcedeCapacidad(t *testing.T) {
	f := newGuiaFixture(500)

	_, err := f.svc.Crear(context.Background(), f.userID, dto.CrearGuiaRequest{
		Codigo:   "G-002",
		IDCamion: f.camionID.String(),
		Enviadas: 501,
		Lotes:    []dto.GuiaLoteEntry{{LoteID: f.loteID.String()}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacidad")
	assert.Empty(t, f.guias.guias, "nothing persisted on rejection")
}

func TestCrearGuiaMultiLoteSumaExacta(t *testing.T) {
	f := newGuiaFixture(1000)
	otroLote := uuid.New()
	f.lotes.lotes[otroLote] = &model.Lote{ID: otroLote, IDFundo: f.fundoID, Nombre: "Lote Sur", Estado: "activo"}
	ctx := context.Background()

	// Sum mismatch rejected.
	_, err := f.svc.Crear(ctx, f.userID, dto.CrearGuiaRequest{
		Codigo:   "G-003",
		IDCamion: f.camionID.String(),
		Enviadas: 300,
		Lotes: []dto.GuiaLoteEntry{
			{LoteID: f.loteID.String(), Cantidad: 100},
			{LoteID: otroLote.String(), Cantidad: 100},
		},
	})
	require.Error(t, err)

	// Exact sum accepted.
	resp, err := f.svc.Crear(ctx, f.userID, dto.CrearGuiaRequest{
		Codigo:   "G-003",
		IDCamion: f.camionID.String(),
		Enviadas: 300,
		Lotes: []dto.GuiaLoteEntry{
			{LoteID: f.loteID.String(), Cantidad: 180},
			{LoteID: otroLote.String(), Cantidad: 120},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Lotes, 2)
}

func TestCrearGuiaRechazaLoteRepetido(t *testing.T) {
	f := newGuiaFixture(1000)

	_, err := f.svc.Crear(context.Background(), f.userID, dto.CrearGuiaRequest{
		Codigo:   "G-004",
		IDCamion: f.camionID.String(),
		Enviadas: 200,
		Lotes: []dto.GuiaLoteEntry{
			{LoteID: f.loteID.String(), Cantidad: 100},
			{LoteID: f.loteID.String(), Cantidad: 100},
		},
	})
	require.Error(t, err)
}

func TestCrearGuiaRechazaLoteDeOtroFundo(t *testing.T) {
	f := newGuiaFixture(1000)
	ajeno := uuid.New()
	f.lotes.lotes[ajeno] = &model.Lote{ID: ajeno, IDFundo: uuid.New(), Nombre: "Ajeno", Estado: "activo"}

	_, err := f.svc.Crear(context.Background(), f.userID, dto.CrearGuiaRequest{
		Codigo:   "G-005",
		IDCamion: f.camionID.String(),
		Enviadas: 100,
		Lotes:    []dto.GuiaLoteEntry{{LoteID: ajeno.String()}},
	})
	require.Error(t, err)
}

func TestCrearGuiaCamionSinFundoNiActivo(t *testing.T) {
	f := newGuiaFixture(1000)
	ctx := context.Background()

	sinFundo := uuid.New()
	f.camiones.camiones[sinFundo] = &model.Camion{ID: sinFundo, Placa: "XYZ-999", Capacidad: 100, Activo: true}
	_, err := f.svc.Crear(ctx, f.userID, dto.CrearGuiaRequest{
		Codigo: "G-006", IDCamion: sinFundo.String(), Enviadas: 10,
		Lotes: []dto.GuiaLoteEntry{{LoteID: f.loteID.String()}},
	})
	require.Error(t, err)

	f.camiones.camiones[f.camionID].Activo = false
	_, err = f.svc.Crear(ctx, f.userID, dto.CrearGuiaRequest{
		Codigo: "G-007", IDCamion: f.camionID.String(), Enviadas: 10,
		Lotes: []dto.GuiaLoteEntry{{LoteID: f.loteID.String()}},
	})
	require.Error(t, err)
}

func TestCrearGuiaFueraDeAlcance(t *testing.T) {
	f := newGuiaFixture(1000)
	// User scoped to a different fundo than the camión's.
	f.store.fundos[f.userID] = []uuid.UUID{uuid.New()}

	_, err := f.svc.Crear(context.Background(), f.userID, dto.CrearGuiaRequest{
		Codigo: "G-008", IDCamion: f.camionID.String(), Enviadas: 10,
		Lotes: []dto.GuiaLoteEntry{{LoteID: f.loteID.String()}},
	})
	require.Error(t, err)
}

// ── Date window ───────────────────────────────────────────────────────────────

func TestParseRangoFechasVentanaUTC(t *testing.T) {
	desde, hasta, err := service.ParseRangoFechas("2026-03-01", "2026-03-05")
	require.NoError(t, err)
	require.NotNil(t, desde)
	require.NotNil(t, hasta)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *desde)
	// End bound is exclusive: the whole of the 5th is included.
	assert.Equal(t, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), *hasta)

	desde, hasta, err = service.ParseRangoFechas("", "")
	require.NoError(t, err)
	assert.Nil(t, desde)
	assert.Nil(t, hasta)

	_, _, err = service.ParseRangoFechas("03/01/2026", "")
	require.Error(t, err)
}

func TestListarGuiasRespetaVentana(t *testing.T) {
	f := newGuiaFixture(1000)
	ctx := context.Background()

	dentro := &model.Guia{
		ID: uuid.New(), Codigo: "G-IN", IDCamion: f.camionID, IDFundo: f.fundoID,
		FechaHora: time.Date(2026, 3, 5, 23, 59, 0, 0, time.UTC), Enviadas: 10, UsuarioID: f.userID,
	}
	fuera := &model.Guia{
		ID: uuid.New(), Codigo: "G-OUT", IDCamion: f.camionID, IDFundo: f.fundoID,
		FechaHora: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), Enviadas: 10, UsuarioID: f.userID,
	}
	f.guias.guias[dentro.ID] = dentro
	f.guias.guias[fuera.ID] = fuera

	resp, err := f.svc.Listar(ctx, f.userID, dto.GuiaFilterQuery{StartDate: "2026-03-01", EndDate: "2026-03-05"})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "G-IN", resp[0].Codigo)
}

func TestListarGuiasScopePorFundo(t *testing.T) {
	f := newGuiaFixture(1000)
	otroFundo := uuid.New()
	visible := &model.Guia{ID: uuid.New(), Codigo: "G-VIS", IDCamion: f.camionID, IDFundo: f.fundoID, FechaHora: time.Now().UTC(), Enviadas: 5, UsuarioID: f.userID}
	oculta := &model.Guia{ID: uuid.New(), Codigo: "G-OCU", IDCamion: f.camionID, IDFundo: otroFundo, FechaHora: time.Now().UTC(), Enviadas: 5, UsuarioID: f.userID}
	f.guias.guias[visible.ID] = visible
	f.guias.guias[oculta.ID] = oculta

	f.store.fundos[f.userID] = []uuid.UUID{f.fundoID}

	resp, err := f.svc.Listar(context.Background(), f.userID, dto.GuiaFilterQuery{})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "G-VIS", resp[0].Codigo)

	// Reading the hidden guía directly is also denied.
	_, err = f.svc.ObtenerPorID(context.Background(), f.userID, oculta.ID)
	require.Error(t, err)
}

func TestGenerarPDFGuia(t *testing.T) {
	f := newGuiaFixture(500)
	ctx := context.Background()

	created, err := f.svc.Crear(ctx, f.userID, dto.CrearGuiaRequest{
		Codigo: "G-PDF", IDCamion: f.camionID.String(), Enviadas: 120,
		Lotes: []dto.GuiaLoteEntry{{LoteID: f.loteID.String()}},
	})
	require.NoError(t, err)

	id, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	data, filename, err := f.svc.GenerarPDF(ctx, f.userID, id)
	require.NoError(t, err)
	assert.Equal(t, "guia_G-PDF.pdf", filename)
	assert.True(t, len(data) > 100)
	assert.Equal(t, "%PDF", string(data[:4]))
}
