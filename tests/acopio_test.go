package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/dto"
	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
	"github.com/LilDeus06/trazabilidad-sub000/internal/service"
)

// stubAcopioRepo is an in-memory AcopioRepository.
type stubAcopioRepo struct {
	recepciones map[uuid.UUID]*model.AcopioRecepcion
	pallets     map[uuid.UUID]*model.AcopioPallet
	cargas      map[uuid.UUID]*model.AcopioCarga
}

func newStubAcopioRepo() *stubAcopioRepo {
	return &stubAcopioRepo{
		recepciones: make(map[uuid.UUID]*model.AcopioRecepcion),
		pallets:     make(map[uuid.UUID]*model.AcopioPallet),
		cargas:      make(map[uuid.UUID]*model.AcopioCarga),
	}
}

func (r *stubAcopioRepo) CreateRecepcion(_ context.Context, rec *model.AcopioRecepcion) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.recepciones[rec.ID] = rec
	return nil
}

func (r *stubAcopioRepo) FindRecepcion(_ context.Context, id uuid.UUID) (*model.AcopioRecepcion, error) {
	rec, ok := r.recepciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubAcopioRepo) ListRecepciones(_ context.Context, _ authz.Alcance, _ repository.RecepcionFilter) ([]model.AcopioRecepcion, error) {
	var out []model.AcopioRecepcion
	for _, rec := range r.recepciones {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubAcopioRepo) UpdateRecepcion(_ context.Context, rec *model.AcopioRecepcion) error {
	r.recepciones[rec.ID] = rec
	return nil
}

func (r *stubAcopioRepo) DeleteRecepcion(_ context.Context, id uuid.UUID) error {
	delete(r.recepciones, id)
	return nil
}

func (r *stubAcopioRepo) CreatePallet(_ context.Context, p *model.AcopioPallet) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, existing := range r.pallets {
		if existing.Codigo == p.Codigo {
			return gorm.ErrDuplicatedKey
		}
	}
	r.pallets[p.ID] = p
	return nil
}

func (r *stubAcopioRepo) FindPallet(_ context.Context, id uuid.UUID) (*model.AcopioPallet, error) {
	p, ok := r.pallets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubAcopioRepo) ListPallets(_ context.Context, alcance authz.Alcance, estado string) ([]model.AcopioPallet, error) {
	var out []model.AcopioPallet
	for _, p := range r.pallets {
		if !alcance.Permite(p.IDFundo) {
			continue
		}
		if estado != "" && p.Estado != estado {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubAcopioRepo) UpdatePallet(_ context.Context, p *model.AcopioPallet) error {
	r.pallets[p.ID] = p
	return nil
}

func (r *stubAcopioRepo) CreateCarga(_ context.Context, carga *model.AcopioCarga, jabas int) error {
	p, ok := r.pallets[carga.IDPallet]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Estado == model.PalletDespachado || p.JabasActuales+jabas > p.CapacidadJabas {
		return repository.ErrPalletSinCapacidad
	}
	p.JabasActuales += jabas
	if p.JabasActuales == p.CapacidadJabas {
		p.Estado = model.PalletLleno
	} else {
		p.Estado = model.PalletParcial
	}
	if carga.ID == uuid.Nil {
		carga.ID = uuid.New()
	}
	r.cargas[carga.ID] = carga
	return nil
}

func (r *stubAcopioRepo) ListCargas(_ context.Context, palletID uuid.UUID) ([]model.AcopioCarga, error) {
	var out []model.AcopioCarga
	for _, c := range r.cargas {
		if c.IDPallet == palletID {
			out = append(out, *c)
		}
	}
	return out, nil
}

var _ repository.AcopioRepository = (*stubAcopioRepo)(nil)

type acopioFixture struct {
	svc         service.AcopioService
	repo        *stubAcopioRepo
	lotes       *stubLoteRepo
	fundoID     uuid.UUID
	loteID      uuid.UUID
	userID      uuid.UUID
	palletID    uuid.UUID
	recepcionID uuid.UUID
}

func newAcopioFixture(t *testing.T, capacidad int) *acopioFixture {
	t.Helper()
	f := &acopioFixture{
		repo:    newStubAcopioRepo(),
		lotes:   newStubLoteRepo(),
		fundoID: uuid.New(),
		loteID:  uuid.New(),
		userID:  uuid.New(),
	}
	f.lotes.lotes[f.loteID] = &model.Lote{ID: f.loteID, IDFundo: f.fundoID, Nombre: "Lote 1", Estado: "activo"}
	f.svc = service.NewAcopioService(f.repo, f.lotes, authz.NewResolver(newStubPermisoStore()))

	pallet, err := f.svc.CrearPallet(context.Background(), dto.CrearPalletRequest{
		Codigo: "pal-01", IDFundo: f.fundoID.String(), CapacidadJabas: capacidad,
	})
	require.NoError(t, err)
	f.palletID, err = uuid.Parse(pallet.ID)
	require.NoError(t, err)

	rec, err := f.svc.CrearRecepcion(context.Background(), f.userID, dto.CrearRecepcionRequest{
		IDLote: f.loteID.String(), JabasRecibidas: 1000,
	})
	require.NoError(t, err)
	f.recepcionID, err = uuid.Parse(rec.ID)
	require.NoError(t, err)
	return f
}

func (f *acopioFixture) cargar(t *testing.T, jabas int) (*dto.CargaResponse, error) {
	t.Helper()
	return f.svc.CrearCarga(context.Background(), f.userID, dto.CrearCargaRequest{
		IDPallet: f.palletID.String(), IDRecepcion: f.recepcionID.String(), Jabas: jabas,
	})
}

func (f *acopioFixture) pallet() *model.AcopioPallet {
	return f.repo.pallets[f.palletID]
}

func TestPalletCicloDeVida(t *testing.T) {
	f := newAcopioFixture(t, 100)

	assert.Equal(t, model.PalletVacio, f.pallet().Estado)

	_, err := f.cargar(t, 40)
	require.NoError(t, err)
	assert.Equal(t, model.PalletParcial, f.pallet().Estado)
	assert.Equal(t, 40, f.pallet().JabasActuales)

	// Filling to exactly the capacity flips the pallet to lleno.
	_, err = f.cargar(t, 60)
	require.NoError(t, err)
	assert.Equal(t, model.PalletLleno, f.pallet().Estado)
	assert.Equal(t, 100, f.pallet().JabasActuales)
}

func TestPalletRechazaSobrecarga(t *testing.T) {
	f := newAcopioFixture(t, 100)

	_, err := f.cargar(t, 70)
	require.NoError(t, err)

	_, err = f.cargar(t, 31)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacidad")
	// Counters untouched by the rejected carga.
	assert.Equal(t, 70, f.pallet().JabasActuales)
	assert.Equal(t, model.PalletParcial, f.pallet().Estado)
}

func TestPalletDespachoSoloDesdeLleno(t *testing.T) {
	f := newAcopioFixture(t, 100)
	ctx := context.Background()

	// Empty and partial pallets cannot be dispatched.
	_, err := f.svc.DespacharPallet(ctx, f.palletID)
	require.Error(t, err)

	_, err = f.cargar(t, 50)
	require.NoError(t, err)
	_, err = f.svc.DespacharPallet(ctx, f.palletID)
	require.Error(t, err)

	_, err = f.cargar(t, 50)
	require.NoError(t, err)
	resp, err := f.svc.DespacharPallet(ctx, f.palletID)
	require.NoError(t, err)
	assert.Equal(t, model.PalletDespachado, resp.Estado)

	// Terminal: no more cargas, no second dispatch.
	_, err = f.cargar(t, 1)
	require.Error(t, err)
	_, err = f.svc.DespacharPallet(ctx, f.palletID)
	require.Error(t, err)
}

func TestCrearRecepcionValidaAlcance(t *testing.T) {
	repo := newStubAcopioRepo()
	lotes := newStubLoteRepo()
	store := newStubPermisoStore()
	svc := service.NewAcopioService(repo, lotes, authz.NewResolver(store))
	ctx := context.Background()

	fundoID := uuid.New()
	loteID := uuid.New()
	lotes.lotes[loteID] = &model.Lote{ID: loteID, IDFundo: fundoID, Nombre: "Lote 2", Estado: "activo"}

	userID := uuid.New()
	store.fundos[userID] = []uuid.UUID{uuid.New()} // scoped elsewhere

	_, err := svc.CrearRecepcion(ctx, userID, dto.CrearRecepcionRequest{
		IDLote: loteID.String(), JabasRecibidas: 100,
	})
	require.Error(t, err)
	assert.Empty(t, repo.recepciones)
}

// openAcopioDB spins up an in-memory sqlite with the pallet and carga tables.
// Schema by hand for the same reason as openPermisoDB: the Postgres uuid
// default is not evaluable by sqlite.
func openAcopioDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE acopio_pallets (
		id TEXT PRIMARY KEY,
		codigo TEXT NOT NULL UNIQUE,
		id_fundo TEXT NOT NULL,
		capacidad_jabas INTEGER NOT NULL,
		jabas_actuales INTEGER NOT NULL DEFAULT 0,
		estado TEXT NOT NULL DEFAULT 'vacio',
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE acopio_cargas (
		id TEXT PRIMARY KEY,
		id_pallet TEXT NOT NULL,
		id_recepcion TEXT NOT NULL,
		jabas INTEGER NOT NULL,
		fecha DATETIME NOT NULL,
		responsable_id TEXT NOT NULL,
		created_at DATETIME
	)`).Error)
	return db
}

func crearCargaDirecta(t *testing.T, repo repository.AcopioRepository, palletID uuid.UUID, jabas int) error {
	t.Helper()
	return repo.CreateCarga(context.Background(), &model.AcopioCarga{
		IDPallet:      palletID,
		IDRecepcion:   uuid.New(),
		Jabas:         jabas,
		Fecha:         time.Now().UTC(),
		ResponsableID: uuid.New(),
	}, jabas)
}

// Two writers that read the same pallet snapshot must not both land: the
// increment is re-checked against the stored row inside the transaction.
func TestCreateCargaNoPierdeEscriturasConcurrentes(t *testing.T) {
	db := openAcopioDB(t)
	repo := repository.NewAcopioRepository(db)

	pallet := &model.AcopioPallet{
		Codigo:         "PAL-GUARD",
		IDFundo:        uuid.New(),
		CapacidadJabas: 100,
		Estado:         model.PalletVacio,
	}
	require.NoError(t, repo.CreatePallet(context.Background(), pallet))

	// Both cargas were computed from jabas_actuales = 0; only one fits.
	require.NoError(t, crearCargaDirecta(t, repo, pallet.ID, 60))
	err := crearCargaDirecta(t, repo, pallet.ID, 60)
	require.ErrorIs(t, err, repository.ErrPalletSinCapacidad)

	guardado, err := repo.FindPallet(context.Background(), pallet.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, guardado.JabasActuales)
	assert.Equal(t, model.PalletParcial, guardado.Estado)

	cargas, err := repo.ListCargas(context.Background(), pallet.ID)
	require.NoError(t, err)
	assert.Len(t, cargas, 1, "la carga rechazada no deja evento")

	// The exact fill still lands and flips the estado in the same statement.
	require.NoError(t, crearCargaDirecta(t, repo, pallet.ID, 40))
	guardado, err = repo.FindPallet(context.Background(), pallet.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, guardado.JabasActuales)
	assert.Equal(t, model.PalletLleno, guardado.Estado)
}

func TestCreateCargaRechazaPalletDespachado(t *testing.T) {
	db := openAcopioDB(t)
	repo := repository.NewAcopioRepository(db)

	pallet := &model.AcopioPallet{
		Codigo:         "PAL-TERM",
		IDFundo:        uuid.New(),
		CapacidadJabas: 100,
		JabasActuales:  100,
		Estado:         model.PalletDespachado,
	}
	require.NoError(t, repo.CreatePallet(context.Background(), pallet))

	err := crearCargaDirecta(t, repo, pallet.ID, 1)
	require.ErrorIs(t, err, repository.ErrPalletSinCapacidad)
}
