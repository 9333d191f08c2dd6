package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LilDeus06/trazabilidad-sub000/internal/authz"
	"github.com/LilDeus06/trazabilidad-sub000/internal/infra"
	"github.com/LilDeus06/trazabilidad-sub000/internal/repository"
)

// ExportService builds downloadable xlsx workbooks. Date filters arrive as
// YYYY-MM-DD and expand to whole UTC days; both sides of the range are
// optional.
type ExportService interface {
	ExportarCamiones(ctx context.Context, userID uuid.UUID, startDate, endDate string, full bool) ([]byte, string, error)
	ExportarGuias(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]byte, string, error)
}

type exportService struct {
	camiones repository.CamionRepository
	guias    repository.GuiaRepository
	resolver *authz.Resolver
}

func NewExportService(camiones repository.CamionRepository, guias repository.GuiaRepository, resolver *authz.Resolver) ExportService {
	return &exportService{camiones: camiones, guias: guias, resolver: resolver}
}

func (s *exportService) ExportarCamiones(ctx context.Context, userID uuid.UUID, startDate, endDate string, full bool) ([]byte, string, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	filter := repository.CamionFilter{IncluirInactivos: full}
	filter.Desde, filter.Hasta, err = ParseRangoFechas(startDate, endDate)
	if err != nil {
		return nil, "", err
	}
	camiones, err := s.camiones.List(ctx, alcance, filter)
	if err != nil {
		return nil, "", err
	}
	data, err := infra.BuildCamionesXLSX(camiones, full)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename("camiones"), nil
}

func (s *exportService) ExportarGuias(ctx context.Context, userID uuid.UUID, startDate, endDate string) ([]byte, string, error) {
	alcance, err := s.resolver.Scope(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	filter := repository.GuiaFilter{}
	filter.Desde, filter.Hasta, err = ParseRangoFechas(startDate, endDate)
	if err != nil {
		return nil, "", err
	}
	guias, err := s.guias.List(ctx, alcance, filter)
	if err != nil {
		return nil, "", err
	}
	data, err := infra.BuildGuiasXLSX(guias)
	if err != nil {
		return nil, "", err
	}
	return data, exportFilename("guias"), nil
}

func exportFilename(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().UTC().Format("20060102_150405"))
}
