package infra

// excel.go — spreadsheet generation with excelize. Each builder returns the
// finished workbook as a byte buffer ready for a Content-Disposition
// attachment response.

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

const exportSheet = "Sheet1"

// BuildCamionesXLSX renders the fleet export. full=true adds the activo flag
// and the fundo/lote assignment columns.
func BuildCamionesXLSX(camiones []model.Camion, full bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Chofer", "Placa", "Capacidad (jabas)", "Fecha registro"}
	widths := []float64{28, 14, 18, 20}
	if full {
		headers = append(headers, "Activo", "Fundo", "Lote")
		widths = append(widths, 10, 24, 24)
	}
	if err := writeHeader(f, headers, widths); err != nil {
		return nil, err
	}

	for i, c := range camiones {
		row := []interface{}{c.Chofer, c.Placa, c.Capacidad, c.CreatedAt.UTC().Format("2006-01-02 15:04")}
		if full {
			fundo, lote := "", ""
			if c.Fundo != nil {
				fundo = c.Fundo.Nombre
			}
			if c.Lote != nil {
				lote = c.Lote.Nombre
			}
			row = append(row, boolSiNo(c.Activo), fundo, lote)
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	return save(f)
}

// BuildGuiasXLSX renders the dispatch-note export with one row per guía.
func BuildGuiasXLSX(guias []model.Guia) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headers := []string{"Guía", "Fecha/Hora", "Placa", "Chofer", "Fundo", "Enviadas (jabas)", "Lotes"}
	widths := []float64{16, 20, 14, 28, 24, 18, 30}
	if err := writeHeader(f, headers, widths); err != nil {
		return nil, err
	}

	for i, g := range guias {
		placa, chofer, fundo := "", "", ""
		if g.Camion != nil {
			placa = g.Camion.Placa
			chofer = g.Camion.Chofer
		}
		if g.Fundo != nil {
			fundo = g.Fundo.Nombre
		}
		row := []interface{}{
			g.Codigo,
			g.FechaHora.UTC().Format("2006-01-02 15:04"),
			placa,
			chofer,
			fundo,
			g.Enviadas,
			len(g.Lotes),
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	return save(f)
}

func writeHeader(f *excelize.File, headers []string, widths []float64) error {
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, fmt.Sprintf("%s1", col), h); err != nil {
			return err
		}
		if err := f.SetColWidth(exportSheet, col, col, widths[i]); err != nil {
			return err
		}
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetCellStyle(exportSheet, "A1", fmt.Sprintf("%s1", last), style)
}

func writeRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(exportSheet, cell, &values)
}

func save(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func boolSiNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
