package infra

// pdf.go — printable dispatch-note (guía) generation using go-pdf/fpdf.
// The driver carries this sheet with the truck: header with the guía code,
// truck/driver data, fundo, and the per-lote quantity table.

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/LilDeus06/trazabilidad-sub000/internal/model"
)

// GenerateGuiaPDF renders a guía as an A5 sheet and returns the PDF bytes.
func GenerateGuiaPDF(guia *model.Guia) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "UvaTracer", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Guía de despacho", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Guía %s", guia.Codigo), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, guia.FechaHora.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")

	if guia.Camion != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Camión: %s — %s", guia.Camion.Placa, guia.Camion.Chofer), "", 1, "L", false, 0, "")
	}
	if guia.Fundo != nil {
		pdf.CellFormat(contentW, 5, "Fundo: "+guia.Fundo.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.68
	col2 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Lote", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Jabas", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, gl := range guia.Lotes {
		nombre := gl.LoteID.String()
		if gl.Lote != nil {
			nombre = gl.Lote.Nombre
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("%d", gl.Cantidad), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 6, "TOTAL ENVIADAS:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, fmt.Sprintf("%d jabas", guia.Enviadas), "", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW/2, 5, "_______________________", "", 0, "C", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "_______________________", "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW/2, 4, "Despachado por", "", 0, "C", false, 0, "")
	pdf.CellFormat(contentW/2, 4, "Recibido por", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render guia: %w", err)
	}
	return buf.Bytes(), nil
}
