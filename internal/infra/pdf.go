package infra

// pdf.go renders the inventory report as an A4 table with go-pdf/fpdf:
//   - title line with recipient and date
//   - one row per presentation held
//   - box and unit totals

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// RenderInventarioPDF returns the report as PDF bytes.
func RenderInventarioPDF(r InventarioReporte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	// core fonts are cp1252; translate accented Spanish text
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr("Reporte de inventario"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, tr(reporteTitulo(r)), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Table ────────────────────────────────────────────────────────────────
	widths := []float64{contentW * 0.30, contentW * 0.24, contentW * 0.22, contentW * 0.10, contentW * 0.14}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range inventarioColumnas {
		align := "L"
		if i >= 3 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	totalCajas, totalUnidades := 0, 0
	for _, f := range r.Filas {
		pdf.CellFormat(widths[0], 6, tr(f.Producto), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(f.Presentacion), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(f.Familia), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, strconv.Itoa(f.Cajas), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, strconv.Itoa(f.Unidades), "1", 1, "R", false, 0, "")
		totalCajas += f.Cajas
		totalUnidades += f.Unidades
	}

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], 7, strconv.Itoa(totalCajas), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 7, strconv.Itoa(totalUnidades), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}
