package infra

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"inventario/internal/dto"

	"github.com/xuri/excelize/v2"
)

// InventarioReporte is the input of every inventory export renderer.
type InventarioReporte struct {
	Email string
	Fecha time.Time
	Filas []dto.InventarioItem
}

// ExportFormat describes one downloadable representation of the report.
type ExportFormat struct {
	Ext         string
	ContentType string
	Render      func(InventarioReporte) ([]byte, error)
}

var exportFormats = map[string]ExportFormat{
	"csv":  {Ext: "csv", ContentType: "text/csv; charset=utf-8", Render: RenderInventarioCSV},
	"xlsx": {Ext: "xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Render: RenderInventarioXLSX},
	"pdf":  {Ext: "pdf", ContentType: "application/pdf", Render: RenderInventarioPDF},
}

// LookupExportFormat resolves a formato query value; empty means csv.
func LookupExportFormat(name string) (ExportFormat, bool) {
	if name == "" {
		name = "csv"
	}
	f, ok := exportFormats[name]
	return f, ok
}

var inventarioColumnas = []string{"Producto", "Presentación", "Familia", "Cajas", "Unidades sueltas"}

func reporteTitulo(r InventarioReporte) string {
	return fmt.Sprintf("Reporte generado para: %s | Fecha de reporte: %s", r.Email, r.Fecha.Format("2006-01-02"))
}

// RenderInventarioCSV writes the title line, a blank line and the stock table.
func RenderInventarioCSV(r InventarioReporte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(reporteTitulo(r) + "\n\n")

	w := csv.NewWriter(&buf)
	if err := w.Write(inventarioColumnas); err != nil {
		return nil, err
	}
	for _, f := range r.Filas {
		rec := []string{f.Producto, f.Presentacion, f.Familia, strconv.Itoa(f.Cajas), strconv.Itoa(f.Unidades)}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInventarioXLSX puts the title in A1 and the table from row 3.
func RenderInventarioXLSX(r InventarioReporte) ([]byte, error) {
	const sheet = "Inventario"
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", reporteTitulo(r)); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A3", &inventarioColumnas); err != nil {
		return nil, err
	}
	for i, fila := range r.Filas {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		row := []interface{}{fila.Producto, fila.Presentacion, fila.Familia, fila.Cajas, fila.Unidades}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(sheet, "A", "C", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveExport writes data under dir (created if needed) and returns the full path.
func SaveExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write file: %w", err)
	}
	return path, nil
}
