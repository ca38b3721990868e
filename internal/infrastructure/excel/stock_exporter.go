// Package excel genera la planilla XLSX del inventario actual.
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/stockcontrol-api/internal/application/report"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

var _ report.StockExporter = (*StockExporter)(nil)

// StockExporter implementa report.StockExporter usando excelize.
type StockExporter struct{}

// NewStockExporter construye el exportador.
func NewStockExporter() *StockExporter { return &StockExporter{} }

// ExportStock vuelca el catálogo de materiales con su disponibilidad derivada
// y un bloque de resumen al final de la hoja.
func (e *StockExporter) ExportStock(_ context.Context, materials []*entity.Material, summary entity.StockSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"ID", "Material", "Unidad", "Categoría", "Stock", "Reservado", "Disponible",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	rowIdx := 2
	for _, m := range materials {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		row := []interface{}{
			m.ID, m.Name, m.Unit, m.Category, m.Stock, m.Reserved, m.Available(),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", rowIdx, err)
		}
		rowIdx++
	}

	// Bloque de resumen, una fila en blanco de por medio.
	rowIdx++
	totals := [][]interface{}{
		{"Stock total", summary.TotalStock},
		{"Reservado total", summary.TotalReserved},
		{"Disponible total", summary.TotalAvailable},
	}
	for _, t := range totals {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &t); err != nil {
			return nil, fmt.Errorf("excel: resumen: %w", err)
		}
		rowIdx++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
