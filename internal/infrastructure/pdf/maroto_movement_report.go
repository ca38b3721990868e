// Package pdf genera el reporte imprimible del historial de movimientos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Por movimiento: tipo, fecha, referencia de presupuesto      │
//	│  TABLA: Material | Unidad | Cantidad | Aplicado              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/stockcontrol-api/internal/application/report"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.MovementReportGenerator = (*MarotoMovementReport)(nil)

// MarotoMovementReport implementa report.MovementReportGenerator usando Maroto v2.
type MarotoMovementReport struct{}

// NewMarotoMovementReport construye el generador.
func NewMarotoMovementReport() *MarotoMovementReport { return &MarotoMovementReport{} }

// GenerateMovementReport genera el PDF y devuelve sus bytes.
func (g *MarotoMovementReport) GenerateMovementReport(_ context.Context, movements []*entity.MovementTransaction) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de Movimientos de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, mov := range movements {
		m.AddRows(movementHeaderRow(mov))
		m.AddRows(itemsHeaderRow())
		for _, r := range itemRows(mov.Items) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del reporte y fecha de generación.
func headerRow() core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("HISTORIAL DE MOVIMIENTOS DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

// movementHeaderRow: tipo, fecha y referencia de presupuesto del movimiento.
func movementHeaderRow(mov *entity.MovementTransaction) core.Row {
	ref := mov.BudgetTarget
	if ref == "" {
		ref = "—"
	}
	return row.New(10).Add(
		col.New(3).Add(
			text.New(mov.Type, props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+mov.Date.Format("02/01/2006"), props.Text{
				Size: 9, Top: 3,
			}),
		),
		col.New(5).Add(
			text.New("Presupuesto/Ref: "+ref, props.Text{
				Size: 9, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// itemsHeaderRow: cabecera de la tabla de líneas del movimiento.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Material", 6, align.Left),
		h("Unidad", 2, align.Center),
		h("Cantidad", 2, align.Right),
		h("Aplicado", 2, align.Right),
	)
}

// itemRows: una fila por línea del movimiento.
func itemRows(items []entity.MovementItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(
				it.MaterialName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.MaterialUnit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", it.AppliedQuantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}
