package report

import (
	"context"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

// MovementReportGenerator genera el reporte imprimible del historial de
// movimientos (PDF).
type MovementReportGenerator interface {
	GenerateMovementReport(ctx context.Context, movements []*entity.MovementTransaction) ([]byte, error)
}

// StockExporter genera la planilla del inventario actual (XLSX).
type StockExporter interface {
	ExportStock(ctx context.Context, materials []*entity.Material, summary entity.StockSummary) ([]byte, error)
}
