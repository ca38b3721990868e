package report

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// UseCase produce los reportes de solo lectura del inventario: el historial
// de movimientos en PDF y la planilla de stock en Excel.
type UseCase struct {
	materialRepo repository.MaterialRepository
	movementRepo repository.MovementRepository
	pdfGenerator MovementReportGenerator
	exporter     StockExporter
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	materialRepo repository.MaterialRepository,
	movementRepo repository.MovementRepository,
	pdfGenerator MovementReportGenerator,
	exporter StockExporter,
) *UseCase {
	return &UseCase{
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		pdfGenerator: pdfGenerator,
		exporter:     exporter,
	}
}

// MovementHistoryPDF genera el PDF del historial (hasta limit movimientos,
// más recientes primero).
func (uc *UseCase) MovementHistoryPDF(ctx context.Context, limit int) ([]byte, error) {
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	movements, err := uc.movementRepo.List(limit, 0)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	return uc.pdfGenerator.GenerateMovementReport(ctx, movements)
}

// StockOverviewXLSX genera la planilla Excel del inventario con su resumen.
func (uc *UseCase) StockOverviewXLSX(ctx context.Context) ([]byte, error) {
	materials, err := uc.materialRepo.List()
	if err != nil {
		return nil, fmt.Errorf("listar materiales: %w", err)
	}
	return uc.exporter.ExportStock(ctx, materials, entity.Summarize(materials))
}
