package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
	"github.com/tu-usuario/stockcontrol-api/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC     *ledger.MaterialUseCase
	ProjectUC      *ledger.ProjectUseCase
	MovementUC     *ledger.MovementUseCase
	ReportUC       *report.UseCase
	MetricsEnabled bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Materiales y resumen de inventario
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/summary", materialHandler.Summary)
	materials.Get("/", materialHandler.List)
	materials.Post("/", materialHandler.Create)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Delete("/:id", materialHandler.Remove)

	// Proyectos (obras) y su presupuesto de materiales
	projects := api.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Post("/:id/materials", projectHandler.AddBudgetLine)
	projects.Put("/:id/materials/:materialId", projectHandler.UpdateActual)
	projects.Delete("/:id/materials/:materialId", projectHandler.RemoveBudgetLine)
	projects.Post("/:id/complete", projectHandler.Complete)

	// Movimientos de stock (ingresos/egresos directos)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/income", movementHandler.RecordIncome)
	movements.Post("/outcome", movementHandler.RecordOutcome)

	// Reportes descargables
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/movements.pdf", reportHandler.MovementHistoryPDF)
	reports.Get("/stock.xlsx", reportHandler.StockOverviewXLSX)
}
