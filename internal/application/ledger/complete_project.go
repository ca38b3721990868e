package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
	"github.com/tu-usuario/stockcontrol-api/pkg/metrics"
)

// FinalMaterialInput es la cantidad real consumida de una línea al finalizar.
type FinalMaterialInput struct {
	MaterialID     string
	ActualQuantity int64
}

// CompleteProject liquida un proyecto pendiente: descuenta del stock la
// cantidad real usada de cada línea, libera la reserva original y deja el
// proyecto en COMPLETADO (estado terminal). Todo o nada.
//
// La verificación por línea usa la disponibilidad efectiva: lo que queda tras
// honrar las reservas de los demás proyectos pero excluyendo la reserva
// propia, leída del presupuesto vivo al momento de finalizar. Así un proyecto
// puede consumir más o menos de lo que presupuestó, pero nunca más de lo
// físicamente disponible una vez liberada su propia porción reservada.
//
// Las líneas del presupuesto ausentes de finalMaterials consumen 0; una línea
// final que no exista en el presupuesto vigente se rechaza.
func (uc *ProjectUseCase) CompleteProject(ctx context.Context, projectID string, finalMaterials []FinalMaterialInput) (*entity.Project, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	finalByID := make(map[string]int64, len(finalMaterials))
	for _, fm := range finalMaterials {
		if fm.MaterialID == "" {
			return nil, domain.ErrInvalidInput
		}
		if fm.ActualQuantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if _, dup := finalByID[fm.MaterialID]; dup {
			return nil, domain.ErrDuplicateLine
		}
		finalByID[fm.MaterialID] = fm.ActualQuantity
	}

	var completed *entity.Project
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		projectRepo repository.ProjectRepository,
		_ repository.MovementRepository,
	) error {
		project, err := projectRepo.GetForUpdate(projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrNotFound
		}
		if !project.IsPending() {
			return domain.ErrInvalidStateTransition
		}
		for id := range finalByID {
			if !project.HasMaterial(id) {
				return domain.ErrNotFound
			}
		}

		// Bloquear y validar cada línea del presupuesto vigente antes de
		// aplicar ningún cambio.
		budget := project.Materials
		ids := make([]string, 0, len(budget))
		for _, line := range budget {
			ids = append(ids, line.MaterialID)
		}
		sort.Strings(ids)

		locked := make(map[string]*entity.Material, len(ids))
		for _, id := range ids {
			material, err := materialRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			locked[id] = material
		}
		for _, line := range budget {
			material := locked[line.MaterialID]
			actual := finalByID[line.MaterialID] // 0 si la línea no vino en la lista final
			reservedByOthers := material.Reserved - line.BudgetedQuantity
			effectiveCap := material.Stock - reservedByOthers
			if actual > effectiveCap {
				return &domain.EffectiveAvailabilityError{
					MaterialID:   material.ID,
					MaterialName: material.Name,
					Requested:    actual,
					EffectiveCap: effectiveCap,
				}
			}
		}

		// Liquidación: stock -= real usado (piso 0), reserva -= presupuestado
		// original (piso 0).
		now := time.Now()
		for _, line := range budget {
			material := locked[line.MaterialID]
			material.Settle(finalByID[line.MaterialID], line.BudgetedQuantity)
			material.UpdatedAt = now
			if err := materialRepo.Update(material); err != nil {
				return err
			}
		}

		final := make([]entity.ProjectMaterial, 0, len(finalByID))
		for _, line := range budget {
			actual, ok := finalByID[line.MaterialID]
			if !ok {
				continue
			}
			line.ActualQuantity = actual
			final = append(final, line)
		}
		project.Status = entity.ProjectStatusCompleted
		project.Materials = final
		project.CompletionDate = &now
		project.UpdatedAt = now
		if err := projectRepo.Update(project); err != nil {
			return err
		}
		completed = project
		return nil
	})
	if err != nil {
		metrics.LedgerRejections.WithLabelValues("complete_project").Inc()
		return nil, err
	}
	metrics.ProjectsCompleted.Inc()
	return completed, nil
}
