package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
	"github.com/tu-usuario/stockcontrol-api/pkg/metrics"
)

// ProjectUseCase implementa el ciclo de vida de los proyectos frente al
// inventario: alta con presupuesto inicial, edición del presupuesto,
// replanteo de cantidades reales y finalización (liquidación de reservas).
// Toda mutación corre dentro de una transacción con bloqueo de fila.
type ProjectUseCase struct {
	txRunner    TxRunner
	projectRepo repository.ProjectRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(txRunner TxRunner, projectRepo repository.ProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{txRunner: txRunner, projectRepo: projectRepo}
}

// BudgetLineInput es una línea del presupuesto inicial de un proyecto.
type BudgetLineInput struct {
	MaterialID string
	Quantity   int64
}

// CreateProjectInput entrada para registrar una obra con su presupuesto.
type CreateProjectInput struct {
	Description   string
	Client        string
	StartDate     time.Time
	EstimatedDays int
	Materials     []BudgetLineInput
}

// CreateProject crea el proyecto en estado PENDIENTE y reserva cada línea del
// presupuesto de forma atómica: si alguna línea no pasa la verificación de
// capacidad (cantidad <= stock - reservado) no se reserva nada.
func (uc *ProjectUseCase) CreateProject(ctx context.Context, input CreateProjectInput) (*entity.Project, error) {
	if input.Description == "" || input.Client == "" || input.EstimatedDays <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Materials) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(input.Materials))
	for _, line := range input.Materials {
		if line.MaterialID == "" {
			return nil, domain.ErrInvalidInput
		}
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if seen[line.MaterialID] {
			return nil, domain.ErrDuplicateLine
		}
		seen[line.MaterialID] = true
	}

	now := time.Now()
	project := &entity.Project{
		ID:            uuid.New().String(),
		Description:   input.Description,
		Client:        input.Client,
		StartDate:     input.StartDate,
		EstimatedDays: input.EstimatedDays,
		Status:        entity.ProjectStatusPending,
		Materials:     make([]entity.ProjectMaterial, 0, len(input.Materials)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if project.StartDate.IsZero() {
		project.StartDate = now
	}

	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		projectRepo repository.ProjectRepository,
		_ repository.MovementRepository,
	) error {
		// Bloquear los materiales en orden determinista para evitar deadlocks
		// entre operaciones concurrentes.
		for _, line := range sortedLines(input.Materials) {
			material, err := materialRepo.GetForUpdate(line.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			if line.Quantity > material.Available() {
				return &domain.AvailabilityError{
					MaterialID:   material.ID,
					MaterialName: material.Name,
					Requested:    line.Quantity,
					Available:    material.Available(),
				}
			}
			material.Reserve(line.Quantity)
			material.UpdatedAt = now
			if err := materialRepo.Update(material); err != nil {
				return err
			}
			project.Materials = append(project.Materials, entity.ProjectMaterial{
				MaterialID:       material.ID,
				MaterialName:     material.Name,
				MaterialUnit:     material.Unit,
				BudgetedQuantity: line.Quantity,
				ActualQuantity:   line.Quantity,
			})
		}
		return projectRepo.Create(project)
	})
	if err != nil {
		metrics.LedgerRejections.WithLabelValues("create_project").Inc()
		return nil, err
	}
	return project, nil
}

// AddBudgetLine agrega una línea al presupuesto de un proyecto pendiente y
// reserva la cantidad. La cantidad replanteada inicia igual a la presupuestada.
func (uc *ProjectUseCase) AddBudgetLine(ctx context.Context, projectID, materialID string, quantity int64) (*entity.Project, error) {
	if projectID == "" || materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *entity.Project
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
		if project.HasMaterial(materialID) {
			return domain.ErrDuplicateLine
		}
		material, err := materialRepo.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		if quantity > material.Available() {
			return &domain.AvailabilityError{
				MaterialID:   material.ID,
				MaterialName: material.Name,
				Requested:    quantity,
				Available:    material.Available(),
			}
		}
		now := time.Now()
		material.Reserve(quantity)
		material.UpdatedAt = now
		if err := materialRepo.Update(material); err != nil {
			return err
		}
		project.Materials = append(project.Materials, entity.ProjectMaterial{
			MaterialID:       material.ID,
			MaterialName:     material.Name,
			MaterialUnit:     material.Unit,
			BudgetedQuantity: quantity,
			ActualQuantity:   quantity,
		})
		project.UpdatedAt = now
		if err := projectRepo.Update(project); err != nil {
			return err
		}
		updated = project
		return nil
	})
	if err != nil {
		metrics.LedgerRejections.WithLabelValues("add_budget_line").Inc()
		return nil, err
	}
	return updated, nil
}

// RemoveBudgetLine quita una línea del presupuesto y libera su reserva
// (con piso en cero, por si los datos almacenados derivaron).
func (uc *ProjectUseCase) RemoveBudgetLine(ctx context.Context, projectID, materialID string) (*entity.Project, error) {
	if projectID == "" || materialID == "" {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Project
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
		if !project.HasMaterial(materialID) {
			return domain.ErrNotFound
		}
		released := project.RemoveMaterial(materialID)
		material, err := materialRepo.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		now := time.Now()
		if material != nil {
			material.Release(released)
			material.UpdatedAt = now
			if err := materialRepo.Update(material); err != nil {
				return err
			}
		}
		project.UpdatedAt = now
		if err := projectRepo.Update(project); err != nil {
			return err
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateActualQuantity fija la cantidad replanteada de una línea. Es un valor
// de planificación: no toca stock ni reservas hasta la finalización.
func (uc *ProjectUseCase) UpdateActualQuantity(ctx context.Context, projectID, materialID string, newActual int64) (*entity.Project, error) {
	if projectID == "" || materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	if newActual < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *entity.Project
	err := uc.txRunner.Run(ctx, func(
		_ repository.MaterialRepository,
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
		line := project.FindMaterial(materialID)
		if line == nil {
			return domain.ErrNotFound
		}
		line.ActualQuantity = newActual
		project.UpdatedAt = time.Now()
		if err := projectRepo.Update(project); err != nil {
			return err
		}
		updated = project
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetProject devuelve un proyecto por ID.
func (uc *ProjectUseCase) GetProject(ctx context.Context, projectID string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return project, nil
}

// ListProjects devuelve los proyectos, opcionalmente filtrados por estado.
func (uc *ProjectUseCase) ListProjects(ctx context.Context, status string) ([]*entity.Project, error) {
	switch status {
	case "", entity.ProjectStatusPending, entity.ProjectStatusCompleted:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.projectRepo.List(status)
}

// sortedLines devuelve las líneas ordenadas por MaterialID (orden de bloqueo).
func sortedLines(lines []BudgetLineInput) []BudgetLineInput {
	out := make([]BudgetLineInput, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out
}
