package dto

import (
	"time"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

// BudgetLineRequest línea del presupuesto inicial.
type BudgetLineRequest struct {
	MaterialID string `json:"material_id"`
	Quantity   int64  `json:"quantity"`
}

// CreateProjectRequest body para POST /api/projects.
type CreateProjectRequest struct {
	Description   string              `json:"description"`
	Client        string              `json:"client"`
	StartDate     time.Time           `json:"start_date"`
	EstimatedDays int                 `json:"estimated_days"`
	Materials     []BudgetLineRequest `json:"materials"`
}

// AddBudgetLineRequest body para POST /api/projects/:id/materials.
type AddBudgetLineRequest struct {
	MaterialID string `json:"material_id"`
	Quantity   int64  `json:"quantity"`
}

// UpdateActualRequest body para PUT /api/projects/:id/materials/:materialId.
type UpdateActualRequest struct {
	ActualQuantity int64 `json:"actual_quantity"`
}

// FinalMaterialRequest cantidad real consumida de una línea al finalizar.
type FinalMaterialRequest struct {
	MaterialID     string `json:"material_id"`
	ActualQuantity int64  `json:"actual_quantity"`
}

// CompleteProjectRequest body para POST /api/projects/:id/complete.
type CompleteProjectRequest struct {
	Materials []FinalMaterialRequest `json:"materials"`
}

// ProjectMaterialResponse línea de presupuesto en la representación HTTP.
type ProjectMaterialResponse struct {
	MaterialID       string `json:"material_id"`
	MaterialName     string `json:"material_name"`
	MaterialUnit     string `json:"material_unit"`
	BudgetedQuantity int64  `json:"budgeted_quantity"`
	ActualQuantity   int64  `json:"actual_quantity"`
}

// ProjectResponse representación de un proyecto.
type ProjectResponse struct {
	ID             string                    `json:"id"`
	Description    string                    `json:"description"`
	Client         string                    `json:"client"`
	StartDate      time.Time                 `json:"start_date"`
	EstimatedDays  int                       `json:"estimated_days"`
	Status         string                    `json:"status"`
	Materials      []ProjectMaterialResponse `json:"materials"`
	CompletionDate *time.Time                `json:"completion_date,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// ToProjectResponse convierte la entidad a su representación HTTP.
func ToProjectResponse(p *entity.Project) ProjectResponse {
	materials := make([]ProjectMaterialResponse, 0, len(p.Materials))
	for _, m := range p.Materials {
		materials = append(materials, ProjectMaterialResponse{
			MaterialID:       m.MaterialID,
			MaterialName:     m.MaterialName,
			MaterialUnit:     m.MaterialUnit,
			BudgetedQuantity: m.BudgetedQuantity,
			ActualQuantity:   m.ActualQuantity,
		})
	}
	return ProjectResponse{
		ID:             p.ID,
		Description:    p.Description,
		Client:         p.Client,
		StartDate:      p.StartDate,
		EstimatedDays:  p.EstimatedDays,
		Status:         p.Status,
		Materials:      materials,
		CompletionDate: p.CompletionDate,
		CreatedAt:      p.CreatedAt,
	}
}

// ToProjectResponses convierte una lista de proyectos.
func ToProjectResponses(projects []*entity.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return out
}
