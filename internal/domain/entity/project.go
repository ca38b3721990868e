package entity

import "time"

// Estados de un proyecto (obra). La transición es de una sola vía:
// PENDIENTE -> COMPLETADO.
const (
	ProjectStatusPending   = "PENDIENTE"
	ProjectStatusCompleted = "COMPLETADO"
)

// ProjectMaterial es una línea del presupuesto de materiales de un proyecto.
// BudgetedQuantity fija la reserva y es inmutable salvo por eliminación de la
// línea; ActualQuantity es la cantidad replanteada, editable mientras el
// proyecto está pendiente y autoritativa al finalizar.
type ProjectMaterial struct {
	MaterialID       string `json:"material_id"`
	MaterialName     string `json:"material_name"`
	MaterialUnit     string `json:"material_unit"`
	BudgetedQuantity int64  `json:"budgeted_quantity"`
	ActualQuantity   int64  `json:"actual_quantity"`
}

// Project representa una obra que consume materiales. Description lleva el
// número de presupuesto.
type Project struct {
	ID             string
	Description    string
	Client         string
	StartDate      time.Time
	EstimatedDays  int
	Status         string
	Materials      []ProjectMaterial
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPending indica si el proyecto aún admite cambios de presupuesto y replanteo.
func (p *Project) IsPending() bool {
	return p.Status == ProjectStatusPending
}

// FindMaterial devuelve la línea de presupuesto para un material, o nil.
func (p *Project) FindMaterial(materialID string) *ProjectMaterial {
	for i := range p.Materials {
		if p.Materials[i].MaterialID == materialID {
			return &p.Materials[i]
		}
	}
	return nil
}

// HasMaterial indica si el material ya está presupuestado en el proyecto.
func (p *Project) HasMaterial(materialID string) bool {
	return p.FindMaterial(materialID) != nil
}

// RemoveMaterial quita la línea del presupuesto y devuelve la cantidad
// presupuestada que tenía (0 si no existía).
func (p *Project) RemoveMaterial(materialID string) int64 {
	for i := range p.Materials {
		if p.Materials[i].MaterialID == materialID {
			removed := p.Materials[i].BudgetedQuantity
			p.Materials = append(p.Materials[:i], p.Materials[i+1:]...)
			return removed
		}
	}
	return 0
}
