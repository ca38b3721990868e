package repository

import "github.com/tu-usuario/stockcontrol-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	// GetForUpdate bloquea la fila del proyecto durante la transacción en
	// curso (evita finalizaciones o ediciones de presupuesto concurrentes).
	GetForUpdate(id string) (*entity.Project, error)
	Update(project *entity.Project) error
	// List devuelve los proyectos, opcionalmente filtrados por estado
	// (cadena vacía = todos).
	List(status string) ([]*entity.Project, error)
}
