package ledger

import (
	"context"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacenamiento,
// pasando repositorios atados a esa transacción. Garantiza la atomicidad del
// motor de reservas: o se aplica todo el efecto de una operación o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		projectRepo repository.ProjectRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
