package repository

import "github.com/tu-usuario/stockcontrol-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el historial de
// movimientos. Es append-only: no existen Update ni Delete.
type MovementRepository interface {
	Append(movement *entity.MovementTransaction) error
	// List devuelve el historial de más reciente a más antiguo.
	List(limit, offset int) ([]*entity.MovementTransaction, error)
}
