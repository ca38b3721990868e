package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only del historial de movimientos sobre
// PostgreSQL. Las líneas del movimiento van como JSONB en la fila.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste una transacción de movimiento. No existen Update ni Delete.
func (r *MovementRepo) Append(tx *entity.MovementTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	items, err := json.Marshal(tx.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO movements (id, type, date, items, budget_target, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(context.Background(), query,
		tx.ID, tx.Type, tx.Date, items, tx.BudgetTarget, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// List devuelve el historial de más reciente a más antiguo.
func (r *MovementRepo) List(limit, offset int) ([]*entity.MovementTransaction, error) {
	query := `
		SELECT id, type, date, items, budget_target, created_at
		FROM movements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.MovementTransaction
	for rows.Next() {
		var (
			tx    entity.MovementTransaction
			items []byte
		)
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Date, &items, &tx.BudgetTarget, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &tx.Items); err != nil {
				return nil, fmt.Errorf("unmarshal items: %w", err)
			}
		}
		out = append(out, &tx)
	}
	return out, rows.Err()
}
