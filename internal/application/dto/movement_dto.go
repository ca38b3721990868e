package dto

import (
	"time"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

// MovementItemRequest línea de un ingreso o egreso.
type MovementItemRequest struct {
	MaterialID string `json:"material_id"`
	Quantity   int64  `json:"quantity"`
}

// RecordIncomeRequest body para POST /api/movements/income.
type RecordIncomeRequest struct {
	Items []MovementItemRequest `json:"items"`
	Date  time.Time             `json:"date"`
}

// RecordOutcomeRequest body para POST /api/movements/outcome.
type RecordOutcomeRequest struct {
	Items        []MovementItemRequest `json:"items"`
	Date         time.Time             `json:"date"`
	BudgetTarget string                `json:"budget_target,omitempty"`
}

// MovementItemResponse línea de un movimiento registrado. AppliedQuantity
// difiere de Quantity cuando un egreso fue ajustado al piso de reservas.
type MovementItemResponse struct {
	MaterialID      string `json:"material_id"`
	MaterialName    string `json:"material_name"`
	MaterialUnit    string `json:"material_unit"`
	Quantity        int64  `json:"quantity"`
	AppliedQuantity int64  `json:"applied_quantity"`
}

// MovementResponse representación de una transacción de movimiento.
type MovementResponse struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`
	Date         time.Time              `json:"date"`
	Items        []MovementItemResponse `json:"items"`
	BudgetTarget string                 `json:"budget_target,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ToMovementResponse convierte la entidad a su representación HTTP.
func ToMovementResponse(tx *entity.MovementTransaction) MovementResponse {
	items := make([]MovementItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, MovementItemResponse{
			MaterialID:      it.MaterialID,
			MaterialName:    it.MaterialName,
			MaterialUnit:    it.MaterialUnit,
			Quantity:        it.Quantity,
			AppliedQuantity: it.AppliedQuantity,
		})
	}
	return MovementResponse{
		ID:           tx.ID,
		Type:         tx.Type,
		Date:         tx.Date,
		Items:        items,
		BudgetTarget: tx.BudgetTarget,
		CreatedAt:    tx.CreatedAt,
	}
}

// ToMovementResponses convierte una lista de movimientos.
func ToMovementResponses(movements []*entity.MovementTransaction) []MovementResponse {
	out := make([]MovementResponse, 0, len(movements))
	for _, tx := range movements {
		out = append(out, ToMovementResponse(tx))
	}
	return out
}
