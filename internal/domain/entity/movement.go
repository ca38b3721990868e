package entity

import "time"

// Tipos de movimiento de stock (auditoría, no ligados a proyectos).
const (
	MovementTypeIngreso = "INGRESO" // entrada de stock
	MovementTypeEgreso  = "EGRESO"  // salida directa de stock
)

// MovementItem es una línea de un movimiento. AppliedQuantity registra lo
// efectivamente descontado cuando un egreso fue ajustado por el piso de
// reservas (igual a Quantity en el caso normal y en todo ingreso).
type MovementItem struct {
	MaterialID      string `json:"material_id"`
	MaterialName    string `json:"material_name"`
	MaterialUnit    string `json:"material_unit"`
	Quantity        int64  `json:"quantity"`
	AppliedQuantity int64  `json:"applied_quantity"`
}

// MovementTransaction es el registro inmutable de un cambio de stock.
// Solo se agrega al historial; nunca se modifica ni se borra.
type MovementTransaction struct {
	ID           string
	Type         string
	Date         time.Time
	Items        []MovementItem
	BudgetTarget string // referencia libre, solo con sentido en EGRESO
	CreatedAt    time.Time
}
