package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

// TestRecordIncome_SumaStock: un ingreso suma stock a cada línea sin
// verificación de capacidad y queda asentado en el historial como INGRESO.
func TestRecordIncome_SumaStock(t *testing.T) {
	ctx := context.Background()
	_, materialUC, _, movementUC := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)
	sand := mustMaterial(t, materialUC, "Arena", 0)

	tx, err := movementUC.RecordIncome(ctx, []ledger.MovementItemInput{
		{MaterialID: cement.ID, Quantity: 40},
		{MaterialID: sand.ID, Quantity: 10},
	}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIngreso, tx.Type)
	assert.Len(t, tx.Items, 2)

	assert.Equal(t, int64(140), materialByID(t, materialUC, cement.ID).Stock)
	assert.Equal(t, int64(10), materialByID(t, materialUC, sand.ID).Stock)
}

// TestRecordOutcome_RespetaDisponibilidad: con stock 75 y reservado 50
// (disponible 25), un egreso de 40 se rechaza con el faltante exacto y uno de
// 20 procede dejando stock 55 y las reservas intactas.
func TestRecordOutcome_RespetaDisponibilidad(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, movementUC := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 75)
	mustProject(t, projectUC, "PRE-100", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 50})

	_, err := movementUC.RecordOutcome(ctx, []ledger.MovementItemInput{
		{MaterialID: cement.ID, Quantity: 40},
	}, time.Time{}, "")
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)
	var availErr *domain.AvailabilityError
	require.ErrorAs(t, err, &availErr)
	assert.Equal(t, int64(40), availErr.Requested)
	assert.Equal(t, int64(25), availErr.Available)
	assert.Equal(t, int64(75), materialByID(t, materialUC, cement.ID).Stock, "el rechazo no toca el stock")

	tx, err := movementUC.RecordOutcome(ctx, []ledger.MovementItemInput{
		{MaterialID: cement.ID, Quantity: 20},
	}, time.Time{}, "PRE-100")
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeEgreso, tx.Type)
	assert.Equal(t, "PRE-100", tx.BudgetTarget)
	require.Len(t, tx.Items, 1)
	assert.Equal(t, int64(20), tx.Items[0].AppliedQuantity)

	m := materialByID(t, materialUC, cement.ID)
	assert.Equal(t, int64(55), m.Stock)
	assert.Equal(t, int64(50), m.Reserved)
}

// TestRecordOutcome_TodoONada: si una línea del egreso multi-material no
// pasa la verificación, ninguna se aplica ni se asienta el movimiento.
func TestRecordOutcome_TodoONada(t *testing.T) {
	ctx := context.Background()
	_, materialUC, _, movementUC := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)
	sand := mustMaterial(t, materialUC, "Arena", 5)

	_, err := movementUC.RecordOutcome(ctx, []ledger.MovementItemInput{
		{MaterialID: cement.ID, Quantity: 10},
		{MaterialID: sand.ID, Quantity: 8},
	}, time.Time{}, "")
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)

	assert.Equal(t, int64(100), materialByID(t, materialUC, cement.ID).Stock)
	assert.Equal(t, int64(5), materialByID(t, materialUC, sand.ID).Stock)

	history, err := movementUC.ListMovements(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, history, "un egreso rechazado no deja asiento")
}

func TestRecordMovement_Validaciones(t *testing.T) {
	ctx := context.Background()
	_, materialUC, _, movementUC := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	_, err := movementUC.RecordIncome(ctx, nil, time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = movementUC.RecordIncome(ctx, []ledger.MovementItemInput{
		{MaterialID: cement.ID, Quantity: 0},
	}, time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = movementUC.RecordOutcome(ctx, []ledger.MovementItemInput{
		{MaterialID: cement.ID, Quantity: 5},
		{MaterialID: cement.ID, Quantity: 3},
	}, time.Time{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ítems duplicados")

	_, err = movementUC.RecordOutcome(ctx, []ledger.MovementItemInput{
		{MaterialID: "no-existe", Quantity: 5},
	}, time.Time{}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestListMovements_OrdenYPaginado: el historial sale del más reciente al más
// antiguo y respeta limit y offset.
func TestListMovements_OrdenYPaginado(t *testing.T) {
	ctx := context.Background()
	_, materialUC, _, movementUC := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	for _, qty := range []int64{1, 2, 3} {
		_, err := movementUC.RecordIncome(ctx, []ledger.MovementItemInput{
			{MaterialID: cement.ID, Quantity: qty},
		}, time.Time{})
		require.NoError(t, err)
	}

	history, err := movementUC.ListMovements(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, int64(3), history[0].Items[0].Quantity, "el último ingreso sale primero")
	assert.Equal(t, int64(1), history[2].Items[0].Quantity)

	page, err := movementUC.ListMovements(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].Items[0].Quantity)
}
