package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

func TestAddMaterial_Defaults(t *testing.T) {
	ctx := context.Background()
	_, materialUC, _, _ := newLedger(t)

	m, err := materialUC.AddMaterial(ctx, ledger.AddMaterialInput{
		Name: "Cemento", Unit: "bolsa", Stock: 40,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, entity.CategoryDefault, m.Category, "sin categoría se asigna General")
	assert.Equal(t, int64(40), m.Stock)
	assert.Equal(t, int64(0), m.Reserved, "un material nuevo nace sin reservas")

	_, err = materialUC.AddMaterial(ctx, ledger.AddMaterialInput{Name: "", Unit: "kg"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = materialUC.AddMaterial(ctx, ledger.AddMaterialInput{Name: "Arena", Unit: "kg", Stock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// TestRemoveMaterial_ConReservas: un material reservado por un proyecto
// pendiente no se puede eliminar; liberada la reserva, sí.
func TestRemoveMaterial_ConReservas(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	p := mustProject(t, projectUC, "PRE-110", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 50})

	_, err := materialUC.RemoveMaterial(ctx, cement.ID)
	require.ErrorIs(t, err, domain.ErrHasReservations)

	_, err = projectUC.RemoveBudgetLine(ctx, p.ID, cement.ID)
	require.NoError(t, err)

	result, err := materialUC.RemoveMaterial(ctx, cement.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), result.StockRemaining, "el caller puede advertir stock remanente")

	_, err = materialUC.GetMaterial(ctx, cement.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSummary_LecturaPura: el resumen se recalcula del conjunto vigente y
// pedirlo dos veces seguidas da lo mismo.
func TestSummary_LecturaPura(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)
	mustMaterial(t, materialUC, "Arena", 60)
	mustProject(t, projectUC, "PRE-120", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 30})

	s1, err := materialUC.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(160), s1.TotalStock)
	assert.Equal(t, int64(30), s1.TotalReserved)
	assert.Equal(t, int64(130), s1.TotalAvailable)

	s2, err := materialUC.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}
