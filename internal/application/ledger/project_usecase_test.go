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
	"github.com/tu-usuario/stockcontrol-api/internal/infrastructure/memory"
	"github.com/tu-usuario/stockcontrol-api/pkg/logger"
)

// newLedger arma el juego completo de casos de uso sobre el almacén en
// memoria, que sostiene el mismo contrato transaccional que PostgreSQL.
func newLedger(t *testing.T) (*memory.Store, *ledger.MaterialUseCase, *ledger.ProjectUseCase, *ledger.MovementUseCase) {
	t.Helper()
	store := memory.NewStore()
	return store,
		ledger.NewMaterialUseCase(store, store.Materials()),
		ledger.NewProjectUseCase(store, store.Projects()),
		ledger.NewMovementUseCase(store, store.Movements(), logger.Nop())
}

func mustMaterial(t *testing.T, uc *ledger.MaterialUseCase, name string, stock int64) *entity.Material {
	t.Helper()
	m, err := uc.AddMaterial(context.Background(), ledger.AddMaterialInput{
		Name:  name,
		Unit:  "unidad",
		Stock: stock,
	})
	require.NoError(t, err)
	return m
}

func mustProject(t *testing.T, uc *ledger.ProjectUseCase, desc string, lines ...ledger.BudgetLineInput) *entity.Project {
	t.Helper()
	p, err := uc.CreateProject(context.Background(), ledger.CreateProjectInput{
		Description:   desc,
		Client:        "Constructora Sur",
		EstimatedDays: 15,
		Materials:     lines,
	})
	require.NoError(t, err)
	return p
}

func materialByID(t *testing.T, uc *ledger.MaterialUseCase, id string) *entity.Material {
	t.Helper()
	m, err := uc.GetMaterial(context.Background(), id)
	require.NoError(t, err)
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de proyectos y reservas
// ──────────────────────────────────────────────────────────────────────────────

// TestCreateProject_ReservasAcumuladas recorre la secuencia canónica: sobre un
// material con stock 100, dos proyectos reservan 30 y 50 (reservado 80,
// disponible 20) y un tercero que pide 30 se rechaza con el faltante exacto,
// sin alterar el estado.
func TestCreateProject_ReservasAcumuladas(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	mustProject(t, projectUC, "PRE-001", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 30})
	mustProject(t, projectUC, "PRE-002", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 50})

	m := materialByID(t, materialUC, cement.ID)
	assert.Equal(t, int64(100), m.Stock, "las reservas no tocan el stock físico")
	assert.Equal(t, int64(80), m.Reserved)
	assert.Equal(t, int64(20), m.Available())

	_, err := projectUC.CreateProject(ctx, ledger.CreateProjectInput{
		Description:   "PRE-003",
		Client:        "Constructora Sur",
		EstimatedDays: 15,
		Materials:     []ledger.BudgetLineInput{{MaterialID: cement.ID, Quantity: 30}},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)

	var availErr *domain.AvailabilityError
	require.ErrorAs(t, err, &availErr)
	assert.Equal(t, int64(30), availErr.Requested)
	assert.Equal(t, int64(20), availErr.Available)

	// El rechazo no deja rastro: reservas intactas y solo dos proyectos.
	m = materialByID(t, materialUC, cement.ID)
	assert.Equal(t, int64(80), m.Reserved)
	projects, err := projectUC.ListProjects(ctx, entity.ProjectStatusPending)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

// TestCreateProject_TodoONada: si una línea de un presupuesto multi-material
// no pasa la verificación de capacidad, ninguna línea queda reservada.
func TestCreateProject_TodoONada(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)
	sand := mustMaterial(t, materialUC, "Arena", 10)

	_, err := projectUC.CreateProject(ctx, ledger.CreateProjectInput{
		Description:   "PRE-010",
		Client:        "Obra Norte",
		EstimatedDays: 30,
		Materials: []ledger.BudgetLineInput{
			{MaterialID: cement.ID, Quantity: 40},
			{MaterialID: sand.ID, Quantity: 25}, // excede el stock de arena
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)

	assert.Equal(t, int64(0), materialByID(t, materialUC, cement.ID).Reserved,
		"la línea válida tampoco debe quedar reservada")
	assert.Equal(t, int64(0), materialByID(t, materialUC, sand.ID).Reserved)
}

func TestCreateProject_Validaciones(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	cases := []struct {
		name    string
		input   ledger.CreateProjectInput
		wantErr error
	}{
		{
			name: "sin descripción",
			input: ledger.CreateProjectInput{
				Client: "X", EstimatedDays: 5,
				Materials: []ledger.BudgetLineInput{{MaterialID: cement.ID, Quantity: 1}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "sin líneas de presupuesto",
			input: ledger.CreateProjectInput{
				Description: "PRE-020", Client: "X", EstimatedDays: 5,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "cantidad cero",
			input: ledger.CreateProjectInput{
				Description: "PRE-021", Client: "X", EstimatedDays: 5,
				Materials: []ledger.BudgetLineInput{{MaterialID: cement.ID, Quantity: 0}},
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "línea duplicada",
			input: ledger.CreateProjectInput{
				Description: "PRE-022", Client: "X", EstimatedDays: 5,
				Materials: []ledger.BudgetLineInput{
					{MaterialID: cement.ID, Quantity: 10},
					{MaterialID: cement.ID, Quantity: 5},
				},
			},
			wantErr: domain.ErrDuplicateLine,
		},
		{
			name: "material inexistente",
			input: ledger.CreateProjectInput{
				Description: "PRE-023", Client: "X", EstimatedDays: 5,
				Materials: []ledger.BudgetLineInput{{MaterialID: "no-existe", Quantity: 10}},
			},
			wantErr: domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := projectUC.CreateProject(ctx, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Equal(t, int64(0), materialByID(t, materialUC, cement.ID).Reserved)
}

// TestAddBudgetLine_Limite: presupuestar exactamente el disponible es válido;
// una unidad más ya no.
func TestAddBudgetLine_Limite(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)
	sand := mustMaterial(t, materialUC, "Arena", 50)

	p := mustProject(t, projectUC, "PRE-030", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 60})

	_, err := projectUC.AddBudgetLine(ctx, p.ID, sand.ID, 51)
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)

	updated, err := projectUC.AddBudgetLine(ctx, p.ID, sand.ID, 50)
	require.NoError(t, err)
	assert.Len(t, updated.Materials, 2)
	assert.Equal(t, int64(0), materialByID(t, materialUC, sand.ID).Available())
}

func TestAddBudgetLine_Rechazos(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	p := mustProject(t, projectUC, "PRE-031", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 10})

	_, err := projectUC.AddBudgetLine(ctx, p.ID, cement.ID, 5)
	assert.ErrorIs(t, err, domain.ErrDuplicateLine, "un material solo puede tener una línea por proyecto")

	_, err = projectUC.AddBudgetLine(ctx, p.ID, cement.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = projectUC.AddBudgetLine(ctx, "no-existe", cement.ID, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = projectUC.CompleteProject(ctx, p.ID, []ledger.FinalMaterialInput{{MaterialID: cement.ID, ActualQuantity: 10}})
	require.NoError(t, err)
	_, err = projectUC.AddBudgetLine(ctx, p.ID, cement.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "un proyecto completado no admite líneas nuevas")
}

// TestRemoveBudgetLine_IdaYVuelta: crear un proyecto y quitarle todas las
// líneas deja las reservas exactamente como estaban antes de crearlo.
func TestRemoveBudgetLine_IdaYVuelta(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)
	sand := mustMaterial(t, materialUC, "Arena", 40)

	p := mustProject(t, projectUC, "PRE-040",
		ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 30},
		ledger.BudgetLineInput{MaterialID: sand.ID, Quantity: 15},
	)

	updated, err := projectUC.RemoveBudgetLine(ctx, p.ID, cement.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Materials, 1)

	updated, err = projectUC.RemoveBudgetLine(ctx, p.ID, sand.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Materials)

	assert.Equal(t, int64(0), materialByID(t, materialUC, cement.ID).Reserved)
	assert.Equal(t, int64(0), materialByID(t, materialUC, sand.ID).Reserved)

	_, err = projectUC.RemoveBudgetLine(ctx, p.ID, cement.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "quitar una línea inexistente se rechaza")
}

// TestUpdateActualQuantity_SoloPlanificacion: el replanteo no toca stock ni
// reservas; recién pesa al finalizar.
func TestUpdateActualQuantity_SoloPlanificacion(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	p := mustProject(t, projectUC, "PRE-050", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 30})

	updated, err := projectUC.UpdateActualQuantity(ctx, p.ID, cement.ID, 45)
	require.NoError(t, err)
	line := updated.FindMaterial(cement.ID)
	require.NotNil(t, line)
	assert.Equal(t, int64(45), line.ActualQuantity)
	assert.Equal(t, int64(30), line.BudgetedQuantity, "lo presupuestado es inmutable")

	m := materialByID(t, materialUC, cement.ID)
	assert.Equal(t, int64(100), m.Stock)
	assert.Equal(t, int64(30), m.Reserved)

	_, err = projectUC.UpdateActualQuantity(ctx, p.ID, cement.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestListProjects_EstadoInvalido(t *testing.T) {
	_, _, projectUC, _ := newLedger(t)
	_, err := projectUC.ListProjects(context.Background(), "ARCHIVADO")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalización de proyectos
// ──────────────────────────────────────────────────────────────────────────────

// TestCompleteProject_Liquidacion: con stock 100 y reservas 30+50, finalizar
// el primer proyecto con consumo real 25 descuenta 25 del stock y libera los
// 30 reservados. Quedan stock 75, reservado 50, disponible 25.
func TestCompleteProject_Liquidacion(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	p1 := mustProject(t, projectUC, "PRE-001", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 30})
	mustProject(t, projectUC, "PRE-002", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 50})

	completed, err := projectUC.CompleteProject(ctx, p1.ID, []ledger.FinalMaterialInput{
		{MaterialID: cement.ID, ActualQuantity: 25},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletionDate)
	require.Len(t, completed.Materials, 1)
	assert.Equal(t, int64(25), completed.Materials[0].ActualQuantity)

	m := materialByID(t, materialUC, cement.ID)
	assert.Equal(t, int64(75), m.Stock)
	assert.Equal(t, int64(50), m.Reserved, "la reserva del otro proyecto sigue intacta")
	assert.Equal(t, int64(25), m.Available())
}

// TestCompleteProject_DisponibilidadEfectiva: el tope por línea es
// stock - (reservado - presupuesto propio). Con stock 100, reservas 30+50,
// el proyecto de 30 puede consumir hasta 50 pero no 60.
func TestCompleteProject_DisponibilidadEfectiva(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	p1 := mustProject(t, projectUC, "PRE-001", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 30})
	mustProject(t, projectUC, "PRE-002", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 50})

	_, err := projectUC.CompleteProject(ctx, p1.ID, []ledger.FinalMaterialInput{
		{MaterialID: cement.ID, ActualQuantity: 60},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientAvailable)
	var effErr *domain.EffectiveAvailabilityError
	require.ErrorAs(t, err, &effErr)
	assert.Equal(t, int64(60), effErr.Requested)
	assert.Equal(t, int64(50), effErr.EffectiveCap)

	// El rechazo fue atómico: el proyecto sigue pendiente con sus reservas.
	m := materialByID(t, materialUC, cement.ID)
	assert.Equal(t, int64(100), m.Stock)
	assert.Equal(t, int64(80), m.Reserved)

	// En el tope exacto la finalización procede.
	completed, err := projectUC.CompleteProject(ctx, p1.ID, []ledger.FinalMaterialInput{
		{MaterialID: cement.ID, ActualQuantity: 50},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusCompleted, completed.Status)

	m = materialByID(t, materialUC, cement.ID)
	assert.Equal(t, int64(50), m.Stock)
	assert.Equal(t, int64(50), m.Reserved)
	assert.Equal(t, int64(0), m.Available())
}

// TestCompleteProject_LineasFinales: las líneas del presupuesto ausentes de la
// lista final consumen 0 y se descartan del proyecto; una línea final que no
// está en el presupuesto vigente se rechaza.
func TestCompleteProject_LineasFinales(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)
	sand := mustMaterial(t, materialUC, "Arena", 40)
	gravel := mustMaterial(t, materialUC, "Grava", 40)

	p := mustProject(t, projectUC, "PRE-060",
		ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 30},
		ledger.BudgetLineInput{MaterialID: sand.ID, Quantity: 15},
	)

	_, err := projectUC.CompleteProject(ctx, p.ID, []ledger.FinalMaterialInput{
		{MaterialID: gravel.ID, ActualQuantity: 5},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "material fuera del presupuesto vigente")

	completed, err := projectUC.CompleteProject(ctx, p.ID, []ledger.FinalMaterialInput{
		{MaterialID: cement.ID, ActualQuantity: 20},
		// Arena ausente: consume 0 y su reserva se libera.
	})
	require.NoError(t, err)
	require.Len(t, completed.Materials, 1)
	assert.Equal(t, cement.ID, completed.Materials[0].MaterialID)

	assert.Equal(t, int64(40), materialByID(t, materialUC, sand.ID).Stock)
	assert.Equal(t, int64(0), materialByID(t, materialUC, sand.ID).Reserved)
	assert.Equal(t, int64(80), materialByID(t, materialUC, cement.ID).Stock)
}

// TestCompleteProject_EstadoTerminal: COMPLETADO no admite una segunda
// finalización ni ninguna otra mutación.
func TestCompleteProject_EstadoTerminal(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, _ := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 100)

	p := mustProject(t, projectUC, "PRE-070", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 10})
	_, err := projectUC.CompleteProject(ctx, p.ID, []ledger.FinalMaterialInput{
		{MaterialID: cement.ID, ActualQuantity: 10},
	})
	require.NoError(t, err)

	_, err = projectUC.CompleteProject(ctx, p.ID, []ledger.FinalMaterialInput{
		{MaterialID: cement.ID, ActualQuantity: 5},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = projectUC.RemoveBudgetLine(ctx, p.ID, cement.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = projectUC.UpdateActualQuantity(ctx, p.ID, cement.ID, 3)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante global
// ──────────────────────────────────────────────────────────────────────────────

// TestInvariante_ReservadoIgualSumaPresupuestos: tras cualquier secuencia de
// operaciones, el reservado de cada material es exactamente la suma de lo
// presupuestado por los proyectos PENDIENTES que lo referencian.
func TestInvariante_ReservadoIgualSumaPresupuestos(t *testing.T) {
	ctx := context.Background()
	_, materialUC, projectUC, movementUC := newLedger(t)
	cement := mustMaterial(t, materialUC, "Cemento", 200)
	sand := mustMaterial(t, materialUC, "Arena", 120)

	p1 := mustProject(t, projectUC, "PRE-080",
		ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 40},
		ledger.BudgetLineInput{MaterialID: sand.ID, Quantity: 20},
	)
	p2 := mustProject(t, projectUC, "PRE-081", ledger.BudgetLineInput{MaterialID: cement.ID, Quantity: 60})

	_, err := projectUC.AddBudgetLine(ctx, p2.ID, sand.ID, 30)
	require.NoError(t, err)
	_, err = projectUC.RemoveBudgetLine(ctx, p1.ID, sand.ID)
	require.NoError(t, err)
	_, err = movementUC.RecordIncome(ctx, []ledger.MovementItemInput{{MaterialID: cement.ID, Quantity: 50}}, time.Time{})
	require.NoError(t, err)
	_, err = projectUC.CompleteProject(ctx, p1.ID, []ledger.FinalMaterialInput{
		{MaterialID: cement.ID, ActualQuantity: 35},
	})
	require.NoError(t, err)

	pending, err := projectUC.ListProjects(ctx, entity.ProjectStatusPending)
	require.NoError(t, err)
	budgeted := map[string]int64{}
	for _, p := range pending {
		for _, line := range p.Materials {
			budgeted[line.MaterialID] += line.BudgetedQuantity
		}
	}
	for _, id := range []string{cement.ID, sand.ID} {
		m := materialByID(t, materialUC, id)
		assert.Equal(t, budgeted[id], m.Reserved,
			"el reservado de %s debe igualar la suma de presupuestos pendientes", m.Name)
		assert.GreaterOrEqual(t, m.Available(), int64(0))
	}
}
