package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
	"github.com/tu-usuario/stockcontrol-api/internal/infrastructure/memory"
)

// TestRun_DescartaCambiosSiFalla: una transacción que falla no publica nada,
// aunque haya mutado repos antes del error.
func TestRun_DescartaCambiosSiFalla(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Materials().Create(&entity.Material{ID: "m1", Name: "Cemento", Stock: 100}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ProjectRepository,
		movementRepo repository.MovementRepository,
	) error {
		m, err := materialRepo.GetForUpdate("m1")
		require.NoError(t, err)
		m.Stock = 0
		require.NoError(t, materialRepo.Update(m))
		require.NoError(t, movementRepo.Append(&entity.MovementTransaction{ID: "t1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	m, err := store.Materials().GetByID("m1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, int64(100), m.Stock, "la mutación abortada no se publica")

	history, err := store.Movements().List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

// TestRun_LecturasNoVenEstadoIntermedio: las vistas fuera de transacción solo
// observan snapshots publicados.
func TestRun_LecturasNoVenEstadoIntermedio(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Materials().Create(&entity.Material{ID: "m1", Name: "Cemento", Stock: 100}))

	err := store.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ProjectRepository,
		_ repository.MovementRepository,
	) error {
		m, _ := materialRepo.GetForUpdate("m1")
		m.Stock = 80
		return materialRepo.Update(m)
	})
	require.NoError(t, err)

	m, err := store.Materials().GetByID("m1")
	require.NoError(t, err)
	assert.Equal(t, int64(80), m.Stock)
}

// TestRun_SerializaEscritores: transacciones concurrentes sobre el mismo
// material no pierden actualizaciones (disciplina de un escritor a la vez).
func TestRun_SerializaEscritores(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Materials().Create(&entity.Material{ID: "m1", Name: "Cemento"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Run(ctx, func(
				materialRepo repository.MaterialRepository,
				_ repository.ProjectRepository,
				_ repository.MovementRepository,
			) error {
				m, err := materialRepo.GetForUpdate("m1")
				if err != nil {
					return err
				}
				m.Stock++
				return materialRepo.Update(m)
			})
		}()
	}
	wg.Wait()

	m, err := store.Materials().GetByID("m1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), m.Stock)
}

// TestRun_ContextoCancelado: con el contexto cancelado la transacción ni se
// intenta.
func TestRun_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Run(ctx, func(
		_ repository.MaterialRepository,
		_ repository.ProjectRepository,
		_ repository.MovementRepository,
	) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
