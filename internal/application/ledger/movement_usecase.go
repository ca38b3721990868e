package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
	"github.com/tu-usuario/stockcontrol-api/pkg/logger"
	"github.com/tu-usuario/stockcontrol-api/pkg/metrics"
)

// MovementUseCase registra movimientos directos de stock (ingresos y egresos)
// no ligados a la finalización de proyectos, con su rastro de auditoría
// append-only.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	log          *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movementRepo: movementRepo, log: log}
}

// MovementItemInput es una línea de un ingreso o egreso.
type MovementItemInput struct {
	MaterialID string
	Quantity   int64
}

// RecordIncome suma stock por cada línea y registra la transacción INGRESO.
// Los ingresos no tienen verificación de capacidad: siempre se permiten.
func (uc *MovementUseCase) RecordIncome(ctx context.Context, items []MovementItemInput, date time.Time) (*entity.MovementTransaction, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	tx := &entity.MovementTransaction{
		ID:        uuid.New().String(),
		Type:      entity.MovementTypeIngreso,
		Date:      date,
		Items:     make([]entity.MovementItem, 0, len(items)),
		CreatedAt: time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ProjectRepository,
		movementRepo repository.MovementRepository,
	) error {
		now := time.Now()
		for _, item := range sortedItems(items) {
			material, err := materialRepo.GetForUpdate(item.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			material.ApplyIncome(item.Quantity)
			material.UpdatedAt = now
			if err := materialRepo.Update(material); err != nil {
				return err
			}
			tx.Items = append(tx.Items, entity.MovementItem{
				MaterialID:      material.ID,
				MaterialName:    material.Name,
				MaterialUnit:    material.Unit,
				Quantity:        item.Quantity,
				AppliedQuantity: item.Quantity,
			})
		}
		return movementRepo.Append(tx)
	})
	if err != nil {
		return nil, err
	}
	metrics.MovementsRecorded.WithLabelValues(entity.MovementTypeIngreso).Inc()
	return tx, nil
}

// RecordOutcome descuenta stock por cada línea y registra la transacción
// EGRESO. Cada línea debe respetar la disponibilidad (cantidad <= stock -
// reservado); en la aplicación el stock además tiene piso en lo reservado,
// de modo que un egreso jamás rompe reservas vigentes aunque los datos
// almacenados hayan derivado. Si el piso ajusta la cantidad, el ítem queda
// registrado con la cantidad efectivamente aplicada y se emite una advertencia.
func (uc *MovementUseCase) RecordOutcome(ctx context.Context, items []MovementItemInput, date time.Time, budgetTarget string) (*entity.MovementTransaction, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = time.Now()
	}

	tx := &entity.MovementTransaction{
		ID:           uuid.New().String(),
		Type:         entity.MovementTypeEgreso,
		Date:         date,
		Items:        make([]entity.MovementItem, 0, len(items)),
		BudgetTarget: budgetTarget,
		CreatedAt:    time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ProjectRepository,
		movementRepo repository.MovementRepository,
	) error {
		now := time.Now()
		sorted := sortedItems(items)
		locked := make([]*entity.Material, len(sorted))
		// Validar todas las líneas con las filas bloqueadas antes de aplicar.
		for i, item := range sorted {
			material, err := materialRepo.GetForUpdate(item.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			if item.Quantity > material.Available() {
				return &domain.AvailabilityError{
					MaterialID:   material.ID,
					MaterialName: material.Name,
					Requested:    item.Quantity,
					Available:    material.Available(),
				}
			}
			locked[i] = material
		}
		for i, item := range sorted {
			material := locked[i]
			applied := material.ApplyOutcome(item.Quantity)
			if applied < item.Quantity {
				uc.log.Warn().
					Str("material_id", material.ID).
					Int64("solicitado", item.Quantity).
					Int64("aplicado", applied).
					Msg("egreso ajustado al piso de reservas")
			}
			material.UpdatedAt = now
			if err := materialRepo.Update(material); err != nil {
				return err
			}
			tx.Items = append(tx.Items, entity.MovementItem{
				MaterialID:      material.ID,
				MaterialName:    material.Name,
				MaterialUnit:    material.Unit,
				Quantity:        item.Quantity,
				AppliedQuantity: applied,
			})
		}
		return movementRepo.Append(tx)
	})
	if err != nil {
		metrics.LedgerRejections.WithLabelValues("record_outcome").Inc()
		return nil, err
	}
	metrics.MovementsRecorded.WithLabelValues(entity.MovementTypeEgreso).Inc()
	return tx, nil
}

// ListMovements devuelve el historial de más reciente a más antiguo.
func (uc *MovementUseCase) ListMovements(ctx context.Context, limit, offset int) ([]*entity.MovementTransaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movementRepo.List(limit, offset)
}

func validateItems(items []MovementItemInput) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item.MaterialID == "" {
			return domain.ErrInvalidInput
		}
		if item.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if seen[item.MaterialID] {
			return domain.ErrInvalidInput
		}
		seen[item.MaterialID] = true
	}
	return nil
}

// sortedItems devuelve las líneas ordenadas por MaterialID (orden de bloqueo).
func sortedItems(items []MovementItemInput) []MovementItemInput {
	out := make([]MovementItemInput, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].MaterialID < out[j].MaterialID })
	return out
}
