package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
	"github.com/tu-usuario/stockcontrol-api/internal/domain/repository"
)

// MaterialUseCase administra el catálogo de materiales y la vista de resumen.
type MaterialUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{txRunner: txRunner, materialRepo: materialRepo}
}

// AddMaterialInput entrada para dar de alta un material.
type AddMaterialInput struct {
	Name     string
	Unit     string
	Category string
	Stock    int64
}

// AddMaterial da de alta un material con ID nuevo, reserva en cero y
// categoría "General" si no se indicó otra.
func (uc *MaterialUseCase) AddMaterial(ctx context.Context, input AddMaterialInput) (*entity.Material, error) {
	if input.Name == "" || input.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.Stock < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	category := input.Category
	if category == "" {
		category = entity.CategoryDefault
	}
	now := time.Now()
	material := &entity.Material{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Unit:      input.Unit,
		Category:  category,
		Stock:     input.Stock,
		Reserved:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

// RemoveMaterialResult informa el resultado de una baja. StockRemaining
// permite al caller advertir cuando se eliminó un material que aún tenía
// existencias.
type RemoveMaterialResult struct {
	Material       *entity.Material
	StockRemaining int64
}

// RemoveMaterial elimina un material del catálogo. Se rechaza de plano si el
// material tiene reservas vigentes.
func (uc *MaterialUseCase) RemoveMaterial(ctx context.Context, materialID string) (*RemoveMaterialResult, error) {
	if materialID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *RemoveMaterialResult
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.ProjectRepository,
		_ repository.MovementRepository,
	) error {
		material, err := materialRepo.GetForUpdate(materialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		if material.Reserved > 0 {
			return domain.ErrHasReservations
		}
		if err := materialRepo.Delete(materialID); err != nil {
			return err
		}
		result = &RemoveMaterialResult{Material: material, StockRemaining: material.Stock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetMaterial devuelve un material por ID.
func (uc *MaterialUseCase) GetMaterial(ctx context.Context, materialID string) (*entity.Material, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return material, nil
}

// ListMaterials devuelve el catálogo completo.
func (uc *MaterialUseCase) ListMaterials(ctx context.Context) ([]*entity.Material, error) {
	return uc.materialRepo.List()
}

// Summary recalcula el resumen de stock a partir del conjunto actual de
// materiales. Es una lectura pura: sin efectos secundarios.
func (uc *MaterialUseCase) Summary(ctx context.Context) (entity.StockSummary, error) {
	materials, err := uc.materialRepo.List()
	if err != nil {
		return entity.StockSummary{}, err
	}
	return entity.Summarize(materials), nil
}
