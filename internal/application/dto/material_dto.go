package dto

import (
	"time"

	"github.com/tu-usuario/stockcontrol-api/internal/domain/entity"
)

// CreateMaterialRequest body para POST /api/materials.
type CreateMaterialRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category,omitempty"`
	Stock    int64  `json:"stock"`
}

// MaterialResponse representación de un material con su disponibilidad derivada.
type MaterialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Category  string    `json:"category"`
	Stock     int64     `json:"stock"`
	Reserved  int64     `json:"reserved"`
	Available int64     `json:"available"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SummaryResponse resumen derivado del inventario completo.
type SummaryResponse struct {
	TotalStock     int64 `json:"total_stock"`
	TotalReserved  int64 `json:"total_reserved"`
	TotalAvailable int64 `json:"total_available"`
}

// RemoveMaterialResponse resultado de una baja de material.
type RemoveMaterialResponse struct {
	ID             string `json:"id"`
	StockRemaining int64  `json:"stock_remaining"`
	// Warning se llena cuando el material eliminado aún tenía existencias.
	Warning string `json:"warning,omitempty"`
}

// ToMaterialResponse convierte la entidad a su representación HTTP.
func ToMaterialResponse(m *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:        m.ID,
		Name:      m.Name,
		Unit:      m.Unit,
		Category:  m.Category,
		Stock:     m.Stock,
		Reserved:  m.Reserved,
		Available: m.Available(),
		UpdatedAt: m.UpdatedAt,
	}
}

// ToMaterialResponses convierte una lista de materiales.
func ToMaterialResponses(materials []*entity.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, ToMaterialResponse(m))
	}
	return out
}
