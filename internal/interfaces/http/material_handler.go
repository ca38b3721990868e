package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
)

// MaterialHandler maneja las peticiones HTTP del catálogo de materiales.
type MaterialHandler struct {
	uc *ledger.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *ledger.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "name, unit, category (opcional), stock inicial"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	material, err := h.uc.AddMaterial(c.Context(), ledger.AddMaterialInput{
		Name:     in.Name,
		Unit:     in.Unit,
		Category: in.Category,
		Stock:    in.Stock,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMaterialResponse(material))
}

// List godoc
// @Summary      Listar materiales con disponibilidad derivada
// @Tags         materials
// @Produce      json
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	materials, err := h.uc.ListMaterials(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToMaterialResponses(materials))
}

// GetByID godoc
// @Summary      Obtener un material
// @Tags         materials
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.uc.GetMaterial(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToMaterialResponse(material))
}

// Remove godoc
// @Summary      Eliminar un material sin reservas vigentes
// @Tags         materials
// @Produce      json
// @Param        id  path  string  true  "ID del material"
// @Success      200  {object}  dto.RemoveMaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Remove(c *fiber.Ctx) error {
	result, err := h.uc.RemoveMaterial(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	resp := dto.RemoveMaterialResponse{
		ID:             result.Material.ID,
		StockRemaining: result.StockRemaining,
	}
	if result.StockRemaining > 0 {
		resp.Warning = fmt.Sprintf("el material %q aún tenía %d %s en stock",
			result.Material.Name, result.StockRemaining, result.Material.Unit)
	}
	return c.JSON(resp)
}

// Summary godoc
// @Summary      Resumen derivado del inventario (stock, reservado, disponible)
// @Tags         materials
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/materials/summary [get]
func (h *MaterialHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.SummaryResponse{
		TotalStock:     summary.TotalStock,
		TotalReserved:  summary.TotalReserved,
		TotalAvailable: summary.TotalAvailable,
	})
}
