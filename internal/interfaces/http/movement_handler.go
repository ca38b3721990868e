package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/application/ledger"
)

// MovementHandler maneja las peticiones HTTP de ingresos y egresos de stock.
type MovementHandler struct {
	uc *ledger.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// RecordIncome godoc
// @Summary      Registrar un ingreso de stock
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordIncomeRequest  true  "items y fecha"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/income [post]
func (h *MovementHandler) RecordIncome(c *fiber.Ctx) error {
	var in dto.RecordIncomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.uc.RecordIncome(c.Context(), toItemInputs(in.Items), in.Date)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(tx))
}

// RecordOutcome godoc
// @Summary      Registrar un egreso de stock (sin afectar reservas)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordOutcomeRequest  true  "items, fecha y referencia de presupuesto opcional"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/outcome [post]
func (h *MovementHandler) RecordOutcome(c *fiber.Ctx) error {
	var in dto.RecordOutcomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.uc.RecordOutcome(c.Context(), toItemInputs(in.Items), in.Date, in.BudgetTarget)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(tx))
}

// List godoc
// @Summary      Historial de movimientos (más recientes primero)
// @Tags         movements
// @Produce      json
// @Param        limit   query  int  false  "Máximo de movimientos (default 100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	movements, err := h.uc.ListMovements(c.Context(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.ToMovementResponses(movements))
}

func toItemInputs(items []dto.MovementItemRequest) []ledger.MovementItemInput {
	out := make([]ledger.MovementItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, ledger.MovementItemInput{MaterialID: it.MaterialID, Quantity: it.Quantity})
	}
	return out
}
