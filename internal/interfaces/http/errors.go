package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stockcontrol-api/internal/application/dto"
	"github.com/tu-usuario/stockcontrol-api/internal/domain"
)

// writeDomainError traduce errores de dominio a respuestas HTTP. Los rechazos
// por disponibilidad incluyen el material y el faltante numérico.
func writeDomainError(c *fiber.Ctx, err error) error {
	var availErr *domain.AvailabilityError
	if errors.As(err, &availErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:       "INSUFFICIENT_AVAILABILITY",
			Message:    availErr.Error(),
			MaterialID: availErr.MaterialID,
			Requested:  availErr.Requested,
			Available:  availErr.Available,
		})
	}
	var effErr *domain.EffectiveAvailabilityError
	if errors.As(err, &effErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:       "EXCEEDS_EFFECTIVE_AVAILABILITY",
			Message:    effErr.Error(),
			MaterialID: effErr.MaterialID,
			Requested:  effErr.Requested,
			Available:  effErr.EffectiveCap,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "la cantidad debe ser un entero válido"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrInsufficientAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_AVAILABILITY", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateLine):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_LINE", Message: "material ya presupuestado en el proyecto"})
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el proyecto ya fue completado"})
	case errors.Is(err, domain.ErrHasReservations):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HAS_RESERVATIONS", Message: "el material tiene reservas pendientes"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
