package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrDuplicateLine          = errors.New("material ya presupuestado en el proyecto")
	ErrInsufficientAvailable  = errors.New("disponibilidad insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrHasReservations        = errors.New("material con reservas pendientes")
)

// AvailabilityError detalla un rechazo por disponibilidad insuficiente:
// identifica el material, la cantidad solicitada y la disponible (stock - reservado).
type AvailabilityError struct {
	MaterialID   string
	MaterialName string
	Requested    int64
	Available    int64
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("disponibilidad insuficiente de %q: solicitado %d, disponible %d (faltan %d)",
		e.MaterialName, e.Requested, e.Available, e.Requested-e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientAvailable).
func (e *AvailabilityError) Unwrap() error { return ErrInsufficientAvailable }

// EffectiveAvailabilityError detalla un rechazo al finalizar un proyecto:
// la cantidad replanteada excede el stock disponible efectivo, es decir,
// lo que queda tras honrar las reservas de los demás proyectos liberando
// la reserva propia.
type EffectiveAvailabilityError struct {
	MaterialID   string
	MaterialName string
	Requested    int64
	EffectiveCap int64
}

func (e *EffectiveAvailabilityError) Error() string {
	return fmt.Sprintf("la cantidad replanteada final de %q (%d) excede el stock disponible efectivo (%d)",
		e.MaterialName, e.Requested, e.EffectiveCap)
}

func (e *EffectiveAvailabilityError) Unwrap() error { return ErrInsufficientAvailable }
