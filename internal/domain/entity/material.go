package entity

import "time"

// CategoryDefault se asigna cuando un material llega sin categoría.
const CategoryDefault = "General"

// Material representa un material de obra con su stock físico y la cantidad
// reservada por proyectos pendientes. Reserved lo mantiene el motor de
// reservas; nunca se edita directamente.
type Material struct {
	ID        string
	Name      string
	Unit      string
	Category  string
	Stock     int64
	Reserved  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available devuelve la cantidad libre para presupuestar o egresar (stock - reservado).
func (m *Material) Available() int64 {
	return m.Stock - m.Reserved
}

// ApplyIncome suma cantidad al stock (los ingresos siempre se permiten).
func (m *Material) ApplyIncome(quantity int64) {
	m.Stock += quantity
}

// ApplyOutcome resta cantidad del stock con piso en Reserved: un egreso nunca
// puede dejar el stock por debajo de lo reservado. Devuelve la cantidad
// efectivamente descontada (menor a la pedida si hubo ajuste).
func (m *Material) ApplyOutcome(quantity int64) int64 {
	newStock := m.Stock - quantity
	if newStock < m.Reserved {
		newStock = m.Reserved
	}
	applied := m.Stock - newStock
	m.Stock = newStock
	return applied
}

// Reserve incrementa la cantidad reservada.
func (m *Material) Reserve(quantity int64) {
	m.Reserved += quantity
}

// Release libera una reserva con piso en cero: Reserved nunca queda negativo
// aunque los datos almacenados hayan derivado.
func (m *Material) Release(quantity int64) {
	m.Reserved -= quantity
	if m.Reserved < 0 {
		m.Reserved = 0
	}
}

// Settle liquida una línea de presupuesto al finalizar un proyecto: descuenta
// la cantidad real usada del stock (piso en cero) y libera la reserva original.
func (m *Material) Settle(actualUsed, originalBudgeted int64) {
	m.Stock -= actualUsed
	if m.Stock < 0 {
		m.Stock = 0
	}
	m.Release(originalBudgeted)
}
