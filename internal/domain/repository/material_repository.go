package repository

import "github.com/tu-usuario/stockcontrol-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material (DIP).
// El motor de reservas es el único que escribe Stock y Reserved.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// GetForUpdate obtiene el material bloqueando su fila hasta el fin de la
	// transacción en curso (serializa el read-modify-write por material).
	GetForUpdate(id string) (*entity.Material, error)
	Update(material *entity.Material) error
	List() ([]*entity.Material, error)
	Delete(id string) error
}
