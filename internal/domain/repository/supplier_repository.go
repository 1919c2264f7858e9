package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(search string, limit, offset int) ([]*entity.Supplier, int, error)
	SetActive(id string, active bool) error
}
