package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search     string // busca en sku y nombre
	OnlyActive bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	// SetActive baja/alta lógica; los productos nunca se borran físicamente.
	SetActive(id string, active bool) error
}
