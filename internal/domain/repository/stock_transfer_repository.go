package repository

import "github.com/jhoicas/Gestion-api/internal/domain/entity"

// StockTransferFilter filtros del listado de traslados.
type StockTransferFilter struct {
	Status          string
	FromWarehouseID string
	ToWarehouseID   string
}

// StockTransferRepository define el puerto de persistencia para traslados.
type StockTransferRepository interface {
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	// GetForUpdate carga cabecera y líneas bloqueando la fila de cabecera,
	// para que procesar y cancelar el mismo traslado no compitan.
	GetForUpdate(id string) (*entity.StockTransfer, error)
	UpdateStatus(transfer *entity.StockTransfer) error
	List(filter StockTransferFilter, limit, offset int) ([]*entity.StockTransfer, int, error)
}
