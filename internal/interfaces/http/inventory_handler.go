package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// InventoryHandler maneja existencias, movimientos, ajustes y el reporte
// de reposición.
type InventoryHandler struct {
	queryUC      *inventory.QueryUseCase
	adjustmentUC *inventory.AdjustmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(queryUC *inventory.QueryUseCase, adjustmentUC *inventory.AdjustmentUseCase) *InventoryHandler {
	return &InventoryHandler{queryUC: queryUC, adjustmentUC: adjustmentUC}
}

// Levels godoc
// @Summary      Consultar existencias por producto y bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Tamaño de página"  default(20)
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Success      200  {object}  dto.ListResponse[dto.InventoryRecordResponse]
// @Router       /api/inventory [get]
func (h *InventoryHandler) Levels(c *fiber.Ctx) error {
	filter := repository.InventoryFilter{
		WarehouseID: c.Query("warehouse_id"),
		ProductID:   c.Query("product_id"),
	}
	out, err := h.queryUC.Levels(c.Context(), filter, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Consultar el ledger de movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Tamaño de página"  default(20)
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        type          query  string  false  "Tipo de movimiento"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Success      200  {object}  dto.ListResponse[dto.StockMovementResponse]
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		WarehouseID:  c.Query("warehouse_id"),
		ProductID:    c.Query("product_id"),
		MovementType: c.Query("type"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("from inválido: se espera RFC3339"))
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("to inválido: se espera RFC3339"))
		}
		filter.To = &t
	}
	out, err := h.queryUC.Movements(c.Context(), filter, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Reporte de productos bajo el umbral de reposición
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Limitar a una bodega"
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.queryUC.LowStock(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Registrar un ajuste manual de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustmentRequest  true  "Datos del ajuste"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente o bodega inactiva"
// @Router       /api/stock-adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.StockAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("cuerpo inválido"))
	}
	if err := h.adjustmentUC.Adjust(c.Context(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
