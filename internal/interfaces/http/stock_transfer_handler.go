package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// StockTransferHandler maneja las peticiones HTTP de traslados entre bodegas.
type StockTransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewStockTransferHandler construye el handler.
func NewStockTransferHandler(uc *inventory.TransferUseCase) *StockTransferHandler {
	return &StockTransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado entre bodegas (estado pending)
// @Tags         stock-transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockTransferRequest  true  "Datos del traslado"
// @Success      201   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Bodega origen igual a destino"
// @Router       /api/stock-transfers [post]
func (h *StockTransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("cuerpo inválido"))
	}
	t, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockTransferResponse(t))
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id} [get]
func (h *StockTransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockTransferResponse(t))
}

// List godoc
// @Summary      Listar traslados
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        page               query  int     false  "Página"  default(1)
// @Param        limit              query  int     false  "Tamaño de página"  default(20)
// @Param        status             query  string  false  "Filtrar por estado"
// @Param        from_warehouse_id  query  string  false  "Filtrar por bodega origen"
// @Param        to_warehouse_id    query  string  false  "Filtrar por bodega destino"
// @Success      200  {object}  dto.ListResponse[dto.StockTransferResponse]
// @Router       /api/stock-transfers [get]
func (h *StockTransferHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	filter := repository.StockTransferFilter{
		Status:          c.Query("status"),
		FromWarehouseID: c.Query("from_warehouse_id"),
		ToWarehouseID:   c.Query("to_warehouse_id"),
	}
	list, total, err := h.uc.List(c.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.StockTransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toStockTransferResponse(t))
	}
	return c.JSON(dto.ListResponse[dto.StockTransferResponse]{
		Data:       items,
		Pagination: dto.NewPagination(total, page),
	})
}

// Process godoc
// @Summary      Ejecutar el traslado (muta inventario en ambas bodegas)
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      409  {object}  dto.ErrorResponse  "Estado no procesable o stock insuficiente"
// @Router       /api/stock-transfers/{id}/process [post]
func (h *StockTransferHandler) Process(c *fiber.Ctx) error {
	t, err := h.uc.Process(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockTransferResponse(t))
}

// Cancel godoc
// @Summary      Cancelar el traslado (sin efectos de inventario)
// @Tags         stock-transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      409  {object}  dto.ErrorResponse  "Estado no cancelable"
// @Router       /api/stock-transfers/{id}/cancel [post]
func (h *StockTransferHandler) Cancel(c *fiber.Ctx) error {
	t, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toStockTransferResponse(t))
}

func toStockTransferResponse(t *entity.StockTransfer) *dto.StockTransferResponse {
	items := make([]dto.StockTransferItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.StockTransferItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return &dto.StockTransferResponse{
		ID:              t.ID,
		Number:          t.Number,
		FromWarehouseID: t.FromWarehouseID,
		ToWarehouseID:   t.ToWarehouseID,
		Status:          t.Status,
		Notes:           t.Notes,
		Items:           items,
		CompletedAt:     t.CompletedAt,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
