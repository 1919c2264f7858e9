package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/purchasing"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// PurchaseOrderHandler maneja las peticiones HTTP de órdenes de compra.
type PurchaseOrderHandler struct {
	uc *purchasing.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (estado draft)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("cuerpo inválido"))
	}
	po, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(po))
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Tamaño de página"  default(20)
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        search       query  string  false  "Busca en número y notas"
// @Success      200  {object}  dto.ListResponse[dto.PurchaseOrderResponse]
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	filter := repository.PurchaseOrderFilter{
		Status:     c.Query("status"),
		SupplierID: c.Query("supplier_id"),
		Search:     c.Query("search"),
	}
	list, total, err := h.uc.List(c.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, *toPurchaseOrderResponse(po))
	}
	return c.JSON(dto.ListResponse[dto.PurchaseOrderResponse]{
		Data:       items,
		Pagination: dto.NewPagination(total, page),
	})
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden (draft→sent→confirmed, o cancelled)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdatePOStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      409   {object}  dto.ErrorResponse  "Transición ilegal"
// @Router       /api/purchase-orders/{id}/status [put]
func (h *PurchaseOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdatePOStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("cuerpo inválido"))
	}
	po, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// Receive godoc
// @Summary      Recibir mercancía de la orden (parcial o total)
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ReceivePORequest  true  "Cantidades recibidas por línea"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse  "Sobre-recepción de una línea"
// @Failure      409   {object}  dto.ErrorResponse  "Estado no recibible"
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("cuerpo inválido"))
	}
	po, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			QuantityReceived: it.QuantityReceived,
			UnitPrice:        it.UnitPrice,
			TaxRate:          it.TaxRate,
		})
	}
	return &dto.PurchaseOrderResponse{
		ID:           po.ID,
		Number:       po.Number,
		SupplierID:   po.SupplierID,
		Status:       po.Status,
		Currency:     po.Currency,
		OrderDate:    po.OrderDate,
		ExpectedDate: po.ExpectedDate,
		Subtotal:     po.Subtotal,
		TaxTotal:     po.TaxTotal,
		GrandTotal:   po.GrandTotal,
		Notes:        po.Notes,
		Items:        items,
		CreatedAt:    po.CreatedAt,
		UpdatedAt:    po.UpdatedAt,
	}
}
