package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
)

// writeError traduce los errores de dominio a códigos HTTP y responde el
// cuerpo estándar {success:false, message}.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = fiber.StatusForbidden
	}
	if status == fiber.StatusInternalServerError {
		// No filtrar detalles internos al cliente.
		return c.Status(status).JSON(dto.Error("error interno"))
	}
	return c.Status(status).JSON(dto.Error(err.Error()))
}
