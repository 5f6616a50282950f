package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/backoffice-api/internal/application/dto"
	"github.com/taller-pro/backoffice-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP. Centralizado para
// que todos los handlers usen los mismos códigos.
func respondError(c *fiber.Ctx, err error) error {
	var assigned *domain.ItemAssignedError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.As(err, &assigned):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_ALREADY_ASSIGNED", Message: assigned.Error()})
	case errors.Is(err, domain.ErrItemAlreadyAssigned):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ITEM_ALREADY_ASSIGNED", Message: "artículo ya asignado a otro técnico"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyVerified):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_VERIFIED", Message: "el traslado ya fue verificado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
