package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/backoffice-api/internal/application/assignments"
	"github.com/taller-pro/backoffice-api/internal/application/dto"
)

// AssignmentHandler maneja las peticiones HTTP del registro de asignaciones
// artículo→técnico (protegido).
type AssignmentHandler struct {
	uc *assignments.RegistryUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *assignments.RegistryUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar artículos a un técnico
// @Description  Une los artículos al conjunto del técnico. Falla con 409 si alguno ya pertenece a otro técnico.
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignItemsRequest  true  "technician_id e items"
// @Success      200   {object}  dto.AssignmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]assignments.ItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, assignments.ItemInput{ItemID: it.ItemID, Comment: it.Comment})
	}
	if err := h.uc.AssignItems(c.Context(), in.TechnicianID, items); err != nil {
		return respondError(c, err)
	}
	assignment, err := h.uc.GetByTechnician(c.Context(), in.TechnicianID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAssignmentResponse(assignment))
}

// Unassign godoc
// @Summary      Retirar artículos del conjunto de un técnico
// @Description  Artículos que no pertenecen al técnico se ignoran.
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.UnassignItemsRequest  true  "technician_id e item_ids"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/assignments/items [delete]
func (h *AssignmentHandler) Unassign(c *fiber.Ctx) error {
	var in dto.UnassignItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UnassignItems(c.Context(), in.TechnicianID, in.ItemIDs); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateComment godoc
// @Summary      Actualizar el comentario de un artículo asignado
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.UpdateCommentRequest  true  "technician_id, item_id, comment"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assignments/comment [put]
func (h *AssignmentHandler) UpdateComment(c *fiber.Ctx) error {
	var in dto.UpdateCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateComment(c.Context(), in.TechnicianID, in.ItemID, in.Comment); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar asignaciones
// @Description  Con technician_id devuelve solo el conjunto de ese técnico.
// @Tags         assignments
// @Security     Bearer
// @Produce      json
// @Param        technician_id  query  string  false  "Filtrar por técnico"
// @Success      200  {array}  dto.AssignmentResponse
// @Router       /api/assignments [get]
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	if technicianID := c.Query("technician_id"); technicianID != "" {
		assignment, err := h.uc.GetByTechnician(c.Context(), technicianID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON([]dto.AssignmentResponse{toAssignmentResponse(assignment)})
	}
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssignmentResponse(a))
	}
	return c.JSON(out)
}
