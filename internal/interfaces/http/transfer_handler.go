package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/backoffice-api/internal/application/dto"
	"github.com/taller-pro/backoffice-api/internal/application/printing"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// TransferHandler maneja las peticiones HTTP de traslados (protegido).
type TransferHandler struct {
	uc    *transfers.TransferUseCase
	print *printing.PrintUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfers.TransferUseCase, print *printing.PrintUseCase) *TransferHandler {
	return &TransferHandler{uc: uc, print: print}
}

// Create godoc
// @Summary      Crear traslado entre ubicaciones
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "from, to, lines; technician_id/work_type/sheet_id opcionales"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.Create(c.Context(), toTransferInput(in, GetUserID(c)))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			insufficientStockTotal.Inc()
		}
		return respondError(c, err)
	}
	transfersCreatedTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
}

// List godoc
// @Summary      Listar traslados
// @Description  Filtros: from/to (fecha), location (origen o destino), status.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        from      query  string  false  "Fecha mínima (RFC3339 o YYYY-MM-DD)"
// @Param        to        query  string  false  "Fecha máxima (RFC3339 o YYYY-MM-DD)"
// @Param        location  query  string  false  "warehouse | store | store2"
// @Param        status    query  string  false  "pending | verified | discrepancy"
// @Success      200  {object}  dto.TransferListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.TransferFilter{
		Location: entity.Location(c.Query("location")),
		Status:   c.Query("status"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	var err error
	if filter.From, err = parseDateQuery(c.Query("from")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'from' inválida"})
	}
	if filter.To, err = parseDateQuery(c.Query("to")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha 'to' inválida"})
	}

	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransferResponse(t))
	}
	return c.JSON(dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Transfer ID"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// Update godoc
// @Summary      Editar traslado (reconcilia el ledger)
// @Description  Aplica el efecto neto entre las líneas viejas y las nuevas en una sola transacción.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Transfer ID"
// @Param        body  body  dto.TransferRequest  true  "payload completo del traslado"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [put]
func (h *TransferHandler) Update(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.Update(c.Context(), c.Params("id"), toTransferInput(in, GetUserID(c)))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			insufficientStockTotal.Inc()
		}
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(transfer))
}

// Delete godoc
// @Summary      Eliminar traslado (revierte el ledger)
// @Tags         transfers
// @Security     Bearer
// @Param        id  path  string  true  "Transfer ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			insufficientStockTotal.Inc()
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Verify godoc
// @Summary      Verificar traslado (una sola vez)
// @Description  Marca el traslado como verified o discrepancy. La primera verificación es definitiva.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Transfer ID"
// @Param        body  body  dto.VerifyTransferRequest  true  "status: verified | discrepancy"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/verify [post]
func (h *TransferHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.Verify(c.Context(), c.Params("id"), in.Status, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	transfersVerifiedTotal.WithLabelValues(transfer.Status).Inc()
	return c.JSON(toTransferResponse(transfer))
}

// VerificationSheet godoc
// @Summary      Hoja de verificación del traslado (PDF)
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "Transfer ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/verification-sheet [get]
func (h *TransferHandler) VerificationSheet(c *fiber.Ctx) error {
	pdfBytes, err := h.print.VerificationSheet(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="verificacion-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}

// parseDateQuery acepta RFC3339 o fecha simple YYYY-MM-DD; vacío = sin filtro.
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
