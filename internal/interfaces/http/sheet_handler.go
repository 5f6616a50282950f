package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/backoffice-api/internal/application/dto"
	"github.com/taller-pro/backoffice-api/internal/application/sheets"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// SheetHandler maneja las peticiones HTTP de hojas de compra (protegido).
type SheetHandler struct {
	uc *sheets.SheetUseCase
}

// NewSheetHandler construye el handler.
func NewSheetHandler(uc *sheets.SheetUseCase) *SheetHandler {
	return &SheetHandler{uc: uc}
}

// Create godoc
// @Summary      Crear hoja de compra (recepción de mercancía)
// @Tags         sheets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSheetRequest  true  "invoice_number, date, lines"
// @Success      201   {object}  dto.SheetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sheets [post]
func (h *SheetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSheetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := sheets.SheetInput{InvoiceNumber: in.InvoiceNumber}
	if in.Date != nil {
		input.Date = *in.Date
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, entity.SheetLine{
			ItemID:           l.ItemID,
			ExpectedQuantity: l.ExpectedQuantity,
			UnitCost:         l.UnitCost,
		})
	}
	sheet, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSheetResponse(sheet))
}

// List godoc
// @Summary      Listar/buscar hojas de compra
// @Tags         sheets
// @Security     Bearer
// @Produce      json
// @Param        invoice_number  query  string  false  "Prefijo del número de factura"
// @Param        from            query  string  false  "Fecha mínima (RFC3339 o YYYY-MM-DD)"
// @Param        to              query  string  false  "Fecha máxima (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.SheetListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sheets [get]
func (h *SheetHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.SheetFilter{
		InvoiceNumber: c.Query("invoice_number"),
		Limit:         page.Limit,
		Offset:        page.Offset,
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
	items := make([]dto.SheetResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSheetResponse(s))
	}
	return c.JSON(dto.SheetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetByID godoc
// @Summary      Obtener hoja de compra por ID
// @Tags         sheets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Sheet ID"
// @Success      200  {object}  dto.SheetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sheets/{id} [get]
func (h *SheetHandler) GetByID(c *fiber.Ctx) error {
	sheet, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSheetResponse(sheet))
}

// GetProgress godoc
// @Summary      Avance derivado de la hoja
// @Description  transferred/remaining por línea, recalculado desde los traslados vinculados.
// @Tags         sheets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Sheet ID"
// @Success      200  {object}  dto.SheetProgressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sheets/{id}/progress [get]
func (h *SheetHandler) GetProgress(c *fiber.Ctx) error {
	sheetID := c.Params("id")
	progress, err := h.uc.GetProgress(c.Context(), sheetID)
	if err != nil {
		return respondError(c, err)
	}
	lines := make([]dto.SheetLineProgressDTO, 0, len(progress))
	for _, p := range progress {
		lines = append(lines, dto.SheetLineProgressDTO{
			ItemID:           p.ItemID,
			ExpectedQuantity: p.ExpectedQuantity,
			Transferred:      p.Transferred,
			Remaining:        p.Remaining,
		})
	}
	return c.JSON(dto.SheetProgressResponse{SheetID: sheetID, Lines: lines})
}

// RecordTransfer godoc
// @Summary      Registrar traslado vinculado a la hoja
// @Tags         sheets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "Sheet ID"
// @Param        body  body  dto.TransferRequest  true  "traslado; sheet_id se toma de la ruta"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sheets/{id}/transfers [post]
func (h *SheetHandler) RecordTransfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	transfer, err := h.uc.RecordTransfer(c.Context(), c.Params("id"), toTransferInput(in, GetUserID(c)))
	if err != nil {
		return respondError(c, err)
	}
	transfersCreatedTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
}

// Assign godoc
// @Summary      Asignar técnico de verificación a la hoja
// @Tags         sheets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Sheet ID"
// @Param        body  body  dto.AssignSheetRequest  true  "technician_id, notes opcional"
// @Success      200   {object}  dto.SheetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sheets/{id}/assign [post]
func (h *SheetHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignSheetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sheet, err := h.uc.AssignTechnician(c.Context(), c.Params("id"), in.TechnicianID, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSheetResponse(sheet))
}

// UpdateStatus godoc
// @Summary      Actualizar estado de la asignación de la hoja
// @Tags         sheets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "Sheet ID"
// @Param        body  body  dto.UpdateSheetStatusRequest  true  "status: assigned | in-progress | completed"
// @Success      200   {object}  dto.SheetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sheets/{id}/status [put]
func (h *SheetHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSheetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sheet, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSheetResponse(sheet))
}
