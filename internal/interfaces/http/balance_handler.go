package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/backoffice-api/internal/application/dto"
	"github.com/taller-pro/backoffice-api/internal/application/usecase"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
)

// BalanceHandler lecturas del ledger de saldos por ubicación (protegido).
type BalanceHandler struct {
	uc *usecase.BalanceUseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(uc *usecase.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{uc: uc}
}

// List godoc
// @Summary      Consultar saldos
// @Description  item_id + location: un saldo puntual. Solo item_id: las tres ubicaciones. Solo location: paginado.
// @Tags         balances
// @Security     Bearer
// @Produce      json
// @Param        item_id   query  string  false  "Artículo"
// @Param        location  query  string  false  "warehouse | store | store2"
// @Success      200  {array}   dto.BalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/balances [get]
func (h *BalanceHandler) List(c *fiber.Ctx) error {
	itemID := c.Query("item_id")
	location := entity.Location(c.Query("location"))

	switch {
	case itemID != "" && location != "":
		balance, err := h.uc.Get(itemID, location)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON([]dto.BalanceResponse{toBalanceResponse(balance)})
	case itemID != "":
		balances, err := h.uc.ListByItem(itemID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toBalanceResponses(balances))
	default:
		var page dto.PageRequest
		if err := c.QueryParser(&page); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
		}
		page.DefaultPage()
		balances, err := h.uc.ListByLocation(location, page.Limit, page.Offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toBalanceResponses(balances))
	}
}

func toBalanceResponse(b *entity.LocationBalance) dto.BalanceResponse {
	return dto.BalanceResponse{
		ItemID:    b.ItemID,
		Location:  string(b.Location),
		Quantity:  b.Quantity,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBalanceResponses(balances []*entity.LocationBalance) []dto.BalanceResponse {
	out := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, toBalanceResponse(b))
	}
	return out
}
