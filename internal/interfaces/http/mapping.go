package http

import (
	"github.com/taller-pro/backoffice-api/internal/application/dto"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
)

// Conversión entity → DTO. Los handlers nunca exponen entidades directamente.

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	lines := make([]dto.TransferLineDTO, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, dto.TransferLineDTO{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return dto.TransferResponse{
		ID:                t.ID,
		Date:              t.Date,
		From:              string(t.From),
		To:                string(t.To),
		Lines:             lines,
		TechnicianID:      t.TechnicianID,
		WorkType:          t.WorkType,
		SheetID:           t.SheetID,
		Verified:          t.Verified,
		Status:            t.Status,
		VerificationNotes: t.VerificationNotes,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func toTransferInput(in dto.TransferRequest, userID string) transfers.TransferInput {
	lines := make([]transfers.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, transfers.LineInput{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	input := transfers.TransferInput{
		From:         entity.Location(in.From),
		To:           entity.Location(in.To),
		Lines:        lines,
		TechnicianID: in.TechnicianID,
		WorkType:     in.WorkType,
		SheetID:      in.SheetID,
		UserID:       userID,
	}
	if in.Date != nil {
		input.Date = *in.Date
	}
	return input
}

func toSheetResponse(s *entity.PurchaseSheet) dto.SheetResponse {
	lines := make([]dto.SheetLineDTO, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SheetLineDTO{
			ItemID:           l.ItemID,
			ExpectedQuantity: l.ExpectedQuantity,
			UnitCost:         l.UnitCost,
		})
	}
	out := dto.SheetResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		Date:          s.Date,
		Lines:         lines,
	}
	if s.Assignment != nil {
		out.Assignment = &dto.SheetAssignmentDTO{
			TechnicianID: s.Assignment.TechnicianID,
			Status:       s.Assignment.Status,
			Notes:        s.Assignment.Notes,
			AssignedAt:   s.Assignment.AssignedAt,
		}
	}
	return out
}

func toAssignmentResponse(a *entity.TechnicianAssignment) dto.AssignmentResponse {
	items := make([]dto.AssignedItemResponse, 0, len(a.Items))
	for _, it := range a.Items {
		items = append(items, dto.AssignedItemResponse{
			ItemID:     it.ItemID,
			Comment:    it.Comment,
			AssignedAt: it.AssignedAt,
		})
	}
	return dto.AssignmentResponse{TechnicianID: a.TechnicianID, Items: items}
}
