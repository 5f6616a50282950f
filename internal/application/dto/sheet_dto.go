package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SheetLineDTO línea esperada de una hoja de compra.
type SheetLineDTO struct {
	ItemID           string          `json:"item_id"`
	ExpectedQuantity int64           `json:"expected_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// CreateSheetRequest body para POST /api/sheets (recepción de mercancía).
type CreateSheetRequest struct {
	InvoiceNumber string         `json:"invoice_number"`
	Date          *time.Time     `json:"date,omitempty"`
	Lines         []SheetLineDTO `json:"lines"`
}

// SheetAssignmentDTO asignación de verificación embebida.
type SheetAssignmentDTO struct {
	TechnicianID string    `json:"technician_id"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// SheetResponse representación HTTP de una hoja de compra.
type SheetResponse struct {
	ID            string              `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	Date          time.Time           `json:"date"`
	Lines         []SheetLineDTO      `json:"lines"`
	Assignment    *SheetAssignmentDTO `json:"assignment,omitempty"`
}

// SheetListResponse listado paginado de hojas.
type SheetListResponse struct {
	Items []SheetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// SheetLineProgressDTO avance derivado de una línea.
type SheetLineProgressDTO struct {
	ItemID           string `json:"item_id"`
	ExpectedQuantity int64  `json:"expected_quantity"`
	Transferred      int64  `json:"transferred"`
	Remaining        int64  `json:"remaining"`
}

// SheetProgressResponse avance por línea de la hoja.
type SheetProgressResponse struct {
	SheetID string                 `json:"sheet_id"`
	Lines   []SheetLineProgressDTO `json:"lines"`
}

// AssignSheetRequest body para POST /api/sheets/:id/assign.
type AssignSheetRequest struct {
	TechnicianID string `json:"technician_id"`
	Notes        string `json:"notes,omitempty"`
}

// UpdateSheetStatusRequest body para PUT /api/sheets/:id/status.
type UpdateSheetStatusRequest struct {
	Status string  `json:"status"` // assigned | in-progress | completed
	Notes  *string `json:"notes,omitempty"`
}
