package dto

import "time"

// TransferLineDTO línea de traslado en requests y responses.
type TransferLineDTO struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// TransferRequest body para POST /api/transfers y PUT /api/transfers/:id.
type TransferRequest struct {
	Date         *time.Time        `json:"date,omitempty"`
	From         string            `json:"from"`
	To           string            `json:"to"`
	Lines        []TransferLineDTO `json:"lines"`
	TechnicianID string            `json:"technician_id,omitempty"`
	WorkType     string            `json:"work_type,omitempty"` // repair | test
	SheetID      string            `json:"sheet_id,omitempty"`
}

// VerifyTransferRequest body para POST /api/transfers/:id/verify.
type VerifyTransferRequest struct {
	Status string `json:"status"` // verified | discrepancy
	Notes  string `json:"notes,omitempty"`
}

// TransferResponse representación HTTP de un traslado.
type TransferResponse struct {
	ID                string            `json:"id"`
	Date              time.Time         `json:"date"`
	From              string            `json:"from"`
	To                string            `json:"to"`
	Lines             []TransferLineDTO `json:"lines"`
	TechnicianID      string            `json:"technician_id,omitempty"`
	WorkType          string            `json:"work_type,omitempty"`
	SheetID           string            `json:"sheet_id,omitempty"`
	Verified          bool              `json:"verified"`
	Status            string            `json:"status"`
	VerificationNotes string            `json:"verification_notes,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
