package dto

import "time"

// AssignItemDTO artículo con comentario en requests de asignación.
type AssignItemDTO struct {
	ItemID  string `json:"item_id"`
	Comment string `json:"comment,omitempty"`
}

// AssignItemsRequest body para POST /api/assignments.
type AssignItemsRequest struct {
	TechnicianID string          `json:"technician_id"`
	Items        []AssignItemDTO `json:"items"`
}

// UnassignItemsRequest body para DELETE /api/assignments/items.
type UnassignItemsRequest struct {
	TechnicianID string   `json:"technician_id"`
	ItemIDs      []string `json:"item_ids"`
}

// UpdateCommentRequest body para PUT /api/assignments/comment.
type UpdateCommentRequest struct {
	TechnicianID string `json:"technician_id"`
	ItemID       string `json:"item_id"`
	Comment      string `json:"comment"`
}

// AssignedItemResponse artículo asignado en responses.
type AssignedItemResponse struct {
	ItemID     string    `json:"item_id"`
	Comment    string    `json:"comment,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
}

// AssignmentResponse conjunto asignado a un técnico.
type AssignmentResponse struct {
	TechnicianID string                 `json:"technician_id"`
	Items        []AssignedItemResponse `json:"items"`
}
