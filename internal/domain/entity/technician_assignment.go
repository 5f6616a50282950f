package entity

import "time"

// AssignedItem es un artículo asignado a un técnico con su comentario.
type AssignedItem struct {
	ItemID     string
	Comment    string
	AssignedAt time.Time
}

// TechnicianAssignment agrupa los artículos asignados a un técnico.
// Invariante: un artículo pertenece a lo sumo a un técnico a la vez.
type TechnicianAssignment struct {
	TechnicianID string
	Items        []AssignedItem
}
