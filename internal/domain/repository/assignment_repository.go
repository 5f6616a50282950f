package repository

import "github.com/taller-pro/backoffice-api/internal/domain/entity"

// AssignmentRepository define el puerto del registro de asignaciones de
// artículos a técnicos. GetOwner es el índice artículo→técnico que sustituye
// los escaneos lineales del comportamiento original.
type AssignmentRepository interface {
	// GetOwner devuelve el técnico que tiene asignado el artículo, o "" si libre.
	GetOwner(itemID string) (string, error)
	AddItems(technicianID string, items []entity.AssignedItem) error
	RemoveItems(technicianID string, itemIDs []string) error
	UpdateComment(technicianID, itemID, comment string) error
	GetByTechnician(technicianID string) (*entity.TechnicianAssignment, error)
	List() ([]*entity.TechnicianAssignment, error)
}
