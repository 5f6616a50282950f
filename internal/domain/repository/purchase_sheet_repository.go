package repository

import (
	"time"

	"github.com/taller-pro/backoffice-api/internal/domain/entity"
)

// SheetFilter filtros de búsqueda de hojas de compra.
type SheetFilter struct {
	InvoiceNumber string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// PurchaseSheetRepository define el puerto de persistencia para hojas de compra.
// Create lo usa el colaborador de recepción de mercancía (y el seeding);
// el núcleo solo lee y muta la asignación.
type PurchaseSheetRepository interface {
	Create(s *entity.PurchaseSheet) error
	GetByID(id string) (*entity.PurchaseSheet, error)
	List(filter SheetFilter) ([]*entity.PurchaseSheet, error)
	UpdateAssignment(sheetID string, a *entity.SheetAssignment) error
}
