package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.PurchaseSheetRepository = (*PurchaseSheetRepository)(nil)

// PurchaseSheetRepository hojas de compra en memoria.
type PurchaseSheetRepository struct {
	store *Store
}

// NewPurchaseSheetRepository construye el adaptador sobre el estado compartido.
func NewPurchaseSheetRepository(store *Store) *PurchaseSheetRepository {
	return &PurchaseSheetRepository{store: store}
}

// Create guarda la hoja (recepción de mercancía / seeding).
func (r *PurchaseSheetRepository) Create(s *entity.PurchaseSheet) error {
	if _, ok := r.store.sheets[s.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.sheets[s.ID] = cloneSheet(*s)
	return nil
}

// GetByID devuelve una copia de la hoja; nil si no existe.
func (r *PurchaseSheetRepository) GetByID(id string) (*entity.PurchaseSheet, error) {
	if s, ok := r.store.sheets[id]; ok {
		out := cloneSheet(s)
		return &out, nil
	}
	return nil, nil
}

// List busca por número de factura (prefijo) y rango de fechas.
func (r *PurchaseSheetRepository) List(filter repository.SheetFilter) ([]*entity.PurchaseSheet, error) {
	var list []*entity.PurchaseSheet
	for _, s := range r.store.sheets {
		if filter.InvoiceNumber != "" && !strings.HasPrefix(s.InvoiceNumber, filter.InvoiceNumber) {
			continue
		}
		if filter.From != nil && s.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.Date.After(*filter.To) {
			continue
		}
		out := cloneSheet(s)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

// UpdateAssignment escribe la asignación embebida.
func (r *PurchaseSheetRepository) UpdateAssignment(sheetID string, a *entity.SheetAssignment) error {
	s, ok := r.store.sheets[sheetID]
	if !ok {
		return domain.ErrNotFound
	}
	assignment := *a
	s.Assignment = &assignment
	s.UpdatedAt = time.Now()
	r.store.sheets[sheetID] = s
	return nil
}
