package memory

import (
	"sort"

	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepository)(nil)

// TransferRepository traslados en memoria.
type TransferRepository struct {
	store *Store
}

// NewTransferRepository construye el adaptador sobre el estado compartido.
func NewTransferRepository(store *Store) *TransferRepository {
	return &TransferRepository{store: store}
}

// Create guarda el traslado.
func (r *TransferRepository) Create(t *entity.Transfer) error {
	r.store.transfers[t.ID] = cloneTransfer(*t)
	return nil
}

// GetByID devuelve una copia del traslado; nil si no existe.
func (r *TransferRepository) GetByID(id string) (*entity.Transfer, error) {
	if t, ok := r.store.transfers[id]; ok {
		out := cloneTransfer(t)
		return &out, nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID (transacción ya serializada).
func (r *TransferRepository) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

// Update reescribe el traslado.
func (r *TransferRepository) Update(t *entity.Transfer) error {
	r.store.transfers[t.ID] = cloneTransfer(*t)
	return nil
}

// Delete elimina el traslado.
func (r *TransferRepository) Delete(id string) error {
	delete(r.store.transfers, id)
	return nil
}

// List filtra por fecha, ubicación (origen o destino) y estado; ordena por
// fecha descendente.
func (r *TransferRepository) List(filter repository.TransferFilter) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for _, t := range r.store.transfers {
		if filter.From != nil && t.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && t.Date.After(*filter.To) {
			continue
		}
		if filter.Location != "" && t.From != filter.Location && t.To != filter.Location {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out := cloneTransfer(t)
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ListBySheet devuelve los traslados que referencian la hoja, por fecha.
func (r *TransferRepository) ListBySheet(sheetID string) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for _, t := range r.store.transfers {
		if t.SheetID == sheetID {
			out := cloneTransfer(t)
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}
