package memory

import (
	"sort"

	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepository)(nil)

// ItemRepository catálogo de artículos en memoria.
type ItemRepository struct {
	store *Store
}

// NewItemRepository construye el adaptador sobre el estado compartido.
func NewItemRepository(store *Store) *ItemRepository {
	return &ItemRepository{store: store}
}

// GetByID devuelve una copia del artículo; nil si no existe.
func (r *ItemRepository) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.store.items[id]; ok {
		out := it
		return &out, nil
	}
	return nil, nil
}

// List lista el catálogo ordenado por SKU.
func (r *ItemRepository) List(limit, offset int) ([]*entity.Item, error) {
	var list []*entity.Item
	for _, it := range r.store.items {
		out := it
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return paginate(list, limit, offset), nil
}

// Upsert inserta o actualiza un artículo.
func (r *ItemRepository) Upsert(item *entity.Item) error {
	r.store.items[item.ID] = *item
	return nil
}
