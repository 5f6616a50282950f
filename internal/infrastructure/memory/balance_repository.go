package memory

import (
	"sort"

	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepository)(nil)

// BalanceRepository saldos por (artículo, ubicación) en memoria.
type BalanceRepository struct {
	store *Store
}

// NewBalanceRepository construye el adaptador sobre el estado compartido.
func NewBalanceRepository(store *Store) *BalanceRepository {
	return &BalanceRepository{store: store}
}

// Get devuelve el saldo actual; saldo cero si nunca se movió el artículo ahí.
func (r *BalanceRepository) Get(itemID string, location entity.Location) (*entity.LocationBalance, error) {
	if b, ok := r.store.balances[balanceKey{itemID, location}]; ok {
		out := b
		return &out, nil
	}
	return &entity.LocationBalance{ItemID: itemID, Location: location}, nil
}

// GetForUpdate en memoria equivale a Get: la transacción completa ya está
// serializada por el TxRunner.
func (r *BalanceRepository) GetForUpdate(itemID string, location entity.Location) (*entity.LocationBalance, error) {
	return r.Get(itemID, location)
}

// Upsert escribe el saldo.
func (r *BalanceRepository) Upsert(balance *entity.LocationBalance) error {
	r.store.balances[balanceKey{balance.ItemID, balance.Location}] = *balance
	return nil
}

// ListByItem devuelve los saldos del artículo ordenados por ubicación.
func (r *BalanceRepository) ListByItem(itemID string) ([]*entity.LocationBalance, error) {
	var list []*entity.LocationBalance
	for k, b := range r.store.balances {
		if k.ItemID == itemID {
			out := b
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Location < list[j].Location })
	return list, nil
}

// ListByLocation lista saldos de la ubicación ordenados por artículo.
func (r *BalanceRepository) ListByLocation(location entity.Location, limit, offset int) ([]*entity.LocationBalance, error) {
	var list []*entity.LocationBalance
	for k, b := range r.store.balances {
		if k.Location == location {
			out := b
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ItemID < list[j].ItemID })
	return paginate(list, limit, offset), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
