package repository

import "github.com/taller-pro/backoffice-api/internal/domain/entity"

// BalanceRepository define el puerto para consultar/actualizar saldos por
// artículo+ubicación. Usado dentro de transacciones para garantizar consistencia.
type BalanceRepository interface {
	Get(itemID string, location entity.Location) (*entity.LocationBalance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(itemID string, location entity.Location) (*entity.LocationBalance, error)
	Upsert(balance *entity.LocationBalance) error
	ListByItem(itemID string) ([]*entity.LocationBalance, error)
	ListByLocation(location entity.Location, limit, offset int) ([]*entity.LocationBalance, error)
}
