package repository

import "github.com/taller-pro/backoffice-api/internal/domain/entity"

// ItemRepository define el puerto de lectura del catálogo de artículos.
// Upsert existe para el colaborador de catálogo y para seeding.
type ItemRepository interface {
	GetByID(id string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Upsert(item *entity.Item) error
}
