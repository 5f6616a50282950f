package usecase

import (
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// ItemUseCase lecturas del catálogo de artículos (colaborador externo).
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*entity.Item, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List lista el catálogo con paginación.
func (uc *ItemUseCase) List(limit, offset int) ([]*entity.Item, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.repo.List(limit, offset)
}
