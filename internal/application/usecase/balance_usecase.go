package usecase

import (
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// BalanceUseCase lecturas de saldos por ubicación (alimenta los selectores de
// "cantidad disponible" de la UI).
type BalanceUseCase struct {
	repo repository.BalanceRepository
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(repo repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{repo: repo}
}

// Get devuelve el saldo actual de un artículo en una ubicación (0 si nunca se
// movió).
func (uc *BalanceUseCase) Get(itemID string, location entity.Location) (*entity.LocationBalance, error) {
	if itemID == "" || !location.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.Get(itemID, location)
}

// ListByItem devuelve los saldos de un artículo en las tres ubicaciones.
func (uc *BalanceUseCase) ListByItem(itemID string) ([]*entity.LocationBalance, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.repo.ListByItem(itemID)
}

// ListByLocation lista los saldos de una ubicación con paginación.
func (uc *BalanceUseCase) ListByLocation(location entity.Location, limit, offset int) ([]*entity.LocationBalance, error) {
	if !location.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	return uc.repo.ListByLocation(location, limit, offset)
}
