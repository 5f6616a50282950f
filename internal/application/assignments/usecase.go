package assignments

import (
	"context"
	"time"

	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// RegistryUseCase es el registro de asignaciones: artículos entregados en
// exclusiva a un técnico. La exclusividad se decide contra el índice
// artículo→técnico dentro de la misma transacción que escribe, nunca con un
// escaneo aparte.
type RegistryUseCase struct {
	tx   RegistryTxRunner
	repo repository.AssignmentRepository
}

// NewRegistryUseCase construye el registro. repo se usa solo para lecturas.
func NewRegistryUseCase(tx RegistryTxRunner, repo repository.AssignmentRepository) *RegistryUseCase {
	return &RegistryUseCase{tx: tx, repo: repo}
}

// ItemInput artículo a asignar con su comentario opcional.
type ItemInput struct {
	ItemID  string
	Comment string
}

// AssignItems asigna artículos a un técnico con semántica de unión idempotente:
// los que ya tiene se ignoran. Si cualquiera de los artículos pertenece a OTRO
// técnico, la llamada completa falla con ItemAssignedError (nombrando artículo
// y técnico en conflicto) y no se confirma ninguna asignación parcial.
func (uc *RegistryUseCase) AssignItems(ctx context.Context, technicianID string, items []ItemInput) error {
	if technicianID == "" || len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ItemID == "" {
			return domain.ErrInvalidInput
		}
	}

	now := time.Now()
	return uc.tx.RunRegistry(ctx, func(repo repository.AssignmentRepository) error {
		toAdd := make([]entity.AssignedItem, 0, len(items))
		seen := make(map[string]bool, len(items))
		for _, it := range items {
			if seen[it.ItemID] {
				continue
			}
			seen[it.ItemID] = true

			owner, err := repo.GetOwner(it.ItemID)
			if err != nil {
				return err
			}
			if owner != "" && owner != technicianID {
				return &domain.ItemAssignedError{ItemID: it.ItemID, TechnicianID: owner}
			}
			if owner == technicianID {
				continue // ya asignado a este técnico: no-op
			}
			toAdd = append(toAdd, entity.AssignedItem{
				ItemID:     it.ItemID,
				Comment:    it.Comment,
				AssignedAt: now,
			})
		}
		if len(toAdd) == 0 {
			return nil
		}
		return repo.AddItems(technicianID, toAdd)
	})
}

// UnassignItems retira artículos del conjunto del técnico; los IDs que no
// estén asignados a él se ignoran.
func (uc *RegistryUseCase) UnassignItems(ctx context.Context, technicianID string, itemIDs []string) error {
	if technicianID == "" || len(itemIDs) == 0 {
		return domain.ErrInvalidInput
	}
	return uc.tx.RunRegistry(ctx, func(repo repository.AssignmentRepository) error {
		return repo.RemoveItems(technicianID, itemIDs)
	})
}

// UpdateComment actualiza el comentario de un artículo asignado al técnico.
// Falla con ErrNotFound si el artículo no está en su conjunto.
func (uc *RegistryUseCase) UpdateComment(ctx context.Context, technicianID, itemID, comment string) error {
	if technicianID == "" || itemID == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.RunRegistry(ctx, func(repo repository.AssignmentRepository) error {
		return repo.UpdateComment(technicianID, itemID, comment)
	})
}

// GetByTechnician devuelve el conjunto asignado a un técnico (vacío si no tiene).
func (uc *RegistryUseCase) GetByTechnician(ctx context.Context, technicianID string) (*entity.TechnicianAssignment, error) {
	if technicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	assignment, err := uc.repo.GetByTechnician(technicianID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return &entity.TechnicianAssignment{TechnicianID: technicianID}, nil
	}
	return assignment, nil
}

// List devuelve todas las asignaciones vigentes.
func (uc *RegistryUseCase) List(ctx context.Context) ([]*entity.TechnicianAssignment, error) {
	return uc.repo.List()
}
