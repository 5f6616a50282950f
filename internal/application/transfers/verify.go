package transfers

import (
	"context"
	"time"

	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// Verify registra la verificación física de un traslado. Operación de un solo
// disparo: exige estado pending y lo mueve a verified o discrepancy, estados
// terminales. Un segundo intento devuelve ErrAlreadyVerified y no toca el
// resultado registrado por el primero.
func (uc *TransferUseCase) Verify(ctx context.Context, id, status, notes string) (*entity.Transfer, error) {
	switch status {
	case entity.TransferStatusVerified, entity.TransferStatusDiscrepancy:
	default:
		return nil, domain.ErrInvalidInput
	}

	var verified *entity.Transfer
	err := uc.tx.Run(ctx, func(
		transferRepo repository.TransferRepository,
		_ repository.BalanceRepository,
	) error {
		current, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.Status != entity.TransferStatusPending {
			return domain.ErrAlreadyVerified
		}
		current.Verified = true
		current.Status = status
		current.VerificationNotes = notes
		current.UpdatedAt = time.Now()
		verified = current
		return transferRepo.Update(current)
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}
