package printing

import (
	"context"

	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// PrintUseCase produce la hoja de verificación de un traslado (lectura pura:
// no muta el núcleo).
type PrintUseCase struct {
	transferRepo repository.TransferRepository
	itemRepo     repository.ItemRepository
	generator    VerificationSheetGenerator
}

// NewPrintUseCase construye el caso de uso.
func NewPrintUseCase(
	transferRepo repository.TransferRepository,
	itemRepo repository.ItemRepository,
	generator VerificationSheetGenerator,
) *PrintUseCase {
	return &PrintUseCase{transferRepo: transferRepo, itemRepo: itemRepo, generator: generator}
}

// VerificationSheet genera el PDF de verificación del traslado indicado.
func (uc *PrintUseCase) VerificationSheet(ctx context.Context, transferID string) ([]byte, error) {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}

	items := make(map[string]*entity.Item, len(transfer.Lines))
	for _, line := range transfer.Lines {
		if _, ok := items[line.ItemID]; ok {
			continue
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			items[line.ItemID] = item
		}
	}
	return uc.generator.Generate(ctx, transfer, items)
}
