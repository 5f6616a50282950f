package transfers

import (
	"context"

	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// traslados: o se aplican todos los deltas del ledger y el registro del
// traslado, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		balanceRepo repository.BalanceRepository,
	) error) error
}
