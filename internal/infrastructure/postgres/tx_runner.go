package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taller-pro/backoffice-api/internal/application/assignments"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ transfers.TxRunner = (*TxRunner)(nil)
var _ assignments.RegistryTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Los fallos
// de serialización y deadlocks salen como domain.ErrConflict para que el
// caller decida reintentar.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción del motor de traslados: repos de traslados y
// saldos atados a la misma tx, Commit si todo ok, Rollback si algo falla.
func (r *TxRunner) Run(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTransferRepository(tx), NewBalanceRepository(tx))
	})
}

// RunRegistry inicia una transacción del registro de asignaciones; el
// check-then-set de exclusividad queda atómico.
func (r *TxRunner) RunRegistry(ctx context.Context, fn func(
	repo repository.AssignmentRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewAssignmentRepository(tx))
	})
}
