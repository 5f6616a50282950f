package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL
// (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo actual de un artículo en una ubicación.
// Sin fila registrada devuelve saldo cero (creación perezosa).
func (r *BalanceRepo) Get(itemID string, location entity.Location) (*entity.LocationBalance, error) {
	query := `
		SELECT item_id, location, quantity, updated_at
		FROM location_balances WHERE item_id = $1 AND location = $2`
	var b entity.LocationBalance
	err := r.q.QueryRow(context.Background(), query, itemID, string(location)).Scan(
		&b.ItemID, &b.Location, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LocationBalance{ItemID: itemID, Location: location}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
// Materializa primero la fila en cero si no existe: FOR UPDATE no bloquea filas
// ausentes, y dos transacciones creando el mismo saldo se pisarían la cantidad.
func (r *BalanceRepo) GetForUpdate(itemID string, location entity.Location) (*entity.LocationBalance, error) {
	insert := `
		INSERT INTO location_balances (item_id, location, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, location) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, itemID, string(location)); err != nil {
		return nil, fmt.Errorf("materialize balance: %w", err)
	}
	query := `
		SELECT item_id, location, quantity, updated_at
		FROM location_balances WHERE item_id = $1 AND location = $2
		FOR UPDATE`
	var b entity.LocationBalance
	err := r.q.QueryRow(context.Background(), query, itemID, string(location)).Scan(
		&b.ItemID, &b.Location, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LocationBalance{ItemID: itemID, Location: location}, nil
		}
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza la cantidad (por artículo y ubicación).
func (r *BalanceRepo) Upsert(balance *entity.LocationBalance) error {
	query := `
		INSERT INTO location_balances (item_id, location, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ItemID, string(balance.Location), balance.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert balance: %w", err)
	}
	return nil
}

// ListByItem devuelve los saldos de un artículo en todas las ubicaciones.
func (r *BalanceRepo) ListByItem(itemID string) ([]*entity.LocationBalance, error) {
	query := `
		SELECT item_id, location, quantity, updated_at
		FROM location_balances WHERE item_id = $1 ORDER BY location`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list balances by item: %w", err)
	}
	defer rows.Close()
	return scanBalances(rows)
}

// ListByLocation lista los saldos de una ubicación con paginación.
func (r *BalanceRepo) ListByLocation(location entity.Location, limit, offset int) ([]*entity.LocationBalance, error) {
	query := `
		SELECT item_id, location, quantity, updated_at
		FROM location_balances WHERE location = $1
		ORDER BY item_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(location), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list balances by location: %w", err)
	}
	defer rows.Close()
	return scanBalances(rows)
}

func scanBalances(rows pgx.Rows) ([]*entity.LocationBalance, error) {
	var list []*entity.LocationBalance
	for rows.Next() {
		var b entity.LocationBalance
		if err := rows.Scan(&b.ItemID, &b.Location, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
