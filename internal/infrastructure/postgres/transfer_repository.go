package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas viven en transfer_lines, ordenadas por
// position para preservar la secuencia del payload.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `
	id, date, from_location, to_location, technician_id, work_type, sheet_id,
	verified, status, verification_notes, created_at, updated_at, created_by`

// Create persiste el traslado y sus líneas.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Date, string(t.From), string(t.To), t.TechnicianID, t.WorkType, t.SheetID,
		t.Verified, t.Status, t.VerificationNotes, t.CreatedAt, t.UpdatedAt, t.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return r.insertLines(t.ID, t.Lines)
}

func (r *TransferRepo) insertLines(transferID string, lines []entity.TransferLine) error {
	query := `
		INSERT INTO transfer_lines (transfer_id, position, item_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for i, l := range lines {
		if _, err := r.q.Exec(context.Background(), query, transferID, i, l.ItemID, l.Quantity); err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado con sus líneas; nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el traslado bloqueando su fila (SELECT FOR UPDATE).
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.get(id, true)
}

func (r *TransferRepo) get(id string, forUpdate bool) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Date, &t.From, &t.To, &t.TechnicianID, &t.WorkType, &t.SheetID,
		&t.Verified, &t.Status, &t.VerificationNotes, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.loadLines(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransferRepo) loadLines(t *entity.Transfer) error {
	query := `
		SELECT item_id, quantity FROM transfer_lines
		WHERE transfer_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, t.ID)
	if err != nil {
		return fmt.Errorf("load transfer lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ItemID, &l.Quantity); err != nil {
			return fmt.Errorf("scan transfer line: %w", err)
		}
		t.Lines = append(t.Lines, l)
	}
	return rows.Err()
}

// Update reescribe el traslado y sus líneas (delete + reinsert).
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers SET
			date = $2, from_location = $3, to_location = $4, technician_id = $5,
			work_type = $6, sheet_id = $7, verified = $8, status = $9,
			verification_notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Date, string(t.From), string(t.To), t.TechnicianID,
		t.WorkType, t.SheetID, t.Verified, t.Status,
		t.VerificationNotes, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM transfer_lines WHERE transfer_id = $1`, t.ID); err != nil {
		return fmt.Errorf("delete transfer lines: %w", err)
	}
	return r.insertLines(t.ID, t.Lines)
}

// Delete elimina el traslado; las líneas caen por ON DELETE CASCADE.
func (r *TransferRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

// List lista traslados por fecha, ubicación (origen o destino) y estado.
func (r *TransferRepo) List(filter repository.TransferFilter) ([]*entity.Transfer, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.From != nil {
		where = append(where, "date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		where = append(where, "date <= "+arg(*filter.To))
	}
	if filter.Location != "" {
		p := arg(string(filter.Location))
		where = append(where, fmt.Sprintf("(from_location = %s OR to_location = %s)", p, p))
	}
	if filter.Status != "" {
		where = append(where, "status = "+arg(filter.Status))
	}

	query := `SELECT ` + transferColumns + ` FROM transfers`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"
	query += " LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	return r.list(query, args...)
}

// ListBySheet devuelve todos los traslados que referencian una hoja de compra.
func (r *TransferRepo) ListBySheet(sheetID string) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE sheet_id = $1 ORDER BY date, created_at`
	return r.list(query, sheetID)
}

func (r *TransferRepo) list(query string, args ...any) ([]*entity.Transfer, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(
			&t.ID, &t.Date, &t.From, &t.To, &t.TechnicianID, &t.WorkType, &t.SheetID,
			&t.Verified, &t.Status, &t.VerificationNotes, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		if err := r.loadLines(t); err != nil {
			return nil, err
		}
	}
	return list, nil
}
