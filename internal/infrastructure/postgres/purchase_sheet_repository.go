package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.PurchaseSheetRepository = (*PurchaseSheetRepo)(nil)

// PurchaseSheetRepo implementación de PurchaseSheetRepository sobre
// PostgreSQL. La asignación va embebida en columnas assignment_* (NULL =
// sin asignar); las líneas en purchase_sheet_lines con costo NUMERIC.
type PurchaseSheetRepo struct {
	q Querier
}

// NewPurchaseSheetRepository construye el adaptador de hojas de compra.
func NewPurchaseSheetRepository(q Querier) *PurchaseSheetRepo {
	return &PurchaseSheetRepo{q: q}
}

// Create persiste una hoja de compra con sus líneas (recepción de mercancía).
func (r *PurchaseSheetRepo) Create(s *entity.PurchaseSheet) error {
	query := `
		INSERT INTO purchase_sheets (id, invoice_number, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.InvoiceNumber, s.Date, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase sheet: %w", err)
	}
	lineQuery := `
		INSERT INTO purchase_sheet_lines (sheet_id, position, item_id, expected_quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for i, l := range s.Lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			s.ID, i, l.ItemID, l.ExpectedQuantity, l.UnitCost,
		); err != nil {
			return fmt.Errorf("insert sheet line: %w", err)
		}
	}
	if s.Assignment != nil {
		return r.UpdateAssignment(s.ID, s.Assignment)
	}
	return nil
}

// GetByID obtiene una hoja con líneas y asignación; nil si no existe.
func (r *PurchaseSheetRepo) GetByID(id string) (*entity.PurchaseSheet, error) {
	query := `
		SELECT id, invoice_number, date,
			assignment_technician_id, assignment_status, assignment_notes, assignment_assigned_at,
			created_at, updated_at
		FROM purchase_sheets WHERE id = $1`
	s, err := r.scanSheet(r.q.QueryRow(context.Background(), query, id))
	if err != nil || s == nil {
		return s, err
	}
	if err := r.loadLines(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PurchaseSheetRepo) scanSheet(row pgx.Row) (*entity.PurchaseSheet, error) {
	var s entity.PurchaseSheet
	var techID, status, notes *string
	var assignedAt *time.Time
	err := row.Scan(
		&s.ID, &s.InvoiceNumber, &s.Date,
		&techID, &status, &notes, &assignedAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase sheet: %w", err)
	}
	if techID != nil {
		s.Assignment = &entity.SheetAssignment{TechnicianID: *techID}
		if status != nil {
			s.Assignment.Status = *status
		}
		if notes != nil {
			s.Assignment.Notes = *notes
		}
		if assignedAt != nil {
			s.Assignment.AssignedAt = *assignedAt
		}
	}
	return &s, nil
}

func (r *PurchaseSheetRepo) loadLines(s *entity.PurchaseSheet) error {
	query := `
		SELECT item_id, expected_quantity, unit_cost
		FROM purchase_sheet_lines WHERE sheet_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, s.ID)
	if err != nil {
		return fmt.Errorf("load sheet lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SheetLine
		if err := rows.Scan(&l.ItemID, &l.ExpectedQuantity, &l.UnitCost); err != nil {
			return fmt.Errorf("scan sheet line: %w", err)
		}
		s.Lines = append(s.Lines, l)
	}
	return rows.Err()
}

// List busca hojas por número de factura (prefijo) y rango de fechas.
func (r *PurchaseSheetRepo) List(filter repository.SheetFilter) ([]*entity.PurchaseSheet, error) {
	var where []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.InvoiceNumber != "" {
		where = append(where, "invoice_number ILIKE "+arg(filter.InvoiceNumber+"%"))
	}
	if filter.From != nil {
		where = append(where, "date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		where = append(where, "date <= "+arg(*filter.To))
	}

	query := `
		SELECT id, invoice_number, date,
			assignment_technician_id, assignment_status, assignment_notes, assignment_assigned_at,
			created_at, updated_at
		FROM purchase_sheets`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase sheets: %w", err)
	}
	defer rows.Close()

	var list []*entity.PurchaseSheet
	for rows.Next() {
		s, err := r.scanSheet(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		if err := r.loadLines(s); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// UpdateAssignment escribe la asignación embebida de la hoja.
func (r *PurchaseSheetRepo) UpdateAssignment(sheetID string, a *entity.SheetAssignment) error {
	query := `
		UPDATE purchase_sheets SET
			assignment_technician_id = $2, assignment_status = $3,
			assignment_notes = $4, assignment_assigned_at = $5, updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		sheetID, a.TechnicianID, a.Status, a.Notes, a.AssignedAt,
	)
	if err != nil {
		return fmt.Errorf("update sheet assignment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
