package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación del registro de asignaciones sobre PostgreSQL.
// technician_assignment_items tiene PRIMARY KEY (item_id): la exclusividad
// artículo→técnico queda garantizada por el propio esquema además del chequeo
// en la transacción.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador del registro.
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// GetOwner devuelve el técnico dueño del artículo, o "" si está libre.
func (r *AssignmentRepo) GetOwner(itemID string) (string, error) {
	query := `SELECT technician_id FROM technician_assignment_items WHERE item_id = $1`
	var owner string
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get item owner: %w", err)
	}
	return owner, nil
}

// AddItems agrega artículos al conjunto del técnico. Una violación del
// PRIMARY KEY (carrera perdida contra otra asignación) sale como
// ErrItemAlreadyAssigned.
func (r *AssignmentRepo) AddItems(technicianID string, items []entity.AssignedItem) error {
	query := `
		INSERT INTO technician_assignment_items (item_id, technician_id, comment, assigned_at)
		VALUES ($1, $2, $3, $4)`
	for _, it := range items {
		if _, err := r.q.Exec(context.Background(), query,
			it.ItemID, technicianID, it.Comment, it.AssignedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrItemAlreadyAssigned
			}
			return fmt.Errorf("insert assignment item: %w", err)
		}
	}
	return nil
}

// RemoveItems retira artículos del conjunto del técnico; IDs ajenos o
// inexistentes no afectan nada.
func (r *AssignmentRepo) RemoveItems(technicianID string, itemIDs []string) error {
	query := `
		DELETE FROM technician_assignment_items
		WHERE technician_id = $1 AND item_id = ANY($2)`
	_, err := r.q.Exec(context.Background(), query, technicianID, itemIDs)
	if err != nil {
		return fmt.Errorf("remove assignment items: %w", err)
	}
	return nil
}

// UpdateComment actualiza el comentario de un artículo del técnico.
func (r *AssignmentRepo) UpdateComment(technicianID, itemID, comment string) error {
	query := `
		UPDATE technician_assignment_items SET comment = $3
		WHERE technician_id = $1 AND item_id = $2`
	cmd, err := r.q.Exec(context.Background(), query, technicianID, itemID, comment)
	if err != nil {
		return fmt.Errorf("update assignment comment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByTechnician devuelve el conjunto del técnico; nil si no tiene artículos.
func (r *AssignmentRepo) GetByTechnician(technicianID string) (*entity.TechnicianAssignment, error) {
	query := `
		SELECT item_id, comment, assigned_at
		FROM technician_assignment_items
		WHERE technician_id = $1 ORDER BY assigned_at, item_id`
	rows, err := r.q.Query(context.Background(), query, technicianID)
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	defer rows.Close()

	assignment := &entity.TechnicianAssignment{TechnicianID: technicianID}
	for rows.Next() {
		var it entity.AssignedItem
		if err := rows.Scan(&it.ItemID, &it.Comment, &it.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan assignment item: %w", err)
		}
		assignment.Items = append(assignment.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(assignment.Items) == 0 {
		return nil, nil
	}
	return assignment, nil
}

// List devuelve todas las asignaciones vigentes agrupadas por técnico.
func (r *AssignmentRepo) List() ([]*entity.TechnicianAssignment, error) {
	query := `
		SELECT technician_id, item_id, comment, assigned_at
		FROM technician_assignment_items
		ORDER BY technician_id, assigned_at, item_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var list []*entity.TechnicianAssignment
	var current *entity.TechnicianAssignment
	for rows.Next() {
		var techID string
		var it entity.AssignedItem
		if err := rows.Scan(&techID, &it.ItemID, &it.Comment, &it.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan assignment row: %w", err)
		}
		if current == nil || current.TechnicianID != techID {
			current = &entity.TechnicianAssignment{TechnicianID: techID}
			list = append(list, current)
		}
		current.Items = append(current.Items, it)
	}
	return list, rows.Err()
}
