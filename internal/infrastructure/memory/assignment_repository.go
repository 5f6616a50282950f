package memory

import (
	"sort"

	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepository)(nil)

// AssignmentRepository registro de asignaciones en memoria. El mapa
// artículo→asignación es a la vez almacenamiento e índice de exclusividad.
type AssignmentRepository struct {
	store *Store
}

// NewAssignmentRepository construye el adaptador sobre el estado compartido.
func NewAssignmentRepository(store *Store) *AssignmentRepository {
	return &AssignmentRepository{store: store}
}

// GetOwner devuelve el técnico dueño del artículo, o "" si está libre.
func (r *AssignmentRepository) GetOwner(itemID string) (string, error) {
	if a, ok := r.store.assignmentItems[itemID]; ok {
		return a.TechnicianID, nil
	}
	return "", nil
}

// AddItems agrega artículos al conjunto del técnico.
func (r *AssignmentRepository) AddItems(technicianID string, items []entity.AssignedItem) error {
	for _, it := range items {
		if existing, ok := r.store.assignmentItems[it.ItemID]; ok && existing.TechnicianID != technicianID {
			return domain.ErrItemAlreadyAssigned
		}
		r.store.assignmentItems[it.ItemID] = assignedItem{TechnicianID: technicianID, Item: it}
	}
	return nil
}

// RemoveItems retira artículos del conjunto del técnico; ajenos se ignoran.
func (r *AssignmentRepository) RemoveItems(technicianID string, itemIDs []string) error {
	for _, id := range itemIDs {
		if a, ok := r.store.assignmentItems[id]; ok && a.TechnicianID == technicianID {
			delete(r.store.assignmentItems, id)
		}
	}
	return nil
}

// UpdateComment actualiza el comentario de un artículo del técnico.
func (r *AssignmentRepository) UpdateComment(technicianID, itemID, comment string) error {
	a, ok := r.store.assignmentItems[itemID]
	if !ok || a.TechnicianID != technicianID {
		return domain.ErrNotFound
	}
	a.Item.Comment = comment
	r.store.assignmentItems[itemID] = a
	return nil
}

// GetByTechnician devuelve el conjunto del técnico; nil si no tiene artículos.
func (r *AssignmentRepository) GetByTechnician(technicianID string) (*entity.TechnicianAssignment, error) {
	assignment := &entity.TechnicianAssignment{TechnicianID: technicianID}
	for _, a := range r.store.assignmentItems {
		if a.TechnicianID == technicianID {
			assignment.Items = append(assignment.Items, a.Item)
		}
	}
	if len(assignment.Items) == 0 {
		return nil, nil
	}
	sortAssignedItems(assignment.Items)
	return assignment, nil
}

// List devuelve todas las asignaciones agrupadas por técnico.
func (r *AssignmentRepository) List() ([]*entity.TechnicianAssignment, error) {
	grouped := make(map[string]*entity.TechnicianAssignment)
	for _, a := range r.store.assignmentItems {
		g, ok := grouped[a.TechnicianID]
		if !ok {
			g = &entity.TechnicianAssignment{TechnicianID: a.TechnicianID}
			grouped[a.TechnicianID] = g
		}
		g.Items = append(g.Items, a.Item)
	}
	list := make([]*entity.TechnicianAssignment, 0, len(grouped))
	for _, g := range grouped {
		sortAssignedItems(g.Items)
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].TechnicianID < list[j].TechnicianID })
	return list, nil
}

func sortAssignedItems(items []entity.AssignedItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].AssignedAt.Equal(items[j].AssignedAt) {
			return items[i].AssignedAt.Before(items[j].AssignedAt)
		}
		return items[i].ItemID < items[j].ItemID
	})
}
