// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Lo usan los tests de casos de uso y el modo dev sin PostgreSQL.
// La atomicidad se logra serializando transacciones completas tras un mutex y
// restaurando un snapshot del estado si el callback falla.
package memory

import (
	"context"
	"sync"

	"github.com/taller-pro/backoffice-api/internal/application/assignments"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

type balanceKey struct {
	ItemID   string
	Location entity.Location
}

type assignedItem struct {
	TechnicianID string
	Item         entity.AssignedItem
}

// Store estado compartido de todos los adaptadores en memoria.
type Store struct {
	mu sync.Mutex

	items     map[string]entity.Item
	balances  map[balanceKey]entity.LocationBalance
	transfers map[string]entity.Transfer
	sheets    map[string]entity.PurchaseSheet
	// índice artículo→asignación (exclusividad por construcción del mapa)
	assignmentItems map[string]assignedItem
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		items:           make(map[string]entity.Item),
		balances:        make(map[balanceKey]entity.LocationBalance),
		transfers:       make(map[string]entity.Transfer),
		sheets:          make(map[string]entity.PurchaseSheet),
		assignmentItems: make(map[string]assignedItem),
	}
}

type snapshot struct {
	balances        map[balanceKey]entity.LocationBalance
	transfers       map[string]entity.Transfer
	assignmentItems map[string]assignedItem
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		balances:        make(map[balanceKey]entity.LocationBalance, len(s.balances)),
		transfers:       make(map[string]entity.Transfer, len(s.transfers)),
		assignmentItems: make(map[string]assignedItem, len(s.assignmentItems)),
	}
	for k, v := range s.balances {
		snap.balances[k] = v
	}
	for k, v := range s.transfers {
		snap.transfers[k] = cloneTransfer(v)
	}
	for k, v := range s.assignmentItems {
		snap.assignmentItems[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.balances = snap.balances
	s.transfers = snap.transfers
	s.assignmentItems = snap.assignmentItems
}

func cloneTransfer(t entity.Transfer) entity.Transfer {
	out := t
	out.Lines = append([]entity.TransferLine(nil), t.Lines...)
	return out
}

func cloneSheet(s entity.PurchaseSheet) entity.PurchaseSheet {
	out := s
	out.Lines = append([]entity.SheetLine(nil), s.Lines...)
	if s.Assignment != nil {
		a := *s.Assignment
		out.Assignment = &a
	}
	return out
}

// TxRunner transacciones en memoria: un mutex global serializa cada operación
// completa y un snapshot restaura el estado previo si el callback falla, de
// modo que nunca queda un efecto parcial visible.
type TxRunner struct {
	store *Store
}

var _ transfers.TxRunner = (*TxRunner)(nil)
var _ assignments.RegistryTxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner sobre el estado compartido.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn como transacción del motor de traslados.
func (r *TxRunner) Run(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := fn(NewTransferRepository(r.store), NewBalanceRepository(r.store)); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// RunRegistry ejecuta fn como transacción del registro de asignaciones.
func (r *TxRunner) RunRegistry(ctx context.Context, fn func(
	repo repository.AssignmentRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	snap := r.store.snapshot()
	if err := fn(NewAssignmentRepository(r.store)); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
