package assignments

import (
	"context"

	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// RegistryTxRunner ejecuta una función contra el registro de asignaciones
// dentro de una transacción. El check-then-set de exclusividad debe ser
// atómico: dos asignaciones concurrentes sobre el mismo artículo no pueden
// tener éxito ambas.
type RegistryTxRunner interface {
	RunRegistry(ctx context.Context, fn func(repo repository.AssignmentRepository) error) error
}
