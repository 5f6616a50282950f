package repository

import (
	"time"

	"github.com/taller-pro/backoffice-api/internal/domain/entity"
)

// TransferFilter filtros de listado de traslados.
// Location coincide contra origen o destino; vacío = todas.
type TransferFilter struct {
	From     *time.Time
	To       *time.Time
	Location entity.Location
	Status   string
	Limit    int
	Offset   int
}

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea el traslado para edición/verificación.
	GetForUpdate(id string) (*entity.Transfer, error)
	Update(t *entity.Transfer) error
	Delete(id string) error
	List(filter TransferFilter) ([]*entity.Transfer, error)
	// ListBySheet devuelve todos los traslados que referencian una hoja de
	// compra; base del avance derivado.
	ListBySheet(sheetID string) ([]*entity.Transfer, error)
}
