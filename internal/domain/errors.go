package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrItemAlreadyAssigned = errors.New("artículo ya asignado a otro técnico")
	ErrAlreadyVerified     = errors.New("traslado ya verificado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
)

// ItemAssignedError detalla un conflicto de exclusividad: qué artículo está en
// disputa y qué técnico lo tiene asignado actualmente.
// errors.Is(err, ErrItemAlreadyAssigned) devuelve true para este error.
type ItemAssignedError struct {
	ItemID       string
	TechnicianID string
}

func (e *ItemAssignedError) Error() string {
	return fmt.Sprintf("artículo %s ya asignado al técnico %s", e.ItemID, e.TechnicianID)
}

func (e *ItemAssignedError) Is(target error) bool {
	return target == ErrItemAlreadyAssigned
}
