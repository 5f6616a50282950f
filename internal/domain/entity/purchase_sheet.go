package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de asignación de una hoja de compra.
// unassigned → assigned al asignar; assigned/in-progress/completed se fijan
// libremente después (solo se exige que exista la asignación).
const (
	SheetStatusUnassigned = "unassigned"
	SheetStatusAssigned   = "assigned"
	SheetStatusInProgress = "in-progress"
	SheetStatusCompleted  = "completed"
)

// SheetLine es una línea esperada de la hoja de compra (recepción de mercancía).
type SheetLine struct {
	ItemID           string
	ExpectedQuantity int64
	UnitCost         decimal.Decimal
}

// SheetAssignment es la asignación de verificación embebida en la hoja:
// qué técnico la verifica y en qué estado va.
type SheetAssignment struct {
	TechnicianID string
	Status       string
	Notes        string
	AssignedAt   time.Time
}

// PurchaseSheet es una hoja de compra creada por el colaborador de recepción.
// El núcleo solo muta su asignación; el avance (transferred/remaining) se
// deriva de los traslados que la referencian, nunca se almacena.
type PurchaseSheet struct {
	ID            string
	InvoiceNumber string
	Date          time.Time
	Lines         []SheetLine
	Assignment    *SheetAssignment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SheetLineProgress es el avance derivado de una línea:
// remaining = max(0, expected - transferred).
type SheetLineProgress struct {
	ItemID           string
	ExpectedQuantity int64
	Transferred      int64
	Remaining        int64
}
