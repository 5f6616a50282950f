package entity

import "time"

// Estados de verificación de un traslado. pending es el estado inicial;
// verified y discrepancy son terminales (nunca se revierte).
const (
	TransferStatusPending     = "pending"
	TransferStatusVerified    = "verified"
	TransferStatusDiscrepancy = "discrepancy"
)

// Tipos de trabajo cuando el traslado entrega artículos a un técnico.
const (
	WorkTypeRepair = "repair"
	WorkTypeTest   = "test"
)

// TransferLine es una línea de traslado: artículo y cantidad (entero > 0).
type TransferLine struct {
	ItemID   string
	Quantity int64
}

// Transfer representa un movimiento de artículos entre dos ubicaciones.
// Las líneas son editables (con reconciliación del ledger) y el borrado
// revierte por completo su efecto sobre el ledger.
type Transfer struct {
	ID           string
	Date         time.Time
	From         Location
	To           Location
	Lines        []TransferLine
	TechnicianID string // opcional: técnico que recibe los artículos
	WorkType     string // opcional: repair | test
	SheetID      string // opcional: hoja de compra que este traslado satisface

	Verified          bool
	Status            string // pending | verified | discrepancy
	VerificationNotes string

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string // UserID
}

// TotalQuantity suma las cantidades de todas las líneas.
func (t *Transfer) TotalQuantity() int64 {
	var total int64
	for _, l := range t.Lines {
		total += l.Quantity
	}
	return total
}
