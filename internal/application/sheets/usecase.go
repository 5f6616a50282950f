package sheets

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// SheetUseCase reconcilia hojas de compra contra los traslados que las
// satisfacen y administra el ciclo de asignación de verificación.
//
// El avance (transferred/remaining) es derivado: se recalcula siempre desde el
// conjunto actual de traslados que referencian la hoja. Así se autocorrige
// cuando un traslado vinculado se edita o se borra, sin contadores aparte que
// puedan desincronizarse.
type SheetUseCase struct {
	sheetRepo    repository.PurchaseSheetRepository
	transferRepo repository.TransferRepository
	engine       *transfers.TransferUseCase
}

// NewSheetUseCase construye el caso de uso.
func NewSheetUseCase(
	sheetRepo repository.PurchaseSheetRepository,
	transferRepo repository.TransferRepository,
	engine *transfers.TransferUseCase,
) *SheetUseCase {
	return &SheetUseCase{sheetRepo: sheetRepo, transferRepo: transferRepo, engine: engine}
}

// SheetInput payload de creación de una hoja de compra (recepción).
type SheetInput struct {
	InvoiceNumber string
	Date          time.Time
	Lines         []entity.SheetLine
}

// Create registra una hoja de compra nueva, sin asignación y con avance cero.
func (uc *SheetUseCase) Create(ctx context.Context, in SheetInput) (*entity.PurchaseSheet, error) {
	if in.InvoiceNumber == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ItemID == "" || l.ExpectedQuantity <= 0 || l.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	sheet := &entity.PurchaseSheet{
		ID:            uuid.New().String(),
		InvoiceNumber: in.InvoiceNumber,
		Date:          date,
		Lines:         in.Lines,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.sheetRepo.Create(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

// GetByID obtiene una hoja de compra por ID.
func (uc *SheetUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseSheet, error) {
	sheet, err := uc.sheetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, domain.ErrNotFound
	}
	return sheet, nil
}

// List busca hojas por número de factura y rango de fechas.
func (uc *SheetUseCase) List(ctx context.Context, filter repository.SheetFilter) ([]*entity.PurchaseSheet, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.sheetRepo.List(filter)
}

// GetProgress calcula el avance por línea de la hoja: transferred suma las
// cantidades de ese artículo en todos los traslados que referencian la hoja;
// remaining = max(0, expected - transferred). Se permite sobre-transferir:
// remaining queda en 0 y transferred refleja el total real.
func (uc *SheetUseCase) GetProgress(ctx context.Context, sheetID string) ([]entity.SheetLineProgress, error) {
	sheet, err := uc.sheetRepo.GetByID(sheetID)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, domain.ErrNotFound
	}

	linked, err := uc.transferRepo.ListBySheet(sheetID)
	if err != nil {
		return nil, err
	}
	transferred := make(map[string]int64)
	for _, t := range linked {
		for _, l := range t.Lines {
			transferred[l.ItemID] += l.Quantity
		}
	}

	progress := make([]entity.SheetLineProgress, 0, len(sheet.Lines))
	for _, line := range sheet.Lines {
		done := transferred[line.ItemID]
		remaining := line.ExpectedQuantity - done
		if remaining < 0 {
			remaining = 0
		}
		progress = append(progress, entity.SheetLineProgress{
			ItemID:           line.ItemID,
			ExpectedQuantity: line.ExpectedQuantity,
			Transferred:      done,
			Remaining:        remaining,
		})
	}
	return progress, nil
}

// RecordTransfer registra un traslado vinculado a la hoja: valida que la hoja
// exista y delega en el motor de traslados con la referencia puesta. El efecto
// sobre el ledger y el registro del traslado son la misma transacción del motor.
func (uc *SheetUseCase) RecordTransfer(ctx context.Context, sheetID string, in transfers.TransferInput) (*entity.Transfer, error) {
	sheet, err := uc.sheetRepo.GetByID(sheetID)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, domain.ErrNotFound
	}
	in.SheetID = sheetID
	return uc.engine.Create(ctx, in)
}

// AssignTechnician asigna (o reasigna, siempre permitido) la verificación de
// la hoja a un técnico, con estado assigned.
func (uc *SheetUseCase) AssignTechnician(ctx context.Context, sheetID, technicianID, notes string) (*entity.PurchaseSheet, error) {
	if technicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	sheet, err := uc.sheetRepo.GetByID(sheetID)
	if err != nil {
		return nil, err
	}
	if sheet == nil {
		return nil, domain.ErrNotFound
	}
	assignment := &entity.SheetAssignment{
		TechnicianID: technicianID,
		Status:       entity.SheetStatusAssigned,
		Notes:        notes,
		AssignedAt:   time.Now(),
	}
	if err := uc.sheetRepo.UpdateAssignment(sheetID, assignment); err != nil {
		return nil, err
	}
	sheet.Assignment = assignment
	sheet.UpdatedAt = assignment.AssignedAt
	return sheet, nil
}

// UpdateStatus fija el estado de la asignación de la hoja. Solo exige que la
// asignación exista; no se impone orden entre estados. notes, si viene,
// reemplaza las notas actuales.
func (uc *SheetUseCase) UpdateStatus(ctx context.Context, sheetID, status string, notes *string) (*entity.PurchaseSheet, error) {
	switch status {
	case entity.SheetStatusAssigned, entity.SheetStatusInProgress, entity.SheetStatusCompleted:
	default:
		return nil, domain.ErrInvalidInput
	}
	sheet, err := uc.sheetRepo.GetByID(sheetID)
	if err != nil {
		return nil, err
	}
	if sheet == nil || sheet.Assignment == nil {
		return nil, domain.ErrNotFound
	}
	sheet.Assignment.Status = status
	if notes != nil {
		sheet.Assignment.Notes = *notes
	}
	if err := uc.sheetRepo.UpdateAssignment(sheetID, sheet.Assignment); err != nil {
		return nil, err
	}
	sheet.UpdatedAt = time.Now()
	return sheet, nil
}
