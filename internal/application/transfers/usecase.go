package transfers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// TransferUseCase es el motor de traslados: crea, edita y revierte movimientos
// de stock entre ubicaciones aplicando los deltas del ledger de forma atómica
// por operación (una transacción por traslado).
type TransferUseCase struct {
	tx           TxRunner
	itemRepo     repository.ItemRepository
	transferRepo repository.TransferRepository
	balanceRepo  repository.BalanceRepository
}

// NewTransferUseCase construye el motor. transferRepo y balanceRepo se usan
// solo para lecturas fuera de transacción; las mutaciones pasan por tx.
func NewTransferUseCase(
	tx TxRunner,
	itemRepo repository.ItemRepository,
	transferRepo repository.TransferRepository,
	balanceRepo repository.BalanceRepository,
) *TransferUseCase {
	return &TransferUseCase{
		tx:           tx,
		itemRepo:     itemRepo,
		transferRepo: transferRepo,
		balanceRepo:  balanceRepo,
	}
}

// LineInput línea de entrada: artículo y cantidad entera positiva.
type LineInput struct {
	ItemID   string
	Quantity int64
}

// TransferInput payload de creación/edición de un traslado.
type TransferInput struct {
	Date         time.Time
	From         entity.Location
	To           entity.Location
	Lines        []LineInput
	TechnicianID string
	WorkType     string // "" | repair | test
	SheetID      string // "" = no vinculado a hoja de compra
	UserID       string
}

// validateInput rechaza payloads malformados antes de tocar el ledger:
// ubicaciones fuera del conjunto, origen igual a destino, sin líneas,
// cantidades no positivas o tipo de trabajo desconocido.
func validateInput(in TransferInput) error {
	if !in.From.Valid() || !in.To.Valid() || in.From == in.To {
		return domain.ErrInvalidInput
	}
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ItemID == "" || l.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
	}
	switch in.WorkType {
	case "", entity.WorkTypeRepair, entity.WorkTypeTest:
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// checkItemsExist valida contra el catálogo que cada artículo exista.
func (uc *TransferUseCase) checkItemsExist(lines []LineInput) error {
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if seen[l.ItemID] {
			continue
		}
		seen[l.ItemID] = true
		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toEntityLines(lines []LineInput) []entity.TransferLine {
	out := make([]entity.TransferLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.TransferLine{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return out
}

// Create valida el payload, descuenta origen y suma destino por cada línea en
// una sola transacción, y persiste el traslado con estado pending. El chequeo
// de stock suficiente se hace contra el ledger pre-traslado dentro de la misma
// transacción (fila bloqueada), así que nunca queda un efecto parcial.
func (uc *TransferUseCase) Create(ctx context.Context, in TransferInput) (*entity.Transfer, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := uc.checkItemsExist(in.Lines); err != nil {
		return nil, err
	}

	now := time.Now()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	transfer := &entity.Transfer{
		ID:           uuid.New().String(),
		Date:         date,
		From:         in.From,
		To:           in.To,
		Lines:        toEntityLines(in.Lines),
		TechnicianID: in.TechnicianID,
		WorkType:     in.WorkType,
		SheetID:      in.SheetID,
		Verified:     false,
		Status:       entity.TransferStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    in.UserID,
	}

	err := uc.tx.Run(ctx, func(
		transferRepo repository.TransferRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		if err := applyDeltas(balanceRepo, transferDeltas(transfer.From, transfer.To, transfer.Lines), now); err != nil {
			return err
		}
		return transferRepo.Create(transfer)
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// Update edita un traslado reconciliando el ledger: dentro de una transacción
// se calcula la reversión del efecto original, se le acumula el efecto del
// nuevo payload y se aplica el neto. Si el neto dejara algún saldo negativo,
// nada se confirma y el ledger queda exactamente como estaba.
func (uc *TransferUseCase) Update(ctx context.Context, id string, in TransferInput) (*entity.Transfer, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := uc.checkItemsExist(in.Lines); err != nil {
		return nil, err
	}

	now := time.Now()
	var updated *entity.Transfer
	err := uc.tx.Run(ctx, func(
		transferRepo repository.TransferRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		current, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		newLines := toEntityLines(in.Lines)
		net := mergeDeltas(
			reverseDeltas(transferDeltas(current.From, current.To, current.Lines)),
			transferDeltas(in.From, in.To, newLines),
		)
		if err := applyDeltas(balanceRepo, net, now); err != nil {
			return err
		}

		current.Date = in.Date
		if current.Date.IsZero() {
			current.Date = now
		}
		current.From = in.From
		current.To = in.To
		current.Lines = newLines
		current.TechnicianID = in.TechnicianID
		current.WorkType = in.WorkType
		current.SheetID = in.SheetID
		current.UpdatedAt = now
		updated = current
		return transferRepo.Update(current)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete revierte por completo el efecto del traslado sobre el ledger
// (devuelve al origen, retira del destino) y elimina el registro, todo en una
// transacción.
func (uc *TransferUseCase) Delete(ctx context.Context, id string) error {
	now := time.Now()
	return uc.tx.Run(ctx, func(
		transferRepo repository.TransferRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		current, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		reversal := reverseDeltas(transferDeltas(current.From, current.To, current.Lines))
		if err := applyDeltas(balanceRepo, reversal, now); err != nil {
			return err
		}
		return transferRepo.Delete(id)
	})
}

// GetByID obtiene un traslado por ID.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

// List lista traslados con filtros de fecha, ubicación y estado.
func (uc *TransferUseCase) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.Transfer, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Location != "" && !filter.Location.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.Status != "" {
		switch filter.Status {
		case entity.TransferStatusPending, entity.TransferStatusVerified, entity.TransferStatusDiscrepancy:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	return uc.transferRepo.List(filter)
}
