package sheets_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taller-pro/backoffice-api/internal/application/sheets"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type sheetFixture struct {
	uc     *sheets.SheetUseCase
	engine *transfers.TransferUseCase
	items  *memory.ItemRepository
	bals   *memory.BalanceRepository
}

func newSheetFixture(t *testing.T) *sheetFixture {
	t.Helper()
	store := memory.NewStore()
	items := memory.NewItemRepository(store)
	bals := memory.NewBalanceRepository(store)
	trans := memory.NewTransferRepository(store)
	sheetRepo := memory.NewPurchaseSheetRepository(store)
	engine := transfers.NewTransferUseCase(memory.NewTxRunner(store), items, trans, bals)
	uc := sheets.NewSheetUseCase(sheetRepo, trans, engine)
	return &sheetFixture{uc: uc, engine: engine, items: items, bals: bals}
}

func (f *sheetFixture) seedItem(t *testing.T, itemID string, warehouseQty int64) {
	t.Helper()
	require.NoError(t, f.items.Upsert(&entity.Item{ID: itemID, SKU: "SKU-" + itemID, Name: "Artículo " + itemID}))
	if warehouseQty > 0 {
		require.NoError(t, f.bals.Upsert(&entity.LocationBalance{
			ItemID: itemID, Location: entity.LocationWarehouse, Quantity: warehouseQty,
		}))
	}
}

// seedSheet crea una hoja con una línea esperada del artículo.
func (f *sheetFixture) seedSheet(t *testing.T, itemID string, expected int64) *entity.PurchaseSheet {
	t.Helper()
	sheet, err := f.uc.Create(context.Background(), sheets.SheetInput{
		InvoiceNumber: "FAC-001",
		Lines: []entity.SheetLine{
			{ItemID: itemID, ExpectedQuantity: expected, UnitCost: decimal.NewFromFloat(12.50)},
		},
	})
	require.NoError(t, err)
	return sheet
}

func sheetTransferInput(itemID string, qty int64) transfers.TransferInput {
	return transfers.TransferInput{
		From:   entity.LocationWarehouse,
		To:     entity.LocationStore,
		Lines:  []transfers.LineInput{{ItemID: itemID, Quantity: qty}},
		UserID: "user-1",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSheet_Validaciones(t *testing.T) {
	f := newSheetFixture(t)
	ctx := context.Background()

	casos := []sheets.SheetInput{
		{InvoiceNumber: "", Lines: []entity.SheetLine{{ItemID: "i", ExpectedQuantity: 1}}},
		{InvoiceNumber: "FAC-001"},
		{InvoiceNumber: "FAC-001", Lines: []entity.SheetLine{{ItemID: "", ExpectedQuantity: 1}}},
		{InvoiceNumber: "FAC-001", Lines: []entity.SheetLine{{ItemID: "i", ExpectedQuantity: 0}}},
		{InvoiceNumber: "FAC-001", Lines: []entity.SheetLine{
			{ItemID: "i", ExpectedQuantity: 1, UnitCost: decimal.NewFromInt(-1)},
		}},
	}
	for i, in := range casos {
		_, err := f.uc.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

func TestCreateSheet_NaceSinAsignacionYConAvanceCero(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 0)

	sheet := f.seedSheet(t, "item-1", 20)
	assert.Nil(t, sheet.Assignment)

	progress, err := f.uc.GetProgress(context.Background(), sheet.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, int64(20), progress[0].ExpectedQuantity)
	assert.Equal(t, int64(0), progress[0].Transferred)
	assert.Equal(t, int64(20), progress[0].Remaining)
}

// ──────────────────────────────────────────────────────────────────────────────
// Avance derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProgress_SumaLosTrasladosVinculados(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 100)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	_, err := f.uc.RecordTransfer(ctx, sheet.ID, sheetTransferInput("item-1", 5))
	require.NoError(t, err)

	progress, err := f.uc.GetProgress(ctx, sheet.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, int64(5), progress[0].Transferred)
	assert.Equal(t, int64(15), progress[0].Remaining)
}

func TestGetProgress_SobreTransferir_RemainingQuedaEnCero(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 100)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	// No hay tope: se permite trasladar más de lo esperado.
	_, err := f.uc.RecordTransfer(ctx, sheet.ID, sheetTransferInput("item-1", 30))
	require.NoError(t, err)

	progress, err := f.uc.GetProgress(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), progress[0].Transferred)
	assert.Equal(t, int64(0), progress[0].Remaining)
}

func TestGetProgress_SeAutocorrigeAlEditarYBorrarTraslados(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 100)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	transfer, err := f.uc.RecordTransfer(ctx, sheet.ID, sheetTransferInput("item-1", 5))
	require.NoError(t, err)

	// Editar el traslado a 3: el avance se recalcula, no hay contador que corregir.
	in := sheetTransferInput("item-1", 3)
	in.SheetID = sheet.ID
	_, err = f.engine.Update(ctx, transfer.ID, in)
	require.NoError(t, err)

	progress, err := f.uc.GetProgress(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), progress[0].Transferred)
	assert.Equal(t, int64(17), progress[0].Remaining)

	// Borrar el traslado devuelve el avance a cero.
	require.NoError(t, f.engine.Delete(ctx, transfer.ID))
	progress, err = f.uc.GetProgress(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), progress[0].Transferred)
	assert.Equal(t, int64(20), progress[0].Remaining)
}

func TestGetProgress_HojaNoExiste_RetornaNotFound(t *testing.T) {
	f := newSheetFixture(t)
	_, err := f.uc.GetProgress(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordTransfer
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordTransfer_VinculaElTrasladoALaHoja(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 100)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	transfer, err := f.uc.RecordTransfer(ctx, sheet.ID, sheetTransferInput("item-1", 5))
	require.NoError(t, err)
	assert.Equal(t, sheet.ID, transfer.SheetID)

	// El efecto sobre el ledger es el de cualquier traslado.
	b, err := f.bals.Get("item-1", entity.LocationWarehouse)
	require.NoError(t, err)
	assert.Equal(t, int64(95), b.Quantity)
}

func TestRecordTransfer_HojaNoExiste_RetornaNotFound(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 100)

	_, err := f.uc.RecordTransfer(context.Background(), "no-existe", sheetTransferInput("item-1", 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de verificación
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignTechnician_AsignaYReasignaSiempre(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 0)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	assigned, err := f.uc.AssignTechnician(ctx, sheet.ID, "tech-1", "primera revisión")
	require.NoError(t, err)
	require.NotNil(t, assigned.Assignment)
	assert.Equal(t, "tech-1", assigned.Assignment.TechnicianID)
	assert.Equal(t, entity.SheetStatusAssigned, assigned.Assignment.Status)

	// Reasignar siempre está permitido y vuelve a assigned.
	reassigned, err := f.uc.AssignTechnician(ctx, sheet.ID, "tech-2", "")
	require.NoError(t, err)
	assert.Equal(t, "tech-2", reassigned.Assignment.TechnicianID)
	assert.Equal(t, entity.SheetStatusAssigned, reassigned.Assignment.Status)
}

func TestAssignTechnician_Validaciones(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 0)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	_, err := f.uc.AssignTechnician(ctx, sheet.ID, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.AssignTechnician(ctx, "no-existe", "tech-1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_LibreEntreEstadosConAsignacion(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 0)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	_, err := f.uc.AssignTechnician(ctx, sheet.ID, "tech-1", "")
	require.NoError(t, err)

	// Los estados se fijan libremente, incluso "hacia atrás".
	for _, status := range []string{
		entity.SheetStatusInProgress,
		entity.SheetStatusCompleted,
		entity.SheetStatusInProgress,
	} {
		updated, err := f.uc.UpdateStatus(ctx, sheet.ID, status, nil)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Assignment.Status)
	}
}

func TestUpdateStatus_NotasSoloSeReemplazanSiVienen(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 0)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	_, err := f.uc.AssignTechnician(ctx, sheet.ID, "tech-1", "nota original")
	require.NoError(t, err)

	// Sin notas en el payload: se conservan las actuales.
	updated, err := f.uc.UpdateStatus(ctx, sheet.ID, entity.SheetStatusInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, "nota original", updated.Assignment.Notes)

	// Con notas (incluso vacías): reemplazan.
	empty := ""
	updated, err = f.uc.UpdateStatus(ctx, sheet.ID, entity.SheetStatusCompleted, &empty)
	require.NoError(t, err)
	assert.Equal(t, "", updated.Assignment.Notes)
}

func TestUpdateStatus_SinAsignacion_RetornaNotFound(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 0)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	_, err := f.uc.UpdateStatus(ctx, sheet.ID, entity.SheetStatusInProgress, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	f := newSheetFixture(t)
	f.seedItem(t, "item-1", 0)
	ctx := context.Background()
	sheet := f.seedSheet(t, "item-1", 20)

	_, err := f.uc.AssignTechnician(ctx, sheet.ID, "tech-1", "")
	require.NoError(t, err)

	// unassigned no se fija por esta vía, ni estados desconocidos.
	for _, status := range []string{entity.SheetStatusUnassigned, "done", ""} {
		_, err := f.uc.UpdateStatus(ctx, sheet.ID, status, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "status %q", status)
	}
}
