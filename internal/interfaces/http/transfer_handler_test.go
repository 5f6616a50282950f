package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taller-pro/backoffice-api/internal/application/assignments"
	"github.com/taller-pro/backoffice-api/internal/application/printing"
	"github.com/taller-pro/backoffice-api/internal/application/sheets"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/application/usecase"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/infrastructure/memory"
	infrapdf "github.com/taller-pro/backoffice-api/internal/infrastructure/pdf"
	apphttp "github.com/taller-pro/backoffice-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: API completa sobre los adaptadores en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app   *fiber.App
	items *memory.ItemRepository
	bals  *memory.BalanceRepository
}

func buildAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	items := memory.NewItemRepository(store)
	bals := memory.NewBalanceRepository(store)
	trans := memory.NewTransferRepository(store)
	sheetRepo := memory.NewPurchaseSheetRepository(store)
	assignRepo := memory.NewAssignmentRepository(store)
	tx := memory.NewTxRunner(store)

	transferUC := transfers.NewTransferUseCase(tx, items, trans, bals)
	sheetUC := sheets.NewSheetUseCase(sheetRepo, trans, transferUC)
	assignmentUC := assignments.NewRegistryUseCase(tx, assignRepo)
	printUC := printing.NewPrintUseCase(trans, items, infrapdf.NewMarotoVerificationSheetGenerator())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		TransferUC:   transferUC,
		SheetUC:      sheetUC,
		AssignmentUC: assignmentUC,
		BalanceUC:    usecase.NewBalanceUseCase(bals),
		ItemUC:       usecase.NewItemUseCase(items),
		PrintUC:      printUC,
		AppEnv:       "development",
		JWTSecret:    testJWTSecret,
		JWTIssuer:    testIssuer,
		JWTExpMin:    testExpMin,
	})
	return &apiFixture{app: app, items: items, bals: bals}
}

func (f *apiFixture) seedItem(t *testing.T, itemID string, warehouseQty int64) {
	t.Helper()
	require.NoError(t, f.items.Upsert(&entity.Item{ID: itemID, SKU: "SKU-" + itemID, Name: "Artículo " + itemID}))
	if warehouseQty > 0 {
		require.NoError(t, f.bals.Upsert(&entity.LocationBalance{
			ItemID: itemID, Location: entity.LocationWarehouse, Quantity: warehouseQty,
		}))
	}
}

// do lanza una petición JSON autenticada y decodifica la respuesta en out (si no es nil).
func (f *apiFixture) do(t *testing.T, method, path, role string, body, out any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func transferBody(itemID string, qty int64) map[string]any {
	return map[string]any{
		"from": "warehouse",
		"to":   "store",
		"lines": []map[string]any{
			{"item_id": itemID, "quantity": qty},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearTraslado_ActualizaSaldos(t *testing.T) {
	f := buildAPIFixture(t)
	f.seedItem(t, "item-1", 10)

	var created map[string]any
	resp := f.do(t, http.MethodPost, "/api/transfers", "bodeguero", transferBody("item-1", 4), &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", created["status"])

	var balances []map[string]any
	resp = f.do(t, http.MethodGet, "/api/balances?item_id=item-1&location=warehouse", "bodeguero", nil, &balances)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, balances, 1)
	assert.Equal(t, float64(6), balances[0]["quantity"])
}

func TestAPI_StockInsuficiente_Retorna409(t *testing.T) {
	f := buildAPIFixture(t)
	f.seedItem(t, "item-1", 2)

	var errBody map[string]string
	resp := f.do(t, http.MethodPost, "/api/transfers", "admin", transferBody("item-1", 5), &errBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody["code"])
}

func TestAPI_Verificar_EsDeUnSoloDisparo(t *testing.T) {
	f := buildAPIFixture(t)
	f.seedItem(t, "item-1", 10)

	var created map[string]any
	f.do(t, http.MethodPost, "/api/transfers", "bodeguero", transferBody("item-1", 4), &created)
	id := created["id"].(string)

	verifyURL := fmt.Sprintf("/api/transfers/%s/verify", id)
	var verified map[string]any
	resp := f.do(t, http.MethodPost, verifyURL, "bodeguero", map[string]any{"status": "verified"}, &verified)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, verified["verified"])

	var errBody map[string]string
	resp = f.do(t, http.MethodPost, verifyURL, "bodeguero", map[string]any{"status": "discrepancy"}, &errBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ALREADY_VERIFIED", errBody["code"])
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	f := buildAPIFixture(t)
	resp := f.do(t, http.MethodGet, "/api/transfers", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_TecnicoNoPuedeCrearTraslados(t *testing.T) {
	f := buildAPIFixture(t)
	f.seedItem(t, "item-1", 10)

	resp := f.do(t, http.MethodPost, "/api/transfers", "tecnico", transferBody("item-1", 2), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hojas de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_HojaDeCompra_AvanceDerivado(t *testing.T) {
	f := buildAPIFixture(t)
	f.seedItem(t, "item-1", 100)

	var sheet map[string]any
	resp := f.do(t, http.MethodPost, "/api/sheets", "bodeguero", map[string]any{
		"invoice_number": "FAC-001",
		"lines": []map[string]any{
			{"item_id": "item-1", "expected_quantity": 20, "unit_cost": "12.50"},
		},
	}, &sheet)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sheetID := sheet["id"].(string)

	resp = f.do(t, http.MethodPost, "/api/sheets/"+sheetID+"/transfers", "bodeguero",
		transferBody("item-1", 5), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var progress map[string]any
	resp = f.do(t, http.MethodGet, "/api/sheets/"+sheetID+"/progress", "tecnico", nil, &progress)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	lines := progress["lines"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, float64(5), line["transferred"])
	assert.Equal(t, float64(15), line["remaining"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Asignaciones_ConflictoDeExclusividad(t *testing.T) {
	f := buildAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/assignments", "bodeguero", map[string]any{
		"technician_id": "tech-1",
		"items":         []map[string]any{{"item_id": "item-1"}},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var errBody map[string]string
	resp = f.do(t, http.MethodPost, "/api/assignments", "bodeguero", map[string]any{
		"technician_id": "tech-2",
		"items":         []map[string]any{{"item_id": "item-1"}},
	}, &errBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ITEM_ALREADY_ASSIGNED", errBody["code"])
}
