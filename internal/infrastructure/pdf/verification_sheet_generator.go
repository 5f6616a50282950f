// Package pdf implementa la hoja de verificación imprimible de un traslado:
// el documento que el bodeguero usa para chequear físicamente los artículos
// recibidos y dejar constancia firmada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + "HOJA DE VERIFICACIÓN" + N° + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RUTA: Origen → Destino | Técnico | Tipo de trabajo          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | SKU | Artículo | Cantidad | Recibido ☐           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO DE VERIFICACIÓN + notas                              │
//	│  FOOTER: QR con el ID del traslado + firmas                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/taller-pro/backoffice-api/internal/application/printing"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Etiquetas legibles de ubicaciones y estados.
var locationLabels = map[entity.Location]string{
	entity.LocationWarehouse: "Bodega",
	entity.LocationStore:     "Local",
	entity.LocationStore2:    "Local 2",
}

var statusLabels = map[string]string{
	entity.TransferStatusPending:     "PENDIENTE DE VERIFICACIÓN",
	entity.TransferStatusVerified:    "VERIFICADO SIN NOVEDAD",
	entity.TransferStatusDiscrepancy: "VERIFICADO CON DISCREPANCIA",
}

var _ printing.VerificationSheetGenerator = (*MarotoVerificationSheetGenerator)(nil)

// MarotoVerificationSheetGenerator implementa printing.VerificationSheetGenerator
// usando Maroto v2.
type MarotoVerificationSheetGenerator struct{}

// NewMarotoVerificationSheetGenerator construye el generador.
func NewMarotoVerificationSheetGenerator() *MarotoVerificationSheetGenerator {
	return &MarotoVerificationSheetGenerator{}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoVerificationSheetGenerator) Generate(
	_ context.Context,
	transfer *entity.Transfer,
	items map[string]*entity.Item,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Verificación de Traslado", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(transfer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(routeRow(transfer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for i, l := range transfer.Lines {
		m.AddRows(tableLineRow(i+1, l, items[l.ItemID]))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(statusRows(transfer)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(transfer))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de verificación: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del documento + ID corto y fecha del traslado.
func headerRow(transfer *entity.Transfer) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HOJA DE VERIFICACIÓN DE TRASLADO", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Control interno de movimiento de stock", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Traslado N° "+shortID(transfer.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+transfer.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// routeRow: origen → destino, técnico y tipo de trabajo si aplican.
func routeRow(transfer *entity.Transfer) core.Row {
	route := fmt.Sprintf("%s  →  %s",
		locationLabel(transfer.From), locationLabel(transfer.To))
	detail := fmt.Sprintf("Técnico: %s   |   Trabajo: %s   |   Hoja de compra: %s",
		nonEmpty(transfer.TechnicianID, "—"),
		nonEmpty(transfer.WorkType, "—"),
		nonEmpty(shortID(transfer.SheetID), "—"),
	)
	return row.New(14).Add(
		col.New(12).Add(
			text.New(route, props.Text{Style: fontstyle.Bold, Size: 11, Top: 1}),
			text.New(detail, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de artículos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Artículo", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Recibido", 2, align.Center),
	)
}

// tableLineRow: una fila por línea del traslado; si el artículo no resuelve en
// catálogo se imprime el ID crudo.
func tableLineRow(n int, l entity.TransferLine, item *entity.Item) core.Row {
	sku, name := l.ItemID, l.ItemID
	if item != nil {
		sku, name = item.SKU, item.Name
	}
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.Itoa(n), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(sku, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(5).Add(text.New(name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(strconv.FormatInt(l.Quantity, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New("[   ]", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray})),
	)
}

// statusRows: estado de verificación y notas registradas.
func statusRows(transfer *entity.Transfer) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("Estado: "+statusLabel(transfer.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	if transfer.VerificationNotes != "" {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Notas: "+transfer.VerificationNotes, props.Text{
				Size: 8, Top: 1, Color: colorGray,
			}),
		)))
	}
	return rows
}

// footerRow: QR con el ID del traslado + líneas de firma.
func footerRow(transfer *entity.Transfer) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(transfer.ID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(4).Add(
			text.New("_______________________________", props.Text{Size: 9, Top: 24, Align: align.Center}),
			text.New("Entrega (bodega)", props.Text{Size: 7, Top: 30, Align: align.Center, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("_______________________________", props.Text{Size: 9, Top: 24, Align: align.Center}),
			text.New("Recibe (técnico / local)", props.Text{Size: 7, Top: 30, Align: align.Center, Color: colorGray}),
		),
		col.New(1),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func locationLabel(l entity.Location) string {
	if label, ok := locationLabels[l]; ok {
		return label
	}
	return string(l)
}

func statusLabel(s string) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID devuelve el primer bloque de un UUID, suficiente como referencia
// humana en el documento.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
