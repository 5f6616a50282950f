package printing

import (
	"context"

	"github.com/taller-pro/backoffice-api/internal/domain/entity"
)

// VerificationSheetGenerator renderiza la hoja de verificación imprimible de
// un traslado. items resuelve cada ItemID de las líneas a su artículo de
// catálogo (puede faltar alguno: el generador imprime el ID crudo).
type VerificationSheetGenerator interface {
	Generate(ctx context.Context, transfer *entity.Transfer, items map[string]*entity.Item) ([]byte, error)
}
