package transfers

import (
	"fmt"
	"sort"
	"time"

	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
	"github.com/taller-pro/backoffice-api/internal/domain/repository"
)

// balanceKey identifica una fila del ledger: (artículo, ubicación).
type balanceKey struct {
	ItemID   string
	Location entity.Location
}

// transferDeltas calcula el efecto de un traslado sobre el ledger:
// resta en origen y suma en destino por cada línea. Líneas repetidas del
// mismo artículo se acumulan.
func transferDeltas(from, to entity.Location, lines []entity.TransferLine) map[balanceKey]int64 {
	deltas := make(map[balanceKey]int64, len(lines)*2)
	for _, l := range lines {
		deltas[balanceKey{l.ItemID, from}] -= l.Quantity
		deltas[balanceKey{l.ItemID, to}] += l.Quantity
	}
	return deltas
}

// reverseDeltas niega cada delta (reversión exacta del efecto original).
func reverseDeltas(deltas map[balanceKey]int64) map[balanceKey]int64 {
	out := make(map[balanceKey]int64, len(deltas))
	for k, d := range deltas {
		out[k] = -d
	}
	return out
}

// mergeDeltas acumula b sobre a. Usado en la edición: reversión del efecto
// original + aplicación del nuevo payload como un único efecto neto.
func mergeDeltas(a, b map[balanceKey]int64) map[balanceKey]int64 {
	out := make(map[balanceKey]int64, len(a)+len(b))
	for k, d := range a {
		out[k] += d
	}
	for k, d := range b {
		out[k] += d
	}
	return out
}

// applyDeltas aplica los deltas sobre el ledger dentro de la transacción en
// curso. Las filas se bloquean en orden estable (artículo, ubicación) para que
// traslados concurrentes que se solapan serialicen sin deadlock. Si algún
// decremento dejara la cantidad negativa, devuelve ErrInsufficientStock y la
// transacción completa se revierte.
func applyDeltas(balanceRepo repository.BalanceRepository, deltas map[balanceKey]int64, now time.Time) error {
	keys := make([]balanceKey, 0, len(deltas))
	for k := range deltas {
		if deltas[k] != 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ItemID != keys[j].ItemID {
			return keys[i].ItemID < keys[j].ItemID
		}
		return keys[i].Location < keys[j].Location
	})

	for _, k := range keys {
		balance, err := balanceRepo.GetForUpdate(k.ItemID, k.Location)
		if err != nil {
			return err
		}
		newQty := balance.Quantity + deltas[k]
		if newQty < 0 {
			return fmt.Errorf("artículo %s en %s: %w", k.ItemID, k.Location, domain.ErrInsufficientStock)
		}
		balance.Quantity = newQty
		balance.UpdatedAt = now
		if err := balanceRepo.Upsert(balance); err != nil {
			return err
		}
	}
	return nil
}
