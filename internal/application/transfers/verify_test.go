package transfers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/domain/entity"
)

func TestVerify_MarcaVerificadoYEsTerminal(t *testing.T) {
	f := newEngine(t)
	f.seedItem(t, "item-1", 10)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, basicInput("item-1", 4))
	require.NoError(t, err)

	verified, err := f.uc.Verify(ctx, created.ID, entity.TransferStatusVerified, "todo en orden")
	require.NoError(t, err)

	assert.True(t, verified.Verified)
	assert.Equal(t, entity.TransferStatusVerified, verified.Status)
	assert.Equal(t, "todo en orden", verified.VerificationNotes)

	// La verificación no toca el ledger.
	assert.Equal(t, int64(6), f.qty(t, "item-1", entity.LocationWarehouse))
	assert.Equal(t, int64(4), f.qty(t, "item-1", entity.LocationStore))
}

func TestVerify_ConDiscrepancia(t *testing.T) {
	f := newEngine(t)
	f.seedItem(t, "item-1", 10)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, basicInput("item-1", 4))
	require.NoError(t, err)

	verified, err := f.uc.Verify(ctx, created.ID, entity.TransferStatusDiscrepancy, "faltó una caja")
	require.NoError(t, err)

	assert.True(t, verified.Verified)
	assert.Equal(t, entity.TransferStatusDiscrepancy, verified.Status)
	assert.Equal(t, "faltó una caja", verified.VerificationNotes)
}

func TestVerify_SegundoIntento_PreservaElPrimerResultado(t *testing.T) {
	f := newEngine(t)
	f.seedItem(t, "item-1", 10)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, basicInput("item-1", 4))
	require.NoError(t, err)

	_, err = f.uc.Verify(ctx, created.ID, entity.TransferStatusDiscrepancy, "faltó una caja")
	require.NoError(t, err)

	// El segundo disparo falla y el resultado registrado no cambia.
	_, err = f.uc.Verify(ctx, created.ID, entity.TransferStatusVerified, "ahora sí completo")
	require.ErrorIs(t, err, domain.ErrAlreadyVerified)

	current, err := f.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusDiscrepancy, current.Status)
	assert.Equal(t, "faltó una caja", current.VerificationNotes)
}

func TestVerify_EstadoInvalido(t *testing.T) {
	f := newEngine(t)
	f.seedItem(t, "item-1", 10)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, basicInput("item-1", 4))
	require.NoError(t, err)

	// pending no es un resultado de verificación, y cualquier otro valor tampoco.
	for _, status := range []string{entity.TransferStatusPending, "ok", ""} {
		_, err := f.uc.Verify(ctx, created.ID, status, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "status %q", status)
	}
}

func TestVerify_NoExiste_RetornaNotFound(t *testing.T) {
	f := newEngine(t)
	_, err := f.uc.Verify(context.Background(), "no-existe", entity.TransferStatusVerified, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un traslado verificado sigue siendo editable y borrable: la verificación
// registra el chequeo físico, no congela el documento.
func TestVerify_TrasladoVerificadoSigueSiendoEditable(t *testing.T) {
	f := newEngine(t)
	f.seedItem(t, "item-1", 10)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, basicInput("item-1", 4))
	require.NoError(t, err)
	_, err = f.uc.Verify(ctx, created.ID, entity.TransferStatusVerified, "")
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, created.ID, basicInput("item-1", 6))
	require.NoError(t, err)
	assert.Equal(t, int64(6), updated.TotalQuantity())

	require.NoError(t, f.uc.Delete(ctx, created.ID))
	assert.Equal(t, int64(10), f.qty(t, "item-1", entity.LocationWarehouse))
}
