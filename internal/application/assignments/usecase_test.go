package assignments_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taller-pro/backoffice-api/internal/application/assignments"
	"github.com/taller-pro/backoffice-api/internal/domain"
	"github.com/taller-pro/backoffice-api/internal/infrastructure/memory"
)

func newRegistry(t *testing.T) *assignments.RegistryUseCase {
	t.Helper()
	store := memory.NewStore()
	return assignments.NewRegistryUseCase(
		memory.NewTxRunner(store),
		memory.NewAssignmentRepository(store),
	)
}

func itemInputs(ids ...string) []assignments.ItemInput {
	out := make([]assignments.ItemInput, 0, len(ids))
	for _, id := range ids {
		out = append(out, assignments.ItemInput{ItemID: id})
	}
	return out
}

func TestAssignItems_AsignaYConsulta(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", []assignments.ItemInput{
		{ItemID: "item-1", Comment: "pantalla rota"},
		{ItemID: "item-2"},
	}))

	assignment, err := uc.GetByTechnician(ctx, "tech-1")
	require.NoError(t, err)
	require.Len(t, assignment.Items, 2)
	assert.Equal(t, "pantalla rota", assignment.Items[0].Comment)
}

func TestAssignItems_UnionIdempotente(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", itemInputs("item-1", "item-2")))
	// Repetir item-1 y sumar item-3: los repetidos son no-op.
	require.NoError(t, uc.AssignItems(ctx, "tech-1", itemInputs("item-1", "item-3")))

	assignment, err := uc.GetByTechnician(ctx, "tech-1")
	require.NoError(t, err)
	assert.Len(t, assignment.Items, 3)
}

func TestAssignItems_ExclusividadEntreTecnicos(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", itemInputs("item-1")))

	err := uc.AssignItems(ctx, "tech-2", itemInputs("item-1"))
	require.ErrorIs(t, err, domain.ErrItemAlreadyAssigned)

	// El error tipado nombra el artículo y el técnico en conflicto.
	var assigned *domain.ItemAssignedError
	require.True(t, errors.As(err, &assigned))
	assert.Equal(t, "item-1", assigned.ItemID)
	assert.Equal(t, "tech-1", assigned.TechnicianID)
}

func TestAssignItems_ConflictoParcial_NoAsignaNada(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", itemInputs("item-2")))

	// item-1 estaría libre, pero item-2 pertenece a tech-1: falla todo el lote.
	err := uc.AssignItems(ctx, "tech-2", itemInputs("item-1", "item-2"))
	require.ErrorIs(t, err, domain.ErrItemAlreadyAssigned)

	assignment, err := uc.GetByTechnician(ctx, "tech-2")
	require.NoError(t, err)
	assert.Empty(t, assignment.Items, "ninguna asignación parcial debe quedar confirmada")
}

func TestUnassignItems_LiberaYPermiteReasignar(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", itemInputs("item-1")))
	require.NoError(t, uc.UnassignItems(ctx, "tech-1", []string{"item-1"}))

	// Liberado, otro técnico puede tomarlo.
	require.NoError(t, uc.AssignItems(ctx, "tech-2", itemInputs("item-1")))

	assignment, err := uc.GetByTechnician(ctx, "tech-2")
	require.NoError(t, err)
	assert.Len(t, assignment.Items, 1)
}

func TestUnassignItems_IgnoraArticulosAjenos(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", itemInputs("item-1")))
	require.NoError(t, uc.AssignItems(ctx, "tech-2", itemInputs("item-2")))

	// tech-2 intenta retirar item-1 (de tech-1) junto con el suyo: item-1 se ignora.
	require.NoError(t, uc.UnassignItems(ctx, "tech-2", []string{"item-1", "item-2"}))

	keep, err := uc.GetByTechnician(ctx, "tech-1")
	require.NoError(t, err)
	assert.Len(t, keep.Items, 1, "el artículo de tech-1 no debe ser tocado")

	freed, err := uc.GetByTechnician(ctx, "tech-2")
	require.NoError(t, err)
	assert.Empty(t, freed.Items)
}

func TestUpdateComment_ActualizaYValidaPertenencia(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", []assignments.ItemInput{
		{ItemID: "item-1", Comment: "original"},
	}))

	require.NoError(t, uc.UpdateComment(ctx, "tech-1", "item-1", "nueva nota"))
	assignment, err := uc.GetByTechnician(ctx, "tech-1")
	require.NoError(t, err)
	assert.Equal(t, "nueva nota", assignment.Items[0].Comment)

	// Artículo de otro técnico o inexistente: NotFound.
	assert.ErrorIs(t, uc.UpdateComment(ctx, "tech-2", "item-1", "x"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.UpdateComment(ctx, "tech-1", "no-existe", "x"), domain.ErrNotFound)
}

func TestGetByTechnician_SinAsignaciones_DevuelveConjuntoVacio(t *testing.T) {
	uc := newRegistry(t)

	assignment, err := uc.GetByTechnician(context.Background(), "tech-sin-nada")
	require.NoError(t, err)
	assert.Equal(t, "tech-sin-nada", assignment.TechnicianID)
	assert.Empty(t, assignment.Items)
}

func TestList_AgrupaPorTecnico(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignItems(ctx, "tech-1", itemInputs("item-1", "item-2")))
	require.NoError(t, uc.AssignItems(ctx, "tech-2", itemInputs("item-3")))

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "tech-1", list[0].TechnicianID)
	assert.Len(t, list[0].Items, 2)
	assert.Equal(t, "tech-2", list[1].TechnicianID)
	assert.Len(t, list[1].Items, 1)
}

func TestValidaciones_EntradasVacias(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.AssignItems(ctx, "", itemInputs("item-1")), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.AssignItems(ctx, "tech-1", nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.AssignItems(ctx, "tech-1", itemInputs("")), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UnassignItems(ctx, "tech-1", nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateComment(ctx, "", "item-1", "x"), domain.ErrInvalidInput)

	_, err := uc.GetByTechnician(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Asignaciones concurrentes del mismo artículo a técnicos distintos: la
// comprobación de exclusividad corre dentro de la transacción del registro,
// así que exactamente una gana y el resto recibe el conflicto.
func TestAssignItems_ConcurrenciaSobreElMismoArticulo_SoloUnoGana(t *testing.T) {
	uc := newRegistry(t)
	ctx := context.Background()

	techs := []string{"tech-1", "tech-2", "tech-3", "tech-4"}
	errs := make(chan error, len(techs))
	var wg sync.WaitGroup
	for _, tech := range techs {
		wg.Add(1)
		go func(tech string) {
			defer wg.Done()
			errs <- uc.AssignItems(ctx, tech, itemInputs("item-x"))
		}(tech)
	}
	wg.Wait()
	close(errs)

	var exitos, conflictos int
	for err := range errs {
		if err == nil {
			exitos++
		} else {
			require.ErrorIs(t, err, domain.ErrItemAlreadyAssigned)
			conflictos++
		}
	}
	assert.Equal(t, 1, exitos, "exactamente un técnico debe quedarse con el artículo")
	assert.Equal(t, len(techs)-1, conflictos)

	duenos := 0
	for _, tech := range techs {
		assignment, err := uc.GetByTechnician(ctx, tech)
		require.NoError(t, err)
		if len(assignment.Items) > 0 {
			duenos++
			assert.Equal(t, "item-x", assignment.Items[0].ItemID)
		}
	}
	assert.Equal(t, 1, duenos, "el artículo debe tener un único dueño")
}
