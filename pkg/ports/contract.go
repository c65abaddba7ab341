package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunQueryStoreContract runs a suite of tests to verify that a QueryStore implementation
// adheres to the defined interface contract.
func RunQueryStoreContract(t *testing.T, store QueryStore) {
	ctx := context.Background()
	id := "contract-test-workspace-" + time.Now().Format("20060102150405")
	query := "fluid=Nitrogen&isoline=19&plot=ph&states=W10%3D&units=si&view=graph"

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, query), "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, query, loaded)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, query))
		require.NoError(t, store.Save(ctx, id, "fluid=Argon"))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "fluid=Argon", loaded)
	})

	t.Run("Empty Query", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, ""))

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, query))

		require.NoError(t, store.Delete(ctx, id), "Delete should not return error")

		_, err := store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound, "Load after Delete should return ErrWorkspaceNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, query))
		require.NoError(t, store.Save(ctx, id2, query))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// RunPresetLoaderContract verifies that a PresetLoader serves exactly the expected presets.
func RunPresetLoaderContract(t *testing.T, loader PresetLoader, expected map[string]domain.Preset) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetPreset_Success", func(t *testing.T) {
		for id, want := range expected {
			got, err := loader.GetPreset(ctx, id)
			require.NoError(t, err, "preset %s", id)
			assert.Equal(t, want, got)
		}
	})

	t.Run("GetPreset_NotFound", func(t *testing.T) {
		_, err := loader.GetPreset(ctx, "non-existent-preset")
		assert.ErrorIs(t, err, domain.ErrPresetNotFound)
	})

	t.Run("ListPresets", func(t *testing.T) {
		ids, err := loader.ListPresets(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, len(expected))
		for id := range expected {
			assert.Contains(t, ids, id)
		}
	})
}
