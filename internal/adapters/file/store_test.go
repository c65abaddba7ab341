package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/thermoprops/internal/adapters/file"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.QueryStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunQueryStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_RecordOnDisk(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ws", "fluid=Argon"))

	data, err := os.ReadFile(filepath.Join(dir, "ws.json"))
	require.NoError(t, err)

	var rec domain.WorkspaceRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "ws", rec.ID)
	assert.Equal(t, "fluid=Argon", rec.Query)
	assert.False(t, rec.UpdatedAt.IsZero())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, store.Save(ctx, id, "q"), "id %q", id)
	}
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, file.DefaultPath, file.New("").BasePath)
}
