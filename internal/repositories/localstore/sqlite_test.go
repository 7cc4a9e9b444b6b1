package localstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/localstore"
)

func TestNewSQLite_Validation(t *testing.T) {
	_, err := localstore.NewSQLite(&localstore.SQLiteConfig{Clock: clock(t)})
	assert.True(t, errors.IsInvalidArgument(err))
	_, err = localstore.NewSQLite(&localstore.SQLiteConfig{Path: "x.db"})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabletop.db")
	ctx := context.Background()

	store, err := localstore.NewSQLite(&localstore.SQLiteConfig{Path: path, Clock: clock(t)})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "kinds", []byte(`["goblin"]`)))
	require.NoError(t, store.Close())

	reopened, err := localstore.NewSQLite(&localstore.SQLiteConfig{Path: path, Clock: clock(t)})
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(ctx, "kinds")
	require.NoError(t, err)
	assert.Equal(t, `["goblin"]`, string(got))

	at, err := reopened.UpdatedAt(ctx, "kinds")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC), at)
}

func TestSQLiteStore_CanceledContext(t *testing.T) {
	store, err := localstore.NewSQLite(&localstore.SQLiteConfig{
		Path:  filepath.Join(t.TempDir(), "tabletop.db"),
		Clock: clock(t),
	})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Get(ctx, "kinds")
	assert.Equal(t, errors.CodeCanceled, errors.GetCode(err))
}
