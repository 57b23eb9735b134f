package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return newTestStore(t) })
}

func TestMigrationsAreIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, Migrate(context.Background(), store.DB()))
	require.NoError(t, store.Ping(context.Background()))
}

func TestDecimalsRoundTripExactly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	group := &models.Group{Name: "Flat", Members: []string{"alice", "bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	// 0.1 has no exact binary representation; a REAL column would not give it back.
	amount := decimal.RequireFromString("0.10")
	require.NoError(t, store.CreateSettlement(ctx, &models.Settlement{
		ID:         "s1",
		GroupID:    group.ID,
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     amount,
		Status:     models.SettlementStatusCompleted,
	}))

	var raw string
	require.NoError(t, store.DB().QueryRowContext(ctx, "SELECT amount FROM settlements WHERE id = 's1'").Scan(&raw))
	assert.Equal(t, "0.1", raw)

	got, err := store.GetSettlement(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, amount.Equal(got.Amount))
}

func TestForeignKeysCascade(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	group := &models.Group{Name: "Flat", Members: []string{"alice"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	// Deleting the group row directly must take the member rows with it.
	_, err := store.DB().ExecContext(ctx, "DELETE FROM groups WHERE id = ?", group.ID)
	require.NoError(t, err)

	var n int
	require.NoError(t, store.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM group_members").Scan(&n))
	assert.Zero(t, n)
}
