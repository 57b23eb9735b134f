package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitease/internal/calculator"
	"github.com/mmynk/splitease/internal/config"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/internal/storage/memory"
)

func seedDinner(t *testing.T, store storage.Store) string {
	t.Helper()
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		u := models.NewUser(name+"@example.com", name, "")
		require.NoError(t, store.CreateUser(ctx, u))
		ids = append(ids, u.ID)
	}
	group := &models.Group{Name: "Dinner Club", Currency: "INR", Category: models.GroupCategoryOther, Members: ids, CreatedBy: ids[0]}
	require.NoError(t, store.CreateGroup(ctx, group))

	raw := []models.RawSplit{{UserID: ids[0]}, {UserID: ids[1]}, {UserID: ids[2]}}
	splits, err := calculator.ValidateAndComputeSplits(decimal.RequireFromString("90"), models.SplitTypeEqual, raw)
	require.NoError(t, err)
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      decimal.RequireFromString("90"),
		PaidBy:      ids[0],
		SplitType:   models.SplitTypeEqual,
		Splits:      splits,
		Category:    models.ExpenseCategoryFood,
		CreatedBy:   ids[0],
	}))
	require.NoError(t, store.CreateSettlement(ctx, &models.Settlement{
		GroupID:    group.ID,
		FromUserID: ids[2],
		ToUserID:   ids[0],
		Amount:     decimal.RequireFromString("30"),
		Method:     models.SettlementMethodUPI,
	}))
	return group.ID
}

func TestPrintBalances(t *testing.T) {
	store := memory.New()
	groupID := seedDinner(t, store)

	var out bytes.Buffer
	require.NoError(t, printBalances(context.Background(), &out, store, groupID, false))
	assert.Contains(t, out.String(), "Dinner Club (INR)")
	assert.Regexp(t, `Bob\s+Alice\s+30\.00`, out.String())
	assert.NotContains(t, out.String(), "Carol ")

	out.Reset()
	require.NoError(t, printBalances(context.Background(), &out, store, groupID, true))
	assert.Regexp(t, `Bob\s+Alice\s+30\.00`, out.String())

	err := printBalances(context.Background(), &out, store, "missing", false)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPrintBalancesSettledGroup(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	u := models.NewUser("solo@example.com", "Solo", "")
	require.NoError(t, store.CreateUser(ctx, u))
	group := &models.Group{Name: "Solo", Currency: "USD", Members: []string{u.ID}, CreatedBy: u.ID}
	require.NoError(t, store.CreateGroup(ctx, group))

	var out bytes.Buffer
	require.NoError(t, printBalances(ctx, &out, store, group.ID, false))
	assert.Contains(t, out.String(), "All settled up.")
}

func TestHandlerServesHealthAndMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.TokenTTL = time.Hour
	srv := httptest.NewServer(newHandler(cfg, memory.New()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	metrics, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	_, err := openStore(context.Background(), config.DatabaseConfig{Driver: "mongo"})
	assert.Error(t, err)

	store, err := openStore(context.Background(), config.DatabaseConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))
}
