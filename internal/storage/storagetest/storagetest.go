// Package storagetest holds behaviour tests shared by every storage.Store backend.
package storagetest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
)

// Run exercises store against the storage.Store contract.
// newStore must return an empty store; it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("groups", func(t *testing.T) { testGroups(t, newStore(t)) })
	t.Run("expenses", func(t *testing.T) { testExpenses(t, newStore(t)) })
	t.Run("settlements", func(t *testing.T) { testSettlements(t, newStore(t)) })
	t.Run("delete group cascades", func(t *testing.T) { testDeleteGroup(t, newStore(t)) })
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newGroup(t *testing.T, store storage.Store, members ...string) *models.Group {
	t.Helper()
	group := &models.Group{
		Name:     "Goa Trip",
		Category: models.GroupCategoryTrip,
		Currency: models.DefaultCurrency,
		Members:  members,
	}
	if len(members) > 0 {
		group.CreatedBy = members[0]
	}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group
}

func testUsers(t *testing.T, store storage.Store) {
	ctx := context.Background()

	alice := models.NewUser("Alice@Example.com ", "Alice", "hash")
	require.NoError(t, store.CreateUser(ctx, alice))
	assert.Equal(t, "alice@example.com", alice.Email)

	bob := &models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, store.CreateUser(ctx, bob))
	assert.NotEmpty(t, bob.ID, "ID should be generated")
	assert.NotZero(t, bob.CreatedAt)

	got, err := store.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	got, err = store.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = store.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	dup := &models.User{Name: "Alice Again", Email: "alice@example.com"}
	assert.ErrorIs(t, store.CreateUser(ctx, dup), storage.ErrAlreadyExists)

	users, err := store.GetUsersByIDs(ctx, []string{alice.ID, bob.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Bob", users[bob.ID].Name)

	empty, err := store.GetUsersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	all, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testGroups(t *testing.T, store storage.Store) {
	ctx := context.Background()

	group := newGroup(t, store, "alice", "bob")
	assert.NotEmpty(t, group.ID)
	assert.NotZero(t, group.CreatedAt)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Goa Trip", got.Name)
	assert.Equal(t, models.GroupCategoryTrip, got.Category)
	assert.Equal(t, []string{"alice", "bob"}, got.Members)

	require.NoError(t, store.AddGroupMembers(ctx, group.ID, []string{"bob", "carol"}))
	got, err = store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, got.Members, "existing members are skipped, order kept")

	assert.ErrorIs(t, store.AddGroupMembers(ctx, "missing", []string{"x"}), storage.ErrNotFound)

	_, err = store.GetGroup(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	other := newGroup(t, store, "carol")
	groups, err := store.ListGroupsByMember(ctx, "carol")
	require.NoError(t, err)
	ids := []string{}
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	assert.ElementsMatch(t, []string{group.ID, other.ID}, ids)

	groups, err = store.ListGroupsByMember(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func testExpenses(t *testing.T, store storage.Store) {
	ctx := context.Background()
	group := newGroup(t, store, "alice", "bob", "carol")

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      mustDecimal(t, "100"),
		PaidBy:      "alice",
		SplitType:   models.SplitTypePercentage,
		Category:    models.ExpenseCategoryFood,
		CreatedBy:   "alice",
		Splits: []models.Split{
			{UserID: "alice", Amount: mustDecimal(t, "33.33"), Percentage: decimal.NewNullDecimal(mustDecimal(t, "33.33"))},
			{UserID: "bob", Amount: mustDecimal(t, "33.33"), Percentage: decimal.NewNullDecimal(mustDecimal(t, "33.33"))},
			{UserID: "carol", Amount: mustDecimal(t, "33.34"), Percentage: decimal.NewNullDecimal(mustDecimal(t, "33.34"))},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	assert.NotEmpty(t, expense.ID)

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", got.Description)
	assert.True(t, got.Amount.Equal(expense.Amount), "amount %s", got.Amount)
	assert.Equal(t, models.SplitTypePercentage, got.SplitType)
	require.Len(t, got.Splits, 3)
	for i, split := range got.Splits {
		assert.Equal(t, expense.Splits[i].UserID, split.UserID)
		assert.True(t, split.Amount.Equal(expense.Splits[i].Amount), "split %d amount %s", i, split.Amount)
		require.True(t, split.Percentage.Valid)
		assert.True(t, split.Percentage.Decimal.Equal(expense.Splits[i].Percentage.Decimal))
	}

	exact := &models.Expense{
		GroupID:   group.ID,
		Amount:    mustDecimal(t, "40"),
		PaidBy:    "bob",
		SplitType: models.SplitTypeExact,
		Splits:    []models.Split{{UserID: "carol", Amount: mustDecimal(t, "40")}},
	}
	require.NoError(t, store.CreateExpense(ctx, exact))

	list, err := store.ListExpensesByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, e := range list {
		assert.NotEmpty(t, e.Splits, "splits are loaded for %s", e.ID)
		if e.ID == exact.ID {
			assert.False(t, e.Splits[0].Percentage.Valid)
		}
	}

	orphan := &models.Expense{GroupID: "missing", Amount: mustDecimal(t, "1"), PaidBy: "x", SplitType: models.SplitTypeEqual}
	assert.ErrorIs(t, store.CreateExpense(ctx, orphan), storage.ErrNotFound)

	require.NoError(t, store.DeleteExpense(ctx, expense.ID))
	_, err = store.GetExpense(ctx, expense.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.DeleteExpense(ctx, expense.ID), storage.ErrNotFound)
}

func testSettlements(t *testing.T, store storage.Store) {
	ctx := context.Background()
	group := newGroup(t, store, "alice", "bob")

	settlement := &models.Settlement{
		GroupID:    group.ID,
		FromUserID: "bob",
		ToUserID:   "alice",
		Amount:     mustDecimal(t, "25.50"),
		Method:     models.SettlementMethodUPI,
		Status:     models.SettlementStatusCompleted,
		CreatedBy:  "bob",
		Note:       "dinner",
	}
	require.NoError(t, store.CreateSettlement(ctx, settlement))
	assert.NotEmpty(t, settlement.ID)

	pending := &models.Settlement{
		GroupID:    group.ID,
		FromUserID: "alice",
		ToUserID:   "bob",
		Amount:     mustDecimal(t, "5"),
		Method:     models.SettlementMethodCash,
		Status:     models.SettlementStatusPending,
	}
	require.NoError(t, store.CreateSettlement(ctx, pending))

	got, err := store.GetSettlement(ctx, settlement.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.FromUserID)
	assert.Equal(t, "alice", got.ToUserID)
	assert.True(t, got.Amount.Equal(settlement.Amount))
	assert.Equal(t, models.SettlementMethodUPI, got.Method)
	assert.Equal(t, "dinner", got.Note)
	assert.True(t, got.Completed())

	list, err := store.ListSettlementsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2, "all statuses are listed")

	require.NoError(t, store.DeleteSettlement(ctx, settlement.ID))
	_, err = store.GetSettlement(ctx, settlement.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.DeleteSettlement(ctx, "missing"), storage.ErrNotFound)
}

func testDeleteGroup(t *testing.T, store storage.Store) {
	ctx := context.Background()
	group := newGroup(t, store, "alice", "bob")
	keep := newGroup(t, store, "alice", "bob")

	for _, g := range []*models.Group{group, keep} {
		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			GroupID:   g.ID,
			Amount:    mustDecimal(t, "10"),
			PaidBy:    "alice",
			SplitType: models.SplitTypeExact,
			Splits:    []models.Split{{UserID: "bob", Amount: mustDecimal(t, "10")}},
		}))
		require.NoError(t, store.CreateSettlement(ctx, &models.Settlement{
			GroupID:    g.ID,
			FromUserID: "bob",
			ToUserID:   "alice",
			Amount:     mustDecimal(t, "10"),
			Method:     models.SettlementMethodCash,
			Status:     models.SettlementStatusCompleted,
		}))
	}

	require.NoError(t, store.DeleteGroup(ctx, group.ID))

	_, err := store.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	expenses, err := store.ListExpensesByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, expenses)
	settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, settlements)

	expenses, err = store.ListExpensesByGroup(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, expenses, 1, "other groups are untouched")

	assert.ErrorIs(t, store.DeleteGroup(ctx, group.ID), storage.ErrNotFound)
}
