package service

import (
	"context"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/internal/storage/memory"
	"github.com/mmynk/splitease/internal/storage/sqlite"
	"github.com/mmynk/splitease/pkg/api"
)

func stores(t *testing.T) map[string]func() storage.Store {
	return map[string]func() storage.Store{
		"memory": func() storage.Store { return memory.New() },
		"sqlite": func() storage.Store {
			store, err := sqlite.New(filepath.Join(t.TempDir(), "splitease.db"))
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
	}
}

// The trip: Alice pays 300 split three ways, Bob pays 60 split with Carol,
// then Carol pays Alice back 50.
func TestTripScenario(t *testing.T) {
	for name, newStore := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			srv := newTestServer(t, newStore(), nil)
			alice := srv.signUp(t, "alice")
			bob := srv.signUp(t, "bob")
			carol := srv.signUp(t, "carol")
			group := newGroup(t, alice, bob, carol)

			_, err := alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
				GroupID:     group.ID,
				Description: "Villa",
				Amount:      dec("300"),
				PaidBy:      alice.id,
				SplitType:   "EQUAL",
				Splits:      []api.RawSplit{{UserID: alice.id}, {UserID: bob.id}, {UserID: carol.id}},
			})
			require.NoError(t, err)

			_, err = bob.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
				GroupID:     group.ID,
				Description: "Scooters",
				Amount:      dec("60"),
				PaidBy:      bob.id,
				SplitType:   "EXACT",
				Splits: []api.RawSplit{
					{UserID: bob.id, Amount: nullDec("30")},
					{UserID: carol.id, Amount: nullDec("30")},
				},
			})
			require.NoError(t, err)

			_, err = carol.settlement.RecordSettlement(ctx, &api.RecordSettlementRequest{
				GroupID:    group.ID,
				FromUserID: carol.id,
				ToUserID:   alice.id,
				Amount:     dec("50"),
				Method:     "upi",
			})
			require.NoError(t, err)

			balances, err := bob.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
			require.NoError(t, err)
			assert.Equal(t, map[string]string{
				"bob->alice":   "100.00",
				"carol->alice": "50.00",
				"carol->bob":   "30.00",
			}, debtMap(balances.Debts))

			summary, err := alice.users.GetUserBalances(ctx, &api.GetUserBalancesRequest{})
			require.NoError(t, err)
			assertDecimal(t, "150", summary.Summary.TotalOwed)
			assertDecimal(t, "0", summary.Summary.TotalOwes)
			assertDecimal(t, "150", summary.Summary.NetBalance)
			assert.Len(t, summary.Summary.Details, 2)
			for _, d := range summary.Summary.Details {
				assert.Equal(t, "OWED", d.Type)
				assert.Equal(t, "Goa Trip", d.GroupName)
			}

			summary, err = alice.users.GetUserBalances(ctx, &api.GetUserBalancesRequest{UserID: carol.id})
			require.NoError(t, err)
			assertDecimal(t, "0", summary.Summary.TotalOwed)
			assertDecimal(t, "80", summary.Summary.TotalOwes)
			assertDecimal(t, "-80", summary.Summary.NetBalance)

			plan, err := carol.groups.GetSettlementPlan(ctx, &api.GetSettlementPlanRequest{GroupID: group.ID})
			require.NoError(t, err)
			assert.Equal(t, map[string]string{
				"carol->alice": "80.00",
				"bob->alice":   "70.00",
			}, debtMap(plan.Payments))
		})
	}
}

func TestRejectedExpenseIsNotStored(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	group := newGroup(t, alice, bob)

	_, err := alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      dec("100"),
		PaidBy:      alice.id,
		SplitType:   "EXACT",
		Splits: []api.RawSplit{
			{UserID: alice.id, Amount: nullDec("50")},
			{UserID: bob.id, Amount: nullDec("45")},
		},
	})
	assertCode(t, connect.CodeInvalidArgument, err)

	list, err := alice.groups.ListGroupExpenses(ctx, &api.ListGroupExpensesRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Expenses)

	balances, err := alice.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Empty(t, balances.Debts)
}

func TestPercentageExpenseKeepsPercentages(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	group := newGroup(t, alice, bob)

	res, err := alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
		GroupID:     group.ID,
		Description: "Groceries",
		Amount:      dec("80"),
		PaidBy:      alice.id,
		SplitType:   "PERCENTAGE",
		Category:    "food",
		Splits: []api.RawSplit{
			{UserID: alice.id, Percentage: nullDec("25")},
			{UserID: bob.id, Percentage: nullDec("75")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Expense.Splits, 2)
	assertDecimal(t, "60", res.Expense.Splits[1].Amount)
	require.True(t, res.Expense.Splits[1].Percentage.Valid)
	assertDecimal(t, "75", res.Expense.Splits[1].Percentage.Decimal)
	assert.Equal(t, "bob", res.Expense.Splits[1].UserName)

	got, err := bob.expenses.GetExpense(ctx, &api.GetExpenseRequest{ExpenseID: res.Expense.ID})
	require.NoError(t, err)
	assert.Equal(t, "food", got.Expense.Category)

	balances, err := bob.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bob->alice": "60.00"}, debtMap(balances.Debts))
}

func TestDeletesRestoreBalances(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	group := newGroup(t, alice, bob)

	expense, err := alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
		GroupID:     group.ID,
		Description: "Taxi",
		Amount:      dec("40"),
		PaidBy:      alice.id,
		SplitType:   "EQUAL",
		Splits:      []api.RawSplit{{UserID: alice.id}, {UserID: bob.id}},
	})
	require.NoError(t, err)

	settled, err := bob.settlement.RecordSettlement(ctx, &api.RecordSettlementRequest{
		GroupID:    group.ID,
		FromUserID: bob.id,
		ToUserID:   alice.id,
		Amount:     dec("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", settled.Settlement.Status)
	assert.Equal(t, "cash", settled.Settlement.Method)

	balances, err := alice.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Empty(t, balances.Debts, "settled in full")

	_, err = bob.settlement.DeleteSettlement(ctx, &api.DeleteSettlementRequest{SettlementID: settled.Settlement.ID})
	require.NoError(t, err)
	balances, err = alice.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bob->alice": "20.00"}, debtMap(balances.Debts))

	_, err = alice.expenses.DeleteExpense(ctx, &api.DeleteExpenseRequest{ExpenseID: expense.Expense.ID})
	require.NoError(t, err)
	balances, err = alice.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Empty(t, balances.Debts)

	_, err = alice.expenses.DeleteExpense(ctx, &api.DeleteExpenseRequest{ExpenseID: expense.Expense.ID})
	assertCode(t, connect.CodeNotFound, err)
	_, err = alice.settlement.DeleteSettlement(ctx, &api.DeleteSettlementRequest{SettlementID: "missing"})
	assertCode(t, connect.CodeNotFound, err)
}

func TestUserBalancesGroupFilter(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	trip := newGroup(t, alice, bob)
	flat := newGroup(t, alice, bob)

	for _, g := range []*api.Group{trip, flat} {
		_, err := alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
			GroupID:     g.ID,
			Description: "Shared",
			Amount:      dec("10"),
			PaidBy:      alice.id,
			SplitType:   "EXACT",
			Splits:      []api.RawSplit{{UserID: bob.id, Amount: nullDec("10")}},
		})
		require.NoError(t, err)
	}

	all, err := bob.users.GetUserBalances(ctx, &api.GetUserBalancesRequest{})
	require.NoError(t, err)
	assertDecimal(t, "20", all.Summary.TotalOwes)
	assert.Len(t, all.Summary.Details, 2)

	one, err := bob.users.GetUserBalances(ctx, &api.GetUserBalancesRequest{GroupID: flat.ID})
	require.NoError(t, err)
	assertDecimal(t, "10", one.Summary.TotalOwes)
	require.Len(t, one.Summary.Details, 1)
	assert.Equal(t, flat.ID, one.Summary.Details[0].GroupID)
	assert.Equal(t, "OWES", one.Summary.Details[0].Type)
	assert.Equal(t, "alice", one.Summary.Details[0].UserName)

	_, err = bob.users.GetUserBalances(ctx, &api.GetUserBalancesRequest{UserID: "missing"})
	assertCode(t, connect.CodeNotFound, err)
}
