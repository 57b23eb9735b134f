package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitease/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")

	res, err := alice.groups.CreateGroup(ctx, &api.CreateGroupRequest{
		Name:      "Flat 4B",
		MemberIDs: []string{bob.id, bob.id, alice.id},
	})
	require.NoError(t, err)

	group := res.Group
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "other", group.Category)
	assert.Equal(t, "INR", group.Currency)
	assert.Equal(t, alice.id, group.CreatedBy)
	assert.Equal(t, []api.Member{{ID: alice.id, Name: "alice"}, {ID: bob.id, Name: "bob"}}, group.Members,
		"creator first, duplicates dropped")

	t.Run("unknown member", func(t *testing.T) {
		_, err := alice.groups.CreateGroup(ctx, &api.CreateGroupRequest{Name: "Ghosts", MemberIDs: []string{"nobody"}})
		assertCode(t, connect.CodeNotFound, err)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := alice.groups.CreateGroup(ctx, &api.CreateGroupRequest{Name: "   "})
		assertCode(t, connect.CodeInvalidArgument, err)
	})

	t.Run("bad category", func(t *testing.T) {
		_, err := alice.groups.CreateGroup(ctx, &api.CreateGroupRequest{Name: "X", Category: "pirates"})
		assertCode(t, connect.CodeInvalidArgument, err)
	})
}

func TestListGroupsOnlyShowsCallersGroups(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	carol := srv.signUp(t, "carol")

	shared := newGroup(t, alice, bob)
	newGroup(t, carol)

	res, err := bob.groups.ListGroups(ctx, &api.ListGroupsRequest{})
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, shared.ID, res.Groups[0].ID)
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	group := newGroup(t, alice)

	res, err := alice.groups.AddMember(ctx, &api.AddMemberRequest{GroupID: group.ID, UserID: bob.id})
	require.NoError(t, err)
	assert.Len(t, res.Group.Members, 2)

	_, err = alice.groups.AddMember(ctx, &api.AddMemberRequest{GroupID: group.ID, UserID: bob.id})
	assertCode(t, connect.CodeAlreadyExists, err)

	_, err = alice.groups.AddMember(ctx, &api.AddMemberRequest{GroupID: group.ID, UserID: "nobody"})
	assertCode(t, connect.CodeNotFound, err)

	_, err = alice.groups.AddMember(ctx, &api.AddMemberRequest{GroupID: "missing", UserID: bob.id})
	assertCode(t, connect.CodeNotFound, err)

	// Bob is a member now and can see the group.
	got, err := bob.groups.GetGroup(ctx, &api.GetGroupRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Equal(t, group.ID, got.Group.ID)
}

func TestOutsidersCannotUseGroup(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	mallory := srv.signUp(t, "mallory")
	group := newGroup(t, alice, bob)

	_, err := mallory.groups.GetGroup(ctx, &api.GetGroupRequest{GroupID: group.ID})
	assertCode(t, connect.CodePermissionDenied, err)

	_, err = mallory.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
	assertCode(t, connect.CodePermissionDenied, err)

	_, err = mallory.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
		GroupID:     group.ID,
		Description: "Sneaky",
		Amount:      dec("10"),
		PaidBy:      alice.id,
		SplitType:   "EQUAL",
		Splits:      []api.RawSplit{{UserID: bob.id}},
	})
	assertCode(t, connect.CodePermissionDenied, err)

	_, err = mallory.groups.DeleteGroup(ctx, &api.DeleteGroupRequest{GroupID: group.ID})
	assertCode(t, connect.CodePermissionDenied, err)
}

func TestNonMemberParticipantsAreRejected(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	carol := srv.signUp(t, "carol")
	group := newGroup(t, alice, bob)

	_, err := alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
		GroupID:     group.ID,
		Description: "Lunch",
		Amount:      dec("30"),
		PaidBy:      carol.id,
		SplitType:   "EQUAL",
		Splits:      []api.RawSplit{{UserID: alice.id}, {UserID: bob.id}},
	})
	assertCode(t, connect.CodeFailedPrecondition, err)

	_, err = alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
		GroupID:     group.ID,
		Description: "Lunch",
		Amount:      dec("30"),
		PaidBy:      alice.id,
		SplitType:   "EQUAL",
		Splits:      []api.RawSplit{{UserID: alice.id}, {UserID: carol.id}},
	})
	assertCode(t, connect.CodeFailedPrecondition, err)

	_, err = alice.settlement.RecordSettlement(ctx, &api.RecordSettlementRequest{
		GroupID:    group.ID,
		FromUserID: carol.id,
		ToUserID:   alice.id,
		Amount:     dec("5"),
	})
	assertCode(t, connect.CodeFailedPrecondition, err)

	_, err = alice.settlement.RecordSettlement(ctx, &api.RecordSettlementRequest{
		GroupID:    group.ID,
		FromUserID: alice.id,
		ToUserID:   alice.id,
		Amount:     dec("5"),
	})
	assertCode(t, connect.CodeInvalidArgument, err)

	_, err = alice.settlement.RecordSettlement(ctx, &api.RecordSettlementRequest{
		GroupID:    group.ID,
		FromUserID: bob.id,
		ToUserID:   alice.id,
		Amount:     dec("-5"),
	})
	assertCode(t, connect.CodeInvalidArgument, err)
}

func TestDeleteGroupRemovesHistory(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	group := newGroup(t, alice, bob)

	expense, err := alice.expenses.CreateExpense(ctx, &api.CreateExpenseRequest{
		GroupID:     group.ID,
		Description: "Rent",
		Amount:      dec("1000"),
		PaidBy:      alice.id,
		SplitType:   "EQUAL",
		Splits:      []api.RawSplit{{UserID: alice.id}, {UserID: bob.id}},
	})
	require.NoError(t, err)

	_, err = alice.groups.DeleteGroup(ctx, &api.DeleteGroupRequest{GroupID: group.ID})
	require.NoError(t, err)

	_, err = alice.groups.GetGroup(ctx, &api.GetGroupRequest{GroupID: group.ID})
	assertCode(t, connect.CodeNotFound, err)
	_, err = alice.expenses.GetExpense(ctx, &api.GetExpenseRequest{ExpenseID: expense.Expense.ID})
	assertCode(t, connect.CodeNotFound, err)

	summary, err := bob.users.GetUserBalances(ctx, &api.GetUserBalancesRequest{})
	require.NoError(t, err)
	assertDecimal(t, "0", summary.Summary.NetBalance)
	assert.Empty(t, summary.Summary.Details)
}

func TestListGroupSettlementsIncludesEveryRecord(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, nil, nil)
	alice := srv.signUp(t, "alice")
	bob := srv.signUp(t, "bob")
	group := newGroup(t, alice, bob)

	for _, amount := range []string{"5", "7.5"} {
		_, err := bob.settlement.RecordSettlement(ctx, &api.RecordSettlementRequest{
			GroupID:    group.ID,
			FromUserID: bob.id,
			ToUserID:   alice.id,
			Amount:     dec(amount),
			Note:       "paid back",
		})
		require.NoError(t, err)
	}

	res, err := alice.groups.ListGroupSettlements(ctx, &api.ListGroupSettlementsRequest{GroupID: group.ID})
	require.NoError(t, err)
	require.Len(t, res.Settlements, 2)
	assertDecimal(t, "7.5", res.Settlements[0].Amount, "newest first")
	assert.Equal(t, "paid back", res.Settlements[1].Note)

	// Overpaying flips the direction of the debt.
	balances, err := alice.groups.GetGroupBalances(ctx, &api.GetGroupBalancesRequest{GroupID: group.ID})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"alice->bob": "12.50"}, debtMap(balances.Debts))
}
