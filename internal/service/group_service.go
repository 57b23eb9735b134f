package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/internal/calculator"
	"github.com/mmynk/splitease/internal/middleware"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/pkg/api"
	"github.com/mmynk/splitease/pkg/api/apiconnect"
)

// Ensure GroupService implements the Connect handler interface
var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// groupResponse resolves member names for a single group.
func (s *GroupService) groupResponse(ctx context.Context, group *models.Group) (*api.Group, error) {
	names, err := userNames(ctx, s.store, group.Members)
	if err != nil {
		return nil, err
	}
	return toAPIGroup(group, names), nil
}

// CreateGroup creates a new group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	creator := middleware.GetUserID(ctx)
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"created_by", creator,
		"members_count", len(req.Msg.MemberIDs),
	)

	members := []string{creator}
	for _, id := range req.Msg.MemberIDs {
		if !slices.Contains(members, id) {
			members = append(members, id)
		}
	}
	found, err := s.store.GetUsersByIDs(ctx, members)
	if err != nil {
		return nil, toConnectError(err)
	}
	for _, id := range members {
		if _, ok := found[id]; !ok {
			return nil, toConnectError(fmt.Errorf("user %s: %w", id, storage.ErrNotFound))
		}
	}

	group := &models.Group{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		Category:    models.GroupCategory(req.Msg.Category),
		Currency:    req.Msg.Currency,
		Members:     members,
		CreatedBy:   creator,
	}
	if group.Category == "" {
		group.Category = models.GroupCategoryOther
	}
	if group.Currency == "" {
		group.Currency = models.DefaultCurrency
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)

	out, err := s.groupResponse(ctx, group)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateGroupResponse{Group: out}), nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := s.groupResponse(ctx, group)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: out}), nil
}

// ListGroups returns the caller's groups, newest first.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.store.ListGroupsByMember(ctx, middleware.GetUserID(ctx))
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	var ids []string
	for _, g := range groups {
		ids = append(ids, g.Members...)
	}
	names, err := userNames(ctx, s.store, ids)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, toAPIGroup(g, names))
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMember adds an existing user to a group. Adding someone twice is rejected.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if group.HasMember(req.Msg.UserID) {
		err := fmt.Errorf("user %s is already a member of group %s: %w", req.Msg.UserID, group.ID, storage.ErrAlreadyExists)
		return nil, toConnectError(err)
	}
	if _, err := s.store.GetUserByID(ctx, req.Msg.UserID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, []string{req.Msg.UserID}); err != nil {
		slog.Error("AddMember failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	group.Members = append(group.Members, req.Msg.UserID)

	slog.Info("Member added", "group_id", group.ID, "user_id", req.Msg.UserID)

	out, err := s.groupResponse(ctx, group)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddMemberResponse{Group: out}), nil
}

// DeleteGroup removes a group with all of its expenses and settlements.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// ListGroupExpenses returns a group's expenses, newest first.
func (s *GroupService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	names, err := userNames(ctx, s.store, group.Members)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toAPIExpense(e, names))
	}
	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: out}), nil
}

// ListGroupSettlements returns a group's settlements of every status, newest first.
func (s *GroupService) ListGroupSettlements(ctx context.Context, req *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	group, err := memberGroup(ctx, s.store, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Settlement, 0, len(settlements))
	for _, st := range settlements {
		out = append(out, toAPISettlement(st))
	}
	return connect.NewResponse(&api.ListGroupSettlementsResponse{Settlements: out}), nil
}

// groupDebts loads a group's history and nets it pairwise.
func (s *GroupService) groupDebts(ctx context.Context, groupID string) ([]models.Debt, map[string]string, error) {
	group, err := memberGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, nil, err
	}

	ledger, err := loadLedger(ctx, s.store, group)
	if err != nil {
		return nil, nil, err
	}
	debts := ledger.Balances()
	balanceDebts.Observe(float64(len(debts)))

	names, err := userNames(ctx, s.store, group.Members)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Group balances computed",
		"group_id", group.ID,
		"expenses_count", len(ledger.Expenses),
		"settlements_count", len(ledger.Settlements),
		"debts_count", len(debts),
	)
	return debts, names, nil
}

// GetGroupBalances returns at most one debt per member pair.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	debts, names, err := s.groupDebts(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetGroupBalancesResponse{Debts: toAPIDebts(debts, names)}), nil
}

// GetSettlementPlan returns the fewest payments that clear the group's balances.
func (s *GroupService) GetSettlementPlan(ctx context.Context, req *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error) {
	debts, names, err := s.groupDebts(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetSettlementPlan failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	plan := calculator.SimplifyDebts(debts)
	return connect.NewResponse(&api.GetSettlementPlanResponse{Payments: toAPIDebts(plan, names)}), nil
}
