package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/internal/calculator"
	"github.com/mmynk/splitease/internal/middleware"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/pkg/api"
	"github.com/mmynk/splitease/pkg/api/apiconnect"
)

// Ensure UserService implements the Connect handler interface
var _ apiconnect.UserServiceHandler = (*UserService)(nil)

// UserService implements the Connect UserService.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser adds a passwordless user so they can be put into groups before signing up.
func (s *UserService) CreateUser(ctx context.Context, req *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error) {
	user := models.NewUser(req.Msg.Email, req.Msg.Name, "")
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Warn("CreateUser failed", "email", user.Email, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("User created", "user_id", user.ID, "created_by", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.CreateUserResponse{User: toAPIUser(user)}), nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	user, err := s.store.GetUserByID(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetUserResponse{User: toAPIUser(user)}), nil
}

// ListUsers returns every user, newest first.
func (s *UserService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}

// FindUserByEmail looks a user up by email, ignoring case.
func (s *UserService) FindUserByEmail(ctx context.Context, req *connect.Request[api.FindUserByEmailRequest]) (*connect.Response[api.FindUserByEmailResponse], error) {
	user, err := s.store.GetUserByEmail(ctx, req.Msg.Email)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.FindUserByEmailResponse{User: toAPIUser(user)}), nil
}

// GetUserBalances summarises what a user owes and is owed across their groups.
// UserID defaults to the caller; GroupID narrows the summary to one group.
func (s *UserService) GetUserBalances(ctx context.Context, req *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error) {
	userID := req.Msg.UserID
	if userID == "" {
		userID = middleware.GetUserID(ctx)
	}

	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, toConnectError(err)
	}

	groups, err := s.store.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.GroupID != "" {
		groups = filterGroups(groups, req.Msg.GroupID)
	}

	ledgers, err := loadLedgers(ctx, s.store, groups)
	if err != nil {
		slog.Error("GetUserBalances failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	summary := calculator.SummarizeUserBalances(userID, ledgers)

	counterparties := make([]string, 0, len(summary.Details))
	for _, d := range summary.Details {
		counterparties = append(counterparties, d.CounterpartyID)
	}
	names, err := userNames(ctx, s.store, counterparties)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("GetUserBalances computed",
		"user_id", userID,
		"groups", len(ledgers),
		"net_balance", summary.NetBalance.String(),
	)
	return connect.NewResponse(&api.GetUserBalancesResponse{Summary: toAPISummary(summary, names)}), nil
}

func filterGroups(groups []*models.Group, groupID string) []*models.Group {
	for _, g := range groups {
		if g.ID == groupID {
			return []*models.Group{g}
		}
	}
	return nil
}
