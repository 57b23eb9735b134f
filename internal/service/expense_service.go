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

// Ensure ExpenseService implements the Connect handler interface
var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense validates and records an expense. Nothing is written unless
// the payer and every split member belong to the group and the splits add up.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	slog.Info("CreateExpense request received",
		"group_id", msg.GroupID,
		"amount", msg.Amount.String(),
		"split_type", msg.SplitType,
		"splits_count", len(msg.Splits),
	)

	group, err := memberGroup(ctx, s.store, msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	raw := make([]models.RawSplit, 0, len(msg.Splits))
	for _, split := range msg.Splits {
		raw = append(raw, models.RawSplit{
			UserID:     split.UserID,
			Amount:     split.Amount,
			Percentage: split.Percentage,
		})
	}

	if err := calculator.ValidateMembership(group, msg.PaidBy, raw); err != nil {
		slog.Warn("CreateExpense rejected", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	splitType := models.SplitType(msg.SplitType)
	splits, err := calculator.ValidateAndComputeSplits(msg.Amount, splitType, raw)
	if err != nil {
		slog.Warn("CreateExpense rejected", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: msg.Description,
		Amount:      msg.Amount,
		PaidBy:      msg.PaidBy,
		SplitType:   splitType,
		Splits:      splits,
		Category:    models.ExpenseCategory(msg.Category),
		Notes:       msg.Notes,
		CreatedBy:   middleware.GetUserID(ctx),
	}
	if expense.Category == "" {
		expense.Category = models.ExpenseCategoryOther
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}
	expensesCreated.WithLabelValues(string(splitType)).Inc()

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", group.ID)

	names, err := userNames(ctx, s.store, group.Members)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense, names)}), nil
}

// GetExpense retrieves an expense from a group the caller belongs to.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	group, err := memberGroup(ctx, s.store, expense.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	names, err := userNames(ctx, s.store, group.Members)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense, names)}), nil
}

// DeleteExpense removes an expense. Balances reflect the removal on the next query.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := memberGroup(ctx, s.store, expense.GroupID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID, "group_id", expense.GroupID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}
