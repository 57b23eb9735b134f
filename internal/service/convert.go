package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/pkg/api"
)

// userNames resolves display names for ids. Unknown users map to their ID.
func userNames(ctx context.Context, users storage.UserStore, ids []string) (map[string]string, error) {
	ids = slices.Compact(slices.Sorted(slices.Values(ids)))
	found, err := users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user names: %w", err)
	}
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if u, ok := found[id]; ok {
			names[id] = u.Name
		} else {
			names[id] = id
		}
	}
	return names, nil
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group, names map[string]string) *api.Group {
	members := make([]api.Member, 0, len(g.Members))
	for _, id := range g.Members {
		members = append(members, api.Member{ID: id, Name: names[id]})
	}
	return &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Category:    string(g.Category),
		Currency:    g.Currency,
		Members:     members,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense, names map[string]string) *api.Expense {
	splits := make([]api.Split, 0, len(e.Splits))
	for _, s := range e.Splits {
		splits = append(splits, api.Split{
			UserID:     s.UserID,
			UserName:   names[s.UserID],
			Amount:     s.Amount,
			Percentage: s.Percentage,
		})
	}
	return &api.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		Splits:      splits,
		Category:    string(e.Category),
		Notes:       e.Notes,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:         s.ID,
		GroupID:    s.GroupID,
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		Amount:     s.Amount,
		Method:     string(s.Method),
		Status:     string(s.Status),
		Note:       s.Note,
		CreatedBy:  s.CreatedBy,
		CreatedAt:  s.CreatedAt,
	}
}

func toAPIDebts(debts []models.Debt, names map[string]string) []api.Debt {
	out := make([]api.Debt, 0, len(debts))
	for _, d := range debts {
		out = append(out, api.Debt{
			FromUserID: d.From,
			FromName:   names[d.From],
			ToUserID:   d.To,
			ToName:     names[d.To],
			Amount:     d.Amount,
		})
	}
	return out
}

func toAPISummary(s models.BalanceSummary, names map[string]string) *api.BalanceSummary {
	details := make([]api.BalanceDetail, 0, len(s.Details))
	for _, d := range s.Details {
		details = append(details, api.BalanceDetail{
			GroupID:   d.GroupID,
			GroupName: d.GroupName,
			Type:      string(d.Direction),
			UserID:    d.CounterpartyID,
			UserName:  names[d.CounterpartyID],
			Amount:    d.Amount,
		})
	}
	return &api.BalanceSummary{
		UserID:     s.UserID,
		TotalOwed:  s.TotalOwed,
		TotalOwes:  s.TotalOwes,
		NetBalance: s.NetBalance,
		Details:    details,
	}
}
