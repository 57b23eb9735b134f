package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitease/internal/models"
)

// GroupLedger is a consistent snapshot of one group's history.
type GroupLedger struct {
	GroupID     string
	GroupName   string
	Members     []string
	Expenses    []*models.Expense
	Settlements []*models.Settlement
}

// Balances runs ComputeGroupBalances over the snapshot.
func (g GroupLedger) Balances() []models.Debt {
	return ComputeGroupBalances(g.Members, g.Expenses, g.Settlements)
}

// SummarizeUserBalances aggregates userID's debts across the given groups.
// Totals are rounded once, after aggregation.
func SummarizeUserBalances(userID string, groups []GroupLedger) models.BalanceSummary {
	totalOwed := decimal.Zero
	totalOwes := decimal.Zero
	details := make([]models.BalanceDetail, 0)

	for _, g := range groups {
		for _, debt := range g.Balances() {
			switch userID {
			case debt.From:
				totalOwes = totalOwes.Add(debt.Amount)
				details = append(details, models.BalanceDetail{
					GroupID:        g.GroupID,
					GroupName:      g.GroupName,
					Direction:      models.BalanceOwes,
					CounterpartyID: debt.To,
					Amount:         debt.Amount,
				})
			case debt.To:
				totalOwed = totalOwed.Add(debt.Amount)
				details = append(details, models.BalanceDetail{
					GroupID:        g.GroupID,
					GroupName:      g.GroupName,
					Direction:      models.BalanceOwed,
					CounterpartyID: debt.From,
					Amount:         debt.Amount,
				})
			}
		}
	}

	return models.BalanceSummary{
		UserID:     userID,
		TotalOwed:  Round2(totalOwed),
		TotalOwes:  Round2(totalOwes),
		NetBalance: Round2(totalOwed.Sub(totalOwes)),
		Details:    details,
	}
}
