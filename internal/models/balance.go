package models

import "github.com/shopspring/decimal"

// Debt says From owes To exactly Amount within one group.
// Debts are recomputed on every query and never persisted.
type Debt struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// BalanceDirection tags a summary detail from the summarised user's point of view.
type BalanceDirection string

const (
	// BalanceOwes means the user owes the counterparty.
	BalanceOwes BalanceDirection = "OWES"
	// BalanceOwed means the counterparty owes the user.
	BalanceOwed BalanceDirection = "OWED"
)

// BalanceDetail is one per-group, per-counterparty line of a BalanceSummary.
type BalanceDetail struct {
	GroupID        string
	GroupName      string
	Direction      BalanceDirection
	CounterpartyID string
	Amount         decimal.Decimal
}

// BalanceSummary aggregates a user's debts across groups.
type BalanceSummary struct {
	UserID string

	// TotalOwed is what others owe the user.
	TotalOwed decimal.Decimal

	// TotalOwes is what the user owes others.
	TotalOwes decimal.Decimal

	// NetBalance is TotalOwed - TotalOwes. Positive means the user is owed money.
	NetBalance decimal.Decimal

	Details []BalanceDetail
}
