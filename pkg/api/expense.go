package api

import "github.com/shopspring/decimal"

// CreateExpenseRequest records an expense. Amount sign and split consistency are
// checked by the balance engine, not here.
type CreateExpenseRequest struct {
	GroupID     string          `json:"groupId" validate:"required"`
	Description string          `json:"description" validate:"required,notblank,max=200"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paidBy" validate:"required"`
	SplitType   string          `json:"splitType" validate:"required,oneof=EQUAL EXACT PERCENTAGE"`
	Splits      []RawSplit      `json:"splits" validate:"required,min=1,dive"`
	Category    string          `json:"category,omitempty" validate:"omitempty,oneof=food transport shopping entertainment utilities rent travel other"`
	Notes       string          `json:"notes,omitempty" validate:"max=1000"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId" validate:"required"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId" validate:"required"`
}

type DeleteExpenseResponse struct{}
