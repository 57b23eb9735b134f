package models

import "github.com/shopspring/decimal"

// SplitType selects how an expense amount is divided among its splits.
type SplitType string

const (
	// SplitTypeEqual divides the amount evenly across all splits.
	SplitTypeEqual SplitType = "EQUAL"
	// SplitTypeExact takes each split's amount as given.
	SplitTypeExact SplitType = "EXACT"
	// SplitTypePercentage takes a percentage per split.
	SplitTypePercentage SplitType = "PERCENTAGE"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitTypeEqual, SplitTypeExact, SplitTypePercentage:
		return true
	}
	return false
}

// ExpenseCategory classifies an expense for display purposes.
type ExpenseCategory string

const (
	ExpenseCategoryFood          ExpenseCategory = "food"
	ExpenseCategoryTransport     ExpenseCategory = "transport"
	ExpenseCategoryShopping      ExpenseCategory = "shopping"
	ExpenseCategoryEntertainment ExpenseCategory = "entertainment"
	ExpenseCategoryUtilities     ExpenseCategory = "utilities"
	ExpenseCategoryRent          ExpenseCategory = "rent"
	ExpenseCategoryTravel        ExpenseCategory = "travel"
	ExpenseCategoryOther         ExpenseCategory = "other"
)

// Expense represents money paid by one group member on behalf of several.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable name (e.g., "Dinner at Toit").
	Description string

	// Amount is the total paid. Always positive.
	Amount decimal.Decimal

	// PaidBy is the user ID of the member who paid.
	PaidBy string

	// SplitType records how Splits were computed.
	SplitType SplitType

	// Splits are the computed per-member shares, in input order.
	// Their amounts sum to Amount within 0.01.
	Splits []Split

	// Category classifies the expense. Defaults to "other".
	Category ExpenseCategory

	// Notes is optional free text.
	Notes string

	// CreatedBy is the user ID who recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one member's owed share of an expense.
type Split struct {
	// UserID is the member who owes this share.
	UserID string

	// Amount is the member's share. The payer's own share creates no debt.
	Amount decimal.Decimal

	// Percentage is set only for PERCENTAGE expenses.
	Percentage decimal.NullDecimal
}

// RawSplit is a split as supplied by a caller, before validation.
// Amount is read only for EXACT, Percentage only for PERCENTAGE.
type RawSplit struct {
	UserID     string
	Amount     decimal.NullDecimal
	Percentage decimal.NullDecimal
}
