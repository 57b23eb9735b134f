package models

import "github.com/shopspring/decimal"

// SettlementStatus tracks whether a settlement counts toward balances.
type SettlementStatus string

const (
	SettlementStatusPending   SettlementStatus = "pending"
	SettlementStatusCompleted SettlementStatus = "completed"
	SettlementStatusCancelled SettlementStatus = "cancelled"
)

// SettlementMethod records how the money moved. Informational only.
type SettlementMethod string

const (
	SettlementMethodCash         SettlementMethod = "cash"
	SettlementMethodUPI          SettlementMethod = "upi"
	SettlementMethodBankTransfer SettlementMethod = "bank_transfer"
	SettlementMethodOther        SettlementMethod = "other"
)

// Settlement represents a payment between group members to clear debts.
// Settlements are never edited; deleting one reverses its effect on balances.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal

	// Method is how the payment was made. Defaults to cash.
	Method SettlementMethod

	// Status is the settlement state. Only completed settlements affect balances.
	Status SettlementStatus

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// Note is an optional description for the settlement.
	Note string
}

// Completed reports whether the settlement affects balances.
func (s *Settlement) Completed() bool {
	return s.Status == SettlementStatusCompleted
}
