package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tolerance is the rounding band used for every money comparison: split sums,
// percentage sums and the settled/unsettled cut-off when netting debts.
var Tolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// ValidationError reports caller-supplied data that violates a split or
// amount constraint. Reason names the failed constraint and offending totals.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// MembershipError reports a payer, split member or settlement party that is not
// part of the group being written to.
type MembershipError struct {
	GroupID string
	UserID  string
	// Role is what the user was acting as: "payer", "split member", "sender" or "recipient".
	Role string
}

func (e *MembershipError) Error() string {
	return fmt.Sprintf("%s %s is not a member of group %s", e.Role, e.UserID, e.GroupID)
}
