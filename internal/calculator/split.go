package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitease/internal/models"
)

// ValidateAndComputeSplits turns caller-supplied splits into the owed amounts
// stored on an expense.
//
//   - EQUAL: every split owes amount / len(splits), rounded to cents. Any input
//     amount or percentage is ignored, and the last-cent drift is not redistributed.
//   - EXACT: every split must carry an amount, and the amounts must sum to
//     amount within Tolerance.
//   - PERCENTAGE: every split must carry a percentage in [0, 100], and the
//     percentages must sum to 100 within Tolerance. Owed = amount * pct / 100,
//     rounded to cents.
//
// It has no side effects; the result is stored on the expense as-is.
func ValidateAndComputeSplits(amount decimal.Decimal, splitType models.SplitType, raw []models.RawSplit) ([]models.Split, error) {
	if !amount.IsPositive() {
		return nil, invalidf("amount must be positive, got %s", amount)
	}
	if len(raw) == 0 {
		return nil, invalidf("at least one split is required")
	}
	seen := make(map[string]bool, len(raw))
	for i, s := range raw {
		if s.UserID == "" {
			return nil, invalidf("split %d has no member", i+1)
		}
		if seen[s.UserID] {
			return nil, invalidf("member %s appears in more than one split", s.UserID)
		}
		seen[s.UserID] = true
	}

	switch splitType {
	case models.SplitTypeEqual:
		return equalSplits(amount, raw), nil
	case models.SplitTypeExact:
		return exactSplits(amount, raw)
	case models.SplitTypePercentage:
		return percentageSplits(amount, raw)
	default:
		return nil, invalidf("invalid split type %q: must be EQUAL, EXACT, or PERCENTAGE", splitType)
	}
}

func equalSplits(amount decimal.Decimal, raw []models.RawSplit) []models.Split {
	perPerson := amount.DivRound(decimal.NewFromInt(int64(len(raw))), 2)
	splits := make([]models.Split, len(raw))
	for i, s := range raw {
		splits[i] = models.Split{UserID: s.UserID, Amount: perPerson}
	}
	return splits
}

func exactSplits(amount decimal.Decimal, raw []models.RawSplit) ([]models.Split, error) {
	total := decimal.Zero
	splits := make([]models.Split, len(raw))
	for i, s := range raw {
		if !s.Amount.Valid {
			return nil, invalidf("split for %s requires an amount", s.UserID)
		}
		if s.Amount.Decimal.IsNegative() {
			return nil, invalidf("split for %s has negative amount %s", s.UserID, s.Amount.Decimal)
		}
		total = total.Add(s.Amount.Decimal)
		splits[i] = models.Split{UserID: s.UserID, Amount: s.Amount.Decimal}
	}
	if total.Sub(amount).Abs().GreaterThan(Tolerance) {
		return nil, invalidf("exact amounts (%s) must equal total (%s)", total, amount)
	}
	return splits, nil
}

func percentageSplits(amount decimal.Decimal, raw []models.RawSplit) ([]models.Split, error) {
	total := decimal.Zero
	splits := make([]models.Split, len(raw))
	for i, s := range raw {
		if !s.Percentage.Valid {
			return nil, invalidf("split for %s requires a percentage", s.UserID)
		}
		pct := s.Percentage.Decimal
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return nil, invalidf("percentage for %s must be between 0 and 100, got %s", s.UserID, pct)
		}
		total = total.Add(pct)
		splits[i] = models.Split{
			UserID:     s.UserID,
			Amount:     amount.Mul(pct).Div(hundred).Round(2),
			Percentage: decimal.NewNullDecimal(pct),
		}
	}
	if total.Sub(hundred).Abs().GreaterThan(Tolerance) {
		return nil, invalidf("percentages (%s%%) must sum to 100%%", total)
	}
	return splits, nil
}

// ValidateMembership checks that the payer and every split member belong to group.
func ValidateMembership(group *models.Group, payer string, raw []models.RawSplit) error {
	if !group.HasMember(payer) {
		return &MembershipError{GroupID: group.ID, UserID: payer, Role: "payer"}
	}
	for _, s := range raw {
		if !group.HasMember(s.UserID) {
			return &MembershipError{GroupID: group.ID, UserID: s.UserID, Role: "split member"}
		}
	}
	return nil
}

// ValidateSettlement checks a settlement before it is recorded against group.
func ValidateSettlement(group *models.Group, from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidf("settlement amount must be positive, got %s", amount)
	}
	if from == to {
		return invalidf("settlement sender and recipient must differ")
	}
	if !group.HasMember(from) {
		return &MembershipError{GroupID: group.ID, UserID: from, Role: "sender"}
	}
	if !group.HasMember(to) {
		return &MembershipError{GroupID: group.ID, UserID: to, Role: "recipient"}
	}
	return nil
}
