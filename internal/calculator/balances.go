package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitease/internal/models"
)

// pair is an ordered (debtor, creditor) key into the owed ledger.
type pair struct {
	from string
	to   string
}

// ledger holds owed[from][to] for the members of one group.
// Entries naming anyone outside the group are dropped.
type ledger struct {
	members map[string]bool
	owed    map[pair]decimal.Decimal
}

func newLedger(members []string) *ledger {
	l := &ledger{
		members: make(map[string]bool, len(members)),
		owed:    make(map[pair]decimal.Decimal),
	}
	for _, m := range members {
		l.members[m] = true
	}
	return l
}

func (l *ledger) add(from, to string, amount decimal.Decimal) {
	if from == to || !l.members[from] || !l.members[to] {
		return
	}
	key := pair{from: from, to: to}
	l.owed[key] = l.owed[key].Add(amount)
}

func (l *ledger) get(from, to string) decimal.Decimal {
	return l.owed[pair{from: from, to: to}]
}

// ComputeGroupBalances returns who owes whom within one group.
//
// Algorithm:
//   - For each expense split not belonging to the payer: split member owes the payer the split amount
//   - For each completed settlement: reduce what the sender owes the recipient,
//     in that direction only (an overpayment goes negative and nets below)
//   - For each unordered member pair, visited once in sorted ID order: net the two
//     directions and emit one Debt if the net exceeds Tolerance
//
// Only direct pairwise debts cancel. A cycle A->B->C->A is not collapsed; use
// SimplifyDebts for a minimal-transfer plan.
//
// The result is deterministic for a given input and the function touches no
// shared state, so it is safe to call concurrently.
func ComputeGroupBalances(members []string, expenses []*models.Expense, settlements []*models.Settlement) []models.Debt {
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	l := newLedger(sorted)
	for _, expense := range expenses {
		for _, split := range expense.Splits {
			l.add(split.UserID, expense.PaidBy, split.Amount)
		}
	}
	for _, s := range settlements {
		if !s.Completed() {
			continue
		}
		l.add(s.FromUserID, s.ToUserID, s.Amount.Neg())
	}

	debts := make([]models.Debt, 0)
	for i, a := range sorted {
		for _, b := range sorted[i+1:] {
			net := l.get(a, b).Sub(l.get(b, a))
			switch {
			case net.GreaterThan(Tolerance):
				debts = append(debts, models.Debt{From: a, To: b, Amount: Round2(net)})
			case net.LessThan(Tolerance.Neg()):
				debts = append(debts, models.Debt{From: b, To: a, Amount: Round2(net.Neg())})
			}
		}
	}
	return debts
}

// Round2 rounds a money amount to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
