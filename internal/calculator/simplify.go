package calculator

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitease/internal/models"
)

// memberNet is one member's position after all debts: positive means owed money.
type memberNet struct {
	id  string
	net decimal.Decimal
}

// SimplifyDebts collapses pairwise debts into a plan with at most n-1 transfers
// for n members with a non-zero position. Every member ends up with the same
// net position as under debts, but payments may now flow between members who
// never shared an expense.
//
// Algorithm:
//   - Net each member's position across all debts
//   - Split members into creditors (owed money) and debtors (owe money)
//   - Greedy: match the largest debtor with the largest creditor, transfer the
//     smaller of the two amounts, advance whichever side is settled
func SimplifyDebts(debts []models.Debt) []models.Debt {
	positions := make(map[string]decimal.Decimal)
	for _, d := range debts {
		positions[d.From] = positions[d.From].Sub(d.Amount)
		positions[d.To] = positions[d.To].Add(d.Amount)
	}

	var creditors, debtors []memberNet
	for id, net := range positions {
		if net.GreaterThan(Tolerance) {
			creditors = append(creditors, memberNet{id: id, net: net})
		} else if net.LessThan(Tolerance.Neg()) {
			debtors = append(debtors, memberNet{id: id, net: net.Neg()}) // Make positive
		}
	}
	byLargest := func(a, b memberNet) int {
		if c := b.net.Cmp(a.net); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	}
	slices.SortFunc(creditors, byLargest)
	slices.SortFunc(debtors, byLargest)

	plan := make([]models.Debt, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := decimal.Min(debtor.net, creditor.net)
		if amount.GreaterThan(Tolerance) {
			plan = append(plan, models.Debt{From: debtor.id, To: creditor.id, Amount: Round2(amount)})
		}

		debtor.net = debtor.net.Sub(amount)
		creditor.net = creditor.net.Sub(amount)

		if debtor.net.LessThanOrEqual(Tolerance) {
			i++
		}
		if creditor.net.LessThanOrEqual(Tolerance) {
			j++
		}
	}
	return plan
}
