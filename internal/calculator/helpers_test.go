package calculator

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/splitease/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("decimal mismatch: want %s, got %s", want, got), msgAndArgs...)
	}
}

func assertDebts(t *testing.T, want []models.Debt, got []models.Debt) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		assert.Equal(t, want[i].From, got[i].From, "debt %d from", i)
		assert.Equal(t, want[i].To, got[i].To, "debt %d to", i)
		assertDecimal(t, want[i].Amount.String(), got[i].Amount, "debt %d amount", i)
	}
}

func equalExpense(paidBy, amount string, members ...string) *models.Expense {
	raw := make([]models.RawSplit, len(members))
	for i, m := range members {
		raw[i] = models.RawSplit{UserID: m}
	}
	splits, err := ValidateAndComputeSplits(dec(amount), models.SplitTypeEqual, raw)
	if err != nil {
		panic(err)
	}
	return &models.Expense{
		Amount:    dec(amount),
		PaidBy:    paidBy,
		SplitType: models.SplitTypeEqual,
		Splits:    splits,
	}
}

func settlement(from, to, amount string) *models.Settlement {
	return &models.Settlement{
		FromUserID: from,
		ToUserID:   to,
		Amount:     dec(amount),
		Status:     models.SettlementStatusCompleted,
	}
}
