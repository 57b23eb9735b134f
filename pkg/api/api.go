// Package api defines the request and response messages of the SplitEase
// Connect services. Messages travel as JSON; money is encoded as a decimal
// string ("12.50") so no precision is lost in transit.
package api

import "github.com/shopspring/decimal"

// User is the public view of an account. Password hashes never leave the server.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// Member is a group member with a display name resolved.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Currency    string   `json:"currency"`
	Members     []Member `json:"members"`
	CreatedBy   string   `json:"createdBy,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
}

// RawSplit is one participant as submitted by the client. Amount is read for
// EXACT splits and Percentage for PERCENTAGE splits; EQUAL ignores both.
type RawSplit struct {
	UserID     string              `json:"userId" validate:"required"`
	Amount     decimal.NullDecimal `json:"amount"`
	Percentage decimal.NullDecimal `json:"percentage"`
}

// Split is a computed share of an expense.
type Split struct {
	UserID     string              `json:"userId"`
	UserName   string              `json:"userName,omitempty"`
	Amount     decimal.Decimal     `json:"amount"`
	Percentage decimal.NullDecimal `json:"percentage"`
}

type Expense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"groupId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paidBy"`
	SplitType   string          `json:"splitType"`
	Splits      []Split         `json:"splits"`
	Category    string          `json:"category"`
	Notes       string          `json:"notes,omitempty"`
	CreatedBy   string          `json:"createdBy,omitempty"`
	CreatedAt   int64           `json:"createdAt"`
}

type Settlement struct {
	ID         string          `json:"id"`
	GroupID    string          `json:"groupId"`
	FromUserID string          `json:"fromUserId"`
	ToUserID   string          `json:"toUserId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Status     string          `json:"status"`
	Note       string          `json:"note,omitempty"`
	CreatedBy  string          `json:"createdBy,omitempty"`
	CreatedAt  int64           `json:"createdAt"`
}

// Debt says From owes To Amount. Names are filled in for display.
type Debt struct {
	FromUserID string          `json:"fromUserId"`
	FromName   string          `json:"fromName"`
	ToUserID   string          `json:"toUserId"`
	ToName     string          `json:"toName"`
	Amount     decimal.Decimal `json:"amount"`
}

// BalanceDetail is one group/counterparty line of a summary. Type is OWES or OWED
// from the summarised user's point of view.
type BalanceDetail struct {
	GroupID   string          `json:"groupId"`
	GroupName string          `json:"groupName"`
	Type      string          `json:"type"`
	UserID    string          `json:"userId"`
	UserName  string          `json:"userName"`
	Amount    decimal.Decimal `json:"amount"`
}

type BalanceSummary struct {
	UserID     string          `json:"userId"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
	TotalOwes  decimal.Decimal `json:"totalOwes"`
	NetBalance decimal.Decimal `json:"netBalance"`
	Details    []BalanceDetail `json:"details"`
}
