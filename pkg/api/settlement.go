package api

import "github.com/shopspring/decimal"

type RecordSettlementRequest struct {
	GroupID    string          `json:"groupId" validate:"required"`
	FromUserID string          `json:"fromUserId" validate:"required"`
	ToUserID   string          `json:"toUserId" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty" validate:"omitempty,oneof=cash upi bank_transfer other"`
	Note       string          `json:"note,omitempty" validate:"max=500"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlementId" validate:"required"`
}

type DeleteSettlementResponse struct{}
