package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/internal/calculator"
	"github.com/mmynk/splitease/internal/middleware"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/pkg/api"
	"github.com/mmynk/splitease/pkg/api/apiconnect"
)

// Ensure SettlementService implements the Connect handler interface
var _ apiconnect.SettlementServiceHandler = (*SettlementService)(nil)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlement records a completed payment from one member to another.
func (s *SettlementService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	msg := req.Msg
	slog.Info("RecordSettlement request received",
		"group_id", msg.GroupID,
		"from_user_id", msg.FromUserID,
		"to_user_id", msg.ToUserID,
		"amount", msg.Amount.String(),
	)

	group, err := memberGroup(ctx, s.store, msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := calculator.ValidateSettlement(group, msg.FromUserID, msg.ToUserID, msg.Amount); err != nil {
		slog.Warn("RecordSettlement rejected", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	settlement := &models.Settlement{
		GroupID:    group.ID,
		FromUserID: msg.FromUserID,
		ToUserID:   msg.ToUserID,
		Amount:     msg.Amount,
		Method:     models.SettlementMethod(msg.Method),
		Status:     models.SettlementStatusCompleted,
		Note:       msg.Note,
		CreatedBy:  middleware.GetUserID(ctx),
	}
	if settlement.Method == "" {
		settlement.Method = models.SettlementMethodCash
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement recorded", "settlement_id", settlement.ID, "group_id", group.ID)
	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// DeleteSettlement removes a settlement, reinstating the debt it paid off.
func (s *SettlementService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := memberGroup(ctx, s.store, settlement.GroupID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		slog.Error("DeleteSettlement failed", "settlement_id", settlement.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement deleted", "settlement_id", settlement.ID, "group_id", settlement.GroupID)
	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}
