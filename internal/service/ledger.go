package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitease/internal/calculator"
	"github.com/mmynk/splitease/internal/middleware"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
)

// maxLedgerLoads bounds concurrent store reads when summarising many groups.
const maxLedgerLoads = 8

// loadLedger reads a group's expenses and settlements concurrently.
func loadLedger(ctx context.Context, store storage.Store, group *models.Group) (calculator.GroupLedger, error) {
	ledger := calculator.GroupLedger{
		GroupID:   group.ID,
		GroupName: group.Name,
		Members:   group.Members,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			return fmt.Errorf("failed to load expenses for group %s: %w", group.ID, err)
		}
		ledger.Expenses = expenses
		return nil
	})
	g.Go(func() error {
		settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
		if err != nil {
			return fmt.Errorf("failed to load settlements for group %s: %w", group.ID, err)
		}
		ledger.Settlements = settlements
		return nil
	})
	if err := g.Wait(); err != nil {
		return calculator.GroupLedger{}, err
	}
	return ledger, nil
}

// loadLedgers loads every group's ledger, at most maxLedgerLoads at a time.
// The result keeps the order of groups.
func loadLedgers(ctx context.Context, store storage.Store, groups []*models.Group) ([]calculator.GroupLedger, error) {
	ledgers := make([]calculator.GroupLedger, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLedgerLoads)
	for i, group := range groups {
		g.Go(func() error {
			ledger, err := loadLedger(ctx, store, group)
			if err != nil {
				return err
			}
			ledgers[i] = ledger
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ledgers, nil
}

// memberGroup loads groupID and checks that the caller belongs to it.
func memberGroup(ctx context.Context, groups storage.GroupStore, groupID string) (*models.Group, error) {
	group, err := groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(middleware.GetUserID(ctx)) {
		return nil, fmt.Errorf("group %s: %w", groupID, errNotMember)
	}
	return group, nil
}
