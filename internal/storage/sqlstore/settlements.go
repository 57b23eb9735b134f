package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitease/internal/models"
)

const settlementColumns = "id, group_id, from_user_id, to_user_id, amount, method, status, note, created_by, created_at"

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	st := &models.Settlement{}
	err := row.Scan(&st.ID, &st.GroupID, &st.FromUserID, &st.ToUserID, &st.Amount,
		&st.Method, &st.Status, &st.Note, &st.CreatedBy, &st.CreatedAt)
	return st, err
}

// CreateSettlement persists a new settlement to the database.
func (s *Store) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementStatusCompleted
	}
	if err := s.groupExists(ctx, s.db, settlement.GroupID); err != nil {
		return err
	}

	_, err := s.exec(ctx, s.db,
		"INSERT INTO settlements ("+settlementColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		settlement.ID, settlement.GroupID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount, settlement.Method, settlement.Status, settlement.Note,
		settlement.CreatedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *Store) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := scanSettlement(s.queryRow(ctx, s.db,
		"SELECT "+settlementColumns+" FROM settlements WHERE id = ?", settlementID))
	if err != nil {
		return nil, notFound(err, "settlement", settlementID)
	}
	return settlement, nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *Store) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+settlementColumns+" FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	defer rows.Close()

	settlements := []*models.Settlement{}
	for rows.Next() {
		st, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *Store) DeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.exec(ctx, s.db, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	return expectOne(res, "settlement", settlementID)
}
