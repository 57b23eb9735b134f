package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitease/internal/models"
)

const groupColumns = "id, name, description, category, currency, created_by, created_at"

func scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	err := row.Scan(&group.ID, &group.Name, &group.Description, &group.Category,
		&group.Currency, &group.CreatedBy, &group.CreatedAt)
	return group, err
}

// CreateGroup persists a new group and its members in one transaction.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := s.exec(ctx, tx,
			"INSERT INTO groups ("+groupColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			group.ID, group.Name, group.Description, group.Category,
			group.Currency, group.CreatedBy, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		return s.insertMembers(ctx, tx, group.ID, 0, group.Members)
	})
}

// insertMembers adds members starting at position next. Existing members are ignored.
func (s *Store) insertMembers(ctx context.Context, tx *sql.Tx, groupID string, next int, userIDs []string) error {
	for _, userID := range userIDs {
		res, err := s.exec(ctx, tx,
			`INSERT INTO group_members (group_id, user_id, position) VALUES (?, ?, ?)
			 ON CONFLICT (group_id, user_id) DO NOTHING`,
			groupID, userID, next,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			next++
		}
	}
	return nil
}

// GetGroup retrieves a group by ID, including its members in join order.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := scanGroup(s.queryRow(ctx, s.db,
		"SELECT "+groupColumns+" FROM groups WHERE id = ?", groupID))
	if err != nil {
		return nil, notFound(err, "group", groupID)
	}
	if err := s.loadMembers(ctx, []*models.Group{group}); err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupsByMember returns the groups userID belongs to, newest first.
func (s *Store) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.query(ctx, s.db,
		`SELECT g.id, g.name, g.description, g.category, g.currency, g.created_by, g.created_at
		 FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.created_at DESC, g.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []*models.Group{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	if err := s.loadMembers(ctx, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// loadMembers fills Members for every group with a single query.
func (s *Store) loadMembers(ctx context.Context, groups []*models.Group) error {
	if len(groups) == 0 {
		return nil
	}
	byID := make(map[string]*models.Group, len(groups))
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		g.Members = []string{}
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	rows, err := s.query(ctx, s.db,
		"SELECT group_id, user_id FROM group_members WHERE group_id IN ("+placeholders(len(ids))+") ORDER BY group_id, position",
		stringArgs(ids)...,
	)
	if err != nil {
		return fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, userID string
		if err := rows.Scan(&groupID, &userID); err != nil {
			return fmt.Errorf("failed to scan group member: %w", err)
		}
		g := byID[groupID]
		g.Members = append(g.Members, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate group members: %w", err)
	}
	return nil
}

// AddGroupMembers appends members to a group, skipping ones already present.
func (s *Store) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var next int
		err := s.queryRow(ctx, tx,
			`SELECT COALESCE(MAX(m.position) + 1, 0)
			 FROM groups g LEFT JOIN group_members m ON m.group_id = g.id
			 WHERE g.id = ?
			 GROUP BY g.id`,
			groupID,
		).Scan(&next)
		if err != nil {
			return notFound(err, "group", groupID)
		}
		return s.insertMembers(ctx, tx, groupID, next, userIDs)
	})
}

// DeleteGroup removes a group together with its members, expenses, splits and settlements.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		cascade := []string{
			"DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)",
			"DELETE FROM expenses WHERE group_id = ?",
			"DELETE FROM settlements WHERE group_id = ?",
			"DELETE FROM group_members WHERE group_id = ?",
		}
		for _, stmt := range cascade {
			if _, err := s.exec(ctx, tx, stmt, groupID); err != nil {
				return fmt.Errorf("failed to delete group data: %w", err)
			}
		}

		res, err := s.exec(ctx, tx, "DELETE FROM groups WHERE id = ?", groupID)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return expectOne(res, "group", groupID)
	})
}

// groupExists is used before inserting rows that reference a group.
func (s *Store) groupExists(ctx context.Context, q querier, groupID string) error {
	var one int
	err := s.queryRow(ctx, q, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&one)
	if err != nil {
		return notFound(err, "group", groupID)
	}
	return nil
}

