package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitease/internal/models"
)

const expenseColumns = "id, group_id, description, amount, paid_by, split_type, category, notes, created_by, created_at"

func scanExpense(row rowScanner) (*models.Expense, error) {
	e := &models.Expense{}
	err := row.Scan(&e.ID, &e.GroupID, &e.Description, &e.Amount, &e.PaidBy,
		&e.SplitType, &e.Category, &e.Notes, &e.CreatedBy, &e.CreatedAt)
	return e, err
}

// CreateExpense persists an expense and its splits atomically.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.groupExists(ctx, tx, expense.GroupID); err != nil {
			return err
		}

		_, err := s.exec(ctx, tx,
			"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			expense.ID, expense.GroupID, expense.Description, expense.Amount, expense.PaidBy,
			expense.SplitType, expense.Category, expense.Notes, expense.CreatedBy, expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, split := range expense.Splits {
			_, err = s.exec(ctx, tx,
				"INSERT INTO expense_splits (expense_id, position, user_id, amount, percentage) VALUES (?, ?, ?, ?, ?)",
				expense.ID, i, split.UserID, split.Amount, split.Percentage,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense split: %w", err)
			}
		}
		return nil
	})
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *Store) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.queryRow(ctx, s.db,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID))
	if err != nil {
		return nil, notFound(err, "expense", expenseID)
	}

	rows, err := s.query(ctx, s.db,
		"SELECT expense_id, user_id, amount, percentage FROM expense_splits WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	if err := attachSplits(rows, map[string]*models.Expense{expense.ID: expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup returns all expenses of a group with their splits, newest first.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.query(ctx, s.db,
		"SELECT "+expenseColumns+" FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id DESC",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	splitRows, err := s.query(ctx, s.db,
		`SELECT s.expense_id, s.user_id, s.amount, s.percentage
		 FROM expense_splits s
		 JOIN expenses e ON e.id = s.expense_id
		 WHERE e.group_id = ?
		 ORDER BY s.expense_id, s.position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	if err := attachSplits(splitRows, byID); err != nil {
		return nil, err
	}
	return expenses, nil
}

// attachSplits consumes and closes rows of (expense_id, user_id, amount, percentage).
func attachSplits(rows *sql.Rows, byID map[string]*models.Expense) error {
	defer rows.Close()
	for rows.Next() {
		var expenseID string
		var split models.Split
		if err := rows.Scan(&expenseID, &split.UserID, &split.Amount, &split.Percentage); err != nil {
			return fmt.Errorf("failed to scan expense split: %w", err)
		}
		if e, ok := byID[expenseID]; ok {
			e.Splits = append(e.Splits, split)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense and its splits.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.exec(ctx, tx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense splits: %w", err)
		}
		res, err := s.exec(ctx, tx, "DELETE FROM expenses WHERE id = ?", expenseID)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return expectOne(res, "expense", expenseID)
	})
}
