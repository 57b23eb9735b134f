// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitease/internal/models"
)

// ErrNotFound is wrapped by every store when a requested record does not exist.
// Check with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is wrapped when a unique constraint (user email) is violated.
var ErrAlreadyExists = errors.New("already exists")

// UserStore persists users.
type UserStore interface {
	// CreateUser inserts a new user. The ID and CreatedAt are generated if empty.
	// Returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail looks up by normalized email; returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUsersByIDs returns a map of user ID to User. Missing users are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// ListUsers returns all users, newest first.
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// GroupStore persists groups and their member lists.
type GroupStore interface {
	// CreateGroup persists a new group. The ID and CreatedAt are generated if empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember returns the groups userID belongs to, newest first.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMembers appends members to a group, skipping ones already present.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// DeleteGroup removes a group together with its expenses and settlements.
	DeleteGroup(ctx context.Context, groupID string) error
}

// ExpenseStore persists expenses and their computed splits.
type ExpenseStore interface {
	// CreateExpense persists a new expense. The ID and CreatedAt are generated if empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense returns ErrNotFound if the expense does not exist.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns all expenses of a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense returns ErrNotFound if the expense does not exist.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// SettlementStore persists settlements.
type SettlementStore interface {
	// CreateSettlement persists a new settlement. The ID and CreatedAt are generated if empty.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement returns ErrNotFound if the settlement does not exist.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsByGroup returns all settlements of a group regardless of status, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// DeleteSettlement returns ErrNotFound if the settlement does not exist.
	DeleteSettlement(ctx context.Context, settlementID string) error
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, in-memory)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore
	SettlementStore

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
