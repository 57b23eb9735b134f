// Package memory provides an in-process implementation of storage.Store.
// It is meant for tests and local experiments; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps every record in keyed maps guarded by a single RWMutex.
// Records are copied on the way in and out so callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	users       map[string]*models.User
	groups      map[string]*models.Group
	expenses    map[string]*models.Expense
	settlements map[string]*models.Settlement

	// Insertion order per kind, used for newest-first listings.
	userOrder       []string
	groupOrder      []string
	expenseOrder    []string
	settlementOrder []string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:       make(map[string]*models.User),
		groups:      make(map[string]*models.Group),
		expenses:    make(map[string]*models.Expense),
		settlements: make(map[string]*models.Settlement),
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyGroup(g *models.Group) *models.Group {
	c := *g
	c.Members = slices.Clone(g.Members)
	return &c
}

func copyExpense(e *models.Expense) *models.Expense {
	c := *e
	c.Splits = slices.Clone(e.Splits)
	return &c
}

func copySettlement(st *models.Settlement) *models.Settlement {
	c := *st
	return &c
}

// newestFirst walks order from the end and keeps the IDs accepted by keep.
func newestFirst(order []string, keep func(id string) bool) []string {
	var ids []string
	for i := len(order) - 1; i >= 0; i-- {
		if keep(order[i]) {
			ids = append(ids, order[i])
		}
	}
	return ids
}

func removeID(order []string, id string) []string {
	return slices.DeleteFunc(order, func(v string) bool { return v == id })
}

// CreateUser stores a copy of user. Emails must be unique.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	user.Email = models.NormalizeEmail(user.Email)
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("user with email %s: %w", user.Email, storage.ErrAlreadyExists)
		}
	}
	s.users[user.ID] = copyUser(user)
	s.userOrder = append(s.userOrder, user.ID)
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, storage.ErrNotFound)
	}
	return copyUser(user), nil
}

// GetUserByEmail retrieves a user by email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = models.NormalizeEmail(email)
	for _, user := range s.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, storage.ErrNotFound)
}

// GetUsersByIDs retrieves the users that exist among ids.
func (s *Store) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users[id] = copyUser(user)
		}
	}
	return users, nil
}

// ListUsers returns all users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, id := range newestFirst(s.userOrder, func(string) bool { return true }) {
		users = append(users, copyUser(s.users[id]))
	}
	return users, nil
}

// CreateGroup stores a copy of group.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	s.groups[group.ID] = copyGroup(group)
	s.groupOrder = append(s.groupOrder, group.ID)
	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return copyGroup(group), nil
}

// ListGroupsByMember returns the groups userID belongs to, newest first.
func (s *Store) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := newestFirst(s.groupOrder, func(id string) bool { return s.groups[id].HasMember(userID) })
	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, copyGroup(s.groups[id]))
	}
	return groups, nil
}

// AddGroupMembers appends members that are not already in the group.
func (s *Store) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[groupID]
	if !ok {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	for _, id := range userIDs {
		if !group.HasMember(id) {
			group.Members = append(group.Members, id)
		}
	}
	return nil
}

// DeleteGroup removes a group with its expenses and settlements.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupID]; !ok {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	delete(s.groups, groupID)
	s.groupOrder = removeID(s.groupOrder, groupID)

	for id, e := range s.expenses {
		if e.GroupID == groupID {
			delete(s.expenses, id)
			s.expenseOrder = removeID(s.expenseOrder, id)
		}
	}
	for id, st := range s.settlements {
		if st.GroupID == groupID {
			delete(s.settlements, id)
			s.settlementOrder = removeID(s.settlementOrder, id)
		}
	}
	return nil
}

// CreateExpense stores a copy of expense.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[expense.GroupID]; !ok {
		return fmt.Errorf("group %s: %w", expense.GroupID, storage.ErrNotFound)
	}
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	s.expenses[expense.ID] = copyExpense(expense)
	s.expenseOrder = append(s.expenseOrder, expense.ID)
	return nil
}

// GetExpense retrieves an expense by ID.
func (s *Store) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[expenseID]
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return copyExpense(expense), nil
}

// ListExpensesByGroup returns the group's expenses, newest first.
func (s *Store) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := newestFirst(s.expenseOrder, func(id string) bool { return s.expenses[id].GroupID == groupID })
	expenses := make([]*models.Expense, 0, len(ids))
	for _, id := range ids {
		expenses = append(expenses, copyExpense(s.expenses[id]))
	}
	return expenses, nil
}

// DeleteExpense removes an expense by ID.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[expenseID]; !ok {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	delete(s.expenses, expenseID)
	s.expenseOrder = removeID(s.expenseOrder, expenseID)
	return nil
}

// CreateSettlement stores a copy of settlement.
func (s *Store) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[settlement.GroupID]; !ok {
		return fmt.Errorf("group %s: %w", settlement.GroupID, storage.ErrNotFound)
	}
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementStatusCompleted
	}
	s.settlements[settlement.ID] = copySettlement(settlement)
	s.settlementOrder = append(s.settlementOrder, settlement.ID)
	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *Store) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settlement, ok := s.settlements[settlementID]
	if !ok {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return copySettlement(settlement), nil
}

// ListSettlementsByGroup returns the group's settlements, newest first.
func (s *Store) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := newestFirst(s.settlementOrder, func(id string) bool { return s.settlements[id].GroupID == groupID })
	settlements := make([]*models.Settlement, 0, len(ids))
	for _, id := range ids {
		settlements = append(settlements, copySettlement(s.settlements[id]))
	}
	return settlements, nil
}

// DeleteSettlement removes a settlement by ID.
func (s *Store) DeleteSettlement(ctx context.Context, settlementID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.settlements[settlementID]; !ok {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	delete(s.settlements, settlementID)
	s.settlementOrder = removeID(s.settlementOrder, settlementID)
	return nil
}
