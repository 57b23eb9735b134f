// Package models defines the core domain models for SplitEase.
//
// # Models
//
//   - User: a person who can belong to groups and pay or owe money
//   - Group: a set of members sharing expenses
//   - Expense: money paid by one member and split among several
//   - Split: one member's owed share of an expense
//   - Settlement: a recorded payment between two members
//   - Debt: a netted, directional amount owed (computed, never stored)
//
// # Design Principles
//
// 1. **One identifier convention**: every model carries `ID string` (UUID format).
// Relationships reference those IDs, never pointers.
// 2. **Decimal money**: all amounts are decimal.Decimal, never float64.
// 3. **Immutable history**: expenses and settlements are created and deleted, not edited.
// Balances are always re-derived from that history.
package models
