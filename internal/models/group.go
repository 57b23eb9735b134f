package models

import "slices"

// GroupCategory classifies a group for display purposes.
type GroupCategory string

const (
	GroupCategoryTrip    GroupCategory = "trip"
	GroupCategoryHome    GroupCategory = "home"
	GroupCategoryCouple  GroupCategory = "couple"
	GroupCategoryFriends GroupCategory = "friends"
	GroupCategoryWork    GroupCategory = "work"
	GroupCategoryOther   GroupCategory = "other"
)

// DefaultCurrency is used when a group is created without one.
const DefaultCurrency = "INR"

// Group represents a set of members who share expenses.
// Expenses and settlements belong to exactly one group.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string

	// Description is optional free text.
	Description string

	// Category classifies the group. Defaults to "other".
	Category GroupCategory

	// Currency is informational only; amounts are never converted.
	Currency string

	// Members is the list of user IDs in this group.
	// The creator is always the first member.
	Members []string

	// CreatedBy is the user ID who created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}
