package api

// CreateGroupRequest creates a group. The caller always becomes the first member;
// MemberIDs lists anyone else to add.
type CreateGroupRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=100"`
	Description string   `json:"description,omitempty" validate:"max=500"`
	Category    string   `json:"category,omitempty" validate:"omitempty,oneof=trip home couple friends work other"`
	Currency    string   `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	MemberIDs   []string `json:"memberIds,omitempty" validate:"dive,required"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID string `json:"groupId" validate:"required"`
	UserID  string `json:"userId" validate:"required"`
}

type AddMemberResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type DeleteGroupResponse struct{}

type ListGroupExpensesRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type ListGroupExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type ListGroupSettlementsRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type ListGroupSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

// GetGroupBalancesResponse holds at most one debt per member pair.
type GetGroupBalancesResponse struct {
	Debts []Debt `json:"debts"`
}

type GetSettlementPlanRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

// GetSettlementPlanResponse is a minimal set of payments that clears every balance.
type GetSettlementPlanResponse struct {
	Payments []Debt `json:"payments"`
}
