package api

// CreateUserRequest adds a person without a password, e.g. a friend who has
// not signed up yet. They can be added to groups but cannot log in.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,notblank,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type FindUserByEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type FindUserByEmailResponse struct {
	User *User `json:"user"`
}

// GetUserBalancesRequest summarises UserID's balances, or the caller's when empty.
// GroupID restricts the summary to one group.
type GetUserBalancesRequest struct {
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

type GetUserBalancesResponse struct {
	Summary *BalanceSummary `json:"summary"`
}
