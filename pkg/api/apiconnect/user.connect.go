package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/pkg/api"
)

const (
	UserServiceCreateUserProcedure      = "/" + UserServiceName + "/CreateUser"
	UserServiceGetUserProcedure         = "/" + UserServiceName + "/GetUser"
	UserServiceListUsersProcedure       = "/" + UserServiceName + "/ListUsers"
	UserServiceFindUserByEmailProcedure = "/" + UserServiceName + "/FindUserByEmail"
	UserServiceGetUserBalancesProcedure = "/" + UserServiceName + "/GetUserBalances"
)

// UserServiceHandler is implemented by the server.
type UserServiceHandler interface {
	CreateUser(context.Context, *connect.Request[api.CreateUserRequest]) (*connect.Response[api.CreateUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	FindUserByEmail(context.Context, *connect.Request[api.FindUserByEmailRequest]) (*connect.Response[api.FindUserByEmailResponse], error)
	GetUserBalances(context.Context, *connect.Request[api.GetUserBalancesRequest]) (*connect.Response[api.GetUserBalancesResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(UserServiceName,
		unary(UserServiceCreateUserProcedure, svc.CreateUser, opts),
		unary(UserServiceGetUserProcedure, svc.GetUser, opts),
		unary(UserServiceListUsersProcedure, svc.ListUsers, opts),
		unary(UserServiceFindUserByEmailProcedure, svc.FindUserByEmail, opts),
		unary(UserServiceGetUserBalancesProcedure, svc.GetUserBalances, opts),
	)
}

// UserServiceClient calls UserService over HTTP.
type UserServiceClient struct {
	createUser      *connect.Client[api.CreateUserRequest, api.CreateUserResponse]
	getUser         *connect.Client[api.GetUserRequest, api.GetUserResponse]
	listUsers       *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	findUserByEmail *connect.Client[api.FindUserByEmailRequest, api.FindUserByEmailResponse]
	getUserBalances *connect.Client[api.GetUserBalancesRequest, api.GetUserBalancesResponse]
}

// NewUserServiceClient constructs a client for the UserService at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *UserServiceClient {
	opts = clientOptions(opts)
	return &UserServiceClient{
		createUser:      connect.NewClient[api.CreateUserRequest, api.CreateUserResponse](httpClient, baseURL+UserServiceCreateUserProcedure, opts...),
		getUser:         connect.NewClient[api.GetUserRequest, api.GetUserResponse](httpClient, baseURL+UserServiceGetUserProcedure, opts...),
		listUsers:       connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+UserServiceListUsersProcedure, opts...),
		findUserByEmail: connect.NewClient[api.FindUserByEmailRequest, api.FindUserByEmailResponse](httpClient, baseURL+UserServiceFindUserByEmailProcedure, opts...),
		getUserBalances: connect.NewClient[api.GetUserBalancesRequest, api.GetUserBalancesResponse](httpClient, baseURL+UserServiceGetUserBalancesProcedure, opts...),
	}
}

func (c *UserServiceClient) CreateUser(ctx context.Context, req *api.CreateUserRequest) (*api.CreateUserResponse, error) {
	return call(ctx, c.createUser, req)
}

func (c *UserServiceClient) GetUser(ctx context.Context, req *api.GetUserRequest) (*api.GetUserResponse, error) {
	return call(ctx, c.getUser, req)
}

func (c *UserServiceClient) ListUsers(ctx context.Context, req *api.ListUsersRequest) (*api.ListUsersResponse, error) {
	return call(ctx, c.listUsers, req)
}

func (c *UserServiceClient) FindUserByEmail(ctx context.Context, req *api.FindUserByEmailRequest) (*api.FindUserByEmailResponse, error) {
	return call(ctx, c.findUserByEmail, req)
}

func (c *UserServiceClient) GetUserBalances(ctx context.Context, req *api.GetUserBalancesRequest) (*api.GetUserBalancesResponse, error) {
	return call(ctx, c.getUserBalances, req)
}
