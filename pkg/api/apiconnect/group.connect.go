package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/pkg/api"
)

const (
	GroupServiceCreateGroupProcedure          = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure             = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure           = "/" + GroupServiceName + "/ListGroups"
	GroupServiceAddMemberProcedure            = "/" + GroupServiceName + "/AddMember"
	GroupServiceDeleteGroupProcedure          = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceListGroupExpensesProcedure    = "/" + GroupServiceName + "/ListGroupExpenses"
	GroupServiceListGroupSettlementsProcedure = "/" + GroupServiceName + "/ListGroupSettlements"
	GroupServiceGetGroupBalancesProcedure     = "/" + GroupServiceName + "/GetGroupBalances"
	GroupServiceGetSettlementPlanProcedure    = "/" + GroupServiceName + "/GetSettlementPlan"
)

// GroupServiceHandler is implemented by the server.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error)
	ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	GetSettlementPlan(context.Context, *connect.Request[api.GetSettlementPlanRequest]) (*connect.Response[api.GetSettlementPlanResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(GroupServiceName,
		unary(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts),
		unary(GroupServiceGetGroupProcedure, svc.GetGroup, opts),
		unary(GroupServiceListGroupsProcedure, svc.ListGroups, opts),
		unary(GroupServiceAddMemberProcedure, svc.AddMember, opts),
		unary(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts),
		unary(GroupServiceListGroupExpensesProcedure, svc.ListGroupExpenses, opts),
		unary(GroupServiceListGroupSettlementsProcedure, svc.ListGroupSettlements, opts),
		unary(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts),
		unary(GroupServiceGetSettlementPlanProcedure, svc.GetSettlementPlan, opts),
	)
}

// GroupServiceClient calls GroupService over HTTP.
type GroupServiceClient struct {
	createGroup          *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup             *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups           *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	addMember            *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	deleteGroup          *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	listGroupExpenses    *connect.Client[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse]
	listGroupSettlements *connect.Client[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse]
	getGroupBalances     *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	getSettlementPlan    *connect.Client[api.GetSettlementPlanRequest, api.GetSettlementPlanResponse]
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:          connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:             connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:           connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addMember:            connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		deleteGroup:          connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		listGroupExpenses:    connect.NewClient[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse](httpClient, baseURL+GroupServiceListGroupExpensesProcedure, opts...),
		listGroupSettlements: connect.NewClient[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse](httpClient, baseURL+GroupServiceListGroupSettlementsProcedure, opts...),
		getGroupBalances:     connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
		getSettlementPlan:    connect.NewClient[api.GetSettlementPlanRequest, api.GetSettlementPlanResponse](httpClient, baseURL+GroupServiceGetSettlementPlanProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *api.CreateGroupRequest) (*api.CreateGroupResponse, error) {
	return call(ctx, c.createGroup, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *api.GetGroupRequest) (*api.GetGroupResponse, error) {
	return call(ctx, c.getGroup, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *api.ListGroupsRequest) (*api.ListGroupsResponse, error) {
	return call(ctx, c.listGroups, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *api.AddMemberRequest) (*api.AddMemberResponse, error) {
	return call(ctx, c.addMember, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *api.DeleteGroupRequest) (*api.DeleteGroupResponse, error) {
	return call(ctx, c.deleteGroup, req)
}

func (c *GroupServiceClient) ListGroupExpenses(ctx context.Context, req *api.ListGroupExpensesRequest) (*api.ListGroupExpensesResponse, error) {
	return call(ctx, c.listGroupExpenses, req)
}

func (c *GroupServiceClient) ListGroupSettlements(ctx context.Context, req *api.ListGroupSettlementsRequest) (*api.ListGroupSettlementsResponse, error) {
	return call(ctx, c.listGroupSettlements, req)
}

func (c *GroupServiceClient) GetGroupBalances(ctx context.Context, req *api.GetGroupBalancesRequest) (*api.GetGroupBalancesResponse, error) {
	return call(ctx, c.getGroupBalances, req)
}

func (c *GroupServiceClient) GetSettlementPlan(ctx context.Context, req *api.GetSettlementPlanRequest) (*api.GetSettlementPlanResponse, error) {
	return call(ctx, c.getSettlementPlan, req)
}
