package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/pkg/api"
)

const (
	SettlementServiceRecordSettlementProcedure = "/" + SettlementServiceName + "/RecordSettlement"
	SettlementServiceDeleteSettlementProcedure = "/" + SettlementServiceName + "/DeleteSettlement"
)

// SettlementServiceHandler is implemented by the server.
type SettlementServiceHandler interface {
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serviceHandler(SettlementServiceName,
		unary(SettlementServiceRecordSettlementProcedure, svc.RecordSettlement, opts),
		unary(SettlementServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts),
	)
}

// SettlementServiceClient calls SettlementService over HTTP.
type SettlementServiceClient struct {
	recordSettlement *connect.Client[api.RecordSettlementRequest, api.RecordSettlementResponse]
	deleteSettlement *connect.Client[api.DeleteSettlementRequest, api.DeleteSettlementResponse]
}

// NewSettlementServiceClient constructs a client for the SettlementService at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	opts = clientOptions(opts)
	return &SettlementServiceClient{
		recordSettlement: connect.NewClient[api.RecordSettlementRequest, api.RecordSettlementResponse](httpClient, baseURL+SettlementServiceRecordSettlementProcedure, opts...),
		deleteSettlement: connect.NewClient[api.DeleteSettlementRequest, api.DeleteSettlementResponse](httpClient, baseURL+SettlementServiceDeleteSettlementProcedure, opts...),
	}
}

func (c *SettlementServiceClient) RecordSettlement(ctx context.Context, req *api.RecordSettlementRequest) (*api.RecordSettlementResponse, error) {
	return call(ctx, c.recordSettlement, req)
}

func (c *SettlementServiceClient) DeleteSettlement(ctx context.Context, req *api.DeleteSettlementRequest) (*api.DeleteSettlementResponse, error) {
	return call(ctx, c.deleteSettlement, req)
}
