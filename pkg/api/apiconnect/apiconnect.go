// Package apiconnect wires the api messages to Connect handlers and clients.
//
// Every service follows the same shape: a handler interface, a constructor
// returning the mount path and http.Handler, and a client with one method per
// procedure.
package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/pkg/api"
)

const (
	AuthServiceName       = "splitease.v1.AuthService"
	UserServiceName       = "splitease.v1.UserService"
	GroupServiceName      = "splitease.v1.GroupService"
	ExpenseServiceName    = "splitease.v1.ExpenseService"
	SettlementServiceName = "splitease.v1.SettlementService"
)

// handlerOptions registers the JSON codec ahead of caller options.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	all := make([]connect.HandlerOption, 0, len(opts)+2)
	for _, codec := range api.Codecs() {
		all = append(all, connect.WithCodec(codec))
	}
	return append(all, opts...)
}

// clientOptions makes clients speak JSON.
func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codecs()[0])}, opts...)
}

// route is one procedure mounted on a service mux.
type route struct {
	procedure string
	handler   http.Handler
}

func unary[Req, Res any](
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) route {
	return route{procedure: procedure, handler: connect.NewUnaryHandler(procedure, fn, opts...)}
}

// serviceHandler mounts routes under "/<service>/".
func serviceHandler(service string, routes ...route) (string, http.Handler) {
	mux := http.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.procedure, r.handler)
	}
	return "/" + service + "/", mux
}

// call runs a unary client and unwraps the response message.
func call[Req, Res any](ctx context.Context, client *connect.Client[Req, Res], req *Req) (*Res, error) {
	res, err := client.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

// WithBearerToken makes a client send token on every request.
func WithBearerToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(
		func(next connect.UnaryFunc) connect.UnaryFunc {
			return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				if req.Spec().IsClient && token != "" {
					req.Header().Set("Authorization", "Bearer "+token)
				}
				return next(ctx, req)
			}
		},
	))
}
