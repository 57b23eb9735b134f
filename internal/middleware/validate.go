package middleware

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/pkg/api"
)

// ValidateRequests rejects request messages that fail their struct tags
// before they reach a handler.
func ValidateRequests() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if err := api.Validate(req.Any()); err != nil {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			return next(ctx, req)
		}
	}
}
