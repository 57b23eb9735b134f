package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/internal/auth"
	"github.com/mmynk/splitease/internal/calculator"
	"github.com/mmynk/splitease/internal/storage"
)

// errNotMember is returned when the caller tries to use a group they are not in.
var errNotMember = errors.New("you are not a member of this group")

// toConnectError maps domain errors onto Connect codes. Every handler returns
// its errors through here so the mapping lives in one place.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var validationErr *calculator.ValidationError
	var membershipErr *calculator.MembershipError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrAlreadyExists), errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.As(err, &validationErr), errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.As(err, &membershipErr):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, errNotMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
