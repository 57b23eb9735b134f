package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitease/internal/auth"
	"github.com/mmynk/splitease/internal/middleware"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/pkg/api/apiconnect"
)

// PublicProcedures can be called without a bearer token.
var PublicProcedures = []string{
	apiconnect.AuthServiceRegisterProcedure,
	apiconnect.AuthServiceLoginProcedure,
}

// Deps are the collaborators every service needs.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	LoginLimiter  *middleware.RateLimiter // nil disables login throttling
	Logger        *slog.Logger
}

// Interceptors returns the interceptor chain in the order the server installs it:
// metrics outermost, then throttling, auth, logging and request validation.
func (d Deps) Interceptors() []connect.Interceptor {
	chain := []connect.Interceptor{middleware.MetricsInterceptor()}
	if d.LoginLimiter != nil {
		chain = append(chain, middleware.RateLimit(d.LoginLimiter, apiconnect.AuthServiceLoginProcedure))
	}
	return append(chain,
		middleware.RequireAuth(d.JWT, PublicProcedures...),
		middleware.LoggingInterceptor(),
		middleware.ValidateRequests(),
	)
}

// Mount registers every Connect service on mux.
func Mount(mux *http.ServeMux, d Deps, opts ...connect.HandlerOption) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]connect.HandlerOption{connect.WithInterceptors(d.Interceptors()...)}, opts...)

	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(d.Authenticator, d.JWT, d.Store, logger), opts...))
	mux.Handle(apiconnect.NewUserServiceHandler(NewUserService(d.Store), opts...))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(d.Store), opts...))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(d.Store), opts...))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(d.Store), opts...))
}

// DemoEmail identifies the passwordless demo account.
const DemoEmail = "demo@splitease.app"

// SeedDemoUser creates the demo account unless it already exists.
func SeedDemoUser(ctx context.Context, users storage.UserStore) error {
	_, err := users.GetUserByEmail(ctx, DemoEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	demo := models.NewUser(DemoEmail, "Demo User", "")
	if err := users.CreateUser(ctx, demo); err != nil && !errors.Is(err, storage.ErrAlreadyExists) {
		return err
	}
	slog.Info("Demo user created", "email", DemoEmail)
	return nil
}
