package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitease/internal/auth"
	"github.com/mmynk/splitease/internal/middleware"
	"github.com/mmynk/splitease/internal/storage"
	"github.com/mmynk/splitease/internal/storage/memory"
	"github.com/mmynk/splitease/pkg/api"
	"github.com/mmynk/splitease/pkg/api/apiconnect"
)

// testServer runs every service over HTTP against store.
type testServer struct {
	url   string
	store storage.Store
}

func newTestServer(t *testing.T, store storage.Store, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	if store == nil {
		store = memory.New()
	}

	mux := http.NewServeMux()
	Mount(mux, Deps{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		JWT:           auth.NewJWTManager("test-secret", time.Hour),
		LoginLimiter:  limiter,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &testServer{url: server.URL, store: store}
}

// client bundles the service clients for one signed-in user.
type client struct {
	id         string
	auth       *apiconnect.AuthServiceClient
	users      *apiconnect.UserServiceClient
	groups     *apiconnect.GroupServiceClient
	expenses   *apiconnect.ExpenseServiceClient
	settlement *apiconnect.SettlementServiceClient
}

func (s *testServer) client(token string) *client {
	opts := []connect.ClientOption{apiconnect.WithBearerToken(token)}
	return &client{
		auth:       apiconnect.NewAuthServiceClient(http.DefaultClient, s.url, opts...),
		users:      apiconnect.NewUserServiceClient(http.DefaultClient, s.url, opts...),
		groups:     apiconnect.NewGroupServiceClient(http.DefaultClient, s.url, opts...),
		expenses:   apiconnect.NewExpenseServiceClient(http.DefaultClient, s.url, opts...),
		settlement: apiconnect.NewSettlementServiceClient(http.DefaultClient, s.url, opts...),
	}
}

// signUp registers name and returns a client authenticated as them.
func (s *testServer) signUp(t *testing.T, name string) *client {
	t.Helper()
	res, err := s.client("").auth.Register(context.Background(), &api.RegisterRequest{
		Email:    name + "@example.com",
		Name:     name,
		Password: "password-" + name,
	})
	require.NoError(t, err)
	c := s.client(res.Token)
	c.id = res.User.ID
	return c
}

// newGroup creates a group owned by owner containing the other clients.
func newGroup(t *testing.T, owner *client, others ...*client) *api.Group {
	t.Helper()
	ids := make([]string, 0, len(others))
	for _, o := range others {
		ids = append(ids, o.id)
	}
	res, err := owner.groups.CreateGroup(context.Background(), &api.CreateGroupRequest{
		Name:      "Goa Trip",
		Category:  "trip",
		MemberIDs: ids,
	})
	require.NoError(t, err)
	return res.Group
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !dec(want).Equal(got) {
		assert.Fail(t, "decimal mismatch: want "+want+", got "+got.String(), msgAndArgs...)
	}
}

func assertCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

// debtKey renders a debt as "from->to" for readable comparisons.
func debtKey(d api.Debt) string {
	return d.FromName + "->" + d.ToName
}

func debtMap(debts []api.Debt) map[string]string {
	m := make(map[string]string, len(debts))
	for _, d := range debts {
		m[debtKey(d)] = d.Amount.StringFixed(2)
	}
	return m
}
