package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitease/internal/auth"
	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/pkg/api"
	"github.com/mmynk/splitease/pkg/api/apiconnect"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, "header %q", tt.header)
		if tt.ok {
			assert.Equal(t, tt.token, token)
		}
	}
}

func TestRateLimiterIsPerClient(t *testing.T) {
	l := NewRateLimiter(1, 1)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestPeerHost(t *testing.T) {
	assert.Equal(t, "127.0.0.1", peerHost("127.0.0.1:5123"))
	assert.Equal(t, "::1", peerHost("[::1]:80"))
	assert.Equal(t, "pipe", peerHost("pipe"))
}

func TestContextHelpers(t *testing.T) {
	ctx := WithUser(context.Background(), "u1", "a@example.com")
	assert.Equal(t, "u1", GetUserID(ctx))
	assert.Equal(t, "a@example.com", GetEmail(ctx))
	assert.Empty(t, GetUserID(context.Background()))
}

// echoAuth answers GetCurrentUser with whatever identity the context carries.
type echoAuth struct{}

func (echoAuth) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	return connect.NewResponse(&api.AuthResponse{}), nil
}

func (echoAuth) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return connect.NewResponse(&api.AuthResponse{}), nil
}

func (echoAuth) GetCurrentUser(ctx context.Context, _ *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return connect.NewResponse(&api.GetCurrentUserResponse{User: &api.User{ID: GetUserID(ctx), Email: GetEmail(ctx)}}), nil
}

func TestInterceptorChain(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(echoAuth{}, connect.WithInterceptors(
		MetricsInterceptor(),
		RequireAuth(jwtManager, apiconnect.AuthServiceRegisterProcedure, apiconnect.AuthServiceLoginProcedure),
		LoggingInterceptor(),
		ValidateRequests(),
	)))
	server := httptest.NewServer(mux)
	defer server.Close()
	ctx := context.Background()

	t.Run("public procedure skips auth but is validated", func(t *testing.T) {
		c := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
		_, err := c.Login(ctx, &api.LoginRequest{Email: "a@example.com", Password: "x"})
		require.NoError(t, err)

		_, err = c.Login(ctx, &api.LoginRequest{Email: "not-an-email", Password: "x"})
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("token identity reaches handler", func(t *testing.T) {
		token, err := jwtManager.Generate(&models.User{ID: "u1", Email: "a@example.com"})
		require.NoError(t, err)

		c := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL, apiconnect.WithBearerToken(token))
		res, err := c.GetCurrentUser(ctx, &api.GetCurrentUserRequest{})
		require.NoError(t, err)
		assert.Equal(t, "u1", res.User.ID)
		assert.Equal(t, "a@example.com", res.User.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		c := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
		_, err := c.GetCurrentUser(ctx, &api.GetCurrentUserRequest{})
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/splitease.v1.GroupService/ListGroups", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestHTTPLoggingRecordsStatus(t *testing.T) {
	h := HTTPLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
