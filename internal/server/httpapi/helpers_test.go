package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/auth"
	"github.com/dmitrijs2005/duoledger/internal/server/notify"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/memory"
	"github.com/dmitrijs2005/duoledger/internal/server/services"
	"github.com/stretchr/testify/require"
)

const (
	testPassword      = "Secr3t!pass"
	categoryGroceries = "7b1d7c4e-0a51-4c8e-9f0e-1a0000000011"
	categorySalary    = "7b1d7c4e-0a51-4c8e-9f0e-1a0000000001"
)

type testEnv struct {
	srv    *Server
	store  *memory.Manager
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithLogger(t, logging.Nop{})
}

func newTestEnvWithLogger(t *testing.T, l logging.Logger) *testEnv {
	t.Helper()
	m := memory.NewManager()
	tokens := auth.NewTokenService([]byte("test-secret"))
	deps := Deps{
		Users:      services.NewUserService(m, tokens, notify.NewLogNotifier(l), "http://localhost:8080", l),
		Households: services.NewHouseholdService(m, l),
		Ledger:     services.NewLedgerService(m, l),
		Tokens:     tokens,
	}
	return &testEnv{srv: New(deps, Options{Addr: ":0"}, l), store: m, tokens: tokens}
}

type reply struct {
	status  int
	body    map[string]any
	cookies []*http.Cookie
	header  http.Header
}

// do sends one request through the fiber app. token, when set, goes into
// the Authorization header.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) reply {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := reply{status: resp.StatusCode, cookies: resp.Cookies(), header: resp.Header}
	if len(raw) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		require.NoError(t, json.Unmarshal(raw, &out.body), string(raw))
	}
	return out
}

// verifiedSession registers, verifies and logs in a user, returning the
// session token.
func (e *testEnv) verifiedSession(t *testing.T, email, name string) string {
	t.Helper()
	res := e.do(t, http.MethodPost, "/api/auth/register",
		map[string]any{"email": email, "password": testPassword, "name": name}, "")
	require.Equal(t, http.StatusCreated, res.status, res.body)

	u, err := e.store.Users(e.store.Conn()).GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u.VerificationToken)

	res = e.do(t, http.MethodGet, "/api/auth/verify-email?token="+*u.VerificationToken, nil, "")
	require.Equal(t, http.StatusOK, res.status, res.body)

	res = e.do(t, http.MethodPost, "/api/auth/login",
		map[string]any{"email": email, "password": testPassword}, "")
	require.Equal(t, http.StatusOK, res.status, res.body)
	for _, c := range res.cookies {
		if c.Name == "token" {
			return c.Value
		}
	}
	t.Fatal("login did not set the session cookie")
	return ""
}
