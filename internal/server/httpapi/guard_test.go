package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/duoledger/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want RouteClass
	}{
		{"/", PublicPage},
		{"/login", PublicPage},
		{"/register", PublicPage},
		{"/dashboard", ProtectedPage},
		{"/dashboard/", ProtectedPage},
		{"/dashboard/accounts", ProtectedPage},
		{"/dashboards", PublicPage},
		{"/onboarding", ProtectedPage},
		{"/onboarding/step-2", ProtectedPage},
		{"/api/auth/login", PublicAPI},
		{"/api/auth/register", PublicAPI},
		{"/api/auth/verify-email", PublicAPI},
		{"/api/auth/verify-email/", PublicAPI},
		{"/api/auth/logout", ProtectedAPI},
		{"/api/auth/me", ProtectedAPI},
		{"/api/auth/login-as", ProtectedAPI},
		{"/api/accounts", ProtectedAPI},
		{"/api", ProtectedAPI},
		{"/apix", PublicPage},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestGuard_ProtectedPageRedirectsToLogin(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/dashboard/accounts", nil)
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fdashboard%2Faccounts", resp.Header.Get("Location"))
}

func TestGuard_ProtectedAPIWithoutSession(t *testing.T) {
	e := newTestEnv(t)

	res := e.do(t, http.MethodGet, "/api/accounts", nil, "")
	assert.Equal(t, http.StatusUnauthorized, res.status)
	assert.Equal(t, "unauthorized", res.body["error"])

	res = e.do(t, http.MethodGet, "/api/accounts", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestGuard_ForeignTokenIsAnonymous(t *testing.T) {
	e := newTestEnv(t)
	tok, _, err := auth.NewTokenService([]byte("other-secret")).Sign("u1", "a@x.io")
	require.NoError(t, err)

	res := e.do(t, http.MethodGet, "/api/auth/me", nil, tok)
	assert.Equal(t, http.StatusUnauthorized, res.status)
}

func TestGuard_CookieIsAccepted(t *testing.T) {
	e := newTestEnv(t)
	tok := e.verifiedSession(t, "cookie@x.io", "Cookie")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: tok})
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuard_PublicPagePassesThrough(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	// No static dir is mounted, so the router answers 404 rather than redirecting.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
