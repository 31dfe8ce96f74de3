package httpapi

import (
	"net/url"
	"strings"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/auth"
	"github.com/gofiber/fiber/v2"
)

// RouteClass tells the session guard how to treat a request path.
type RouteClass int

const (
	PublicPage RouteClass = iota
	ProtectedPage
	PublicAPI
	ProtectedAPI
)

const claimsKey = "claims"

var (
	protectedPages = []string{"/dashboard", "/onboarding"}
	publicAPI      = []string{"/api/auth/login", "/api/auth/register", "/api/auth/verify-email"}
)

// under reports whether path is prefix itself or a descendant of it, so
// "/dashboard" matches "/dashboard/x" but not "/dashboards".
func under(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Classify decides the guard behaviour for path.
func Classify(path string) RouteClass {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if under(path, "/api") {
		for _, p := range publicAPI {
			if path == p {
				return PublicAPI
			}
		}
		return ProtectedAPI
	}
	for _, p := range protectedPages {
		if under(path, p) {
			return ProtectedPage
		}
	}
	return PublicPage
}

// guard resolves the session token from the Authorization header or the
// session cookie and stores valid claims in the request locals. Protected
// pages redirect anonymous visitors to /login, protected API routes answer 401.
func guard(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := auth.TokenFromRequest(c.Get(fiber.HeaderAuthorization), c.Cookies(common.SessionCookieName))
		var claims *auth.Claims
		if raw != "" {
			if cl, err := tokens.Verify(raw); err == nil {
				claims = cl
				c.Locals(claimsKey, cl)
			}
		}

		switch Classify(c.Path()) {
		case ProtectedPage:
			if claims == nil {
				return c.Redirect("/login?from="+url.QueryEscape(c.Path()), fiber.StatusTemporaryRedirect)
			}
		case ProtectedAPI:
			if claims == nil {
				return common.ErrorUnauthorized
			}
		}
		return c.Next()
	}
}

// claimsFrom returns the caller's verified claims. Routes behind the guard
// always have them; the error path covers handlers mounted elsewhere.
func claimsFrom(c *fiber.Ctx) (*auth.Claims, error) {
	cl, ok := c.Locals(claimsKey).(*auth.Claims)
	if !ok || cl == nil {
		return nil, common.ErrorUnauthorized
	}
	return cl, nil
}
