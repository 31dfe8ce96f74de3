package auth

import "strings"

const bearerPrefix = "Bearer "

// TokenFromRequest picks the session token from an Authorization header or
// the session cookie. A well-formed Bearer header takes precedence.
func TokenFromRequest(authorization, cookie string) string {
	if len(authorization) > len(bearerPrefix) &&
		strings.EqualFold(authorization[:len(bearerPrefix)], bearerPrefix) {
		if t := strings.TrimSpace(authorization[len(bearerPrefix):]); t != "" {
			return t
		}
	}
	return strings.TrimSpace(cookie)
}
