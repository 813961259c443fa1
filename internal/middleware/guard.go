package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the session token for page
// navigations.
const SessionCookie = "nf_session"

// OnboardingChecker reports whether a user has completed onboarding.
type OnboardingChecker interface {
	OnboardingComplete(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RouteGuard gates every page navigation. It is registered on the page
// group only; API routes, the auth callback and static assets are wired
// outside the guarded group and never pass through here.
//
// Decision order:
//  1. no session, non-auth path  -> /login
//  2. no session, auth path      -> pass
//  3. session, auth path         -> /dashboard
//  4. session, other path        -> onboarding check: incomplete and not
//     on /onboarding -> /onboarding; complete and on /onboarding -> /dashboard
//  5. otherwise pass
//
// Any error while resolving the session or the profile redirects to
// /login: the guard fails closed.
func RouteGuard(validator TokenValidator, profiles OnboardingChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		authPath := strings.HasPrefix(path, "/login") || strings.HasPrefix(path, "/signup")

		userID, ok := resolveSession(c, validator)
		if !ok {
			if authPath {
				c.Next()
				return
			}
			redirect(c, "/login")
			return
		}

		if authPath {
			redirect(c, "/dashboard")
			return
		}

		// One profile round trip per guarded navigation, session check
		// aside. Deliberately not cached: settings changes must take
		// effect on the next navigation.
		complete, err := profiles.OnboardingComplete(c.Request.Context(), userID)
		if err != nil {
			redirect(c, "/login")
			return
		}

		if !complete && path != "/onboarding" {
			redirect(c, "/onboarding")
			return
		}
		if complete && path == "/onboarding" {
			redirect(c, "/dashboard")
			return
		}

		c.Next()
	}
}

// resolveSession reads the session cookie and validates it. A missing,
// malformed or expired token all count as "no session".
func resolveSession(c *gin.Context, validator TokenValidator) (uuid.UUID, bool) {
	token, err := c.Cookie(SessionCookie)
	if err != nil || token == "" {
		return uuid.Nil, false
	}
	claims, err := validator.ValidateToken(token)
	if err != nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
	c.Abort()
}
