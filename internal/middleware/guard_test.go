package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nutriflow/backend/internal/types"
)

type fakeValidator struct {
	userID uuid.UUID
}

func (f *fakeValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != "valid" {
		return nil, errors.New("invalid token")
	}
	return &types.TokenClaims{UserID: f.userID}, nil
}

type fakeOnboarding struct {
	complete bool
	err      error
}

func (f *fakeOnboarding) OnboardingComplete(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.complete, f.err
}

func guardedEngine(complete bool, checkErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	guard := RouteGuard(&fakeValidator{userID: uuid.New()}, &fakeOnboarding{complete: complete, err: checkErr})
	router.Use(guard)
	for _, path := range []string{"/", "/login", "/signup", "/onboarding", "/dashboard", "/dashboard/water"} {
		p := path
		router.GET(p, func(c *gin.Context) { c.String(http.StatusOK, p) })
	}
	return router
}

func navigate(router *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouteGuard_Decisions(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		cookie       string
		complete     bool
		wantStatus   int
		wantLocation string
	}{
		{name: "no session on protected page", path: "/dashboard", wantStatus: http.StatusFound, wantLocation: "/login"},
		{name: "no session on root", path: "/", wantStatus: http.StatusFound, wantLocation: "/login"},
		{name: "no session on login passes", path: "/login", wantStatus: http.StatusOK},
		{name: "no session on signup passes", path: "/signup", wantStatus: http.StatusOK},
		{name: "session on login bounces to dashboard", path: "/login", cookie: "valid", complete: true, wantStatus: http.StatusFound, wantLocation: "/dashboard"},
		{name: "session on signup bounces to dashboard", path: "/signup", cookie: "valid", wantStatus: http.StatusFound, wantLocation: "/dashboard"},
		{name: "incomplete onboarding forced onto onboarding", path: "/dashboard", cookie: "valid", wantStatus: http.StatusFound, wantLocation: "/onboarding"},
		{name: "incomplete onboarding stays on onboarding", path: "/onboarding", cookie: "valid", wantStatus: http.StatusOK},
		{name: "complete onboarding cannot revisit onboarding", path: "/onboarding", cookie: "valid", complete: true, wantStatus: http.StatusFound, wantLocation: "/dashboard"},
		{name: "complete onboarding passes", path: "/dashboard/water", cookie: "valid", complete: true, wantStatus: http.StatusOK},
		{name: "garbage token treated as no session", path: "/dashboard", cookie: "garbage", wantStatus: http.StatusFound, wantLocation: "/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := guardedEngine(tt.complete, nil)
			w := navigate(router, tt.path, tt.cookie)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestRouteGuard_FailsClosedOnProfileError(t *testing.T) {
	router := guardedEngine(false, errors.New("database down"))
	w := navigate(router, "/dashboard", "valid")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
