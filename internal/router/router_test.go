package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"teampulse/internal/router/mocks"
)

var errUnauthorized = errors.New("request failed with status code 401")

func TestGuardNavigate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		target     string
		verifyErr  error
		loggedIn   bool
		wantReset  bool
		wantString string
		redirected bool
	}{
		{name: "protected page with failing verify redirects to login", target: "/home", verifyErr: errUnauthorized, wantReset: true, wantString: "/?redirect=%2Fhome", redirected: true},
		{name: "full path with query is carried", target: "/teams?page=2", verifyErr: errUnauthorized, wantReset: true, wantString: "/?redirect=%2Fteams%3Fpage%3D2", redirected: true},
		{name: "login page with failing verify proceeds", target: "/", verifyErr: errUnauthorized, wantReset: true, wantString: "/"},
		{name: "login page when logged in goes home", target: "/", loggedIn: true, wantString: "/home", redirected: true},
		{name: "login page verified but flag unset proceeds", target: "/", loggedIn: false, wantString: "/"},
		{name: "protected page with valid session proceeds", target: "/entries", loggedIn: true, wantString: "/entries"},
		{name: "query survives a normal navigation", target: "/users?sort=name", loggedIn: true, wantString: "/users?sort=name"},
		{name: "unknown path is guarded like any other", target: "/nowhere", verifyErr: errUnauthorized, wantReset: true, wantString: "/?redirect=%2Fnowhere", redirected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := mocks.NewMockSession(ctrl)
			session.EXPECT().VerifyToken(gomock.Any()).Return(tt.verifyErr)
			if tt.wantReset {
				session.EXPECT().Reset(gomock.Any())
			}
			if tt.verifyErr == nil && tt.target == "/" {
				session.EXPECT().IsLoggedIn().Return(tt.loggedIn)
			}

			d := NewGuard(session).Navigate(ctx, tt.target)
			assert.Equal(t, tt.wantString, d.String())
			assert.Equal(t, tt.redirected, d.Redirected)
		})
	}
}

func TestDecisionRedirectTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mocks.NewMockSession(ctrl)
	session.EXPECT().VerifyToken(gomock.Any()).Return(errUnauthorized)
	session.EXPECT().Reset(gomock.Any())

	d := NewGuard(session).Navigate(context.Background(), "/team-entries")
	require.Equal(t, PathRoot, d.Path)
	assert.Equal(t, "/team-entries", d.RedirectTarget())
	assert.Empty(t, Decision{Path: PathHome}.RedirectTarget())
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("/teams?x=1")
	require.True(t, ok)
	assert.Equal(t, "Teams", r.Title)
	assert.False(t, r.Public)

	r, ok = Lookup("/")
	require.True(t, ok)
	assert.True(t, r.Public)

	_, ok = Lookup("/missing")
	assert.False(t, ok)
}
