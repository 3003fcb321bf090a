package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"teampulse/internal/models"
)

type recordedRequest struct {
	method string
	path   string
	body   string
	cookie string
}

type ClientSuite struct {
	suite.Suite
	ctx      context.Context
	server   *httptest.Server
	handler  http.HandlerFunc
	requests []recordedRequest
	client   *Client
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
	s.requests = nil
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		cookie := ""
		if c, err := r.Cookie("access_token"); err == nil {
			cookie = c.Value
		}
		s.requests = append(s.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			body:   string(body),
			cookie: cookie,
		})
		s.handler(w, r)
	}))
	client, err := New(s.server.URL)
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientSuite) respondJSON(status int, body string) {
	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (s *ClientSuite) lastRequest() recordedRequest {
	s.Require().NotEmpty(s.requests)
	return s.requests[len(s.requests)-1]
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) TestNew() {
	s.Run("rejects non-http base url", func() {
		_, err := New("ftp://example.com")
		s.Require().Error(err)
	})

	s.Run("trims trailing slash", func() {
		c, err := New("http://localhost:8080/")
		s.Require().NoError(err)
		s.Equal("http://localhost:8080", c.BaseURL())
	})
}

func (s *ClientSuite) TestLogin() {
	s.Run("posts credentials and decodes the user", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "abc", Path: "/", HttpOnly: true})
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":1,"name":"Ada","email":"ada@example.com","tenant":7}`)
		}

		resp, err := s.client.Auth.Login(s.ctx, "ada@example.com", "secret")
		s.Require().NoError(err)

		req := s.lastRequest()
		s.Equal(http.MethodPost, req.method)
		s.Equal("/api/auth/", req.path)
		s.JSONEq(`{"email":"ada@example.com","password":"secret"}`, req.body)

		s.Equal(http.StatusOK, resp.Status)
		s.Equal(1, resp.Data.ID)
		tenant, ok := resp.Data.TenantID()
		s.True(ok)
		s.Equal(7, tenant)
	})

	s.Run("forwards cookies on later requests", func() {
		_, err := s.client.Auth.Verify(s.ctx)
		s.Require().NoError(err)
		req := s.lastRequest()
		s.Equal("/api/auth/verify/", req.path)
		s.Equal("abc", req.cookie)
	})
}

func (s *ClientSuite) TestAuthPaths() {
	s.respondJSON(http.StatusOK, `{"id":3,"name":"Bo","email":"bo@example.com","tenant":null}`)

	refreshed, err := s.client.Auth.Refresh(s.ctx)
	s.Require().NoError(err)
	s.Equal("/api/auth/refresh/", s.lastRequest().path)
	_, ok := refreshed.Data.TenantID()
	s.False(ok)

	s.respondJSON(http.StatusOK, `{"message":"Logged out"}`)
	resp, err := s.client.Auth.Logout(s.ctx)
	s.Require().NoError(err)
	s.Equal("/api/auth/logout/", s.lastRequest().path)
	s.Equal("Logged out", resp.Message)

	s.respondJSON(http.StatusCreated, `{"message":"Tenant request submitted","request":{"id":11}}`)
	created, err := s.client.Auth.TenantRequest(s.ctx, models.TenantRequestForm{
		TenantName: "Acme", Email: "a@acme.io", Name: "Ann", Domain: "acme.io",
	})
	s.Require().NoError(err)
	s.Equal("/api/auth/tenant-request/", s.lastRequest().path)
	s.JSONEq(`{"tenantName":"Acme","email":"a@acme.io","name":"Ann","domain":"acme.io"}`, s.lastRequest().body)
	s.Equal(http.StatusCreated, created.Status)
	s.Equal(11, created.Data.Request.ID)
	s.Equal("Tenant request submitted", created.Message)
}

func (s *ClientSuite) TestTenantPaths() {
	cases := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"list teams", func() error { _, err := s.client.Tenant.ListTeams(s.ctx, 7); return err }, http.MethodGet, "/api/tenants/7/teams/"},
		{"create team", func() error {
			_, err := s.client.Tenant.CreateTeam(s.ctx, 7, models.TeamForm{Name: "Core"})
			return err
		}, http.MethodPost, "/api/tenants/7/teams/"},
		{"update team", func() error {
			_, err := s.client.Tenant.UpdateTeam(s.ctx, 7, 3, models.TeamForm{Name: "Core"})
			return err
		}, http.MethodPut, "/api/tenants/7/teams/3/"},
		{"delete team", func() error { _, err := s.client.Tenant.DeleteTeam(s.ctx, 7, 3); return err }, http.MethodDelete, "/api/tenants/7/teams/3/"},
		{"list users", func() error { _, err := s.client.Tenant.ListUsers(s.ctx, 7); return err }, http.MethodGet, "/api/tenants/7/users/"},
		{"create user", func() error {
			_, err := s.client.Tenant.CreateUser(s.ctx, 7, models.UserForm{Name: "U"})
			return err
		}, http.MethodPost, "/api/tenants/7/users/"},
		{"update user", func() error {
			_, err := s.client.Tenant.UpdateUser(s.ctx, 7, 9, models.UserForm{Name: "U"})
			return err
		}, http.MethodPut, "/api/tenants/7/users/9/"},
		{"delete user", func() error { _, err := s.client.Tenant.DeleteUser(s.ctx, 7, 9); return err }, http.MethodDelete, "/api/tenants/7/users/9/"},
		{"list entries", func() error { _, err := s.client.Tenant.ListEntries(s.ctx, 7); return err }, http.MethodGet, "/api/tenants/7/entries/"},
		{"create entry", func() error {
			_, err := s.client.Tenant.CreateEntry(s.ctx, 7, models.EntryPayload{Team: 1, ReportedAt: "2024-03-05"})
			return err
		}, http.MethodPost, "/api/tenants/7/entries/"},
		{"list team entries", func() error { _, err := s.client.Tenant.ListTeamEntries(s.ctx, 7); return err }, http.MethodGet, "/api/tenants/7/team-entries/"},
	}

	s.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.Require().NoError(tc.call())
			req := s.lastRequest()
			s.Equal(tc.method, req.method)
			s.Equal(tc.path, req.path)
		})
	}
}

func (s *ClientSuite) TestListDecodes() {
	s.respondJSON(http.StatusOK, `[{"id":2,"name":"Core","tenant":7,"questions":{"q1":"How are you?"},"managers":[{"id":4,"name":"M","email":"m@x.io","tenant":7}]}]`)

	resp, err := s.client.Tenant.ListTeams(s.ctx, 7)
	s.Require().NoError(err)
	s.Require().Len(resp.Data, 1)
	s.Equal("Core", resp.Data[0].Name)
	s.Equal("How are you?", resp.Data[0].Questions["q1"].Text())
	s.Require().Len(resp.Data[0].Managers, 1)
	s.Equal(4, resp.Data[0].Managers[0].ID)
}

func (s *ClientSuite) TestHTTPErrors() {
	s.Run("detail message", func() {
		s.respondJSON(http.StatusUnauthorized, `{"detail":"Invalid credentials"}`)
		_, err := s.client.Auth.Login(s.ctx, "a@b.io", "x")
		s.Require().Error(err)

		var httpErr *HTTPError
		s.Require().True(errors.As(err, &httpErr))
		s.Equal(http.StatusUnauthorized, httpErr.Status)
		s.Equal("Invalid credentials", httpErr.Message)
		s.Equal(http.StatusUnauthorized, StatusOf(err))
		s.Equal("request failed with status code 401: Invalid credentials", err.Error())
	})

	s.Run("field errors", func() {
		s.respondJSON(http.StatusBadRequest, `{"tenantName":["This tenant name is already in use."],"email":["This email is already registered."]}`)
		_, err := s.client.Auth.TenantRequest(s.ctx, models.TenantRequestForm{})
		s.Require().Error(err)
		s.Equal(http.StatusBadRequest, StatusOf(err))
		s.Contains(err.Error(), "email: This email is already registered.")
	})

	s.Run("empty body", func() {
		s.handler = func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}
		_, err := s.client.Tenant.ListUsers(s.ctx, 7)
		s.Require().Error(err)
		s.Equal("request failed with status code 500", err.Error())
	})

	s.Run("undecodable success body", func() {
		s.respondJSON(http.StatusOK, `not json`)
		_, err := s.client.Tenant.ListUsers(s.ctx, 7)
		s.Require().Error(err)
		s.Equal(0, StatusOf(err))
	})
}

func TestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := server.URL
	server.Close()

	client, err := New(base, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = client.Auth.Verify(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail wins", `{"detail":"d","message":"m"}`, "d"},
		{"domain error", `{"error":"forbidden","error_description":"not allowed"}`, "not allowed"},
		{"plain error", `{"error":"internal_error"}`, "internal_error"},
		{"first field in key order", `{"b":["second"],"a":["first"]}`, "a: first"},
		{"not json", `<html>`, ""},
		{"array", `[1,2]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMessage([]byte(tt.body)))
		})
	}
}

func TestFileJar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "a1", Path: "/", MaxAge: 900})
			http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "r1", Path: "/", MaxAge: 3600})
		case "/logout":
			http.SetCookie(w, &http.Cookie{Name: "access_token", Path: "/", MaxAge: -1})
		case "/echo":
			var names []string
			for _, c := range r.Cookies() {
				names = append(names, c.Name+"="+c.Value)
			}
			_ = json.NewEncoder(w).Encode(names)
		}
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "state", "cookies.json")
	base, err := url.Parse(server.URL)
	require.NoError(t, err)

	t.Run("persists cookies across jars", func(t *testing.T) {
		jar, err := NewFileJar(path, server.URL)
		require.NoError(t, err)
		hc := &http.Client{Jar: jar}
		resp, err := hc.Get(server.URL + "/login")
		require.NoError(t, err)
		resp.Body.Close()

		reloaded, err := NewFileJar(path, server.URL)
		require.NoError(t, err)
		names := cookieNames(reloaded.Cookies(base))
		assert.ElementsMatch(t, []string{"access_token=a1", "refresh_token=r1"}, names)
	})

	t.Run("drops deleted cookies", func(t *testing.T) {
		jar, err := NewFileJar(path, server.URL)
		require.NoError(t, err)
		hc := &http.Client{Jar: jar}
		resp, err := hc.Get(server.URL + "/logout")
		require.NoError(t, err)
		resp.Body.Close()

		reloaded, err := NewFileJar(path, server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{"refresh_token=r1"}, cookieNames(reloaded.Cookies(base)))
	})

	t.Run("clear removes everything", func(t *testing.T) {
		jar, err := NewFileJar(path, server.URL)
		require.NoError(t, err)
		require.NoError(t, jar.Clear())
		assert.Empty(t, jar.Cookies(base))
		assert.NoFileExists(t, path)

		reloaded, err := NewFileJar(path, server.URL)
		require.NoError(t, err)
		assert.Empty(t, reloaded.Cookies(base))
	})

	t.Run("client sends persisted cookies", func(t *testing.T) {
		jar, err := NewFileJar(path, server.URL)
		require.NoError(t, err)
		client, err := New(server.URL, WithCookieJar(jar))
		require.NoError(t, err)
		assert.Same(t, jar, client.Jar())
	})
}

func TestFileJarReportsFailedSaves(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "a1", Path: "/", MaxAge: 900})
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "state")
	var logs bytes.Buffer
	jar, err := NewFileJar(filepath.Join(dir, "cookies.json"), server.URL,
		WithJarLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	// A regular file where the state dir should be makes every save fail.
	require.NoError(t, os.WriteFile(dir, []byte("not a dir"), 0o600))

	resp, err := (&http.Client{Jar: jar}).Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	base, err := url.Parse(server.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"access_token=a1"}, cookieNames(jar.Cookies(base)), "cookies stay usable in memory")
	assert.Contains(t, logs.String(), "failed to save cookies")
	assert.Contains(t, logs.String(), "level=WARN")
}

func cookieNames(cookies []*http.Cookie) []string {
	out := make([]string, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, c.Name+"="+c.Value)
	}
	return out
}
