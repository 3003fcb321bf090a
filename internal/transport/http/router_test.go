package httptransport_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"teampulse/internal/platform/config"
	"teampulse/internal/seeder"
	"teampulse/internal/server"
)

type RouterSuite struct {
	suite.Suite
	backend *server.Server
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	backend, err := server.New(s.T().Context(), config.Server{
		Environment:     "test",
		JWTSigningKey:   "router-test-key",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Seed:            true,
		SeedPassword:    "demo-password",
	}, server.WithPasswordCost(bcrypt.MinCost))
	s.Require().NoError(err)
	s.backend = backend
}

func (s *RouterSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.backend.Handler.ServeHTTP(rr, req)
	return rr
}

func (s *RouterSuite) teamsPath() string {
	return fmt.Sprintf("/api/tenants/%d/teams/", s.backend.Demo.Tenant.ID)
}

func (s *RouterSuite) login(email string) []*http.Cookie {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/",
		strings.NewReader(`{"email":"`+email+`","password":"demo-password"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := s.do(req)
	s.Require().Equal(http.StatusOK, rr.Code, rr.Body.String())
	return rr.Result().Cookies()
}

func (s *RouterSuite) TestEveryResponseCarriesARequestID() {
	rr := s.do(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	s.Equal(http.StatusOK, rr.Code)
	s.NotEmpty(rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "pulse-7")
	s.Equal("pulse-7", s.do(req).Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestTenantRoutesRequireTheAccessCookie() {
	rr := s.do(httptest.NewRequest(http.MethodGet, s.teamsPath(), nil))
	s.Equal(http.StatusUnauthorized, rr.Code)
	s.Contains(rr.Body.String(), "unauthorized")

	req := httptest.NewRequest(http.MethodGet, s.teamsPath(), nil)
	for _, c := range s.login(seeder.ManagerEmail) {
		req.AddCookie(c)
	}
	rr = s.do(req)
	s.Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), "Platform")
}

func (s *RouterSuite) TestRejectsNonJSONBodies() {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/", strings.NewReader("email=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.Equal(http.StatusUnsupportedMediaType, s.do(req).Code)
}

func (s *RouterSuite) TestMetricsUseRoutePatterns() {
	s.do(httptest.NewRequest(http.MethodGet, s.teamsPath(), nil))

	rr := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Contains(rr.Body.String(), `teampulse_http_requests_total{method="GET",route="/api/tenants/{tenantID}`)
	s.Contains(rr.Body.String(), `status="4xx"`)
	s.NotContains(rr.Body.String(), s.teamsPath())
}
