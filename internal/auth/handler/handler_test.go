package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"teampulse/internal/auth/handler/mocks"
	"teampulse/internal/auth/models"
	"teampulse/internal/auth/service"
	jwttoken "teampulse/internal/jwt_token"
	pulse "teampulse/internal/models"
	dErrors "teampulse/pkg/domain-errors"
)

type AuthHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
	session *service.Session
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger, CookieConfig{AccessTTL: 15 * time.Minute, RefreshTTL: time.Hour}, nil)
	s.router = chi.NewRouter()
	h.Register(s.router)

	tenant := 7
	s.session = &service.Session{
		User:    &models.User{ID: 1, Email: "ada@example.com", Name: "Ada", TenantID: &tenant, Role: pulse.RoleAdmin},
		Access:  jwttoken.Token{Value: "access-1"},
		Refresh: jwttoken.Token{Value: "refresh-1"},
	}
}

func (s *AuthHandlerSuite) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *AuthHandlerSuite) TestLogin() {
	s.Run("sets both cookies and returns the user", func() {
		s.service.EXPECT().Login(gomock.Any(), &models.LoginRequest{Email: "ada@example.com", Password: "pw"}).Return(s.session, nil)

		rr := s.do(http.MethodPost, "/api/auth/", `{"email":" Ada@Example.com ","password":"pw"}`)
		s.Require().Equal(http.StatusOK, rr.Code)

		var user pulse.User
		s.Require().NoError(json.NewDecoder(rr.Body).Decode(&user))
		s.Equal(1, user.ID)
		id, ok := user.TenantID()
		s.True(ok)
		s.Equal(7, id)

		access := cookieByName(rr, AccessCookieName)
		s.Require().NotNil(access)
		s.Equal("access-1", access.Value)
		s.True(access.HttpOnly)
		s.Equal(http.SameSiteLaxMode, access.SameSite)
		s.Equal(900, access.MaxAge)
		refresh := cookieByName(rr, RefreshCookieName)
		s.Require().NotNil(refresh)
		s.Equal(3600, refresh.MaxAge)
	})

	s.Run("bad credentials are 401 without cookies", func() {
		s.service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeUnauthorized, service.MsgInvalidCredentials))

		rr := s.do(http.MethodPost, "/api/auth/", `{"email":"ada@example.com","password":"bad"}`)
		s.Equal(http.StatusUnauthorized, rr.Code)
		s.Nil(cookieByName(rr, AccessCookieName))
		s.Contains(rr.Body.String(), service.MsgInvalidCredentials)
	})

	s.Run("missing password never reaches the service", func() {
		rr := s.do(http.MethodPost, "/api/auth/", `{"email":"ada@example.com"}`)
		s.Equal(http.StatusBadRequest, rr.Code)
		s.Contains(rr.Body.String(), "password is required")
	})
}

func (s *AuthHandlerSuite) TestVerify() {
	s.Run("missing cookie is 400", func() {
		rr := s.do(http.MethodPost, "/api/auth/verify/", "")
		s.Equal(http.StatusBadRequest, rr.Code)
		s.JSONEq(`{"detail":"Access_token is missing."}`, rr.Body.String())
	})

	s.Run("invalid cookie is 401", func() {
		s.service.EXPECT().Verify(gomock.Any(), "stale").Return(dErrors.New(dErrors.CodeUnauthorized, "token expired"))

		rr := s.do(http.MethodPost, "/api/auth/verify/", "", &http.Cookie{Name: AccessCookieName, Value: "stale"})
		s.Equal(http.StatusUnauthorized, rr.Code)
	})

	s.Run("valid cookie is 200 with an empty body", func() {
		s.service.EXPECT().Verify(gomock.Any(), "access-1").Return(nil)

		rr := s.do(http.MethodPost, "/api/auth/verify/", "", &http.Cookie{Name: AccessCookieName, Value: "access-1"})
		s.Equal(http.StatusOK, rr.Code)
		s.Empty(rr.Body.String())
	})
}

func (s *AuthHandlerSuite) TestRefresh() {
	s.Run("missing cookie is 400", func() {
		rr := s.do(http.MethodPost, "/api/auth/refresh/", "")
		s.Equal(http.StatusBadRequest, rr.Code)
		s.JSONEq(`{"detail":"Refresh token is missing."}`, rr.Body.String())
	})

	s.Run("rotates cookies", func() {
		s.service.EXPECT().Refresh(gomock.Any(), "refresh-0").Return(s.session, nil)

		rr := s.do(http.MethodPost, "/api/auth/refresh/", "", &http.Cookie{Name: RefreshCookieName, Value: "refresh-0"})
		s.Require().Equal(http.StatusOK, rr.Code)
		s.Equal("access-1", cookieByName(rr, AccessCookieName).Value)
		s.Equal("refresh-1", cookieByName(rr, RefreshCookieName).Value)
	})
}

func (s *AuthHandlerSuite) TestLogout() {
	rr := s.do(http.MethodPost, "/api/auth/logout/", "")
	s.Equal(http.StatusOK, rr.Code)

	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		c := cookieByName(rr, name)
		s.Require().NotNil(c, name)
		s.Equal(-1, c.MaxAge)
	}
}

func (s *AuthHandlerSuite) TestTenantRequest() {
	s.Run("created", func() {
		s.service.EXPECT().RequestTenant(gomock.Any(), &models.TenantRequestRequest{
			TenantName: "Acme", Email: "boss@acme.io", Name: "Boss", Domain: "acme.io",
		}).Return(&models.TenantRequest{ID: 3}, nil)

		rr := s.do(http.MethodPost, "/api/auth/tenant-request/", `{"tenantName":"Acme","email":"Boss@acme.io","name":"Boss","domain":"acme.io"}`)
		s.Require().Equal(http.StatusCreated, rr.Code)

		var result pulse.TenantRequestResult
		s.Require().NoError(json.NewDecoder(rr.Body).Decode(&result))
		s.Equal(3, result.Request.ID)
		s.Equal(models.TenantRequestMessage, result.Message)
	})

	s.Run("every invalid field is reported", func() {
		rr := s.do(http.MethodPost, "/api/auth/tenant-request/", `{"tenantName":"","email":"nope","name":"Boss","domain":""}`)
		s.Require().Equal(http.StatusBadRequest, rr.Code)

		var fields map[string][]string
		s.Require().NoError(json.NewDecoder(rr.Body).Decode(&fields))
		s.Equal([]string{"tenantName must not be blank"}, fields["tenantName"])
		s.Equal([]string{"email must be a valid email"}, fields["email"])
		s.Equal([]string{"domain must not be blank"}, fields["domain"])
		s.NotContains(fields, "name")
	})

	s.Run("duplicates come back as field errors", func() {
		s.service.EXPECT().RequestTenant(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.NewFieldErrors(map[string][]string{"email": {service.MsgEmailInUse}}))

		rr := s.do(http.MethodPost, "/api/auth/tenant-request/", `{"tenantName":"Acme","email":"boss@acme.io","name":"Boss","domain":"acme.io"}`)
		s.Require().Equal(http.StatusBadRequest, rr.Code)
		s.JSONEq(`{"email":["This email is already in use."]}`, rr.Body.String())
	})
}
