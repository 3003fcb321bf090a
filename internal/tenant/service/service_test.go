package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	authmodels "teampulse/internal/auth/models"
	userstore "teampulse/internal/auth/store/user"
	pulse "teampulse/internal/models"
	"teampulse/internal/scoring"
	tenantmetrics "teampulse/internal/tenant/metrics"
	"teampulse/internal/tenant/models"
	"teampulse/internal/tenant/service/mocks"
	entrystore "teampulse/internal/tenant/store/entry"
	teamstore "teampulse/internal/tenant/store/team"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/requestcontext"
	"teampulse/pkg/secrets"
)

const (
	tenantID = 1
	otherID  = 2
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	scorer  *mocks.MockScorer
	users   *userstore.InMemoryUserStore
	teams   *teamstore.InMemory
	entries *entrystore.InMemory
	metrics *tenantmetrics.Metrics
	service *Service
	ctx     context.Context

	superuser, admin, manager, member, outsider *authmodels.User
	alpha, beta                                 *models.Team
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.scorer = mocks.NewMockScorer(s.ctrl)
	s.users = userstore.New()
	s.teams = teamstore.NewInMemory()
	s.entries = entrystore.NewInMemory()
	s.metrics = tenantmetrics.New(prometheus.NewRegistry())
	s.service = New(s.users, s.teams, s.entries, s.scorer,
		WithMetrics(s.metrics),
		WithPasswordCost(bcrypt.MinCost),
	)
	s.ctx = requestcontext.WithNow(context.Background(), time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC))

	s.superuser = s.addUser(tenantID, "root@acme.test", "Root", pulse.RoleSuperuser)
	s.admin = s.addUser(tenantID, "ada@acme.test", "Ada", pulse.RoleAdmin)
	s.manager = s.addUser(tenantID, "max@acme.test", "Max", pulse.RoleManager)
	s.member = s.addUser(tenantID, "uma@acme.test", "Uma", pulse.RoleUser)
	s.outsider = s.addUser(otherID, "olga@other.test", "Olga", pulse.RoleAdmin)

	s.alpha = &models.Team{TenantID: tenantID, Name: "Alpha", Managers: []int{s.manager.ID},
		Questions: pulse.QuestionSet{"mood": pulse.Label("How is your mood?")}}
	s.beta = &models.Team{TenantID: tenantID, Name: "Beta"}
	s.Require().NoError(s.teams.Create(s.ctx, s.alpha))
	s.Require().NoError(s.teams.Create(s.ctx, s.beta))
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) addUser(tenant int, email, name string, role pulse.Role) *authmodels.User {
	t := tenant
	u := &authmodels.User{TenantID: &t, Email: email, Name: name, Role: role}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u
}

func (s *ServiceSuite) addEntry(user *authmodels.User, team *models.Team, day string, stress *int) *models.Entry {
	reported, err := time.Parse(models.DateLayout, day)
	s.Require().NoError(err)
	motivation := 60
	e := &models.Entry{
		TenantID:        tenantID,
		UserID:          user.ID,
		TeamID:          team.ID,
		Answers:         pulse.AnswerSet{"mood": pulse.StringAnswer("fine")},
		StressScore:     stress,
		MotivationScore: &motivation,
		ReportedAt:      reported,
	}
	s.Require().NoError(s.entries.Create(s.ctx, e))
	return e
}

func (s *ServiceSuite) requireFieldError(err error, field, msg string) {
	var de *dErrors.Error
	s.Require().True(errors.As(err, &de), "expected domain error, got %v", err)
	s.Equal(dErrors.CodeValidation, de.Code)
	s.Equal([]string{msg}, de.Fields[field])
}

func intPtr(v int) *int { return &v }

func (s *ServiceSuite) TestTenantScoping() {
	s.Run("caller from another tenant is forbidden", func() {
		_, err := s.service.ListTeams(s.ctx, s.outsider.ID, tenantID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.PermissionDenials.WithLabelValues("list_teams")))
	})

	s.Run("unknown caller is unauthorized", func() {
		_, err := s.service.ListUsers(s.ctx, 999, tenantID)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *ServiceSuite) TestTeams() {
	s.Run("any tenant user lists teams with managers expanded", func() {
		teams, err := s.service.ListTeams(s.ctx, s.member.ID, tenantID)
		s.Require().NoError(err)
		s.Require().Len(teams, 2)
		s.Equal("Alpha", teams[0].Name)
		s.Require().Len(teams[0].Managers, 1)
		s.Equal("Max", teams[0].Managers[0].Name)
		s.Empty(teams[1].Managers)
	})

	s.Run("users cannot create teams", func() {
		_, err := s.service.CreateTeam(s.ctx, s.member.ID, tenantID, &models.TeamRequest{Name: "Gamma"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("managers must be admins or managers", func() {
		_, err := s.service.CreateTeam(s.ctx, s.manager.ID, tenantID, &models.TeamRequest{Name: "Gamma", Managers: []int{s.member.ID}})
		s.requireFieldError(err, "managers", MsgInvalidManager)

		_, err = s.service.CreateTeam(s.ctx, s.manager.ID, tenantID, &models.TeamRequest{Name: "Gamma", Managers: []int{s.outsider.ID}})
		s.requireFieldError(err, "managers", MsgInvalidManager)
	})

	s.Run("manager creates and updates a team", func() {
		created, err := s.service.CreateTeam(s.ctx, s.manager.ID, tenantID, &models.TeamRequest{Name: "Gamma", Managers: []int{s.admin.ID, s.manager.ID}})
		s.Require().NoError(err)
		s.Equal(tenantID, created.Tenant)
		s.Equal([]int{s.admin.ID, s.manager.ID}, created.Managers)

		updated, err := s.service.UpdateTeam(s.ctx, s.admin.ID, tenantID, created.ID, &models.TeamRequest{Name: "Gamma Ray"})
		s.Require().NoError(err)
		s.Equal("Gamma Ray", updated.Name)
		s.Empty(updated.Managers)
	})

	s.Run("update of a team in another tenant is not found", func() {
		_, err := s.service.UpdateTeam(s.ctx, s.admin.ID, tenantID, 999, &models.TeamRequest{Name: "X"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDeleteTeamCascades() {
	s.member.Teams = []int{s.alpha.ID, s.beta.ID}
	s.Require().NoError(s.users.Save(s.ctx, s.member))
	s.addEntry(s.member, s.alpha, "2024-06-01", intPtr(10))
	s.addEntry(s.member, s.beta, "2024-06-01", intPtr(20))

	s.Require().NoError(s.service.DeleteTeam(s.ctx, s.manager.ID, tenantID, s.alpha.ID))

	entries, err := s.entries.ListByUser(s.ctx, tenantID, s.member.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(s.beta.ID, entries[0].TeamID)

	member, err := s.users.FindByID(s.ctx, s.member.ID)
	s.Require().NoError(err)
	s.Equal([]int{s.beta.ID}, member.Teams)

	err = s.service.DeleteTeam(s.ctx, s.manager.ID, tenantID, s.alpha.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestListUsersHidesSuperusers() {
	users, err := s.service.ListUsers(s.ctx, s.member.ID, tenantID)
	s.Require().NoError(err)
	s.Require().Len(users, 3)
	for _, u := range users {
		s.NotEqual(pulse.RoleSuperuser, u.Role)
		s.NotNil(u.Teams)
	}
}

func (s *ServiceSuite) TestCreateUser() {
	req := func(role pulse.Role) *models.UserRequest {
		return &models.UserRequest{Name: "New", Email: "new@acme.test", Role: role}
	}

	s.Run("users cannot create users", func() {
		_, err := s.service.CreateUser(s.ctx, s.member.ID, tenantID, req(pulse.RoleUser))
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("managers cannot create admins", func() {
		_, err := s.service.CreateUser(s.ctx, s.manager.ID, tenantID, req(pulse.RoleAdmin))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal(MsgAdminRole, err.Error())
	})

	s.Run("nobody creates superusers", func() {
		_, err := s.service.CreateUser(s.ctx, s.superuser.ID, tenantID, req(pulse.RoleSuperuser))
		s.Require().Error(err)
		s.Equal(MsgSuperuserRole, err.Error())
	})

	s.Run("teams must belong to the tenant", func() {
		r := req(pulse.RoleUser)
		r.Teams = []int{999}
		_, err := s.service.CreateUser(s.ctx, s.manager.ID, tenantID, r)
		s.requireFieldError(err, "teams", MsgInvalidTeam)
	})

	s.Run("admin creates an admin with a password", func() {
		r := req(pulse.RoleAdmin)
		r.Teams = []int{s.alpha.ID}
		r.Password = "correct horse"
		created, err := s.service.CreateUser(s.ctx, s.admin.ID, tenantID, r)
		s.Require().NoError(err)
		s.Equal(pulse.RoleAdmin, created.Role)
		s.Equal([]int{s.alpha.ID}, created.Teams)

		stored, err := s.users.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.NoError(secrets.Verify("correct horse", stored.PasswordHash))
	})

	s.Run("duplicate email is a field error", func() {
		_, err := s.service.CreateUser(s.ctx, s.admin.ID, tenantID, req(pulse.RoleUser))
		s.requireFieldError(err, "email", MsgEmailInUse)
	})
}

func (s *ServiceSuite) TestUpdateUser() {
	req := func(u *authmodels.User, role pulse.Role) *models.UserRequest {
		return &models.UserRequest{Name: u.Name + " Updated", Email: u.Email, Role: role}
	}

	s.Run("user updates self", func() {
		updated, err := s.service.UpdateUser(s.ctx, s.member.ID, tenantID, s.member.ID, req(s.member, pulse.RoleUser))
		s.Require().NoError(err)
		s.Equal("Uma Updated", updated.Name)
	})

	s.Run("user cannot raise own role", func() {
		_, err := s.service.UpdateUser(s.ctx, s.member.ID, tenantID, s.member.ID, req(s.member, pulse.RoleManager))
		s.Require().Error(err)
		s.Equal(MsgRoleAboveCaller, err.Error())
	})

	s.Run("manager cannot update others", func() {
		_, err := s.service.UpdateUser(s.ctx, s.manager.ID, tenantID, s.member.ID, req(s.member, pulse.RoleUser))
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin cannot update a superuser", func() {
		_, err := s.service.UpdateUser(s.ctx, s.admin.ID, tenantID, s.superuser.ID, req(s.superuser, pulse.RoleSuperuser))
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("admin promotes a user to manager", func() {
		updated, err := s.service.UpdateUser(s.ctx, s.admin.ID, tenantID, s.member.ID, req(s.member, pulse.RoleManager))
		s.Require().NoError(err)
		s.Equal(pulse.RoleManager, updated.Role)
	})

	s.Run("users of another tenant are not found", func() {
		_, err := s.service.UpdateUser(s.ctx, s.admin.ID, tenantID, s.outsider.ID, req(s.outsider, pulse.RoleAdmin))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestDeleteUser() {
	s.Run("manager cannot delete an admin", func() {
		err := s.service.DeleteUser(s.ctx, s.manager.ID, tenantID, s.admin.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("nobody deletes themselves", func() {
		err := s.service.DeleteUser(s.ctx, s.admin.ID, tenantID, s.admin.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("delete cascades to entries and manager assignments", func() {
		s.addEntry(s.manager, s.alpha, "2024-06-01", intPtr(10))

		s.Require().NoError(s.service.DeleteUser(s.ctx, s.admin.ID, tenantID, s.manager.ID))

		entries, err := s.entries.ListByUser(s.ctx, tenantID, s.manager.ID)
		s.Require().NoError(err)
		s.Empty(entries)
		team, err := s.teams.FindByTenantAndID(s.ctx, tenantID, s.alpha.ID)
		s.Require().NoError(err)
		s.Empty(team.Managers)
	})
}

func (s *ServiceSuite) TestCreateEntry() {
	req := func(day string) *models.EntryRequest {
		return &models.EntryRequest{
			Team:       s.alpha.ID,
			ReportedAt: day,
			Answers:    pulse.AnswerSet{"mood": pulse.StringAnswer("Great")},
			Comment:    "ok",
		}
	}

	s.Run("scores and q_and_a are derived", func() {
		s.scorer.EXPECT().
			Score(gomock.Any(), s.alpha.Questions, gomock.Any()).
			Return(scoring.Scores{Stress: 30, Motivation: 70}, nil)

		entry, err := s.service.CreateEntry(s.ctx, s.member.ID, tenantID, req("2024-06-10"))
		s.Require().NoError(err)
		s.Equal(s.member.ID, entry.User)
		s.Equal(tenantID, entry.Tenant)
		s.Equal("2024-06-10", entry.ReportedAt)
		s.Equal(30, *entry.StressScore)
		s.Equal(70, *entry.MotivationScore)
		s.Equal("Q: How is your mood?\nA: Great", entry.QAndA)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.EntriesCreated))
	})

	s.Run("second entry for the same day conflicts", func() {
		s.scorer.EXPECT().Score(gomock.Any(), gomock.Any(), gomock.Any()).Return(scoring.Scores{}, nil)

		_, err := s.service.CreateEntry(s.ctx, s.member.ID, tenantID, req("2024-06-10"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("scoring failure stores zero scores", func() {
		s.scorer.EXPECT().Score(gomock.Any(), gomock.Any(), gomock.Any()).Return(scoring.Scores{}, errors.New("scorer down"))

		entry, err := s.service.CreateEntry(s.ctx, s.member.ID, tenantID, req("2024-06-11"))
		s.Require().NoError(err)
		s.Equal(0, *entry.StressScore)
		s.Equal(0, *entry.MotivationScore)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.ScoringFailures))
	})

	s.Run("team must exist in the tenant", func() {
		r := req("2024-06-12")
		r.Team = 999
		_, err := s.service.CreateEntry(s.ctx, s.member.ID, tenantID, r)
		s.requireFieldError(err, "team", MsgInvalidTeam)
	})
}

func (s *ServiceSuite) TestCreateEntryStoreFailure() {
	entries := mocks.NewMockEntryStore(s.ctrl)
	svc := New(s.users, s.teams, entries, s.scorer)

	s.scorer.EXPECT().Score(gomock.Any(), gomock.Any(), gomock.Any()).Return(scoring.Scores{Stress: 1, Motivation: 2}, nil)
	entries.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.CreateEntry(s.ctx, s.member.ID, tenantID, &models.EntryRequest{
		Team:       s.beta.ID,
		ReportedAt: "2024-06-10",
		Answers:    pulse.AnswerSet{"mood": pulse.NumberAnswer(3)},
	})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestListEntriesNewestFirst() {
	s.addEntry(s.member, s.alpha, "2024-06-01", intPtr(10))
	s.addEntry(s.member, s.beta, "2024-06-03", intPtr(20))
	s.addEntry(s.manager, s.alpha, "2024-06-05", intPtr(30))

	entries, err := s.service.ListEntries(s.ctx, s.member.ID, tenantID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("2024-06-03", entries[0].ReportedAt)
	s.Equal(pulse.Summary{ID: s.beta.ID, Name: "Beta"}, entries[0].Team)
	s.Equal(pulse.Summary{ID: s.member.ID, Name: "Uma"}, entries[0].User)
	s.Equal("2024-06-01", entries[1].ReportedAt)
}

func (s *ServiceSuite) TestListTeamEntries() {
	s.addEntry(s.member, s.alpha, "2024-06-02", nil)
	s.addEntry(s.member, s.alpha, "2024-06-01", intPtr(40))
	s.addEntry(s.manager, s.beta, "2024-06-01", intPtr(50))
	s.addEntry(s.member, s.beta, "2024-01-01", intPtr(90))

	s.Run("admin sees every team", func() {
		teams, err := s.service.ListTeamEntries(s.ctx, s.admin.ID, tenantID)
		s.Require().NoError(err)
		s.Require().Len(teams, 2)
		s.Equal("Alpha", teams[0].Name)
		s.Require().Len(teams[0].Users, 1)
		s.Equal(pulse.TeamEntryUser{
			ID:   s.member.ID,
			Name: "Uma",
			Entries: pulse.EntrySeries{
				Labels:           []string{"06/01", "06/02"},
				StressValues:     []int{40, 0},
				MotivationValues: []int{60, 60},
			},
		}, teams[0].Users[0])
		s.Equal("Beta", teams[1].Name)
		s.Require().Len(teams[1].Users, 1)
		s.Equal(s.manager.ID, teams[1].Users[0].ID)
	})

	s.Run("manager sees managed teams only", func() {
		teams, err := s.service.ListTeamEntries(s.ctx, s.manager.ID, tenantID)
		s.Require().NoError(err)
		s.Require().Len(teams, 1)
		s.Equal(s.alpha.ID, teams[0].ID)
	})

	s.Run("user sees own entries", func() {
		teams, err := s.service.ListTeamEntries(s.ctx, s.member.ID, tenantID)
		s.Require().NoError(err)
		s.Require().Len(teams, 1)
		s.Require().Len(teams[0].Users, 1)
		s.Equal(s.member.ID, teams[0].Users[0].ID)
	})
}
