package models

import (
	"time"

	authmodels "teampulse/internal/auth/models"
	pulse "teampulse/internal/models"
)

// Response mapping functions - convert domain objects to wire types

func ToTeam(t *Team) pulse.Team {
	managers := t.Managers
	if managers == nil {
		managers = []int{}
	}
	return pulse.Team{
		ID:        t.ID,
		Name:      t.Name,
		Tenant:    t.TenantID,
		Questions: t.Questions,
		Managers:  managers,
	}
}

// ToTeamDetail expands manager ids into users. Unknown ids are skipped.
func ToTeamDetail(t *Team, users map[int]*authmodels.User) pulse.TeamDetail {
	managers := make([]pulse.User, 0, len(t.Managers))
	for _, id := range t.Managers {
		if u, ok := users[id]; ok {
			managers = append(managers, u.View())
		}
	}
	return pulse.TeamDetail{
		ID:        t.ID,
		Name:      t.Name,
		Tenant:    t.TenantID,
		Questions: t.Questions,
		Managers:  managers,
	}
}

// ToUserDetail expands team ids into summaries. Unknown ids are skipped.
func ToUserDetail(u *authmodels.User, teams map[int]*Team) pulse.UserDetail {
	summaries := make([]pulse.Summary, 0, len(u.Teams))
	for _, id := range u.Teams {
		if t, ok := teams[id]; ok {
			summaries = append(summaries, pulse.Summary{ID: t.ID, Name: t.Name})
		}
	}
	view := u.View()
	return pulse.UserDetail{
		ID:     view.ID,
		Name:   view.Name,
		Email:  view.Email,
		Tenant: view.Tenant,
		Teams:  summaries,
		Role:   view.Role,
	}
}

func ToEntry(e *Entry) pulse.Entry {
	return pulse.Entry{
		ID:              e.ID,
		User:            e.UserID,
		Team:            e.TeamID,
		Tenant:          e.TenantID,
		Questions:       e.Questions,
		Answers:         e.Answers,
		StressScore:     e.StressScore,
		MotivationScore: e.MotivationScore,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
		ReportedAt:      e.ReportedAt.Format(DateLayout),
		Comment:         e.Comment,
		QAndA:           e.QAndA(),
	}
}

func ToEntryDetail(e *Entry, user pulse.Summary, team pulse.Summary) pulse.EntryDetail {
	return pulse.EntryDetail{
		ID:              e.ID,
		User:            user,
		Team:            team,
		Tenant:          e.TenantID,
		Questions:       e.Questions,
		Answers:         e.Answers,
		StressScore:     e.StressScore,
		MotivationScore: e.MotivationScore,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
		ReportedAt:      e.ReportedAt.Format(DateLayout),
		Comment:         e.Comment,
		QAndA:           e.QAndA(),
	}
}
