package service

import (
	"context"
	"errors"
	"time"

	pulse "teampulse/internal/models"
	"teampulse/internal/sentinel"
	"teampulse/internal/tenant/models"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/requestcontext"
)

// labelLayout is the MM/DD chart label.
const labelLayout = "01/02"

// ListEntries returns the caller's own entries, newest reported_at first.
func (s *Service) ListEntries(ctx context.Context, callerID, tenantID int) ([]pulse.EntryDetail, error) {
	caller, err := s.caller(ctx, callerID, tenantID, "list_entries")
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByUser(ctx, tenantID, caller.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list entries")
	}
	_, teams, err := s.tenantTeams(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	userSummary := pulse.Summary{ID: caller.ID, Name: caller.Name}
	out := make([]pulse.EntryDetail, 0, len(entries))
	for _, e := range entries {
		teamSummary := pulse.Summary{ID: e.TeamID}
		if t, ok := teams[e.TeamID]; ok {
			teamSummary.Name = t.Name
		}
		out = append(out, models.ToEntryDetail(e, userSummary, teamSummary))
	}
	return out, nil
}

// CreateEntry stores a check-in for the caller. The team's questions are used
// when the request carries none. A scoring failure is logged and the entry is
// stored with zero scores.
func (s *Service) CreateEntry(ctx context.Context, callerID, tenantID int, req *models.EntryRequest) (pulse.Entry, error) {
	caller, err := s.caller(ctx, callerID, tenantID, "create_entry")
	if err != nil {
		return pulse.Entry{}, err
	}
	team, err := s.teams.FindByTenantAndID(ctx, tenantID, req.Team)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return pulse.Entry{}, dErrors.NewFieldErrors(map[string][]string{"team": {MsgInvalidTeam}})
		}
		return pulse.Entry{}, translate(err, "team")
	}
	reportedAt, err := req.Date()
	if err != nil {
		return pulse.Entry{}, dErrors.New(dErrors.CodeValidation, "reported_at must be a date in YYYY-MM-DD format")
	}

	questions := req.Questions
	if len(questions) == 0 {
		questions = team.Questions
	}
	entry := &models.Entry{
		TenantID:   tenantID,
		UserID:     caller.ID,
		TeamID:     team.ID,
		Questions:  questions,
		Answers:    req.Answers,
		Comment:    req.Comment,
		ReportedAt: reportedAt,
		CreatedAt:  requestcontext.Now(ctx),
	}
	stress, motivation := 0, 0
	scores, err := s.scorer.Score(ctx, questions, req.Answers)
	if err != nil {
		s.logger.WarnContext(ctx, "scoring failed, storing zero scores",
			"error", err,
			"team_id", team.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.IncrementScoringFailures()
		}
	} else {
		stress, motivation = scores.Stress, scores.Motivation
	}
	entry.StressScore = &stress
	entry.MotivationScore = &motivation

	if err := s.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return pulse.Entry{}, dErrors.New(dErrors.CodeConflict, MsgEntryExists)
		}
		return pulse.Entry{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create entry")
	}
	if s.metrics != nil {
		s.metrics.IncrementEntriesCreated()
	}
	s.logger.InfoContext(ctx, "entry created",
		"tenant_id", tenantID,
		"team_id", team.ID,
		"entry_id", entry.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.ToEntry(entry), nil
}

// ListTeamEntries aggregates the last TeamEntriesWindow of entries into chart
// series per team and user. Superusers and admins see every entry, managers
// see the teams they manage and users see their own.
func (s *Service) ListTeamEntries(ctx context.Context, callerID, tenantID int) ([]pulse.TeamEntry, error) {
	start := time.Now()
	if s.metrics != nil {
		defer s.metrics.ObserveTeamEntries(start)
	}

	caller, err := s.caller(ctx, callerID, tenantID, "list_team_entries")
	if err != nil {
		return nil, err
	}
	since := requestcontext.Now(ctx).Add(-TeamEntriesWindow)
	entries, err := s.entries.ListSince(ctx, tenantID, since)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list entries")
	}
	_, teams, err := s.tenantTeams(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	users, err := s.tenantUsers(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	visible := func(e *models.Entry) bool {
		switch {
		case isPrivileged(caller.Role):
			return true
		case caller.Role == pulse.RoleManager:
			t, ok := teams[e.TeamID]
			return ok && t.IsManagedBy(caller.ID)
		default:
			return e.UserID == caller.ID
		}
	}

	// Entries arrive ordered by team, user and date, so each group is contiguous.
	out := make([]pulse.TeamEntry, 0)
	for _, e := range entries {
		team, ok := teams[e.TeamID]
		if !ok || !visible(e) {
			continue
		}
		if len(out) == 0 || out[len(out)-1].ID != team.ID {
			out = append(out, pulse.TeamEntry{ID: team.ID, Name: team.Name, Users: []pulse.TeamEntryUser{}})
		}
		group := &out[len(out)-1]
		if n := len(group.Users); n == 0 || group.Users[n-1].ID != e.UserID {
			name := ""
			if u, ok := users[e.UserID]; ok {
				name = u.Name
			}
			group.Users = append(group.Users, pulse.TeamEntryUser{
				ID:   e.UserID,
				Name: name,
				Entries: pulse.EntrySeries{
					Labels:           []string{},
					StressValues:     []int{},
					MotivationValues: []int{},
				},
			})
		}
		series := &group.Users[len(group.Users)-1].Entries
		series.Labels = append(series.Labels, e.ReportedAt.Format(labelLayout))
		series.StressValues = append(series.StressValues, valueOrZero(e.StressScore))
		series.MotivationValues = append(series.MotivationValues, valueOrZero(e.MotivationScore))
	}
	return out, nil
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
