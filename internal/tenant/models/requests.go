package models

import (
	"strings"
	"time"

	pulse "teampulse/internal/models"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/platform/validation"
	pkgvalidation "teampulse/pkg/validation"
)

// TeamRequest is the body of team create and update.
type TeamRequest struct {
	Name      string            `json:"name" validate:"notblank,max=100"`
	Questions pulse.QuestionSet `json:"questions"`
	Managers  []int             `json:"managers"`
}

func (r *TeamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Managers = dedupe(r.Managers)
}

func (r *TeamRequest) Validate() error {
	if err := pkgvalidation.Validate(r); err != nil {
		return err
	}
	var l validation.Limits
	return l.Count("questions", len(r.Questions), validation.MaxQuestions).
		EachLength("questions", r.Questions.Keys(), validation.MaxQuestionKeyLength).
		Count("managers", len(r.Managers), validation.MaxManagers).
		Err()
}

// UserRequest is the body of user create and update. Password is optional;
// a user created without one cannot log in until it is set.
type UserRequest struct {
	Name     string     `json:"name" validate:"notblank,max=100"`
	Email    string     `json:"email" validate:"required,emailaddr,max=254"`
	Role     pulse.Role `json:"role" validate:"min=1,max=4"`
	Teams    []int      `json:"teams"`
	Password string     `json:"password,omitempty" validate:"max=72"`
}

func (r *UserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Teams = dedupe(r.Teams)
}

func (r *UserRequest) Validate() error {
	if err := pkgvalidation.Validate(r); err != nil {
		return err
	}
	return new(validation.Limits).Count("teams", len(r.Teams), validation.MaxUserTeams).Err()
}

// EntryRequest is the body of entry create. reported_at is a plain date.
type EntryRequest struct {
	Team       int               `json:"team" validate:"gt=0"`
	ReportedAt string            `json:"reported_at" validate:"required"`
	Questions  pulse.QuestionSet `json:"questions"`
	Answers    pulse.AnswerSet   `json:"answers" validate:"required"`
	Comment    string            `json:"comment"`
}

func (r *EntryRequest) Normalize() {
	r.ReportedAt = strings.TrimSpace(r.ReportedAt)
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *EntryRequest) Validate() error {
	if err := pkgvalidation.Validate(r); err != nil {
		return err
	}
	if _, err := r.Date(); err != nil {
		return dErrors.New(dErrors.CodeValidation, "reported_at must be a date in YYYY-MM-DD format")
	}
	var l validation.Limits
	l.Count("answers", len(r.Answers), validation.MaxQuestions)
	for _, answer := range r.Answers {
		if s, ok := answer.AsString(); ok {
			l.Length("answers", s, validation.MaxAnswerLength)
		}
	}
	return l.Length("comment", r.Comment, validation.MaxCommentLength).Err()
}

// Date parses ReportedAt.
func (r *EntryRequest) Date() (time.Time, error) {
	return time.Parse(DateLayout, r.ReportedAt)
}

func dedupe(ids []int) []int {
	if ids == nil {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
