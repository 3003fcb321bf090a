package models

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	pulse "teampulse/internal/models"
)

// DateLayout is the wire format of reported_at.
const DateLayout = "2006-01-02"

// Tenant is an organisation. Every team, user and entry belongs to exactly one.
type Tenant struct {
	ID             int
	Name           string
	DomainSettings map[string]string
	CreatedAt      time.Time
}

// Team groups users and carries the questions its members answer.
type Team struct {
	ID        int
	TenantID  int
	Name      string
	Questions pulse.QuestionSet
	Managers  []int
}

func (t *Team) Clone() *Team {
	c := *t
	c.Questions = maps.Clone(t.Questions)
	c.Managers = slices.Clone(t.Managers)
	return &c
}

// IsManagedBy reports whether userID manages the team.
func (t *Team) IsManagedBy(userID int) bool {
	return slices.Contains(t.Managers, userID)
}

// Entry is one user's daily check-in for one team.
type Entry struct {
	ID              int
	TenantID        int
	UserID          int
	TeamID          int
	Questions       pulse.QuestionSet
	Answers         pulse.AnswerSet
	StressScore     *int
	MotivationScore *int
	Comment         string
	ReportedAt      time.Time
	CreatedAt       time.Time
}

func (e *Entry) Clone() *Entry {
	c := *e
	c.Questions = maps.Clone(e.Questions)
	c.Answers = maps.Clone(e.Answers)
	if e.StressScore != nil {
		v := *e.StressScore
		c.StressScore = &v
	}
	if e.MotivationScore != nil {
		v := *e.MotivationScore
		c.MotivationScore = &v
	}
	return &c
}

// QAndA renders the answered questions as "Q: ...\nA: ..." pairs in key order.
func (e *Entry) QAndA() string {
	keys := make([]string, 0, len(e.Answers))
	for k := range e.Answers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		question := k
		if q, ok := e.Questions[k]; ok && q.Text() != "" {
			question = q.Text()
		}
		fmt.Fprintf(&b, "Q: %s\nA: %s", question, e.Answers[k].String())
	}
	return b.String()
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
