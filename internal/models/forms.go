package models

import (
	"time"

	"teampulse/pkg/validation"
)

type LoginForm struct {
	Email    string `json:"email" validate:"required,emailaddr"`
	Password string `json:"password" validate:"required"`
}

func (f LoginForm) Validate() error { return validation.Validate(f) }

type TenantRequestForm struct {
	TenantName string `json:"tenantName" validate:"notblank,max=50"`
	Email      string `json:"email" validate:"required,emailaddr"`
	Name       string `json:"name" validate:"notblank,max=100"`
	Domain     string `json:"domain" validate:"required,domain"`
}

func (f TenantRequestForm) Validate() error { return validation.Validate(f) }

type UserForm struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"required,emailaddr"`
	Role     Role   `json:"role" validate:"min=1,max=4"`
	Teams    []int  `json:"teams,omitempty" validate:"min=1"`
	Password string `json:"password,omitempty"`
}

func (f UserForm) Validate() error { return validation.Validate(f) }

type TeamForm struct {
	Name      string      `json:"name" validate:"notblank,max=100"`
	Questions QuestionSet `json:"questions,omitempty"`
	Managers  []int       `json:"managers,omitempty"`
}

func (f TeamForm) Validate() error { return validation.Validate(f) }

// EntryForm is what the entry page collects. ReportedAt keeps its time of day
// until the entry store strips it.
type EntryForm struct {
	Team       int         `json:"team" validate:"gt=0"`
	ReportedAt time.Time   `json:"reported_at"`
	Questions  QuestionSet `json:"questions"`
	Answers    AnswerSet   `json:"answers"`
	Comment    string      `json:"comment,omitempty"`
}

func (f EntryForm) Validate() error { return validation.Validate(f) }

// EntryPayload is the body sent to create an entry; ReportedAt is YYYY-MM-DD.
type EntryPayload struct {
	Team       int         `json:"team"`
	ReportedAt string      `json:"reported_at"`
	Questions  QuestionSet `json:"questions"`
	Answers    AnswerSet   `json:"answers"`
	Comment    string      `json:"comment,omitempty"`
}
