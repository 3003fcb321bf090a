// Package models holds the JSON contract shared by the API client and the backend.
package models

// User is the identity returned by login and refresh.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Tenant *int   `json:"tenant"`
	Teams  []int  `json:"teams,omitempty"`
	Role   Role   `json:"role,omitempty"`
}

// TenantID returns the user's tenant, if any.
func (u *User) TenantID() (int, bool) {
	if u == nil || u.Tenant == nil {
		return 0, false
	}
	return *u.Tenant, true
}

// Summary is the {id, name} shape used for nested references.
type Summary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserDetail is a listed user with its teams expanded.
type UserDetail struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Tenant *int      `json:"tenant"`
	Teams  []Summary `json:"teams"`
	Role   Role      `json:"role,omitempty"`
}

type Team struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Tenant    int         `json:"tenant"`
	Questions QuestionSet `json:"questions,omitempty"`
	Managers  []int       `json:"managers,omitempty"`
}

// TeamDetail is a listed team with its managers expanded.
type TeamDetail struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Tenant    int         `json:"tenant"`
	Questions QuestionSet `json:"questions,omitempty"`
	Managers  []User      `json:"managers"`
}

// Entry is a check-in as stored. Dates travel as strings and are reformatted by the entry store.
type Entry struct {
	ID              int         `json:"id"`
	User            int         `json:"user"`
	Team            int         `json:"team"`
	Tenant          int         `json:"tenant"`
	Questions       QuestionSet `json:"questions,omitempty"`
	Answers         AnswerSet   `json:"answers"`
	StressScore     *int        `json:"stress_score,omitempty"`
	MotivationScore *int        `json:"motivation_score,omitempty"`
	Score           *int        `json:"score,omitempty"`
	CreatedAt       string      `json:"created_at"`
	ReportedAt      string      `json:"reported_at"`
	Comment         string      `json:"comment,omitempty"`
	QAndA           string      `json:"q_and_a,omitempty"`
}

// EntryDetail is a listed entry with user and team expanded.
type EntryDetail struct {
	ID              int         `json:"id"`
	User            Summary     `json:"user"`
	Team            Summary     `json:"team"`
	Tenant          int         `json:"tenant"`
	Questions       QuestionSet `json:"questions,omitempty"`
	Answers         AnswerSet   `json:"answers"`
	StressScore     *int        `json:"stress_score,omitempty"`
	MotivationScore *int        `json:"motivation_score,omitempty"`
	Score           *int        `json:"score,omitempty"`
	CreatedAt       string      `json:"created_at"`
	ReportedAt      string      `json:"reported_at"`
	Comment         string      `json:"comment,omitempty"`
	QAndA           string      `json:"q_and_a,omitempty"`
}

// TeamEntry is the per-team chart aggregate.
type TeamEntry struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Users []TeamEntryUser `json:"users"`
}

type TeamEntryUser struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Entries EntrySeries `json:"entries"`
}

// EntrySeries holds parallel arrays: one label and one value of each kind per reported day.
type EntrySeries struct {
	Labels           []string `json:"labels"`
	StressValues     []int    `json:"stress_values"`
	MotivationValues []int    `json:"motivation_values"`
}

// TenantRequestResult is returned when a tenant request is accepted.
type TenantRequestResult struct {
	Message string           `json:"message"`
	Request TenantRequestRef `json:"request"`
}

type TenantRequestRef struct {
	ID int `json:"id"`
}
