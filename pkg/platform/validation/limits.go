// Package validation holds the size limits of API payloads. Violations are
// reported as field errors so clients can show them next to the input.
package validation

import (
	"fmt"
	"unicode/utf8"

	dErrors "teampulse/pkg/domain-errors"
)

const (
	// MaxQuestions bounds the questions of a team and the answers of an entry.
	MaxQuestions = 30
	// MaxManagers bounds the managers of one team.
	MaxManagers = 20
	// MaxUserTeams bounds the teams one user belongs to.
	MaxUserTeams = 50

	MaxAnswerLength      = 2000
	MaxCommentLength     = 2000
	MaxQuestionKeyLength = 100
)

// Limits collects violations keyed by wire field name. The zero value is
// ready to use.
type Limits struct {
	fields map[string][]string
}

func (l *Limits) add(field, msg string) {
	if l.fields == nil {
		l.fields = make(map[string][]string)
	}
	l.fields[field] = append(l.fields[field], msg)
}

// Count flags a collection with more than max elements.
func (l *Limits) Count(field string, n, max int) *Limits {
	if n > max {
		l.add(field, fmt.Sprintf("at most %d allowed, got %d", max, n))
	}
	return l
}

// Length flags a string longer than max characters.
func (l *Limits) Length(field, value string, max int) *Limits {
	if utf8.RuneCountInString(value) > max {
		l.add(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return l
}

// EachLength applies Length to every value, reporting the field once.
func (l *Limits) EachLength(field string, values []string, max int) *Limits {
	for _, v := range values {
		if utf8.RuneCountInString(v) > max {
			l.add(field, fmt.Sprintf("%q is longer than %d characters", v, max))
			break
		}
	}
	return l
}

// Err returns the collected violations as a validation error, or nil.
func (l *Limits) Err() error {
	if len(l.fields) == 0 {
		return nil
	}
	return dErrors.NewFieldErrors(l.fields)
}
