package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

type QuestionType string

const (
	QuestionText    QuestionType = "text"
	QuestionNumber  QuestionType = "number"
	QuestionScale   QuestionType = "scale"
	QuestionBoolean QuestionType = "boolean"
)

// Question is the structured form of a team question.
type Question struct {
	Text     string       `json:"text"`
	Type     QuestionType `json:"type,omitempty"`
	Required bool         `json:"required,omitempty"`
}

// QuestionValue is either a plain label or a structured Question.
// On the wire it is a JSON string or a JSON object respectively.
type QuestionValue struct {
	Label    string
	Question *Question
}

// Label builds a plain-label question value.
func Label(text string) QuestionValue {
	return QuestionValue{Label: text}
}

// Structured builds a structured question value.
func Structured(q Question) QuestionValue {
	return QuestionValue{Question: &q}
}

// Text returns the question wording for either shape.
func (v QuestionValue) Text() string {
	if v.Question != nil {
		return v.Question.Text
	}
	return v.Label
}

// Kind returns the answer type; plain labels are free text.
func (v QuestionValue) Kind() QuestionType {
	if v.Question != nil && v.Question.Type != "" {
		return v.Question.Type
	}
	return QuestionText
}

func (v QuestionValue) MarshalJSON() ([]byte, error) {
	if v.Question != nil {
		return json.Marshal(v.Question)
	}
	return json.Marshal(v.Label)
}

func (v *QuestionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("question: empty value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = QuestionValue{Label: s}
		return nil
	case '{':
		var q Question
		if err := json.Unmarshal(data, &q); err != nil {
			return err
		}
		*v = QuestionValue{Question: &q}
		return nil
	default:
		return fmt.Errorf("question: expected string or object, got %s", data)
	}
}

// QuestionSet maps a question key to its wording.
type QuestionSet map[string]QuestionValue

// Keys returns the question keys in sorted order.
func (qs QuestionSet) Keys() []string {
	keys := make([]string, 0, len(qs))
	for k := range qs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
