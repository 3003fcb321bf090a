package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Answer holds a string, a number or a boolean.
type Answer struct {
	value any
}

func StringAnswer(s string) Answer  { return Answer{value: s} }
func NumberAnswer(f float64) Answer { return Answer{value: f} }
func BoolAnswer(b bool) Answer      { return Answer{value: b} }

// ParseAnswer infers the answer shape from command-line text.
func ParseAnswer(s string) Answer {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return BoolAnswer(true)
	case "false", "no":
		return BoolAnswer(false)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return NumberAnswer(f)
	}
	return StringAnswer(s)
}

func (a Answer) IsZero() bool { return a.value == nil }

func (a Answer) AsString() (string, bool) {
	s, ok := a.value.(string)
	return s, ok
}

func (a Answer) AsNumber() (float64, bool) {
	f, ok := a.value.(float64)
	return f, ok
}

func (a Answer) AsBool() (bool, bool) {
	b, ok := a.value.(bool)
	return b, ok
}

func (a Answer) String() string {
	switch v := a.value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case string, float64, bool, nil:
		a.value = raw
		return nil
	default:
		return fmt.Errorf("answer: expected string, number or boolean, got %s", data)
	}
}

// AnswerSet maps a question key to the given answer.
type AnswerSet map[string]Answer
