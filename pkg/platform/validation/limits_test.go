package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "teampulse/pkg/domain-errors"
)

// LimitsSuite checks that max passes and max+1 fails for every helper.
type LimitsSuite struct {
	suite.Suite
}

func TestLimitsSuite(t *testing.T) {
	suite.Run(t, new(LimitsSuite))
}

func (s *LimitsSuite) fields(err error) map[string][]string {
	var de *dErrors.Error
	s.Require().True(errors.As(err, &de))
	s.Equal(dErrors.CodeValidation, de.Code)
	return de.Fields
}

func (s *LimitsSuite) TestZeroValueHasNoError() {
	var l Limits
	s.NoError(l.Err())
}

func (s *LimitsSuite) TestCount() {
	s.NoError(new(Limits).Count("managers", 0, 2).Err())
	s.NoError(new(Limits).Count("managers", 2, 2).Err())

	err := new(Limits).Count("managers", 3, 2).Err()
	s.Equal([]string{"at most 2 allowed, got 3"}, s.fields(err)["managers"])
}

func (s *LimitsSuite) TestLength() {
	s.NoError(new(Limits).Length("comment", strings.Repeat("a", 10), 10).Err())
	s.NoError(new(Limits).Length("comment", strings.Repeat("é", 10), 10).Err(), "counts characters, not bytes")

	err := new(Limits).Length("comment", strings.Repeat("a", 11), 10).Err()
	s.Equal([]string{"must be at most 10 characters"}, s.fields(err)["comment"])
}

func (s *LimitsSuite) TestEachLengthReportsOnce() {
	s.NoError(new(Limits).EachLength("questions", []string{"stress", "notes"}, 6).Err())

	err := new(Limits).EachLength("questions", []string{"motivation", "engagement"}, 6).Err()
	s.Len(s.fields(err)["questions"], 1)
	s.Contains(s.fields(err)["questions"][0], "motivation")
}

func (s *LimitsSuite) TestCollectsAcrossFields() {
	var l Limits
	l.Count("answers", 31, MaxQuestions).Length("comment", strings.Repeat("x", MaxCommentLength+1), MaxCommentLength)

	fields := s.fields(l.Err())
	s.Len(fields, 2)
	s.Contains(fields, "answers")
	s.Contains(fields, "comment")
	s.Contains(l.Err().Error(), "answers: at most 30 allowed, got 31")
}
