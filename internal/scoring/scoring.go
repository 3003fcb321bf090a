// Package scoring turns an entry's answers into stress and motivation scores
// on a 0-100 scale.
package scoring

import (
	"context"
	"errors"
	"math"
	"strings"

	pulse "teampulse/internal/models"
)

// ErrNoAnswers is returned when there is nothing to score.
var ErrNoAnswers = errors.New("no answers to score")

// Scores are 0-100; higher means more stress or more motivation.
type Scores struct {
	Stress     int
	Motivation int
}

// Scorer computes scores for one entry.
type Scorer interface {
	Score(ctx context.Context, questions pulse.QuestionSet, answers pulse.AnswerSet) (Scores, error)
}

type dimension int

const (
	dimNone dimension = iota
	dimStress
	dimMotivation
)

var (
	stressHints     = []string{"stress", "pressure", "workload", "overtime", "tired", "anxious", "burnout", "busy"}
	motivationHints = []string{"motivat", "energy", "enjoy", "satisf", "happy", "mood", "engag", "fulfil"}

	negativeWords = []string{"tired", "exhausted", "stressed", "overwhelmed", "anxious", "angry", "frustrat", "burnout", "sick", "bad", "worse", "deadline", "overtime", "difficult", "hard", "sad", "lonely"}
	positiveWords = []string{"good", "great", "happy", "fun", "enjoy", "motivated", "excited", "productive", "calm", "relaxed", "fine", "progress", "achiev", "proud", "thanks"}
)

// HeuristicScorer derives scores from numeric, scale and boolean answers whose
// question mentions stress or motivation, plus keyword hints in free text.
// Answers with no signal leave a dimension at the neutral 50.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer { return &HeuristicScorer{} }

func (HeuristicScorer) Score(ctx context.Context, questions pulse.QuestionSet, answers pulse.AnswerSet) (Scores, error) {
	if err := ctx.Err(); err != nil {
		return Scores{}, err
	}
	if len(answers) == 0 {
		return Scores{}, ErrNoAnswers
	}

	var stress, motivation accumulator
	for key, answer := range answers {
		prompt := strings.ToLower(key)
		kind := pulse.QuestionText
		if q, ok := questions[key]; ok {
			prompt += " " + strings.ToLower(q.Text())
			kind = q.Kind()
		}
		dim := classify(prompt)

		if n, ok := answer.AsNumber(); ok {
			v := normalize(n, kind)
			switch dim {
			case dimStress:
				stress.add(v)
			case dimMotivation:
				motivation.add(v)
			}
			continue
		}
		if b, ok := answer.AsBool(); ok {
			v := 0.0
			if b {
				v = 100
			}
			switch dim {
			case dimStress:
				stress.add(v)
			case dimMotivation:
				motivation.add(v)
			}
			continue
		}
		if s, ok := answer.AsString(); ok {
			pos, neg := sentiment(s)
			if pos+neg == 0 {
				continue
			}
			// Share of negative hits maps to stress, positive hits to motivation.
			negShare := 100 * float64(neg) / float64(pos+neg)
			stress.add(negShare)
			motivation.add(100 - negShare)
		}
	}

	return Scores{Stress: stress.result(), Motivation: motivation.result()}, nil
}

func classify(prompt string) dimension {
	for _, h := range stressHints {
		if strings.Contains(prompt, h) {
			return dimStress
		}
	}
	for _, h := range motivationHints {
		if strings.Contains(prompt, h) {
			return dimMotivation
		}
	}
	return dimNone
}

// normalize maps an answer onto 0-100. Scale questions are 1-5, numbers up to
// 10 are treated as 0-10, anything larger as a percentage.
func normalize(n float64, kind pulse.QuestionType) float64 {
	switch {
	case kind == pulse.QuestionScale && n >= 1 && n <= 5:
		return (n - 1) * 25
	case n >= 0 && n <= 10:
		return n * 10
	default:
		return math.Max(0, math.Min(100, n))
	}
}

func sentiment(text string) (pos, neg int) {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	return pos, neg
}

type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(v float64) {
	a.sum += v
	a.n++
}

func (a *accumulator) result() int {
	if a.n == 0 {
		return 50
	}
	return int(math.Round(a.sum / float64(a.n)))
}
