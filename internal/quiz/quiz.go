// Package quiz runs the "which role are you" mini-game.
package quiz

import (
	"errors"
	"maps"
	"slices"

	"github.com/DoyleJ11/lol-portal/internal/catalog"
)

// DefaultRole wins when nothing has been scored.
const DefaultRole = "Fighter"

var ErrNotStarted = errors.New("quiz not started")
var ErrFinished = errors.New("quiz already finished")
var ErrBadAnswer = errors.New("no such answer")

// State is the quiz progress. Order records roles in the order they were
// first scored so ties resolve to the earliest.
type State struct {
	Started bool           `json:"started"`
	Index   int            `json:"index"`
	Scores  map[string]int `json:"scores"`
	Order   []string       `json:"order"`
}

func (s State) Done(q catalog.Quiz) bool {
	return s.Started && s.Index >= len(q.Questions)
}

// Current returns the question being asked, false when none is.
func (s State) Current(q catalog.Quiz) (catalog.Question, bool) {
	if !s.Started || s.Index >= len(q.Questions) {
		return catalog.Question{}, false
	}
	return q.Questions[s.Index], true
}

func Start() State {
	return State{Started: true, Scores: map[string]int{}}
}

// Restart clears all progress and begins again.
func Restart() State { return Start() }

// Answer scores the chosen answer's role and moves to the next question.
func (s State) Answer(q catalog.Quiz, answer int) (State, error) {
	if !s.Started {
		return s, ErrNotStarted
	}
	question, ok := s.Current(q)
	if !ok {
		return s, ErrFinished
	}
	if answer < 0 || answer >= len(question.Answers) {
		return s, ErrBadAnswer
	}

	role := question.Answers[answer].Role
	next := State{
		Started: true,
		Index:   s.Index + 1,
		Scores:  maps.Clone(s.Scores),
		Order:   slices.Clone(s.Order),
	}
	if next.Scores == nil {
		next.Scores = map[string]int{}
	}
	if _, seen := next.Scores[role]; !seen {
		next.Order = append(next.Order, role)
	}
	next.Scores[role]++
	return next, nil
}

// Winner is the highest scoring role; ties go to the role scored first.
func (s State) Winner() string {
	winner, best := DefaultRole, -1
	for _, role := range s.Order {
		if score := s.Scores[role]; score > best {
			winner, best = role, score
		}
	}
	return winner
}
