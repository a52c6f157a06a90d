package lessons

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOption is returned when an answer index is outside the options
	ErrInvalidOption = errors.New("invalid answer option")
	ErrNoQuestions   = errors.New("quiz has no questions")
)

// Question is a single multiple-choice quiz item
type Question struct {
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correctAnswer"`
	Explanation string   `json:"explanation"`
}

// Kinesthetic renders the quiz questions for topic
func Kinesthetic(topic string) []Question {
	return Lookup(topic).Questions
}

// Quiz walks a learner through questions one at a time.
// It is not safe for concurrent use.
type Quiz struct {
	questions       []Question
	current         int
	selected        int
	showExplanation bool
	score           int
	answered        []bool
}

// NewQuiz starts a quiz at the first question
func NewQuiz(questions []Question) (*Quiz, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	q := &Quiz{questions: questions}
	q.Reset()
	return q, nil
}

// AnswerResult reports how a submitted answer was judged
type AnswerResult struct {
	Accepted    bool   `json:"accepted"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation"`
}

// QuizState is a snapshot for display
type QuizState struct {
	Index           int      `json:"index"`
	Total           int      `json:"total"`
	Question        Question `json:"question"`
	Selected        *int     `json:"selected,omitempty"`
	ShowExplanation bool     `json:"showExplanation"`
	Score           int      `json:"score"`
	Progress        float64  `json:"progress"`
	Complete        bool     `json:"complete"`
	Verdict         string   `json:"verdict,omitempty"`
	Answered        []bool   `json:"answered"`
}

// Answer selects option for the current question. A second answer to the
// same question is ignored and reported as not accepted.
func (q *Quiz) Answer(option int) (AnswerResult, error) {
	question := q.questions[q.current]
	if option < 0 || option >= len(question.Options) {
		return AnswerResult{}, fmt.Errorf("%w: %d", ErrInvalidOption, option)
	}
	if q.showExplanation {
		return AnswerResult{Explanation: question.Explanation}, nil
	}

	q.selected = option
	q.showExplanation = true
	q.answered[q.current] = true

	correct := option == question.Correct
	if correct {
		q.score++
	}
	return AnswerResult{Accepted: true, Correct: correct, Explanation: question.Explanation}, nil
}

// Next advances to the following question. It does nothing on the last one.
func (q *Quiz) Next() bool {
	if q.current >= len(q.questions)-1 {
		return false
	}
	q.current++
	q.selected = -1
	q.showExplanation = false
	return true
}

// Reset returns the quiz to its initial state
func (q *Quiz) Reset() {
	q.current = 0
	q.selected = -1
	q.showExplanation = false
	q.score = 0
	q.answered = make([]bool, len(q.questions))
}

func (q *Quiz) Score() int {
	return q.score
}

// Complete reports whether the last question has been answered
func (q *Quiz) Complete() bool {
	return q.current == len(q.questions)-1 && q.showExplanation
}

// Progress is the percentage of questions answered so far
func (q *Quiz) Progress() float64 {
	answered := q.current
	if q.showExplanation {
		answered++
	}
	return float64(answered) / float64(len(q.questions)) * 100
}

// Verdict summarizes the final score
func (q *Quiz) Verdict() string {
	total := len(q.questions)
	switch {
	case q.score == total:
		return "Perfect! You've mastered this topic!"
	case float64(q.score) >= float64(total)*0.7:
		return "Great job! You have a solid understanding."
	default:
		return "Good effort! Consider reviewing the material and trying again."
	}
}

// State snapshots the quiz
func (q *Quiz) State() QuizState {
	state := QuizState{
		Index:           q.current,
		Total:           len(q.questions),
		Question:        q.questions[q.current],
		ShowExplanation: q.showExplanation,
		Score:           q.score,
		Progress:        q.Progress(),
		Complete:        q.Complete(),
		Answered:        append([]bool(nil), q.answered...),
	}
	if q.selected >= 0 {
		selected := q.selected
		state.Selected = &selected
	}
	if state.Complete {
		state.Verdict = q.Verdict()
	}
	return state
}
