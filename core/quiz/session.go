package quiz

import (
	"fmt"
	"time"

	"github.com/kat-co/vala"

	"github.com/trezcool/fluidlab/core"
)

var (
	ErrAlreadyAnswered = core.NewStateError("question already answered")
	ErrNotAnswered     = core.NewStateError("answer the current question first")
	ErrComplete        = core.NewStateError("quiz is already complete")
)

// Session is one attempt at a bank. Its methods are not safe for concurrent use;
// the repository serialises access.
type Session struct {
	ID        string
	Bank      Bank
	StartedAt time.Time

	current         int
	selected        int // -1 until the current question is answered
	showExplanation bool
	score           int
	complete        bool
	completedAt     time.Time
}

type (
	QuestionView struct {
		ID       string   `json:"id"`
		Number   int      `json:"number"` // 1-based
		Text     string   `json:"text"`
		Options  []string `json:"options"`
		Category Category `json:"category"`
	}

	// SessionView is what a student sees of a session. The correct answer and
	// explanation are only present once the current question is answered.
	SessionView struct {
		ID              string        `json:"id"`
		ExperimentID    string        `json:"experiment_id"`
		Title           string        `json:"title"`
		Total           int           `json:"total"`
		Question        *QuestionView `json:"question,omitempty"`
		SelectedAnswer  *int          `json:"selected_answer,omitempty"`
		IsCorrect       *bool         `json:"is_correct,omitempty"`
		CorrectAnswer   *int          `json:"correct_answer,omitempty"`
		ShowExplanation bool          `json:"show_explanation"`
		Explanation     string        `json:"explanation,omitempty"`
		Score           int           `json:"score"`
		Complete        bool          `json:"complete"`
	}
)

func NewSession(id string, bank Bank) (*Session, error) {
	if err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(id, "id"),
		vala.StringNotEmpty(bank.ExperimentID, "bank.ExperimentID"),
		vala.GreaterThan(len(bank.Questions), 0, "len(bank.Questions)"),
	).Check(); err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		Bank:      bank,
		StartedAt: core.NowFunc(),
		selected:  -1,
	}, nil
}

func (s *Session) question() Question { return s.Bank.Questions[s.current] }

func (s *Session) Answered() bool    { return s.selected >= 0 }
func (s *Session) Complete() bool    { return s.complete }
func (s *Session) Score() int        { return s.score }
func (s *Session) Total() int        { return len(s.Bank.Questions) }
func (s *Session) CurrentIndex() int { return s.current }

// Answer locks the options of the current question on opt and reports whether it was correct.
func (s *Session) Answer(opt int) (bool, error) {
	if s.complete {
		return false, ErrComplete
	}
	if s.Answered() {
		return false, ErrAlreadyAnswered
	}
	q := s.question()
	if opt < 0 || opt >= len(q.Options) {
		return false, core.NewValidationError(nil, core.FieldError{
			Field: "option",
			Error: fmt.Sprintf("must be between 0 and %d", len(q.Options)-1),
		})
	}

	s.selected = opt
	correct := opt == q.CorrectAnswer
	if correct {
		s.score++
	}
	return correct, nil
}

// ToggleExplanation shows or hides the explanation of the answered question.
func (s *Session) ToggleExplanation() error {
	if s.complete {
		return ErrComplete
	}
	if !s.Answered() {
		return ErrNotAnswered
	}
	s.showExplanation = !s.showExplanation
	return nil
}

// Next moves to the following question, completing the session after the last one.
func (s *Session) Next() error {
	if s.complete {
		return ErrComplete
	}
	if !s.Answered() {
		return ErrNotAnswered
	}
	if s.current == len(s.Bank.Questions)-1 {
		s.complete = true
		s.completedAt = core.NowFunc()
		return nil
	}
	s.current++
	s.selected = -1
	s.showExplanation = false
	return nil
}

func (s *Session) Restart() {
	s.current = 0
	s.selected = -1
	s.showExplanation = false
	s.score = 0
	s.complete = false
	s.completedAt = time.Time{}
	s.StartedAt = core.NowFunc()
}

// Result returns the outcome of a complete session.
func (s *Session) Result() (Result, bool) {
	if !s.complete {
		return Result{}, false
	}
	return Result{
		AttemptID:    s.ID,
		ExperimentID: s.Bank.ExperimentID,
		Score:        s.score,
		Total:        s.Total(),
		CompletedAt:  s.completedAt,
	}, true
}

func (s *Session) View() SessionView {
	v := SessionView{
		ID:           s.ID,
		ExperimentID: s.Bank.ExperimentID,
		Title:        s.Bank.Title,
		Total:        s.Total(),
		Score:        s.score,
		Complete:     s.complete,
	}
	if s.complete {
		return v
	}

	q := s.question()
	v.Question = &QuestionView{
		ID:       q.ID,
		Number:   s.current + 1,
		Text:     q.Text,
		Options:  append([]string(nil), q.Options...),
		Category: q.Category,
	}
	if s.Answered() {
		selected, correctAnswer := s.selected, q.CorrectAnswer
		correct := selected == correctAnswer
		v.SelectedAnswer = &selected
		v.CorrectAnswer = &correctAnswer
		v.IsCorrect = &correct
		v.ShowExplanation = s.showExplanation
		if s.showExplanation {
			v.Explanation = q.Explanation
		}
	}
	return v
}
