package quiz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/fluidlab/core"
)

func testBank() Bank {
	return Bank{
		ExperimentID: "viscosity",
		Title:        "Viscosity Quiz",
		Questions: []Question{
			{ID: "q1", Text: "1?", Options: []string{"a", "b", "c"}, CorrectAnswer: 1, Explanation: "because b", Category: Concept},
			{ID: "q2", Text: "2?", Options: []string{"a", "b"}, CorrectAnswer: 0, Explanation: "because a", Category: Calculation},
		},
	}
}

func newTestSession(t *testing.T) *Session {
	s, err := NewSession("attempt-1", testBank())
	require.NoError(t, err)
	return s
}

func TestNewSession_invalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		bank Bank
	}{
		{name: "missing id", id: "", bank: testBank()},
		{name: "missing experiment", id: "x", bank: Bank{Questions: testBank().Questions}},
		{name: "no questions", id: "x", bank: Bank{ExperimentID: "viscosity"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.id, tt.bank); err == nil {
				t.Error("NewSession() error = nil, want error")
			}
		})
	}
}

func TestSession_fullRun(t *testing.T) {
	s := newTestSession(t)

	correct, err := s.Answer(1)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, 1, s.Score())

	require.NoError(t, s.ToggleExplanation())
	v := s.View()
	assert.True(t, v.ShowExplanation)
	assert.Equal(t, "because b", v.Explanation)

	require.NoError(t, s.Next())
	v = s.View()
	assert.Equal(t, 2, v.Question.Number)
	assert.Nil(t, v.SelectedAnswer)
	assert.False(t, v.ShowExplanation)

	correct, err = s.Answer(1)
	require.NoError(t, err)
	assert.False(t, correct)

	require.NoError(t, s.Next())
	assert.True(t, s.Complete())

	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "viscosity", res.ExperimentID)
	assert.False(t, res.CompletedAt.IsZero())
}

func TestSession_misuse(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(s *Session)
		act     func(s *Session) error
		check   func(err error) bool
	}{
		{
			name:  "option too high",
			act:   func(s *Session) error { _, err := s.Answer(3); return err },
			check: core.IsValidation,
		},
		{
			name:  "negative option",
			act:   func(s *Session) error { _, err := s.Answer(-1); return err },
			check: core.IsValidation,
		},
		{
			name:    "answer twice",
			prepare: func(s *Session) { _, _ = s.Answer(0) },
			act:     func(s *Session) error { _, err := s.Answer(1); return err },
			check:   func(err error) bool { return err == ErrAlreadyAnswered },
		},
		{
			name:  "next before answering",
			act:   func(s *Session) error { return s.Next() },
			check: func(err error) bool { return err == ErrNotAnswered },
		},
		{
			name:  "explanation before answering",
			act:   func(s *Session) error { return s.ToggleExplanation() },
			check: func(err error) bool { return err == ErrNotAnswered },
		},
		{
			name: "answer on complete session",
			prepare: func(s *Session) {
				_, _ = s.Answer(0)
				_ = s.Next()
				_, _ = s.Answer(0)
				_ = s.Next()
			},
			act:   func(s *Session) error { _, err := s.Answer(0); return err },
			check: func(err error) bool { return err == ErrComplete && core.IsStateConflict(err) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			if tt.prepare != nil {
				tt.prepare(s)
			}
			if err := tt.act(s); !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSession_answerOutOfBoundsKeepsQuestionOpen(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Answer(7)
	require.Error(t, err)
	assert.False(t, s.Answered())

	_, err = s.Answer(1)
	assert.NoError(t, err)
}

func TestSession_View_hidesAnswer(t *testing.T) {
	s := newTestSession(t)

	v := s.View()
	assert.Nil(t, v.CorrectAnswer)
	assert.Nil(t, v.IsCorrect)
	assert.Empty(t, v.Explanation)

	_, _ = s.Answer(0)
	v = s.View()
	require.NotNil(t, v.CorrectAnswer)
	assert.Equal(t, 1, *v.CorrectAnswer)
	require.NotNil(t, v.IsCorrect)
	assert.False(t, *v.IsCorrect)
	assert.Empty(t, v.Explanation, "explanation stays hidden until toggled")
}

func TestSession_Restart(t *testing.T) {
	s := newTestSession(t)
	_, _ = s.Answer(1)
	_ = s.Next()
	_, _ = s.Answer(0)
	_ = s.Next()
	require.True(t, s.Complete())

	s.Restart()
	assert.False(t, s.Complete())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.False(t, s.Answered())
	_, ok := s.Result()
	assert.False(t, ok)
}

func TestLoadBanks(t *testing.T) {
	banks, err := LoadBanks()
	require.NoError(t, err)

	list := banks.List()
	assert.Len(t, list, 6)
	for _, b := range list {
		assert.NoError(t, CheckBank(b), b.ExperimentID)
	}

	md, err := banks.Get("Mass-Density")
	require.NoError(t, err)
	assert.Equal(t, "md-1", md.Questions[0].ID)

	_, err = banks.Get("unknown")
	assert.Equal(t, ErrBankNotFound, err)
}

func TestDecodeBanks_invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not yaml", data: "{"},
		{name: "no questions", data: "- experiment_id: x\n  title: X\n"},
		{name: "answer out of bounds", data: `
- experiment_id: x
  questions:
    - {id: q1, category: concept, text: t, options: [a, b], correct_answer: 2}
`},
		{name: "negative answer", data: `
- experiment_id: x
  questions:
    - {id: q1, category: concept, text: t, options: [a, b], correct_answer: -1}
`},
		{name: "unknown category", data: `
- experiment_id: x
  questions:
    - {id: q1, category: trivia, text: t, options: [a, b], correct_answer: 0}
`},
		{name: "duplicate question", data: `
- experiment_id: x
  questions:
    - {id: q1, category: concept, text: t, options: [a, b], correct_answer: 0}
    - {id: q1, category: concept, text: t, options: [a, b], correct_answer: 0}
`},
		{name: "duplicate bank", data: `
- experiment_id: x
  questions:
    - {id: q1, category: concept, text: t, options: [a, b], correct_answer: 0}
- experiment_id: X
  questions:
    - {id: q1, category: concept, text: t, options: [a, b], correct_answer: 0}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeBanks(strings.NewReader(tt.data)); err == nil {
				t.Error("DecodeBanks() error = nil, want error")
			}
		})
	}
}
