package quiz

import (
	"time"
)

// Category is the kind of knowledge a question checks.
type Category string

const (
	Concept     Category = "concept"
	Calculation Category = "calculation"
	Application Category = "application"
)

func (c Category) Valid() bool {
	switch c {
	case Concept, Calculation, Application:
		return true
	}
	return false
}

type (
	Question struct {
		ID            string   `json:"id" yaml:"id"`
		Text          string   `json:"text" yaml:"text"`
		Options       []string `json:"options" yaml:"options"`
		CorrectAnswer int      `json:"correct_answer" yaml:"correct_answer"`
		Explanation   string   `json:"explanation" yaml:"explanation"`
		Category      Category `json:"category" yaml:"category"`
	}

	// Bank is the question set of one experiment.
	Bank struct {
		ExperimentID string     `json:"experiment_id" yaml:"experiment_id"`
		Title        string     `json:"title" yaml:"title"`
		Questions    []Question `json:"questions" yaml:"questions"`
	}

	// BankSummary describes a bank without giving its answers away.
	BankSummary struct {
		ExperimentID  string `json:"experiment_id"`
		Title         string `json:"title"`
		QuestionCount int    `json:"question_count"`
	}

	// Result is a completed attempt.
	Result struct {
		AttemptID    string    `json:"attempt_id"`
		ExperimentID string    `json:"experiment_id"`
		Score        int       `json:"score"`
		Total        int       `json:"total"`
		CompletedAt  time.Time `json:"completed_at"`
	}
)

func (b Bank) Summary() BankSummary {
	return BankSummary{ExperimentID: b.ExperimentID, Title: b.Title, QuestionCount: len(b.Questions)}
}

func (b Bank) clone() Bank {
	qs := make([]Question, len(b.Questions))
	for i, q := range b.Questions {
		q.Options = append([]string(nil), q.Options...)
		qs[i] = q
	}
	b.Questions = qs
	return b
}
