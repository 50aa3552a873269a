package inmemdb

import (
	"github.com/trezcool/fluidlab/core/quiz"
)

type quizRepository struct {
	db *quizTable
}

func NewQuizRepository(db *DB) quiz.Repository {
	return &quizRepository{db: db.quiz}
}

func (repo *quizRepository) CreateSession(s *quiz.Session) error {
	if repo.db.closed.Load() {
		return ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.sessions[s.ID] = s
	return nil
}

func (repo *quizRepository) WithSession(id string, fn func(s *quiz.Session) error) error {
	if repo.db.closed.Load() {
		return ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.sessions[id]
	if !ok {
		return quiz.ErrSessionNotFound
	}
	return fn(s)
}

func (repo *quizRepository) AddResult(r quiz.Result) error {
	if repo.db.closed.Load() {
		return ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.results = append(repo.db.results, r)
	return nil
}

func (repo *quizRepository) Results() ([]quiz.Result, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	return append([]quiz.Result{}, repo.db.results...), nil
}

func (repo *quizRepository) GetResult(attemptID string) (quiz.Result, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := len(repo.db.results) - 1; i >= 0; i-- {
		if repo.db.results[i].AttemptID == attemptID {
			return repo.db.results[i], nil
		}
	}
	return quiz.Result{}, quiz.ErrResultNotFound
}
