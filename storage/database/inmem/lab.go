package inmemdb

import (
	"github.com/trezcool/fluidlab/core/lab"
)

type labRunRepository struct {
	db *labRunTable
}

func NewLabRunRepository(db *DB) lab.Repository {
	return &labRunRepository{db: db.labRun}
}

func (repo *labRunRepository) SaveRun(run *lab.Run) error {
	if repo.db.closed.Load() {
		return ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[run.ID]; !ok {
		repo.db.order = append(repo.db.order, run.ID)
	}
	repo.db.table[run.ID] = run
	return nil
}

func (repo *labRunRepository) GetRun(id string) (*lab.Run, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if run, ok := repo.db.table[id]; ok {
		return run, nil
	}
	return nil, lab.ErrRunNotFound
}

func (repo *labRunRepository) AllRuns() ([]*lab.Run, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	runs := make([]*lab.Run, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		runs = append(runs, repo.db.table[id])
	}
	return runs, nil
}
