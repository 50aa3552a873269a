package inmemdb

import (
	"github.com/trezcool/fluidlab/core/flow"
)

type workbenchRepository struct {
	db *workbenchTable
}

func NewWorkbenchRepository(db *DB) flow.Repository {
	return &workbenchRepository{db: db.workbench}
}

func (repo *workbenchRepository) CreateWorkbench(wb flow.Workbench) (flow.Workbench, error) {
	if repo.db.closed.Load() {
		return flow.Workbench{}, ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	wb = wb.Clone()
	repo.db.table[wb.ID] = &wb
	return wb.Clone(), nil
}

func (repo *workbenchRepository) GetWorkbench(id string) (flow.Workbench, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if wb, ok := repo.db.table[id]; ok {
		return wb.Clone(), nil
	}
	return flow.Workbench{}, flow.ErrWorkbenchNotFound
}

func (repo *workbenchRepository) SaveCalculation(workbenchID string, calc flow.SavedCalculation) (flow.SavedCalculation, error) {
	if repo.db.closed.Load() {
		return flow.SavedCalculation{}, ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	wb, ok := repo.db.table[workbenchID]
	if !ok {
		return flow.SavedCalculation{}, flow.ErrWorkbenchNotFound
	}
	calc.Iteration = 1
	for _, c := range wb.Calculations {
		if c.Component == calc.Component {
			calc.Iteration++
		}
	}
	wb.Calculations = append(wb.Calculations, calc)
	return calc, nil
}

func (repo *workbenchRepository) ClearCalculations(workbenchID string) error {
	if repo.db.closed.Load() {
		return ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	wb, ok := repo.db.table[workbenchID]
	if !ok {
		return flow.ErrWorkbenchNotFound
	}
	wb.Calculations = nil
	return nil
}

func (repo *workbenchRepository) CountCalculations() (map[string]int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	counts := make(map[string]int)
	for _, wb := range repo.db.table {
		for _, c := range wb.Calculations {
			counts[c.Component]++
		}
	}
	return counts, nil
}
