package inmemdb

import (
	"github.com/trezcool/fluidlab/core/assistant"
)

type panelRepository struct {
	db *panelTable
}

func NewPanelRepository(db *DB) assistant.Repository {
	return &panelRepository{db: db.panel}
}

func (repo *panelRepository) SavePanel(p *assistant.Panel) error {
	if repo.db.closed.Load() {
		return ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[p.ID] = p
	return nil
}

func (repo *panelRepository) GetPanel(id string) (*assistant.Panel, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return p, nil
	}
	return nil, assistant.ErrPanelNotFound
}

func (repo *panelRepository) DeletePanel(id string) (*assistant.Panel, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	p, ok := repo.db.table[id]
	if !ok {
		return nil, assistant.ErrPanelNotFound
	}
	delete(repo.db.table, id)
	return p, nil
}

func (repo *panelRepository) AllPanels() ([]*assistant.Panel, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	panels := make([]*assistant.Panel, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		panels = append(panels, p)
	}
	return panels, nil
}
