package inmemdb

import (
	"github.com/trezcool/fluidlab/core/certificate"
)

type certificateRepository struct {
	db *certificateTable
}

func NewCertificateRepository(db *DB) certificate.Repository {
	return &certificateRepository{db: db.certificate}
}

func (repo *certificateRepository) CreateCertificate(cert certificate.Certificate) (certificate.Certificate, error) {
	if repo.db.closed.Load() {
		return certificate.Certificate{}, ErrClosed
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[cert.ID]; !ok {
		repo.db.order = append(repo.db.order, cert.ID)
	}
	repo.db.table[cert.ID] = cert
	return cert, nil
}

func (repo *certificateRepository) GetCertificate(id string) (certificate.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cert, ok := repo.db.table[id]; ok {
		return cert, nil
	}
	return certificate.Certificate{}, certificate.ErrNotFound
}

func (repo *certificateRepository) AllCertificates() ([]certificate.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	certs := make([]certificate.Certificate, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		certs = append(certs, repo.db.table[id])
	}
	return certs, nil
}
