package inmemdb

import (
	"sync"
	"sync/atomic"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/core/assistant"
	"github.com/trezcool/fluidlab/core/certificate"
	"github.com/trezcool/fluidlab/core/flow"
	"github.com/trezcool/fluidlab/core/lab"
	"github.com/trezcool/fluidlab/core/quiz"
)

// ErrClosed is returned by writes once the DB is closed. The API shuts down when it sees it.
var ErrClosed = core.NewShutdownError("database is closed")

type (
	// DB is the process-scoped store of every repository. Each table has its own lock.
	DB struct {
		closed *atomic.Bool

		workbench   *workbenchTable
		labRun      *labRunTable
		quiz        *quizTable
		panel       *panelTable
		certificate *certificateTable
	}

	workbenchTable struct {
		mutex  sync.RWMutex
		closed *atomic.Bool
		table  map[string]*flow.Workbench
	}

	labRunTable struct {
		mutex  sync.RWMutex
		closed *atomic.Bool
		table  map[string]*lab.Run
		order  []string
	}

	quizTable struct {
		mutex    sync.Mutex
		closed   *atomic.Bool
		sessions map[string]*quiz.Session
		results  []quiz.Result
	}

	panelTable struct {
		mutex  sync.RWMutex
		closed *atomic.Bool
		table  map[string]*assistant.Panel
	}

	certificateTable struct {
		mutex  sync.RWMutex
		closed *atomic.Bool
		table  map[string]certificate.Certificate
		order  []string
	}
)

func Open() *DB {
	closed := new(atomic.Bool)
	return &DB{
		closed:      closed,
		workbench:   &workbenchTable{closed: closed, table: make(map[string]*flow.Workbench)},
		labRun:      &labRunTable{closed: closed, table: make(map[string]*lab.Run)},
		quiz:        &quizTable{closed: closed, sessions: make(map[string]*quiz.Session)},
		panel:       &panelTable{closed: closed, table: make(map[string]*assistant.Panel)},
		certificate: &certificateTable{closed: closed, table: make(map[string]certificate.Certificate)},
	}
}

// Close rejects every later write. Reads keep working so in-flight requests can finish.
func (db *DB) Close() error {
	db.closed.Store(true)
	return nil
}
