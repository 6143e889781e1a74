package state

import (
	"github.com/hashicorp/go-memdb"
	"github.com/pkg/errors"
)

const (
	tableCounters = "counters"
	tableTasks    = "tasks"
)

// Counter names.
const (
	counterTasksIndex    = "tasks.index"
	counterTasksSequence = "tasks.sequence"
)

// Store is the task state store.
//
// Writers are serialised by memdb, readers see a consistent
// point-in-time view of the data.
type Store struct {
	db *memdb.MemDB
}

// New returns a task state store.
func New() (*Store, error) {
	db, err := memdb.NewMemDB(&memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableCounters: countersTableSchema(),
			tableTasks:    tasksTableSchema(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "state: error creating database")
	}

	return &Store{db: db}, nil
}

// LastIndex returns the last index that modified the store.
func (s *Store) LastIndex() uint64 {
	tx := s.db.Txn(false)
	defer tx.Abort()

	idx, err := readCounter(tx, counterTasksIndex)
	if err != nil {
		return 0
	}
	return idx
}

// Restore is used to efficiently load a large amount of tasks into the
// state store. All the tasks are inserted inside a single transaction.
func (s *Store) Restore(idx uint64) *Restore {
	return &Restore{idx: idx, tx: s.db.Txn(true)}
}

// Restore is used to efficiently manage restoring a large amount of
// data to a state store.
type Restore struct {
	idx uint64
	tx  *memdb.Txn
}

// Abort abandons the changes made by a restore. This or Commit should always be
// called.
func (r *Restore) Abort() {
	r.tx.Abort()
}

// Commit commits the changes made by a restore. This or Abort should always be
// called.
func (r *Restore) Commit() error {
	if err := writeCounter(r.tx, counterTasksIndex, r.idx); err != nil {
		return err
	}
	r.tx.Commit()
	return nil
}

// counter is a named monotonic value kept alongside the tasks, such as
// the last write index or the insertion sequence.
type counter struct {
	Name  string
	Value uint64
}

func countersTableSchema() *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: tableCounters,
		Indexes: map[string]*memdb.IndexSchema{
			"id": {
				Name:   "id",
				Unique: true,
				Indexer: &memdb.StringFieldIndex{
					Field: "Name",
				},
			},
		},
	}
}

func readCounter(tx *memdb.Txn, name string) (uint64, error) {
	raw, err := tx.First(tableCounters, "id", name)
	if err != nil {
		return 0, errors.Wrapf(err, "state: error reading counter %s", name)
	}
	if raw == nil {
		return 0, nil
	}
	return raw.(*counter).Value, nil
}

func writeCounter(tx *memdb.Txn, name string, value uint64) error {
	if err := tx.Insert(tableCounters, &counter{Name: name, Value: value}); err != nil {
		return errors.Wrapf(err, "state: error writing counter %s", name)
	}
	return nil
}
