// Package resultstore keeps a durable history of benchmark runs so past
// results survive after the CSV has been piped elsewhere. It is a ledger,
// not a cache: the tree itself is never persisted here.
package resultstore

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"
)

// Row mirrors one CSV row emitted by a benchmark round, plus RunID: the
// KSUID key Append stored the row under. run's CSV output does not include
// it; the history command prints it as its first column.
type Row struct {
	RunID             string `yaml:"run_id"`
	Tag               string `yaml:"tag"`
	Impl              string `yaml:"impl"`
	M                 int    `yaml:"m"`
	NInsert           int    `yaml:"n_insert"`
	NSearch           int    `yaml:"n_search"`
	NDelete           int    `yaml:"n_delete"`
	Round             int    `yaml:"round"`
	InsertNs          int64  `yaml:"insert_ns"`
	SearchNs          int64  `yaml:"search_ns"`
	DeleteNs          int64  `yaml:"delete_ns"`
	FoundCount        int    `yaml:"found_count"`
	HeightAfterInsert int    `yaml:"height_after_insert"`
}

// Store is a pebble-backed append-only ledger of benchmark rows, one KSUID
// key per row. KSUIDs sort by creation second, and Append keeps each new
// key above the previous one it wrote, so rows appended through one Store
// sort in append order.
type Store struct {
	db   *pebble.DB
	last ksuid.KSUID
}

// Open opens (creating if absent) a result ledger rooted at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("resultstore: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Append records one row under its own freshly minted KSUID key and
// returns that KSUID.
func (s *Store) Append(row Row) (ksuid.KSUID, error) {
	id := ksuid.New()
	if ksuid.Compare(id, s.last) <= 0 {
		id = s.last.Next()
	}
	s.last = id
	row.RunID = id.String()

	data, err := yaml.Marshal(row)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("resultstore: marshal row: %w", err)
	}
	if err := s.db.Set(id.Bytes(), data, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("resultstore: write row: %w", err)
	}
	return id, nil
}

// All returns every stored row in KSUID key order.
func (s *Store) All() ([]Row, error) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("resultstore: iterate: %w", err)
	}
	defer iter.Close()

	var rows []Row
	for iter.First(); iter.Valid(); iter.Next() {
		var row Row
		if err := yaml.Unmarshal(iter.Value(), &row); err != nil {
			return nil, fmt.Errorf("resultstore: decode row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, iter.Error()
}

// Close releases the underlying pebble handle.
func (s *Store) Close() error {
	return s.db.Close()
}
