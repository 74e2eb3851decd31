// Package cockroachdb provides a rankstore.Store implementation backed by a
// CockroachDB (or any postgres wire-compatible) instance. It exists for
// deployments where the rank table must outlive the local filesystem of the
// node that computed it.
package cockroachdb

import (
	"database/sql"

	// Register the postgres driver used to talk to CockroachDB.
	_ "github.com/lib/pq"
	"golang.org/x/xerrors"

	"Rank_Engine/rankstore"
)

var (
	clearScoresQuery = `DELETE FROM page_ranks`

	upsertScoreQuery = `INSERT INTO page_ranks (document, score) VALUES ($1, $2)
ON CONFLICT (document) DO UPDATE SET score=$2`

	loadScoresQuery = `SELECT document, score FROM page_ranks`
)

// Compile-time check for ensuring CockroachDBStore implements
// rankstore.Store.
var _ rankstore.Store = (*CockroachDBStore)(nil)

// CockroachDBStore persists rank tables in a CockroachDB instance.
type CockroachDBStore struct {
	db *sql.DB
}

// NewCockroachDBStore returns a CockroachDBStore instance connected to the
// cockroachdb instance specified by dsn.
func NewCockroachDBStore(dsn string) (*CockroachDBStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, xerrors.Errorf("rank store: open database: %w", err)
	}
	return &CockroachDBStore{db: db}, nil
}

// Close terminates the connection to the backing cockroachdb instance.
func (s *CockroachDBStore) Close() error {
	return s.db.Close()
}

// Save implements rankstore.Store. The previously stored table is replaced
// as a whole inside a single transaction.
func (s *CockroachDBStore) Save(table rankstore.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return xerrors.Errorf("rank store: begin tx: %w", err)
	}
	if _, err = tx.Exec(clearScoresQuery); err != nil {
		_ = tx.Rollback()
		return xerrors.Errorf("rank store: clear scores: %w", err)
	}
	for docID, score := range table {
		if _, err = tx.Exec(upsertScoreQuery, docID, score); err != nil {
			_ = tx.Rollback()
			return xerrors.Errorf("rank store: upsert score for %q: %w", docID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return xerrors.Errorf("rank store: commit tx: %w", err)
	}
	return nil
}

// Load implements rankstore.Store.
func (s *CockroachDBStore) Load() (rankstore.Table, error) {
	rows, err := s.db.Query(loadScoresQuery)
	if err != nil {
		return nil, xerrors.Errorf("rank store: load scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	table := make(rankstore.Table)
	for rows.Next() {
		var (
			docID string
			score float64
		)
		if err = rows.Scan(&docID, &score); err != nil {
			return nil, xerrors.Errorf("rank store: scan score row: %w", err)
		}
		table[docID] = score
	}
	if err = rows.Err(); err != nil {
		return nil, xerrors.Errorf("rank store: load scores: %w", err)
	}
	return table, nil
}
