// Package rankstore persists the document-identifier to authority-score
// mapping produced by a rank propagation run and reloads it for the
// retrieval side.
package rankstore

import "golang.org/x/xerrors"

// ErrMalformedEntry is returned by Load implementations when a persisted
// rank entry cannot be parsed. Malformed tables are never partially loaded.
var ErrMalformedEntry = xerrors.New("malformed rank entry")

// Table maps a document identifier (e.g. P001.html) to its normalized
// authority score. A freshly computed table always carries a total score
// mass of 1.
type Table map[string]float64

// Store is implemented by types that can persist and reload a rank table.
// Saving overwrites any previously persisted table; tables are written once
// per crawl run and are read-only thereafter.
type Store interface {
	// Save persists the provided table, replacing any previous contents.
	Save(table Table) error

	// Load reads back the previously persisted table.
	Load() (Table, error)
}
