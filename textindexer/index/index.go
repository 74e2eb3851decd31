// Package index defines the contract between the crawl/rank side and the
// document index. The index stores the crawled documents and carries the
// authority score assigned to each document by the latest rank run so the
// search side can fold it into its final ranking.
package index

import (
	"time"

	"golang.org/x/xerrors"
)

var (
	// ErrNotFound is returned by the indexer when a document lookup
	// fails.
	ErrNotFound = xerrors.New("not found")

	// ErrMissingDocumentID is returned when attempting to index a
	// document that has no ID.
	ErrMissingDocumentID = xerrors.New("document does not provide a valid ID")
)

// Document describes an indexed page.
type Document struct {
	// DocumentID is the identifier assigned during indexing
	// (e.g. P001.html).
	DocumentID string

	// URL is the canonical URL of the page.
	URL string

	// Title is the title of the page (if available).
	Title string

	// Content is the text extracted from the page.
	Content string

	// IndexedAt is the timestamp of the last index update for this
	// document.
	IndexedAt time.Time

	// PageRank is the authority score assigned by the latest rank run.
	PageRank float64
}

// Indexer is implemented by types that can index documents and serve as the
// publication target for computed authority scores.
type Indexer interface {
	// Index inserts a new document or updates an existing one. Index
	// never overwrites a previously published PageRank score.
	Index(doc *Document) error

	// FindByID looks up a document by its document ID.
	FindByID(documentID string) (*Document, error)

	// UpdateRank changes the PageRank score for the document with the
	// specified ID. If no such document exists, a placeholder document
	// with the provided score is created.
	UpdateRank(documentID string, score float64) error
}
