// Package memory provides a map-backed index.Indexer implementation that is
// primarily used for tests and for single-node runs where an elasticsearch
// cluster is not available.
package memory

import (
	"sync"
	"time"

	"golang.org/x/xerrors"

	"Rank_Engine/textindexer/index"
)

// Compile-time check for ensuring InMemoryIndexer implements index.Indexer.
var _ index.Indexer = (*InMemoryIndexer)(nil)

// InMemoryIndexer is an Indexer implementation that catalogues documents in
// a mutex-guarded map.
type InMemoryIndexer struct {
	mu   sync.RWMutex
	docs map[string]*index.Document
}

// NewInMemoryIndexer creates an empty in-memory indexer.
func NewInMemoryIndexer() *InMemoryIndexer {
	return &InMemoryIndexer{
		docs: make(map[string]*index.Document),
	}
}

// Index inserts a new document to the index or updates the index entry
// for an existing document.
func (i *InMemoryIndexer) Index(doc *index.Document) error {
	if doc.DocumentID == "" {
		return xerrors.Errorf("index: %w", index.ErrMissingDocumentID)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	dcopy := copyDoc(doc)
	dcopy.IndexedAt = time.Now()
	if orig, exists := i.docs[dcopy.DocumentID]; exists {
		// Preserve the score assigned by the last rank run.
		dcopy.PageRank = orig.PageRank
	}
	i.docs[dcopy.DocumentID] = dcopy
	return nil
}

// FindByID looks up a document by its document ID.
func (i *InMemoryIndexer) FindByID(documentID string) (*index.Document, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	doc, exists := i.docs[documentID]
	if !exists {
		return nil, xerrors.Errorf("find by ID: %w", index.ErrNotFound)
	}
	return copyDoc(doc), nil
}

// UpdateRank updates the PageRank score for a document with the specified
// document ID. If no such document exists, a placeholder document with the
// provided score will be created.
func (i *InMemoryIndexer) UpdateRank(documentID string, score float64) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	doc, exists := i.docs[documentID]
	if !exists {
		doc = &index.Document{DocumentID: documentID}
		i.docs[documentID] = doc
	}
	doc.PageRank = score
	return nil
}

func copyDoc(d *index.Document) *index.Document {
	dcopy := new(index.Document)
	*dcopy = *d
	return dcopy
}
