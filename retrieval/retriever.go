// Package retrieval blends the vector-space similarity computed by the
// search side with the persisted authority scores of a rank propagation
// run. Tokenization, TF-IDF vector construction and the cosine numerator
// all happen upstream; this package only performs the final score fusion.
package retrieval

import (
	"golang.org/x/xerrors"

	"Rank_Engine/rankstore"
)

// ErrMissingRank is returned when a document has no entry in the rank
// table. Every indexed document must have one; a miss indicates that the
// rank table and the index were produced by different crawl runs.
var ErrMissingRank = xerrors.New("no rank entry for document")

// Retriever computes final retrieval scores by adding the weighted
// authority score of a document to its cosine similarity.
type Retriever struct {
	ranks  rankstore.Table
	weight float64
}

// NewRetriever loads the rank table from the provided store and returns a
// Retriever that scales rank contributions by weight. A weight of zero
// yields pure cosine ranking. Failure to load the table is fatal to the
// caller; there is no zero-rank fallback.
func NewRetriever(store rankstore.Store, weight float64) (*Retriever, error) {
	table, err := store.Load()
	if err != nil {
		return nil, xerrors.Errorf("retriever: load rank table: %w", err)
	}
	return &Retriever{
		ranks:  table,
		weight: weight,
	}, nil
}

// Score returns the final retrieval score for the document with the
// specified identifier:
//
//	dot/(queryNorm*docNorm) + rank*weight
//
// where dot is the partially computed cosine numerator and queryNorm and
// docNorm are the vector lengths of the query and the document.
func (r *Retriever) Score(documentID string, dot, queryNorm, docNorm float64) (float64, error) {
	rank, exists := r.ranks[documentID]
	if !exists {
		return 0, xerrors.Errorf("retriever: score %q: %w", documentID, ErrMissingRank)
	}
	return dot/(queryNorm*docNorm) + rank*r.weight, nil
}

// Rank returns the stored authority score for the document with the
// specified identifier.
func (r *Retriever) Rank(documentID string) (float64, error) {
	rank, exists := r.ranks[documentID]
	if !exists {
		return 0, xerrors.Errorf("retriever: rank %q: %w", documentID, ErrMissingRank)
	}
	return rank, nil
}
