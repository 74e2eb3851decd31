// Package es provides an index.Indexer implementation backed by an
// elasticsearch cluster.
package es

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/elastic/go-elasticsearch"
	"github.com/elastic/go-elasticsearch/esapi"
	"golang.org/x/xerrors"

	"Rank_Engine/textindexer/index"
)

// Compile-time check for ensuring ElasticSearchIndexer implements
// index.Indexer.
var _ index.Indexer = (*ElasticSearchIndexer)(nil)

// NewElasticSearchIndexer creates a text indexer that uses the elastic
// search instance specified by esNodes for indexing documents. When
// syncUpdates is set, index updates become visible to searches before the
// calls return; this is only meant for tests.
func NewElasticSearchIndexer(esNodes []string, syncUpdates bool) (*ElasticSearchIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: esNodes,
	}
	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if err = ensureIndex(es); err != nil {
		return nil, err
	}

	refreshOpt := es.Update.WithRefresh("false")
	if syncUpdates {
		refreshOpt = es.Update.WithRefresh("true")
	}

	return &ElasticSearchIndexer{
		es:         es,
		refreshOpt: refreshOpt,
	}, nil
}

// Index inserts a new document to the index or updates the index entry
// for an existing document.
func (i *ElasticSearchIndexer) Index(doc *index.Document) error {
	if doc.DocumentID == "" {
		return xerrors.Errorf("index: %w", index.ErrMissingDocumentID)
	}

	var (
		buf   bytes.Buffer
		esDoc = makeEsDoc(doc)
	)
	update := map[string]interface{}{
		"doc":           esDoc,
		"doc_as_upsert": true,
	}
	if err := json.NewEncoder(&buf).Encode(update); err != nil {
		return xerrors.Errorf("index: %w", err)
	}

	res, err := i.es.Update(indexName, esDoc.DocumentID, &buf, i.refreshOpt)
	if err != nil {
		return xerrors.Errorf("index: %w", err)
	}

	var updateRes esUpdateRes
	if err = unmarshalResponse(res, &updateRes); err != nil {
		return xerrors.Errorf("index: %w", err)
	}

	return nil
}

// FindByID looks up a document by its document ID.
func (i *ElasticSearchIndexer) FindByID(documentID string) (*index.Document, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"DocumentID": documentID,
			},
		},
		"from": 0,
		"size": 1,
	}

	searchRes, err := runSearch(i.es, query)
	if err != nil {
		return nil, xerrors.Errorf("find by ID: %w", err)
	}

	if len(searchRes.Hits.HitList) != 1 {
		return nil, xerrors.Errorf("find by ID: %w", index.ErrNotFound)
	}

	return mapEsDoc(&searchRes.Hits.HitList[0].DocSource), nil
}

// UpdateRank updates the PageRank score for a document with the specified
// document ID. If no such document exists, a placeholder document with the
// provided score will be created.
func (i *ElasticSearchIndexer) UpdateRank(documentID string, score float64) error {
	var buf bytes.Buffer
	update := map[string]interface{}{
		"doc": map[string]interface{}{
			"DocumentID": documentID,
			"PageRank":   score,
		},
		"doc_as_upsert": true,
	}
	if err := json.NewEncoder(&buf).Encode(update); err != nil {
		return xerrors.Errorf("update rank: %w", err)
	}

	res, err := i.es.Update(indexName, documentID, &buf, i.refreshOpt)
	if err != nil {
		return xerrors.Errorf("update rank: %w", err)
	}

	var updateRes esUpdateRes
	if err = unmarshalResponse(res, &updateRes); err != nil {
		return xerrors.Errorf("update rank: %w", err)
	}

	return nil
}

func ensureIndex(es *elasticsearch.Client) error {
	mappingsReader := strings.NewReader(esMappings)
	res, err := es.Indices.Create(indexName, es.Indices.Create.WithBody(mappingsReader))
	if err != nil {
		return xerrors.Errorf("cannot create ES index: %w", err)
	} else if res.IsError() {
		err := unmarshalError(res)
		if esErr, valid := err.(esError); valid && esErr.Type == "resource_already_exists_exception" {
			return nil
		}
		return xerrors.Errorf("cannot create ES index: %w", err)
	}

	return nil
}

func runSearch(es *elasticsearch.Client, searchQuery map[string]interface{}) (*esSearchRes, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchQuery); err != nil {
		return nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(context.Background()),
		es.Search.WithIndex(indexName),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}

	var esRes esSearchRes
	if err = unmarshalResponse(res, &esRes); err != nil {
		return nil, err
	}

	return &esRes, nil
}

func unmarshalError(res *esapi.Response) error {
	return unmarshalResponse(res, nil)
}

func unmarshalResponse(res *esapi.Response, to interface{}) error {
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		var errRes esErrorRes
		if err := json.NewDecoder(res.Body).Decode(&errRes); err != nil {
			return err
		}

		return errRes.Error
	}

	return json.NewDecoder(res.Body).Decode(to)
}

func mapEsDoc(d *esDoc) *index.Document {
	return &index.Document{
		DocumentID: d.DocumentID,
		URL:        d.URL,
		Title:      d.Title,
		Content:    d.Content,
		IndexedAt:  d.IndexedAt.UTC(),
		PageRank:   d.PageRank,
	}
}

func makeEsDoc(d *index.Document) esDoc {
	// Note: we intentionally skip PageRank as we don't want updates to
	// overwrite existing PageRank values.
	return esDoc{
		DocumentID: d.DocumentID,
		URL:        d.URL,
		Title:      d.Title,
		Content:    d.Content,
		IndexedAt:  d.IndexedAt.UTC(),
	}
}
