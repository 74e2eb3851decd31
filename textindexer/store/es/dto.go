package es

import (
	"time"

	"github.com/elastic/go-elasticsearch"
	"github.com/elastic/go-elasticsearch/esapi"
)

// The name of the elasticsearch index to use.
const indexName = "textindexer"

const esMappings = `
{
  "mappings" : {
    "properties": {
      "DocumentID": {"type": "keyword"},
      "URL": {"type": "keyword"},
      "Content": {"type": "text"},
      "Title": {"type": "text"},
      "IndexedAt": {"type": "date"},
      "PageRank": {"type": "double"}
    }
  }
}`

// ElasticSearchIndexer is an Indexer implementation that uses an elastic
// search instance to catalogue and search documents.
type ElasticSearchIndexer struct {
	es         *elasticsearch.Client
	refreshOpt func(*esapi.UpdateRequest)
}

type esDoc struct {
	DocumentID string    `json:"DocumentID"`
	URL        string    `json:"URL"`
	Title      string    `json:"Title"`
	Content    string    `json:"Content"`
	IndexedAt  time.Time `json:"IndexedAt"`
	PageRank   float64   `json:"PageRank,omitempty"`
}

type esUpdateRes struct {
	Result string `json:"result"`
}

type esSearchRes struct {
	Hits esSearchResHits `json:"hits"`
}

type esSearchResHits struct {
	Total   esTotal        `json:"total"`
	HitList []esHitWrapper `json:"hits"`
}

type esTotal struct {
	Count uint64 `json:"value"`
}

type esHitWrapper struct {
	DocSource esDoc `json:"_source"`
}

type esErrorRes struct {
	Error esError `json:"error"`
}

type esError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Error implements error.
func (e esError) Error() string {
	return e.Reason
}
