package crawler

import (
	"sync"

	"Rank_Engine/pipeline"
)

var (
	// Compile-time check for ensuring crawlerPayload implements
	// pipeline.Payload.
	_ pipeline.Payload = (*crawlerPayload)(nil)

	payloadPool = sync.Pool{
		New: func() interface{} { return new(crawlerPayload) },
	}
)

type crawlerPayload struct {
	// URL is the canonical URL of the indexed page.
	URL string

	// DocumentID is the identifier the indexing step assigned to the
	// page.
	DocumentID string

	// Links holds the outgoing link URLs extracted from the page.
	Links []string
}

// Clone implements pipeline.Payload.
func (p *crawlerPayload) Clone() pipeline.Payload {
	newP := payloadPool.Get().(*crawlerPayload)
	newP.URL = p.URL
	newP.DocumentID = p.DocumentID
	newP.Links = append([]string(nil), p.Links...)
	return newP
}

// MarkAsProcessed implements pipeline.Payload.
func (p *crawlerPayload) MarkAsProcessed() {
	p.URL = ""
	p.DocumentID = ""
	p.Links = p.Links[:0]
	payloadPool.Put(p)
}
