// Package crawler consumes the page-indexed event stream produced by the
// fetch layer and maintains the crawl's link graph. Fetching, robots
// compliance and link extraction happen upstream; this package only sees the
// (url, document ID, outgoing links) triples emitted after a page has been
// stored and indexed.
package crawler

import (
	"context"

	"Rank_Engine/linkgraph/graph"
	"Rank_Engine/pipeline"
)

// PageEvent describes a single page-indexed notification. The fetch layer
// emits one event per page, after the page has been successfully fetched,
// parsed and written to storage.
type PageEvent struct {
	// URL is the canonical URL of the page.
	URL string

	// DocumentID is the identifier assigned to the page by the indexing
	// step (e.g. P001.html).
	DocumentID string

	// Links lists the URLs of the page's outgoing links.
	Links []string
}

// EventIterator is implemented by types that can stream page-indexed events
// into the crawler.
type EventIterator interface {
	// Next advances the iterator. It returns false when no more events
	// are available or an error occurs.
	Next() bool

	// Event returns the current page event.
	Event() *PageEvent

	// Error returns the last error observed by the iterator.
	Error() error
}

// Crawler pipes page-indexed events through a graph-building pipeline. The
// pipeline consists of a single FIFO stage so events mutate the graph fully
// serialized and in the order the crawl produced them.
type Crawler struct {
	p *pipeline.Pipeline
}

// NewCrawler returns a Crawler that records events into g.
func NewCrawler(g *graph.Graph) *Crawler {
	return &Crawler{
		p: assemblePipeline(NewGraphBuilder(g)),
	}
}

// Crawl consumes events until the iterator is exhausted, the context
// expires or an error occurs. It returns the number of events applied to
// the graph.
func (c *Crawler) Crawl(ctx context.Context, events EventIterator) (int, error) {
	sink := new(countingSink)
	err := c.p.Process(ctx, &eventSource{events: events}, sink)
	return sink.count, err
}

func assemblePipeline(builder *GraphBuilder) *pipeline.Pipeline {
	return pipeline.New(
		pipeline.NewFIFO(&graphBuilderStage{builder: builder}),
	)
}

// graphBuilderStage adapts a GraphBuilder to the pipeline.Processor
// contract.
type graphBuilderStage struct {
	builder *GraphBuilder
}

// Process implements pipeline.Processor.
func (s *graphBuilderStage) Process(_ context.Context, p pipeline.Payload) (pipeline.Payload, error) {
	payload := p.(*crawlerPayload)
	s.builder.OnPageIndexed(payload.URL, payload.DocumentID, payload.Links)
	return p, nil
}

// eventSource adapts an EventIterator to the pipeline.Source contract.
type eventSource struct {
	events EventIterator
}

func (es *eventSource) Next(context.Context) bool { return es.events.Next() }
func (es *eventSource) Error() error              { return es.events.Error() }

func (es *eventSource) Payload() pipeline.Payload {
	event := es.events.Event()
	p := payloadPool.Get().(*crawlerPayload)

	p.URL = event.URL
	p.DocumentID = event.DocumentID
	p.Links = append(p.Links[:0], event.Links...)
	return p
}

// countingSink counts the payloads that make it through the pipeline.
type countingSink struct {
	count int
}

// Consume implements pipeline.Sink.
func (s *countingSink) Consume(context.Context, pipeline.Payload) error {
	s.count++
	return nil
}
