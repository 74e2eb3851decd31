package crawler

import (
	"context"

	"Rank_Engine/linkgraph/graph"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(CrawlerTestSuite))

type CrawlerTestSuite struct {
}

func (s *CrawlerTestSuite) TestCrawlAppliesAllEvents(c *gc.C) {
	g := graph.NewGraph()
	events := &sliceEventIterator{events: []PageEvent{
		{URL: "a", DocumentID: "P001.html", Links: []string{"b", "c"}},
		{URL: "b", DocumentID: "P002.html", Links: []string{"c"}},
		{URL: "c", DocumentID: "P003.html", Links: []string{"a", "c"}},
	}}

	count, err := NewCrawler(g).Crawl(context.TODO(), events)
	c.Assert(err, gc.IsNil)
	c.Assert(count, gc.Equals, 3)

	c.Assert(g.Len(), gc.Equals, 3)
	c.Assert(g.Lookup("a").HasEdgeTo(g.Lookup("b")), gc.Equals, true)
	c.Assert(g.Lookup("c").HasEdgeTo(g.Lookup("a")), gc.Equals, true)
	c.Assert(g.Lookup("c").HasEdgeTo(g.Lookup("c")), gc.Equals, false,
		gc.Commentf("self-links must not survive the intake"))

	for it := g.Nodes(); it.Next(); {
		c.Assert(it.Node().Indexed, gc.Equals, true)
	}
}

func (s *CrawlerTestSuite) TestCrawlPreservesEventOrder(c *gc.C) {
	g := graph.NewGraph()
	events := &sliceEventIterator{events: []PageEvent{
		{URL: "a", DocumentID: "P001.html", Links: []string{"b"}},
		// The second visit of "a" wins; events apply in order.
		{URL: "a", DocumentID: "P004.html"},
	}}

	_, err := NewCrawler(g).Crawl(context.TODO(), events)
	c.Assert(err, gc.IsNil)
	c.Assert(g.Lookup("a").DocumentID, gc.Equals, "P004.html")
}

type sliceEventIterator struct {
	events []PageEvent
	pos    int
}

func (it *sliceEventIterator) Next() bool {
	if it.pos >= len(it.events) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceEventIterator) Event() *PageEvent { return &it.events[it.pos-1] }
func (it *sliceEventIterator) Error() error      { return nil }
