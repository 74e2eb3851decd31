package memory

import (
	"testing"

	"Rank_Engine/textindexer/index"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(InMemoryIndexerTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type InMemoryIndexerTestSuite struct {
	idx *InMemoryIndexer
}

func (s *InMemoryIndexerTestSuite) SetUpTest(c *gc.C) {
	s.idx = NewInMemoryIndexer()
}

func (s *InMemoryIndexerTestSuite) TestIndexAndFindByID(c *gc.C) {
	doc := &index.Document{
		DocumentID: "P001.html",
		URL:        "http://example.com/P001.html",
		Title:      "Test",
		Content:    "hello world",
	}
	c.Assert(s.idx.Index(doc), gc.IsNil)

	got, err := s.idx.FindByID("P001.html")
	c.Assert(err, gc.IsNil)
	c.Assert(got.URL, gc.Equals, doc.URL)
	c.Assert(got.Title, gc.Equals, doc.Title)
	c.Assert(got.Content, gc.Equals, doc.Content)
	c.Assert(got.IndexedAt.IsZero(), gc.Equals, false)
}

func (s *InMemoryIndexerTestSuite) TestIndexRejectsMissingID(c *gc.C) {
	err := s.idx.Index(&index.Document{URL: "http://example.com"})
	c.Assert(xerrors.Is(err, index.ErrMissingDocumentID), gc.Equals, true)
}

func (s *InMemoryIndexerTestSuite) TestFindByIDUnknownDocument(c *gc.C) {
	_, err := s.idx.FindByID("P404.html")
	c.Assert(xerrors.Is(err, index.ErrNotFound), gc.Equals, true)
}

func (s *InMemoryIndexerTestSuite) TestIndexReturnsCopies(c *gc.C) {
	doc := &index.Document{DocumentID: "P001.html", Title: "orig"}
	c.Assert(s.idx.Index(doc), gc.IsNil)
	doc.Title = "mutated after indexing"

	got, err := s.idx.FindByID("P001.html")
	c.Assert(err, gc.IsNil)
	c.Assert(got.Title, gc.Equals, "orig")

	got.Title = "mutated after lookup"
	again, err := s.idx.FindByID("P001.html")
	c.Assert(err, gc.IsNil)
	c.Assert(again.Title, gc.Equals, "orig")
}

func (s *InMemoryIndexerTestSuite) TestUpdateRank(c *gc.C) {
	c.Assert(s.idx.Index(&index.Document{DocumentID: "P001.html"}), gc.IsNil)
	c.Assert(s.idx.UpdateRank("P001.html", 0.5), gc.IsNil)

	got, err := s.idx.FindByID("P001.html")
	c.Assert(err, gc.IsNil)
	c.Assert(got.PageRank, gc.Equals, 0.5)
}

func (s *InMemoryIndexerTestSuite) TestUpdateRankCreatesPlaceholder(c *gc.C) {
	c.Assert(s.idx.UpdateRank("P002.html", 0.25), gc.IsNil)

	got, err := s.idx.FindByID("P002.html")
	c.Assert(err, gc.IsNil)
	c.Assert(got.PageRank, gc.Equals, 0.25)
	c.Assert(got.URL, gc.Equals, "")
}

func (s *InMemoryIndexerTestSuite) TestReindexPreservesRank(c *gc.C) {
	c.Assert(s.idx.Index(&index.Document{DocumentID: "P001.html", Content: "v1"}), gc.IsNil)
	c.Assert(s.idx.UpdateRank("P001.html", 0.7), gc.IsNil)
	c.Assert(s.idx.Index(&index.Document{DocumentID: "P001.html", Content: "v2"}), gc.IsNil)

	got, err := s.idx.FindByID("P001.html")
	c.Assert(err, gc.IsNil)
	c.Assert(got.Content, gc.Equals, "v2")
	c.Assert(got.PageRank, gc.Equals, 0.7)
}
