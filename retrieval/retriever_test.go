package retrieval

import (
	"math"
	"testing"

	"Rank_Engine/rankstore"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(RetrieverTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type RetrieverTestSuite struct {
}

func (s *RetrieverTestSuite) TestScoreFusion(c *gc.C) {
	r := s.retriever(c, rankstore.Table{"P001.html": 0.4}, 2.0)

	got, err := r.Score("P001.html", 3.0, 2.0, 1.5)
	c.Assert(err, gc.IsNil)

	// 3/(2*1.5) + 0.4*2
	c.Assert(math.Abs(got-1.8) < 1e-12, gc.Equals, true, gc.Commentf("got %v", got))
}

func (s *RetrieverTestSuite) TestZeroWeightYieldsPureCosine(c *gc.C) {
	r := s.retriever(c, rankstore.Table{"P001.html": 0.9}, 0)

	got, err := r.Score("P001.html", 3.0, 2.0, 1.5)
	c.Assert(err, gc.IsNil)
	c.Assert(got, gc.Equals, 1.0)
}

func (s *RetrieverTestSuite) TestScoreIsMonotonicInWeight(c *gc.C) {
	table := rankstore.Table{"P001.html": 0.25}

	var prev float64
	for i, weight := range []float64{0, 0.5, 1, 2, 10} {
		got, err := s.retriever(c, table, weight).Score("P001.html", 1.0, 1.0, 1.0)
		c.Assert(err, gc.IsNil)
		if i > 0 {
			c.Assert(got >= prev, gc.Equals, true,
				gc.Commentf("raising the weight from the previous value lowered the score: %v -> %v", prev, got))
		}
		prev = got
	}
}

func (s *RetrieverTestSuite) TestMissingRankEntry(c *gc.C) {
	r := s.retriever(c, rankstore.Table{"P001.html": 0.5}, 1.0)

	_, err := r.Score("P999.html", 1.0, 1.0, 1.0)
	c.Assert(xerrors.Is(err, ErrMissingRank), gc.Equals, true)

	_, err = r.Rank("P999.html")
	c.Assert(xerrors.Is(err, ErrMissingRank), gc.Equals, true)
}

func (s *RetrieverTestSuite) TestUnloadableTableIsFatal(c *gc.C) {
	_, err := NewRetriever(failingStore{}, 1.0)
	c.Assert(err, gc.ErrorMatches, "(?s).*load rank table.*")
}

func (s *RetrieverTestSuite) retriever(c *gc.C, table rankstore.Table, weight float64) *Retriever {
	r, err := NewRetriever(staticStore{table: table}, weight)
	c.Assert(err, gc.IsNil)
	return r
}

type staticStore struct {
	table rankstore.Table
}

func (s staticStore) Save(rankstore.Table) error     { return nil }
func (s staticStore) Load() (rankstore.Table, error) { return s.table, nil }

type failingStore struct{}

func (failingStore) Save(rankstore.Table) error     { return nil }
func (failingStore) Load() (rankstore.Table, error) { return nil, xerrors.New("disk on fire") }
