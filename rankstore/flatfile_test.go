package rankstore

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(FlatFileTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type FlatFileTestSuite struct {
	path string
}

func (s *FlatFileTestSuite) SetUpTest(c *gc.C) {
	s.path = filepath.Join(c.MkDir(), DefaultRankFileName)
}

func (s *FlatFileTestSuite) TestRoundTrip(c *gc.C) {
	table := Table{
		"P001.html": 0.25,
		"P002.html": 1.0 / 3.0,
		"P003.html": 0.41666666666666663,
		"P004.html": 1e-9,
	}

	store := NewFlatFile(s.path)
	c.Assert(store.Save(table), gc.IsNil)

	loaded, err := store.Load()
	c.Assert(err, gc.IsNil)
	c.Assert(loaded, gc.HasLen, len(table))
	for docID, score := range table {
		got, exists := loaded[docID]
		c.Assert(exists, gc.Equals, true, gc.Commentf("entry for %s got lost", docID))
		c.Assert(math.Abs(got-score) < 1e-12, gc.Equals, true,
			gc.Commentf("%s: wrote %v, read back %v", docID, score, got))
	}
}

func (s *FlatFileTestSuite) TestSaveOverwritesPreviousTable(c *gc.C) {
	store := NewFlatFile(s.path)
	c.Assert(store.Save(Table{"P001.html": 0.5, "P002.html": 0.5}), gc.IsNil)
	c.Assert(store.Save(Table{"P003.html": 1.0}), gc.IsNil)

	loaded, err := store.Load()
	c.Assert(err, gc.IsNil)
	c.Assert(loaded, gc.DeepEquals, Table{"P003.html": 1.0})
}

func (s *FlatFileTestSuite) TestSaveEmitsOneRecordPerLine(c *gc.C) {
	store := NewFlatFile(s.path)
	c.Assert(store.Save(Table{"P001.html": 0.5}), gc.IsNil)

	raw, err := os.ReadFile(s.path)
	c.Assert(err, gc.IsNil)
	c.Assert(string(raw), gc.Equals, "P001.html 0.5\n")
}

func (s *FlatFileTestSuite) TestLoadMissingFile(c *gc.C) {
	_, err := NewFlatFile(filepath.Join(c.MkDir(), "nope.txt")).Load()
	c.Assert(err, gc.Not(gc.IsNil))
	c.Assert(os.IsNotExist(xerrors.Unwrap(err)), gc.Equals, true)
}

func (s *FlatFileTestSuite) TestLoadMalformedTokenCount(c *gc.C) {
	c.Assert(os.WriteFile(s.path, []byte("P001.html 0.5\nP002.html\n"), 0o644), gc.IsNil)

	_, err := NewFlatFile(s.path).Load()
	c.Assert(xerrors.Is(err, ErrMalformedEntry), gc.Equals, true)
}

func (s *FlatFileTestSuite) TestLoadMalformedScore(c *gc.C) {
	c.Assert(os.WriteFile(s.path, []byte("P001.html not-a-number\n"), 0o644), gc.IsNil)

	_, err := NewFlatFile(s.path).Load()
	c.Assert(xerrors.Is(err, ErrMalformedEntry), gc.Equals, true)
}
