package crawler

import (
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ManifestTestSuite))

type ManifestTestSuite struct {
}

func (s *ManifestTestSuite) TestIteration(c *gc.C) {
	it := s.openManifest(c, `
# crawl of example.com, 2026-08-20
http://example.com/a P001.html http://example.com/b http://example.com/c
http://example.com/b P002.html

http://example.com/c P003.html http://example.com/a
`)
	defer func() { _ = it.Close() }()

	var events []*PageEvent
	for it.Next() {
		events = append(events, it.Event())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(events, gc.HasLen, 3)

	c.Assert(events[0].URL, gc.Equals, "http://example.com/a")
	c.Assert(events[0].DocumentID, gc.Equals, "P001.html")
	c.Assert(events[0].Links, gc.DeepEquals, []string{"http://example.com/b", "http://example.com/c"})

	c.Assert(events[1].DocumentID, gc.Equals, "P002.html")
	c.Assert(events[1].Links, gc.HasLen, 0)
}

func (s *ManifestTestSuite) TestMalformedEntry(c *gc.C) {
	it := s.openManifest(c, "http://example.com/a\n")
	defer func() { _ = it.Close() }()

	c.Assert(it.Next(), gc.Equals, false)
	c.Assert(xerrors.Is(it.Error(), ErrMalformedManifestEntry), gc.Equals, true)
}

func (s *ManifestTestSuite) TestOpenMissingFile(c *gc.C) {
	_, err := OpenManifest(filepath.Join(c.MkDir(), "nope.txt"))
	c.Assert(err, gc.Not(gc.IsNil))
}

func (s *ManifestTestSuite) openManifest(c *gc.C, body string) *ManifestIterator {
	path := filepath.Join(c.MkDir(), "crawl.manifest")
	c.Assert(os.WriteFile(path, []byte(body), 0o644), gc.IsNil)

	it, err := OpenManifest(path)
	c.Assert(err, gc.IsNil)
	return it
}
