package crawler

import (
	"bufio"
	"os"
	"strings"

	"golang.org/x/xerrors"
)

// ErrMalformedManifestEntry indicates a manifest line that does not follow
// the expected format.
var ErrMalformedManifestEntry = xerrors.New("malformed crawl manifest entry")

// ManifestIterator streams page events out of a crawl manifest file. Each
// non-blank line describes one indexed page as whitespace-separated fields:
//
//	<url> <documentID> [outgoing link URLs...]
//
// Lines starting with '#' are skipped.
type ManifestIterator struct {
	f       *os.File
	scanner *bufio.Scanner

	event   *PageEvent
	lastErr error
}

// OpenManifest opens the crawl manifest at path for iteration. The caller
// must invoke Close once iteration completes.
func OpenManifest(path string) (*ManifestIterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("crawl manifest: open %q: %w", path, err)
	}
	return &ManifestIterator{
		f:       f,
		scanner: bufio.NewScanner(f),
	}, nil
}

// Next implements EventIterator.
func (it *ManifestIterator) Next() bool {
	if it.lastErr != nil {
		return false
	}
	for it.scanner.Scan() {
		line := strings.TrimSpace(it.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			it.lastErr = xerrors.Errorf("crawl manifest: line %q: %w", line, ErrMalformedManifestEntry)
			return false
		}
		it.event = &PageEvent{
			URL:        fields[0],
			DocumentID: fields[1],
			Links:      fields[2:],
		}
		return true
	}
	it.lastErr = it.scanner.Err()
	return false
}

// Event implements EventIterator.
func (it *ManifestIterator) Event() *PageEvent { return it.event }

// Error implements EventIterator.
func (it *ManifestIterator) Error() error { return it.lastErr }

// Close releases the underlying file handle.
func (it *ManifestIterator) Close() error {
	return it.f.Close()
}
