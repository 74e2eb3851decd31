package rankstore

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

// DefaultRankFileName is the conventional name for the rank table when it is
// colocated with the crawled documents.
const DefaultRankFileName = "page_ranks.txt"

// Compile-time check for ensuring FlatFile implements Store.
var _ Store = (*FlatFile)(nil)

// FlatFile persists a rank table as a flat text file with one
// "<documentID> <score>" line per indexed document: space-separated, no
// header, newline-terminated records.
//
// The file commonly lives in the same directory as the crawled documents;
// excluding it from the corpus that gets tokenized is the indexing side's
// responsibility.
type FlatFile struct {
	path string
}

// NewFlatFile returns a FlatFile store that reads and writes the table at
// the provided path.
func NewFlatFile(path string) *FlatFile {
	return &FlatFile{path: path}
}

// Save implements Store. The destination file is created or truncated as a
// whole; a failed write never leaves a descriptor behind.
func (s *FlatFile) Save(table Table) error {
	f, err := os.Create(s.path)
	if err != nil {
		return xerrors.Errorf("rank store: create %q: %w", s.path, err)
	}

	w := bufio.NewWriter(f)
	for docID, score := range table {
		if _, err = fmt.Fprintf(w, "%s %s\n", docID, strconv.FormatFloat(score, 'g', -1, 64)); err != nil {
			_ = f.Close()
			return xerrors.Errorf("rank store: write %q: %w", s.path, err)
		}
	}
	if err = w.Flush(); err != nil {
		_ = f.Close()
		return xerrors.Errorf("rank store: flush %q: %w", s.path, err)
	}
	if err = f.Close(); err != nil {
		return xerrors.Errorf("rank store: close %q: %w", s.path, err)
	}
	return nil
}

// Load implements Store. Any malformed line aborts the load; there is no
// skip-and-continue recovery.
func (s *FlatFile) Load() (Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, xerrors.Errorf("rank store: open %q: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	table := make(Table)
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			return nil, xerrors.Errorf("rank store: %s line %d: %w", s.path, lineNum, ErrMalformedEntry)
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, xerrors.Errorf("rank store: %s line %d: %w", s.path, lineNum, ErrMalformedEntry)
		}
		table[fields[0]] = score
	}
	if err = scanner.Err(); err != nil {
		return nil, xerrors.Errorf("rank store: read %q: %w", s.path, err)
	}
	return table, nil
}
