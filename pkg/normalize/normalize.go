package normalize

import (
	"io"
	"strings"

	apperr "github.com/nuss3d/foldserver/pkg/errors"
)

// Stats describes how a document was recovered from the raw text.
type Stats struct {
	Lines     int `json:"lines"`      // input lines read
	Rows      int `json:"rows"`       // lines that yielded integers
	BlockRows int `json:"block_rows"` // rows in the selected block
	Columns   int `json:"columns"`    // block width
	Dimension int `json:"dimension"`  // side of the output matrix
}

// Result is the outcome of one normalization.
type Result struct {
	Document Document
	Stats    Stats

	// Degenerate reports that the fallback block was used because no row
	// reached MinBlockWidth. The document is well formed but lower confidence.
	Degenerate bool
}

// Normalize converts raw solver text into a document.
// Returns a PARSE_ERROR when the text contains no integers.
func Normalize(raw string) (*Result, error) {
	return NormalizeReader(strings.NewReader(raw))
}

// NormalizeReader is like [Normalize] but reads the text from r.
// r is read once, line by line.
func NormalizeReader(r io.Reader) (*Result, error) {
	tok := NewTokenizer(r)
	var rows []Row
	for row := range tok.Rows() {
		rows = append(rows, row)
	}
	if err := tok.Err(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "read solver output")
	}

	block, err := SelectBlock(rows)
	if err != nil {
		return nil, err
	}
	m := block.Normalize()

	return &Result{
		Document: Document{S: m},
		Stats: Stats{
			Lines:     tok.Lines(),
			Rows:      len(rows),
			BlockRows: block.Len(),
			Columns:   block.Columns,
			Dimension: m.Dim(),
		},
		Degenerate: block.Degenerate,
	}, nil
}
