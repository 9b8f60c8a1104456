package normalize

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"regexp"
	"strconv"
)

// integerPattern matches a signed decimal integer.
var integerPattern = regexp.MustCompile(`-?[0-9]+`)

// Row is the ordered sequence of integers extracted from one input line.
type Row []int

// Width returns the number of integers in the row.
func (r Row) Width() int { return len(r) }

// ParseLine extracts every maximal signed integer from line, in order.
// A token that overflows int is clamped to the nearest bound, so every
// token counts toward the row width. Returns nil when the line holds no
// integers.
func ParseLine(line string) Row {
	matches := integerPattern.FindAllString(line, -1)
	if len(matches) == 0 {
		return nil
	}
	row := make(Row, len(matches))
	for i, m := range matches {
		// the pattern guarantees digits, so ErrRange is the only failure
		// and ParseInt has already clamped v
		v, _ := strconv.ParseInt(m, 10, strconv.IntSize)
		row[i] = int(v)
	}
	return row
}

// Tokenizer yields one [Row] per input line that contains integers.
//
// Like bufio.Scanner, a Tokenizer is single-use: ranging over [Tokenizer.Rows]
// consumes the underlying reader. Check [Tokenizer.Err] once iteration ends.
type Tokenizer struct {
	r     *bufio.Reader
	err   error
	lines int
}

// NewTokenizer returns a Tokenizer reading lines from r.
func NewTokenizer(r io.Reader) *Tokenizer {
	return &Tokenizer{r: bufio.NewReader(r)}
}

// Rows returns a lazy sequence of the numeric rows in input order.
// Lines without integers produce no row.
func (t *Tokenizer) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for t.err == nil {
			line, err := t.r.ReadString('\n')
			if len(line) > 0 {
				t.lines++
				if row := ParseLine(line); row != nil {
					if !yield(row) {
						return
					}
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					t.err = err
				}
				return
			}
		}
	}
}

// Lines returns the number of lines read so far, including dropped ones.
func (t *Tokenizer) Lines() int { return t.lines }

// Err returns the first non-EOF read error, if any.
func (t *Tokenizer) Err() error { return t.err }
