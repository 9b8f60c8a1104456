package normalize

import (
	apperr "github.com/nuss3d/foldserver/pkg/errors"
)

// MinBlockWidth is the minimum row width that takes part in the block vote.
// Narrower rows are treated as headers or noise.
const MinBlockWidth = 2

// Block is the rectangular table selected from the solver output.
// Every row has exactly Columns integers.
type Block struct {
	Rows    []Row
	Columns int

	// Degenerate is set when no row reached MinBlockWidth and the block was
	// built from every row, zero-padded to the widest one.
	Degenerate bool
}

// Len returns the number of rows in the block.
func (b Block) Len() int { return len(b.Rows) }

// widthVote counts how often a row width occurs among candidate rows.
// first is the position of the first row with that width and breaks ties.
type widthVote struct {
	width int
	count int
	first int
}

// ModeWidth returns the most frequent width among rows at least
// MinBlockWidth wide. When several widths share the highest count, the one
// whose first row comes earliest wins. ok is false when no row qualifies.
func ModeWidth(rows []Row) (width int, ok bool) {
	votes := make(map[int]*widthVote)
	var order []*widthVote
	for i, r := range rows {
		if r.Width() < MinBlockWidth {
			continue
		}
		v, seen := votes[r.Width()]
		if !seen {
			v = &widthVote{width: r.Width(), first: i}
			votes[r.Width()] = v
			order = append(order, v)
		}
		v.count++
	}

	var best *widthVote
	for _, v := range order {
		if best == nil || v.count > best.count || (v.count == best.count && v.first < best.first) {
			best = v
		}
	}
	if best == nil {
		return 0, false
	}
	return best.width, true
}

// SelectBlock picks the data-bearing block out of all extracted rows.
//
// The block is every row (in input order) whose width equals [ModeWidth].
// When no row is wide enough to vote, the degenerate fallback pads every
// row with zeros on the right up to the widest row.
//
// Returns a PARSE_ERROR when rows is empty.
func SelectBlock(rows []Row) (Block, error) {
	if len(rows) == 0 {
		return Block{}, apperr.New(apperr.ErrCodeParse, "no numeric content")
	}

	if width, ok := ModeWidth(rows); ok {
		var block []Row
		for _, r := range rows {
			if r.Width() == width {
				block = append(block, r)
			}
		}
		if len(block) > 0 {
			return Block{Rows: block, Columns: width}, nil
		}
	}

	return fallbackBlock(rows), nil
}

// fallbackBlock builds the degenerate block from every row.
func fallbackBlock(rows []Row) Block {
	columns := 0
	for _, r := range rows {
		columns = max(columns, r.Width())
	}
	padded := make([]Row, len(rows))
	for i, r := range rows {
		p := make(Row, columns)
		copy(p, r)
		padded[i] = p
	}
	return Block{Rows: padded, Columns: columns, Degenerate: true}
}
