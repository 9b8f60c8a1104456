// Package normalize reconstructs the raw text output of the nuss3d solver
// into a canonical square matrix document.
//
// The solver writes a dynamic-programming table as loosely formatted text:
// headers, banners and timing lines are interleaved with rows of integers,
// and each row i is left-padded with i zeros. This package recovers the
// table without knowing the solver's internal layout.
//
// # Pipeline
//
// Conversion is a linear, single-pass pipeline:
//
//  1. [Tokenizer]: extracts every maximal "-?[0-9]+" run of each line into a
//     [Row]; lines without integers are dropped.
//  2. [SelectBlock]: picks the rectangular block of rows sharing the most
//     frequent width (ties go to the width seen first). When no row is at
//     least [MinBlockWidth] wide, every row is zero-padded to the widest row
//     and the block is flagged as degenerate.
//  3. [Block.Normalize]: builds an n×n [Matrix] with n = min(rows, columns).
//     Leading zeros of row i are trimmed and the remainder is written
//     starting at column i. Values past the matrix edge are discarded.
//  4. [Document]: wraps the matrix as {"S": [[...]]} and renders it as
//     compact JSON.
//
// # Usage
//
//	res, err := normalize.Normalize(raw)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // no numeric content at all
//	}
//	if res.Degenerate {
//	    // lower-confidence result built by the fallback path
//	}
//	data, err := res.Document.Render()
//
// # Leading zeros
//
// The trimming step assumes row i carries exactly i leading zeros of
// padding. A genuine zero at the start of a row's data is absorbed into
// that padding, shifting the rest of the row one column to the right. The
// behavior is kept for compatibility with existing results.
//
// All functions are pure and safe for concurrent use on distinct inputs.
package normalize
