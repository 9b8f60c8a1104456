package errors

import (
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// nucleotides is the set of accepted sequence characters after cleanup.
// N marks an unknown base; T is tolerated for DNA-style input. IUPAC
// ambiguity codes other than N are rejected because the solver only
// pairs concrete bases.
const nucleotides = "ACGUTN"

// CleanSequence removes line breaks and upper-cases the sequence so that
// FASTA-style pasted input can be validated and hashed uniformly.
func CleanSequence(seq string) string {
	seq = strings.ReplaceAll(seq, "\n", "")
	seq = strings.ReplaceAll(seq, "\r", "")
	return strings.ToUpper(seq)
}

// ValidateSequence validates a cleaned nucleotide sequence.
//
// Validation rules:
//   - At least minLen characters
//   - At most maxLen characters (maxLen <= 0 disables the check)
//   - Only nucleotide letters (A, C, G, U, T, N)
func ValidateSequence(seq string, minLen, maxLen int) error {
	if len(seq) < minLen {
		return New(ErrCodeInvalidSequence, "sequence too short (min %d characters)", minLen)
	}
	if maxLen > 0 && len(seq) > maxLen {
		return New(ErrCodeInvalidSequence, "sequence too long (>%d)", maxLen)
	}
	for i, r := range seq {
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidSequence, "sequence contains whitespace at position %d", i)
		}
		if !strings.ContainsRune(nucleotides, r) {
			return New(ErrCodeInvalidSequence, "sequence contains invalid character %q at position %d", r, i)
		}
	}
	return nil
}

// ValidateMethod checks that method is one of the allowed solver methods.
func ValidateMethod(method string, allowed []string) error {
	if method == "" {
		return New(ErrCodeInvalidMethod, "method is required")
	}
	if !slices.Contains(allowed, method) {
		return New(ErrCodeInvalidMethod, "method not allowed: %q (must be one of: %s)", method, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateThreads checks that threads lies in [1, maxThreads].
func ValidateThreads(threads, maxThreads int) error {
	if threads < 1 || threads > maxThreads {
		return New(ErrCodeInvalidThreads, "threads must be between 1 and %d, got %d", maxThreads, threads)
	}
	return nil
}

// ValidateJobID validates a job identifier before it is used as a path
// component. Job identifiers are canonical UUID strings.
func ValidateJobID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidJobID, "job id cannot be empty")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Wrap(ErrCodeInvalidJobID, err, "invalid job id %q", id)
	}
	if parsed.String() != id {
		return New(ErrCodeInvalidJobID, "job id must be in canonical form: %q", id)
	}
	return nil
}
