// Package solver runs the external folding binary for a job.
//
// The solver is an opaque executable invoked as
//
//	<bin> <input.fasta> <method> <threads>
//
// inside the job directory. It writes its result to a file matching the
// configured output glob (by default "*.out.txt"); that text is what
// [github.com/nuss3d/foldserver/pkg/normalize] converts into the final
// document.
//
// [Runner] abstracts the invocation so the job orchestrator can be driven
// by [ExecRunner] in production and by [FuncRunner] in tests.
package solver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperr "github.com/nuss3d/foldserver/pkg/errors"
)

// StdoutFile receives the solver's stdout when no output file was produced.
const StdoutFile = "stdout.txt"

// Invocation describes one solver run.
type Invocation struct {
	Dir       string // job directory, used as working directory
	FastaPath string // input sequence in FASTA format
	Method    string
	Threads   int
}

// Output is what a solver run produced.
type Output struct {
	Stdout     string
	Stderr     string
	ReturnCode int
	OutFile    string // path of the matched output file, empty if none
	Raw        string // contents of OutFile
	Elapsed    time.Duration
}

// Runner executes the solver.
//
// On solver failure Run returns both a partial Output (stdout, stderr,
// return code) and a coded error, so callers can record what happened.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*Output, error)
}

// FuncRunner adapts a function returning solver output text into a Runner.
// The text is written to "<method>.out.txt" in the job directory, as the
// real solver would.
type FuncRunner func(ctx context.Context, inv Invocation) (string, error)

func (f FuncRunner) Run(ctx context.Context, inv Invocation) (*Output, error) {
	start := time.Now()
	raw, err := f(ctx, inv)
	if err != nil {
		return &Output{ReturnCode: 1, Stderr: err.Error(), Elapsed: time.Since(start)}, err
	}

	path := filepath.Join(inv.Dir, inv.Method+".out.txt")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "write solver output")
	}
	return &Output{
		OutFile: path,
		Raw:     raw,
		Elapsed: time.Since(start),
	}, nil
}

func (inv Invocation) args() []string {
	return []string{inv.FastaPath, inv.Method, fmt.Sprint(inv.Threads)}
}
