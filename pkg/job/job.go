// Package job runs fold jobs end to end.
//
// A fold job takes a nucleotide sequence, runs the external solver on it in
// a dedicated job directory, converts the solver's text output into an
// S.json document and records what happened. The same [Orchestrator] backs
// the HTTP API and the CLI.
//
// # Job directory
//
// Each job owns <jobs_dir>/<job id>/ containing:
//   - input.fasta: the cleaned sequence
//   - *.out.txt: the solver output (name chosen by the solver)
//   - stdout.txt: solver stdout, only when no output file was produced
//   - S.json: the normalized document
//   - meta.json: the job record (file store only)
//
// # Usage
//
//	orch, err := job.Open(ctx, cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer orch.Close()
//
//	resp, err := orch.Fold(ctx, job.FoldRequest{
//	    Sequence: "GGGAAACUCCC",
//	    Method:   "oryg",
//	    Threads:  4,
//	})
package job

import (
	"github.com/nuss3d/foldserver/pkg/store"
)

// Files inside a job directory.
const (
	InputFile    = "input.fasta"
	DocumentFile = "S.json"
)

// FoldRequest asks for one sequence to be folded.
type FoldRequest struct {
	Sequence string `json:"sequence"`
	Method   string `json:"method"`
	Threads  int    `json:"threads"`
}

// Files lists the artifacts of a finished job.
type Files struct {
	JSON string `json:"json"`
}

// FoldResponse describes a finished job.
type FoldResponse struct {
	JobID   string      `json:"job_id"`
	Method  string      `json:"method"`
	Threads int         `json:"threads"`
	Files   Files       `json:"files"`
	Meta    *store.Meta `json:"meta"`
}
