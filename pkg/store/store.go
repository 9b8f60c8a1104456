// Package store persists per-job metadata.
//
// Every fold job produces one [Meta] record describing the solver run and
// the conversion outcome. Two backends implement [Store]:
//   - file: meta.json inside each job directory (single host, CLI)
//   - mongo: a MongoDB collection (multi-instance deployments)
//
// # Usage
//
//	st, err := store.NewFileStore(cfg.JobsDir)
//	if err != nil {
//	    return err
//	}
//	if err := st.Save(ctx, meta); err != nil {
//	    return err
//	}
//	m, err := st.Get(ctx, jobID)
//	if errors.Is(err, store.ErrNotFound) {
//	    // unknown job
//	}
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for a job id.
var ErrNotFound = errors.New("job not found")

// Job statuses.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Meta describes one fold job.
type Meta struct {
	JobID          string    `json:"job_id" bson:"_id"`
	Method         string    `json:"method" bson:"method"`
	Threads        int       `json:"threads" bson:"threads"`
	SequenceHash   string    `json:"sequence_hash" bson:"sequence_hash"`
	SequenceLength int       `json:"sequence_length" bson:"sequence_length"`
	Stdout         string    `json:"stdout" bson:"stdout"`
	Stderr         string    `json:"stderr" bson:"stderr"`
	ReturnCode     int       `json:"returncode" bson:"returncode"`
	OutFile        string    `json:"out_file" bson:"out_file"`
	TimeMS         float64   `json:"time_ms" bson:"time_ms"`
	Status         string    `json:"status" bson:"status"`
	ErrorCode      string    `json:"error_code,omitempty" bson:"error_code,omitempty"`
	Error          string    `json:"error,omitempty" bson:"error,omitempty"`
	Degenerate     bool      `json:"degenerate" bson:"degenerate"`
	Dimension      int       `json:"dimension" bson:"dimension"`
	Cached         bool      `json:"cached" bson:"cached"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// Succeeded reports whether the job produced a document.
func (m *Meta) Succeeded() bool {
	return m.Status == StatusSucceeded
}

// Store is the interface for job metadata backends.
type Store interface {
	// Save creates or replaces the record for meta.JobID.
	Save(ctx context.Context, meta *Meta) error

	// Get returns the record for jobID, or ErrNotFound.
	Get(ctx context.Context, jobID string) (*Meta, error)

	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Meta, error)

	// Close releases backend resources.
	Close() error
}
