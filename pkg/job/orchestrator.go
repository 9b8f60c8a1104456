package job

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nuss3d/foldserver/pkg/cache"
	"github.com/nuss3d/foldserver/pkg/config"
	apperr "github.com/nuss3d/foldserver/pkg/errors"
	"github.com/nuss3d/foldserver/pkg/normalize"
	"github.com/nuss3d/foldserver/pkg/observability"
	"github.com/nuss3d/foldserver/pkg/solver"
	"github.com/nuss3d/foldserver/pkg/store"
)

// cacheKeyType labels fold entries in cache hooks.
const cacheKeyType = "fold"

// Orchestrator validates fold requests, runs the solver and persists the
// resulting documents and job records.
//
// It holds no per-job state; concurrent Fold calls each own a separate job
// directory.
type Orchestrator struct {
	Config *config.Config
	Runner solver.Runner
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	now func() time.Time
}

// NewOrchestrator assembles an orchestrator. st must not be nil.
// A nil runner runs the configured solver binary, a nil cache disables
// caching and a nil keyer selects the default keyer.
func NewOrchestrator(cfg *config.Config, runner solver.Runner, st store.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = solver.NewExecRunner(cfg, logger)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Orchestrator{
		Config: cfg,
		Runner: runner,
		Store:  st,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		now:    time.Now,
	}
}

// cacheEntry is the cached form of a finished fold.
type cacheEntry struct {
	Document   json.RawMessage `json:"document"`
	Degenerate bool            `json:"degenerate,omitempty"`
}

// Fold runs one job: validate, prepare the job directory, reuse a cached
// document or run the solver and normalize its output, then persist.
//
// Failures after the job id is assigned are recorded with status "failed"
// before the coded error is returned.
func (o *Orchestrator) Fold(ctx context.Context, req FoldRequest) (*FoldResponse, error) {
	seq := apperr.CleanSequence(req.Sequence)
	if err := o.validate(seq, req); err != nil {
		return nil, err
	}

	jobID := uuid.NewString()
	dir := JobDir(o.Config.JobsDir, jobID)
	meta := &store.Meta{
		JobID:          jobID,
		Method:         req.Method,
		Threads:        req.Threads,
		SequenceHash:   HashSequence(seq),
		SequenceLength: len(seq),
		CreatedAt:      o.now().UTC(),
	}
	logger := o.Logger.With("job", jobID)

	observability.Job().OnFoldStart(ctx, jobID, req.Method, len(seq))
	logger.Info("fold started", "method", req.Method, "threads", req.Threads, "length", len(seq))
	start := time.Now()

	docPath := filepath.Join(dir, DocumentFile)
	err := o.run(ctx, logger, dir, seq, meta)
	if err == nil {
		meta.Status = store.StatusSucceeded
	} else {
		meta.Status = store.StatusFailed
		meta.ErrorCode = string(apperr.GetCode(err))
		meta.Error = apperr.UserMessage(err)
	}

	if serr := o.Store.Save(ctx, meta); serr != nil {
		logger.Warn("could not save job record", "err", serr)
		if err == nil {
			err = apperr.Wrap(apperr.ErrCodeInternal, serr, "save job record")
		}
	}

	elapsed := time.Since(start)
	observability.Job().OnFoldComplete(ctx, jobID, req.Method, meta.Dimension, elapsed, err)
	if err != nil {
		logger.Error("fold failed", "code", meta.ErrorCode, "err", err, "duration", elapsed.Round(time.Millisecond))
		return nil, err
	}
	logger.Info("fold finished", "dimension", meta.Dimension, "cached", meta.Cached,
		"duration", elapsed.Round(time.Millisecond))

	return &FoldResponse{
		JobID:   jobID,
		Method:  req.Method,
		Threads: req.Threads,
		Files:   Files{JSON: docPath},
		Meta:    meta,
	}, nil
}

func (o *Orchestrator) validate(seq string, req FoldRequest) error {
	if err := apperr.ValidateSequence(seq, o.Config.MinSequence, o.Config.MaxN); err != nil {
		return err
	}
	if err := apperr.ValidateMethod(req.Method, o.Config.AllowedMethods); err != nil {
		return err
	}
	return apperr.ValidateThreads(req.Threads, o.Config.MaxThreads)
}

// run produces S.json in dir and fills in meta.
func (o *Orchestrator) run(ctx context.Context, logger *log.Logger, dir, seq string, meta *store.Meta) error {
	fastaPath := filepath.Join(dir, InputFile)
	if err := WriteText(fastaPath, fasta(seq)); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "prepare job directory")
	}

	key := o.Keyer.FoldKey(meta.SequenceHash, meta.Method, meta.Threads)
	if entry, ok := o.lookup(ctx, logger, key); ok {
		doc, err := normalize.ReadDocument(bytes.NewReader(entry.Document))
		if err == nil {
			meta.Cached = true
			meta.Degenerate = entry.Degenerate
			meta.Dimension = doc.S.Dim()
			logger.Debug("reusing cached document", "dimension", meta.Dimension)
			return o.writeDocument(dir, entry.Document)
		}
		logger.Warn("discarding unreadable cache entry", "err", err)
	}

	out, err := o.Runner.Run(ctx, solver.Invocation{
		Dir:       dir,
		FastaPath: fastaPath,
		Method:    meta.Method,
		Threads:   meta.Threads,
	})
	if out != nil {
		meta.Stdout = out.Stdout
		meta.Stderr = out.Stderr
		meta.ReturnCode = out.ReturnCode
		meta.OutFile = out.OutFile
		meta.TimeMS = millis(out.Elapsed)
	}
	if err != nil {
		return err
	}
	if out.ReturnCode != 0 {
		logger.Warn("solver exited non-zero but produced output", "returncode", out.ReturnCode)
	}

	res, err := o.Normalize(ctx, out.Raw)
	if err != nil {
		return err
	}
	meta.Degenerate = res.Degenerate
	meta.Dimension = res.Stats.Dimension

	data, err := res.Document.Render()
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "render document")
	}
	if err := o.writeDocument(dir, data); err != nil {
		return err
	}
	o.remember(ctx, logger, key, cacheEntry{Document: data, Degenerate: res.Degenerate})
	return nil
}

func (o *Orchestrator) lookup(ctx context.Context, logger *log.Logger, key string) (cacheEntry, bool) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return cacheEntry{}, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn("discarding unreadable cache entry", "err", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return cacheEntry{}, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return entry, true
}

func (o *Orchestrator) remember(ctx context.Context, logger *log.Logger, key string, entry cacheEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	ttl := cache.TTLFold
	if o.Config.Cache.TTL.Duration > 0 {
		ttl = o.Config.Cache.TTL.Duration
	}
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (o *Orchestrator) writeDocument(dir string, data []byte) error {
	if err := os.WriteFile(filepath.Join(dir, DocumentFile), data, 0o644); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "write %s", DocumentFile)
	}
	return nil
}

// Normalize converts raw solver text into a document, logging a warning
// when the degenerate fallback block was used.
func (o *Orchestrator) Normalize(ctx context.Context, raw string) (*normalize.Result, error) {
	res, err := normalize.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if res.Degenerate {
		o.Logger.Warn("no row with at least two integers, used padded fallback block",
			"rows", res.Stats.Rows, "dimension", res.Stats.Dimension)
	}
	return res, nil
}

// Result returns the stored S.json bytes of a job.
func (o *Orchestrator) Result(ctx context.Context, jobID string) ([]byte, error) {
	if err := apperr.ValidateJobID(jobID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(JobDir(o.Config.JobsDir, jobID), DocumentFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.New(apperr.ErrCodeJobNotFound, "%s not found for job %s", DocumentFile, jobID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "read result")
	}
	return data, nil
}

// Meta returns the record of a job.
func (o *Orchestrator) Meta(ctx context.Context, jobID string) (*store.Meta, error) {
	if err := apperr.ValidateJobID(jobID); err != nil {
		return nil, err
	}
	meta, err := o.Store.Get(ctx, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.New(apperr.ErrCodeJobNotFound, "job %s not found", jobID)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "load job %s", jobID)
	}
	return meta, nil
}

// Jobs returns up to limit job records, newest first.
func (o *Orchestrator) Jobs(ctx context.Context, limit int) ([]*store.Meta, error) {
	metas, err := o.Store.List(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "list jobs")
	}
	return metas, nil
}

// Close releases the cache and the store.
func (o *Orchestrator) Close() error {
	var errs []error
	if o.Cache != nil {
		errs = append(errs, o.Cache.Close())
	}
	if o.Store != nil {
		errs = append(errs, o.Store.Close())
	}
	return errors.Join(errs...)
}

// millis converts d to milliseconds rounded to three decimals.
func millis(d time.Duration) float64 {
	return math.Round(float64(d)/float64(time.Microsecond)) / 1000
}
