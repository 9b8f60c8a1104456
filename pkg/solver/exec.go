package solver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nuss3d/foldserver/pkg/config"
	apperr "github.com/nuss3d/foldserver/pkg/errors"
	"github.com/nuss3d/foldserver/pkg/observability"
)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed.
const waitDelay = 2 * time.Second

// ExecRunner runs the solver binary as a child process.
type ExecRunner struct {
	Bin        string
	Timeout    time.Duration // zero disables the limit
	OutputGlob string
	Logger     *log.Logger
}

// NewExecRunner builds a runner from the solver settings in cfg.
func NewExecRunner(cfg *config.Config, logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ExecRunner{
		Bin:        cfg.SolverBin,
		Timeout:    cfg.SolverTimeout.Duration,
		OutputGlob: cfg.OutputGlob,
		Logger:     logger,
	}
}

func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Output, error) {
	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.Bin, inv.args()...)
	cmd.Dir = inv.Dir
	cmd.Env = append(os.Environ(), "OMP_NUM_THREADS="+strconv.Itoa(inv.Threads))
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger().Debug("solver started", "bin", r.Bin, "method", inv.Method, "threads", inv.Threads, "dir", inv.Dir)
	observability.Solver().OnSolverStart(ctx, inv.Method, inv.Threads)

	start := time.Now()
	runErr := cmd.Run()
	out := &Output{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	err := r.collect(ctx, runCtx, inv, out, runErr)
	observability.Solver().OnSolverComplete(ctx, inv.Method, out.ReturnCode, out.Elapsed, err)
	if err != nil {
		r.logger().Debug("solver failed", "method", inv.Method, "returncode", out.ReturnCode, "err", err)
		return out, err
	}
	r.logger().Debug("solver finished", "method", inv.Method, "returncode", out.ReturnCode,
		"out_file", filepath.Base(out.OutFile), "elapsed", out.Elapsed.Round(time.Millisecond))
	return out, nil
}

// collect classifies the process outcome and loads the output file.
func (r *ExecRunner) collect(ctx, runCtx context.Context, inv Invocation, out *Output, runErr error) error {
	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			return apperr.Wrap(apperr.ErrCodeInternal, ctx.Err(), "fold cancelled")
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			out.ReturnCode = -1
			return apperr.Wrap(apperr.ErrCodeSolverTimeout, runErr, "solver exceeded %s", r.Timeout)
		case errors.As(runErr, &exitErr):
			out.ReturnCode = exitErr.ExitCode()
		default:
			out.ReturnCode = -1
			return apperr.Wrap(apperr.ErrCodeSolverFailed, runErr, "start solver %s", r.Bin)
		}
	}

	path, err := FindOutput(inv.Dir, r.OutputGlob)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "match solver output")
	}
	if path == "" {
		if err := os.WriteFile(filepath.Join(inv.Dir, StdoutFile), []byte(out.Stdout), 0o644); err != nil {
			r.logger().Warn("could not save solver stdout", "err", err)
		}
		if out.ReturnCode != 0 {
			return apperr.New(apperr.ErrCodeSolverFailed, "solver exited with status %d", out.ReturnCode)
		}
		return apperr.New(apperr.ErrCodeSolverOutputMissing, "no %s in %s", r.OutputGlob, inv.Dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "read solver output")
	}
	out.OutFile = path
	out.Raw = string(data)
	return nil
}

func (r *ExecRunner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// FindOutput returns the first file in dir matching pattern in lexical
// order, or "" when nothing matches.
func FindOutput(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, nil
		}
	}
	return "", nil
}

var (
	_ Runner = (*ExecRunner)(nil)
	_ Runner = FuncRunner(nil)
)
