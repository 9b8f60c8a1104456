package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperr "github.com/nuss3d/foldserver/pkg/errors"
)

func writeSolverOutput(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oryg.out.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNormalizeCommandStdout(t *testing.T) {
	in := writeSolverOutput(t, "nuss3d v2\nN=3\n1 2 3\n4 5 6\n7 8 9\ntime: 12ms\n")

	out, err := execute(t, New(io.Discard, LogInfo), "normalize", in)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got, want := strings.TrimSpace(out), `{"S":[[1,2,3],[0,4,5],[0,0,7]]}`; got != want {
		t.Errorf("normalize = %s, want %s", got, want)
	}
}

func TestNormalizeCommandOutputFile(t *testing.T) {
	in := writeSolverOutput(t, "10 20\n30 40\n")
	dst := filepath.Join(t.TempDir(), "S.json")

	out, err := execute(t, New(io.Discard, LogInfo), "normalize", in, "-o", dst)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty with -o, got %q", out)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if got, want := string(data), `{"S":[[10,20],[0,30]]}`; got != want {
		t.Errorf("document = %s, want %s", got, want)
	}
}

func TestNormalizeCommandNoIntegers(t *testing.T) {
	in := writeSolverOutput(t, "solver crashed\nno numbers here\n")

	_, err := execute(t, New(io.Discard, LogInfo), "normalize", in)
	if !apperr.Is(err, apperr.ErrCodeParse) {
		t.Errorf("error = %v, want %s", err, apperr.ErrCodeParse)
	}
}

func TestNormalizeCommandMissingFile(t *testing.T) {
	_, err := execute(t, New(io.Discard, LogInfo), "normalize", filepath.Join(t.TempDir(), "missing.txt"))
	if !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Fatalf("normalize error = %v, want %s", err, apperr.ErrCodeFileNotFound)
	}
}
