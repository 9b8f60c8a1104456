package job

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nuss3d/foldserver/pkg/cache"
)

// JobDir returns the directory of job id under the jobs directory.
func JobDir(jobsDir, id string) string {
	return filepath.Join(jobsDir, id)
}

// WriteText writes text to path, creating parent directories as needed.
func WriteText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, []byte(text), 0o644)
}

// HashSequence returns the hex SHA-256 of a cleaned sequence.
func HashSequence(seq string) string {
	return cache.Hash([]byte(seq))
}

// fasta renders the single-record FASTA input the solver expects.
func fasta(seq string) string {
	return ">job\n" + seq + "\n"
}
