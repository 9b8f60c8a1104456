package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// MetaFile is the name of the metadata file inside a job directory.
const MetaFile = "meta.json"

// FileStore keeps each record as meta.json in <baseDir>/<job id>/.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at the jobs directory.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, errors.New("jobs directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create jobs dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) metaPath(jobID string) string {
	return filepath.Join(s.baseDir, jobID, MetaFile)
}

func (s *FileStore) Save(ctx context.Context, meta *Meta) error {
	if meta == nil || meta.JobID == "" {
		return errors.New("meta without job id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	path := s.metaPath(meta.JobID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create job dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write meta file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, jobID string) (*Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.metaPath(jobID))
}

func (s *FileStore) read(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read meta file: %w", err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse meta: %w", err)
	}
	return &meta, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]*Meta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read jobs dir: %w", err)
	}

	var metas []*Meta
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.read(filepath.Join(s.baseDir, entry.Name(), MetaFile))
		if err != nil {
			continue
		}
		metas = append(metas, meta)
	}

	slices.SortFunc(metas, func(a, b *Meta) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(metas) > limit {
		metas = metas[:limit]
	}
	return metas, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the jobs directory.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
