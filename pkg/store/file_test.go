package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newMeta(id string, created time.Time) *Meta {
	return &Meta{
		JobID:     id,
		Method:    "oryg",
		Threads:   2,
		Status:    StatusSucceeded,
		Dimension: 12,
		CreatedAt: created,
	}
}

func TestFileStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	meta := newMeta("job-1", time.Now().UTC().Truncate(time.Second))
	if err := s.Save(ctx, meta); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "job-1", MetaFile)); err != nil {
		t.Errorf("meta.json not written: %v", err)
	}

	got, err := s.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Method != "oryg" || got.Dimension != 12 || !got.CreatedAt.Equal(meta.CreatedAt) {
		t.Errorf("Get = %+v, want %+v", got, meta)
	}
	if !got.Succeeded() {
		t.Error("Succeeded() = false, want true")
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestFileStoreSaveRequiresID(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	if err := s.Save(context.Background(), &Meta{}); err == nil {
		t.Error("Save without job id should fail")
	}
	if err := s.Save(context.Background(), nil); err == nil {
		t.Error("Save(nil) should fail")
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, _ := NewFileStore(dir)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, newMeta(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}
	// directories without meta and stray files are skipped
	if err := os.Mkdir(filepath.Join(dir, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d records, want 3", len(all))
	}
	if all[0].JobID != "c" || all[2].JobID != "a" {
		t.Errorf("List order = %s,%s,%s; want c,b,a", all[0].JobID, all[1].JobID, all[2].JobID)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d records", len(limited))
	}
}

func TestMirror(t *testing.T) {
	ctx := context.Background()
	primary, _ := NewFileStore(t.TempDir())
	secondary, _ := NewFileStore(t.TempDir())
	m := NewMirror(primary, secondary)

	if err := m.Save(ctx, newMeta("job-1", time.Now().UTC())); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	for name, s := range map[string]Store{"primary": primary, "secondary": secondary} {
		if _, err := s.Get(ctx, "job-1"); err != nil {
			t.Errorf("%s Get error: %v", name, err)
		}
	}

	list, err := m.List(ctx, 0)
	if err != nil || len(list) != 1 {
		t.Errorf("List = %v, %v", list, err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close error: %v", err)
	}
}
