package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/nuss3d/foldserver/pkg/store"
)

func TestJobsTable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	metas := []*store.Meta{
		{JobID: "job-ok", Method: "oryg", Threads: 4, Status: store.StatusSucceeded, Dimension: 120, CreatedAt: now.Add(-5 * time.Minute)},
		{JobID: "job-bad", Method: "pluto", Threads: 2, Status: store.StatusFailed, ErrorCode: "SOLVER_TIMEOUT", CreatedAt: now.Add(-30 * time.Hour)},
	}

	out := jobsTable(metas, now)
	for _, want := range []string{"job-ok", "oryg", "120", "5m ago", "job-bad", "SOLVER_TIMEOUT", "1d ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{3 * time.Minute, "3m ago"},
		{5 * time.Hour, "5h ago"},
		{72 * time.Hour, "3d ago"},
		{30 * 24 * time.Hour, "Jan 30, 2026"},
	}
	for _, tt := range tests {
		if got := relativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("relativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
