package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v1.2.3", "0123456789abcdef"
	if got, want := UserAgent(), "foldserver/v1.2.3 (0123456)"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}

	Commit = "none"
	if got, want := UserAgent(), "foldserver/v1.2.3 (none)"; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", tmpl)
	}
	if !strings.Contains(tmpl, "commit: "+Commit) {
		t.Errorf("Template() missing commit: %q", tmpl)
	}
}
