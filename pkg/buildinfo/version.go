// Package buildinfo carries the build version reported by the CLI, the
// health endpoint and the API client.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/nuss3d/foldserver/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/nuss3d/foldserver/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/nuss3d/foldserver/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// UserAgent identifies foldserver clients in HTTP requests,
// e.g. "foldserver/v1.2.3 (abc1234)".
func UserAgent() string {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("foldserver/%s (%s)", Version, commit)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
