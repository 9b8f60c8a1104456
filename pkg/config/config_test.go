package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/nuss3d/foldserver/pkg/errors"
)

func TestDefaultAt(t *testing.T) {
	cfg := DefaultAt("/srv/fold")

	assert.Equal(t, "/srv/fold/nuss3d/build/nuss3d", cfg.SolverBin)
	assert.Equal(t, "/srv/fold/app/runtime/jobs", cfg.JobsDir)
	assert.Equal(t, "/srv/fold/app/runtime/cache", cfg.CacheDir)
	assert.Equal(t, DefaultMaxN, cfg.MaxN)
	assert.Equal(t, DefaultSolverTimeout, cfg.SolverTimeout.Duration)
	assert.Equal(t, []string{"oryg", "tstile", "tilecorr", "pluto", "3D"}, cfg.AllowedMethods)
	assert.Equal(t, "*.out.txt", cfg.OutputGlob)
	require.NoError(t, cfg.Validate())
}

func TestDefaultMethodsNotShared(t *testing.T) {
	cfg := DefaultAt("/tmp")
	cfg.AllowedMethods[0] = "changed"
	assert.Equal(t, "oryg", DefaultMethods[0])
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foldserver.toml")
	content := `
solver_bin = "/opt/nuss3d/bin/nuss3d"
max_n = 1200
allowed_methods = ["oryg", "pluto"]
solver_timeout = "90s"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "1h"

[store]
backend = "file"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := DefaultAt(dir)
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "/opt/nuss3d/bin/nuss3d", cfg.SolverBin)
	assert.Equal(t, 1200, cfg.MaxN)
	assert.Equal(t, []string{"oryg", "pluto"}, cfg.AllowedMethods)
	assert.Equal(t, 90*time.Second, cfg.SolverTimeout.Duration)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
	// untouched keys keep defaults
	assert.Equal(t, filepath.Join(dir, "app", "runtime", "jobs"), cfg.JobsDir)
	assert.Equal(t, DefaultAddr, cfg.Addr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.toml")
		require.NoError(t, os.WriteFile(path, []byte("max_nn = 3\n"), 0o644))
		err := DefaultAt(dir).LoadFile(path)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.ErrCodeInvalidConfig))
		assert.Contains(t, err.Error(), "max_nn")
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(dir, "duration.toml")
		require.NoError(t, os.WriteFile(path, []byte(`solver_timeout = "soon"`+"\n"), 0o644))
		err := DefaultAt(dir).LoadFile(path)
		assert.True(t, apperr.Is(err, apperr.ErrCodeInvalidConfig))
	})

	t.Run("missing file", func(t *testing.T) {
		err := DefaultAt(dir).LoadFile(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"FOLDSERVER_SOLVER_BIN":      "/usr/local/bin/nuss3d",
		"FOLDSERVER_MAX_N":           "500",
		"FOLDSERVER_MAX_THREADS":     "not-a-number",
		"FOLDSERVER_SOLVER_TIMEOUT":  "2m",
		"FOLDSERVER_ALLOWED_METHODS": "oryg, 3D ,",
		"FOLDSERVER_CACHE_BACKEND":   "none",
		"FOLDSERVER_MONGO_URI":       "mongodb://db:27017",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := DefaultAt("/srv")
	cfg.applyEnv(lookup)

	assert.Equal(t, "/usr/local/bin/nuss3d", cfg.SolverBin)
	assert.Equal(t, 500, cfg.MaxN)
	assert.Equal(t, DefaultMaxThreads, cfg.MaxThreads)
	assert.Equal(t, 2*time.Minute, cfg.SolverTimeout.Duration)
	assert.Equal(t, []string{"oryg", "3D"}, cfg.AllowedMethods)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
}

func TestLoadProjectRoot(t *testing.T) {
	for _, key := range []string{"PROJECT_ROOT", "SOLVER_BIN", "JOBS_DIR", "CACHE_DIR"} {
		t.Setenv(envPrefix+key, "")
	}

	t.Run("file", func(t *testing.T) {
		root := t.TempDir()
		solver := filepath.Join(t.TempDir(), "nuss3d")
		path := filepath.Join(t.TempDir(), "foldserver.toml")
		content := fmt.Sprintf("project_root = %q\nsolver_bin = %q\njobs_dir = \"data/jobs\"\n", root, solver)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, root, cfg.ProjectRoot)
		// absolute paths are kept, relative ones join the root
		assert.Equal(t, solver, cfg.SolverBin)
		assert.Equal(t, filepath.Join(root, "data", "jobs"), cfg.JobsDir)
		// untouched defaults follow the root
		assert.Equal(t, filepath.Join(root, "app", "runtime", "cache"), cfg.CacheDir)
	})

	t.Run("env", func(t *testing.T) {
		root := t.TempDir()
		t.Setenv(envPrefix+"PROJECT_ROOT", root)

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, DefaultAt(root).SolverBin, cfg.SolverBin)
		assert.Equal(t, DefaultAt(root).JobsDir, cfg.JobsDir)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty solver", func(c *Config) { c.SolverBin = "" }},
		{"empty jobs dir", func(c *Config) { c.JobsDir = "" }},
		{"zero max_n", func(c *Config) { c.MaxN = 0 }},
		{"min above max", func(c *Config) { c.MinSequence = c.MaxN + 1 }},
		{"zero threads", func(c *Config) { c.MaxThreads = 0 }},
		{"no methods", func(c *Config) { c.AllowedMethods = nil }},
		{"zero timeout", func(c *Config) { c.SolverTimeout = Duration{} }},
		{"bad glob", func(c *Config) { c.OutputGlob = "[" }},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis }},
		{"file cache without dir", func(c *Config) { c.CacheDir = "" }},
		{"unknown store", func(c *Config) { c.Store.Backend = "sqlite" }},
		{"mongo without uri", func(c *Config) { c.Store.Backend = StoreMongo }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAt("/srv")
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.ErrCodeInvalidConfig))
		})
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	cfg := DefaultAt("/srv")
	cfg.Cache.Backend = CacheNone

	data, err := cfg.TOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), `solver_timeout = "10m0s"`)

	var decoded Config
	_, err = toml.Decode(string(data), &decoded)
	require.NoError(t, err)
	assert.Equal(t, *cfg, decoded)
}
