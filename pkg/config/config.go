// Package config holds the explicit configuration value for foldserver.
//
// A Config is built from defaults, optionally overlaid by a TOML file and
// then by FOLDSERVER_* environment variables:
//
//	cfg := config.Default()
//	if path != "" {
//	    if err := cfg.LoadFile(path); err != nil {
//	        return err
//	    }
//	}
//	cfg.ApplyEnv()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// [Load] does the same and additionally anchors the solver and runtime
// paths at project_root, so a file that only sets project_root moves all
// of them.
//
// The value is passed to constructors; nothing in foldserver reads
// configuration from package-level state.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperr "github.com/nuss3d/foldserver/pkg/errors"
)

// Default values, matching the layout of a nuss3d checkout.
const (
	DefaultMaxN          = 6000
	DefaultMinSequence   = 10
	DefaultMaxThreads    = 64
	DefaultSolverTimeout = 600 * time.Second
	DefaultOutputGlob    = "*.out.txt"
	DefaultAddr          = ":8000"
	DefaultCacheTTL      = 7 * 24 * time.Hour
	DefaultDatabase      = "foldserver"
)

// DefaultMethods lists the solver methods accepted by default.
var DefaultMethods = []string{"oryg", "tstile", "tilecorr", "pluto", "3D"}

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
)

// Duration wraps time.Duration so it reads and writes as a TOML string
// such as "10m" or "600s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// CacheConfig selects and configures the fold result cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// StoreConfig selects and configures the job metadata store.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Config is the complete service configuration.
type Config struct {
	ProjectRoot string `toml:"project_root"`
	SolverBin   string `toml:"solver_bin"`
	JobsDir     string `toml:"jobs_dir"`
	CacheDir    string `toml:"cache_dir"`

	MaxN           int      `toml:"max_n"`
	MinSequence    int      `toml:"min_sequence"`
	MaxThreads     int      `toml:"max_threads"`
	AllowedMethods []string `toml:"allowed_methods"`

	SolverTimeout Duration `toml:"solver_timeout"`
	OutputGlob    string   `toml:"output_glob"`

	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// Default returns the configuration rooted at the current directory.
func Default() *Config {
	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return DefaultAt(root)
}

// DefaultAt returns the default configuration rooted at root.
func DefaultAt(root string) *Config {
	runtime := filepath.Join(root, "app", "runtime")
	return &Config{
		ProjectRoot:    root,
		SolverBin:      filepath.Join(root, "nuss3d", "build", "nuss3d"),
		JobsDir:        filepath.Join(runtime, "jobs"),
		CacheDir:       filepath.Join(runtime, "cache"),
		MaxN:           DefaultMaxN,
		MinSequence:    DefaultMinSequence,
		MaxThreads:     DefaultMaxThreads,
		AllowedMethods: slices.Clone(DefaultMethods),
		SolverTimeout:  Duration{DefaultSolverTimeout},
		OutputGlob:     DefaultOutputGlob,
		Addr:           DefaultAddr,
		CORSOrigins:    []string{"http://localhost:5173"},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{DefaultCacheTTL},
		},
		Store: StoreConfig{
			Backend:  StoreFile,
			Database: DefaultDatabase,
		},
	}
}

// LoadFile overlays the TOML file at path onto c. Keys absent from the
// file keep their current values. Unknown keys are rejected.
func (c *Config) LoadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperr.New(apperr.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Load returns the default configuration overlaid by the file at path (if
// not empty) and the environment, validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if err := cfg.resolvePaths(Default()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePaths anchors SolverBin, JobsDir and CacheDir at ProjectRoot.
// Paths still equal to their value in defaults follow the root, and
// relative paths are joined onto it.
func (c *Config) resolvePaths(defaults *Config) error {
	if c.ProjectRoot == "" {
		c.ProjectRoot = defaults.ProjectRoot
	}
	root, err := filepath.Abs(c.ProjectRoot)
	if err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "project_root %q", c.ProjectRoot)
	}
	c.ProjectRoot = root

	rooted := DefaultAt(root)
	resolve := func(dst *string, def, rootedDef string) {
		switch {
		case *dst == def:
			*dst = rootedDef
		case *dst != "" && !filepath.IsAbs(*dst):
			*dst = filepath.Join(root, *dst)
		}
	}
	resolve(&c.SolverBin, defaults.SolverBin, rooted.SolverBin)
	resolve(&c.JobsDir, defaults.JobsDir, rooted.JobsDir)
	resolve(&c.CacheDir, defaults.CacheDir, rooted.CacheDir)
	return nil
}

// envPrefix is the prefix of environment variables read by ApplyEnv.
const envPrefix = "FOLDSERVER_"

// ApplyEnv overrides fields from FOLDSERVER_* environment variables.
// Malformed numeric or duration values are ignored.
func (c *Config) ApplyEnv() {
	c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(envPrefix + key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	dur := func(key string, dst *Duration) {
		if v, ok := lookup(envPrefix + key); ok {
			if d, err := time.ParseDuration(v); err == nil {
				dst.Duration = d
			}
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = splitList(v)
		}
	}

	str("PROJECT_ROOT", &c.ProjectRoot)
	str("SOLVER_BIN", &c.SolverBin)
	str("JOBS_DIR", &c.JobsDir)
	str("CACHE_DIR", &c.CacheDir)
	num("MAX_N", &c.MaxN)
	num("MIN_SEQUENCE", &c.MinSequence)
	num("MAX_THREADS", &c.MaxThreads)
	list("ALLOWED_METHODS", &c.AllowedMethods)
	dur("SOLVER_TIMEOUT", &c.SolverTimeout)
	str("OUTPUT_GLOB", &c.OutputGlob)
	str("ADDR", &c.Addr)
	list("CORS_ORIGINS", &c.CORSOrigins)
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("REDIS_ADDR", &c.Cache.RedisAddr)
	dur("CACHE_TTL", &c.Cache.TTL)
	str("STORE_BACKEND", &c.Store.Backend)
	str("MONGO_URI", &c.Store.MongoURI)
	str("MONGO_DATABASE", &c.Store.Database)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperr.New(apperr.ErrCodeInvalidConfig, format, args...)
	}

	switch {
	case c.SolverBin == "":
		return invalid("solver_bin is required")
	case c.JobsDir == "":
		return invalid("jobs_dir is required")
	case c.MaxN <= 0:
		return invalid("max_n must be positive, got %d", c.MaxN)
	case c.MinSequence < 1:
		return invalid("min_sequence must be at least 1, got %d", c.MinSequence)
	case c.MinSequence > c.MaxN:
		return invalid("min_sequence (%d) exceeds max_n (%d)", c.MinSequence, c.MaxN)
	case c.MaxThreads < 1:
		return invalid("max_threads must be at least 1, got %d", c.MaxThreads)
	case len(c.AllowedMethods) == 0:
		return invalid("allowed_methods cannot be empty")
	case c.SolverTimeout.Duration <= 0:
		return invalid("solver_timeout must be positive")
	case c.OutputGlob == "":
		return invalid("output_glob is required")
	}
	if _, err := filepath.Match(c.OutputGlob, ""); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "output_glob %q", c.OutputGlob)
	}

	switch c.Cache.Backend {
	case CacheFile:
		if c.CacheDir == "" {
			return invalid("cache_dir is required for the file cache")
		}
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis cache")
		}
	case CacheNone:
	default:
		return invalid("unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case StoreFile:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return invalid("store.mongo_uri is required for the mongo store")
		}
		if c.Store.Database == "" {
			return invalid("store.database is required for the mongo store")
		}
	default:
		return invalid("unknown store backend %q (must be one of: file, mongo)", c.Store.Backend)
	}
	return nil
}

// TOML renders the configuration as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
