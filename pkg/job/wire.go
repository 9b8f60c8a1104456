package job

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nuss3d/foldserver/pkg/cache"
	"github.com/nuss3d/foldserver/pkg/config"
	"github.com/nuss3d/foldserver/pkg/solver"
	"github.com/nuss3d/foldserver/pkg/store"
)

// Open builds an orchestrator with the cache, store and solver selected by
// cfg. The caller must Close it.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Orchestrator, error) {
	if logger == nil {
		logger = log.Default()
	}

	st, err := NewStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c, err := NewCache(ctx, cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	logger.Debug("job backends ready", "store", cfg.Store.Backend, "cache", cfg.Cache.Backend, "jobs_dir", cfg.JobsDir)
	return NewOrchestrator(cfg, solver.NewExecRunner(cfg, logger), st, c, SolverKeyer(cfg), logger), nil
}

// NewStore opens the job record backend named by cfg.Store.Backend.
// With MongoDB, records are mirrored to meta.json in each job directory.
func NewStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	files, err := store.NewFileStore(cfg.JobsDir)
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case config.StoreFile, "":
		return files, nil
	case config.StoreMongo:
		mongo, err := store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
		if err != nil {
			return nil, err
		}
		return store.NewMirror(mongo, files), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// NewCache opens the result cache named by cfg.Cache.Backend.
func NewCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheFile, "":
		return cache.NewFileCache(cfg.CacheDir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	case config.CacheNone:
		return cache.NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

// SolverKeyer scopes cache keys by solver binary name so that caches
// shared between deployments do not mix results of different builds.
func SolverKeyer(cfg *config.Config) cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), filepath.Base(cfg.SolverBin)+":")
}
