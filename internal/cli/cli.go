package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nuss3d/foldserver/pkg/config"
	apperr "github.com/nuss3d/foldserver/pkg/errors"
	"github.com/nuss3d/foldserver/pkg/job"
)

const (
	// appName is the application name used for directories and display.
	appName = "foldserver"

	// configEnv names a config file when --config is not given.
	configEnv = "FOLDSERVER_CONFIG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
}

// New creates a CLI whose logger writes to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves the config file (flag, then $FOLDSERVER_CONFIG, then
// the user config file if present) and returns the validated configuration.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		if p, err := userConfigPath(); err == nil {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		c.Logger.Debug("loading config", "path", path)
	}
	return config.Load(path)
}

// openOrchestrator loads the configuration and opens the job backends.
func (c *CLI) openOrchestrator(ctx context.Context) (*config.Config, *job.Orchestrator, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	orch, err := job.Open(ctx, cfg, loggerFromContext(ctx))
	if err != nil {
		return nil, nil, err
	}
	return cfg, orch, nil
}

// userConfigPath returns the config file path using the XDG standard
// (~/.config/foldserver/config.toml).
func userConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// readInput reads a file argument, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "%s does not exist", path)
	}
	return data, err
}
