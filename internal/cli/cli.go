package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/glitcher/pkg/buildinfo"
	"github.com/matzehuels/glitcher/pkg/cache"
	"github.com/matzehuels/glitcher/pkg/config"
	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/observability"
	"github.com/matzehuels/glitcher/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName names the config and cache directories and the root command.
	appName = "glitcher"
)

// Levels main can pass to New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI
// =============================================================================

// CLI carries what every command shares: the logger.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level after flags are parsed.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the glitcher command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Glitcher animates glitch effects over still images",
		Long:         `Glitcher selects regions of an image, drags and twists them frame by frame and layers color and filter effects on top. Render animations to GIF or PNG, watch them live, or drive sessions over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.SetAll(observability.NewLogHooks(c.Logger))
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A non-empty redisAddr
// selects the shared Redis cache over the local file cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisAddr string) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache, redisAddr)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", redisAddr)
		return cache.Instrumented(rc, "redis"), nil
	}
	fc, err := openFileCache()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.Instrumented(fc, "file"), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir is glitcher's directory under the user cache dir
// ($XDG_CACHE_HOME, else ~/.cache on Linux).
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadConfig resolves the engine configuration for a command. Precedence,
// lowest first: defaults, the config file (explicit path, else ./glitcher.toml,
// else the user config), the --preset flag.
func (c *CLI) loadConfig(path, preset string) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if path == "" {
		if found, ok := config.Find(); ok {
			path = found
		}
	}
	if path != "" {
		res, err := config.Load(path)
		if err != nil {
			return engine.Config{}, err
		}
		for _, key := range res.Undecoded {
			c.Logger.Warn("unknown config key", "key", key, "file", path)
		}
		c.Logger.Debug("loaded config", "file", path, "preset", res.Preset)
		cfg = res.Config
	}
	if preset == "" {
		return cfg, nil
	}
	return cfg.WithPreset(preset)
}
