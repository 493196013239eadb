// Package cli implements the questgraph command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/buildinfo"
	"github.com/matzehuels/questgraph/pkg/cache"
	"github.com/matzehuels/questgraph/pkg/config"
	"github.com/matzehuels/questgraph/pkg/httputil"
	"github.com/matzehuels/questgraph/pkg/observability"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/progress/mongo"
	"github.com/matzehuels/questgraph/pkg/progress/postgres"
	"github.com/matzehuels/questgraph/pkg/quest"
)

const appName = config.AppName

// questURLTTL is how long a downloaded quest file is used before it is
// revalidated.
const questURLTTL = time.Hour

// annotationSkipConfig marks commands that must run without a valid config
// file, such as "config init".
const annotationSkipConfig = "questgraph/skip-config"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags
	configPath   string
	questsPath   string
	progressPath string

	cfg config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "questgraph lays out quest dependency graphs",
		Long: `questgraph reads a list of quests with their prerequisites, arranges them
into columns by dependency depth and renders the result as SVG, DOT, JSON or
PNG. It also tracks which quests you have completed.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationSkipConfig] != "" {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/questgraph/config.toml)")
	pf.StringVar(&c.questsPath, "quests", "", "quest data file (overrides config)")
	pf.StringVar(&c.progressPath, "progress", "", "progress file for the file backend (overrides config)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.doneCommand())
	root.AddCommand(c.undoCommand())
	root.AddCommand(c.toggleCommand())
	root.AddCommand(c.trackCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies the global flag overrides.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.questsPath != "" {
		cfg.Quests = c.questsPath
	}
	if c.progressPath != "" {
		cfg.Progress.Backend = config.BackendFile
		cfg.Progress.Path = c.progressPath
	}
	c.cfg = cfg
	observability.NewLogHooks(c.Logger).Register()
	c.Logger.Debug("loaded config", "quests", cfg.Quests, "progress", cfg.Progress.Backend, "cache", cfg.Cache.Backend)
	return nil
}

// questsFile returns the quest file to read: the positional argument if
// given, otherwise the configured path.
func (c *CLI) questsFile(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.cfg.Quests
}

// loadRecords reads the quest file or URL.
func (c *CLI) loadRecords(ctx context.Context, args []string) ([]quest.Record, error) {
	records, _, err := c.plainRunner().Load(ctx, pipeline.Options{QuestsPath: c.questsFile(args)})
	return records, err
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, "v"+buildinfo.Version+":"), c.Logger)
	r.Fetcher = c.newFetcher(noCache)
	if ttl := time.Duration(c.cfg.Cache.TTL); ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

// plainRunner is an uncached runner for commands that only load and build.
func (c *CLI) plainRunner() *pipeline.Runner {
	r := pipeline.NewRunner(nil, nil, c.Logger)
	r.Fetcher = c.newFetcher(false)
	return r
}

// newFetcher returns the downloader for quest URLs. Downloads are cached
// under the cache directory unless caching is off.
func (c *CLI) newFetcher(noCache bool) *httputil.Fetcher {
	var hc *httputil.Cache
	if !noCache && c.cfg.Cache.Backend != config.BackendNone {
		if dir, err := c.cacheDir(); err == nil {
			hc, err = httputil.NewCache(filepath.Join(dir, "http"), questURLTTL)
			if err != nil {
				c.Logger.Debug("http cache unavailable", "error", err)
			}
		}
	}
	f := httputil.NewFetcher(hc)
	f.UserAgent = buildinfo.UserAgent()
	return f
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
			Prefix:   appName + ":",
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "addr", c.cfg.Cache.RedisAddr, "error", err)
			return cache.NewNullCache(), nil
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Progress Store Factory
// =============================================================================

// openStore opens the configured progress backend.
func (c *CLI) openStore(ctx context.Context) (progress.Store, error) {
	p := c.cfg.Progress
	switch p.Backend {
	case config.BackendFile, "":
		return progress.NewFileStore(p.Path), nil
	case config.BackendPostgres:
		s, err := postgres.Open(ctx, p.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres progress store: %w", err)
		}
		return s, nil
	case config.BackendMongo:
		s, err := mongo.Open(ctx, p.DSN, p.Database)
		if err != nil {
			return nil, fmt.Errorf("open mongo progress store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", progress.ErrUnknownBackend, p.Backend)
	}
}

// loadCompleted opens the store, reads the completion set and closes it.
func (c *CLI) loadCompleted(ctx context.Context) (progress.Set, error) {
	store, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load(ctx)
}
