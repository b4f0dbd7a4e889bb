package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aloud/internal/assist"
	"github.com/abhisek/aloud/internal/catalog"
	"github.com/abhisek/aloud/internal/config"
	"github.com/abhisek/aloud/internal/llm"
	"github.com/abhisek/aloud/internal/logging"
	"github.com/abhisek/aloud/internal/store"
)

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("catalog"); v != "" {
		cfg.Catalog = v
	}
	if v, _ := flags.GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := flags.GetString("difficulty"); v != "" {
		d, err := catalog.ParseDifficulty(v)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Difficulty = d
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if cfg.LogFile != "" {
		if err := store.EnsureDir(cfg.LogFile); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	return logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Verbose: verbose,
	})
}

func loadCatalog(cfg config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.LoadOrDefault(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// completerDeps is the assistance backend chosen for a command together
// with whatever it holds open.
type completerDeps struct {
	completer assist.Completer
	source    string
	store     *store.Store
}

func (d *completerDeps) dispatcher(log *zap.Logger) *assist.Dispatcher {
	return assist.NewDispatcher(d.completer, log)
}

// Close releases the event store, if one was opened.
func (d *completerDeps) Close() {
	if d.store != nil {
		d.store.Close()
	}
}

// buildCompleter returns the HTTP client for the assistance server, or
// with --local an in-process provider whose calls are recorded in the
// event store. Local replies are cached in memory for the process.
func buildCompleter(ctx context.Context, cmd *cobra.Command, cfg config.Config, log *zap.Logger) (*completerDeps, error) {
	local, _ := cmd.Flags().GetBool("local")
	if !local {
		return &completerDeps{
			completer: assist.NewHTTPClient(cfg.APIURL, nil),
			source:    cfg.APIURL,
		}, nil
	}

	provider, llmCfg, st, err := openProvider(ctx, cmd, cfg, log)
	if err != nil {
		return nil, err
	}
	completer := assist.NewCachedCompleter(
		assist.NewProviderCompleter(provider, llmCfg.Timeout),
		assist.NewMemoryCache(), cfg.CacheTTL, log)

	return &completerDeps{completer: completer, source: "local:" + provider.ModelID(), store: st}, nil
}

// openProvider opens the event store and builds the configured LLM
// provider on top of it. A store that fails to open only disables event
// recording.
func openProvider(ctx context.Context, cmd *cobra.Command, cfg config.Config, log *zap.Logger) (llm.Provider, llm.Config, *store.Store, error) {
	llmCfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, llm.Config{}, nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	var repo store.EventRepo
	var st *store.Store
	dbPath, err := resolveDBPath(cmd, cfg)
	if err == nil {
		st, err = store.Open(dbPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Event store unavailable:", err)
		fmt.Fprintln(os.Stderr, "LLM calls will not be recorded.")
		st = nil
	} else {
		repo = st.EventRepo()
	}

	provider, err := llm.NewProvider(ctx, llmCfg, repo, log)
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, llm.Config{}, nil, err
	}
	return provider, llmCfg, st, nil
}
