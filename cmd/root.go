package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/aloud/internal/app"
	"github.com/abhisek/aloud/internal/config"
	"github.com/abhisek/aloud/internal/screens/drill"
	"github.com/abhisek/aloud/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "aloud",
	Short: "Timed think-aloud coding practice",
	Long: "Aloud runs a timed interview-practice session in the terminal: seven tasks,\n" +
		"each done out loud, with on-demand AI assistance for the current challenge.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides ALOUD_DB env var)")
	pf.String("catalog", "", "YAML task catalog (overrides ALOUD_CATALOG env var)")
	pf.String("difficulty", "", "Session difficulty: easy, medium or hard")
	pf.String("api-url", "", "Assistance server base URL (overrides ALOUD_API_URL env var)")
	pf.Bool("local", false, "Call the LLM provider in-process instead of the assistance server")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Write logs to this file")
	pf.BoolP("verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// runTUI builds the drill screen and launches the terminal UI. Logs go to
// a file so they never draw over the screen.
func runTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.LogFile == "" {
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.LogFile = filepath.Join(filepath.Dir(dbPath), "aloud.log")
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("session", uuid.NewString()))

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	deps, err := buildCompleter(ctx, cmd, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	screen, err := drill.New(cat, cfg.Difficulty, deps.dispatcher(log), log)
	if err != nil {
		return err
	}

	log.Info("starting drill",
		zap.String("difficulty", string(cfg.Difficulty)),
		zap.String("assist", deps.source))
	return app.Run(ctx, screen)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ALOUD_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
