package cmd

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/aloud/internal/assist"
	"github.com/abhisek/aloud/internal/config"
	"github.com/abhisek/aloud/internal/server"
)

const redisHealthInterval = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assistance HTTP server",
	Long: "Serve POST /api/solve and POST /api/assist backed by the configured LLM provider.\n" +
		"Replies are cached in Redis when ALOUD_REDIS_ADDR is set, otherwise in memory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("host"); v != "" {
			cfg.Host = v
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}

		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		provider, llmCfg, st, err := openProvider(ctx, cmd, cfg, log)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		cache, rdb := newCache(ctx, cfg, log)
		if rdb != nil {
			defer rdb.Close()
		}

		completer := assist.NewCachedCompleter(
			assist.NewProviderCompleter(provider, llmCfg.Timeout),
			cache, cfg.CacheTTL, log)
		srv := server.New(completer, log)

		log.Info("starting assistance server",
			zap.String("addr", cfg.Addr()),
			zap.String("provider", llmCfg.Provider),
			zap.String("model", provider.ModelID()))

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(gctx, cfg.Addr())
		})
		if rdb != nil {
			g.Go(func() error {
				watchRedis(gctx, rdb, log)
				return nil
			})
		}
		return g.Wait()
	},
}

// newCache connects to Redis when configured. An unreachable Redis falls
// back to the in-memory cache.
func newCache(ctx context.Context, cfg config.Config, log *zap.Logger) (assist.Cache, *redis.Client) {
	if cfg.RedisAddr == "" {
		return assist.NewMemoryCache(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, using in-memory cache",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		client.Close()
		return assist.NewMemoryCache(), nil
	}

	log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	return assist.NewRedisCache(client), client
}

// watchRedis logs when the cache backend stops or resumes answering.
func watchRedis(ctx context.Context, client *redis.Client, log *zap.Logger) {
	ticker := time.NewTicker(redisHealthInterval)
	defer ticker.Stop()

	healthy := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := client.Ping(ctx).Err()
			switch {
			case err != nil && healthy:
				log.Warn("redis ping failed", zap.Error(err))
			case err == nil && !healthy:
				log.Info("redis reachable again")
			}
			healthy = err == nil
		}
	}
}

func init() {
	serveCmd.Flags().String("host", "", "Listen host (overrides ALOUD_HOST)")
	serveCmd.Flags().IntP("port", "p", 3000, "Listen port (overrides ALOUD_PORT and PORT)")
}
