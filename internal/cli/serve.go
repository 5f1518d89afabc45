package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/autotype/internal/metrics"
	"github.com/matzehuels/autotype/internal/server"
	"github.com/matzehuels/autotype/pkg/animation"
	"github.com/matzehuels/autotype/pkg/cache"
	"github.com/matzehuels/autotype/pkg/config"
	"github.com/matzehuels/autotype/pkg/pipeline"
	"github.com/matzehuels/autotype/pkg/publish"
	"github.com/matzehuels/autotype/pkg/publish/redis"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve [pair]",
		Short: "Run the animation headless and stream snapshots over HTTP",
		Long: `Run the animation headless and stream snapshots over HTTP.

Endpoints:
  GET /health           liveness
  GET /snapshot         latest snapshot as JSON
  GET /snapshot/render  latest snapshot rendered (?format=terminal|markdown|json)
  GET /events           server-sent events, one "snapshot" event per snapshot
  GET /metrics          Prometheus metrics

With a Redis address (--redis or [redis] addr) every snapshot is also stored
at the configured key and published on the configured channel.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if redisAddr != "" {
				cfg.Redis.Addr = redisAddr
			}
			return c.runServe(cmd.Context(), cfg, args, !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "mirror snapshots to the Redis server at this address")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not serve /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config, args []string, withMetrics bool) error {
	logger := loggerFromContext(ctx)

	pair, source, err := loadPair(ctx, args)
	if err != nil {
		return err
	}

	hub := publish.NewHub(publish.WithHubLogger(logger))
	sinks := publish.Multi{hub}

	if cfg.RedisEnabled() {
		rp, err := connectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer rp.Close()
		sinks = append(sinks, rp)
	}

	runner := pipeline.NewRunner(cache.NewMemoryCache(0), newKeyer(), logger)
	defer runner.Close()
	opts := []server.Option{server.WithRunner(runner), server.WithLogger(logger)}
	if withMetrics {
		m := metrics.New()
		m.Install()
		opts = append(opts, server.WithMetrics(m.Handler()))
	}
	srv := server.New(hub, opts...)

	anim := animation.New(pair.Start, pair.Target, cfg.AnimationConfig(),
		animation.WithLogger(logger),
		animation.WithFiller(animation.NewFiller(pair.Autofill...)),
	)

	printInfo("Serving %s on %s", StyleValue.Render(source), StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
	printDetail("Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return anim.Run(ctx, sinks) })
	g.Go(func() error { return srv.ListenAndServe(ctx, cfg.Server.Addr) })
	return g.Wait()
}

// connectRedis creates the Redis publisher and waits for the server to
// answer, retrying with backoff.
func connectRedis(ctx context.Context, cfg config.Redis, logger *log.Logger) (*redis.Publisher, error) {
	rp := redis.New(&backend.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	},
		redis.WithKey(cfg.Key),
		redis.WithChannel(cfg.Channel),
		redis.WithTTL(cfg.TTL.Duration),
		redis.WithLogger(logger),
	)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Connecting to Redis at %s...", cfg.Addr))
	spinner.Start()
	attempt := 0
	err := cache.RetryWithBackoff(ctx, func() error {
		attempt++
		if attempt > 1 {
			spinner.SetMessage(fmt.Sprintf("Connecting to Redis at %s (attempt %d)...", cfg.Addr, attempt))
		}
		if err := rp.Ping(ctx); err != nil {
			logger.Debug("redis ping failed", "attempt", attempt, "error", err)
			return cache.Retryable(fmt.Errorf("%w: %w", cache.ErrNetwork, err))
		}
		return nil
	})
	if err != nil {
		spinner.StopWithError("Redis is not reachable")
		rp.Close()
		return nil, err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Mirroring snapshots to Redis key %s", rp.Key()))
	return rp, nil
}

// displayAddr turns a listen address into one a browser can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
