package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/huangsam/graveyard/internal/contract"
	"github.com/huangsam/graveyard/internal/httpserver"
	"github.com/huangsam/graveyard/internal/httpserver/deps"
	"github.com/huangsam/graveyard/internal/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// serveCacheTTL is how long cached API responses stay fresh.
const serveCacheTTL = 30 * time.Second

// serveCmd starts the scan history API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scan history API server",
	Long: `Serve stored scan history over a JSON API.

Endpoints include scan listings, per-scan detail, scan comparisons,
per-service trends, cost analysis and a fleet summary, all under /api.
Point dashboards or internal tooling at it instead of shelling out to
the CLI.

If the requested port is taken, the next free port is used. An optional
Redis instance caches API responses.

Examples:
  # Serve on the default host and port
  graveyard serve

  # Bind somewhere specific
  graveyard serve --host 0.0.0.0 --port 8080

  # Cache responses in Redis
  graveyard serve --cache-url redis://localhost:6379/0`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runServe(rootCtx); err != nil {
			contract.LogFatal("Server failed", err)
		}
	},
}

// runServe wires the server dependencies and blocks until the process is
// interrupted or the listener fails.
func runServe(ctx context.Context) error {
	log := logger.New("info", true)

	var cache *redis.Client
	if cfg.CacheURL != "" {
		opts, err := redis.ParseURL(cfg.CacheURL)
		if err != nil {
			return fmt.Errorf("invalid cache URL: %w", err)
		}
		cache = redis.NewClient(opts)
	}

	port, err := httpserver.FindAvailablePort(cfg.ServeHost, cfg.ServePort, 10)
	if err != nil {
		return err
	}
	switch {
	case port == cfg.ServePort:
	case port < cfg.ServePort+10:
		fmt.Printf("ℹ️  Port %d is in use, using port %d instead\n", cfg.ServePort, port)
	default:
		fmt.Printf("ℹ️  Ports %d-%d are in use\n", cfg.ServePort, cfg.ServePort+9)
		fmt.Printf("   Using OS-assigned port %d\n", port)
	}

	addr := net.JoinHostPort(cfg.ServeHost, strconv.Itoa(port))
	srv := httpserver.New(addr, deps.Deps{
		Logger:      log,
		StartTime:   time.Now(),
		Version:     version,
		Scans:       historyManager.GetScanStore(),
		RedisClient: cache,
		CacheTTL:    serveCacheTTL,
	})

	fmt.Println("\n🚀 Starting graveyard dashboard...")
	fmt.Printf("🔌 API: http://%s/api\n", addr)
	fmt.Println("\nPress Ctrl+C to stop")
	fmt.Println()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
