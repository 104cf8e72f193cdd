package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hedisam/tonrpc/api/jsonrpc"
	"github.com/hedisam/tonrpc/internal/cache"
	"github.com/hedisam/tonrpc/internal/cache/memdb"
	"github.com/hedisam/tonrpc/internal/cache/redisdb"
	"github.com/hedisam/tonrpc/internal/config"
	"github.com/hedisam/tonrpc/internal/custompromauto"
	"github.com/hedisam/tonrpc/internal/health"
	"github.com/hedisam/tonrpc/internal/ton"
)

func main() {
	logger := logrus.New()

	cmd := &cobra.Command{
		Use:           "tonrpc",
		Short:         "JSON-RPC gateway in front of a TON blockchain node",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			err = cfg.Validate()
			if err != nil {
				return err
			}
			return run(cmd.Context(), logger, cfg)
		},
	}
	config.RegisterFlags(cmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		logger.WithError(err).Error("Gateway failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *logrus.Logger, cfg *config.Config) error {
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	tonClient := ton.New(logger, httpClient, cfg.NodeAddr,
		ton.WithAPIKey(cfg.APIKey),
		ton.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
		ton.WithPageSize(cfg.PageSize),
		ton.WithMaxRetryElapsed(cfg.RetryMaxElapsed),
	)

	backend, closeBackend, err := newBackend(ctx, logger, cfg, tonClient)
	if err != nil {
		return err
	}
	defer closeBackend()

	rpcServer := jsonrpc.NewServer(logger, backend,
		jsonrpc.WithRequestTimeout(cfg.RequestTimeout),
		jsonrpc.WithMaxStreams(cfg.MaxStreams),
	)
	tracker := health.New(logger, cfg.MaxHeadStaleness)

	mux := http.NewServeMux()
	jsonrpc.Register(logger, mux, rpcServer, cfg.MaxBodyBytes)
	mux.Handle("GET /healthz", tracker.Handler())
	mux.Handle("GET /metrics", custompromauto.Handler())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tracker.Start(ctx, tonClient.Heads(ctx, cfg.HeadPollInterval))
		return nil
	})
	g.Go(func() error {
		return listenAndServe(ctx, logger, cfg.ServerAddr, mux)
	})

	return g.Wait()
}

// newBackend puts the configured cache in front of the client. The returned func
// releases whatever the cache holds.
func newBackend(ctx context.Context, logger *logrus.Logger, cfg *config.Config, client *ton.Client) (jsonrpc.Backend, func(), error) {
	switch cfg.Cache {
	case config.CacheMemory:
		logger.WithField("size", cfg.CacheMemSize).Info("Using in-memory cache")
		return cache.New(logger, client, memdb.New(memdb.WithMemSize(cfg.CacheMemSize))), func() {}, nil
	case config.CacheRedis:
		rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not set up redis cache: %w", err)
		}
		logger.WithField("addr", cfg.Redis.Addr).Info("Using redis cache")
		closeFn := func() {
			err := rdb.Close()
			if err != nil {
				logger.WithError(err).Error("Failed to close redis client")
			}
		}
		return cache.New(logger, client, redisdb.New(rdb, cfg.Redis.TTL)), closeFn, nil
	default:
		return client, func() {}, nil
	}
}

func listenAndServe(ctx context.Context, logger *logrus.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("Serving server...")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server failed: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	logger.Info("Shutting down server...")
	err := srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.WithError(err).Error("Failed to shutdown server gracefully")
	}

	return nil
}
