package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"salesdash/internal/amqp"
	"salesdash/internal/cli"
	"salesdash/internal/dataset"
	apphttp "salesdash/internal/http"
	applog "salesdash/internal/log"
	"salesdash/internal/storage"
	"salesdash/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.Setup()

	src, err := cli.BuildSource(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize data source", "error", err, "source", cfg.DataSource)
		os.Exit(1)
	}

	opts := []dataset.Option{dataset.WithLogger(applog.ForComponent(logger, applog.ComponentDataset))}

	var repo *storage.SnapshotRepository
	if cfg.SQLiteDBPath != "" {
		repo = cli.InitSnapshots(logger, cfg.SQLiteDBPath)
		defer repo.Close()
		opts = append(opts, dataset.WithSnapshotter(repo))
	}

	store := dataset.New(src, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Serve the last persisted dataset immediately; the fresh fetch follows
	// in the background.
	if repo != nil {
		if err := store.LoadSnapshot(ctx); err != nil {
			logger.Warn("No snapshot to restore", "error", err)
		} else {
			logger.Info("Dataset restored from snapshot", "records", store.Status().Records)
		}
	}
	go func() {
		if err := store.Refresh(ctx); err != nil {
			logger.Error("Initial refresh failed", "error", err)
		}
	}()

	// When a refresh worker publishes a completed cycle, reload its snapshot
	// instead of fetching the sheet again.
	if cfg.AMQPURL != "" && repo != nil {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		rw := worker.NewRefreshWorker(store, cfg.RefreshInterval, applog.ForComponent(logger, applog.ComponentWorker))
		go func() {
			if err := amqpClient.ConsumeRefreshes(ctx, rw.HandleRefreshMessage); err != nil && err != context.Canceled {
				logger.Error("Refresh event consumption failed", "error", err)
			}
		}()
	}

	srv := apphttp.NewServer(":"+strconv.Itoa(cfg.Port), store, applog.ForComponent(logger, applog.ComponentHTTP))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting salesdash server", "port", cfg.Port, "source", cfg.DataSource)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
