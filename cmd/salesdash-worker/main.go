package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"salesdash/internal/amqp"
	"salesdash/internal/cli"
	"salesdash/internal/dataset"
	applog "salesdash/internal/log"
	"salesdash/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.Setup()

	logger.Info("Starting salesdash-worker", "interval", cfg.RefreshInterval)

	src, err := cli.BuildSource(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize data source", "error", err, "source", cfg.DataSource)
		os.Exit(1)
	}

	opts := []dataset.Option{dataset.WithLogger(applog.ForComponent(logger, applog.ComponentDataset))}

	repo := cli.InitSnapshots(logger, cfg.SQLiteDBPath)
	defer repo.Close()
	opts = append(opts, dataset.WithSnapshotter(repo))

	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		opts = append(opts, dataset.WithNotifier(amqpClient))
		logger.Info("Refresh events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Refresh events disabled - no AMQP URL provided")
	}

	store := dataset.New(src, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	w := worker.NewRefreshWorker(store, cfg.RefreshInterval, applog.ForComponent(logger, applog.ComponentWorker))
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
