package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"consultq/internal/api"
	"consultq/internal/config"
	"consultq/internal/daemon"
	"consultq/internal/ipc"
	"consultq/internal/logging"
	"consultq/internal/notifications"
	"consultq/internal/queue"
	"consultq/internal/render"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := queue.Open(cfg)
	if err != nil {
		logger.Error("open entry store", logging.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	service := api.NewService(store, logger)
	notifier := notifications.NewService(cfg)

	messages, err := render.NewMessages(cfg.Daemon.Language)
	if err != nil {
		logger.Error("load message catalog", logging.Error(err))
		os.Exit(1)
	}

	d, err := daemon.New(cfg, service, notifier, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		os.Exit(1)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.SocketPath(), d, messages, cfg.Daemon.MessageLimit, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		os.Exit(1)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("consultqd shutting down")
}
