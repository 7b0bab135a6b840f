package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/yashagw/craneopt/internal/config"
	"github.com/yashagw/craneopt/internal/logging"
	"github.com/yashagw/craneopt/internal/metadata"
	"github.com/yashagw/craneopt/internal/server"
)

func main() {
	configPath := flag.String("config", os.Getenv("CRANEOPT_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger, closeLogger, err := logging.Setup(os.Stdout, cfg.Log)
	if err != nil {
		slog.Error("failed to set up logging", "err", err)
		os.Exit(1)
	}
	defer closeLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		closeLogger()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	catalogue := metadata.NewManager(logger)
	if cfg.Catalogue != "" {
		var err error
		catalogue, err = metadata.LoadFile(cfg.Catalogue, logger)
		if err != nil {
			return err
		}
	}

	listener, err := listen(cfg)
	if err != nil {
		return err
	}

	logger.Info("craneopt server listening",
		"address", listener.Addr().String(),
		"catalogue", cfg.Catalogue,
		"relations", len(catalogue.Relations()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(catalogue, logger).Serve(ctx, listener)
}

// listen opens the TCP listener on the configured host and port.
func listen(cfg config.Config) (net.Listener, error) {
	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s", cfg.Address())
	}
	return listener, nil
}
