package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodwaste/internal/server"
	"foodwaste/internal/store"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the dashboard HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	logger := newLogger(config)

	handle, err := openStore(ctx, config, logger)
	if err != nil {
		return err
	}
	defer handle.Close()

	srv, err := server.New(
		config,
		logger,
		store.NewDataRepository(handle),
		store.NewProviderRepository(handle),
		store.NewReceiverRepository(handle),
		store.NewListingRepository(handle),
		store.NewClaimRepository(handle),
	)
	if err != nil {
		return err
	}

	if config.AllowUnrestrictedQueries {
		logger.Warn("ad-hoc queries run unrestricted and can modify the store")
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
