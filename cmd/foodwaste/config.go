package main

import (
	"context"
	"fmt"

	"foodwaste/internal/db"
	"foodwaste/internal/seed"
	"foodwaste/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(cCtx.String("env-prefix"), c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.StorePath == "" {
		return nil, fmt.Errorf("set STORE_PATH")
	}

	if _, err := db.DialectFor(c.StoreDriver); err != nil {
		return nil, err
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	if c.StoreTimeoutSec == 0 {
		c.StoreTimeoutSec = 5
	}

	return c, nil
}

func newLogger(c *types.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logger.WithError(err).WithField("level", c.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// openStore connects to the configured store and bootstraps it.
func openStore(ctx context.Context, c *types.Config, logger *logrus.Logger) (*db.Handle, error) {
	handle, err := db.Connect(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	seeded, err := seed.Bootstrap(ctx, c, handle, logger)
	if err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to bootstrap store: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"driver": c.StoreDriver,
		"seeded": seeded,
	}).Info("store ready")

	return handle, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}
