package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var bootstrapCommand = &cli.Command{
	Name:  "bootstrap",
	Usage: "Create the store schema and seed a new store",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)

		handle, err := openStore(context.Background(), cfg, logger)
		if err != nil {
			return err
		}

		return handle.Close()
	},
}
