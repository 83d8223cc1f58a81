package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"foodwaste/internal/chart"
	"foodwaste/internal/store"

	"github.com/urfave/cli/v2"
)

var chartCommand = &cli.Command{
	Name:  "chart",
	Usage: "Write the food wastage by type chart as PNG",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output file, defaults to food_wastage_chart.png in the data directory",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := newLogger(cfg)
		ctx := context.Background()

		handle, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer handle.Close()

		out := c.String("out")
		if out == "" {
			out = filepath.Join(cfg.DataDir, "food_wastage_chart.png")
		}

		written, err := writeChart(ctx, store.NewListingRepository(handle), out)
		if err != nil {
			return err
		}

		if !written {
			logger.Warn("no data available, chart not written")
			return nil
		}

		logger.WithField("path", out).Info("chart written")
		return nil
	},
}

// writeChart renders the quantity by food type chart to out, creating its
// directory when needed. It reports false and writes nothing when there are no
// listings.
func writeChart(ctx context.Context, listings *store.ListingRepository, out string) (bool, error) {
	totals, err := listings.QuantityByFoodType(ctx)
	if err != nil {
		return false, err
	}

	if len(totals) == 0 {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return false, fmt.Errorf("failed to create chart directory: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return false, fmt.Errorf("failed to create %s: %w", out, err)
	}

	err = chart.RenderBarChart(f, chart.FoodTypeBars(totals), chart.FoodTypeOptions)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if errors.Is(err, chart.ErrNoData) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to write chart: %w", err)
	}

	return true, nil
}
