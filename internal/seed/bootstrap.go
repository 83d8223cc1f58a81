package seed

import (
	"context"
	"fmt"
	"os"

	"foodwaste/internal/db"
	"foodwaste/internal/store"
	"foodwaste/pkg/types"

	"github.com/sirupsen/logrus"
)

// Bootstrap prepares the store for use. The schema is applied on every call
// with create-if-absent semantics. When the store did not exist before it was
// opened, the data directory is created and, if enabled, the seed rows are
// written. It reports whether the seed rows were written.
func Bootstrap(ctx context.Context, config *types.Config, handle *db.Handle, logger logrus.FieldLogger) (bool, error) {
	if err := handle.ApplySchema(ctx); err != nil {
		return false, err
	}

	if handle.Existed {
		logger.WithField("store", config.StorePath).Debug("store already exists, skipping seed")
		return false, nil
	}

	if config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create data directory %s: %w", config.DataDir, err)
		}
	}

	// the store exists from here on, a repeated Bootstrap must not reseed
	handle.Existed = true

	if !config.Seed {
		logger.Info("new store created, seeding disabled")
		return false, nil
	}

	if err := Seed(ctx, handle); err != nil {
		return false, err
	}

	logger.WithFields(logrus.Fields{
		"providers": len(Providers),
		"receivers": len(Receivers),
		"listings":  len(Listings),
		"claims":    len(Claims),
	}).Info("new store seeded")

	return true, nil
}

// Seed replaces the contents of every table with the seed rows. It is only
// safe on an empty store.
func Seed(ctx context.Context, handle *db.Handle) error {
	if err := store.NewProviderRepository(handle).ReplaceProviders(ctx, Providers); err != nil {
		return fmt.Errorf("failed to seed providers: %w", err)
	}

	if err := store.NewReceiverRepository(handle).ReplaceReceivers(ctx, Receivers); err != nil {
		return fmt.Errorf("failed to seed receivers: %w", err)
	}

	if err := store.NewListingRepository(handle).ReplaceListings(ctx, Listings); err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}

	if err := store.NewClaimRepository(handle).ReplaceClaims(ctx, Claims); err != nil {
		return fmt.Errorf("failed to seed claims: %w", err)
	}

	for _, stmt := range handle.Dialect.ResetSequences() {
		if _, err := handle.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to reset key sequences: %w", err)
		}
	}

	return nil
}
