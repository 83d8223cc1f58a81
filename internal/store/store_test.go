package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"foodwaste/internal/db"
	"foodwaste/internal/seed"
	"foodwaste/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testConfig(t *testing.T, seeded bool) *types.Config {
	t.Helper()

	dir := t.TempDir()
	return &types.Config{
		StoreDriver:     types.StoreDriverSQLite,
		StorePath:       filepath.Join(dir, "food_waste.db"),
		StoreTimeoutSec: 5,
		DataDir:         filepath.Join(dir, "data"),
		Seed:            seeded,
	}
}

func newTestHandle(t *testing.T, seeded bool) *db.Handle {
	t.Helper()

	ctx := context.Background()
	config := testConfig(t, seeded)

	handle, err := db.Connect(ctx, config)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = handle.Close() })

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	if _, err := seed.Bootstrap(ctx, config, handle, logger); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	return handle
}
