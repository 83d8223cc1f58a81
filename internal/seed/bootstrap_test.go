package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"foodwaste/internal/db"
	"foodwaste/internal/store"
	"foodwaste/pkg/types"

	"github.com/sirupsen/logrus/hooks/test"
)

func testConfig(t *testing.T) *types.Config {
	t.Helper()

	dir := t.TempDir()
	return &types.Config{
		StoreDriver: types.StoreDriverSQLite,
		StorePath:   filepath.Join(dir, "food_waste.db"),
		DataDir:     filepath.Join(dir, "data"),
		Seed:        true,
	}
}

func open(t *testing.T, config *types.Config) (*db.Handle, bool) {
	t.Helper()

	ctx := context.Background()
	handle, err := db.Connect(ctx, config)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = handle.Close() })

	logger, _ := test.NewNullLogger()
	seeded, err := Bootstrap(ctx, config, handle, logger)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	return handle, seeded
}

func TestBootstrapSeedsNewStore(t *testing.T) {
	ctx := context.Background()
	config := testConfig(t)

	handle, seeded := open(t, config)
	if !seeded {
		t.Fatalf("expected a new store to be seeded")
	}

	if info, err := os.Stat(config.DataDir); err != nil || !info.IsDir() {
		t.Fatalf("expected data directory %s to exist, got %v", config.DataDir, err)
	}

	for _, table := range db.TableNames() {
		var n int
		err := handle.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
		if err != nil || n != 1 {
			t.Fatalf("expected table %s to exist, got %d (%v)", table, n, err)
		}
	}

	providers, err := store.NewProviderRepository(handle).Providers(ctx)
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	if len(providers) != len(Providers) {
		t.Fatalf("expected %d providers, got %d", len(Providers), len(providers))
	}
	for i := range Providers {
		if *providers[i] != Providers[i] {
			t.Fatalf("expected %+v, got %+v", Providers[i], *providers[i])
		}
	}

	listings, err := store.NewListingRepository(handle).Listings(ctx)
	if err != nil {
		t.Fatalf("listings: %v", err)
	}
	for i := range Listings {
		if *listings[i] != Listings[i] {
			t.Fatalf("expected %+v, got %+v", Listings[i], *listings[i])
		}
	}

	claims, err := store.NewClaimRepository(handle).Claims(ctx)
	if err != nil {
		t.Fatalf("claims: %v", err)
	}
	if len(claims) != 1 || *claims[0] != Claims[0] {
		t.Fatalf("expected only %+v, got %d claims", Claims[0], len(claims))
	}
}

func TestBootstrapLeavesExistingStore(t *testing.T) {
	ctx := context.Background()
	config := testConfig(t)

	handle, _ := open(t, config)

	added := &types.FoodListing{
		FoodName:   types.Text("Apples"),
		Quantity:   types.Int(4),
		ExpiryDate: types.Text("2025-06-02"),
		FoodType:   types.Text("Fruit"),
	}
	if err := store.NewListingRepository(handle).CreateListing(ctx, added); err != nil {
		t.Fatalf("create listing: %v", err)
	}

	// a second call on the same handle must not reseed either
	logger, _ := test.NewNullLogger()
	if seeded, err := Bootstrap(ctx, config, handle, logger); err != nil || seeded {
		t.Fatalf("expected no reseed on the same handle, got %v (%v)", seeded, err)
	}
	_ = handle.Close()

	reopened, seeded := open(t, config)
	if seeded {
		t.Fatalf("expected an existing store not to be seeded again")
	}

	listings, err := store.NewListingRepository(reopened).Listings(ctx)
	if err != nil {
		t.Fatalf("listings: %v", err)
	}
	if len(listings) != len(Listings)+1 {
		t.Fatalf("expected %d listings, got %d", len(Listings)+1, len(listings))
	}
	if *listings[len(listings)-1] != *added {
		t.Fatalf("expected added listing %+v to survive, got %+v", *added, *listings[len(listings)-1])
	}
}

func TestBootstrapWithoutSeed(t *testing.T) {
	ctx := context.Background()
	config := testConfig(t)
	config.Seed = false

	handle, seeded := open(t, config)
	if seeded {
		t.Fatalf("expected seeding to be skipped")
	}

	n, err := store.NewProviderRepository(handle).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty providers table, got %d rows", n)
	}
}
