package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foodwaste/pkg/types"
)

func sqliteConfig(t *testing.T) *types.Config {
	t.Helper()
	return &types.Config{
		StoreDriver: types.StoreDriverSQLite,
		StorePath:   filepath.Join(t.TempDir(), "food_waste.db"),
	}
}

func TestConnectDetectsExistingFile(t *testing.T) {
	ctx := context.Background()
	config := sqliteConfig(t)

	first, err := Connect(ctx, config)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if first.Existed {
		t.Fatalf("expected a fresh store not to exist yet")
	}
	if err := first.ApplySchema(ctx); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	_ = first.Close()

	second, err := Connect(ctx, config)
	if err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	defer second.Close()

	if !second.Existed {
		t.Fatalf("expected the store file to be detected")
	}

	exists, err := second.Dialect.SchemaExists(ctx, second.DB)
	if err != nil || !exists {
		t.Fatalf("expected schema to exist, got %v (%v)", exists, err)
	}
}

func TestApplySchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	handle, err := Connect(ctx, sqliteConfig(t))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer handle.Close()

	for i := 0; i < 2; i++ {
		if err := handle.ApplySchema(ctx); err != nil {
			t.Fatalf("apply schema pass %d: %v", i, err)
		}
	}

	if _, err := handle.ExecContext(ctx, "INSERT INTO Providers (Name, Type) VALUES ('A', 'B')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := handle.ApplySchema(ctx); err != nil {
		t.Fatalf("apply schema over rows: %v", err)
	}

	var n int
	if err := handle.QueryRowContext(ctx, "SELECT COUNT(*) FROM Providers").Scan(&n); err != nil || n != 1 {
		t.Fatalf("expected the row to survive, got %d (%v)", n, err)
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	handle, err := Connect(ctx, sqliteConfig(t))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer handle.Close()

	if err := handle.ApplySchema(ctx); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "snapshot.db")
	if err := handle.Snapshot(ctx, dest); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if info, err := os.Stat(dest); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty snapshot file, got %v", err)
	}

	pg := &Handle{Dialect: postgresDialect{}}
	if err := pg.Snapshot(ctx, dest); !errors.Is(err, ErrSnapshotUnsupported) {
		t.Fatalf("expected ErrSnapshotUnsupported, got %v", err)
	}
}

func TestDialectFor(t *testing.T) {
	if _, err := DialectFor("mysql"); err == nil {
		t.Fatalf("expected unsupported driver error")
	}

	for _, driver := range []types.StoreDriver{types.StoreDriverSQLite, types.StoreDriverPostgres} {
		d, err := DialectFor(driver)
		if err != nil {
			t.Fatalf("dialect for %s: %v", driver, err)
		}
		if d.Driver() != driver {
			t.Fatalf("expected driver %s, got %s", driver, d.Driver())
		}
		if len(d.Schema()) != len(Tables) {
			t.Fatalf("expected %d create statements, got %d", len(Tables), len(d.Schema()))
		}
	}
}

func TestSchemaStatements(t *testing.T) {
	stmts := sqliteDialect{}.Schema()
	if !strings.Contains(stmts[0], "CREATE TABLE IF NOT EXISTS Providers") {
		t.Fatalf("expected Providers first, got %s", stmts[0])
	}
	if !strings.Contains(stmts[0], "Provider_ID INTEGER PRIMARY KEY AUTOINCREMENT") {
		t.Fatalf("expected autoincrement key, got %s", stmts[0])
	}

	pg := postgresDialect{}.Schema()
	if !strings.Contains(pg[2], "Listing_ID BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY") {
		t.Fatalf("expected identity key, got %s", pg[2])
	}
	if len(postgresDialect{}.ResetSequences()) != len(Tables) {
		t.Fatalf("expected one sequence reset per table")
	}
}

func TestLookupTable(t *testing.T) {
	table, ok := LookupTable(TableFoodListings)
	if !ok {
		t.Fatalf("expected FoodListings to be known")
	}
	if table.Key() != "Listing_ID" {
		t.Fatalf("expected key Listing_ID, got %s", table.Key())
	}
	if !table.HasColumn("Meal_Type") || table.HasColumn("meal_type") {
		t.Fatalf("expected exact column matching")
	}

	if _, ok := LookupTable("sqlite_master"); ok {
		t.Fatalf("expected sqlite_master to be unknown")
	}
}
