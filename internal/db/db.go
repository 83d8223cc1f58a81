package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"foodwaste/pkg/types"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Handle is an open store together with the dialect used to talk to it.
type Handle struct {
	*sql.DB
	Dialect Dialect

	// Existed reports whether the store was already present before Connect
	// opened it. Seeding only happens when it is false.
	Existed bool
}

func Connect(ctx context.Context, config *types.Config) (*Handle, error) {
	dialect, err := DialectFor(config.StoreDriver)
	if err != nil {
		return nil, err
	}

	existed := false
	if config.StoreDriver == types.StoreDriverSQLite {
		// opening an sqlite file creates it, so look before we leap
		existed, err = fileExists(config.StorePath)
		if err != nil {
			return nil, err
		}
	}

	pool, err := sql.Open(string(config.StoreDriver), dialect.DSN(config.StorePath))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if config.StoreDriver == types.StoreDriverSQLite {
		pool.SetMaxOpenConns(1)
	} else {
		pool.SetConnMaxIdleTime(15 * time.Minute)
		pool.SetConnMaxLifetime(45 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	if config.StoreDriver != types.StoreDriverSQLite {
		existed, err = dialect.SchemaExists(ctx, pool)
		if err != nil {
			_ = pool.Close()
			return nil, err
		}
	}

	return &Handle{DB: pool, Dialect: dialect, Existed: existed}, nil
}

// ApplySchema creates any missing table. Existing tables and rows are left alone.
func (h *Handle) ApplySchema(ctx context.Context) error {
	for _, stmt := range h.Dialect.Schema() {
		if _, err := h.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat store file %s: %w", path, err)
}

// ErrSnapshotUnsupported is returned when the store driver cannot copy itself to a file.
var ErrSnapshotUnsupported = errors.New("snapshot is only supported for sqlite stores")

// Snapshot writes a consistent copy of the store to dest, which must not exist yet.
func (h *Handle) Snapshot(ctx context.Context, dest string) error {
	if h.Dialect.Driver() != types.StoreDriverSQLite {
		return ErrSnapshotUnsupported
	}

	if _, err := h.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		return fmt.Errorf("failed to snapshot store to %s: %w", dest, err)
	}
	return nil
}
