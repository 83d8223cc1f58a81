package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"foodwaste/pkg/types"

	sq "github.com/Masterminds/squirrel"
)

// Dialect hides the differences between the supported store drivers.
type Dialect interface {
	Driver() types.StoreDriver
	DSN(path string) string
	Placeholder() sq.PlaceholderFormat
	Schema() []string
	SchemaExists(ctx context.Context, pool *sql.DB) (bool, error)

	// ResetSequences realigns key generators after rows were written with explicit keys.
	ResetSequences() []string

	// BeginReadOnly starts a transaction on conn that refuses writes. The returned
	// release func must run before conn is handed back.
	BeginReadOnly(ctx context.Context, conn *sql.Conn) (*sql.Tx, func(context.Context) error, error)
}

func DialectFor(driver types.StoreDriver) (Dialect, error) {
	switch driver {
	case types.StoreDriverSQLite:
		return sqliteDialect{}, nil
	case types.StoreDriverPostgres:
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", driver)
}

type sqliteDialect struct{}

func (sqliteDialect) Driver() types.StoreDriver { return types.StoreDriverSQLite }

func (sqliteDialect) DSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000", path)
}

func (sqliteDialect) Placeholder() sq.PlaceholderFormat { return sq.Question }

func (sqliteDialect) Schema() []string {
	return createStatements(func(c Column, key bool) string {
		if key {
			return "INTEGER PRIMARY KEY AUTOINCREMENT"
		}
		if c.Type == ColumnInteger {
			return "INTEGER"
		}
		return "TEXT"
	})
}

func (sqliteDialect) SchemaExists(ctx context.Context, pool *sql.DB) (bool, error) {
	var n int
	err := pool.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", TableProviders,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to inspect sqlite schema: %w", err)
	}
	return n > 0, nil
}

// AUTOINCREMENT keys already continue past explicitly written ones.
func (sqliteDialect) ResetSequences() []string { return nil }

func (sqliteDialect) BeginReadOnly(ctx context.Context, conn *sql.Conn) (*sql.Tx, func(context.Context) error, error) {
	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, nil, fmt.Errorf("failed to enable query_only: %w", err)
	}

	release := func(ctx context.Context) error {
		_, err := conn.ExecContext(ctx, "PRAGMA query_only = OFF")
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		_ = release(ctx)
		return nil, nil, fmt.Errorf("failed to begin read-only transaction: %w", err)
	}

	return tx, release, nil
}

type postgresDialect struct{}

func (postgresDialect) Driver() types.StoreDriver { return types.StoreDriverPostgres }

func (postgresDialect) DSN(path string) string { return path }

func (postgresDialect) Placeholder() sq.PlaceholderFormat { return sq.Dollar }

func (postgresDialect) Schema() []string {
	return createStatements(func(c Column, key bool) string {
		if key {
			return "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY"
		}
		if c.Type == ColumnInteger {
			return "BIGINT"
		}
		return "TEXT"
	})
}

func (postgresDialect) SchemaExists(ctx context.Context, pool *sql.DB) (bool, error) {
	var name sql.NullString
	err := pool.QueryRowContext(ctx, "SELECT to_regclass($1)::text", strings.ToLower(TableProviders)).Scan(&name)
	if err != nil {
		return false, fmt.Errorf("failed to inspect postgres schema: %w", err)
	}
	return name.Valid, nil
}

func (postgresDialect) ResetSequences() []string {
	out := make([]string, 0, len(Tables))
	for _, t := range Tables {
		out = append(out, fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', '%s'), COALESCE(MAX(%s), 0) + 1, false) FROM %s",
			strings.ToLower(t.Name), strings.ToLower(t.Key()), t.Key(), t.Name,
		))
	}
	return out
}

func (postgresDialect) BeginReadOnly(ctx context.Context, conn *sql.Conn) (*sql.Tx, func(context.Context) error, error) {
	tx, err := conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin read-only transaction: %w", err)
	}
	return tx, func(context.Context) error { return nil }, nil
}

func createStatements(columnType func(c Column, key bool) string) []string {
	out := make([]string, 0, len(Tables))
	for _, t := range Tables {
		defs := make([]string, 0, len(t.Columns))
		for i, c := range t.Columns {
			defs = append(defs, fmt.Sprintf("%s %s", c.Name, columnType(c, i == 0)))
		}
		out = append(out, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t")))
	}
	return out
}
