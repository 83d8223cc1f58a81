package store

import (
	"context"
	"database/sql"
	"fmt"

	"foodwaste/internal/db"
	"foodwaste/internal/utils"

	sq "github.com/Masterminds/squirrel"
)

func builder(h *db.Handle) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(h.Dialect.Placeholder())
}

// withConn runs fn on a connection reserved for this call only. The connection
// goes back to the handle on every return path.
func withConn(ctx context.Context, h *db.Handle, fn func(conn *sql.Conn) error) error {
	conn, err := h.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire store connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// replaceRows empties table and writes rows in its place. Every statement
// commits on its own, so a failure part way leaves a partially written table.
func replaceRows[T any](ctx context.Context, h *db.Handle, table string, rows []T) error {
	query, args, err := builder(h).Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete query for %s: %w", table, err)
	}

	return withConn(ctx, h, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}

		for _, row := range rows {
			query, args, err := builder(h).Insert(table).SetMap(utils.StructToMap(row)).ToSql()
			if err != nil {
				return fmt.Errorf("failed to generate insert query for %s: %w", table, err)
			}

			if _, err := conn.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to insert into %s: %w", table, err)
			}
		}

		return nil
	})
}

func count(ctx context.Context, h *db.Handle, table string) (int64, error) {
	query, args, err := builder(h).Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate count query for %s: %w", table, err)
	}

	var n int64
	err = withConn(ctx, h, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, args...).Scan(&n)
	})

	return n, utils.ErrorWrapOrNil(err, "failed to count "+table)
}
