package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foodwaste/internal/db"
	"foodwaste/pkg/types"
)

var ErrEmptyStatement = errors.New("statement is empty")

type QueryMode int

const (
	// QueryReadOnly runs the statement in a transaction that refuses writes and
	// is always rolled back.
	QueryReadOnly QueryMode = iota
	// QueryUnrestricted runs the statement as given and commits it.
	QueryUnrestricted
)

func (m QueryMode) String() string {
	if m == QueryUnrestricted {
		return "unrestricted"
	}
	return "read-only"
}

// Lookup is the outcome of DistinctValues. Values is empty both when the column
// holds no values and when the lookup failed; Err tells the two apart.
type Lookup struct {
	Values []string
	Err    error
}

func (l Lookup) Failed() bool {
	return l.Err != nil
}

// Or returns Values, or fallback when there are none.
func (l Lookup) Or(fallback []string) []string {
	if len(l.Values) == 0 {
		return fallback
	}
	return l.Values
}

// DataRepository runs statements that are not tied to one record type.
type DataRepository struct {
	handle *db.Handle
}

func NewDataRepository(handle *db.Handle) *DataRepository {
	return &DataRepository{handle: handle}
}

// Execute runs a single statement with positional args and auto-commits it.
func (r *DataRepository) Execute(ctx context.Context, statement string, args ...any) (*ResultSet, error) {
	var rs *ResultSet
	err := withConn(ctx, r.handle, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, statement, args...)
		if err != nil {
			return err
		}

		rs, err = scanResultSet(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute statement: %w", err)
	}

	return rs, nil
}

// DumpTable returns every row of one of the known tables, unfiltered and unlimited.
func (r *DataRepository) DumpTable(ctx context.Context, table string) (*ResultSet, error) {
	t, ok := db.LookupTable(table)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownTable, table)
	}

	query, args, err := builder(r.handle).Select("*").From(t.Name).OrderBy(t.Key() + " ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate dump query for %s: %w", t.Name, err)
	}

	return r.Execute(ctx, query, args...)
}

// DistinctValues collects the distinct non-null values of table.column. Unknown
// identifiers and query failures are reported through Lookup.Err.
func (r *DataRepository) DistinctValues(ctx context.Context, table, column string) Lookup {
	t, ok := db.LookupTable(table)
	if !ok {
		return Lookup{Values: []string{}, Err: fmt.Errorf("%w: %q", types.ErrUnknownTable, table)}
	}
	if !t.HasColumn(column) {
		return Lookup{Values: []string{}, Err: fmt.Errorf("%w: %s.%s", types.ErrUnknownColumn, table, column)}
	}

	query, args, err := builder(r.handle).
		Select(column).
		Distinct().
		From(t.Name).
		Where(column + " IS NOT NULL").
		OrderBy(column + " ASC").
		ToSql()
	if err != nil {
		return Lookup{Values: []string{}, Err: fmt.Errorf("failed to generate distinct query: %w", err)}
	}

	values := make([]string, 0)
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var v sql.NullString
			if err := rows.Scan(&v); err != nil {
				return err
			}
			if v.Valid {
				values = append(values, v.String)
			}
		}
		return rows.Err()
	})
	if err != nil {
		return Lookup{Values: []string{}, Err: fmt.Errorf("failed to look up distinct %s.%s: %w", table, column, err)}
	}

	return Lookup{Values: values}
}

// RunQuery executes a single user-supplied statement verbatim, without bound
// args. Input holding more than one statement is rejected before it reaches the
// store. Nothing is committed when the statement fails or mode is QueryReadOnly.
func (r *DataRepository) RunQuery(ctx context.Context, statement string, mode QueryMode) (*ResultSet, error) {
	statements := splitStatements(statement)
	switch {
	case len(statements) == 0:
		return nil, ErrEmptyStatement
	case len(statements) > 1:
		// mattn/go-sqlite3 runs only the last of several statements and reports success
		return nil, fmt.Errorf("%s query failed: %w, got %d", mode, ErrMultipleStatements, len(statements))
	}
	statement = statements[0]

	var rs *ResultSet
	err := withConn(ctx, r.handle, func(conn *sql.Conn) error {
		var (
			tx  *sql.Tx
			err error
		)

		if mode == QueryReadOnly {
			var release func(context.Context) error
			tx, release, err = r.handle.Dialect.BeginReadOnly(ctx, conn)
			if err != nil {
				return err
			}
			defer func() { _ = release(context.WithoutCancel(ctx)) }()
		} else {
			tx, err = conn.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to begin transaction: %w", err)
			}
		}
		defer func() { _ = tx.Rollback() }()

		rows, err := tx.QueryContext(ctx, statement)
		if err != nil {
			return err
		}

		rs, err = scanResultSet(rows)
		if err != nil {
			return err
		}

		if mode == QueryUnrestricted {
			return tx.Commit()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", mode, err)
	}

	return rs, nil
}
