package store

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strconv"
	"time"
)

// ResultSet is an untyped grid of rows, in the order the store produced them.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

func (rs *ResultSet) Empty() bool {
	return len(rs.Rows) == 0
}

// Cells renders row i as display strings.
func (rs *ResultSet) Cells(i int) []string {
	out := make([]string, len(rs.Rows[i]))
	for j, v := range rs.Rows[i] {
		out[j] = FormatValue(v)
	}
	return out
}

func scanResultSet(rows *sql.Rows) (*ResultSet, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	rs := &ResultSet{Columns: columns, Rows: make([][]any, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		for i, v := range values {
			// drivers hand back text as []byte, keep a stable copy as string
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}

		rs.Rows = append(rs.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate result rows: %w", err)
	}

	return rs, nil
}

func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	case driver.Valuer:
		// sql.Null* fields of the typed records
		inner, err := t.Value()
		if err != nil {
			return fmt.Sprint(v)
		}
		return FormatValue(inner)
	}
	return fmt.Sprint(v)
}
