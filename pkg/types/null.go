package types

import "database/sql"

// Columns other than the keys carry no NOT NULL constraint, so records read
// them into sql.Null* fields. Text and Int build present values.

func Text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func Int(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: true}
}
