package types

import "database/sql"

type Provider struct {
	ID   int64          `db:"Provider_ID"`
	Name sql.NullString `db:"Name"`
	Type sql.NullString `db:"Type"`
}

type Receiver struct {
	ID   int64          `db:"Receiver_ID"`
	Name sql.NullString `db:"Name"`
	Type sql.NullString `db:"Type"`
}
