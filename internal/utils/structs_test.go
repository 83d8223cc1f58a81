package utils

import (
	"testing"
)

type row struct {
	ID       int64  `db:"Row_ID"`
	Name     string `db:"Name"`
	Skipped  string `db:"-"`
	Untagged string
	hidden   string `db:"Hidden"`
}

func TestStructTagValues(t *testing.T) {
	got := StructTagValues(&row{})
	want := []string{"Row_ID", "Name"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestStructToMap(t *testing.T) {
	r := row{ID: 3, Name: "Rice", Skipped: "x", Untagged: "y", hidden: "z"}

	got := StructToMap(r)
	if len(got) != 2 || got["Row_ID"] != int64(3) || got["Name"] != "Rice" {
		t.Fatalf("expected Row_ID and Name only, got %v", got)
	}

	got = StructToMap(&r, "Row_ID")
	if _, ok := got["Row_ID"]; ok {
		t.Fatalf("expected Row_ID to be omitted, got %v", got)
	}
	if got["Name"] != "Rice" {
		t.Fatalf("expected Name to be kept, got %v", got)
	}
}

func TestQuotedAliases(t *testing.T) {
	got := QuotedAliases([]string{"Food_Type"})
	if got[0] != `Food_Type AS "Food_Type"` {
		t.Fatalf("expected quoted alias, got %s", got[0])
	}
}

func TestRequestID(t *testing.T) {
	a, b := RequestID(), RequestID()
	if len(a) != RequestIDSize {
		t.Fatalf("expected %d characters, got %d", RequestIDSize, len(a))
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
}
