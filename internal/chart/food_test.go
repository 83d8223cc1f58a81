package chart

import (
	"bytes"
	"database/sql"
	"testing"

	"foodwaste/pkg/types"
)

func TestFoodTypeBars(t *testing.T) {
	bars := FoodTypeBars([]*types.FoodTypeTotal{
		{FoodType: types.Text("Grain"), Total: types.Int(10)},
		{FoodType: types.Text("Bakery"), Total: types.Int(5)},
	})

	want := []Bar{{Label: "Grain", Value: 10}, {Label: "Bakery", Value: 5}}
	if len(bars) != len(want) {
		t.Fatalf("expected %d bars, got %d", len(want), len(bars))
	}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("expected bar %d to be %+v, got %+v", i, want[i], bars[i])
		}
	}

	if len(FoodTypeBars(nil)) != 0 {
		t.Fatalf("expected no bars for no totals")
	}
}

func TestFoodTypeBarsNullGroups(t *testing.T) {
	bars := FoodTypeBars([]*types.FoodTypeTotal{
		{FoodType: sql.NullString{}, Total: types.Int(3)},
		{FoodType: types.Text("Soup"), Total: sql.NullInt64{}},
	})

	want := []Bar{{Label: "NULL", Value: 3}, {Label: "Soup", Value: 0}}
	for i := range want {
		if bars[i] != want[i] {
			t.Fatalf("expected bar %d to be %+v, got %+v", i, want[i], bars[i])
		}
	}

	var buf bytes.Buffer
	if err := RenderBarChart(&buf, bars, FoodTypeOptions); err != nil {
		t.Fatalf("expected NULL groups to render, got %v", err)
	}
}
