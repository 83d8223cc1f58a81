package chart

import "foodwaste/pkg/types"

// FoodTypeOptions lays out the quantity by food type chart.
var FoodTypeOptions = Options{
	Width:  1000,
	Height: 600,
	Title:  "Food Wastage by Type",
	XLabel: "Food_Type",
	YLabel: "Total",
}

// nullLabel names the group of listings without a food type.
const nullLabel = "NULL"

func FoodTypeBars(totals []*types.FoodTypeTotal) []Bar {
	bars := make([]Bar, 0, len(totals))
	for _, t := range totals {
		label := nullLabel
		if t.FoodType.Valid {
			label = t.FoodType.String
		}
		bars = append(bars, Bar{Label: label, Value: t.Total.Int64})
	}
	return bars
}
