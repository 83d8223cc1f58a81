package db

import "slices"

type ColumnType int

const (
	ColumnText ColumnType = iota
	ColumnInteger
)

type Column struct {
	Name string
	Type ColumnType
}

// Table describes one store table. The first column is the store-assigned key.
type Table struct {
	Name    string
	Columns []Column
}

func (t Table) Key() string {
	return t.Columns[0].Name
}

func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

func (t Table) HasColumn(name string) bool {
	return slices.ContainsFunc(t.Columns, func(c Column) bool { return c.Name == name })
}

const (
	TableProviders    = "Providers"
	TableReceivers    = "Receivers"
	TableFoodListings = "FoodListings"
	TableClaims       = "Claims"
)

// Tables lists every table in creation order.
var Tables = []Table{
	{
		Name: TableProviders,
		Columns: []Column{
			{"Provider_ID", ColumnInteger},
			{"Name", ColumnText},
			{"Type", ColumnText},
		},
	},
	{
		Name: TableReceivers,
		Columns: []Column{
			{"Receiver_ID", ColumnInteger},
			{"Name", ColumnText},
			{"Type", ColumnText},
		},
	},
	{
		Name: TableFoodListings,
		Columns: []Column{
			{"Listing_ID", ColumnInteger},
			{"Food_Name", ColumnText},
			{"Quantity", ColumnInteger},
			{"Expiry_Date", ColumnText},
			{"Provider_ID", ColumnInteger},
			{"Provider_Type", ColumnText},
			{"Location", ColumnText},
			{"Food_Type", ColumnText},
			{"Meal_Type", ColumnText},
		},
	},
	{
		Name: TableClaims,
		Columns: []Column{
			{"Claim_ID", ColumnInteger},
			{"Listing_ID", ColumnInteger},
			{"Receiver_ID", ColumnInteger},
			{"Claim_Date", ColumnText},
		},
	},
}

func LookupTable(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func TableNames() []string {
	names := make([]string, 0, len(Tables))
	for _, t := range Tables {
		names = append(names, t.Name)
	}
	return names
}
