package types

import (
	"database/sql"
	"time"
)

// ExpiryDateLayout is the text form dates are stored in.
const ExpiryDateLayout = "2006-01-02"

// FoodListing.ProviderID is a weak reference: nothing guarantees the provider
// exists, resolve it with ProviderRepository.Provider.
type FoodListing struct {
	ID           int64          `db:"Listing_ID"`
	FoodName     sql.NullString `db:"Food_Name"`
	Quantity     sql.NullInt64  `db:"Quantity"`
	ExpiryDate   sql.NullString `db:"Expiry_Date"`
	ProviderID   sql.NullInt64  `db:"Provider_ID"`
	ProviderType sql.NullString `db:"Provider_Type"`
	Location     sql.NullString `db:"Location"`
	FoodType     sql.NullString `db:"Food_Type"`
	MealType     sql.NullString `db:"Meal_Type"`
}

// Expiry parses ExpiryDate, returning the zero time when it is missing or malformed.
func (l *FoodListing) Expiry() time.Time {
	if !l.ExpiryDate.Valid {
		return time.Time{}
	}
	t, err := time.Parse(ExpiryDateLayout, l.ExpiryDate.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Claim.ListingID and Claim.ReceiverID are weak references.
type Claim struct {
	ID         int64          `db:"Claim_ID"`
	ListingID  sql.NullInt64  `db:"Listing_ID"`
	ReceiverID sql.NullInt64  `db:"Receiver_ID"`
	ClaimDate  sql.NullString `db:"Claim_Date"`
}

// FoodTypeTotal is one group of the quantity aggregate. FoodType is invalid for
// listings without a food type, Total when every quantity in the group is NULL.
type FoodTypeTotal struct {
	FoodType sql.NullString `db:"Food_Type"`
	Total    sql.NullInt64  `db:"Total"`
}
