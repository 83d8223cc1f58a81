package types

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	DefaultFoodTypes = []string{"Vegetable", "Grain"}
	DefaultMealTypes = []string{"Breakfast", "Lunch", "Dinner"}
)

// NewListingForm is the payload of the add food listing form.
type NewListingForm struct {
	FoodName     string `form:"food_name"`
	Quantity     int64  `form:"quantity"`
	ExpiryDate   string `form:"expiry_date"`
	ProviderID   string `form:"provider_id"`
	ProviderType string `form:"provider_type"`
	Location     string `form:"location"`
	FoodType     string `form:"food_type"`
	MealType     string `form:"meal_type"`
}

// Validate returns a message per offending form field. The provider id is not
// checked against the store and may be left empty.
func (f *NewListingForm) Validate() map[string]string {
	fieldErrors := make(map[string]string)

	if f.Quantity < 1 {
		fieldErrors["quantity"] = "Quantity must be at least 1."
	}

	if _, err := time.Parse(ExpiryDateLayout, strings.TrimSpace(f.ExpiryDate)); err != nil {
		fieldErrors["expiry_date"] = "Expiry date must be a calendar date (YYYY-MM-DD)."
	}

	if _, err := f.providerID(); err != nil {
		fieldErrors["provider_id"] = "Provider must be a provider id."
	}

	return fieldErrors
}

// Listing converts the form into a FoodListing without an ID.
func (f *NewListingForm) Listing() (*FoodListing, error) {
	if fieldErrors := f.Validate(); len(fieldErrors) > 0 {
		return nil, fmt.Errorf("%w: %d invalid fields", ErrInvalidListing, len(fieldErrors))
	}

	providerID, err := f.providerID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidListing, err)
	}

	return &FoodListing{
		FoodName:     Text(strings.TrimSpace(f.FoodName)),
		Quantity:     Int(f.Quantity),
		ExpiryDate:   Text(strings.TrimSpace(f.ExpiryDate)),
		ProviderID:   providerID,
		ProviderType: Text(strings.TrimSpace(f.ProviderType)),
		Location:     Text(strings.TrimSpace(f.Location)),
		FoodType:     Text(strings.TrimSpace(f.FoodType)),
		MealType:     Text(strings.TrimSpace(f.MealType)),
	}, nil
}

// providerID is NULL when no provider was chosen, e.g. while Providers is empty.
func (f *NewListingForm) providerID() (sql.NullInt64, error) {
	raw := strings.TrimSpace(f.ProviderID)
	if raw == "" {
		return sql.NullInt64{}, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return Int(id), nil
}

type QueryForm struct {
	Statement string `form:"statement"`
}
