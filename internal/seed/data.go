package seed

import "foodwaste/pkg/types"

// Rows written into a store the first time it is created. Keys are fixed so
// the seeded claim and listings line up with their providers and receivers.
var (
	Providers = []types.Provider{
		{ID: 1, Name: types.Text("Provider A"), Type: types.Text("Restaurant")},
		{ID: 2, Name: types.Text("Provider B"), Type: types.Text("Supermarket")},
	}

	Receivers = []types.Receiver{
		{ID: 1, Name: types.Text("Receiver A"), Type: types.Text("NGO")},
		{ID: 2, Name: types.Text("Receiver B"), Type: types.Text("Charity")},
	}

	Listings = []types.FoodListing{
		{
			ID:           1,
			FoodName:     types.Text("Rice"),
			Quantity:     types.Int(10),
			ExpiryDate:   types.Text("2025-05-10"),
			ProviderID:   types.Int(1),
			ProviderType: types.Text("Restaurant"),
			Location:     types.Text("Downtown"),
			FoodType:     types.Text("Grain"),
			MealType:     types.Text("Lunch"),
		},
		{
			ID:           2,
			FoodName:     types.Text("Bread"),
			Quantity:     types.Int(5),
			ExpiryDate:   types.Text("2025-05-12"),
			ProviderID:   types.Int(2),
			ProviderType: types.Text("Supermarket"),
			Location:     types.Text("Uptown"),
			FoodType:     types.Text("Bakery"),
			MealType:     types.Text("Breakfast"),
		},
	}

	Claims = []types.Claim{
		{ID: 1, ListingID: types.Int(1), ReceiverID: types.Int(1), ClaimDate: types.Text("2025-05-08")},
	}
)
