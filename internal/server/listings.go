package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"foodwaste/internal/db"
	"foodwaste/internal/store"
	"foodwaste/pkg/types"

	"github.com/alexedwards/flow"
)

const listingAddedNotice = "Food listing added successfully!"

type ListingsPageData struct {
	types.BasePageData
	Listings []*types.FoodListing
}

type ListingClaim struct {
	Claim    *types.Claim
	Receiver *types.Receiver // nil when the reference dangles
}

type ListingDetailPageData struct {
	types.BasePageData
	Listing  *types.FoodListing
	Provider *types.Provider // nil when the reference dangles
	Claims   []ListingClaim
}

type NewListingPageData struct {
	types.BasePageData
	Form          types.NewListingForm
	FieldErrors   map[string]string
	ProviderIDs   []string
	ProviderTypes []string
	FoodTypes     []string
	MealTypes     []string
}

func (s *Service) handleListings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	listings, err := s.listingRepo.Listings(ctx)
	if err != nil {
		s.requestLogger(r).WithError(err).Error("failed to fetch listings")
		s.internalServerError(w)
		return
	}

	data := &ListingsPageData{
		BasePageData: types.BasePageData{Title: "Food Listings"},
		Listings:     listings,
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "/listings", "page.listings", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render listings page")
		s.internalServerError(w)
	}
}

func (s *Service) handleListingDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	listingID, err := strconv.ParseInt(flow.Param(r.Context(), "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	listing, err := s.listingRepo.Listing(ctx, listingID)
	if err != nil {
		if errors.Is(err, types.ErrListingNotFound) {
			http.NotFound(w, r)
			return
		}
		s.requestLogger(r).WithError(err).WithField("listing_id", listingID).Error("failed to fetch listing")
		s.internalServerError(w)
		return
	}

	title := fmt.Sprintf("Listing #%d", listing.ID)
	if listing.FoodName.Valid && listing.FoodName.String != "" {
		title = listing.FoodName.String + " - Listing Details"
	}

	data := &ListingDetailPageData{
		BasePageData: types.BasePageData{Title: title},
		Listing:      listing,
	}

	if listing.ProviderID.Valid {
		provider, err := s.providerRepo.Provider(ctx, listing.ProviderID.Int64)
		switch {
		case errors.Is(err, types.ErrProviderNotFound):
		case err != nil:
			s.requestLogger(r).WithError(err).WithField("provider_id", listing.ProviderID.Int64).Error("failed to fetch provider for listing")
			s.internalServerError(w)
			return
		default:
			data.Provider = provider
		}
	}

	claims, err := s.claimRepo.ClaimsByListing(ctx, listing.ID)
	if err != nil {
		s.requestLogger(r).WithError(err).WithField("listing_id", listing.ID).Error("failed to fetch claims for listing")
		s.internalServerError(w)
		return
	}

	for _, claim := range claims {
		entry := ListingClaim{Claim: claim}

		if claim.ReceiverID.Valid {
			receiver, err := s.receiverRepo.Receiver(ctx, claim.ReceiverID.Int64)
			switch {
			case errors.Is(err, types.ErrReceiverNotFound):
			case err != nil:
				s.requestLogger(r).WithError(err).WithField("receiver_id", claim.ReceiverID.Int64).Error("failed to fetch receiver for claim")
				s.internalServerError(w)
				return
			default:
				entry.Receiver = receiver
			}
		}

		data.Claims = append(data.Claims, entry)
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "/listings", "page.listing-detail", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render listing detail page")
		s.internalServerError(w)
	}
}

func (s *Service) handleGetNewListing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	data := s.newListingPageData(ctx, r)
	data.Form = types.NewListingForm{
		Quantity:   1,
		ExpiryDate: time.Now().Format(types.ExpiryDateLayout),
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "/listings/new", "page.listing-new", data); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to render new listing page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostListing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.storeContext(r)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		s.requestLogger(r).WithError(err).Warn("failed to parse listing form")
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	data := s.newListingPageData(ctx, r)

	err := decoder.Decode(&data.Form, r.Form)
	if err != nil {
		s.requestLogger(r).WithError(err).Info("failed to decode listing form")
		data.FieldErrors = map[string]string{"form": "Some values could not be read. Quantity must be a number."}
	} else {
		data.FieldErrors = data.Form.Validate()
	}

	if len(data.FieldErrors) > 0 {
		data.Error = "Please fix the highlighted fields."
		if err := s.renderTemplate(w, r, http.StatusBadRequest, "/listings/new", "page.listing-new", data); err != nil {
			s.requestLogger(r).WithError(err).Error("failed to render new listing page with validation errors")
			s.internalServerError(w)
		}
		return
	}

	listing, err := data.Form.Listing()
	if err != nil {
		s.requestLogger(r).WithError(err).Error("validated listing form failed to convert")
		s.internalServerError(w)
		return
	}

	if err := s.listingRepo.CreateListing(ctx, listing); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to create listing in datastore")
		s.internalServerError(w)
		return
	}

	s.requestLogger(r).WithField("listing_id", listing.ID).Info("food listing added")

	s.redirectWithNotice(w, r, "/listings/new", listingAddedNotice)
}

// newListingPageData loads the select options for the listing form. Option
// lookups that fail are logged and treated as empty so the form still renders.
func (s *Service) newListingPageData(ctx context.Context, r *http.Request) *NewListingPageData {
	options := func(table, column string) store.Lookup {
		lookup := s.dataRepo.DistinctValues(ctx, table, column)
		if lookup.Failed() {
			s.requestLogger(r).WithError(lookup.Err).Warn("failed to load listing form options")
		}
		return lookup
	}

	return &NewListingPageData{
		BasePageData:  types.BasePageData{Title: "Add Food Listing"},
		FieldErrors:   map[string]string{},
		ProviderIDs:   options(db.TableProviders, "Provider_ID").Values,
		ProviderTypes: options(db.TableProviders, "Type").Values,
		FoodTypes:     options(db.TableFoodListings, "Food_Type").Or(types.DefaultFoodTypes),
		MealTypes:     options(db.TableFoodListings, "Meal_Type").Or(types.DefaultMealTypes),
	}
}
