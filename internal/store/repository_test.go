package store_test

import (
	"context"
	"errors"
	"testing"

	"foodwaste/internal/store"
	"foodwaste/pkg/types"
)

func TestProviders(t *testing.T) {
	ctx := context.Background()
	repo := store.NewProviderRepository(newTestHandle(t, true))

	providers, err := repo.Providers(ctx)
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}

	want := types.Provider{ID: 1, Name: types.Text("Provider A"), Type: types.Text("Restaurant")}
	if *providers[0] != want {
		t.Fatalf("expected %+v, got %+v", want, *providers[0])
	}

	if _, err := repo.Provider(ctx, 99); !errors.Is(err, types.ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
}

func TestReceivers(t *testing.T) {
	ctx := context.Background()
	repo := store.NewReceiverRepository(newTestHandle(t, true))

	receiver, err := repo.Receiver(ctx, 2)
	if err != nil {
		t.Fatalf("receiver: %v", err)
	}

	want := types.Receiver{ID: 2, Name: types.Text("Receiver B"), Type: types.Text("Charity")}
	if *receiver != want {
		t.Fatalf("expected %+v, got %+v", want, *receiver)
	}

	if _, err := repo.Receiver(ctx, 99); !errors.Is(err, types.ErrReceiverNotFound) {
		t.Fatalf("expected ErrReceiverNotFound, got %v", err)
	}
}

func TestClaimsByListing(t *testing.T) {
	ctx := context.Background()
	repo := store.NewClaimRepository(newTestHandle(t, true))

	claims, err := repo.ClaimsByListing(ctx, 1)
	if err != nil {
		t.Fatalf("claims: %v", err)
	}
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}

	want := types.Claim{ID: 1, ListingID: types.Int(1), ReceiverID: types.Int(1), ClaimDate: types.Text("2025-05-08")}
	if *claims[0] != want {
		t.Fatalf("expected %+v, got %+v", want, *claims[0])
	}

	claims, err = repo.ClaimsByListing(ctx, 2)
	if err != nil {
		t.Fatalf("claims: %v", err)
	}
	if len(claims) != 0 {
		t.Fatalf("expected no claims for listing 2, got %d", len(claims))
	}

	if _, err := repo.Claim(ctx, 42); !errors.Is(err, types.ErrClaimNotFound) {
		t.Fatalf("expected ErrClaimNotFound, got %v", err)
	}
}

func TestReplaceProviders(t *testing.T) {
	ctx := context.Background()
	repo := store.NewProviderRepository(newTestHandle(t, true))

	replacement := []types.Provider{{ID: 7, Name: types.Text("Provider Z"), Type: types.Text("Bakery")}}
	if err := repo.ReplaceProviders(ctx, replacement); err != nil {
		t.Fatalf("replace: %v", err)
	}

	providers, err := repo.Providers(ctx)
	if err != nil {
		t.Fatalf("providers: %v", err)
	}
	if len(providers) != 1 || *providers[0] != replacement[0] {
		t.Fatalf("expected only %+v, got %d providers", replacement[0], len(providers))
	}
}

func TestProviderWithNullColumns(t *testing.T) {
	ctx := context.Background()
	handle := newTestHandle(t, true)

	_, err := store.NewDataRepository(handle).RunQuery(ctx,
		"INSERT INTO Providers (Provider_ID) VALUES (3)", store.QueryUnrestricted)
	if err != nil {
		t.Fatalf("insert partial row: %v", err)
	}

	provider, err := store.NewProviderRepository(handle).Provider(ctx, 3)
	if err != nil {
		t.Fatalf("expected provider with NULL columns to load, got %v", err)
	}
	if provider.Name.Valid || provider.Type.Valid {
		t.Fatalf("expected NULL name and type, got %+v", *provider)
	}
}
