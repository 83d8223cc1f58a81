package store

import (
	"context"
	"database/sql"
	"fmt"

	"foodwaste/internal/db"
	"foodwaste/internal/utils"
	"foodwaste/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

var listingColumns = utils.QuotedAliases(utils.StructTagValues(types.FoodListing{}))

type ListingRepository struct {
	handle *db.Handle
}

func NewListingRepository(handle *db.Handle) *ListingRepository {
	return &ListingRepository{handle: handle}
}

func (r *ListingRepository) Listings(ctx context.Context) ([]*types.FoodListing, error) {
	query, args, err := builder(r.handle).
		Select(listingColumns...).
		From(db.TableFoodListings).
		OrderBy("Listing_ID ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate listings query: %w", err)
	}

	listings := make([]*types.FoodListing, 0)
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Select(ctx, conn, &listings, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}

	return listings, nil
}

func (r *ListingRepository) Listing(ctx context.Context, id int64) (*types.FoodListing, error) {
	query, args, err := builder(r.handle).
		Select(listingColumns...).
		From(db.TableFoodListings).
		Where(sq.Eq{"Listing_ID": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate listing query: %w", err)
	}

	var listing types.FoodListing
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Get(ctx, conn, &listing, query, args...)
	})
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}

	return &listing, nil
}

// CreateListing inserts listing and writes the store-assigned key back into it.
// The provider reference is not checked.
func (r *ListingRepository) CreateListing(ctx context.Context, listing *types.FoodListing) error {
	query, args, err := builder(r.handle).
		Insert(db.TableFoodListings).
		SetMap(utils.StructToMap(listing, "Listing_ID")).
		Suffix("RETURNING Listing_ID").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert listing query: %w", err)
	}

	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, args...).Scan(&listing.ID)
	})

	return utils.ErrorWrapOrNil(err, "failed to create listing")
}

func (r *ListingRepository) ReplaceListings(ctx context.Context, listings []types.FoodListing) error {
	return utils.ErrorWrapOrNil(replaceRows(ctx, r.handle, db.TableFoodListings, listings), "failed to replace listings")
}

func (r *ListingRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.handle, db.TableFoodListings)
}

// QuantityByFoodType sums listing quantities per food type, largest first.
func (r *ListingRepository) QuantityByFoodType(ctx context.Context) ([]*types.FoodTypeTotal, error) {
	query, args, err := builder(r.handle).
		Select(`Food_Type AS "Food_Type"`, `CAST(SUM(Quantity) AS BIGINT) AS "Total"`).
		From(db.TableFoodListings).
		GroupBy("Food_Type").
		OrderBy("2 DESC", "1 ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quantity by food type query: %w", err)
	}

	totals := make([]*types.FoodTypeTotal, 0)
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Select(ctx, conn, &totals, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate quantity by food type: %w", err)
	}

	return totals, nil
}
