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

var claimColumns = utils.QuotedAliases(utils.StructTagValues(types.Claim{}))

type ClaimRepository struct {
	handle *db.Handle
}

func NewClaimRepository(handle *db.Handle) *ClaimRepository {
	return &ClaimRepository{handle: handle}
}

func (r *ClaimRepository) Claims(ctx context.Context) ([]*types.Claim, error) {
	return r.claims(ctx, nil)
}

// ClaimsByListing returns the claims that point at listingID, oldest first.
func (r *ClaimRepository) ClaimsByListing(ctx context.Context, listingID int64) ([]*types.Claim, error) {
	return r.claims(ctx, sq.Eq{"Listing_ID": listingID})
}

func (r *ClaimRepository) claims(ctx context.Context, where sq.Sqlizer) ([]*types.Claim, error) {
	q := builder(r.handle).
		Select(claimColumns...).
		From(db.TableClaims).
		OrderBy("Claim_ID ASC")
	if where != nil {
		q = q.Where(where)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate claims query: %w", err)
	}

	claims := make([]*types.Claim, 0)
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Select(ctx, conn, &claims, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch claims: %w", err)
	}

	return claims, nil
}

func (r *ClaimRepository) Claim(ctx context.Context, id int64) (*types.Claim, error) {
	query, args, err := builder(r.handle).
		Select(claimColumns...).
		From(db.TableClaims).
		Where(sq.Eq{"Claim_ID": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate claim query: %w", err)
	}

	var claim types.Claim
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Get(ctx, conn, &claim, query, args...)
	})
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to fetch claim: %w", err)
	}

	return &claim, nil
}

func (r *ClaimRepository) ReplaceClaims(ctx context.Context, claims []types.Claim) error {
	return utils.ErrorWrapOrNil(replaceRows(ctx, r.handle, db.TableClaims, claims), "failed to replace claims")
}

func (r *ClaimRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.handle, db.TableClaims)
}
