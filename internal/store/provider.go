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

var providerColumns = utils.QuotedAliases(utils.StructTagValues(types.Provider{}))

type ProviderRepository struct {
	handle *db.Handle
}

func NewProviderRepository(handle *db.Handle) *ProviderRepository {
	return &ProviderRepository{handle: handle}
}

func (r *ProviderRepository) Providers(ctx context.Context) ([]*types.Provider, error) {
	query, args, err := builder(r.handle).
		Select(providerColumns...).
		From(db.TableProviders).
		OrderBy("Provider_ID ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate providers query: %w", err)
	}

	providers := make([]*types.Provider, 0)
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Select(ctx, conn, &providers, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}

	return providers, nil
}

func (r *ProviderRepository) Provider(ctx context.Context, id int64) (*types.Provider, error) {
	query, args, err := builder(r.handle).
		Select(providerColumns...).
		From(db.TableProviders).
		Where(sq.Eq{"Provider_ID": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate provider query: %w", err)
	}

	var provider types.Provider
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Get(ctx, conn, &provider, query, args...)
	})
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrProviderNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}

	return &provider, nil
}

func (r *ProviderRepository) ReplaceProviders(ctx context.Context, providers []types.Provider) error {
	return utils.ErrorWrapOrNil(replaceRows(ctx, r.handle, db.TableProviders, providers), "failed to replace providers")
}

func (r *ProviderRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.handle, db.TableProviders)
}
