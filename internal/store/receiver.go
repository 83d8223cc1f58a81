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

var receiverColumns = utils.QuotedAliases(utils.StructTagValues(types.Receiver{}))

type ReceiverRepository struct {
	handle *db.Handle
}

func NewReceiverRepository(handle *db.Handle) *ReceiverRepository {
	return &ReceiverRepository{handle: handle}
}

func (r *ReceiverRepository) Receivers(ctx context.Context) ([]*types.Receiver, error) {
	query, args, err := builder(r.handle).
		Select(receiverColumns...).
		From(db.TableReceivers).
		OrderBy("Receiver_ID ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receivers query: %w", err)
	}

	receivers := make([]*types.Receiver, 0)
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Select(ctx, conn, &receivers, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receivers: %w", err)
	}

	return receivers, nil
}

func (r *ReceiverRepository) Receiver(ctx context.Context, id int64) (*types.Receiver, error) {
	query, args, err := builder(r.handle).
		Select(receiverColumns...).
		From(db.TableReceivers).
		Where(sq.Eq{"Receiver_ID": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receiver query: %w", err)
	}

	var receiver types.Receiver
	err = withConn(ctx, r.handle, func(conn *sql.Conn) error {
		return sqlscan.Get(ctx, conn, &receiver, query, args...)
	})
	if err != nil {
		if sqlscan.NotFound(err) {
			return nil, types.ErrReceiverNotFound
		}
		return nil, fmt.Errorf("failed to fetch receiver: %w", err)
	}

	return &receiver, nil
}

func (r *ReceiverRepository) ReplaceReceivers(ctx context.Context, receivers []types.Receiver) error {
	return utils.ErrorWrapOrNil(replaceRows(ctx, r.handle, db.TableReceivers, receivers), "failed to replace receivers")
}

func (r *ReceiverRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.handle, db.TableReceivers)
}
