package store

import (
	"context"
	"fmt"

	"github.com/desimtools/simdb/internal/schema"
)

// Insert persists one record using the descriptor's synthesized INSERT
// statement and matching value list. For tables with an auto-increment key
// it returns the store-assigned id; otherwise the returned id is zero.
func Insert[T any](ctx context.Context, s *Store, d *schema.Descriptor[T], rec *T) (int64, error) {
	res, err := s.db.ExecContext(ctx, d.InsertSQL(), d.InsertRow(rec)...)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", d.TableName(), err)
	}
	if !d.AutoIncrementKey() {
		return 0, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert into %s: last insert id: %w", d.TableName(), err)
	}
	return id, nil
}

// InsertAll persists a batch of records of one kind. The batch is not
// transactional: per-replication statistics inserts are independent
// single-statement operations.
func InsertAll[T any](ctx context.Context, s *Store, d *schema.Descriptor[T], recs []T) error {
	for i := range recs {
		if _, err := Insert(ctx, s, d, &recs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Update rewrites one record's non-key columns using the descriptor's
// synthesized UPDATE statement, keyed by the record's key-field values.
// Updating a row that does not exist is an error: the lifecycle protocol
// never updates a record it has not first inserted.
func Update[T any](ctx context.Context, s *Store, d *schema.Descriptor[T], rec *T) error {
	res, err := s.db.ExecContext(ctx, d.UpdateSQL(), d.UpdateRow(rec)...)
	if err != nil {
		return fmt.Errorf("update %s: %w", d.TableName(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: rows affected: %w", d.TableName(), err)
	}
	if n == 0 {
		return fmt.Errorf("update %s: no row matched key %v", d.TableName(), d.KeyRow(rec))
	}
	return nil
}
