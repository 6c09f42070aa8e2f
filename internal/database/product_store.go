package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"storefront/internal/model"
)

const columnsPerRow = 4

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// upsertQuery builds a multi-row upsert for n products.
func upsertQuery(n int) string {
	valueStrings := make([]string, n)
	for i := 0; i < n; i++ {
		b := columnsPerRow * i
		valueStrings[i] = fmt.Sprintf("($%d,$%d,$%d,$%d)", b+1, b+2, b+3, b+4)
	}
	return "insert into products (id, handle, title, fetched_at) values " +
		strings.Join(valueStrings, ",") +
		" on conflict (id) do update set handle = excluded.handle, title = excluded.title, fetched_at = excluded.fetched_at"
}

// upsertRows drops products without an id, since id is the primary key.
func upsertRows(products []*model.Product) []*model.Product {
	rows := make([]*model.Product, 0, len(products))
	for _, p := range products {
		if p != nil && p.ID != nil {
			rows = append(rows, p)
		}
	}
	return rows
}

func (store *ProductStore) UpsertProductsInBatches(ctx context.Context, products []*model.Product, batchSize int, fetchedAt time.Time) (int, error) {
	if batchSize <= 0 {
		return 0, errors.Errorf("invalid batch size %d", batchSize)
	}
	rows := upsertRows(products)

	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	for start := 0; start < len(rows); start += batchSize {
		batch := rows[start:min(start+batchSize, len(rows))]

		valueVals := make([]interface{}, 0, columnsPerRow*len(batch))
		for _, p := range batch {
			valueVals = append(valueVals, *p.ID, nullString(p.Handle), nullString(p.Title), fetchedAt)
		}

		if _, err := tx.ExecContext(ctx, upsertQuery(len(batch)), valueVals...); err != nil {
			return 0, errors.Wrapf(err, "upserting batch at offset %d", start)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing products")
	}
	return len(rows), nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
