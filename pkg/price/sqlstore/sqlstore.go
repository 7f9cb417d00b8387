// Package sqlstore persists the price dataset in a SQL table. The queries
// use $N placeholders and run unchanged on PostgreSQL (lib/pq) and SQLite
// (modernc.org/sqlite).
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"stockdata/pkg/price"
)

var _ price.Store = (*Store)(nil)

const schema = `CREATE TABLE IF NOT EXISTS prices (
	seq INTEGER PRIMARY KEY,
	date TEXT NOT NULL,
	open TEXT NOT NULL,
	high TEXT NOT NULL,
	low TEXT NOT NULL,
	close TEXT NOT NULL,
	adj_close TEXT NOT NULL,
	volume TEXT NOT NULL
)`

// Store persists the dataset in the prices table. seq keeps file order.
type Store struct {
	db *sql.DB
}

// New creates a SQL store. Call Migrate before first use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the prices table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create prices table: %w", err)
	}
	return nil
}

// Load fetches all rows ordered by seq.
func (s *Store) Load(ctx context.Context) (price.Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT date,open,high,low,close,adj_close,volume FROM prices ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	ds := price.Dataset{}
	for rows.Next() {
		var r price.Record
		if err := rows.Scan(&r.Date, &r.Open, &r.High, &r.Low, &r.Close, &r.AdjClose, &r.Volume); err != nil {
			return nil, fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
		}
		ds = append(ds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	return ds, nil
}

// Save replaces the table contents inside one transaction.
func (s *Store) Save(ctx context.Context, ds price.Dataset) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM prices"); err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO prices (seq,date,open,high,low,close,adj_close,volume) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)")
	if err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	defer stmt.Close()

	for i, r := range ds {
		if _, err = stmt.ExecContext(ctx, i, r.Date, r.Open, r.High, r.Low, r.Close, r.AdjClose, r.Volume); err != nil {
			return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", price.ErrStorageUnavailable, err)
	}
	return nil
}
