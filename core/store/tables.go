package store

import (
	"context"
	"fmt"

	"github.com/dryack/gDiceTable/core/table"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Schema creates every relation the store uses.
const Schema = `
CREATE TABLE IF NOT EXISTS dice_results (
	expression TEXT PRIMARY KEY,
	data       JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS random_tables (
	id         TEXT PRIMARY KEY,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS random_table_rows (
	table_id    TEXT    NOT NULL REFERENCES random_tables (id) ON DELETE CASCADE,
	position    INTEGER NOT NULL,
	description TEXT    NOT NULL,
	weight      INTEGER NOT NULL CHECK (weight >= 0),
	subtable    TEXT    NOT NULL DEFAULT '',
	PRIMARY KEY (table_id, position)
);`

// TableStore loads and saves random tables.
type TableStore interface {
	LoadAll(ctx context.Context) (table.Registry, error)
	Save(ctx context.Context, t *table.Table) error
}

type PostgresTables struct {
	pool *pgxpool.Pool
}

func NewPostgresTables(pool *pgxpool.Pool) *PostgresTables {
	return &PostgresTables{pool: pool}
}

// Migrate applies Schema.
func (s *PostgresTables) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

// tableRow is one row of the random_tables/random_table_rows join.
type tableRow struct {
	tableID string
	row     table.Row
}

func (s *PostgresTables) LoadAll(ctx context.Context) (table.Registry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, COALESCE(r.description, ''), COALESCE(r.weight, 0), COALESCE(r.subtable, '')
		FROM random_tables t
		LEFT JOIN random_table_rows r ON r.table_id = t.id
		ORDER BY t.id, r.position`)
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	defer rows.Close()

	var scanned []tableRow
	for rows.Next() {
		var tr tableRow
		if err := rows.Scan(&tr.tableID, &tr.row.Description, &tr.row.Weight, &tr.row.Subtable); err != nil {
			return nil, fmt.Errorf("scanning table row: %w", err)
		}
		scanned = append(scanned, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}
	return groupRows(scanned), nil
}

// groupRows builds a registry from join rows ordered by table. A table with
// no rows appears once with zero weight and is skipped.
func groupRows(scanned []tableRow) table.Registry {
	var tables []*table.Table
	var cur *table.Table
	for _, tr := range scanned {
		if cur == nil || cur.ID != tr.tableID {
			cur = &table.Table{ID: tr.tableID}
			tables = append(tables, cur)
		}
		if tr.row.Weight == 0 && tr.row.Description == "" && tr.row.Subtable == "" {
			continue
		}
		cur.Rows = append(cur.Rows, tr.row)
	}

	reg := table.NewRegistry()
	for _, t := range tables {
		if len(t.Rows) > 0 {
			reg[t.ID] = t
		}
	}
	return reg
}

// Save replaces the stored rows of t in a single transaction.
func (s *PostgresTables) Save(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			"INSERT INTO random_tables (id) VALUES ($1) ON CONFLICT (id) DO UPDATE SET updated_at = NOW()",
			t.ID); err != nil {
			return fmt.Errorf("saving table %q: %w", t.ID, err)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM random_table_rows WHERE table_id = $1", t.ID); err != nil {
			return fmt.Errorf("saving table %q: %w", t.ID, err)
		}

		batch := &pgx.Batch{}
		for i, r := range t.Rows {
			batch.Queue(
				"INSERT INTO random_table_rows (table_id, position, description, weight, subtable) VALUES ($1, $2, $3, $4, $5)",
				t.ID, i, r.Description, r.Weight, r.Subtable)
		}
		br := tx.SendBatch(ctx, batch)
		for range t.Rows {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("saving rows of %q: %w", t.ID, err)
			}
		}
		return br.Close()
	})
}
