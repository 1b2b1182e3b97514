package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"housing-info/models"
	"housing-info/utils"
)

const (
	houseColumnCount = 14
	insertBatchSize  = 50
)

// PostgresWriter mirrors the dataset into a PostgreSQL "houses" table.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection, waits for the server with retry,
// runs the schema migration, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, maxRetries int, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: maxRetries, BaseDelay: time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS houses (
			id                SERIAL PRIMARY KEY,
			position          INTEGER  NOT NULL UNIQUE,
			price             BIGINT   NOT NULL,
			area              BIGINT   NOT NULL,
			bedrooms          INTEGER  NOT NULL,
			bathrooms         INTEGER  NOT NULL,
			stories           INTEGER  NOT NULL,
			mainroad          BOOLEAN  NOT NULL,
			guestroom         BOOLEAN  NOT NULL,
			basement          BOOLEAN  NOT NULL,
			hotwaterheating   BOOLEAN  NOT NULL,
			airconditioning   BOOLEAN  NOT NULL,
			parking           INTEGER  NOT NULL,
			prefarea          BOOLEAN  NOT NULL,
			furnishingstatus  VARCHAR(20) NOT NULL,
			synced_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_houses_price            ON houses(price);
		CREATE INDEX IF NOT EXISTS idx_houses_furnishingstatus ON houses(furnishingstatus);
	`)
	return err
}

// Replace deletes the stored copy and inserts houses in one transaction.
// It returns the number of rows written.
func (pw *PostgresWriter) Replace(ctx context.Context, houses []models.House) (int, error) {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM houses"); err != nil {
		return 0, fmt.Errorf("postgres: clear: %w", err)
	}

	for start := 0; start < len(houses); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(houses) {
			end = len(houses)
		}
		query, args := insertBatch(start, houses[start:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("postgres: insert rows %d-%d: %w", start+1, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("postgres: commit: %w", err)
	}
	return len(houses), nil
}

// insertBatch builds a multi-row INSERT; offset is the zero-based dataset
// position of batch[0].
func insertBatch(offset int, batch []models.House) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*houseColumnCount)

	for idx, h := range batch {
		placeholders := make([]string, houseColumnCount)
		for col := range placeholders {
			placeholders[col] = fmt.Sprintf("$%d", idx*houseColumnCount+col+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			offset+idx+1, int64(h.Price), int64(h.Area), int64(h.Bedrooms), int64(h.Bathrooms),
			int64(h.Stories), bool(h.MainRoad), bool(h.GuestRoom), bool(h.Basement),
			bool(h.HotWaterHeating), bool(h.AirConditioning), int64(h.Parking), bool(h.PrefArea),
			string(h.FurnishingStatus))
	}

	query := `INSERT INTO houses (position, price, area, bedrooms, bathrooms, stories, mainroad,
		guestroom, basement, hotwaterheating, airconditioning, parking, prefarea, furnishingstatus)
		VALUES ` + strings.Join(valueStrings, ",")
	return query, valueArgs
}

// FetchAll reads the mirrored houses back in dataset order.
func (pw *PostgresWriter) FetchAll(ctx context.Context) ([]models.House, error) {
	rows, err := pw.db.QueryContext(ctx, `
		SELECT price, area, bedrooms, bathrooms, stories, mainroad, guestroom, basement,
		       hotwaterheating, airconditioning, parking, prefarea, furnishingstatus
		FROM houses
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var houses []models.House
	for rows.Next() {
		var (
			h      models.House
			status string
		)
		if err := rows.Scan(
			&h.Price, &h.Area, &h.Bedrooms, &h.Bathrooms, &h.Stories,
			(*bool)(&h.MainRoad), (*bool)(&h.GuestRoom), (*bool)(&h.Basement),
			(*bool)(&h.HotWaterHeating), (*bool)(&h.AirConditioning),
			&h.Parking, (*bool)(&h.PrefArea), &status,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if h.FurnishingStatus, err = models.ParseFurnishingStatus(status); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		houses = append(houses, h)
	}
	return houses, rows.Err()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
