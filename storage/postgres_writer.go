package storage

import (
	"context"
	"fmt"
	"time"

	"bear-dashboard-scraper/config"
	"bear-dashboard-scraper/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresWriter keeps a queryable scrape history next to the JSON files.
type PostgresWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresWriter(cfg *config.Config) (*PostgresWriter, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &PostgresWriter{pool: pool}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	sql := `
	CREATE TABLE IF NOT EXISTS dashboard_scrapes (
		id BIGSERIAL PRIMARY KEY,
		brand_visibility TEXT,
		prompt_count TEXT,
		extraction_method TEXT NOT NULL,
		scrape_url TEXT,
		scraped_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_dashboard_scrapes_scraped_at ON dashboard_scrapes(scraped_at);
	`

	if _, err := w.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

// Write inserts one scrape record. Null metric values stay null in the
// table rather than being coerced to empty strings.
func (w *PostgresWriter) Write(record models.ScrapeRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sql := `
	INSERT INTO dashboard_scrapes (brand_visibility, prompt_count, extraction_method, scrape_url, scraped_at)
	VALUES ($1, $2, $3, $4, $5);
	`

	_, err := w.pool.Exec(ctx, sql,
		record.Data.BrandVisibilityPercentage,
		record.Data.PromptCount,
		record.Data.ExtractionMethod,
		record.Data.ScrapeURL,
		record.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scrape record: %w", err)
	}

	return nil
}
