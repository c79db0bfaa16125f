package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS news (
	id             BIGSERIAL PRIMARY KEY,
	sector         TEXT NOT NULL,
	title          TEXT NOT NULL,
	link           TEXT,
	source         TEXT NOT NULL DEFAULT '',
	published_date TIMESTAMPTZ,
	summary_ko     TEXT,
	summary_en     TEXT,
	citations      JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (sector, link)
);
CREATE INDEX IF NOT EXISTS news_sector_created_at_idx ON news (sector, created_at DESC);`

const newsColumns = `id, sector, title, link, source, published_date, summary_ko, summary_en, citations, created_at`

// PostgresStore is the relational NewsStore backed by lib/pq.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
	log zerolog.Logger
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:  db,
		now: time.Now,
		log: logger.Component("storage"),
	}
}

// Migrate creates the news table when it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate news table: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveNews(ctx context.Context, items []models.NewsItem) (SaveResult, error) {
	if len(items) == 0 {
		return SaveResult{}, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var saved int
	for _, it := range items {
		citations := it.Citations
		if citations == nil {
			citations = []models.Citation{}
		}
		citationsJSON, err := json.Marshal(citations)
		if err != nil {
			return SaveResult{}, fmt.Errorf("failed to encode citations: %w", err)
		}

		var published sql.NullTime
		if t, ok := parseDate(it.Date); ok {
			published = sql.NullTime{Time: t, Valid: true}
		}

		var id int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO news (sector, title, link, source, published_date, summary_ko, summary_en, citations)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (sector, link) DO NOTHING
			RETURNING id
		`, it.Sector.String(), it.Title, nullString(storedLink(it.Link)), it.Source, published,
			nullPtr(it.SummaryKO), nullPtr(it.SummaryEN), string(citationsJSON)).Scan(&id)

		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return SaveResult{}, fmt.Errorf("failed to save news: %w", err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("failed to commit news: %w", err)
	}

	res := SaveResult{Saved: saved, Skipped: len(items) - saved}
	s.log.Info().
		Int("saved", res.Saved).
		Int("skipped", res.Skipped).
		Msg("Saved news batch")
	return res, nil
}

func (s *PostgresStore) RecentNews(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+newsColumns+`
		FROM news
		WHERE sector = $1 AND created_at >= $2
		ORDER BY created_at DESC
	`, sec.String(), s.now().Add(-RecentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent news: %w", err)
	}
	return scanNews(rows)
}

func (s *PostgresStore) AllRecentNews(ctx context.Context) (map[sector.Sector][]models.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+newsColumns+`
		FROM news
		WHERE created_at >= $1
		ORDER BY created_at DESC
	`, s.now().Add(-RecentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch all recent news: %w", err)
	}
	items, err := scanNews(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[sector.Sector][]models.NewsItem)
	for _, it := range items {
		grouped[it.Sector] = append(grouped[it.Sector], it)
	}
	return grouped, nil
}

func (s *PostgresStore) HistoricalNews(ctx context.Context, sec sector.Sector, page, limit int) (*HistoryPage, error) {
	page, limit = ClampPage(page, limit)
	cutoff := s.now().Add(-RetentionWindow)

	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM news WHERE sector = $1 AND created_at >= $2
	`, sec.String(), cutoff).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count historical news: %w", err)
	}

	news := []models.NewsItem{}
	if offset, ok := pageOffset(page, limit, total); ok {
		rows, err := s.db.QueryContext(ctx, `
			SELECT `+newsColumns+`
			FROM news
			WHERE sector = $1 AND created_at >= $2
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4
		`, sec.String(), cutoff, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch historical news: %w", err)
		}
		if news, err = scanNews(rows); err != nil {
			return nil, err
		}
	}

	return &HistoryPage{
		News:        news,
		Total:       total,
		Pages:       PageCount(total, limit),
		CurrentPage: page,
	}, nil
}

func (s *PostgresStore) DeleteOldNews(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE created_at < $1`, s.now().Add(-RetentionWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old news: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete old news: %w", err)
	}
	s.log.Info().Int64("deleted", n).Msg("Deleted news past retention")
	return n, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func scanNews(rows *sql.Rows) ([]models.NewsItem, error) {
	defer rows.Close()

	items := []models.NewsItem{}
	for rows.Next() {
		var (
			id           int64
			sec          string
			it           models.NewsItem
			link, ko, en sql.NullString
			published    sql.NullTime
			citations    []byte
			createdAt    time.Time
		)
		if err := rows.Scan(&id, &sec, &it.Title, &link, &it.Source, &published, &ko, &en, &citations, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan news row: %w", err)
		}

		it.ID = strconv.FormatInt(id, 10)
		it.Sector = sector.Sector(sec)
		it.Link = "#"
		if link.Valid {
			it.Link = link.String
		}
		if published.Valid {
			it.Date = published.Time.UTC().Format(time.RFC3339)
		}
		if ko.Valid {
			it.SummaryKO = &ko.String
		}
		if en.Valid {
			it.SummaryEN = &en.String
		}
		it.Citations = []models.Citation{}
		if len(citations) > 0 {
			if err := json.Unmarshal(citations, &it.Citations); err != nil {
				return nil, fmt.Errorf("failed to decode citations: %w", err)
			}
		}
		created := createdAt
		it.CreatedAt = &created

		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return nullString(*s)
}
