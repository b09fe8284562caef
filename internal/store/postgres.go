package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/nwk5097-a11y/mlb-app/pkg/models"
)

// Schema creates the archive table
const Schema = `
	CREATE TABLE IF NOT EXISTS trend_snapshots (
		player_id        INTEGER          NOT NULL,
		season           INTEGER          NOT NULL,
		game_number      INTEGER          NOT NULL,
		game_date        TEXT             NOT NULL,
		at_bats          INTEGER          NOT NULL,
		hits             INTEGER          NOT NULL,
		base_on_balls    INTEGER          NOT NULL,
		hit_by_pitch     INTEGER          NOT NULL,
		sac_flies        INTEGER          NOT NULL,
		total_bases      INTEGER          NOT NULL,
		batting_average  DOUBLE PRECISION NOT NULL,
		on_base_pct      DOUBLE PRECISION NOT NULL,
		slugging_pct     DOUBLE PRECISION NOT NULL,
		ops              DOUBLE PRECISION NOT NULL,
		archived_at      TIMESTAMPTZ      NOT NULL,
		PRIMARY KEY (player_id, season, game_number)
	)
`

// TrendArchive persists cumulative series
type TrendArchive interface {
	SaveTrend(ctx context.Context, trend *models.Trend) error
	LoadTrend(ctx context.Context, playerID, season int) ([]models.CumulativeSnapshot, time.Time, error)
	Close() error
}

// Postgres implements TrendArchive for PostgreSQL
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection pool and verifies it
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{db: db}, nil
}

// NewPostgresFromDB wraps an existing pool
func NewPostgresFromDB(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the archive table if needed
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create trend_snapshots: %w", err)
	}
	return nil
}

// SaveTrend replaces the archived series for a player-season
func (p *Postgres) SaveTrend(ctx context.Context, trend *models.Trend) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM trend_snapshots WHERE player_id = $1 AND season = $2`,
		trend.PlayerID, trend.Season,
	); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}

	query := `
		INSERT INTO trend_snapshots (
			player_id, season, game_number, game_date,
			at_bats, hits, base_on_balls, hit_by_pitch, sac_flies, total_bases,
			batting_average, on_base_pct, slugging_pct, ops, archived_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	archivedAt := trend.UpdatedAt
	if archivedAt.IsZero() {
		archivedAt = time.Now().UTC()
	}

	for _, s := range trend.Snapshots {
		if _, err := tx.ExecContext(ctx, query,
			trend.PlayerID,
			trend.Season,
			s.GameNumber,
			s.Date,
			s.CumulativeAtBats,
			s.CumulativeHits,
			s.CumulativeBaseOnBalls,
			s.CumulativeHitByPitch,
			s.CumulativeSacFlies,
			s.CumulativeTotalBases,
			s.BattingAverage,
			s.OnBasePercentage,
			s.SluggingPercentage,
			s.OnBasePlusSlugging,
			archivedAt,
		); err != nil {
			return fmt.Errorf("insert snapshot %d: %w", s.GameNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadTrend reads an archived series ordered by game number along with
// the time it was archived
func (p *Postgres) LoadTrend(ctx context.Context, playerID, season int) ([]models.CumulativeSnapshot, time.Time, error) {
	query := `
		SELECT game_number, game_date,
		       at_bats, hits, base_on_balls, hit_by_pitch, sac_flies, total_bases,
		       batting_average, on_base_pct, slugging_pct, ops, archived_at
		FROM trend_snapshots
		WHERE player_id = $1 AND season = $2
		ORDER BY game_number
	`

	rows, err := p.db.QueryContext(ctx, query, playerID, season)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.CumulativeSnapshot
	var archivedAt time.Time
	for rows.Next() {
		var s models.CumulativeSnapshot
		var rowArchivedAt time.Time
		if err := rows.Scan(
			&s.GameNumber,
			&s.Date,
			&s.CumulativeAtBats,
			&s.CumulativeHits,
			&s.CumulativeBaseOnBalls,
			&s.CumulativeHitByPitch,
			&s.CumulativeSacFlies,
			&s.CumulativeTotalBases,
			&s.BattingAverage,
			&s.OnBasePercentage,
			&s.SluggingPercentage,
			&s.OnBasePlusSlugging,
			&rowArchivedAt,
		); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan snapshot: %w", err)
		}
		if rowArchivedAt.After(archivedAt) {
			archivedAt = rowArchivedAt
		}
		snapshots = append(snapshots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate snapshots: %w", err)
	}

	return snapshots, archivedAt, nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	return p.db.Close()
}
