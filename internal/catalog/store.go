package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; old databases must be deleted and re-scraped.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("catalog schema version mismatch")

// ErrNoRuns indicates the database holds no completed scrape run yet.
var ErrNoRuns = errors.New("no scrape runs recorded")

// timeLayout is RFC 3339 with fixed-width nanoseconds. Timestamps are
// stored as text and ordered lexicographically, so the fraction must
// not vary in width.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run summarizes one recorded traversal.
type Run struct {
	ID          string
	Platform    string
	StartedAt   time.Time
	FinishedAt  time.Time
	SeriesCount int
}

// Store persists catalog snapshots in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s and re-scrape)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// SaveRun records one complete traversal snapshot and returns its run ID.
func (s *Store) SaveRun(ctx context.Context, platform string, startedAt time.Time, series []Series) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO scrape_runs (id, platform, started_at, finished_at, series_count) VALUES (?, ?, ?, ?, ?)",
		runID, platform, startedAt.UTC().Format(timeLayout), time.Now().UTC().Format(timeLayout), len(series))
	if err != nil {
		return "", fmt.Errorf("insert scrape run: %w", err)
	}

	for _, sr := range series {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO series (run_id, title, link, poster, description) VALUES (?, ?, ?, ?, ?)",
			runID, sr.Title, sr.Link, sr.Poster, sr.Description)
		if err != nil {
			return "", fmt.Errorf("insert series %q: %w", sr.Title, err)
		}
		seriesID, err := res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("series insert id: %w", err)
		}

		for seasonPos, season := range sr.Seasons {
			res, err := tx.ExecContext(ctx,
				"INSERT INTO seasons (series_id, title, poster, position) VALUES (?, ?, ?, ?)",
				seriesID, season.Title, season.Poster, seasonPos)
			if err != nil {
				return "", fmt.Errorf("insert season %q: %w", season.Title, err)
			}
			seasonID, err := res.LastInsertId()
			if err != nil {
				return "", fmt.Errorf("season insert id: %w", err)
			}

			for episodePos, episode := range season.Episodes {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO episodes (season_id, title, number, description, page_url, thumbnail, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
					seasonID, episode.Title, episode.Number, episode.Description, episode.PageURL, episode.Thumbnail, episodePos)
				if err != nil {
					return "", fmt.Errorf("insert episode %q: %w", episode.Title, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// LatestRun returns the most recently finished scrape run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, platform, started_at, finished_at, series_count FROM scrape_runs ORDER BY finished_at DESC LIMIT 1")

	var run Run
	var started, finished string
	if err := row.Scan(&run.ID, &run.Platform, &started, &finished, &run.SeriesCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNoRuns
		}
		return Run{}, fmt.Errorf("scan latest run: %w", err)
	}
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	return run, nil
}

// SeriesForRun loads the full series tree recorded under one run.
func (s *Store) SeriesForRun(ctx context.Context, runID string) ([]Series, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, link, poster, description FROM series WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()

	var result []Series
	var ids []int64
	for rows.Next() {
		var id int64
		var sr Series
		if err := rows.Scan(&id, &sr.Title, &sr.Link, &sr.Poster, &sr.Description); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		result = append(result, sr)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}

	for i, seriesID := range ids {
		seasons, err := s.seasonsForSeries(ctx, seriesID)
		if err != nil {
			return nil, err
		}
		result[i].Seasons = seasons
	}
	return result, nil
}

func (s *Store) seasonsForSeries(ctx context.Context, seriesID int64) ([]*Season, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, poster FROM seasons WHERE series_id = ? ORDER BY position", seriesID)
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*Season
	var ids []int64
	for rows.Next() {
		var id int64
		season := &Season{}
		if err := rows.Scan(&id, &season.Title, &season.Poster); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, season)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seasons: %w", err)
	}

	for i, seasonID := range ids {
		episodes, err := s.episodesForSeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		seasons[i].Episodes = episodes
	}
	return seasons, nil
}

func (s *Store) episodesForSeason(ctx context.Context, seasonID int64) ([]Episode, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT title, number, description, page_url, thumbnail FROM episodes WHERE season_id = ? ORDER BY position", seasonID)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var ep Episode
		if err := rows.Scan(&ep.Title, &ep.Number, &ep.Description, &ep.PageURL, &ep.Thumbnail); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		episodes = append(episodes, ep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return episodes, nil
}
