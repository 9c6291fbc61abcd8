// Package storage provides SQLite-based persistence for Blast scores and
// per-profile board settings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-blast/internal/config"
)

// DefaultProfile is used when no player name is known (local play).
const DefaultProfile = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RoundResult is what a finished round reports for persistence.
type RoundResult struct {
	GameID       string
	Profile      string
	Score        int
	Blasts       int // Number of groups removed
	LargestGroup int // Size of the biggest group removed
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID           int64
	GameID       string
	Profile      string
	Score        int
	Blasts       int
	LargestGroup int
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			profile TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL,
			blasts INTEGER NOT NULL DEFAULT 0,
			largest_group INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_profile ON scores(profile);

		CREATE TABLE IF NOT EXISTS blast_settings (
			profile TEXT PRIMARY KEY,
			board_rows INTEGER NOT NULL,
			board_columns INTEGER NOT NULL,
			colors INTEGER NOT NULL,
			threshold_a INTEGER NOT NULL,
			threshold_b INTEGER NOT NULL,
			threshold_c INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(r RoundResult) (int64, error) {
	if r.Profile == "" {
		r.Profile = DefaultProfile
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, profile, score, blasts, largest_group) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.Profile, r.Score, r.Blasts, r.LargestGroup,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, game_id, profile, score, blasts, largest_group, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, game_id, profile, score, blasts, largest_group, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC`,
		gameID,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Profile, &e.Score, &e.Blasts, &e.LargestGroup, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveSettings stores the board and move settings chosen by a profile,
// replacing any previous ones. The config is validated first.
func (s *Store) SaveSettings(profile string, cfg config.BlastConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("storage: refusing to save settings: %w", err)
	}
	if profile == "" {
		profile = DefaultProfile
	}
	b := cfg.Board
	_, err := s.db.Exec(
		`INSERT INTO blast_settings (profile, board_rows, board_columns, colors, threshold_a, threshold_b, threshold_c, moves, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile) DO UPDATE SET
		   board_rows = excluded.board_rows,
		   board_columns = excluded.board_columns,
		   colors = excluded.colors,
		   threshold_a = excluded.threshold_a,
		   threshold_b = excluded.threshold_b,
		   threshold_c = excluded.threshold_c,
		   moves = excluded.moves,
		   updated_at = CURRENT_TIMESTAMP`,
		profile, b.Rows, b.Columns, b.Colors, b.Thresholds.A, b.Thresholds.B, b.Thresholds.C, cfg.Gameplay.Moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}

// LoadSettings overlays the stored settings of a profile onto base.
// The boolean is false when the profile has never saved any.
func (s *Store) LoadSettings(profile string, base config.BlastConfig) (config.BlastConfig, bool, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	cfg := base
	b := &cfg.Board
	err := s.db.QueryRow(
		`SELECT board_rows, board_columns, colors, threshold_a, threshold_b, threshold_c, moves
		 FROM blast_settings WHERE profile = ?`,
		profile,
	).Scan(&b.Rows, &b.Columns, &b.Colors, &b.Thresholds.A, &b.Thresholds.B, &b.Thresholds.C, &cfg.Gameplay.Moves)

	if errors.Is(err, sql.ErrNoRows) {
		return base, false, nil
	}
	if err != nil {
		return base, false, fmt.Errorf("storage: cannot load settings: %w", err)
	}
	return cfg, true, nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID       string
	GamesCount   int
	HighScore    int
	AvgScore     float64
	TotalScore   int64
	TotalBlasts  int64
	LargestGroup int
	LastPlayed   time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(SUM(blasts), 0), COALESCE(MAX(largest_group), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore,
		&stats.TotalBlasts, &stats.LargestGroup, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), SUM(blasts), MAX(largest_group), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore,
			&st.TotalBlasts, &st.LargestGroup, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.GameID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
