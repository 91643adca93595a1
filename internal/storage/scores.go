package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// DefaultProfile names runs saved without a profile.
const DefaultProfile = "default"

const (
	insertScoreSQL = `INSERT INTO scores (game_id, profile, score, level) VALUES (?, ?, ?, ?)`
	scoreColumns   = `id, game_id, profile, score, level, created_at`
	topScoresSQL   = `SELECT ` + scoreColumns + ` FROM scores
		WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`
	profileScoresSQL = `SELECT ` + scoreColumns + ` FROM scores
		WHERE game_id = ? AND profile = ? ORDER BY score DESC, id ASC LIMIT ?`
	statsSQL = `SELECT game_id, COUNT(*), MAX(score), AVG(score), MAX(level), MAX(created_at)
		FROM scores GROUP BY game_id`
)

// ScoreEntry is one finished run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Profile   string
	Score     int
	Level     int // Level the run ended on
	CreatedAt time.Time
}

// GameStats aggregates every run of one mode.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	BestLevel  int
	LastPlayed time.Time
}

// SaveScore records the final score of a run and returns its row ID.
func (s *Store) SaveScore(gameID, profile string, score, level int) (int64, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	res, err := s.db.ExecContext(context.Background(), insertScoreSQL, gameID, profile, score, level)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best runs of a mode, highest first. Ties keep
// insertion order. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	return s.queryScores(topScoresSQL, gameID, scoreLimit(limit))
}

// ProfileScores is TopScores restricted to one profile.
func (s *Store) ProfileScores(gameID, profile string, limit int) ([]ScoreEntry, error) {
	return s.queryScores(profileScoresSQL, gameID, profile, scoreLimit(limit))
}

func scoreLimit(n int) int {
	if n <= 0 {
		return 10
	}
	return n
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e  ScoreEntry
			at any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Profile, &e.Score, &e.Level, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan score: %w", err)
		}
		e.CreatedAt = parseTime(at)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read scores: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score of a mode, 0 when there are none.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	row := s.db.QueryRowContext(context.Background(), `SELECT MAX(score) FROM scores WHERE game_id = ?`, gameID)
	if err := row.Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores deletes every run of a mode.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.ExecContext(context.Background(), `DELETE FROM scores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats returns per-mode aggregates for every mode with at least one run.
func (s *Store) GameStats() (map[string]*GameStats, error) {
	rows, err := s.db.QueryContext(context.Background(), statsSQL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		gs := &GameStats{}
		var last any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.BestLevel, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
		}
		gs.LastPlayed = parseTime(last)
		stats[gs.GameID] = gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read stats: %w", err)
	}
	return stats, nil
}
