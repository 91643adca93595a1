package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Store and SyncProgress share these queries. The upsert keeps the larger
// value so no writer can lower a stored high-water mark.
const (
	loadProgressSQL = `SELECT unlocked_level FROM progress WHERE profile = ? AND mode = ?`
	saveProgressSQL = `INSERT INTO progress (profile, mode, unlocked_level) VALUES (?, ?, ?)
		ON CONFLICT(profile, mode) DO UPDATE SET
			unlocked_level = MAX(unlocked_level, excluded.unlocked_level),
			updated_at = CURRENT_TIMESTAMP`
	resetProgressSQL = `DELETE FROM progress WHERE profile = ? AND mode = ?`
)

func loadUnlocked(ctx context.Context, db *sql.DB, profile, mode string) (int, error) {
	var level int
	err := db.QueryRowContext(ctx, loadProgressSQL, profile, mode).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load progress for %s/%s: %w", profile, mode, err)
	}
	return level, nil
}

func saveUnlocked(ctx context.Context, db *sql.DB, profile, mode string, level int) error {
	if _, err := db.ExecContext(ctx, saveProgressSQL, profile, mode, level); err != nil {
		return fmt.Errorf("storage: cannot save progress for %s/%s: %w", profile, mode, err)
	}
	return nil
}

func resetUnlocked(ctx context.Context, db *sql.DB, profile, mode string) error {
	if _, err := db.ExecContext(ctx, resetProgressSQL, profile, mode); err != nil {
		return fmt.Errorf("storage: cannot reset progress for %s/%s: %w", profile, mode, err)
	}
	return nil
}

// LoadUnlocked returns the stored unlocked level, 1 when nothing is stored.
func (s *Store) LoadUnlocked(profile, mode string) (int, error) {
	return loadUnlocked(context.Background(), s.db, profile, mode)
}

// SaveUnlocked raises the stored unlocked level. Lower values are ignored.
func (s *Store) SaveUnlocked(profile, mode string, level int) error {
	return saveUnlocked(context.Background(), s.db, profile, mode, level)
}

// ResetUnlocked forgets the stored progress of one mode.
func (s *Store) ResetUnlocked(profile, mode string) error {
	return resetUnlocked(context.Background(), s.db, profile, mode)
}

// Progress returns the unlocked level of every mode stored for a profile.
func (s *Store) Progress(profile string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT mode, unlocked_level FROM progress WHERE profile = ? ORDER BY mode`, profile)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var mode string
		var level int
		if err := rows.Scan(&mode, &level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		result[mode] = level
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return result, nil
}

// SyncProgress is a second progress database, typically on a shared or
// network-mounted path, used as the best-effort remote copy.
// Every call honours the context deadline.
type SyncProgress struct {
	db *sql.DB
}

// OpenSync opens or creates the sync database.
func OpenSync(ctx context.Context, dbPath string) (*SyncProgress, error) {
	db, err := openDB(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	return &SyncProgress{db: db}, nil
}

// LoadUnlocked returns the synced unlocked level, 1 when nothing is stored.
func (p *SyncProgress) LoadUnlocked(ctx context.Context, profile, mode string) (int, error) {
	return loadUnlocked(ctx, p.db, profile, mode)
}

// SaveUnlocked raises the synced unlocked level.
func (p *SyncProgress) SaveUnlocked(ctx context.Context, profile, mode string, level int) error {
	return saveUnlocked(ctx, p.db, profile, mode, level)
}

// ResetUnlocked forgets the synced progress of one mode.
func (p *SyncProgress) ResetUnlocked(ctx context.Context, profile, mode string) error {
	return resetUnlocked(ctx, p.db, profile, mode)
}

// Close closes the sync database.
func (p *SyncProgress) Close() error {
	return p.db.Close()
}
