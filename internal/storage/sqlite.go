// Package storage provides SQLite-based persistence for battle history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for battle persistence.
type Store struct {
	db *sql.DB
}

// BattleRecord is the persisted outcome of a single battle.
type BattleRecord struct {
	ID              int64
	Seed            int64
	ClassID         string // class the human played
	OpponentClassID string
	BattleNumber    int    // position within the run, starting at 1
	Winner          string // "human" or "ai"
	Turns           int
	MaxCombo        int
	DamageDealt     int // by the human, total
	DamageTaken     int
	BlessingsBought int
	CreatedAt       time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			class_id TEXT NOT NULL,
			opponent_class_id TEXT NOT NULL,
			battle_number INTEGER NOT NULL DEFAULT 1,
			winner TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			damage_dealt INTEGER NOT NULL DEFAULT 0,
			damage_taken INTEGER NOT NULL DEFAULT 0,
			blessings_bought INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_class_id ON battles(class_id);
		CREATE INDEX IF NOT EXISTS idx_battles_recent ON battles(created_at DESC);
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

// SaveBattle records a finished battle. Returns the ID of the inserted
// record.
func (s *Store) SaveBattle(rec BattleRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO battles
		 (seed, class_id, opponent_class_id, battle_number, winner, turns, max_combo, damage_dealt, damage_taken, blessings_bought)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed,
		rec.ClassID,
		rec.OpponentClassID,
		rec.BattleNumber,
		rec.Winner,
		rec.Turns,
		rec.MaxCombo,
		rec.DamageDealt,
		rec.DamageTaken,
		rec.BlessingsBought,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const battleColumns = `id, seed, class_id, opponent_class_id, battle_number,
	winner, turns, max_combo, damage_dealt, damage_taken, blessings_bought, created_at`

// RecentBattles retrieves the most recent battles, newest first.
func (s *Store) RecentBattles(limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+battleColumns+`
		 FROM battles
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	return scanBattles(rows)
}

// BattlesForClass retrieves battles the given class played, newest first.
func (s *Store) BattlesForClass(classID string, limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+battleColumns+`
		 FROM battles
		 WHERE class_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		classID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	return scanBattles(rows)
}

func scanBattles(rows *sql.Rows) ([]BattleRecord, error) {
	var records []BattleRecord
	for rows.Next() {
		var rec BattleRecord
		var createdAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.Seed,
			&rec.ClassID,
			&rec.OpponentClassID,
			&rec.BattleNumber,
			&rec.Winner,
			&rec.Turns,
			&rec.MaxCombo,
			&rec.DamageDealt,
			&rec.DamageTaken,
			&rec.BlessingsBought,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTimestamp handles the driver returning either time.Time or the raw
// SQLite text representation.
func parseTimestamp(v any) time.Time {
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

// ClearHistory deletes every recorded battle.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec("DELETE FROM battles")
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// ClassStats contains aggregated statistics for one class.
type ClassStats struct {
	ClassID    string
	Battles    int
	Wins       int
	BestCombo  int
	AvgTurns   float64
	LastPlayed time.Time
}

// GetClassStats retrieves aggregated statistics for a specific class.
func (s *Store) GetClassStats(classID string) (*ClassStats, error) {
	stats := &ClassStats{ClassID: classID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 'human' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(max_combo), 0),
		        COALESCE(AVG(turns), 0)
		 FROM battles WHERE class_id = ?`,
		classID,
	).Scan(&stats.Battles, &stats.Wins, &stats.BestCombo, &stats.AvgTurns)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get class stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM battles WHERE class_id = ? ORDER BY id DESC LIMIT 1`,
		classID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// GetAllClassStats retrieves statistics for every class that has battled.
func (s *Store) GetAllClassStats() (map[string]*ClassStats, error) {
	rows, err := s.db.Query(
		`SELECT class_id, COUNT(*),
		        SUM(CASE WHEN winner = 'human' THEN 1 ELSE 0 END),
		        MAX(max_combo), AVG(turns), MAX(created_at)
		 FROM battles
		 GROUP BY class_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all class stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ClassStats)
	for rows.Next() {
		var cs ClassStats
		var lastPlayed any
		if err := rows.Scan(&cs.ClassID, &cs.Battles, &cs.Wins, &cs.BestCombo, &cs.AvgTurns, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		cs.LastPlayed = parseTimestamp(lastPlayed)
		stats[cs.ClassID] = &cs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
