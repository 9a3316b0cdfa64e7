package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Database wraps the SQLite connection holding the archive.
type Database struct {
	conn *sql.DB
	path string
}

// NewDatabase opens (or creates) the archive database at path and applies
// pending migrations.
func NewDatabase(path string) (*Database, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The scraper is single-writer; WAL keeps the API readable mid-scrape.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &Database{conn: conn, path: path}
	if err := db.runMigrations(); err != nil {
		conn.Close()
		return nil, err
	}

	return db, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// Path returns the on-disk location of the database file.
func (db *Database) Path() string {
	return db.path
}

// HealthCheck pings the database.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// migration is one schema step; the binary is self-contained so the SQL is
// embedded rather than read from disk.
type migration struct {
	version string
	sql     string
}

var migrations = []migration{
	{"001_games", `
		CREATE TABLE IF NOT EXISTS games (
			game_id        TEXT PRIMARY KEY,
			season         INTEGER NOT NULL,
			game_date      TEXT NOT NULL,
			day_of_week    TEXT,
			game_type      TEXT NOT NULL DEFAULT 'regular',
			opponent       TEXT NOT NULL,
			opponent_abbr  TEXT,
			home_away      TEXT NOT NULL,
			team_score     INTEGER,
			opponent_score INTEGER,
			result         TEXT,
			location       TEXT,
			venue          TEXT,
			attendance     INTEGER,
			boxscore_url   TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_games_season ON games(season);
		CREATE INDEX IF NOT EXISTS idx_games_date ON games(game_date);
	`},
	{"002_players", `
		CREATE TABLE IF NOT EXISTS players (
			player_id   TEXT PRIMARY KEY,
			player_name TEXT NOT NULL,
			profile_url TEXT
		);
	`},
	{"003_player_stats", `
		CREATE TABLE IF NOT EXISTS player_passing (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			att INTEGER, com INTEGER, yds INTEGER, td INTEGER, int_thrown INTEGER,
			lg INTEGER, sacked INTEGER, sacked_yds INTEGER, rtg REAL, pct REAL,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_rushing (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			att INTEGER, yds INTEGER, avg REAL, lg INTEGER, td INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_receiving (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			tar INTEGER, rec INTEGER, yds INTEGER, avg REAL, lg INTEGER, td INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_punt_returns (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			ret INTEGER, fc INTEGER, yds INTEGER, avg REAL, lg INTEGER, td INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_kick_returns (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			ret INTEGER, fc INTEGER, yds INTEGER, avg REAL, lg INTEGER, td INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_punting (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			punts INTEGER, yds INTEGER, avg REAL, lg INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_kickoffs (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			kickoffs INTEGER, yds INTEGER, avg REAL, tb INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_defense (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			tkl INTEGER, ast INTEGER, sacks REAL,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_interceptions (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			int_count INTEGER, yds INTEGER, avg REAL, lg INTEGER, td INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
		CREATE TABLE IF NOT EXISTS player_sacks (
			game_id TEXT NOT NULL, player_id TEXT NOT NULL, team TEXT NOT NULL,
			sacks REAL, yds INTEGER,
			PRIMARY KEY (game_id, player_id, team)
		);
	`},
	{"004_scoring_plays", `
		CREATE TABLE IF NOT EXISTS scoring_plays (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id     TEXT NOT NULL,
			seq         INTEGER NOT NULL,
			quarter     TEXT,
			team        TEXT,
			description TEXT,
			UNIQUE (game_id, seq)
		);
	`},
	{"005_team_game_stats", `
		CREATE TABLE IF NOT EXISTS team_game_stats (
			game_id   TEXT NOT NULL,
			team      TEXT NOT NULL,
			pass_att  INTEGER, pass_com INTEGER, pass_yds INTEGER,
			pass_td   INTEGER, pass_int INTEGER,
			rush_att  INTEGER, rush_yds INTEGER, rush_td INTEGER,
			total_yds INTEGER, turnovers INTEGER,
			PRIMARY KEY (game_id, team)
		);
	`},
}

// runMigrations applies all pending migrations in order.
func (db *Database) runMigrations() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists bool
		err := db.conn.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", m.version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.version, err)
		}
		if exists {
			continue
		}

		tx, err := db.conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		log.Printf("[store] applied migration %s", m.version)
	}

	return nil
}
