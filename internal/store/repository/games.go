// Package repository implements the persistence operations over the sqlite
// schema: game/player upserts, stat-row writes, clears, existence checks and
// the team-totals projection.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// GameRepository persists game rows.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a game repository.
func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert inserts or replaces a game by its natural key.
func (r *GameRepository) Upsert(ctx context.Context, g *store.Game) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO games (
			game_id, season, game_date, day_of_week, game_type,
			opponent, opponent_abbr, home_away, team_score, opponent_score,
			result, location, venue, attendance, boxscore_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			season = excluded.season,
			game_date = excluded.game_date,
			day_of_week = excluded.day_of_week,
			game_type = excluded.game_type,
			opponent = excluded.opponent,
			opponent_abbr = excluded.opponent_abbr,
			home_away = excluded.home_away,
			team_score = excluded.team_score,
			opponent_score = excluded.opponent_score,
			result = excluded.result,
			location = excluded.location,
			venue = excluded.venue,
			attendance = excluded.attendance,
			boxscore_url = excluded.boxscore_url
	`,
		g.GameID, g.Season, g.GameDate, g.DayOfWeek, g.GameType,
		g.Opponent, g.OpponentAbbr, g.HomeAway, g.TeamScore, g.OpponentScore,
		g.Result, g.Location, g.Venue, g.Attendance, g.BoxscoreURL,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", g.GameID, err)
	}
	return nil
}

// Get returns a game by id, or nil when it does not exist.
func (r *GameRepository) Get(ctx context.Context, gameID string) (*store.Game, error) {
	g := &store.Game{}
	err := r.db.QueryRowContext(ctx, `
		SELECT game_id, season, game_date, day_of_week, game_type,
		       opponent, opponent_abbr, home_away, team_score, opponent_score,
		       result, location, venue, attendance, boxscore_url
		FROM games WHERE game_id = ?
	`, gameID).Scan(
		&g.GameID, &g.Season, &g.GameDate, &g.DayOfWeek, &g.GameType,
		&g.Opponent, &g.OpponentAbbr, &g.HomeAway, &g.TeamScore, &g.OpponentScore,
		&g.Result, &g.Location, &g.Venue, &g.Attendance, &g.BoxscoreURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	return g, nil
}

// GetByDate returns the game played on a date (YYYY-MM-DD) whose id carries
// the given source prefix, or nil when there is none.
func (r *GameRepository) GetByDate(ctx context.Context, date, sourcePrefix string) (*store.Game, error) {
	g := &store.Game{}
	err := r.db.QueryRowContext(ctx, `
		SELECT game_id, season, game_date, day_of_week, game_type,
		       opponent, opponent_abbr, home_away, team_score, opponent_score,
		       result, location, venue, attendance, boxscore_url
		FROM games WHERE game_date = ? AND game_id LIKE ? || '_%'
	`, date, sourcePrefix).Scan(
		&g.GameID, &g.Season, &g.GameDate, &g.DayOfWeek, &g.GameType,
		&g.Opponent, &g.OpponentAbbr, &g.HomeAway, &g.TeamScore, &g.OpponentScore,
		&g.Result, &g.Location, &g.Venue, &g.Attendance, &g.BoxscoreURL,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game for %s: %w", date, err)
	}
	return g, nil
}

// ListSeasons returns the distinct seasons present, ascending.
func (r *GameRepository) ListSeasons(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT season FROM games ORDER BY season")
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// ListBySeason returns a season's games in date order.
func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]*store.Game, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT game_id, season, game_date, day_of_week, game_type,
		       opponent, opponent_abbr, home_away, team_score, opponent_score,
		       result, location, venue, attendance, boxscore_url
		FROM games WHERE season = ? ORDER BY game_date
	`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for %d: %w", season, err)
	}
	defer rows.Close()

	var games []*store.Game
	for rows.Next() {
		g := &store.Game{}
		if err := rows.Scan(
			&g.GameID, &g.Season, &g.GameDate, &g.DayOfWeek, &g.GameType,
			&g.Opponent, &g.OpponentAbbr, &g.HomeAway, &g.TeamScore, &g.OpponentScore,
			&g.Result, &g.Location, &g.Venue, &g.Attendance, &g.BoxscoreURL,
		); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
