package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// PlayerRepository persists player rows.
type PlayerRepository struct {
	db *sql.DB
}

// NewPlayerRepository creates a player repository.
func NewPlayerRepository(db *sql.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Upsert inserts a player or updates its display fields. The id itself never
// changes; a known profile URL is not retracted by a null one.
func (r *PlayerRepository) Upsert(ctx context.Context, p *store.Player) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (player_id, player_name, profile_url)
		VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			player_name = excluded.player_name,
			profile_url = COALESCE(excluded.profile_url, players.profile_url)
	`, p.PlayerID, p.PlayerName, p.ProfileURL)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", p.PlayerID, err)
	}
	return nil
}

// Get returns a player by id, or nil when it does not exist.
func (r *PlayerRepository) Get(ctx context.Context, playerID string) (*store.Player, error) {
	p := &store.Player{}
	err := r.db.QueryRowContext(ctx,
		"SELECT player_id, player_name, profile_url FROM players WHERE player_id = ?",
		playerID,
	).Scan(&p.PlayerID, &p.PlayerName, &p.ProfileURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}
	return p, nil
}
