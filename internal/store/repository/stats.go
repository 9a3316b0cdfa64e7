package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/store"
)

// StatRepository persists per-player stat rows, scoring plays and the
// team-totals projection.
type StatRepository struct {
	db *sql.DB
}

// NewStatRepository creates a stat repository.
func NewStatRepository(db *sql.DB) *StatRepository {
	return &StatRepository{db: db}
}

// InsertStatRow writes one row into its category's table. The fixed column
// list of the category is always bound; absent fields become NULL. Re-inserts
// for the same (game, player, team) replace the row.
func (r *StatRepository) InsertStatRow(ctx context.Context, row *boxscore.StatRow) error {
	fields := boxscore.Fields(row.Category)
	if fields == nil {
		return fmt.Errorf("unknown stat category %q", row.Category)
	}

	cols := append([]string{"game_id", "player_id", "team"}, fields...)
	args := make([]interface{}, 0, len(cols))
	args = append(args, row.GameID, row.PlayerID, row.Team)
	updates := make([]string, 0, len(fields))
	for _, f := range fields {
		args = append(args, row.Value(f))
		updates = append(updates, f+" = excluded."+f)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(game_id, player_id, team) DO UPDATE SET %s",
		row.Category.Table(),
		strings.Join(cols, ", "),
		placeholders(len(cols)),
		strings.Join(updates, ", "),
	)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert %s row for %s: %w", row.Category, row.PlayerID, err)
	}
	return nil
}

// InsertScoringPlay writes one ordered scoring event.
func (r *StatRepository) InsertScoringPlay(ctx context.Context, gameID string, play boxscore.ScoringPlay) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scoring_plays (game_id, seq, quarter, team, description)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id, seq) DO UPDATE SET
			quarter = excluded.quarter,
			team = excluded.team,
			description = excluded.description
	`, gameID, play.Seq, play.Quarter, play.Team, play.Description)
	if err != nil {
		return fmt.Errorf("failed to insert scoring play %s/%d: %w", gameID, play.Seq, err)
	}
	return nil
}

// ClearGameStats deletes every stat row, scoring play and team-totals row
// for a game, in one transaction. Must run before re-inserting when a game
// is forcibly re-scraped.
func (r *StatRepository) ClearGameStats(ctx context.Context, gameID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin clear for %s: %w", gameID, err)
	}
	defer tx.Rollback()

	for _, cat := range boxscore.CanonicalOrder {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+cat.Table()+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("failed to clear %s for %s: %w", cat, gameID, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM scoring_plays WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to clear scoring plays for %s: %w", gameID, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM team_game_stats WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to clear team totals for %s: %w", gameID, err)
	}

	return tx.Commit()
}

// GameExists reports whether a game already has ingested box-score content.
// The games row alone does not count: schedule stubs are upserted before the
// skip check, so existence is judged on stat and scoring rows.
func (r *StatRepository) GameExists(ctx context.Context, gameID string) (bool, error) {
	var clauses []string
	args := make([]interface{}, 0, len(boxscore.CanonicalOrder)+1)
	for _, cat := range boxscore.CanonicalOrder {
		clauses = append(clauses, "SELECT 1 FROM "+cat.Table()+" WHERE game_id = ?")
		args = append(args, gameID)
	}
	clauses = append(clauses, "SELECT 1 FROM scoring_plays WHERE game_id = ?")
	args = append(args, gameID)

	var exists bool
	query := "SELECT EXISTS(" + strings.Join(clauses, " UNION ALL ") + ")"
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check game %s: %w", gameID, err)
	}
	return exists, nil
}

// ComputeTeamTotals regenerates the team_game_stats projection for a game
// from the current player stat rows. Runs after every stat mutation.
func (r *StatRepository) ComputeTeamTotals(ctx context.Context, gameID string) error {
	teams, err := r.gameTeams(ctx, gameID)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin totals for %s: %w", gameID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM team_game_stats WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to reset totals for %s: %w", gameID, err)
	}

	for _, team := range teams {
		t := store.TeamGameStats{GameID: gameID, Team: team}

		err := tx.QueryRowContext(ctx, `
			SELECT SUM(att), SUM(com), SUM(yds), SUM(td), SUM(int_thrown)
			FROM player_passing WHERE game_id = ? AND team = ?
		`, gameID, team).Scan(&t.PassAtt, &t.PassCom, &t.PassYds, &t.PassTD, &t.PassInt)
		if err != nil {
			return fmt.Errorf("failed to sum passing for %s/%s: %w", gameID, team, err)
		}

		err = tx.QueryRowContext(ctx, `
			SELECT SUM(att), SUM(yds), SUM(td)
			FROM player_rushing WHERE game_id = ? AND team = ?
		`, gameID, team).Scan(&t.RushAtt, &t.RushYds, &t.RushTD)
		if err != nil {
			return fmt.Errorf("failed to sum rushing for %s/%s: %w", gameID, team, err)
		}

		if t.PassYds.Valid || t.RushYds.Valid {
			t.TotalYds = sql.NullInt64{
				Int64: t.PassYds.Int64 + t.RushYds.Int64,
				Valid: true,
			}
		}
		// Interceptions thrown are the only turnovers the schema tracks.
		t.Turnovers = t.PassInt

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO team_game_stats (
				game_id, team, pass_att, pass_com, pass_yds, pass_td, pass_int,
				rush_att, rush_yds, rush_td, total_yds, turnovers
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.GameID, t.Team, t.PassAtt, t.PassCom, t.PassYds, t.PassTD, t.PassInt,
			t.RushAtt, t.RushYds, t.RushTD, t.TotalYds, t.Turnovers); err != nil {
			return fmt.Errorf("failed to write totals for %s/%s: %w", gameID, team, err)
		}
	}

	return tx.Commit()
}

// gameTeams returns the distinct team names appearing in any stat table for
// a game.
func (r *StatRepository) gameTeams(ctx context.Context, gameID string) ([]string, error) {
	var clauses []string
	args := make([]interface{}, 0, len(boxscore.CanonicalOrder))
	for _, cat := range boxscore.CanonicalOrder {
		clauses = append(clauses, "SELECT team FROM "+cat.Table()+" WHERE game_id = ?")
		args = append(args, gameID)
	}
	query := "SELECT DISTINCT team FROM (" + strings.Join(clauses, " UNION ALL ") + ") WHERE team != ''"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for %s: %w", gameID, err)
	}
	defer rows.Close()

	var teams []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
