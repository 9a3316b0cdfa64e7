package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/store"
)

// RowsForGame returns every stat row for a game grouped by category table
// name, with the player's display name joined in. Column values come back as
// driver-native types; NULL fields are omitted.
func (r *StatRepository) RowsForGame(ctx context.Context, gameID string) (map[string][]map[string]interface{}, error) {
	out := make(map[string][]map[string]interface{})

	for _, cat := range boxscore.CanonicalOrder {
		fields := boxscore.Fields(cat)
		cols := make([]string, 0, len(fields))
		for _, f := range fields {
			cols = append(cols, "s."+f)
		}
		query := fmt.Sprintf(`
			SELECT s.player_id, p.player_name, s.team, %s
			FROM %s s
			LEFT JOIN players p ON p.player_id = s.player_id
			WHERE s.game_id = ?
			ORDER BY s.team, p.player_name
		`, strings.Join(cols, ", "), cat.Table())

		rows, err := r.db.QueryContext(ctx, query, gameID)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s for %s: %w", cat, gameID, err)
		}

		for rows.Next() {
			var playerID, team string
			var playerName *string
			values := make([]interface{}, len(fields))
			scan := []interface{}{&playerID, &playerName, &team}
			for i := range values {
				scan = append(scan, &values[i])
			}
			if err := rows.Scan(scan...); err != nil {
				rows.Close()
				return nil, err
			}

			entry := map[string]interface{}{
				"player_id": playerID,
				"team":      team,
			}
			if playerName != nil {
				entry["player_name"] = *playerName
			}
			for i, f := range fields {
				if values[i] != nil {
					entry[f] = values[i]
				}
			}
			out[cat.Table()] = append(out[cat.Table()], entry)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return out, nil
}

// ScoringPlays returns a game's scoring plays in sequence order.
func (r *StatRepository) ScoringPlays(ctx context.Context, gameID string) ([]store.ScoringPlay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, game_id, seq, quarter, team, description
		FROM scoring_plays WHERE game_id = ? ORDER BY seq
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to read scoring plays for %s: %w", gameID, err)
	}
	defer rows.Close()

	var plays []store.ScoringPlay
	for rows.Next() {
		var p store.ScoringPlay
		if err := rows.Scan(&p.ID, &p.GameID, &p.Seq, &p.Quarter, &p.Team, &p.Description); err != nil {
			return nil, err
		}
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

// TeamTotals returns the cached per-team aggregates for a game.
func (r *StatRepository) TeamTotals(ctx context.Context, gameID string) ([]store.TeamGameStats, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT game_id, team, pass_att, pass_com, pass_yds, pass_td, pass_int,
		       rush_att, rush_yds, rush_td, total_yds, turnovers
		FROM team_game_stats WHERE game_id = ? ORDER BY team
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to read team totals for %s: %w", gameID, err)
	}
	defer rows.Close()

	var totals []store.TeamGameStats
	for rows.Next() {
		var t store.TeamGameStats
		if err := rows.Scan(&t.GameID, &t.Team, &t.PassAtt, &t.PassCom, &t.PassYds,
			&t.PassTD, &t.PassInt, &t.RushAtt, &t.RushYds, &t.RushTD,
			&t.TotalYds, &t.Turnovers); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
