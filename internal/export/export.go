// Package export generates the dashboard JSON consumed by the static
// frontend: a flat per-player-per-game stat array, career roll-ups, season
// summaries and per-season detail files.
package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/config"
)

// FlatRow is one player's line for one game and one stat type. Keys vary by
// stat type; numeric values are int64 or float64 as stored.
type FlatRow map[string]interface{}

// Exporter writes JSON snapshots of the canonical schema.
type Exporter struct {
	db  *sql.DB
	cfg *config.Config
}

// NewExporter creates an exporter over an open database.
func NewExporter(db *sql.DB, cfg *config.Config) *Exporter {
	return &Exporter{db: db, cfg: cfg}
}

// Export writes the dashboard file and the per-season files under outputDir.
func (e *Exporter) Export(outputDir string) error {
	if err := os.MkdirAll(filepath.Join(outputDir, "seasons"), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	gamesFlat, err := e.buildGamesFlat()
	if err != nil {
		return err
	}
	players := buildPlayers(gamesFlat)
	summary := buildSeasonSummary(gamesFlat)

	seasonsSet := make(map[int]bool)
	for _, row := range gamesFlat {
		if s, ok := row["season"].(int64); ok {
			seasonsSet[int(s)] = true
		}
	}
	seasons := make([]int, 0, len(seasonsSet))
	for s := range seasonsSet {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)

	dashboard := map[string]interface{}{
		"meta": map[string]interface{}{
			"generated":       time.Now().Format(time.RFC3339),
			"team":            e.cfg.TeamName,
			"total_records":   len(gamesFlat),
			"total_players":   len(players),
			"seasons_covered": seasons,
			"source":          "Pro Football Archives",
		},
		"players":        players,
		"games_flat":     gamesFlat,
		"season_summary": summary,
	}

	path := filepath.Join(outputDir, "dashboard_latest.json")
	if err := writeJSON(path, dashboard); err != nil {
		return err
	}
	log.Printf("[export] wrote %s (%d records, %d players)", path, len(gamesFlat), len(players))

	return e.writeSeasonFiles(outputDir)
}

// buildGamesFlat produces one row per player per game per stat type
// (passing, rushing, receiving) for the configured team's players, across
// every game that has a box score.
func (e *Exporter) buildGamesFlat() ([]FlatRow, error) {
	games, err := e.loadGameMap()
	if err != nil {
		return nil, err
	}

	var rows []FlatRow

	passing, err := e.statRows(`
		SELECT p.player_name, s.player_id, s.game_id,
		       s.att, s.com, s.yds, s.td, s.int_thrown, s.rtg, s.sacked, s.sacked_yds
		FROM player_passing s JOIN players p ON s.player_id = p.player_id
		WHERE `+e.teamFilter("s")+` ORDER BY s.game_id`,
		[]string{"pass_att", "pass_com", "pass_yds", "pass_td", "pass_int", "pass_rtg", "sacked", "sacked_yds"})
	if err != nil {
		return nil, err
	}
	rows = append(rows, attachGames(passing, games, "passing")...)

	rushing, err := e.statRows(`
		SELECT p.player_name, s.player_id, s.game_id,
		       s.att, s.yds, s.td, s.avg, s.lg
		FROM player_rushing s JOIN players p ON s.player_id = p.player_id
		WHERE `+e.teamFilter("s")+` ORDER BY s.game_id`,
		[]string{"rush_att", "rush_yds", "rush_td", "rush_avg", "rush_lg"})
	if err != nil {
		return nil, err
	}
	rows = append(rows, attachGames(rushing, games, "rushing")...)

	receiving, err := e.statRows(`
		SELECT p.player_name, s.player_id, s.game_id,
		       s.rec, s.yds, s.td, s.avg, s.lg, s.tar
		FROM player_receiving s JOIN players p ON s.player_id = p.player_id
		WHERE `+e.teamFilter("s")+` ORDER BY s.game_id`,
		[]string{"rec", "rec_yds", "rec_td", "rec_avg", "rec_lg", "rec_tar"})
	if err != nil {
		return nil, err
	}
	rows = append(rows, attachGames(receiving, games, "receiving")...)

	return rows, nil
}

// teamFilter matches the configured team's rows by name fragments, the same
// way the stat tables store team names.
func (e *Exporter) teamFilter(alias string) string {
	name := e.cfg.TeamName
	last := name
	if i := strings.LastIndex(name, " "); i >= 0 {
		last = name[i+1:]
	}
	return fmt.Sprintf("(%s.team LIKE '%%%s%%' OR %s.team LIKE '%%%s%%')",
		alias, e.cfg.TeamCity, alias, last)
}

type statRow struct {
	playerName string
	playerID   string
	gameID     string
	values     []interface{}
	keys       []string
}

// statRows runs a stat query whose first three columns are player_name,
// player_id, game_id and maps the remaining columns onto keys.
func (e *Exporter) statRows(query string, keys []string) ([]statRow, error) {
	rows, err := e.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var out []statRow
	for rows.Next() {
		r := statRow{keys: keys, values: make([]interface{}, len(keys))}
		scan := []interface{}{&r.playerName, &r.playerID, &r.gameID}
		for i := range r.values {
			scan = append(scan, &r.values[i])
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type gameInfo struct {
	season   int64
	gameDate string
	opponent string
	homeAway string
	result   interface{}
}

func (e *Exporter) loadGameMap() (map[string]gameInfo, error) {
	rows, err := e.db.Query(`
		SELECT game_id, season, game_date, opponent, home_away, result
		FROM games WHERE boxscore_url IS NOT NULL ORDER BY game_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	defer rows.Close()

	games := make(map[string]gameInfo)
	for rows.Next() {
		var id string
		var g gameInfo
		var result sql.NullString
		if err := rows.Scan(&id, &g.season, &g.gameDate, &g.opponent, &g.homeAway, &result); err != nil {
			return nil, err
		}
		if result.Valid {
			g.result = result.String
		}
		games[id] = g
	}
	return games, rows.Err()
}

func attachGames(stats []statRow, games map[string]gameInfo, statType string) []FlatRow {
	var out []FlatRow
	for _, s := range stats {
		game, ok := games[s.gameID]
		if !ok {
			continue
		}
		location := "Away"
		if game.homeAway == "home" {
			location = "Home"
		}
		row := FlatRow{
			"player":        s.playerName,
			"player_id":     s.playerID,
			"season":        game.season,
			"game_date":     game.gameDate,
			"opponent":      game.opponent,
			"game_location": location,
			"result":        game.result,
			"stat_type":     statType,
		}
		for i, k := range s.keys {
			if s.values[i] != nil {
				row[k] = s.values[i]
			}
		}
		out = append(out, row)
	}
	return out
}

// buildPlayers rolls games_flat up into per-player career totals, grouped by
// stat type, floats rounded to two decimals.
func buildPlayers(gamesFlat []FlatRow) []map[string]interface{} {
	type playerAcc struct {
		name  string
		games []FlatRow
	}
	byPlayer := make(map[string]*playerAcc)
	var order []string
	for _, g := range gamesFlat {
		pid, _ := g["player_id"].(string)
		acc, ok := byPlayer[pid]
		if !ok {
			name, _ := g["player"].(string)
			acc = &playerAcc{name: name}
			byPlayer[pid] = acc
			order = append(order, pid)
		}
		acc.games = append(acc.games, g)
	}

	var players []map[string]interface{}
	for _, pid := range order {
		acc := byPlayer[pid]

		seasonSet := make(map[int64]bool)
		for _, g := range acc.games {
			if s, ok := g["season"].(int64); ok {
				seasonSet[s] = true
			}
		}
		seasons := make([]int64, 0, len(seasonSet))
		for s := range seasonSet {
			seasons = append(seasons, s)
		}
		sort.Slice(seasons, func(i, j int) bool { return seasons[i] < seasons[j] })

		career := make(map[string]map[string]interface{})
		for _, statType := range []string{"passing", "rushing", "receiving"} {
			var typed []FlatRow
			for _, g := range acc.games {
				if g["stat_type"] == statType {
					typed = append(typed, g)
				}
			}
			if len(typed) == 0 {
				continue
			}
			totals := sumNumeric(typed)
			totals["games_played"] = int64(len(typed))
			career[statType] = totals
		}

		players = append(players, map[string]interface{}{
			"player":       acc.name,
			"player_id":    pid,
			"seasons":      seasons,
			"career_stats": career,
			"games":        acc.games,
		})
	}

	sort.SliceStable(players, func(i, j int) bool {
		return lastName(players[i]["player"].(string)) < lastName(players[j]["player"].(string))
	})
	return players
}

// buildSeasonSummary aggregates games_flat per season per stat type.
func buildSeasonSummary(gamesFlat []FlatRow) []map[string]interface{} {
	type bucket struct {
		rows    []FlatRow
		players map[string]bool
	}
	bySeason := make(map[int64]map[string]*bucket)
	for _, g := range gamesFlat {
		season, _ := g["season"].(int64)
		statType, _ := g["stat_type"].(string)
		if bySeason[season] == nil {
			bySeason[season] = make(map[string]*bucket)
		}
		b := bySeason[season][statType]
		if b == nil {
			b = &bucket{players: make(map[string]bool)}
			bySeason[season][statType] = b
		}
		b.rows = append(b.rows, g)
		pid, _ := g["player_id"].(string)
		b.players[pid] = true
	}

	seasons := make([]int64, 0, len(bySeason))
	for s := range bySeason {
		seasons = append(seasons, s)
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i] < seasons[j] })

	var summary []map[string]interface{}
	for _, season := range seasons {
		statTypes := make(map[string]map[string]interface{})
		for statType, b := range bySeason[season] {
			totals := sumNumeric(b.rows)
			totals["unique_players"] = int64(len(b.players))
			statTypes[statType] = totals
		}
		summary = append(summary, map[string]interface{}{
			"season":     season,
			"stat_types": statTypes,
		})
	}
	return summary
}

// sumNumeric totals every numeric field across rows, except season. Floats
// round to two decimals here, at aggregation.
func sumNumeric(rows []FlatRow) map[string]interface{} {
	ints := make(map[string]int64)
	floats := make(map[string]float64)
	isFloat := make(map[string]bool)

	for _, row := range rows {
		for k, v := range row {
			if k == "season" {
				continue
			}
			switch n := v.(type) {
			case int64:
				ints[k] += n
			case float64:
				floats[k] += n
				isFloat[k] = true
			}
		}
	}

	totals := make(map[string]interface{})
	for k, v := range ints {
		if isFloat[k] {
			floats[k] += float64(v)
			continue
		}
		totals[k] = v
	}
	for k, v := range floats {
		totals[k] = boxscore.Round2(v)
	}
	return totals
}

func lastName(name string) string {
	if i := strings.LastIndex(name, " "); i >= 0 {
		return name[i+1:]
	}
	return name
}

// writeSeasonFiles writes one JSON file per season with full game rows,
// team totals and scoring plays attached.
func (e *Exporter) writeSeasonFiles(outputDir string) error {
	seasons, err := e.listSeasons()
	if err != nil {
		return err
	}

	for _, season := range seasons {
		games, err := e.seasonGames(season)
		if err != nil {
			return err
		}
		data := map[string]interface{}{
			"season": season,
			"games":  games,
		}
		path := filepath.Join(outputDir, "seasons", fmt.Sprintf("%d.json", season))
		if err := writeJSON(path, data); err != nil {
			return err
		}
	}

	log.Printf("[export] wrote %d season files", len(seasons))
	return nil
}

func (e *Exporter) listSeasons() ([]int, error) {
	rows, err := e.db.Query("SELECT DISTINCT season FROM games ORDER BY season")
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

func (e *Exporter) seasonGames(season int) ([]map[string]interface{}, error) {
	rows, err := e.db.Query(`
		SELECT game_id, season, game_date, day_of_week, game_type, opponent,
		       opponent_abbr, home_away, team_score, opponent_score, result,
		       location, venue, attendance, boxscore_url
		FROM games WHERE season = ? ORDER BY game_date`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load season %d: %w", season, err)
	}
	defer rows.Close()

	cols := []string{"game_id", "season", "game_date", "day_of_week", "game_type",
		"opponent", "opponent_abbr", "home_away", "team_score", "opponent_score",
		"result", "location", "venue", "attendance", "boxscore_url"}

	var games []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		scan := make([]interface{}, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		game := make(map[string]interface{}, len(cols)+2)
		for i, c := range cols {
			game[c] = values[i]
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, game := range games {
		gid, _ := game["game_id"].(string)
		teamStats, err := e.queryGeneric(
			"SELECT game_id, team, pass_att, pass_com, pass_yds, pass_td, pass_int, "+
				"rush_att, rush_yds, rush_td, total_yds, turnovers "+
				"FROM team_game_stats WHERE game_id = ?",
			[]string{"game_id", "team", "pass_att", "pass_com", "pass_yds", "pass_td",
				"pass_int", "rush_att", "rush_yds", "rush_td", "total_yds", "turnovers"},
			gid)
		if err != nil {
			return nil, err
		}
		game["team_stats"] = teamStats

		plays, err := e.queryGeneric(
			"SELECT id, game_id, seq, quarter, team, description "+
				"FROM scoring_plays WHERE game_id = ? ORDER BY id",
			[]string{"id", "game_id", "seq", "quarter", "team", "description"},
			gid)
		if err != nil {
			return nil, err
		}
		game["scoring_plays"] = plays
	}

	return games, nil
}

func (e *Exporter) queryGeneric(query string, cols []string, args ...interface{}) ([]map[string]interface{}, error) {
	rows, err := e.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	out := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		scan := make([]interface{}, len(cols))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}
		entry := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			entry[c] = values[i]
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
