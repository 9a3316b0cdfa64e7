package store

import "database/sql"

// Game represents one real-world contest from the team's perspective.
// A game may exist as a schedule-only record (no box-score URL) and be
// enriched later when a box score is found.
type Game struct {
	GameID        string         `json:"game_id" db:"game_id"`
	Season        int            `json:"season" db:"season"`
	GameDate      string         `json:"game_date" db:"game_date"` // YYYY-MM-DD
	DayOfWeek     sql.NullString `json:"day_of_week,omitempty" db:"day_of_week"`
	GameType      string         `json:"game_type" db:"game_type"` // preseason, regular, postseason
	Opponent      string         `json:"opponent" db:"opponent"`
	OpponentAbbr  sql.NullString `json:"opponent_abbr,omitempty" db:"opponent_abbr"`
	HomeAway      string         `json:"home_away" db:"home_away"` // home, away
	TeamScore     sql.NullInt64  `json:"team_score,omitempty" db:"team_score"`
	OpponentScore sql.NullInt64  `json:"opponent_score,omitempty" db:"opponent_score"`
	Result        sql.NullString `json:"result,omitempty" db:"result"` // W, L, T
	Location      sql.NullString `json:"location,omitempty" db:"location"`
	Venue         sql.NullString `json:"venue,omitempty" db:"venue"`
	Attendance    sql.NullInt64  `json:"attendance,omitempty" db:"attendance"`
	BoxscoreURL   sql.NullString `json:"boxscore_url,omitempty" db:"boxscore_url"`
}

// Source prefixes used in game and player ids.
const (
	SourcePrimary  = "pfa"
	SourceFallback = "fdb"
)

// Source reports which site minted this game's id ("pfa" or "fdb").
func (g *Game) Source() string {
	for i := 0; i < len(g.GameID); i++ {
		if g.GameID[i] == '_' {
			return g.GameID[:i]
		}
	}
	return ""
}

// Player is a person appearing in at least one game. Ids are namespaced per
// source; the same human may appear under both a pfa_ and an fdb_ id.
type Player struct {
	PlayerID   string         `json:"player_id" db:"player_id"`
	PlayerName string         `json:"player_name" db:"player_name"`
	ProfileURL sql.NullString `json:"profile_url,omitempty" db:"profile_url"`
}

// ScoringPlay is an ordered scoring event within a game.
type ScoringPlay struct {
	ID          int64  `json:"id" db:"id"`
	GameID      string `json:"game_id" db:"game_id"`
	Seq         int    `json:"seq" db:"seq"`
	Quarter     string `json:"quarter" db:"quarter"`
	Team        string `json:"team" db:"team"`
	Description string `json:"description" db:"description"`
}

// TeamGameStats is the per-team aggregate for one game, regenerated from the
// player stat tables whenever they change. Treat it as a cached projection.
type TeamGameStats struct {
	GameID    string        `json:"game_id" db:"game_id"`
	Team      string        `json:"team" db:"team"`
	PassAtt   sql.NullInt64 `json:"pass_att,omitempty" db:"pass_att"`
	PassCom   sql.NullInt64 `json:"pass_com,omitempty" db:"pass_com"`
	PassYds   sql.NullInt64 `json:"pass_yds,omitempty" db:"pass_yds"`
	PassTD    sql.NullInt64 `json:"pass_td,omitempty" db:"pass_td"`
	PassInt   sql.NullInt64 `json:"pass_int,omitempty" db:"pass_int"`
	RushAtt   sql.NullInt64 `json:"rush_att,omitempty" db:"rush_att"`
	RushYds   sql.NullInt64 `json:"rush_yds,omitempty" db:"rush_yds"`
	RushTD    sql.NullInt64 `json:"rush_td,omitempty" db:"rush_td"`
	TotalYds  sql.NullInt64 `json:"total_yds,omitempty" db:"total_yds"`
	Turnovers sql.NullInt64 `json:"turnovers,omitempty" db:"turnovers"`
}
