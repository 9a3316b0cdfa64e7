// Package ingest holds the types shared by the per-source parsers under
// ingest/pfa and ingest/fdb.
package ingest

import (
	"database/sql"

	"github.com/fortuna/gridiron/internal/store"
)

// GameStub is one entry of a parsed season index: enough to schedule a
// box-score fetch and to upsert a schedule-only game row. A stub with an
// empty BoxscoreURL is valid and marks a game the source lists but does not
// document.
type GameStub struct {
	GameID        string
	Season        int
	GameDate      string // YYYY-MM-DD
	DayOfWeek     string
	GameType      string
	Opponent      string
	OpponentAbbr  string
	HomeAway      string
	TeamScore     *int
	OpponentScore *int
	Result        string
	Location      string
	Venue         string
	Attendance    *int
	BoxscoreURL   string
}

// Game converts the stub into a store row. Empty strings and nil ints become
// NULL.
func (s *GameStub) Game() *store.Game {
	g := &store.Game{
		GameID:   s.GameID,
		Season:   s.Season,
		GameDate: s.GameDate,
		GameType: s.GameType,
		Opponent: s.Opponent,
		HomeAway: s.HomeAway,
	}
	g.DayOfWeek = nullString(s.DayOfWeek)
	g.OpponentAbbr = nullString(s.OpponentAbbr)
	g.Result = nullString(s.Result)
	g.Location = nullString(s.Location)
	g.Venue = nullString(s.Venue)
	g.BoxscoreURL = nullString(s.BoxscoreURL)
	g.TeamScore = nullInt(s.TeamScore)
	g.OpponentScore = nullInt(s.OpponentScore)
	g.Attendance = nullInt(s.Attendance)
	return g
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
