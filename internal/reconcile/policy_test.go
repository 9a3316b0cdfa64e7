package reconcile

import (
	"database/sql"
	"testing"

	"github.com/fortuna/gridiron/internal/store"
)

func ns(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }
func ni(n int64) sql.NullInt64   { return sql.NullInt64{Int64: n, Valid: true} }

func fallbackGame() *store.Game {
	return &store.Game{
		GameID:        "fdb_20240908",
		Season:        2024,
		GameDate:      "2024-09-08",
		GameType:      "regular",
		Opponent:      "Carolina Panthers",
		HomeAway:      "home",
		TeamScore:     ni(47),
		OpponentScore: ni(10),
		Result:        ns("W"),
		BoxscoreURL:   ns("https://www.footballdb.com/games/boxscore/x"),
	}
}

func TestMergeGameFirstSighting(t *testing.T) {
	p := NewPolicy()
	incoming := fallbackGame()
	merged := p.MergeGame(nil, incoming, true)
	if merged == incoming {
		t.Error("MergeGame returned the incoming pointer instead of a copy")
	}
	if merged.GameID != "fdb_20240908" || merged.TeamScore.Int64 != 47 {
		t.Errorf("merged = %+v", merged)
	}
	if p.Metrics().TotalMerges != 1 {
		t.Errorf("TotalMerges = %d", p.Metrics().TotalMerges)
	}
}

func TestMergeGamePreservesURL(t *testing.T) {
	p := NewPolicy()
	existing := fallbackGame()

	// A later metadata-only record without a URL must not null the link.
	incoming := &store.Game{
		GameID:   "fdb_20240908",
		Season:   2024,
		GameDate: "2024-09-08",
		Opponent: "Carolina Panthers",
		Venue:    ns("Caesars Superdome"),
	}
	merged := p.MergeGame(existing, incoming, false)

	if !merged.BoxscoreURL.Valid {
		t.Fatal("box-score URL reverted to null")
	}
	if merged.BoxscoreURL.String != existing.BoxscoreURL.String {
		t.Errorf("BoxscoreURL = %q", merged.BoxscoreURL.String)
	}
	if p.Metrics().URLsPreserved != 1 {
		t.Errorf("URLsPreserved = %d, want 1", p.Metrics().URLsPreserved)
	}
	if merged.Venue.String != "Caesars Superdome" {
		t.Errorf("Venue = %q", merged.Venue.String)
	}
}

func TestMergeGameURLConflict(t *testing.T) {
	p := NewPolicy()
	existing := fallbackGame()
	incoming := fallbackGame()
	incoming.BoxscoreURL = ns("https://www.footballdb.com/games/boxscore/y")

	merged := p.MergeGame(existing, incoming, true)
	if merged.BoxscoreURL.String != incoming.BoxscoreURL.String {
		t.Errorf("BoxscoreURL = %q, want incoming link", merged.BoxscoreURL.String)
	}
	if p.Metrics().Conflicts != 1 {
		t.Errorf("Conflicts = %d, want 1", p.Metrics().Conflicts)
	}
}

func TestMergeGamePrimaryMetadataWins(t *testing.T) {
	p := NewPolicy()
	existing := fallbackGame()
	existing.Venue = ns("Superdome")
	existing.Attendance = ni(60000)

	incoming := &store.Game{
		GameID:     "pfa_20240908",
		Season:     2024,
		GameDate:   "2024-09-08",
		Opponent:   "Carolina Panthers",
		Venue:      ns("Caesars Superdome"),
		Attendance: ni(70021),
		DayOfWeek:  ns("Sun"),
	}
	merged := p.MergeGame(existing, incoming, false)

	if merged.Venue.String != "Caesars Superdome" {
		t.Errorf("Venue = %q, want primary source's value", merged.Venue.String)
	}
	if merged.Attendance.Int64 != 70021 {
		t.Errorf("Attendance = %d", merged.Attendance.Int64)
	}
	if merged.DayOfWeek.String != "Sun" {
		t.Errorf("DayOfWeek = %q", merged.DayOfWeek.String)
	}
	// Existing box-score result is not retracted by a schedule stub.
	if merged.Result.String != "W" || merged.TeamScore.Int64 != 47 {
		t.Errorf("result overwritten: %+v", merged)
	}
}

func TestMergeGameFallbackMetadataDoesNotOverwrite(t *testing.T) {
	p := NewPolicy()
	existing := fallbackGame()
	existing.Venue = ns("Caesars Superdome")

	incoming := fallbackGame()
	incoming.Venue = ns("Somewhere Else")
	incoming.BoxscoreURL = existing.BoxscoreURL

	merged := p.MergeGame(existing, incoming, true)
	if merged.Venue.String != "Caesars Superdome" {
		t.Errorf("Venue = %q, fallback source replaced an existing value", merged.Venue.String)
	}
}

func TestMergeGameBoxOverridesSchedule(t *testing.T) {
	p := NewPolicy()
	existing := fallbackGame()
	existing.TeamScore = ni(3)
	existing.OpponentScore = ni(0)
	existing.Result = ns("W")

	incoming := fallbackGame()
	incoming.TeamScore = ni(10)
	incoming.OpponentScore = ni(13)
	incoming.Result = ns("L")
	incoming.Opponent = "Unknown"

	merged := p.MergeGame(existing, incoming, true)
	if merged.TeamScore.Int64 != 10 || merged.Result.String != "L" {
		t.Errorf("box-score result did not win: %+v", merged)
	}
	if merged.Opponent != "Carolina Panthers" {
		t.Errorf("Opponent = %q, Unknown placeholder replaced a real name", merged.Opponent)
	}
}

func TestOverlayMetadataAddOnly(t *testing.T) {
	p := NewPolicy()
	game := fallbackGame()
	game.Venue = ns("Caesars Superdome")

	donor := &store.Game{
		GameID:      "pfa_20240908",
		DayOfWeek:   ns("Sun"),
		Venue:       ns("Somewhere Else"),
		Attendance:  ni(70021),
		BoxscoreURL: ns("https://www.profootballarchives.com/2024nflno01.html"),
	}
	p.OverlayMetadata(game, donor)

	if game.DayOfWeek.String != "Sun" {
		t.Errorf("DayOfWeek = %q, missing field not filled", game.DayOfWeek.String)
	}
	if game.Venue.String != "Caesars Superdome" {
		t.Errorf("Venue = %q, overlay replaced an existing value", game.Venue.String)
	}
	if game.Attendance.Int64 != 70021 {
		t.Errorf("Attendance = %d", game.Attendance.Int64)
	}
	if game.BoxscoreURL.String != "https://www.footballdb.com/games/boxscore/x" {
		t.Errorf("BoxscoreURL = %q, donor URL leaked in", game.BoxscoreURL.String)
	}
	if p.Metrics().MetadataOverlays != 1 {
		t.Errorf("MetadataOverlays = %d", p.Metrics().MetadataOverlays)
	}
}

func TestDeriveResult(t *testing.T) {
	win, loss, tie := 20, 13, 20
	tests := []struct {
		name string
		team *int
		opp  *int
		want sql.NullString
	}{
		{"win", &win, &loss, ns("W")},
		{"loss", &loss, &win, ns("L")},
		{"tie", &tie, &win, ns("T")},
		{"missing team score", nil, &loss, sql.NullString{}},
		{"missing opponent score", &win, nil, sql.NullString{}},
	}
	for _, tt := range tests {
		if got := DeriveResult(tt.team, tt.opp); got != tt.want {
			t.Errorf("%s: DeriveResult = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}
