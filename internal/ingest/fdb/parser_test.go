package fdb

import (
	"strings"
	"testing"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/config"
)

func testParser() *Parser {
	return NewParser("https://www.footballdb.com", "new-orleans-saints", "new-orleans",
		config.DefaultTeamCatalog())
}

const resultsHTML = `<html><body>
<a href="/games/boxscore/arizona-cardinals-vs-new-orleans-saints-2025090701">Cardinals vs Saints Box Score</a>
<a href="/games/boxscore/new-orleans-saints-vs-seattle-seahawks-2025082301">Saints vs Seahawks Box Score</a>
<a href="/games/boxscore/broken-link">Broken</a>
</body></html>`

func TestParseResultsPage(t *testing.T) {
	p := testParser()
	games, err := p.ParseResultsPage(resultsHTML, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2 (dateless link dropped)", len(games))
	}

	home := games[0]
	if home.GameID != "fdb_20250907" {
		t.Errorf("GameID = %q", home.GameID)
	}
	if home.GameDate != "2025-09-07" {
		t.Errorf("GameDate = %q", home.GameDate)
	}
	if home.HomeAway != "home" {
		t.Errorf("HomeAway = %q, want home", home.HomeAway)
	}
	if home.Opponent != "Cardinals" {
		t.Errorf("Opponent = %q, want Cardinals", home.Opponent)
	}
	if home.GameType != "regular" {
		t.Errorf("GameType = %q", home.GameType)
	}
	if !strings.HasPrefix(home.BoxscoreURL, "https://www.footballdb.com/games/boxscore/") {
		t.Errorf("BoxscoreURL = %q", home.BoxscoreURL)
	}

	away := games[1]
	if away.HomeAway != "away" {
		t.Errorf("HomeAway = %q, want away", away.HomeAway)
	}
	if away.Opponent != "Seahawks" {
		t.Errorf("Opponent = %q, want Seahawks", away.Opponent)
	}
	if away.GameType != "preseason" {
		t.Errorf("August game type = %q, want preseason", away.GameType)
	}
}

func TestParseResultsPageSharedCity(t *testing.T) {
	// Both franchises share the city slug; the away side of the -vs- slug
	// decides.
	p := NewParser("https://www.footballdb.com", "new-york-giants", "new-york",
		config.DefaultTeamCatalog())
	html := `<html><body>
<a href="/games/boxscore/new-york-giants-vs-new-york-jets-2025101201">Giants vs Jets Box Score</a>
<a href="/games/boxscore/new-york-jets-vs-new-york-giants-2025110901">Jets vs Giants Box Score</a>
</body></html>`

	games, err := p.ParseResultsPage(html, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}

	if games[0].HomeAway != "away" {
		t.Errorf("game with team on the away side = %q, want away", games[0].HomeAway)
	}
	if games[0].Opponent != "Jets" {
		t.Errorf("Opponent = %q, want Jets", games[0].Opponent)
	}
	if games[1].HomeAway != "home" {
		t.Errorf("game with team on the home side = %q, want home", games[1].HomeAway)
	}
	if games[1].Opponent != "Jets" {
		t.Errorf("Opponent = %q, want Jets", games[1].Opponent)
	}
}

// boxscoreHTML lays tables out the way FootballDB does: quarter scores at 0,
// three summary tables, then stat pairs from index 4 in the fixed sequence.
func boxscoreHTML() string {
	var b strings.Builder
	b.WriteString("<html><body>")

	// 0: quarter scores
	b.WriteString(`<table>
		<tr><th></th><th>1</th><th>2</th><th>3</th><th>4</th><th>T</th></tr>
		<tr><td>Cardinals</td><td>0</td><td>7</td><td>3</td><td>3</td><td>13</td></tr>
		<tr><td>Saints</td><td>7</td><td>10</td><td>3</td><td>0</td><td>20</td></tr>
	</table>`)
	// 1-3: summary tables the classifier must not consume
	for i := 0; i < 3; i++ {
		b.WriteString("<table><tr><th>Info</th></tr><tr><td>x</td></tr></table>")
	}

	passing := func(team, player, id, att, cmp, yds string) string {
		return `<table>
			<tr><th>` + team + `</th><th>Att</th><th>Cmp</th><th>Yds</th><th>YPA</th><th>TD</th><th>Int</th></tr>
			<tr><td><a href="/players/` + id + `">` + player + `</a></td>
				<td>` + att + `</td><td>` + cmp + `</td><td>` + yds + `</td><td>7.0</td><td>1</td><td>0</td></tr>
			<tr><td>TOTAL</td><td>30</td><td>20</td><td>210</td><td>7.0</td><td>1</td><td>0</td></tr>
		</table>`
	}
	// 4-5: passing
	b.WriteString(passing("Arizona CardinalsARI", "Kyler MurrayK. Murray", "kyler-murray-murraky01", "30", "20", "210"))
	b.WriteString(passing("New Orleans SaintsNO", "Derek CarrD. Carr", "derek-carr-carrde01", "20", "15", "180"))

	simplePair := func(headers, id, cells string) {
		tbl := `<table><tr><th>Team</th>` + headers + `</tr>
			<tr><td><a href="/players/` + id + `">Some Guy</a></td>` + cells + `</tr></table>`
		b.WriteString(tbl)
		b.WriteString(tbl)
	}
	// 6-7: rushing
	simplePair("<th>Att</th><th>Yds</th><th>Avg</th><th>Lg</th><th>TD</th>",
		"alvin-kamara-kamaral01", "<td>18</td><td>99</td><td>5.5</td><td>23t</td><td>1</td>")
	// 8-9: receiving
	simplePair("<th>Rec</th><th>Yds</th><th>Avg</th><th>Lg</th><th>TD</th>",
		"chris-olave-olavech01", "<td>6</td><td>80</td><td>13.3</td><td>31</td><td>0</td>")
	// 10-11: punt returns
	simplePair("<th>Num</th><th>Yds</th><th>Avg</th><th>FC</th><th>Lg</th><th>TD</th>",
		"ret-guy-retguy01", "<td>2</td><td>15</td><td>7.5</td><td>1</td><td>9</td><td>0</td>")
	// 12-13: kick returns
	simplePair("<th>Num</th><th>Yds</th><th>Avg</th><th>FC</th><th>Lg</th><th>TD</th>",
		"kr-guy-krguy01", "<td>1</td><td>22</td><td>22.0</td><td>0</td><td>22</td><td>0</td>")
	// 14-15: punting
	simplePair("<th>Punts</th><th>Yds</th><th>Avg</th><th>Lg</th>",
		"punt-guy-puntgu01", "<td>4</td><td>180</td><td>45.0</td><td>55</td>")
	// 16-17: kicking (skipped slot)
	simplePair("<th>FG</th><th>XP</th>", "kick-guy-kickgu01", "<td>2-2</td><td>2-2</td>")
	// 18-19: kickoffs
	simplePair("<th>Num</th><th>Yds</th><th>Avg</th><th>TB</th>",
		"ko-guy-koguy01", "<td>4</td><td>260</td><td>65.0</td><td>2</td>")
	// 20-21: defense (carries interception and sack columns)
	simplePair("<th>Int</th><th>Yds</th><th>Avg</th><th>Lg</th><th>TD</th><th>Solo</th><th>Ast</th><th>Sack</th><th>YdsL</th>",
		"def-guy-defguy01", "<td>1</td><td>12</td><td>12.0</td><td>12</td><td>0</td><td>5</td><td>2</td><td>1.5</td><td>11</td>")
	// 22-23: fumbles (skipped slot)
	simplePair("<th>Fum</th><th>Lost</th>", "fum-guy-fumguy01", "<td>1</td><td>0</td>")

	b.WriteString("</body></html>")
	return b.String()
}

func TestParseBoxScore(t *testing.T) {
	p := testParser()
	box, outcome, err := p.ParseBoxScore(boxscoreHTML(), "fdb_20250907")
	if err != nil {
		t.Fatal(err)
	}

	if box.AwayTeam != "Arizona Cardinals" || box.HomeTeam != "New Orleans Saints" {
		t.Errorf("teams = %q / %q", box.AwayTeam, box.HomeTeam)
	}
	if box.AwayScore == nil || *box.AwayScore != 13 {
		t.Errorf("away score = %v, want 13", box.AwayScore)
	}
	if box.HomeScore == nil || *box.HomeScore != 20 {
		t.Errorf("home score = %v, want 20", box.HomeScore)
	}

	if n := len(box.Stats[boxscore.Passing]); n != 2 {
		t.Errorf("passing rows = %d, want 2 (TOTAL dropped)", n)
	}
	for _, row := range box.Stats[boxscore.Passing] {
		if row.Value("pct") == nil {
			t.Errorf("passing row %s missing derived pct", row.PlayerID)
		}
	}

	home := box.Stats[boxscore.Passing][1]
	if home.PlayerID != "fdb_carrde01" {
		t.Errorf("home passer = %q", home.PlayerID)
	}
	if home.Team != "New Orleans Saints" {
		t.Errorf("home passer team = %q", home.Team)
	}
	if pct, _ := home.Float("pct"); pct != 75.0 {
		t.Errorf("pct = %v, want 75.0", pct)
	}

	if name := box.Players["fdb_carrde01"].Name; name != "Derek Carr" {
		t.Errorf("player name = %q, want Derek Carr", name)
	}

	// Defense rows fan out into interceptions and sacks.
	if n := len(box.Stats[boxscore.Defense]); n != 2 {
		t.Errorf("defense rows = %d, want 2", n)
	}
	ints := box.Stats[boxscore.Interceptions]
	if len(ints) != 2 {
		t.Fatalf("interception rows = %d, want 2", len(ints))
	}
	if v, _ := ints[0].Int("int_count"); v != 1 {
		t.Errorf("int_count = %d, want 1", v)
	}
	sacks := box.Stats[boxscore.Sacks]
	if len(sacks) != 2 {
		t.Fatalf("sack rows = %d, want 2", len(sacks))
	}
	if v, _ := sacks[0].Float("sacks"); v != 1.5 {
		t.Errorf("sacks = %v, want 1.5", v)
	}
	if v, _ := sacks[0].Int("yds"); v != 11 {
		t.Errorf("sack yds = %d, want 11", v)
	}

	if !outcome.Complete() {
		t.Errorf("outcome gaps = %+v, want none", outcome.Gaps)
	}
}

func TestParseBoxScoreTooFewTables(t *testing.T) {
	p := testParser()
	box, outcome, err := p.ParseBoxScore("<html><body><table></table></body></html>", "fdb_20250907")
	if err != nil {
		t.Fatal(err)
	}
	if box.StatRowCount() != 0 {
		t.Errorf("rows = %d, want 0", box.StatRowCount())
	}
	if outcome.Complete() {
		t.Error("expected gaps for every category")
	}
}
