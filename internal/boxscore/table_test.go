package boxscore

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func tableFromHTML(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	return doc.Find("table").First()
}

func TestParseRowsMapsColumns(t *testing.T) {
	table := tableFromHTML(t, `<table>
		<tr><th>Player</th><th>Att</th><th>Yds</th><th>Avg</th><th>Lg</th><th>TD</th></tr>
		<tr><td><a href="/players/alvin-kamara-kamaral01">Alvin KamaraA. Kamara</a></td>
			<td>20</td><td>99</td><td>5.0</td><td>23t</td><td>1</td></tr>
		<tr><td>TOTAL</td><td>28</td><td>130</td><td>4.6</td><td>23</td><td>1</td></tr>
	</table>`)

	cols := ColumnMap{"Att": "att", "Yds": "yds", "Avg": "avg", "Lg": "lg", "TD": "td"}
	rows, players := ParseRows(table, Rushing, "New Orleans Saints", "fdb_20240101", SourceFDB,
		"https://www.footballdb.com", cols)

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (TOTAL dropped)", len(rows))
	}
	if len(players) != 1 || players[0].PlayerID != "fdb_kamaral01" {
		t.Fatalf("players = %+v", players)
	}

	row := rows[0]
	if v, _ := row.Int("att"); v != 20 {
		t.Errorf("att = %d, want 20", v)
	}
	if v, _ := row.Int("lg"); v != 23 {
		t.Errorf("lg = %d, want 23 (touchdown marker stripped)", v)
	}
	if v, _ := row.Float("avg"); v != 5.0 {
		t.Errorf("avg = %v, want 5.0", v)
	}
	if row.Team != "New Orleans Saints" || row.Category != Rushing {
		t.Errorf("row key = %s/%s", row.Team, row.Category)
	}
}

func TestParseRowsUnmappedAndMalformedCells(t *testing.T) {
	table := tableFromHTML(t, `<table>
		<tr><th>Player</th><th>Att</th><th>Bonus</th><th>Yds</th></tr>
		<tr><td><a href="/players/some-guy-guyso01">Some Guy</a></td>
			<td>-</td><td>7</td><td>abc</td></tr>
	</table>`)

	cols := ColumnMap{"Att": "att", "Yds": "yds"}
	rows, _ := ParseRows(table, Rushing, "Team", "fdb_20240101", SourceFDB, "https://x", cols)
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	row := rows[0]
	if row.Value("att") != nil {
		t.Errorf("dash cell bound as %v, want absent", row.Value("att"))
	}
	if row.Value("yds") != nil {
		t.Errorf("unparseable cell bound as %v, want absent", row.Value("yds"))
	}
	if row.Value("bonus") != nil {
		t.Error("unmapped header leaked into row")
	}
}

func TestParseRowsDerivesPassingPct(t *testing.T) {
	table := tableFromHTML(t, `<table>
		<tr><th>Player</th><th>Att</th><th>Cmp</th></tr>
		<tr><td><a href="/players/derek-carr-carrde01">Derek Carr</a></td><td>20</td><td>15</td></tr>
		<tr><td><a href="/players/backup-guy-backup01">Backup Guy</a></td><td>0</td><td>0</td></tr>
	</table>`)

	cols := ColumnMap{"Att": "att", "Cmp": "com"}
	rows, _ := ParseRows(table, Passing, "Team", "fdb_20240101", SourceFDB, "https://x", cols)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if pct, _ := rows[0].Float("pct"); pct != 75.0 {
		t.Errorf("pct = %v, want 75.0", pct)
	}
	if pct, _ := rows[1].Float("pct"); pct != 0.0 {
		t.Errorf("zero attempts pct = %v, want 0.0", pct)
	}
}
