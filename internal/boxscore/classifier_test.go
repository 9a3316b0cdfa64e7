package boxscore

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// buildTables parses an HTML fragment and returns its tables in order.
func buildTables(t *testing.T, html string) []*goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}
	var tables []*goquery.Selection
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		tables = append(tables, s)
	})
	return tables
}

func statTable(headers string, rows int) string {
	var b strings.Builder
	b.WriteString("<table><tr>")
	for _, h := range strings.Split(headers, ",") {
		b.WriteString("<th>" + h + "</th>")
	}
	b.WriteString("</tr>")
	for i := 0; i < rows; i++ {
		b.WriteString("<tr><td><a href='/players/some-guy-guyso01'>Some Guy</a></td><td>1</td></tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func emptyTable() string {
	return "<table><tr><th>Player</th></tr></table>"
}

func assertNoIndexReuse(t *testing.T, pairs map[Category]TablePair) {
	t.Helper()
	seen := make(map[int]Category)
	for cat, pair := range pairs {
		for _, idx := range []int{pair.Away, pair.Home} {
			if prev, ok := seen[idx]; ok {
				t.Errorf("table %d claimed by both %s and %s", idx, prev, cat)
			}
			seen[idx] = cat
		}
	}
}

func TestPositionalClassifier(t *testing.T) {
	// Two metadata tables, then two categories of two tables each.
	html := emptyTable() + emptyTable() +
		statTable("Player,Att", 3) + statTable("Player,Att", 2) +
		statTable("Player,Rec", 4) + statTable("Player,Rec", 1)
	tables := buildTables(t, html)

	c := &PositionalClassifier{
		Start:    2,
		Sequence: []Category{Passing, Receiving},
	}
	pairs := c.Classify(tables)

	if got := pairs[Passing]; got != (TablePair{Away: 2, Home: 3}) {
		t.Errorf("passing pair = %+v", got)
	}
	if got := pairs[Receiving]; got != (TablePair{Away: 4, Home: 5}) {
		t.Errorf("receiving pair = %+v", got)
	}
	assertNoIndexReuse(t, pairs)
}

func TestPositionalClassifierSkipSlotAdvancesCursor(t *testing.T) {
	html := statTable("Player,Punts", 2) + statTable("Player,Punts", 2) +
		statTable("Player,FG", 2) + statTable("Player,FG", 2) + // kicking, skipped
		statTable("Player,Num", 2) + statTable("Player,Num", 2)
	tables := buildTables(t, html)

	c := &PositionalClassifier{
		Start:    0,
		Sequence: []Category{Punting, CategorySkip, Kickoffs},
	}
	pairs := c.Classify(tables)

	if _, ok := pairs[CategorySkip]; ok {
		t.Error("skip slot emitted a mapping")
	}
	if got := pairs[Kickoffs]; got != (TablePair{Away: 4, Home: 5}) {
		t.Errorf("kickoffs pair = %+v, want tables 4/5 after skipped slot", got)
	}
}

func TestPositionalClassifierHeaderOnlyTable(t *testing.T) {
	// First slot's away table has no data rows: slot consumed, no mapping.
	html := emptyTable() + emptyTable() +
		statTable("Player,Att", 2) + statTable("Player,Att", 2)
	tables := buildTables(t, html)

	c := &PositionalClassifier{
		Start:    0,
		Sequence: []Category{Passing, Rushing},
	}
	pairs := c.Classify(tables)

	if _, ok := pairs[Passing]; ok {
		t.Error("header-only pair produced a passing mapping")
	}
	if got := pairs[Rushing]; got != (TablePair{Away: 2, Home: 3}) {
		t.Errorf("rushing pair = %+v, want cursor to advance past empty slot", got)
	}
}

func TestPositionalClassifierTruncatedPage(t *testing.T) {
	html := statTable("Player,Att", 2) // only one table
	tables := buildTables(t, html)

	c := &PositionalClassifier{Start: 0, Sequence: []Category{Passing}}
	if pairs := c.Classify(tables); len(pairs) != 0 {
		t.Errorf("truncated page produced %d pairs, want 0", len(pairs))
	}
}

func TestSignatureClassifier(t *testing.T) {
	html := statTable("Player,Att,Com,Yds,TD,Int", 2) +
		statTable("Player,Att,Com,Yds,TD,Int", 3) +
		statTable("Player,Rec,Yds,Avg,Lg,TD", 2) +
		statTable("Player,Rec,Yds,Avg,Lg,TD", 2)
	tables := buildTables(t, html)

	c := &SignatureClassifier{
		Signatures: map[Category][]string{
			Passing:   {"Att", "Com", "Yds", "TD", "Int"},
			Receiving: {"Rec", "Yds", "Avg", "Lg", "TD"},
		},
		Order: []Category{Passing, Receiving},
	}
	pairs := c.Classify(tables)

	if got := pairs[Passing]; got != (TablePair{Away: 0, Home: 1}) {
		t.Errorf("passing pair = %+v", got)
	}
	if got := pairs[Receiving]; got != (TablePair{Away: 2, Home: 3}) {
		t.Errorf("receiving pair = %+v", got)
	}
	assertNoIndexReuse(t, pairs)
}

func TestSignatureClassifierSharedSignature(t *testing.T) {
	// Punt and kick returns share a header signature; the earlier category
	// in the visiting order claims the earlier pair, and no table index is
	// used twice.
	returns := "Player,Ret,Yds,Avg,Lg,TD"
	html := statTable(returns, 2) + statTable(returns, 2) +
		statTable(returns, 2) + statTable(returns, 2)
	tables := buildTables(t, html)

	sig := []string{"Ret", "Yds", "Avg", "Lg", "TD"}
	c := &SignatureClassifier{
		Signatures: map[Category][]string{PuntReturns: sig, KickReturns: sig},
		Order:      []Category{PuntReturns, KickReturns},
	}
	pairs := c.Classify(tables)

	if got := pairs[PuntReturns]; got != (TablePair{Away: 0, Home: 1}) {
		t.Errorf("punt returns pair = %+v", got)
	}
	if got := pairs[KickReturns]; got != (TablePair{Away: 2, Home: 3}) {
		t.Errorf("kick returns pair = %+v", got)
	}
	assertNoIndexReuse(t, pairs)
}

func TestSignatureClassifierCaseSensitive(t *testing.T) {
	// Header text must match the signature literally; "ATT" is not "Att".
	html := statTable("Player,ATT,COM,YDS,TD,INT", 2) +
		statTable("Player,ATT,COM,YDS,TD,INT", 2)
	tables := buildTables(t, html)

	c := &SignatureClassifier{
		Signatures: map[Category][]string{Passing: {"Att", "Com", "Yds", "TD", "Int"}},
		Order:      []Category{Passing},
	}
	if pairs := c.Classify(tables); len(pairs) != 0 {
		t.Errorf("case-mismatched headers produced %d pairs, want 0", len(pairs))
	}
}

func TestSignatureClassifierUnpairedMatch(t *testing.T) {
	// A lone matching table (no counterpart) yields no mapping.
	html := statTable("Player,Punts,Yds,Avg,Lg", 2)
	tables := buildTables(t, html)

	c := &SignatureClassifier{
		Signatures: map[Category][]string{Punting: {"Punts", "Yds", "Avg", "Lg"}},
		Order:      []Category{Punting},
	}
	if pairs := c.Classify(tables); len(pairs) != 0 {
		t.Errorf("lone table produced %d pairs, want 0", len(pairs))
	}
}
