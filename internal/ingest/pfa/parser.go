package pfa

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/ingest"
)

var (
	seasonDatePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	resultPattern     = regexp.MustCompile(`^([WLT])\s+(\d+)-(\d+)$`)
)

// Parser parses Pro Football Archives season and box-score pages for one
// team.
type Parser struct {
	BaseURL  string
	TeamAbbr string // lowercase site abbreviation, e.g. "no"
}

// NewParser builds a parser for the configured team.
func NewParser(baseURL, teamAbbr string) *Parser {
	return &Parser{BaseURL: baseURL, TeamAbbr: strings.ToLower(teamAbbr)}
}

// SeasonURL returns the season schedule page for a year.
func (p *Parser) SeasonURL(season int) string {
	return fmt.Sprintf("%s/%dnfl%s.html", p.BaseURL, season, p.TeamAbbr)
}

// ParseSeasonPage extracts ordered game stubs from a season schedule page.
// Schedule rows are recognized by a mm/dd/yyyy date in the first cell;
// expected cells are date, day, opponent, result, location, venue,
// attendance. A game with no box-score link yields a stub with an empty URL,
// which is valid: it marks a scheduled game the site has not documented.
// Opponent text is kept verbatim.
func (p *Parser) ParseSeasonPage(html string, season int) ([]ingest.GameStub, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse season page: %w", err)
	}

	var games []ingest.GameStub
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 4 {
			return
		}
		dateText := strings.TrimSpace(cells.Eq(0).Text())
		m := seasonDatePattern.FindStringSubmatch(dateText)
		if m == nil {
			return
		}
		month, day, year := m[1], m[2], m[3]

		stub := ingest.GameStub{
			GameID:   "pfa_" + year + month + day,
			Season:   season,
			GameDate: year + "-" + month + "-" + day,
			GameType: gameType(month),
			HomeAway: "home",
		}

		stub.DayOfWeek = strings.TrimSpace(cells.Eq(1).Text())

		opponent := strings.TrimSpace(cells.Eq(2).Text())
		if strings.HasPrefix(opponent, "at ") {
			stub.HomeAway = "away"
			opponent = strings.TrimPrefix(opponent, "at ")
		} else if strings.HasPrefix(opponent, "vs ") {
			opponent = strings.TrimPrefix(opponent, "vs ")
		}
		stub.Opponent = strings.TrimSpace(opponent)

		if r := resultPattern.FindStringSubmatch(strings.TrimSpace(cells.Eq(3).Text())); r != nil {
			stub.Result = r[1]
			if n, ok := boxscore.ParseIntText(r[2]); ok {
				v := int(n)
				stub.TeamScore = &v
			}
			if n, ok := boxscore.ParseIntText(r[3]); ok {
				v := int(n)
				stub.OpponentScore = &v
			}
		}

		if cells.Length() > 4 {
			stub.Location = strings.TrimSpace(cells.Eq(4).Text())
		}
		if cells.Length() > 5 {
			stub.Venue = strings.TrimSpace(cells.Eq(5).Text())
		}
		if cells.Length() > 6 {
			if n, ok := boxscore.ParseIntText(cells.Eq(6).Text()); ok {
				v := int(n)
				stub.Attendance = &v
			}
		}

		if href, ok := row.Find("a").First().Attr("href"); ok && href != "" {
			stub.BoxscoreURL = p.resolveURL(href)
		}

		games = append(games, stub)
	})

	return games, nil
}

func gameType(month string) string {
	if month == "08" {
		return "preseason"
	}
	return "regular"
}

// ParseBoxScore parses a PFA box-score page: the linescore (teams and final
// scores), the scoring-play table, and the per-category stat tables matched
// by header signature. Missing categories become outcome gaps, not errors.
func (p *Parser) ParseBoxScore(html, gameID string) (*boxscore.BoxScore, *boxscore.Outcome, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse box score %s: %w", gameID, err)
	}

	box := boxscore.NewBoxScore(gameID, boxscore.SourcePFA)
	outcome := &boxscore.Outcome{}

	var tables []*goquery.Selection
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		tables = append(tables, t)
	})
	if len(tables) == 0 {
		for _, cat := range boxscore.CanonicalOrder {
			outcome.AddGap(cat, boxscore.GapNoTable)
		}
		return box, outcome, nil
	}

	p.parseLinescore(tables, box)
	p.parseScoringPlays(tables, box)

	classifier := &boxscore.SignatureClassifier{
		Signatures: signatures,
		Order:      boxscore.CanonicalOrder,
	}
	pairs := classifier.Classify(tables)

	for _, cat := range boxscore.CanonicalOrder {
		pair, ok := pairs[cat]
		if !ok {
			outcome.AddGap(cat, boxscore.GapNoTable)
			continue
		}
		n := 0
		for _, side := range []struct {
			idx  int
			team string
		}{{pair.Away, box.AwayTeam}, {pair.Home, box.HomeTeam}} {
			rows, players := boxscore.ParseRows(
				tables[side.idx], cat, side.team, gameID, boxscore.SourcePFA, p.BaseURL, columnMaps[cat])
			box.AddRows(cat, rows, players)
			n += len(rows)
		}
		if n == 0 {
			outcome.AddGap(cat, boxscore.GapNoRows)
		}
	}

	return box, outcome, nil
}

// parseLinescore finds the quarter-score table (header row ending in "T",
// away on row 1, home on row 2) and reads team names and final scores.
func (p *Parser) parseLinescore(tables []*goquery.Selection, box *boxscore.BoxScore) {
	for _, table := range tables {
		headers := boxscore.HeaderCells(table)
		if len(headers) < 2 || headers[len(headers)-1] != "T" {
			continue
		}
		rows := table.Find("tr")
		if rows.Length() < 3 {
			continue
		}
		awayCells := rows.Eq(1).Find("th, td")
		homeCells := rows.Eq(2).Find("th, td")
		if awayCells.Length() < 2 || homeCells.Length() < 2 {
			continue
		}
		box.AwayTeam = strings.TrimSpace(awayCells.First().Text())
		box.HomeTeam = strings.TrimSpace(homeCells.First().Text())
		if n, ok := boxscore.ParseIntText(awayCells.Eq(awayCells.Length() - 1).Text()); ok {
			v := int(n)
			box.AwayScore = &v
		}
		if n, ok := boxscore.ParseIntText(homeCells.Eq(homeCells.Length() - 1).Text()); ok {
			v := int(n)
			box.HomeScore = &v
		}
		return
	}
}

// parseScoringPlays reads the scoring summary table (Qtr / Team / Scoring
// Play) in document order, numbering plays from 1.
func (p *Parser) parseScoringPlays(tables []*goquery.Selection, box *boxscore.BoxScore) {
	for _, table := range tables {
		headers := boxscore.HeaderCells(table)
		if len(headers) < 3 || headers[0] != "Qtr" || headers[1] != "Team" {
			continue
		}
		seq := 0
		for _, row := range boxscore.DataRows(table) {
			cells := row.Find("th, td")
			if cells.Length() < 3 {
				continue
			}
			seq++
			box.ScoringPlays = append(box.ScoringPlays, boxscore.ScoringPlay{
				Seq:         seq,
				Quarter:     strings.TrimSpace(cells.Eq(0).Text()),
				Team:        strings.TrimSpace(cells.Eq(1).Text()),
				Description: strings.TrimSpace(cells.Eq(2).Text()),
			})
		}
		return
	}
}

func (p *Parser) resolveURL(href string) string {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
