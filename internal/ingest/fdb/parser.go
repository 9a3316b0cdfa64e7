package fdb

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/ingest"
)

var (
	boxscoreDatePattern = regexp.MustCompile(`(\d{8})\d{2}$`)
	boxscoreTextPattern = regexp.MustCompile(`(.+?) vs (.+?) Box Score`)
)

// Parser parses FootballDB results and box-score pages for one team.
type Parser struct {
	BaseURL  string
	TeamSlug string // franchise name slug, e.g. "new-orleans-saints"
	CitySlug string // city slug used in game slugs, e.g. "new-orleans"
	Catalog  config.TeamCatalog
}

// NewParser builds a parser for the configured team.
func NewParser(baseURL, teamSlug, citySlug string, catalog config.TeamCatalog) *Parser {
	return &Parser{BaseURL: baseURL, TeamSlug: teamSlug, CitySlug: citySlug, Catalog: catalog}
}

// ResultsURL returns the team results page for a season.
func (p *Parser) ResultsURL(season int) string {
	return fmt.Sprintf("%s/teams/nfl/%s/results/%d", p.BaseURL, p.TeamSlug, season)
}

// ParseResultsPage extracts game stubs from a team results page. Every
// /games/boxscore/ link becomes one stub; links whose URL carries no
// parseable date are dropped. The game id is minted from the date
// (fdb_YYYYMMDD), home/away comes from the -vs- slug (away team first), the
// opponent from the link text.
func (p *Parser) ParseResultsPage(html string, season int) ([]ingest.GameStub, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var games []ingest.GameStub
	doc.Find(`a[href*="/games/boxscore/"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		m := boxscoreDatePattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		dateStr := m[1]
		gameDate := dateStr[:4] + "-" + dateStr[4:6] + "-" + dateStr[6:8]

		// Slug format: /away-team-vs-home-team-YYYYMMDDNN. Both sides are
		// checked so shared-city slugs (New York, Los Angeles) do not read
		// an away game as home.
		slug := href[strings.LastIndex(href, "/")+1:]
		parts := strings.SplitN(slug, "-vs-", 2)
		if len(parts) != 2 {
			return
		}
		isAway := strings.HasPrefix(parts[0], p.TeamSlug)
		isHome := !isAway && strings.HasPrefix(parts[1], p.CitySlug)

		opponent := "Unknown"
		if t := boxscoreTextPattern.FindStringSubmatch(strings.TrimSpace(link.Text())); t != nil {
			if isHome {
				opponent = strings.TrimSpace(t[1])
			} else {
				opponent = strings.TrimSpace(t[2])
			}
		}

		homeAway := "away"
		if isHome {
			homeAway = "home"
		}

		gameType := "regular"
		if dateStr[4:6] == "08" {
			gameType = "preseason"
		}

		games = append(games, ingest.GameStub{
			GameID:      "fdb_" + dateStr,
			Season:      season,
			GameDate:    gameDate,
			GameType:    gameType,
			Opponent:    opponent,
			HomeAway:    homeAway,
			BoxscoreURL: p.resolveURL(href),
		})
	})

	return games, nil
}

// ParseBoxScore parses a FootballDB box-score page. Categories that produce
// no rows are recorded as gaps in the outcome, not errors; only an
// unreadable document is an error.
func (p *Parser) ParseBoxScore(html, gameID string) (*boxscore.BoxScore, *boxscore.Outcome, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse box score %s: %w", gameID, err)
	}

	box := boxscore.NewBoxScore(gameID, boxscore.SourceFDB)
	outcome := &boxscore.Outcome{}

	var tables []*goquery.Selection
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		tables = append(tables, t)
	})

	if len(tables) < 6 {
		for _, cat := range tableSequence {
			if cat != boxscore.CategorySkip {
				outcome.AddGap(cat, boxscore.GapNoTable)
			}
		}
		return box, outcome, nil
	}

	box.AwayTeam = p.extractTeamName(tables[4])
	box.HomeTeam = p.extractTeamName(tables[5])

	p.parseQuarterScores(tables[0], box)

	classifier := &boxscore.PositionalClassifier{
		Start:    statTablesStart,
		Sequence: tableSequence,
	}
	pairs := classifier.Classify(tables)

	for _, cat := range tableSequence {
		if cat == boxscore.CategorySkip {
			continue
		}
		pair, ok := pairs[cat]
		if !ok {
			outcome.AddGap(cat, boxscore.GapNoTable)
			continue
		}
		n := p.parsePair(tables, pair, cat, box)
		if n == 0 {
			outcome.AddGap(cat, boxscore.GapNoRows)
		}
	}

	return box, outcome, nil
}

// parsePair parses the away and home tables of one category, fanning defense
// rows out into interceptions and sacks when they carry data.
func (p *Parser) parsePair(tables []*goquery.Selection, pair boxscore.TablePair, cat boxscore.Category, box *boxscore.BoxScore) int {
	n := 0
	for _, side := range []struct {
		idx  int
		team string
	}{{pair.Away, box.AwayTeam}, {pair.Home, box.HomeTeam}} {
		if side.idx >= len(tables) {
			continue
		}
		table := tables[side.idx]

		rows, players := boxscore.ParseRows(
			table, cat, side.team, box.GameID, boxscore.SourceFDB, p.BaseURL, columnMaps[cat])
		box.AddRows(cat, rows, players)
		n += len(rows)

		if cat != boxscore.Defense {
			continue
		}
		for fanCat, cols := range defenseFanOut {
			fanRows, fanPlayers := boxscore.ParseRows(
				table, fanCat, side.team, box.GameID, boxscore.SourceFDB, p.BaseURL, cols)
			var kept []*boxscore.StatRow
			for _, r := range fanRows {
				if r.HasData() {
					kept = append(kept, r)
				}
			}
			if len(kept) > 0 {
				box.AddRows(fanCat, kept, fanPlayers)
			}
		}
	}
	return n
}

// parseQuarterScores reads the final scores off the quarter-by-quarter table
// (away on row 1, home on row 2, total in the last cell).
func (p *Parser) parseQuarterScores(table *goquery.Selection, box *boxscore.BoxScore) {
	rows := table.Find("tr")
	if rows.Length() < 3 {
		return
	}
	if n, ok := lastCellInt(rows.Eq(1)); ok {
		box.AwayScore = &n
	}
	if n, ok := lastCellInt(rows.Eq(2)); ok {
		box.HomeScore = &n
	}
}

func lastCellInt(row *goquery.Selection) (int, bool) {
	cells := row.Find("td")
	if cells.Length() == 0 {
		return 0, false
	}
	n, ok := boxscore.ParseIntText(cells.Eq(cells.Length() - 1).Text())
	return int(n), ok
}

// extractTeamName recovers the team name from a stat table's header cell.
// FootballDB concatenates the full name with a short form in one cell
// ("New Orleans SaintsNO"); the link text is cleanest when present,
// otherwise the catalog's longest-prefix match recovers the full name.
func (p *Parser) extractTeamName(table *goquery.Selection) string {
	cell := table.Find("tr").First().Find("th, td").First()
	if cell.Length() == 0 {
		return ""
	}
	if link := cell.Find("a").First(); link.Length() > 0 {
		return strings.TrimSpace(link.Text())
	}
	text := strings.TrimSpace(cell.Text())
	if name, ok := p.Catalog.MatchPrefix(text); ok {
		return name
	}
	return text
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
