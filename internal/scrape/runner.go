// Package scrape drives the season/game ingestion loop. Processing is
// strictly sequential: one game is fully fetched, parsed, merged and
// persisted before the next begins, with the rate limit inside the fetcher
// as the only delay. Interrupting a run is safe at game granularity; the
// GameExists short-circuit makes the next run resume where it stopped.
package scrape

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fortuna/gridiron/internal/boxscore"
	"github.com/fortuna/gridiron/internal/config"
	"github.com/fortuna/gridiron/internal/fetch"
	"github.com/fortuna/gridiron/internal/ingest"
	"github.com/fortuna/gridiron/internal/ingest/fdb"
	"github.com/fortuna/gridiron/internal/ingest/pfa"
	"github.com/fortuna/gridiron/internal/reconcile"
	"github.com/fortuna/gridiron/internal/store"
)

// Store is the persistence contract the runner consumes.
type Store interface {
	GetGame(ctx context.Context, gameID string) (*store.Game, error)
	GetGameByDate(ctx context.Context, date, sourcePrefix string) (*store.Game, error)
	UpsertGame(ctx context.Context, g *store.Game) error
	UpsertPlayer(ctx context.Context, p *store.Player) error
	InsertStatRow(ctx context.Context, row *boxscore.StatRow) error
	InsertScoringPlay(ctx context.Context, gameID string, play boxscore.ScoringPlay) error
	ClearGameStats(ctx context.Context, gameID string) error
	GameExists(ctx context.Context, gameID string) (bool, error)
	ComputeTeamTotals(ctx context.Context, gameID string) error
}

// Summary reports one season run.
type Summary struct {
	RunID     string
	Season    int
	Games     int
	Boxscores int
	Skipped   int
	Errors    int
}

// Runner orchestrates fetching, parsing, merging and persisting.
type Runner struct {
	pfaFetcher fetch.Fetcher
	fdbFetcher fetch.Fetcher
	pfaParser  *pfa.Parser
	fdbParser  *fdb.Parser
	store      Store
	policy     *reconcile.Policy
	cfg        *config.Config
}

// NewRunner wires the runner.
func NewRunner(pfaFetcher, fdbFetcher fetch.Fetcher, st Store, cfg *config.Config) *Runner {
	return &Runner{
		pfaFetcher: pfaFetcher,
		fdbFetcher: fdbFetcher,
		pfaParser:  pfa.NewParser(cfg.PFABaseURL, cfg.TeamAbbr),
		fdbParser:  fdb.NewParser(cfg.FDBBaseURL, cfg.TeamNameSlug(), cfg.TeamCitySlug(), config.DefaultTeamCatalog()),
		store:      st,
		policy:     reconcile.NewPolicy(),
		cfg:        cfg,
	}
}

// Policy exposes the merge policy, mainly for its metrics.
func (r *Runner) Policy() *reconcile.Policy {
	return r.policy
}

// CurrentSeason returns the running NFL season year; seasons start in
// August.
func CurrentSeason() int {
	now := time.Now()
	if now.Month() >= time.August {
		return now.Year()
	}
	return now.Year() - 1
}

// ScrapeRange scrapes the primary source for each season in [start, end].
func (r *Runner) ScrapeRange(ctx context.Context, start, end int, force bool) ([]Summary, error) {
	var summaries []Summary
	for year := start; year <= end; year++ {
		s, err := r.ScrapeSeason(ctx, year, force)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// Incremental scrapes the current season only.
func (r *Runner) Incremental(ctx context.Context, force bool) (Summary, error) {
	return r.ScrapeSeason(ctx, CurrentSeason(), force)
}

// ScrapeSeason walks one season on the primary source: upserts every game
// stub from the schedule page, then fetches and ingests each linked box
// score. A failed fetch counts as an error and the loop continues.
func (r *Runner) ScrapeSeason(ctx context.Context, year int, force bool) (Summary, error) {
	summary := Summary{RunID: uuid.New().String(), Season: year}
	log.Printf("[scrape] season %d (run %s)", year, summary.RunID)

	html, err := r.pfaFetcher.Fetch(ctx, r.pfaParser.SeasonURL(year))
	if err != nil {
		log.Printf("[scrape] season %d: could not fetch season page: %v", year, err)
		return summary, nil
	}

	stubs, err := r.pfaParser.ParseSeasonPage(html, year)
	if err != nil {
		return summary, err
	}
	summary.Games = len(stubs)

	withBox := 0
	for _, stub := range stubs {
		if err := r.mergeAndUpsert(ctx, stub.Game(), false); err != nil {
			return summary, err
		}
		if stub.BoxscoreURL != "" {
			withBox++
		}
	}
	log.Printf("[scrape] season %d: %d games (%d with box scores)", year, len(stubs), withBox)

	for _, stub := range stubs {
		if stub.BoxscoreURL == "" {
			continue
		}
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		done, skipped, err := r.ingestGame(ctx, r.pfaFetcher, stub.GameID, stub.BoxscoreURL, force, r.pfaParser.ParseBoxScore)
		if err != nil {
			return summary, err
		}
		switch {
		case skipped:
			summary.Skipped++
		case done:
			summary.Boxscores++
			log.Printf("[scrape] %s: %s vs %s", stub.GameID, stub.GameDate, stub.Opponent)
		default:
			summary.Errors++
		}
	}

	log.Printf("[scrape] season %d complete: %d scraped, %d skipped, %d errors",
		year, summary.Boxscores, summary.Skipped, summary.Errors)
	return summary, nil
}

// ScrapeFallbackSeason walks one season on the fallback source. After the
// games are ingested, the primary source's schedule page is loaded as a
// metadata donor (venue, attendance, day of week) since its records are
// richer than fallback box-score pages; donor records never contribute a
// box-score URL.
func (r *Runner) ScrapeFallbackSeason(ctx context.Context, year int, force bool) (Summary, error) {
	summary := Summary{RunID: uuid.New().String(), Season: year}
	log.Printf("[scrape] season %d via fallback source (run %s)", year, summary.RunID)

	html, err := r.fdbFetcher.Fetch(ctx, r.fdbParser.ResultsURL(year))
	if err != nil {
		log.Printf("[scrape] season %d: could not fetch results page: %v", year, err)
		return summary, nil
	}

	stubs, err := r.fdbParser.ParseResultsPage(html, year)
	if err != nil {
		return summary, err
	}
	summary.Games = len(stubs)
	log.Printf("[scrape] season %d: %d games with box-score links", year, len(stubs))

	for _, stub := range stubs {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		exists, err := r.store.GameExists(ctx, stub.GameID)
		if err != nil {
			return summary, err
		}
		if exists && !force {
			summary.Skipped++
			continue
		}

		boxHTML, err := r.fdbFetcher.Fetch(ctx, stub.BoxscoreURL)
		if err != nil {
			summary.Errors++
			log.Printf("[scrape] %s: %v", stub.GameID, err)
			continue
		}

		box, outcome, err := r.fdbParser.ParseBoxScore(boxHTML, stub.GameID)
		if err != nil {
			summary.Errors++
			log.Printf("[scrape] %s: %v", stub.GameID, err)
			continue
		}
		logGaps(stub.GameID, outcome)

		record := r.gameFromFallbackBox(stub, box, year)
		if err := r.mergeAndUpsert(ctx, record, true); err != nil {
			return summary, err
		}

		if err := r.insertBoxScore(ctx, box, force); err != nil {
			return summary, err
		}
		summary.Boxscores++
		log.Printf("[scrape] %s: %s vs %s", stub.GameID, stub.GameDate, record.Opponent)
	}

	r.overlayPrimaryMetadata(ctx, year)

	log.Printf("[scrape] season %d complete: %d scraped, %d skipped, %d errors",
		year, summary.Boxscores, summary.Skipped, summary.Errors)
	return summary, nil
}

// ingestGame fetches, parses and persists one primary-source box score.
// Returns done=false with a nil error when the fetch failed (counted, not
// fatal).
func (r *Runner) ingestGame(ctx context.Context, fetcher fetch.Fetcher, gameID, url string, force bool,
	parse func(html, gameID string) (*boxscore.BoxScore, *boxscore.Outcome, error)) (done, skipped bool, err error) {

	exists, err := r.store.GameExists(ctx, gameID)
	if err != nil {
		return false, false, err
	}
	if exists && !force {
		return false, true, nil
	}

	html, err := fetcher.Fetch(ctx, url)
	if err != nil {
		log.Printf("[scrape] %s: %v", gameID, err)
		return false, false, nil
	}

	box, outcome, err := parse(html, gameID)
	if err != nil {
		log.Printf("[scrape] %s: %v", gameID, err)
		return false, false, nil
	}
	logGaps(gameID, outcome)

	if err := r.insertBoxScore(ctx, box, force); err != nil {
		return false, false, err
	}
	return true, false, nil
}

// insertBoxScore persists one parsed box score: players, stat rows, scoring
// plays, then the team-totals projection. force clears prior rows first so
// re-ingestion replaces instead of accumulating.
func (r *Runner) insertBoxScore(ctx context.Context, box *boxscore.BoxScore, force bool) error {
	if force {
		if err := r.store.ClearGameStats(ctx, box.GameID); err != nil {
			return err
		}
	}

	for _, ident := range box.Players {
		p := &store.Player{PlayerID: ident.PlayerID, PlayerName: ident.Name}
		if ident.ProfileURL != "" {
			p.ProfileURL.String = ident.ProfileURL
			p.ProfileURL.Valid = true
		}
		if err := r.store.UpsertPlayer(ctx, p); err != nil {
			return err
		}
	}

	for _, cat := range boxscore.CanonicalOrder {
		for _, row := range box.Stats[cat] {
			if err := r.store.InsertStatRow(ctx, row); err != nil {
				return err
			}
		}
	}

	for _, play := range box.ScoringPlays {
		if err := r.store.InsertScoringPlay(ctx, box.GameID, play); err != nil {
			return err
		}
	}

	return r.store.ComputeTeamTotals(ctx, box.GameID)
}

// mergeAndUpsert loads the existing row, applies the merge policy and
// writes the result.
func (r *Runner) mergeAndUpsert(ctx context.Context, incoming *store.Game, hasBox bool) error {
	existing, err := r.store.GetGame(ctx, incoming.GameID)
	if err != nil {
		return err
	}
	merged := r.policy.MergeGame(existing, incoming, hasBox)
	return r.store.UpsertGame(ctx, merged)
}

// overlayPrimaryMetadata upserts the primary source's schedule records for a
// season as metadata donors with their box-score links stripped, then
// overlays their fields onto any fallback game on the same date.
func (r *Runner) overlayPrimaryMetadata(ctx context.Context, year int) {
	html, err := r.pfaFetcher.Fetch(ctx, r.pfaParser.SeasonURL(year))
	if err != nil {
		log.Printf("[scrape] season %d: no primary metadata available: %v", year, err)
		return
	}
	stubs, err := r.pfaParser.ParseSeasonPage(html, year)
	if err != nil {
		log.Printf("[scrape] season %d: primary metadata unusable: %v", year, err)
		return
	}

	for _, stub := range stubs {
		stub.BoxscoreURL = ""
		if err := r.mergeAndUpsert(ctx, stub.Game(), false); err != nil {
			log.Printf("[scrape] %s: metadata upsert failed: %v", stub.GameID, err)
			continue
		}
		fallback, err := r.store.GetGameByDate(ctx, stub.GameDate, store.SourceFallback)
		if err != nil || fallback == nil {
			continue
		}
		r.policy.OverlayMetadata(fallback, stub.Game())
		if err := r.store.UpsertGame(ctx, fallback); err != nil {
			log.Printf("[scrape] %s: metadata overlay failed: %v", fallback.GameID, err)
		}
	}
	log.Printf("[scrape] season %d: loaded %d primary records (metadata only)", year, len(stubs))
}

// gameFromFallbackBox builds the canonical game record for a fallback
// box-score parse: opponent and home/away from the team names, score pair
// from the linescore, result derived or left unknown.
func (r *Runner) gameFromFallbackBox(stub ingest.GameStub, box *boxscore.BoxScore, year int) *store.Game {
	isHome := box.HomeTeam != "" && containsCity(box.HomeTeam, r.cfg.TeamCity)

	opponent := box.HomeTeam
	teamScore, oppScore := box.AwayScore, box.HomeScore
	if isHome {
		opponent = box.AwayTeam
		teamScore, oppScore = box.HomeScore, box.AwayScore
	}
	if opponent == "" {
		opponent = stub.Opponent
	}

	g := stub.Game()
	g.Season = year
	g.Opponent = opponent
	if isHome {
		g.HomeAway = "home"
	} else {
		g.HomeAway = "away"
	}
	if teamScore != nil {
		g.TeamScore.Int64 = int64(*teamScore)
		g.TeamScore.Valid = true
	}
	if oppScore != nil {
		g.OpponentScore.Int64 = int64(*oppScore)
		g.OpponentScore.Valid = true
	}
	g.Result = reconcile.DeriveResult(teamScore, oppScore)
	return g
}

func containsCity(team, city string) bool {
	return city != "" && strings.Contains(team, city)
}

func logGaps(gameID string, outcome *boxscore.Outcome) {
	if outcome == nil || outcome.Complete() {
		return
	}
	for _, gap := range outcome.Gaps {
		log.Printf("[scrape] %s: no %s data (%s)", gameID, gap.Category, gap.Reason)
	}
}
