// Package reconcile merges game records from the two sources into one
// canonical row per game id. Statistical content is never interleaved across
// sources; only game metadata crosses the boundary.
package reconcile

import (
	"database/sql"
	"time"

	"github.com/fortuna/gridiron/internal/store"
)

// Metrics tracks merge decisions across a run.
type Metrics struct {
	TotalMerges      int
	MetadataOverlays int
	URLsPreserved    int
	Conflicts        int
	LastMerge        time.Time
}

// Policy applies the source precedence rules:
//  1. Box-score stats come from whichever single source parsed the page.
//  2. Game metadata (venue, attendance, day of week) is preferred from the
//     primary source even when stats come from the fallback.
//  3. A known box-score URL is never overwritten with null.
//  4. Score and result come from the box-score source; unknown when either
//     score is missing, never guessed.
type Policy struct {
	metrics *Metrics
}

// NewPolicy creates a merge policy.
func NewPolicy() *Policy {
	return &Policy{metrics: &Metrics{}}
}

// Metrics returns the counters accumulated so far.
func (p *Policy) Metrics() *Metrics {
	return p.metrics
}

// MergeGame combines an incoming game record with the existing row for the
// same game id. existing may be nil (first sighting). incomingHasBox marks
// records produced from a successful box-score parse: those carry
// authoritative scores and result.
func (p *Policy) MergeGame(existing, incoming *store.Game, incomingHasBox bool) *store.Game {
	p.metrics.TotalMerges++
	p.metrics.LastMerge = time.Now()

	if existing == nil {
		merged := *incoming
		return &merged
	}

	merged := *existing

	if incomingHasBox {
		merged.TeamScore = incoming.TeamScore
		merged.OpponentScore = incoming.OpponentScore
		merged.Result = incoming.Result
		merged.GameType = incoming.GameType
		if incoming.Opponent != "" && incoming.Opponent != "Unknown" {
			merged.Opponent = incoming.Opponent
		}
		merged.HomeAway = incoming.HomeAway
	} else {
		if !merged.TeamScore.Valid {
			merged.TeamScore = incoming.TeamScore
		}
		if !merged.OpponentScore.Valid {
			merged.OpponentScore = incoming.OpponentScore
		}
		if !merged.Result.Valid {
			merged.Result = incoming.Result
		}
	}

	// The primary source's schedule pages carry the richer metadata; its
	// fields win even when the stats came from the fallback.
	primaryIncoming := incoming.Source() == store.SourcePrimary
	merged.DayOfWeek = pickString(existing.DayOfWeek, incoming.DayOfWeek, primaryIncoming)
	merged.Location = pickString(existing.Location, incoming.Location, primaryIncoming)
	merged.Venue = pickString(existing.Venue, incoming.Venue, primaryIncoming)
	merged.OpponentAbbr = pickString(existing.OpponentAbbr, incoming.OpponentAbbr, primaryIncoming)
	merged.Attendance = pickInt(existing.Attendance, incoming.Attendance, primaryIncoming)

	// Add-only: a known-good link survives metadata merges.
	if incoming.BoxscoreURL.Valid {
		if existing.BoxscoreURL.Valid && existing.BoxscoreURL.String != incoming.BoxscoreURL.String {
			p.metrics.Conflicts++
		}
		merged.BoxscoreURL = incoming.BoxscoreURL
	} else if existing.BoxscoreURL.Valid {
		p.metrics.URLsPreserved++
	}

	return &merged
}

// OverlayMetadata applies a metadata-only donor record (a primary-source
// schedule stub) onto an existing game: fields are added, never retracted.
// The donor's box-score URL is ignored entirely.
func (p *Policy) OverlayMetadata(game, donor *store.Game) {
	p.metrics.MetadataOverlays++

	if !game.DayOfWeek.Valid {
		game.DayOfWeek = donor.DayOfWeek
	}
	if !game.Location.Valid {
		game.Location = donor.Location
	}
	if !game.Venue.Valid {
		game.Venue = donor.Venue
	}
	if !game.OpponentAbbr.Valid {
		game.OpponentAbbr = donor.OpponentAbbr
	}
	if !game.Attendance.Valid {
		game.Attendance = donor.Attendance
	}
	if game.BoxscoreURL.Valid {
		p.metrics.URLsPreserved++
	}
}

// DeriveResult computes W/L/T from the team's perspective. Either score
// missing leaves the result unknown.
func DeriveResult(teamScore, oppScore *int) sql.NullString {
	if teamScore == nil || oppScore == nil {
		return sql.NullString{}
	}
	switch {
	case *teamScore > *oppScore:
		return sql.NullString{String: "W", Valid: true}
	case *teamScore < *oppScore:
		return sql.NullString{String: "L", Valid: true}
	default:
		return sql.NullString{String: "T", Valid: true}
	}
}

// pickString keeps the primary source's value when it has one.
func pickString(existing, incoming sql.NullString, primaryIncoming bool) sql.NullString {
	if primaryIncoming && incoming.Valid {
		return incoming
	}
	if existing.Valid {
		return existing
	}
	return incoming
}

func pickInt(existing, incoming sql.NullInt64, primaryIncoming bool) sql.NullInt64 {
	if primaryIncoming && incoming.Valid {
		return incoming
	}
	if existing.Valid {
		return existing
	}
	return incoming
}
