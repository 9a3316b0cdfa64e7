// Package fdb parses FootballDB pages, the fallback source used when the
// primary archive has no box score for a game (recent seasons, some
// preseason games). FootballDB lays stat tables out positionally: one table
// per team per category, away before home, in a fixed page order.
package fdb

import "github.com/fortuna/gridiron/internal/boxscore"

// tableSequence is the fixed category order of stat tables on a FootballDB
// box-score page, starting at table index 4 (after the quarter-score and
// team-summary tables). Kicking and fumbles tables are present on the page
// but not ingested; their slots are consumed without emitting.
var tableSequence = []boxscore.Category{
	boxscore.Passing, boxscore.Rushing, boxscore.Receiving,
	boxscore.PuntReturns, boxscore.KickReturns,
	boxscore.Punting, boxscore.CategorySkip, // kicking
	boxscore.Kickoffs,
	boxscore.Defense, boxscore.CategorySkip, // fumbles
}

// statTablesStart is the index of the first stat table on the page.
const statTablesStart = 4

// columnMaps translates FootballDB header text to canonical fields,
// per category. Header text is matched literally.
var columnMaps = map[boxscore.Category]boxscore.ColumnMap{
	boxscore.Passing: {
		"Att": "att", "Cmp": "com", "Yds": "yds", "TD": "td",
		"Int": "int_thrown", "Lg": "lg", "Sack": "sacked",
		"Loss": "sacked_yds", "Rate": "rtg",
	},
	boxscore.Rushing: {
		"Att": "att", "Yds": "yds", "Avg": "avg", "Lg": "lg", "TD": "td",
	},
	boxscore.Receiving: {
		"Tar": "tar", "Rec": "rec", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.PuntReturns: {
		"Num": "ret", "FC": "fc", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.KickReturns: {
		"Num": "ret", "FC": "fc", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.Punting: {
		"Punts": "punts", "Yds": "yds", "Avg": "avg", "Lg": "lg",
	},
	boxscore.Kickoffs: {
		"Num": "kickoffs", "Yds": "yds", "Avg": "avg", "TB": "tb",
	},
	boxscore.Defense: {
		"Solo": "tkl", "Sack": "sacks",
	},
}

// The defense table carries interception and sack columns too; rows fan out
// into those categories when the mapped cells hold data.
var defenseFanOut = map[boxscore.Category]boxscore.ColumnMap{
	boxscore.Interceptions: {
		"Int": "int_count", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.Sacks: {
		"Sack": "sacks", "YdsL": "yds",
	},
}
