// Package pfa parses Pro Football Archives pages, the primary source for
// long-historical seasons. PFA box-score pages carry no fixed table layout,
// so tables are recognized by their header column signatures rather than by
// position.
package pfa

import "github.com/fortuna/gridiron/internal/boxscore"

// signatures are the leading header columns that identify a category's
// tables. Punt and kick returns share a signature; the classifier's fixed
// visiting order pairs the earlier tables with punt returns.
var signatures = map[boxscore.Category][]string{
	boxscore.Passing:       {"Att", "Com", "Yds", "TD", "Int"},
	boxscore.Rushing:       {"Att", "Yds", "Avg", "Lg", "TD"},
	boxscore.Receiving:     {"Rec", "Yds", "Avg", "Lg", "TD"},
	boxscore.PuntReturns:   {"Ret", "Yds", "Avg", "Lg", "TD"},
	boxscore.KickReturns:   {"Ret", "Yds", "Avg", "Lg", "TD"},
	boxscore.Punting:       {"Punts", "Yds", "Avg", "Lg"},
	boxscore.Kickoffs:      {"KO", "Yds", "Avg", "TB"},
	boxscore.Defense:       {"Tkl", "Ast", "Sacks"},
	boxscore.Interceptions: {"Int", "Yds", "Avg", "Lg", "TD"},
	boxscore.Sacks:         {"Sacks", "YdsL"},
}

// columnMaps translates PFA header text to canonical fields, per category.
var columnMaps = map[boxscore.Category]boxscore.ColumnMap{
	boxscore.Passing: {
		"Att": "att", "Com": "com", "Yds": "yds", "TD": "td",
		"Int": "int_thrown", "Lg": "lg", "Sacked": "sacked",
		"SkYds": "sacked_yds", "Rtg": "rtg", "Pct": "pct",
	},
	boxscore.Rushing: {
		"Att": "att", "Yds": "yds", "Avg": "avg", "Lg": "lg", "TD": "td",
	},
	boxscore.Receiving: {
		"Tar": "tar", "Rec": "rec", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.PuntReturns: {
		"Ret": "ret", "FC": "fc", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.KickReturns: {
		"Ret": "ret", "FC": "fc", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.Punting: {
		"Punts": "punts", "Yds": "yds", "Avg": "avg", "Lg": "lg",
	},
	boxscore.Kickoffs: {
		"KO": "kickoffs", "Yds": "yds", "Avg": "avg", "TB": "tb",
	},
	boxscore.Defense: {
		"Tkl": "tkl", "Ast": "ast", "Sacks": "sacks",
	},
	boxscore.Interceptions: {
		"Int": "int_count", "Yds": "yds", "Avg": "avg",
		"Lg": "lg", "TD": "td",
	},
	boxscore.Sacks: {
		"Sacks": "sacks", "YdsL": "yds",
	},
}
