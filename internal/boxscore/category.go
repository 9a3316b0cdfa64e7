// Package boxscore holds the source-independent parse model for box-score
// pages: stat categories, table classification strategies, column mapping,
// cell value coercion and player identity resolution. The per-source packages
// under internal/ingest build on it.
package boxscore

// Category is a statistical discipline (one pair of tables per page).
type Category string

const (
	Passing       Category = "passing"
	Rushing       Category = "rushing"
	Receiving     Category = "receiving"
	PuntReturns   Category = "punt_returns"
	KickReturns   Category = "kick_returns"
	Punting       Category = "punting"
	Kickoffs      Category = "kickoffs"
	Defense       Category = "defense"
	Interceptions Category = "interceptions"
	Sacks         Category = "sacks"

	// CategorySkip marks a positional slot that is consumed without
	// emitting a mapping (kicking and fumbles tables on fallback pages).
	CategorySkip Category = ""
)

// CanonicalOrder is the fixed order categories are visited in. Classifiers
// that match identical header signatures (the two return categories) rely on
// this ordering to disambiguate.
var CanonicalOrder = []Category{
	Passing, Rushing, Receiving,
	PuntReturns, KickReturns,
	Punting, Kickoffs,
	Defense, Interceptions, Sacks,
}

// Table returns the stat table name for the category.
func (c Category) Table() string {
	return "player_" + string(c)
}

// categoryFields lists the canonical numeric fields of each category, in
// column order. Persistence binds exactly these columns; absent fields are
// stored as NULL.
var categoryFields = map[Category][]string{
	Passing:       {"att", "com", "yds", "td", "int_thrown", "lg", "sacked", "sacked_yds", "rtg", "pct"},
	Rushing:       {"att", "yds", "avg", "lg", "td"},
	Receiving:     {"tar", "rec", "yds", "avg", "lg", "td"},
	PuntReturns:   {"ret", "fc", "yds", "avg", "lg", "td"},
	KickReturns:   {"ret", "fc", "yds", "avg", "lg", "td"},
	Punting:       {"punts", "yds", "avg", "lg"},
	Kickoffs:      {"kickoffs", "yds", "avg", "tb"},
	Defense:       {"tkl", "ast", "sacks"},
	Interceptions: {"int_count", "yds", "avg", "lg", "td"},
	Sacks:         {"sacks", "yds"},
}

// Fields returns the canonical field list for a category.
func Fields(c Category) []string {
	return categoryFields[c]
}

// Source tags which site a page (and the player ids minted from it) came
// from. Ids are namespaced with this tag so the two sites' id schemes never
// collide.
type Source string

const (
	SourcePFA Source = "pfa" // primary: Pro Football Archives
	SourceFDB Source = "fdb" // fallback: FootballDB
)
