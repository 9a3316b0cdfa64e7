package boxscore

// StatRow is one player's statistics in one category for one game. Fields
// live in the Ints/Floats maps; a missing key means the source did not report
// that stat (never coerced to zero).
type StatRow struct {
	GameID   string
	PlayerID string
	Team     string
	Category Category

	Ints   map[string]int64
	Floats map[string]float64
}

// NewStatRow creates an empty row for the composite key.
func NewStatRow(gameID, playerID, team string, category Category) *StatRow {
	return &StatRow{
		GameID:   gameID,
		PlayerID: playerID,
		Team:     team,
		Category: category,
		Ints:     make(map[string]int64),
		Floats:   make(map[string]float64),
	}
}

// Set stores a coerced value under its canonical field name.
func (r *StatRow) Set(field string, v Value) {
	if v.IsFloat {
		r.Floats[field] = v.Float
	} else {
		r.Ints[field] = v.Int
	}
}

// Int returns the integer field value if present.
func (r *StatRow) Int(field string) (int64, bool) {
	v, ok := r.Ints[field]
	return v, ok
}

// Float returns the float field value if present.
func (r *StatRow) Float(field string) (float64, bool) {
	v, ok := r.Floats[field]
	return v, ok
}

// Value returns the field for SQL binding: int64, float64 or nil when absent.
func (r *StatRow) Value(field string) interface{} {
	if v, ok := r.Ints[field]; ok {
		return v
	}
	if v, ok := r.Floats[field]; ok {
		return v
	}
	return nil
}

// HasData reports whether any field carries a nonzero value. Used when
// fanning defense rows out into interception/sack rows: all-zero fan-out
// rows are dropped.
func (r *StatRow) HasData() bool {
	for _, v := range r.Ints {
		if v != 0 {
			return true
		}
	}
	for _, v := range r.Floats {
		if v != 0 {
			return true
		}
	}
	return false
}

// Identity is the resolved player reference for a data row.
type Identity struct {
	PlayerID   string
	Name       string
	ProfileURL string
}

// ScoringPlay is an ordered scoring event parsed from a box-score page.
type ScoringPlay struct {
	Seq         int
	Quarter     string
	Team        string
	Description string
}

// BoxScore is the parsed content of one box-score page from one source.
type BoxScore struct {
	GameID    string
	Source    Source
	AwayTeam  string
	HomeTeam  string
	AwayScore *int
	HomeScore *int

	Stats        map[Category][]*StatRow
	Players      map[string]Identity
	ScoringPlays []ScoringPlay
}

// NewBoxScore creates an empty box score for a game.
func NewBoxScore(gameID string, source Source) *BoxScore {
	return &BoxScore{
		GameID:  gameID,
		Source:  source,
		Stats:   make(map[Category][]*StatRow),
		Players: make(map[string]Identity),
	}
}

// AddRows appends parsed rows for a category and records their players.
func (b *BoxScore) AddRows(category Category, rows []*StatRow, players []Identity) {
	if len(rows) > 0 {
		b.Stats[category] = append(b.Stats[category], rows...)
	}
	for _, p := range players {
		b.Players[p.PlayerID] = p
	}
}

// StatRowCount returns the total number of stat rows across categories.
func (b *BoxScore) StatRowCount() int {
	n := 0
	for _, rows := range b.Stats {
		n += len(rows)
	}
	return n
}

// Outcome reports how completely a page parsed. A gap means a category (or
// page section) yielded no data; callers can tell "page had nothing for this
// category" apart from "page was unreadable", which is an error instead.
type Outcome struct {
	Gaps []Gap
}

// Gap names one category that produced no rows and why.
type Gap struct {
	Category Category
	Reason   string
}

// Gap reasons.
const (
	GapNoTable = "no table on page"
	GapNoRows  = "table had no data rows"
)

// AddGap records a missing category.
func (o *Outcome) AddGap(category Category, reason string) {
	o.Gaps = append(o.Gaps, Gap{Category: category, Reason: reason})
}

// Complete reports whether every visited category produced data.
func (o *Outcome) Complete() bool {
	return len(o.Gaps) == 0
}
