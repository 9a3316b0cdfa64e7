package boxscore

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ColumnMap ties source header names to canonical field names for one
// category. Headers absent from the map are ignored; mapped headers whose
// cells do not parse leave the field absent.
type ColumnMap map[string]string

// ParseRows parses one stat table into rows for the given category. The
// first row is the header; every following row yields one StatRow keyed by
// the player resolved from its first cell. Rows whose player cannot be
// resolved (TOTAL rows, rows without a profile link) are dropped.
//
// Passing tables derive pct from att/com when the source does not publish it.
func ParseRows(table *goquery.Selection, category Category, team string, gameID string, source Source, baseURL string, cols ColumnMap) ([]*StatRow, []Identity) {
	headers := HeaderCells(table)
	if len(headers) == 0 {
		return nil, nil
	}

	var rows []*StatRow
	var players []Identity

	for _, tr := range DataRows(table) {
		cells := tr.Find("th, td")
		if cells.Length() == 0 {
			continue
		}

		ident, ok := ResolveIdentity(cells.First(), source, baseURL)
		if !ok {
			continue
		}

		row := NewStatRow(gameID, ident.PlayerID, team, category)
		cells.Each(func(i int, cell *goquery.Selection) {
			if i == 0 || i >= len(headers) {
				return
			}
			field, mapped := cols[strings.TrimSpace(headers[i])]
			if !mapped {
				return
			}
			if v, present := CoerceCell(cell.Text(), field); present {
				row.Set(field, v)
			}
		})

		if category == Passing {
			if _, has := row.Float("pct"); !has {
				att, _ := row.Int("att")
				com, _ := row.Int("com")
				row.Set("pct", FloatValue(CompletionPct(att, com)))
			}
		}

		rows = append(rows, row)
		players = append(players, ident)
	}

	return rows, players
}
